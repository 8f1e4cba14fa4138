package service

import (
	"strings"

	"github.com/bsanalyst/backend/internal/model"
)

// RedactedToken replaces other companies' names in retrieved context.
const RedactedToken = "[REDACTED]"

// RedactOtherCompanies masks every company name except the allowed
// company's before context leaves the access boundary. Two literal
// substitution passes are made per name: the exact stored form, then its
// lowercased form. Mixed-case variants that equal neither can survive;
// this is best-effort masking, not a security boundary (the retrieval
// query itself is scoped by company id). Re-running on already-redacted
// text is a no-op since the token matches no company name.
func RedactOtherCompanies(companies []model.Company, allowedID int64, text string) string {
	redacted := text
	for _, company := range companies {
		if company.ID == allowedID || company.Name == "" {
			continue
		}
		redacted = strings.ReplaceAll(redacted, company.Name, RedactedToken)
		redacted = strings.ReplaceAll(redacted, strings.ToLower(company.Name), RedactedToken)
	}
	return redacted
}
