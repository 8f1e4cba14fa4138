package model

const (
	RoleGroupAdmin = "group_admin"
	RoleAnalyst    = "analyst"
	RoleCEO        = "ceo"
)

type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	Ctime        int64  `json:"ctime"`
}

// AccessGrant records non-admin visibility of a company. A group_admin
// user is allowed everywhere without a grant row.
type AccessGrant struct {
	ID        int64 `json:"id"`
	UserID    int64 `json:"user_id"`
	CompanyID int64 `json:"company_id"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleGroupAdmin, RoleAnalyst, RoleCEO:
		return true
	}
	return false
}
