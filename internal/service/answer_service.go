package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/bsanalyst/backend/internal/ai"
	appErr "github.com/bsanalyst/backend/internal/pkg/errors"
	"github.com/bsanalyst/backend/internal/repo"
)

const contextSeparator = "\n\n---\n\n"

// FallbackTag marks an answer that was produced without any model.
const FallbackTag = "none"

const answerPromptTemplate = `You are a financial analysis assistant.

Use ONLY the context below to answer the user's question.
If the answer is not clearly present, say: "Information not available in the provided documents."

Context:
%s

Question: %s

Answer:`

type AnswerOptions struct {
	Models          []string
	MaxOutputTokens int32
	Temperature     float32
	Timeout         time.Duration
	SearchLimit     uint
	FallbackLimit   uint
}

type AnswerService struct {
	chunks    *repo.ChunkRepo
	companies *repo.CompanyRepo
	provider  ai.IProvider
	opts      AnswerOptions
}

func NewAnswerService(chunks *repo.ChunkRepo, companies *repo.CompanyRepo, provider ai.IProvider, opts AnswerOptions) *AnswerService {
	if opts.SearchLimit == 0 {
		opts.SearchLimit = 8
	}
	if opts.FallbackLimit == 0 {
		opts.FallbackLimit = 5
	}
	return &AnswerService{
		chunks:    chunks,
		companies: companies,
		provider:  provider,
		opts:      opts,
	}
}

type Answer struct {
	Answer     string `json:"answer"`
	Context    string `json:"context"`
	ChunksUsed int    `json:"chunks_used"`
	LLM        string `json:"llm"`
	// Error carries the generation failure text when the templated
	// fallback answer was served. Diagnostic only; never an API error.
	Error string `json:"error,omitempty"`
}

// Ask retrieves company-scoped context for the question, masks other
// companies' names, and asks the generation provider. Returns
// appErr.ErrNoContent when the company has no chunks at all.
func (s *AnswerService) Ask(ctx context.Context, companyID int64, question string) (*Answer, error) {
	logger := logutil.GetLogger(ctx).With(zap.Int64("company_id", companyID))

	texts, usedFallback, err := s.retrieve(ctx, companyID, question)
	if err != nil {
		return nil, err
	}
	if usedFallback {
		logger.Info("relevance search empty, using latest chunks", zap.Int("count", len(texts)))
	}

	companies, err := s.companies.List(ctx)
	if err != nil {
		return nil, err
	}
	contextText := RedactOtherCompanies(companies, companyID, strings.Join(texts, contextSeparator))

	answer, tag, diag := s.synthesize(ctx, question, contextText)
	if tag == FallbackTag {
		logger.Warn("generation unavailable, serving templated answer", zap.String("diagnostic", diag))
	} else {
		logger.Info("answer generated", zap.String("model", tag), zap.Int("chunks_used", len(texts)))
	}
	return &Answer{
		Answer:     answer,
		Context:    contextText,
		ChunksUsed: len(texts),
		LLM:        tag,
		Error:      diag,
	}, nil
}

// retrieve runs the relevance search first and falls back to the newest
// chunks only when the search matches nothing. Both paths are scoped by
// company id, so cross-company rows are structurally unreachable here.
func (s *AnswerService) retrieve(ctx context.Context, companyID int64, question string) ([]string, bool, error) {
	texts, err := s.chunks.Search(ctx, companyID, question, s.opts.SearchLimit)
	if err != nil {
		return nil, false, err
	}
	if len(texts) > 0 {
		return texts, false, nil
	}
	texts, err = s.chunks.Latest(ctx, companyID, s.opts.FallbackLimit)
	if err != nil {
		return nil, false, err
	}
	if len(texts) == 0 {
		return nil, true, appErr.ErrNoContent
	}
	return texts, true, nil
}

// synthesize tries each configured model variant in order and keeps the
// first answer produced. When every variant fails (or no credential is
// configured) it degrades to a deterministic templated answer tagged
// FallbackTag, with the failure preserved as a diagnostic.
func (s *AnswerService) synthesize(ctx context.Context, question, contextText string) (answer, tag, diag string) {
	prompt := fmt.Sprintf(answerPromptTemplate, contextText, question)
	var lastErr error
	if s.provider == nil || !s.provider.Configured() {
		lastErr = ai.ErrUnavailable
	} else {
		for _, model := range s.opts.Models {
			text, err := s.generateOnce(ctx, model, prompt)
			if err == nil && text != "" {
				return text, model, ""
			}
			if err == nil {
				err = fmt.Errorf("model %s returned an empty answer", model)
			}
			lastErr = err
			logutil.GetLogger(ctx).Warn("model variant failed", zap.String("model", model), zap.Error(err))
		}
		if lastErr == nil {
			lastErr = fmt.Errorf("no model variants configured")
		}
	}
	fallback := fmt.Sprintf("Here are the most relevant sections for: '%s'", question)
	return fallback, FallbackTag, lastErr.Error()
}

func (s *AnswerService) generateOnce(ctx context.Context, model, prompt string) (string, error) {
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}
	return s.provider.Generate(ctx, model, prompt, ai.GenerateOptions{
		MaxOutputTokens: s.opts.MaxOutputTokens,
		Temperature:     s.opts.Temperature,
	})
}
