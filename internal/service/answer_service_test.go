package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bsanalyst/backend/internal/ai"
	"github.com/bsanalyst/backend/internal/model"
	appErr "github.com/bsanalyst/backend/internal/pkg/errors"
	"github.com/bsanalyst/backend/internal/repo"
	"github.com/bsanalyst/backend/internal/service"
)

type stubProvider struct {
	configured bool
	fail       map[string]error
	response   string
	calls      []string
}

func (p *stubProvider) Name() string {
	return "stub"
}

func (p *stubProvider) Configured() bool {
	return p.configured
}

func (p *stubProvider) Generate(ctx context.Context, model string, prompt string, opts ai.GenerateOptions) (string, error) {
	p.calls = append(p.calls, model)
	if err, ok := p.fail[model]; ok {
		return "", err
	}
	return p.response, nil
}

type answerFixture struct {
	chunks    *repo.ChunkRepo
	companies *repo.CompanyRepo
	acme      *model.Company
	globex    *model.Company
}

func newAnswerFixture(t *testing.T) *answerFixture {
	t.Helper()
	db := openTestDB(t)
	companies := repo.NewCompanyRepo(db)
	acme, err := companies.Create(context.Background(), "Acme")
	require.NoError(t, err)
	globex, err := companies.Create(context.Background(), "Globex")
	require.NoError(t, err)
	return &answerFixture{
		chunks:    repo.NewChunkRepo(db),
		companies: companies,
		acme:      acme,
		globex:    globex,
	}
}

func (f *answerFixture) addChunk(t *testing.T, companyID int64, idx int, text string, ctime int64) {
	t.Helper()
	require.NoError(t, f.chunks.Create(context.Background(), &model.Chunk{
		DocumentID: companyID,
		CompanyID:  companyID,
		ChunkIndex: idx,
		Text:       text,
		Ctime:      ctime,
	}))
}

func TestAskNoContentForCompany(t *testing.T) {
	f := newAnswerFixture(t)
	provider := &stubProvider{configured: true, response: "should never be used"}
	answers := service.NewAnswerService(f.chunks, f.companies, provider, service.AnswerOptions{Models: []string{"m1"}})

	_, err := answers.Ask(context.Background(), f.acme.ID, "what is the revenue?")
	require.ErrorIs(t, err, appErr.ErrNoContent)
	require.Empty(t, provider.calls)
}

func TestAskPrimaryPathWithGeneration(t *testing.T) {
	f := newAnswerFixture(t)
	f.addChunk(t, f.acme.ID, 0, "Acme revenue was 100M. Globex revenue was 90M. globex is a rival.", 100)
	f.addChunk(t, f.globex.ID, 0, "Globex internal revenue forecast is confidential", 100)

	provider := &stubProvider{configured: true, response: "Acme revenue was 100M."}
	answers := service.NewAnswerService(f.chunks, f.companies, provider, service.AnswerOptions{Models: []string{"m1", "m2"}})

	answer, err := answers.Ask(context.Background(), f.acme.ID, "what was the revenue?")
	require.NoError(t, err)
	require.Equal(t, "Acme revenue was 100M.", answer.Answer)
	require.Equal(t, "m1", answer.LLM)
	require.Empty(t, answer.Error)
	require.Equal(t, 1, answer.ChunksUsed)
	require.Contains(t, answer.Context, "Acme")
	require.NotContains(t, answer.Context, "Globex")
	require.NotContains(t, answer.Context, "globex")
	require.Contains(t, answer.Context, "[REDACTED]")
	require.Equal(t, []string{"m1"}, provider.calls)
}

func TestAskTriesVariantsInOrder(t *testing.T) {
	f := newAnswerFixture(t)
	f.addChunk(t, f.acme.ID, 0, "Acme assets grew steadily", 100)

	provider := &stubProvider{
		configured: true,
		response:   "answer from second variant",
		fail:       map[string]error{"m1": errors.New("variant unsupported")},
	}
	answers := service.NewAnswerService(f.chunks, f.companies, provider, service.AnswerOptions{Models: []string{"m1", "m2", "m3"}})

	answer, err := answers.Ask(context.Background(), f.acme.ID, "assets")
	require.NoError(t, err)
	require.Equal(t, "m2", answer.LLM)
	require.Equal(t, "answer from second variant", answer.Answer)
	require.Equal(t, []string{"m1", "m2"}, provider.calls)
}

func TestAskAllVariantsFailServesTemplatedFallback(t *testing.T) {
	f := newAnswerFixture(t)
	f.addChunk(t, f.acme.ID, 0, "Acme liquidity summary", 100)

	provider := &stubProvider{
		configured: true,
		fail: map[string]error{
			"m1": errors.New("quota exceeded"),
			"m2": errors.New("model retired"),
		},
	}
	answers := service.NewAnswerService(f.chunks, f.companies, provider, service.AnswerOptions{Models: []string{"m1", "m2"}})

	question := "how liquid is the company?"
	answer, err := answers.Ask(context.Background(), f.acme.ID, question)
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("Here are the most relevant sections for: '%s'", question), answer.Answer)
	require.Equal(t, service.FallbackTag, answer.LLM)
	require.Equal(t, "model retired", answer.Error)
}

func TestAskUnconfiguredProviderNeverCalled(t *testing.T) {
	f := newAnswerFixture(t)
	f.addChunk(t, f.acme.ID, 0, "Acme cash position", 100)

	provider := &stubProvider{configured: false}
	answers := service.NewAnswerService(f.chunks, f.companies, provider, service.AnswerOptions{Models: []string{"m1"}})

	answer, err := answers.Ask(context.Background(), f.acme.ID, "cash?")
	require.NoError(t, err)
	require.Equal(t, service.FallbackTag, answer.LLM)
	require.NotEmpty(t, answer.Error)
	require.Empty(t, provider.calls)
}

func TestAskFallsBackToLatestChunks(t *testing.T) {
	f := newAnswerFixture(t)
	for i := 0; i < 7; i++ {
		f.addChunk(t, f.acme.ID, i, fmt.Sprintf("filler section number%d", i), int64(100+i))
	}

	provider := &stubProvider{configured: true, response: "summary"}
	answers := service.NewAnswerService(f.chunks, f.companies, provider, service.AnswerOptions{Models: []string{"m1"}})

	// no chunk contains these terms, so the match query returns nothing
	answer, err := answers.Ask(context.Background(), f.acme.ID, "zzzunmatchable question")
	require.NoError(t, err)
	require.Equal(t, 5, answer.ChunksUsed)
	// newest first
	require.Contains(t, answer.Context, "number6")
	require.NotContains(t, answer.Context, "number0")
}
