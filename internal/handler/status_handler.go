package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/bsanalyst/backend/internal/ai"
	"github.com/bsanalyst/backend/internal/pkg/response"
)

// StatusHandler exposes health and generation-capability diagnostics.
type StatusHandler struct {
	provider ai.IProvider
	models   []string
}

func NewStatusHandler(provider ai.IProvider, models []string) *StatusHandler {
	return &StatusHandler{provider: provider, models: models}
}

func (h *StatusHandler) Health(c *gin.Context) {
	response.Success(c, gin.H{
		"status":        "ok",
		"ai_configured": h.provider != nil && h.provider.Configured(),
	})
}

func (h *StatusHandler) AIStatus(c *gin.Context) {
	configured := h.provider != nil && h.provider.Configured()
	data := gin.H{
		"configured": configured,
		"models":     h.models,
	}
	if h.provider != nil {
		data["provider"] = h.provider.Name()
	}
	if !configured {
		data["error"] = "generation credential not configured"
	}
	response.Success(c, data)
}
