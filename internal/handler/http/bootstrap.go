package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/session"
	"github.com/cmlabs-hris/liff-attendance-go/internal/handler/http/response"
)

type BootstrapHandler interface {
	Bootstrap(w http.ResponseWriter, r *http.Request)
}

type bootstrapHandlerImpl struct {
	bootstrapService session.BootstrapService
}

func NewBootstrapHandler(bootstrapService session.BootstrapService) BootstrapHandler {
	return &bootstrapHandlerImpl{bootstrapService: bootstrapService}
}

// Bootstrap returns everything the mini-app loads after sign-in.
func (h *bootstrapHandlerImpl) Bootstrap(w http.ResponseWriter, r *http.Request) {
	state, err := h.bootstrapService.Bootstrap(r.Context(), lineUserFromContext(r))
	if err != nil {
		phase := session.PhaseIdle
		if state != nil {
			phase = state.Phase
		}
		slog.Error("Bootstrap failed", "phase", phase, "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, state)
}
