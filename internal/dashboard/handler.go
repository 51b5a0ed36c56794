package dashboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/timesheet-tracker/internal"
	coreUser "github.com/frahmantamala/timesheet-tracker/internal/core/user"
	"github.com/frahmantamala/timesheet-tracker/internal/transport"
	"github.com/frahmantamala/timesheet-tracker/pkg/logger"
)

type ServiceAPI interface {
	Summary(ctx context.Context, actor *coreUser.Actor) (interface{}, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

// GetSummary handles GET /dashboard/summary
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	actor, ok := internal.ActorFromContext(r.Context())
	if !ok {
		h.HandleServiceError(w, internal.ErrMissingToken)
		return
	}

	summary, err := h.Service.Summary(r.Context(), actor)
	if err != nil {
		h.Logger.Error("GetSummary: service error", "error", err, "actor_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, summary)
}
