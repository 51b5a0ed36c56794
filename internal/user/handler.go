package user

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
	List(ctx context.Context, actor *coreUser.Actor, role string) ([]*User, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// ListUsers handles GET /users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	actor, ok := internal.ActorFromContext(r.Context())
	if !ok {
		h.Logger.Error("ListUsers: actor not found in context")
		h.HandleServiceError(w, internal.ErrMissingToken)
		return
	}

	users, err := h.Service.List(r.Context(), actor, r.URL.Query().Get("role"))
	if err != nil {
		h.Logger.Warn("ListUsers: service error", "error", err, "actor_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, users)
}
