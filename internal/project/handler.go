package project

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/timesheet-tracker/internal"
	coreUser "github.com/frahmantamala/timesheet-tracker/internal/core/user"
	"github.com/frahmantamala/timesheet-tracker/internal/transport"
	"github.com/frahmantamala/timesheet-tracker/pkg/logger"
)

type ServiceAPI interface {
	Create(ctx context.Context, actor *coreUser.Actor, dto ProjectDTO) (*Project, error)
	Get(ctx context.Context, actor *coreUser.Actor, id string) (*Project, error)
	List(ctx context.Context, actor *coreUser.Actor) ([]*Project, error)
	Replace(ctx context.Context, actor *coreUser.Actor, id string, dto ProjectDTO) (*Project, error)
	Delete(ctx context.Context, actor *coreUser.Actor, id string) error
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

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	actor, ok := internal.ActorFromContext(r.Context())
	if !ok {
		h.HandleServiceError(w, internal.ErrMissingToken)
		return
	}

	var dto ProjectDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Warn("CreateProject: invalid request body", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	p, err := h.Service.Create(r.Context(), actor, dto)
	if err != nil {
		h.Logger.Warn("CreateProject: service error", "error", err, "actor_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, p)
}

func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	actor, ok := internal.ActorFromContext(r.Context())
	if !ok {
		h.HandleServiceError(w, internal.ErrMissingToken)
		return
	}

	projects, err := h.Service.List(r.Context(), actor)
	if err != nil {
		h.Logger.Error("ListProjects: service error", "error", err, "actor_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, projects)
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	actor, ok := internal.ActorFromContext(r.Context())
	if !ok {
		h.HandleServiceError(w, internal.ErrMissingToken)
		return
	}

	id := chi.URLParam(r, "id")
	p, err := h.Service.Get(r.Context(), actor, id)
	if err != nil {
		h.Logger.Warn("GetProject: service error", "error", err, "project_id", id, "actor_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) ReplaceProject(w http.ResponseWriter, r *http.Request) {
	actor, ok := internal.ActorFromContext(r.Context())
	if !ok {
		h.HandleServiceError(w, internal.ErrMissingToken)
		return
	}

	id := chi.URLParam(r, "id")
	var dto ProjectDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	p, err := h.Service.Replace(r.Context(), actor, id, dto)
	if err != nil {
		h.Logger.Warn("ReplaceProject: service error", "error", err, "project_id", id, "actor_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	actor, ok := internal.ActorFromContext(r.Context())
	if !ok {
		h.HandleServiceError(w, internal.ErrMissingToken)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.Service.Delete(r.Context(), actor, id); err != nil {
		h.Logger.Warn("DeleteProject: service error", "error", err, "project_id", id, "actor_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Project deleted successfully"})
}
