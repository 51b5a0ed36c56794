package timesheet

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
	Create(ctx context.Context, actor *coreUser.Actor, dto CreateTimesheetDTO) (*Timesheet, error)
	Get(ctx context.Context, actor *coreUser.Actor, id string) (*Timesheet, error)
	List(ctx context.Context, actor *coreUser.Actor, filter Filter) ([]*Timesheet, error)
	Update(ctx context.Context, actor *coreUser.Actor, id string, dto UpdateTimesheetDTO) (*Timesheet, error)
	Decide(ctx context.Context, actor *coreUser.Actor, id string, dto ApprovalDTO) (*Timesheet, error)
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

func (h *Handler) CreateTimesheet(w http.ResponseWriter, r *http.Request) {
	actor, ok := internal.ActorFromContext(r.Context())
	if !ok {
		h.Logger.Error("CreateTimesheet: actor not found in context")
		h.HandleServiceError(w, internal.ErrMissingToken)
		return
	}

	var dto CreateTimesheetDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Warn("CreateTimesheet: invalid request body", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	t, err := h.Service.Create(r.Context(), actor, dto)
	if err != nil {
		h.Logger.Warn("CreateTimesheet: service error", "error", err, "actor_id", actor.ID, "project_id", dto.ProjectID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateTimesheet: timesheet created successfully",
		"timesheet_id", t.ID,
		"employee_id", t.EmployeeID,
		"hours", t.Hours)

	h.WriteJSON(w, http.StatusCreated, t)
}

// ListTimesheets handles GET /timesheets?project_id=&employee_id=&status=
func (h *Handler) ListTimesheets(w http.ResponseWriter, r *http.Request) {
	actor, ok := internal.ActorFromContext(r.Context())
	if !ok {
		h.HandleServiceError(w, internal.ErrMissingToken)
		return
	}

	q := r.URL.Query()
	filter := Filter{
		ProjectID:  q.Get("project_id"),
		EmployeeID: q.Get("employee_id"),
		Status:     Status(q.Get("status")),
	}

	timesheets, err := h.Service.List(r.Context(), actor, filter)
	if err != nil {
		h.Logger.Warn("ListTimesheets: service error", "error", err, "actor_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, timesheets)
}

func (h *Handler) GetTimesheet(w http.ResponseWriter, r *http.Request) {
	actor, ok := internal.ActorFromContext(r.Context())
	if !ok {
		h.HandleServiceError(w, internal.ErrMissingToken)
		return
	}

	id := chi.URLParam(r, "id")
	t, err := h.Service.Get(r.Context(), actor, id)
	if err != nil {
		h.Logger.Warn("GetTimesheet: service error", "error", err, "timesheet_id", id, "actor_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, t)
}

func (h *Handler) UpdateTimesheet(w http.ResponseWriter, r *http.Request) {
	actor, ok := internal.ActorFromContext(r.Context())
	if !ok {
		h.HandleServiceError(w, internal.ErrMissingToken)
		return
	}

	id := chi.URLParam(r, "id")
	var dto UpdateTimesheetDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	t, err := h.Service.Update(r.Context(), actor, id, dto)
	if err != nil {
		h.Logger.Warn("UpdateTimesheet: service error", "error", err, "timesheet_id", id, "actor_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, t)
}

func (h *Handler) ApproveTimesheet(w http.ResponseWriter, r *http.Request) {
	actor, ok := internal.ActorFromContext(r.Context())
	if !ok {
		h.HandleServiceError(w, internal.ErrMissingToken)
		return
	}

	id := chi.URLParam(r, "id")
	var dto ApprovalDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	t, err := h.Service.Decide(r.Context(), actor, id, dto)
	if err != nil {
		h.Logger.Warn("ApproveTimesheet: service error", "error", err, "timesheet_id", id, "manager_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("ApproveTimesheet: decision stored",
		"timesheet_id", id,
		"status", t.Status,
		"manager_id", actor.ID)

	h.WriteJSON(w, http.StatusOK, t)
}

func (h *Handler) DeleteTimesheet(w http.ResponseWriter, r *http.Request) {
	actor, ok := internal.ActorFromContext(r.Context())
	if !ok {
		h.HandleServiceError(w, internal.ErrMissingToken)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.Service.Delete(r.Context(), actor, id); err != nil {
		h.Logger.Warn("DeleteTimesheet: service error", "error", err, "timesheet_id", id, "actor_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Timesheet deleted successfully"})
}
