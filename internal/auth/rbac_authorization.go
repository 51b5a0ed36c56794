package auth

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/timesheet-tracker/internal"
	"github.com/frahmantamala/timesheet-tracker/internal/policy"
	"github.com/frahmantamala/timesheet-tracker/internal/transport"
)

// RBACAuthorization gates whole routes on role-only actions. Resource-scoped
// decisions stay in the services where the resource is loaded.
type RBACAuthorization struct {
	*transport.BaseHandler
}

func NewRBACAuthorization(logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{BaseHandler: transport.NewBaseHandler(logger)}
}

func (ra *RBACAuthorization) Require(action policy.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := internal.ActorFromContext(r.Context())
			if !ok {
				ra.Logger.Warn("authorization check failed: actor not found in context")
				ra.HandleServiceError(w, internal.ErrMissingToken)
				return
			}

			if err := policy.Authorize(actor, action, policy.Resource{}); err != nil {
				ra.Logger.WarnContext(r.Context(), "access denied",
					"user_id", actor.ID,
					"role", actor.Role,
					"action", action)
				ra.HandleServiceError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (ra *RBACAuthorization) RequireManageProjects() func(http.Handler) http.Handler {
	return ra.Require(policy.ActionCreateProject)
}

func (ra *RBACAuthorization) RequireApproveTimesheet() func(http.Handler) http.Handler {
	return ra.Require(policy.ActionApproveTimesheet)
}

func (ra *RBACAuthorization) RequireListUsers() func(http.Handler) http.Handler {
	return ra.Require(policy.ActionListAllUsers)
}
