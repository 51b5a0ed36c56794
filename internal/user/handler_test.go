package user_test

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/timesheet-tracker/internal"
	coreUser "github.com/frahmantamala/timesheet-tracker/internal/core/user"
	"github.com/frahmantamala/timesheet-tracker/internal/user"
)

var _ = Describe("Handler", func() {
	var (
		logs    *bytes.Buffer
		handler *user.Handler
	)

	BeforeEach(func() {
		logs = &bytes.Buffer{}
		svc := user.NewService(&mockUserRepository{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
		handler = user.NewHandler(svc)
		handler.Logger = slog.New(slog.NewJSONHandler(logs, nil))
	})

	It("logs a forbidden listing as a warning", func() {
		employee := &coreUser.Actor{ID: "e-1", Role: coreUser.RoleEmployee, IsActive: true}
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		req = req.WithContext(internal.ContextWithActor(req.Context(), employee))
		rec := httptest.NewRecorder()

		handler.ListUsers(rec, req)

		Expect(rec.Code).To(Equal(http.StatusForbidden))
		Expect(logs.String()).To(ContainSubstring(`"level":"WARN"`))
		Expect(logs.String()).NotTo(ContainSubstring(`"level":"ERROR"`))
	})
})
