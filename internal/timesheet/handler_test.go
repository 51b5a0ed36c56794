package timesheet_test

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
	"github.com/frahmantamala/timesheet-tracker/internal/timesheet"
)

var _ = Describe("Handler", func() {
	var (
		logs    *bytes.Buffer
		handler *timesheet.Handler
	)

	BeforeEach(func() {
		logs = &bytes.Buffer{}
		svc := timesheet.NewService(newMockTimesheetRepository(), stubProjects{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
		handler = timesheet.NewHandler(svc)
		handler.Logger = slog.New(slog.NewJSONHandler(logs, nil))
	})

	It("logs an invalid status filter as a warning", func() {
		manager := &coreUser.Actor{ID: "m-1", Role: coreUser.RoleManager, IsActive: true}
		req := httptest.NewRequest(http.MethodGet, "/api/timesheets?status=archived", nil)
		req = req.WithContext(internal.ContextWithActor(req.Context(), manager))
		rec := httptest.NewRecorder()

		handler.ListTimesheets(rec, req)

		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(logs.String()).To(ContainSubstring(`"level":"WARN"`))
		Expect(logs.String()).NotTo(ContainSubstring(`"level":"ERROR"`))
	})
})
