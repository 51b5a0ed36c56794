package internal_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/timesheet-tracker/internal"
)

var _ = Describe("AppError", func() {
	It("matches sentinels through wrapping and copies", func() {
		wrapped := fmt.Errorf("loading: %w", internal.ErrTimesheetNotFound.WithCause(errors.New("no rows")))
		Expect(errors.Is(wrapped, internal.ErrTimesheetNotFound)).To(BeTrue())
		Expect(errors.Is(wrapped, internal.ErrProjectNotFound)).To(BeFalse())
		Expect(internal.KindOf(wrapped)).To(Equal(internal.ErrorTypeNotFound))
	})

	It("does not mutate the sentinel when adding a cause", func() {
		_ = internal.ErrForbidden.WithCause(errors.New("boom"))
		Expect(internal.ErrForbidden.Cause).To(BeNil())
	})

	It("treats foreign errors as internal", func() {
		Expect(internal.KindOf(errors.New("plain"))).To(Equal(internal.ErrorTypeInternal))
	})

	It("renders the error envelope", func() {
		status, body := internal.NewValidationFieldError("hours", "hours must be >= 0", internal.ErrCodeInvalidHours).ToHTTPResponse()
		Expect(status).To(Equal(http.StatusBadRequest))

		raw, err := json.Marshal(body)
		Expect(err).NotTo(HaveOccurred())
		Expect(raw).To(MatchJSON(`{
			"error": {
				"type": "invalid_request",
				"code": "VALIDATION_FAILED",
				"message": "hours must be >= 0",
				"details": {"errors": [{"field": "hours", "message": "hours must be >= 0", "code": "INVALID_HOURS"}]}
			}
		}`))
	})

	It("keeps the cause out of the body", func() {
		_, body := internal.NewUnavailableError("failed to list timesheets", errors.New("dial tcp: refused")).ToHTTPResponse()
		raw, err := json.Marshal(body)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(raw)).NotTo(ContainSubstring("refused"))
		Expect(string(raw)).To(ContainSubstring(`"type":"unavailable"`))
	})
})
