package timesheet_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/timesheet-tracker/internal"
	coreUser "github.com/frahmantamala/timesheet-tracker/internal/core/user"
	"github.com/frahmantamala/timesheet-tracker/internal/timesheet"
)

func ptr[T any](v T) *T { return &v }

var _ = Describe("Timesheet state machine", func() {
	var (
		t        *timesheet.Timesheet
		now      time.Time
		employee = &coreUser.Actor{ID: "e-1", Role: coreUser.RoleEmployee, IsActive: true}
		manager  = &coreUser.Actor{ID: "m-1", Role: coreUser.RoleManager, IsActive: true}
	)

	BeforeEach(func() {
		now = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
		t = timesheet.NewTimesheet("t-1", "e-1", timesheet.CreateTimesheetDTO{
			ProjectID: "p-1",
			Date:      now,
			Hours:     8,
		}, now)
	})

	It("starts as a draft without stamps", func() {
		Expect(t.Status).To(Equal(timesheet.StatusDraft))
		Expect(t.SubmittedAt).To(BeNil())
		Expect(t.ApprovedAt).To(BeNil())
		Expect(t.RejectedAt).To(BeNil())
	})

	Describe("ApplyUpdate", func() {
		It("stamps submitted_at when an employee submits", func() {
			later := now.Add(time.Hour)
			Expect(t.ApplyUpdate(employee, timesheet.UpdateTimesheetDTO{Status: ptr("submitted")}, later)).To(Succeed())
			Expect(t.Status).To(Equal(timesheet.StatusSubmitted))
			Expect(t.SubmittedAt).NotTo(BeNil())
			Expect(t.SubmittedAt.Equal(later)).To(BeTrue())
			Expect(t.UpdatedAt.Equal(later)).To(BeTrue())
		})

		It("merges only the provided fields", func() {
			Expect(t.ApplyUpdate(employee, timesheet.UpdateTimesheetDTO{Description: ptr("retro")}, now)).To(Succeed())
			Expect(t.Hours).To(Equal(8.0))
			Expect(t.Description).To(Equal("retro"))
			Expect(t.Status).To(Equal(timesheet.StatusDraft))
			Expect(t.EmployeeID).To(Equal("e-1"))
			Expect(t.ProjectID).To(Equal("p-1"))
		})

		It("stops employees from approving their own work", func() {
			err := t.ApplyUpdate(employee, timesheet.UpdateTimesheetDTO{Status: ptr("approved")}, now)
			Expect(err).To(MatchError(internal.ErrInvalidTransition))
			Expect(t.Status).To(Equal(timesheet.StatusDraft))
		})

		It("freezes decided timesheets for employees", func() {
			Expect(t.Decide(manager, timesheet.StatusApproved, nil, now)).To(Succeed())
			err := t.ApplyUpdate(employee, timesheet.UpdateTimesheetDTO{Hours: ptr(2.0)}, now)
			Expect(err).To(MatchError(internal.ErrCannotModifyTimesheet))
			Expect(t.Hours).To(Equal(8.0))
		})

		It("lets managers decide an undecided timesheet through an update", func() {
			Expect(t.ApplyUpdate(manager, timesheet.UpdateTimesheetDTO{Status: ptr("rejected")}, now)).To(Succeed())
			Expect(t.Status).To(Equal(timesheet.StatusRejected))
			Expect(*t.RejectedBy).To(Equal("m-1"))
			Expect(t.ApprovedAt).To(BeNil())
			Expect(t.ApprovedBy).To(BeNil())
		})

		It("refuses to re-decide through an update", func() {
			Expect(t.Decide(manager, timesheet.StatusApproved, nil, now)).To(Succeed())
			later := now.Add(time.Hour)
			other := &coreUser.Actor{ID: "m-2", Role: coreUser.RoleManager, IsActive: true}

			err := t.ApplyUpdate(other, timesheet.UpdateTimesheetDTO{Status: ptr("approved"), Hours: ptr(1.0)}, later)
			Expect(err).To(MatchError(internal.ErrAlreadyDecided))
			Expect(t.ApplyUpdate(other, timesheet.UpdateTimesheetDTO{Status: ptr("rejected")}, later)).To(MatchError(internal.ErrAlreadyDecided))

			Expect(t.Status).To(Equal(timesheet.StatusApproved))
			Expect(t.Hours).To(Equal(8.0))
			Expect(*t.ApprovedBy).To(Equal("m-1"))
			Expect(t.ApprovedAt.Equal(now)).To(BeTrue())
		})

		It("clears the decision when a manager reopens a timesheet", func() {
			Expect(t.Decide(manager, timesheet.StatusRejected, ptr("wrong project"), now)).To(Succeed())
			Expect(t.ApplyUpdate(manager, timesheet.UpdateTimesheetDTO{Status: ptr("draft")}, now)).To(Succeed())
			Expect(t.Status).To(Equal(timesheet.StatusDraft))
			Expect(t.RejectedAt).To(BeNil())
			Expect(t.RejectedBy).To(BeNil())
			Expect(t.RejectionReason).To(BeNil())

			Expect(t.Decide(manager, timesheet.StatusApproved, nil, now)).To(Succeed())
			Expect(t.ApplyUpdate(manager, timesheet.UpdateTimesheetDTO{Status: ptr("submitted")}, now)).To(Succeed())
			Expect(t.Status).To(Equal(timesheet.StatusSubmitted))
			Expect(t.SubmittedAt).NotTo(BeNil())
			Expect(t.ApprovedAt).To(BeNil())
			Expect(t.ApprovedBy).To(BeNil())
		})
	})

	Describe("UpdateTimesheetDTO", func() {
		It("reports negative hours with the hours code", func() {
			err := timesheet.UpdateTimesheetDTO{Hours: ptr(-1.0)}.Validate()
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			details := appErr.Details.(internal.ValidationErrors)
			Expect(details.Errors).To(HaveLen(1))
			Expect(details.Errors[0].Field).To(Equal("hours"))
			Expect(details.Errors[0].Code).To(Equal(string(internal.ErrCodeInvalidHours)))
		})

		It("accepts an empty patch", func() {
			Expect(timesheet.UpdateTimesheetDTO{}.Validate()).To(Succeed())
		})
	})

	Describe("Decide", func() {
		BeforeEach(func() {
			Expect(t.ApplyUpdate(employee, timesheet.UpdateTimesheetDTO{Status: ptr("submitted")}, now)).To(Succeed())
		})

		It("records the approver and drops any reason", func() {
			Expect(t.Decide(manager, timesheet.StatusApproved, ptr("ignored"), now)).To(Succeed())
			Expect(t.Status).To(Equal(timesheet.StatusApproved))
			Expect(*t.ApprovedBy).To(Equal("m-1"))
			Expect(t.ApprovedAt).NotTo(BeNil())
			Expect(t.RejectionReason).To(BeNil())
		})

		It("records the rejection reason", func() {
			Expect(t.Decide(manager, timesheet.StatusRejected, ptr("wrong project"), now)).To(Succeed())
			Expect(t.Status).To(Equal(timesheet.StatusRejected))
			Expect(*t.RejectedBy).To(Equal("m-1"))
			Expect(*t.RejectionReason).To(Equal("wrong project"))
			Expect(t.ApprovedAt).To(BeNil())
		})

		It("accepts a rejection without a reason", func() {
			Expect(t.Decide(manager, timesheet.StatusRejected, nil, now)).To(Succeed())
			Expect(t.RejectionReason).To(BeNil())
		})

		It("refuses non-decision statuses", func() {
			Expect(t.Decide(manager, timesheet.StatusDraft, nil, now)).To(MatchError(internal.ErrInvalidApprovalStatus))
			Expect(t.Status).To(Equal(timesheet.StatusSubmitted))
		})

		It("refuses to decide twice", func() {
			Expect(t.Decide(manager, timesheet.StatusApproved, nil, now)).To(Succeed())
			Expect(t.Decide(manager, timesheet.StatusRejected, nil, now)).To(MatchError(internal.ErrAlreadyDecided))
			Expect(t.Status).To(Equal(timesheet.StatusApproved))
		})
	})

	Describe("CheckDelete", func() {
		It("allows employees to delete drafts", func() {
			Expect(t.CheckDelete(employee)).To(Succeed())
		})

		It("blocks employees on decided timesheets but not managers", func() {
			Expect(t.Decide(manager, timesheet.StatusRejected, nil, now)).To(Succeed())
			Expect(t.CheckDelete(employee)).To(MatchError(internal.ErrCannotDeleteTimesheet))
			Expect(t.CheckDelete(manager)).To(Succeed())
		})
	})
})
