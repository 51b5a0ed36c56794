package policy_test

import (
	"errors"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/timesheet-tracker/internal"
	coreUser "github.com/frahmantamala/timesheet-tracker/internal/core/user"
	"github.com/frahmantamala/timesheet-tracker/internal/policy"
)

func TestPolicy(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Policy Suite")
}

var _ = Describe("Policy", func() {
	var (
		admin    = &coreUser.Actor{ID: "a-1", Role: coreUser.RoleAdmin, IsActive: true}
		manager  = &coreUser.Actor{ID: "m-1", Role: coreUser.RoleManager, IsActive: true}
		employee = &coreUser.Actor{ID: "e-1", Role: coreUser.RoleEmployee, IsActive: true}
		other    = &coreUser.Actor{ID: "e-2", Role: coreUser.RoleEmployee, IsActive: true}
	)

	Describe("approver-only actions", func() {
		DescribeTable("are granted to admin and manager only",
			func(action policy.Action) {
				Expect(policy.Allow(admin, action, policy.Resource{})).To(BeTrue())
				Expect(policy.Allow(manager, action, policy.Resource{})).To(BeTrue())

				err := policy.Authorize(employee, action, policy.Resource{})
				Expect(errors.Is(err, internal.ErrForbidden)).To(BeTrue())
				Expect(internal.KindOf(err)).To(Equal(internal.ErrorTypeForbidden))
			},
			Entry("create project", policy.ActionCreateProject),
			Entry("update project", policy.ActionUpdateProject),
			Entry("delete project", policy.ActionDeleteProject),
			Entry("approve timesheet", policy.ActionApproveTimesheet),
			Entry("list all users", policy.ActionListAllUsers),
		)
	})

	Describe("read_project", func() {
		res := policy.Resource{AssignedEmployees: []string{"e-1"}}

		It("allows assigned employees", func() {
			Expect(policy.Allow(employee, policy.ActionReadProject, res)).To(BeTrue())
		})

		It("forbids unassigned employees", func() {
			Expect(policy.Allow(other, policy.ActionReadProject, res)).To(BeFalse())
		})

		It("allows managers regardless of assignment", func() {
			Expect(policy.Allow(manager, policy.ActionReadProject, policy.Resource{})).To(BeTrue())
		})
	})

	Describe("create_timesheet", func() {
		It("requires employees to be assigned to the project", func() {
			err := policy.Authorize(other, policy.ActionCreateTimesheet, policy.Resource{AssignedEmployees: []string{"e-1"}})
			Expect(errors.Is(err, internal.ErrNotAssigned)).To(BeTrue())
			Expect(internal.KindOf(err)).To(Equal(internal.ErrorTypeForbidden))
		})

		It("lets approvers log hours on any project", func() {
			Expect(policy.Allow(admin, policy.ActionCreateTimesheet, policy.Resource{})).To(BeTrue())
		})
	})

	DescribeTable("timesheet ownership",
		func(action policy.Action) {
			own := policy.Resource{OwnerID: "e-1"}
			Expect(policy.Allow(employee, action, own)).To(BeTrue())
			Expect(policy.Allow(other, action, own)).To(BeFalse())
			Expect(policy.Allow(admin, action, own)).To(BeTrue())
			Expect(policy.Allow(manager, action, own)).To(BeTrue())
		},
		Entry("read", policy.ActionReadTimesheet),
		Entry("update", policy.ActionUpdateTimesheet),
		Entry("delete", policy.ActionDeleteTimesheet),
	)

	It("lets every active role list and read dashboards", func() {
		for _, a := range []*coreUser.Actor{admin, manager, employee} {
			Expect(policy.Allow(a, policy.ActionListProjects, policy.Resource{})).To(BeTrue())
			Expect(policy.Allow(a, policy.ActionListTimesheets, policy.Resource{})).To(BeTrue())
			Expect(policy.Allow(a, policy.ActionReadDashboard, policy.Resource{})).To(BeTrue())
		}
	})

	It("rejects inactive actors before looking at the role", func() {
		inactive := &coreUser.Actor{ID: "a-2", Role: coreUser.RoleAdmin, IsActive: false}
		err := policy.Authorize(inactive, policy.ActionListProjects, policy.Resource{})
		Expect(errors.Is(err, internal.ErrUserInactive)).To(BeTrue())
		Expect(internal.KindOf(err)).To(Equal(internal.ErrorTypeUnauthenticated))
	})

	It("denies unknown actions", func() {
		Expect(policy.Allow(admin, policy.Action("launch_rocket"), policy.Resource{})).To(BeFalse())
	})

	Describe("ScopeEmployeeID", func() {
		It("pins employees to themselves", func() {
			Expect(policy.ScopeEmployeeID(employee, "e-2")).To(Equal("e-1"))
			Expect(policy.ScopeEmployeeID(employee, "")).To(Equal("e-1"))
		})

		It("keeps the requested filter for approvers", func() {
			Expect(policy.ScopeEmployeeID(manager, "e-2")).To(Equal("e-2"))
			Expect(policy.ScopeEmployeeID(admin, "")).To(BeEmpty())
		})
	})
})
