package service

import (
	"context"
	"sync"
	"time"

	"github.com/hassaammgl2/employee-management-system/internal/domain"
	"github.com/hassaammgl2/employee-management-system/internal/dto"
	"github.com/hassaammgl2/employee-management-system/pkg/errs"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (s *ServiceTestSuite) Test_ResolveOrCreateDepartment() {
	created, isNew, err := s.tracker.ResolveOrCreateDepartment(s.ctx, "  Engineering ")
	s.Require().NoError(err)
	s.True(isNew)
	s.Equal("Engineering", created.Name)
	s.Equal(int64(0), created.EmployeeCount)

	existing, isNew, err := s.tracker.ResolveOrCreateDepartment(s.ctx, "Engineering")
	s.Require().NoError(err)
	s.False(isNew)
	s.Equal(created.ID, existing.ID)

	_, _, err = s.tracker.ResolveOrCreateDepartment(s.ctx, "   ")
	s.Error(err)
}

func (s *ServiceTestSuite) Test_ResolveOrCreateDepartmentConcurrently() {
	const callers = 8

	ids := make([]primitive.ObjectID, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			department, _, err := s.tracker.ResolveOrCreateDepartment(s.ctx, "Sales")
			if err == nil {
				ids[i] = department.ID
			}
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		s.Equal(ids[0], id)
		s.False(id.IsZero())
	}

	departments, err := s.departmentRepo.GetDepartments(s.ctx, pkgFilterAll)
	s.Require().NoError(err)
	s.Len(departments, 1)
}

func (s *ServiceTestSuite) Test_ApplyTransition() {
	sales, _, err := s.tracker.ResolveOrCreateDepartment(s.ctx, "Sales")
	s.Require().NoError(err)
	support, _, err := s.tracker.ResolveOrCreateDepartment(s.ctx, "Support")
	s.Require().NoError(err)

	s.Require().NoError(s.tracker.ApplyTransition(s.ctx, primitive.NilObjectID, sales.ID))
	s.Require().NoError(s.tracker.ApplyTransition(s.ctx, primitive.NilObjectID, sales.ID))
	s.Require().NoError(s.tracker.ApplyTransition(s.ctx, sales.ID, support.ID))
	s.Require().NoError(s.tracker.ApplyTransition(s.ctx, support.ID, support.ID))

	s.Equal(int64(1), s.departmentCount("Sales"))
	s.Equal(int64(1), s.departmentCount("Support"))

	s.Run("missing source department is skipped", func() {
		s.NoError(s.tracker.ApplyTransition(s.ctx, primitive.NewObjectID(), support.ID))
		s.Equal(int64(2), s.departmentCount("Support"))
	})

	s.Run("missing target department fails", func() {
		s.Error(s.tracker.ApplyTransition(s.ctx, primitive.NilObjectID, primitive.NewObjectID()))
	})
}

func (s *ServiceTestSuite) Test_Reconcile() {
	s.addEmployee("a@example.com", "Sales")
	s.addEmployee("b@example.com", "Sales")

	// Drift the stored counters away from the roster.
	sales, err := s.departmentRepo.GetDepartmentByName(s.ctx, "Sales")
	s.Require().NoError(err)
	s.Require().NoError(s.departmentRepo.IncrementEmployeeCount(s.ctx, sales.ID, 3))
	_, err = s.departmentRepo.AddDepartment(s.ctx, domain.Department{Name: "Ghost", EmployeeCount: 4})
	s.Require().NoError(err)
	_, _, err = s.tracker.ResolveOrCreateDepartment(s.ctx, "Empty")
	s.Require().NoError(err)

	first, err := s.tracker.Reconcile(s.ctx)
	s.Require().NoError(err)
	s.Equal(3, first.Checked)
	s.Equal(2, first.Pending)
	s.Empty(first.Corrections)
	s.Equal(int64(5), s.departmentCount("Sales"))

	s.Run("mismatch younger than the settle time is left alone", func() {
		s.now = s.now.Add(10 * time.Second)
		resp, err := s.tracker.Reconcile(s.ctx)
		s.Require().NoError(err)
		s.Equal(2, resp.Pending)
		s.Empty(resp.Corrections)
	})

	s.now = s.now.Add(time.Minute)
	resp, err := s.tracker.Reconcile(s.ctx)
	s.Require().NoError(err)
	s.Len(resp.Corrections, 2)
	s.Zero(resp.Pending)

	s.Equal(int64(2), s.departmentCount("Sales"))
	s.Equal(int64(0), s.departmentCount("Ghost"))
	s.Equal(int64(0), s.departmentCount("Empty"))

	again, err := s.tracker.Reconcile(s.ctx)
	s.Require().NoError(err)
	s.Empty(again.Corrections)
	s.Zero(again.Pending)
}

func (s *ServiceTestSuite) Test_ReconcileDuringMove() {
	s.addEmployee("a@example.com", "Sales")
	moving := s.addEmployee("b@example.com", "Sales")

	var passes []dto.ReconcileResponse
	employees := s.newEmployeeServiceWithRepo(s.tracker, reconcilingEmployeeRepo{
		EmployeeRepository: s.employeeRepo,
		hook: func(ctx context.Context) {
			resp, err := s.tracker.Reconcile(ctx)
			s.Require().NoError(err)
			passes = append(passes, resp)
		},
	})

	_, err := employees.UpdateEmployee(s.ctx, primitive.NilObjectID, dto.EmployeeUpdateRequest{
		ID:         moving.ID,
		Department: stringPtr("Ops"),
	})
	s.Require().NoError(err)

	s.Require().Len(passes, 1)
	s.Empty(passes[0].Corrections)
	s.Equal(1, passes[0].Pending)

	s.Equal(int64(1), s.departmentCount("Sales"))
	s.Equal(int64(1), s.departmentCount("Ops"))

	sales, err := s.departmentRepo.GetDepartmentByName(s.ctx, "Sales")
	s.Require().NoError(err)
	s.ErrorIs(s.departments.DeleteDepartment(s.ctx, sales.ID.Hex()), errs.ErrDepartmentHasStaff)

	// The mismatch seen mid-move is gone by the next run and never corrected.
	s.now = s.now.Add(time.Minute)
	resp, err := s.tracker.Reconcile(s.ctx)
	s.Require().NoError(err)
	s.Empty(resp.Corrections)
	s.Zero(resp.Pending)
	s.Equal(int64(1), s.departmentCount("Sales"))
}
