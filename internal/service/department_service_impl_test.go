package service

import (
	"github.com/hassaammgl2/employee-management-system/internal/dto"
	"github.com/hassaammgl2/employee-management-system/pkg/errs"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (s *ServiceTestSuite) Test_AddDepartment() {
	resp, err := s.departments.AddDepartment(s.ctx, dto.DepartmentRequest{Name: "Finance", Head: "Maria"})
	s.Require().NoError(err)
	s.Equal(int64(0), resp.EmployeeCount)

	_, err = s.departments.AddDepartment(s.ctx, dto.DepartmentRequest{Name: "Finance"})
	s.ErrorIs(err, errs.ErrConflict)
}

func (s *ServiceTestSuite) Test_DeleteDepartmentWithStaff() {
	employee := s.addEmployee("a@example.com", "Sales")
	sales, err := s.departmentRepo.GetDepartmentByName(s.ctx, "Sales")
	s.Require().NoError(err)

	err = s.departments.DeleteDepartment(s.ctx, sales.ID.Hex())
	s.ErrorIs(err, errs.ErrConflict)
	s.Equal(errs.ErrDepartmentHasStaff.Error(), err.Error())
	s.Equal(int64(1), s.departmentCount("Sales"))

	s.Require().NoError(s.employees.DeleteEmployee(s.ctx, primitive.NilObjectID, employee.ID))
	s.NoError(s.departments.DeleteDepartment(s.ctx, sales.ID.Hex()))

	_, err = s.departments.GetDepartmentByID(s.ctx, sales.ID.Hex())
	s.ErrorIs(err, errs.ErrNotFound)
}

func (s *ServiceTestSuite) Test_UpdateDepartment() {
	finance, err := s.departments.AddDepartment(s.ctx, dto.DepartmentRequest{Name: "Finance"})
	s.Require().NoError(err)
	_, err = s.departments.AddDepartment(s.ctx, dto.DepartmentRequest{Name: "Legal"})
	s.Require().NoError(err)

	name := "Legal"
	_, err = s.departments.UpdateDepartment(s.ctx, dto.DepartmentUpdateRequest{ID: finance.ID, Name: &name})
	s.ErrorIs(err, errs.ErrConflict)

	head := "Omar"
	resp, err := s.departments.UpdateDepartment(s.ctx, dto.DepartmentUpdateRequest{ID: finance.ID, Head: &head})
	s.Require().NoError(err)
	s.Equal("Omar", resp.Head)
	s.Equal("Finance", resp.Name)
}

func (s *ServiceTestSuite) Test_ResolveDepartment() {
	first, err := s.departments.ResolveDepartment(s.ctx, dto.ResolveDepartmentRequest{Name: "Ops"})
	s.Require().NoError(err)
	s.True(first.Created)

	second, err := s.departments.ResolveDepartment(s.ctx, dto.ResolveDepartmentRequest{Name: "Ops"})
	s.Require().NoError(err)
	s.False(second.Created)
	s.Equal(first.Department.ID, second.Department.ID)
}
