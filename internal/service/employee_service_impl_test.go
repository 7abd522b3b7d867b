package service

import (
	"time"

	"github.com/hassaammgl2/employee-management-system/internal/domain"
	"github.com/hassaammgl2/employee-management-system/internal/dto"
	pkgdto "github.com/hassaammgl2/employee-management-system/pkg/dto"
	"github.com/hassaammgl2/employee-management-system/pkg/errs"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var pkgFilterAll = pkgdto.Filter{}

func stringPtr(v string) *string { return &v }

func (s *ServiceTestSuite) Test_AddEmployee() {
	resp := s.addEmployee("Ann@Example.com", "Engineering")

	s.Equal("ann@example.com", resp.Email)
	s.Equal("Engineering", resp.Department)
	s.Require().NotNil(resp.DepartmentID)
	s.Regexp(`^E\d{5}$`, resp.EmployeeCode)
	s.Equal("2024-01-15", resp.JoinDate)
	s.Equal(domain.EmployeeStatusActive, resp.Status)
	s.Nil(resp.Avatar)
	s.Equal(int64(1), s.departmentCount("Engineering"))

	user, err := s.userRepo.GetUserByEmail(s.ctx, "ann@example.com")
	s.Require().NoError(err)
	s.Equal(domain.RoleEmployee, user.Role)

	activities, err := s.activities.GetRecentActivities(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().NotEmpty(activities)
	s.Equal("New employee Employee added to Engineering", activities[0].Action)

	notifications, err := s.notifications.GetNotifications(s.ctx, user.ID, pkgFilterAll)
	s.Require().NoError(err)
	s.Len(notifications, 1)

	select {
	case to := <-s.mailer.sent:
		s.Equal("ann@example.com", to)
	case <-time.After(time.Second):
		s.Fail("welcome e-mail was not sent")
	}
}

func (s *ServiceTestSuite) Test_AddEmployeeWithoutDepartment() {
	resp := s.addEmployee("ann@example.com", "")

	s.Empty(resp.Department)
	s.Nil(resp.DepartmentID)

	activities, err := s.activities.GetRecentActivities(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal("New employee Employee added to company", activities[0].Action)
}

func (s *ServiceTestSuite) Test_AddEmployeeRejects() {
	s.addEmployee("ann@example.com", "Engineering")
	salary := 1000.0
	negative := -1.0

	testCases := []struct {
		Name     string
		Request  dto.EmployeeRequest
		Expected error
	}{
		{
			Name:     "duplicate email",
			Request:  dto.EmployeeRequest{Name: "Ann", FatherName: "Bob", Email: "ann@example.com", Password: testPassword, JobTitle: "Dev", Salary: &salary, JoinDate: "2024-01-01", Department: "Engineering"},
			Expected: errs.ErrConflict,
		},
		{
			Name:     "blank name",
			Request:  dto.EmployeeRequest{Name: " ", FatherName: "Bob", Email: "new@example.com", Password: testPassword, JobTitle: "Dev", Salary: &salary, JoinDate: "2024-01-01", Department: "Engineering"},
			Expected: errs.ErrValidation,
		},
		{
			Name:     "blank email",
			Request:  dto.EmployeeRequest{Name: "Ann", FatherName: "Bob", Email: "  ", Password: testPassword, JobTitle: "Dev", Salary: &salary, JoinDate: "2024-01-01", Department: "Engineering"},
			Expected: errs.ErrValidation,
		},
		{
			Name:     "negative salary",
			Request:  dto.EmployeeRequest{Name: "Ann", FatherName: "Bob", Email: "new@example.com", Password: testPassword, JobTitle: "Dev", Salary: &negative, JoinDate: "2024-01-01", Department: "Engineering"},
			Expected: errs.ErrValidation,
		},
		{
			Name:     "bad join date",
			Request:  dto.EmployeeRequest{Name: "Ann", FatherName: "Bob", Email: "new@example.com", Password: testPassword, JobTitle: "Dev", Salary: &salary, JoinDate: "01/01/2024", Department: "Engineering"},
			Expected: errs.ErrValidation,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.Name, func() {
			_, err := s.employees.AddEmployee(s.ctx, primitive.NilObjectID, tc.Request)
			s.ErrorIs(err, tc.Expected)
			s.Equal(int64(1), s.departmentCount("Engineering"))
		})
	}
}

func (s *ServiceTestSuite) Test_AddEmployeeCompensatesFailedCounter() {
	employees := s.newEmployeeService(failingTracker{RosterTracker: s.tracker, err: errTrackerDown})
	salary := 1000.0

	_, err := employees.AddEmployee(s.ctx, primitive.NilObjectID, dto.EmployeeRequest{
		Name: "Ann", FatherName: "Bob", Email: "ann@example.com", Password: testPassword,
		JobTitle: "Dev", Salary: &salary, JoinDate: "2024-01-01", Department: "Engineering",
	})
	s.ErrorIs(err, errTrackerDown)

	_, err = s.userRepo.GetUserByEmail(s.ctx, "ann@example.com")
	s.ErrorIs(err, errs.ErrNotFound)

	all, err := s.employeeRepo.GetEmployees(s.ctx, domain.EmployeeFilter{}, pkgFilterAll)
	s.Require().NoError(err)
	s.Empty(all)
	s.Equal(int64(0), s.departmentCount("Engineering"))
}

// Three employees in Sales: removing one and moving one leaves one in each.
func (s *ServiceTestSuite) Test_RosterCounts() {
	first := s.addEmployee("a@example.com", "Sales")
	second := s.addEmployee("b@example.com", "Sales")
	s.addEmployee("c@example.com", "Sales")
	s.Equal(int64(3), s.departmentCount("Sales"))

	s.Require().NoError(s.employees.DeleteEmployee(s.ctx, primitive.NilObjectID, first.ID))
	s.Equal(int64(2), s.departmentCount("Sales"))

	_, err := s.userRepo.GetUserByEmail(s.ctx, "a@example.com")
	s.ErrorIs(err, errs.ErrNotFound)

	s.now = s.now.Add(time.Minute)
	moved, err := s.employees.UpdateEmployee(s.ctx, primitive.NilObjectID, dto.EmployeeUpdateRequest{
		ID:         second.ID,
		Department: stringPtr("Support"),
	})
	s.Require().NoError(err)
	s.Equal("Support", moved.Department)

	s.Equal(int64(1), s.departmentCount("Sales"))
	s.Equal(int64(1), s.departmentCount("Support"))

	activities, err := s.activities.GetRecentActivities(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal("Employee Employee moved from Sales to Support", activities[0].Action)
}

func (s *ServiceTestSuite) Test_UpdateEmployeeKeepsCountsWhenDepartmentUnchanged() {
	employee := s.addEmployee("a@example.com", "Sales")

	resp, err := s.employees.UpdateEmployee(s.ctx, primitive.NilObjectID, dto.EmployeeUpdateRequest{
		ID:         employee.ID,
		Department: stringPtr(" Sales "),
		JobTitle:   stringPtr("Lead"),
		Name:       stringPtr("Renamed"),
	})
	s.Require().NoError(err)
	s.Equal("Lead", resp.JobTitle)
	s.Equal("Renamed", resp.Name)
	s.Equal(int64(1), s.departmentCount("Sales"))

	resp, err = s.employees.UpdateEmployee(s.ctx, primitive.NilObjectID, dto.EmployeeUpdateRequest{
		ID:         employee.ID,
		Department: stringPtr(""),
	})
	s.Require().NoError(err)
	s.Nil(resp.DepartmentID)
	s.Equal(int64(0), s.departmentCount("Sales"))
}

func (s *ServiceTestSuite) Test_UpdateEmployeeRejectsTakenEmail() {
	s.addEmployee("a@example.com", "")
	employee := s.addEmployee("b@example.com", "")

	_, err := s.employees.UpdateEmployee(s.ctx, primitive.NilObjectID, dto.EmployeeUpdateRequest{
		ID:    employee.ID,
		Email: stringPtr("A@example.com"),
	})
	s.ErrorIs(err, errs.ErrConflict)
}

func (s *ServiceTestSuite) Test_UpdateEmployeeRejectsBlankFields() {
	employee := s.addEmployee("a@example.com", "")

	testCases := []struct {
		Name    string
		Request dto.EmployeeUpdateRequest
		Field   string
	}{
		{Name: "blank email", Request: dto.EmployeeUpdateRequest{ID: employee.ID, Email: stringPtr("  ")}, Field: "email"},
		{Name: "blank name", Request: dto.EmployeeUpdateRequest{ID: employee.ID, Name: stringPtr("")}, Field: "name"},
		{Name: "blank father name", Request: dto.EmployeeUpdateRequest{ID: employee.ID, FatherName: stringPtr(" ")}, Field: "fatherName"},
		{Name: "blank job title", Request: dto.EmployeeUpdateRequest{ID: employee.ID, JobTitle: stringPtr("")}, Field: "jobTitle"},
	}

	for _, tc := range testCases {
		s.Run(tc.Name, func() {
			_, err := s.employees.UpdateEmployee(s.ctx, primitive.NilObjectID, tc.Request)
			s.ErrorIs(err, errs.ErrValidation)
			s.Contains(errs.FieldErrors(err), tc.Field)
		})
	}

	user, err := s.userRepo.GetUserByEmail(s.ctx, "a@example.com")
	s.Require().NoError(err)
	s.Equal("Employee", user.Name)
}

func (s *ServiceTestSuite) Test_UpdateEmployeeIntoDeletedDepartment() {
	employee := s.addEmployee("a@example.com", "Sales")
	employees := s.newEmployeeService(vanishingResolver{RosterTracker: s.tracker, departmentRepo: s.departmentRepo})

	_, err := employees.UpdateEmployee(s.ctx, primitive.NilObjectID, dto.EmployeeUpdateRequest{
		ID:         employee.ID,
		Department: stringPtr("Ops"),
		JobTitle:   stringPtr("Lead"),
		Name:       stringPtr("Renamed"),
	})
	s.ErrorIs(err, errs.ErrNotFound)

	current, err := s.employees.GetEmployeeByID(s.ctx, employee.ID)
	s.Require().NoError(err)
	s.Equal("Sales", current.Department)
	s.Equal("Engineer", current.JobTitle)
	s.Equal("Employee", current.Name)
	s.Equal(int64(1), s.departmentCount("Sales"))

	_, err = s.departmentRepo.GetDepartmentByName(s.ctx, "Ops")
	s.ErrorIs(err, errs.ErrNotFound)
}

func (s *ServiceTestSuite) Test_GetEmployees() {
	s.addEmployee("a@example.com", "Sales")
	s.addEmployee("b@example.com", "Support")
	s.addEmployee("c@example.com", "")

	all, err := s.employees.GetEmployees(s.ctx, dto.EmployeeQuery{}, pkgFilterAll)
	s.Require().NoError(err)
	s.Len(all, 3)

	sales, err := s.employees.GetEmployees(s.ctx, dto.EmployeeQuery{Department: "Sales"}, pkgFilterAll)
	s.Require().NoError(err)
	s.Require().Len(sales, 1)
	s.Equal("a@example.com", sales[0].Email)

	none, err := s.employees.GetEmployees(s.ctx, dto.EmployeeQuery{Department: "Marketing"}, pkgFilterAll)
	s.Require().NoError(err)
	s.Empty(none)

	_, err = s.employees.GetEmployeeByID(s.ctx, "not-an-id")
	s.ErrorIs(err, errs.ErrValidation)

	_, err = s.employees.GetEmployeeByID(s.ctx, primitive.NewObjectID().Hex())
	s.ErrorIs(err, errs.ErrNotFound)
}
