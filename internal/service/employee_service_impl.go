package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hassaammgl2/employee-management-system/internal/domain"
	"github.com/hassaammgl2/employee-management-system/internal/dto"
	"github.com/hassaammgl2/employee-management-system/internal/repository"
	pkgdto "github.com/hassaammgl2/employee-management-system/pkg/dto"
	"github.com/hassaammgl2/employee-management-system/pkg/errs"
	"github.com/hassaammgl2/employee-management-system/pkg/utils"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EmployeeServiceImpl struct {
	transactor     repository.Transactor
	userRepo       repository.UserRepository
	employeeRepo   repository.EmployeeRepository
	departmentRepo repository.DepartmentRepository
	tracker        RosterTracker
	hasher         *utils.PasswordHasher
	activities     ActivityService
	notifier       Notifier
	mailer         Mailer
	now            Clock
}

type EmployeeServiceDeps struct {
	Transactor     repository.Transactor
	UserRepo       repository.UserRepository
	EmployeeRepo   repository.EmployeeRepository
	DepartmentRepo repository.DepartmentRepository
	Tracker        RosterTracker
	Hasher         *utils.PasswordHasher
	Activities     ActivityService
	Notifier       Notifier
	// Mailer may be nil, in which case no welcome e-mail is sent.
	Mailer Mailer
	Now    Clock
}

func CreateNewEmployeeService(deps EmployeeServiceDeps) EmployeeService {
	return &EmployeeServiceImpl{
		transactor:     deps.Transactor,
		userRepo:       deps.UserRepo,
		employeeRepo:   deps.EmployeeRepo,
		departmentRepo: deps.DepartmentRepo,
		tracker:        deps.Tracker,
		hasher:         deps.Hasher,
		activities:     deps.Activities,
		notifier:       deps.Notifier,
		mailer:         deps.Mailer,
		now:            deps.Now,
	}
}

func parseObjectID(id string, field string) (primitive.ObjectID, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, errs.ValidationField(field, "objectid")
	}
	return objectID, nil
}

func departmentLabel(department *domain.Department) string {
	if department == nil {
		return "company"
	}
	return department.Name
}

func (s *EmployeeServiceImpl) AddEmployee(ctx context.Context, actor primitive.ObjectID, req dto.EmployeeRequest) (resp dto.EmployeeResponse, err error) {
	email := normalizeEmail(req.Email)

	fields := map[string]string{}
	if len(strings.TrimSpace(req.Name)) < 2 {
		fields["name"] = "min"
	}
	if len(strings.TrimSpace(req.FatherName)) < 2 {
		fields["fatherName"] = "min"
	}
	if email == "" {
		fields["email"] = "required"
	}
	if !utils.IsStrongPassword(req.Password) {
		fields["password"] = "password"
	}
	if req.Salary == nil || *req.Salary < 0 {
		fields["salary"] = "min"
	}
	joinDate, dateErr := utils.ParseISODate(req.JoinDate)
	if dateErr != nil {
		fields["joinDate"] = "iso8601"
	}
	status := req.Status
	if status == "" {
		status = domain.EmployeeStatusActive
	}
	if len(fields) > 0 {
		return resp, errs.Validation(fields)
	}

	if _, err = s.userRepo.GetUserByEmail(ctx, email); err == nil {
		return resp, errs.ErrEmailAlreadyUsed
	} else if !errors.Is(err, errs.ErrNotFound) {
		return resp, err
	}

	var department *domain.Department
	if name := strings.TrimSpace(req.Department); name != "" {
		resolved, _, err := s.tracker.ResolveOrCreateDepartment(ctx, name)
		if err != nil {
			return resp, err
		}
		department = &resolved
	}

	hash, err := s.hasher.HashPassword(req.Password)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddEmployee").Msg("")
		return resp, err
	}

	now := s.now().UTC()
	user := domain.User{
		Name:       strings.TrimSpace(req.Name),
		FatherName: strings.TrimSpace(req.FatherName),
		Email:      email,
		Password:   hash,
		Role:       domain.RoleEmployee,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	employee := domain.Employee{
		JobTitle:  strings.TrimSpace(req.JobTitle),
		Salary:    *req.Salary,
		Status:    status,
		JoinDate:  joinDate,
		Avatar:    req.Avatar,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if department != nil {
		employee.Department = department.ID
	}

	err = s.transactor.HandleTrx(ctx, func(ctx context.Context) error {
		var err error
		user.ID, user.EmployeeCode, err = addUserWithCode(ctx, s.userRepo, user, "", utils.EmployeeCodePrefix)
		if err != nil {
			return err
		}

		employee.UserID = user.ID
		employee.ID, err = s.employeeRepo.AddEmployee(ctx, employee)
		if err != nil {
			return err
		}

		return s.tracker.ApplyTransition(ctx, primitive.NilObjectID, employee.Department)
	})
	if err != nil {
		s.compensateOnboarding(ctx, user.ID, employee.ID, err)
		return resp, err
	}

	s.activities.LogActivity(ctx, actor, fmt.Sprintf("New employee %s added to %s", user.Name, departmentLabel(department)), domain.ActivityEmployee)

	if err := s.notifier.Notify(ctx, dto.NotificationEvent{
		UserID:  user.ID.Hex(),
		Title:   "Welcome",
		Message: fmt.Sprintf("Your account has been created. Your employee code is %s.", user.EmployeeCode),
		Type:    domain.NotificationSuccess,
	}); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddEmployee").Msg("failed to notify new employee")
	}

	s.sendWelcomeEmail(ctx, user)

	return dto.CreateEmployeeResponse(employee, user, department), nil
}

// compensateOnboarding removes whatever the failed onboarding left behind.
// Inside a committed-or-aborted transaction there is nothing to remove.
func (s *EmployeeServiceImpl) compensateOnboarding(ctx context.Context, userID primitive.ObjectID, employeeID primitive.ObjectID, cause error) {
	partial := false

	if !employeeID.IsZero() {
		err := s.employeeRepo.DeleteEmployee(ctx, employeeID)
		if err == nil {
			partial = true
		} else if !errors.Is(err, errs.ErrNotFound) {
			log.Ctx(ctx).Error().Err(err).Str("component", "AddEmployee").Str("employee", employeeID.Hex()).Msg("failed to remove orphaned employee profile")
		}
	}

	if !userID.IsZero() {
		err := s.userRepo.DeleteUser(ctx, userID)
		if err == nil {
			partial = true
		} else if !errors.Is(err, errs.ErrNotFound) {
			log.Ctx(ctx).Error().Err(err).Str("component", "AddEmployee").Str("user", userID.Hex()).Msg("failed to remove orphaned user")
		}
	}

	if partial {
		log.Ctx(ctx).Error().Err(cause).Str("component", "AddEmployee").Msg("onboarding failed part way, partial writes compensated")
		return
	}

	log.Ctx(ctx).Warn().Err(cause).Str("component", "AddEmployee").Msg("onboarding failed")
}

func (s *EmployeeServiceImpl) sendWelcomeEmail(ctx context.Context, user domain.User) {
	if s.mailer == nil {
		return
	}

	ctx = context.WithoutCancel(ctx)
	go func() {
		if err := s.mailer.SendWelcome(ctx, user.Email, user.Name, user.EmployeeCode); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("component", "sendWelcomeEmail").Str("user", user.ID.Hex()).Msg("")
		}
	}()
}

func (s *EmployeeServiceImpl) GetEmployees(ctx context.Context, query dto.EmployeeQuery, param pkgdto.Filter) (resp []dto.EmployeeResponse, err error) {
	filter := domain.EmployeeFilter{Status: query.Status}

	if query.Department != "" {
		if id, parseErr := primitive.ObjectIDFromHex(query.Department); parseErr == nil {
			filter.Department = id
		} else {
			department, err := s.departmentRepo.GetDepartmentByName(ctx, strings.TrimSpace(query.Department))
			if errors.Is(err, errs.ErrNotFound) {
				return []dto.EmployeeResponse{}, nil
			}
			if err != nil {
				return nil, err
			}
			filter.Department = department.ID
		}
	}

	employees, err := s.employeeRepo.GetEmployees(ctx, filter, param)
	if err != nil {
		return nil, err
	}

	departmentIDs := []primitive.ObjectID{}
	seen := map[primitive.ObjectID]bool{}
	for _, employee := range employees {
		if employee.HasDepartment() && !seen[employee.Department] {
			seen[employee.Department] = true
			departmentIDs = append(departmentIDs, employee.Department)
		}
	}

	departments, err := s.departmentRepo.GetDepartmentsByIDs(ctx, departmentIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]domain.Department, len(departments))
	for _, department := range departments {
		byID[department.ID] = department
	}

	resp = make([]dto.EmployeeResponse, 0, len(employees))
	for _, employee := range employees {
		user, err := s.userRepo.GetUserByID(ctx, employee.UserID)
		if err != nil && !errors.Is(err, errs.ErrNotFound) {
			return nil, err
		}

		var department *domain.Department
		if d, ok := byID[employee.Department]; ok {
			department = &d
		}

		resp = append(resp, dto.CreateEmployeeResponse(employee, user, department))
	}

	return resp, nil
}

func (s *EmployeeServiceImpl) GetEmployeeByID(ctx context.Context, id string) (resp dto.EmployeeResponse, err error) {
	employeeID, err := parseObjectID(id, "id")
	if err != nil {
		return resp, err
	}

	employee, err := s.employeeRepo.GetEmployeeByID(ctx, employeeID)
	if err != nil {
		return resp, err
	}

	return s.toResponse(ctx, employee)
}

func (s *EmployeeServiceImpl) GetEmployeeByUserID(ctx context.Context, userID primitive.ObjectID) (resp dto.EmployeeResponse, err error) {
	employee, err := s.employeeRepo.GetEmployeeByUserID(ctx, userID)
	if err != nil {
		return resp, err
	}

	return s.toResponse(ctx, employee)
}

func (s *EmployeeServiceImpl) toResponse(ctx context.Context, employee domain.Employee) (resp dto.EmployeeResponse, err error) {
	user, err := s.userRepo.GetUserByID(ctx, employee.UserID)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return resp, err
	}

	department, err := s.loadDepartment(ctx, employee.Department)
	if err != nil {
		return resp, err
	}

	return dto.CreateEmployeeResponse(employee, user, department), nil
}

func (s *EmployeeServiceImpl) loadDepartment(ctx context.Context, id primitive.ObjectID) (*domain.Department, error) {
	if id.IsZero() {
		return nil, nil
	}

	department, err := s.departmentRepo.GetDepartmentByID(ctx, id)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &department, nil
}

func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, actor primitive.ObjectID, req dto.EmployeeUpdateRequest) (resp dto.EmployeeResponse, err error) {
	employeeID, err := parseObjectID(req.ID, "id")
	if err != nil {
		return resp, err
	}

	employee, err := s.employeeRepo.GetEmployeeByID(ctx, employeeID)
	if err != nil {
		return resp, err
	}

	user, err := s.userRepo.GetUserByID(ctx, employee.UserID)
	if err != nil {
		return resp, err
	}

	fields := map[string]string{}
	if req.Name != nil && len(strings.TrimSpace(*req.Name)) < 2 {
		fields["name"] = "min"
	}
	if req.FatherName != nil && len(strings.TrimSpace(*req.FatherName)) < 2 {
		fields["fatherName"] = "min"
	}
	if req.Email != nil && normalizeEmail(*req.Email) == "" {
		fields["email"] = "required"
	}
	if req.JobTitle != nil && len(strings.TrimSpace(*req.JobTitle)) < 2 {
		fields["jobTitle"] = "min"
	}
	if len(fields) > 0 {
		return resp, errs.Validation(fields)
	}

	userChanged := false
	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
		userChanged = true
	}
	if req.FatherName != nil {
		user.FatherName = strings.TrimSpace(*req.FatherName)
		userChanged = true
	}
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email != user.Email {
			existing, err := s.userRepo.GetUserByEmail(ctx, email)
			if err == nil && existing.ID != user.ID {
				return resp, errs.ErrEmailAlreadyUsed
			}
			if err != nil && !errors.Is(err, errs.ErrNotFound) {
				return resp, err
			}
		}
		user.Email = email
		userChanged = true
	}

	if req.JobTitle != nil {
		employee.JobTitle = strings.TrimSpace(*req.JobTitle)
	}
	if req.Salary != nil {
		if *req.Salary < 0 {
			return resp, errs.ValidationField("salary", "min")
		}
		employee.Salary = *req.Salary
	}
	if req.Status != nil {
		employee.Status = *req.Status
	}
	if req.JoinDate != nil {
		joinDate, err := utils.ParseISODate(*req.JoinDate)
		if err != nil {
			return resp, errs.ValidationField("joinDate", "iso8601")
		}
		employee.JoinDate = joinDate
	}
	if req.Avatar != nil {
		employee.Avatar = *req.Avatar
	}

	// The target department is resolved once and the same id feeds both the
	// profile write and the counter transition.
	previous, err := s.loadDepartment(ctx, employee.Department)
	if err != nil {
		return resp, err
	}
	from := employee.Department
	target := previous
	if req.Department != nil {
		target = nil
		employee.Department = primitive.NilObjectID
		if name := strings.TrimSpace(*req.Department); name != "" {
			resolved, _, err := s.tracker.ResolveOrCreateDepartment(ctx, name)
			if err != nil {
				return resp, err
			}
			target = &resolved
			employee.Department = resolved.ID
		}
	}

	moving := from != employee.Department
	to := employee.Department

	profileWritten := false
	err = s.transactor.HandleTrx(ctx, func(ctx context.Context) error {
		// The target seat is claimed before anything is written. It fails on a
		// department deleted since it was resolved, and its raised counter keeps
		// the delete guard closed while the move is in flight.
		if moving && !to.IsZero() {
			if err := s.tracker.ApplyTransition(ctx, primitive.NilObjectID, to); err != nil {
				return err
			}
		}

		if userChanged {
			if err := s.userRepo.UpdateUser(ctx, user); err != nil {
				s.releaseSeat(ctx, moving, to)
				return err
			}
		}

		if err := s.employeeRepo.UpdateEmployee(ctx, employee); err != nil {
			s.releaseSeat(ctx, moving, to)
			return err
		}
		profileWritten = true

		if moving && !from.IsZero() {
			return s.tracker.ApplyTransition(ctx, from, primitive.NilObjectID)
		}
		return nil
	})
	if err != nil {
		if profileWritten {
			log.Ctx(ctx).Error().Err(err).Str("component", "UpdateEmployee").Str("employee", employee.ID.Hex()).Str("department", from.Hex()).Msg("employee moved but the previous department was not decremented, reconciliation will repair it")
		}
		return resp, err
	}

	if from != employee.Department {
		s.activities.LogActivity(ctx, actor, fmt.Sprintf("Employee %s moved from %s to %s", user.Name, departmentLabel(previous), departmentLabel(target)), domain.ActivityEmployee)
	}

	employee.UpdatedAt = s.now().UTC()
	return dto.CreateEmployeeResponse(employee, user, target), nil
}

// releaseSeat gives back a target seat claimed by a move that did not happen.
func (s *EmployeeServiceImpl) releaseSeat(ctx context.Context, moving bool, to primitive.ObjectID) {
	if !moving || to.IsZero() {
		return
	}

	if err := s.tracker.ApplyTransition(ctx, to, primitive.NilObjectID); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateEmployee").Str("department", to.Hex()).Msg("failed to release claimed seat, reconciliation will repair it")
	}
}

func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, actor primitive.ObjectID, id string) (err error) {
	employeeID, err := parseObjectID(id, "id")
	if err != nil {
		return err
	}

	employee, err := s.employeeRepo.GetEmployeeByID(ctx, employeeID)
	if err != nil {
		return err
	}

	user, err := s.userRepo.GetUserByID(ctx, employee.UserID)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return err
	}

	department, err := s.loadDepartment(ctx, employee.Department)
	if err != nil {
		return err
	}

	profileDeleted := false
	err = s.transactor.HandleTrx(ctx, func(ctx context.Context) error {
		if err := s.employeeRepo.DeleteEmployee(ctx, employee.ID); err != nil {
			return err
		}
		profileDeleted = true

		if err := s.tracker.ApplyTransition(ctx, employee.Department, primitive.NilObjectID); err != nil {
			return err
		}

		if err := s.userRepo.DeleteUser(ctx, employee.UserID); err != nil && !errors.Is(err, errs.ErrNotFound) {
			return err
		}

		return nil
	})
	if err != nil {
		if profileDeleted {
			log.Ctx(ctx).Error().Err(err).Str("component", "DeleteEmployee").Str("employee", employee.ID.Hex()).Msg("employee removed but cleanup did not finish, reconciliation will repair counters")
		}
		return err
	}

	s.activities.LogActivity(ctx, actor, fmt.Sprintf("Employee %s removed from %s", user.Name, departmentLabel(department)), domain.ActivityEmployee)

	return nil
}
