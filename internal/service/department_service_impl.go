package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/hassaammgl2/employee-management-system/internal/domain"
	"github.com/hassaammgl2/employee-management-system/internal/dto"
	"github.com/hassaammgl2/employee-management-system/internal/repository"
	pkgdto "github.com/hassaammgl2/employee-management-system/pkg/dto"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DepartmentServiceImpl struct {
	departmentRepo repository.DepartmentRepository
	tracker        RosterTracker
	activities     ActivityService
	now            Clock
}

func CreateNewDepartmentService(departmentRepo repository.DepartmentRepository, tracker RosterTracker, activities ActivityService, now Clock) DepartmentService {
	return &DepartmentServiceImpl{
		departmentRepo: departmentRepo,
		tracker:        tracker,
		activities:     activities,
		now:            now,
	}
}

// AddDepartment always starts the counter at zero.
func (s *DepartmentServiceImpl) AddDepartment(ctx context.Context, req dto.DepartmentRequest) (resp dto.DepartmentResponse, err error) {
	now := s.now().UTC()
	department := domain.Department{
		Name:        strings.TrimSpace(req.Name),
		Head:        strings.TrimSpace(req.Head),
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	department.ID, err = s.departmentRepo.AddDepartment(ctx, department)
	if err != nil {
		return resp, err
	}

	s.activities.LogActivity(ctx, primitive.NilObjectID, fmt.Sprintf("Department %s created", department.Name), domain.ActivityDepartment)

	return dto.CreateDepartmentResponse(department), nil
}

func (s *DepartmentServiceImpl) GetDepartments(ctx context.Context, param pkgdto.Filter) (resp []dto.DepartmentResponse, err error) {
	departments, err := s.departmentRepo.GetDepartments(ctx, param)
	if err != nil {
		return nil, err
	}

	resp = make([]dto.DepartmentResponse, 0, len(departments))
	for _, department := range departments {
		resp = append(resp, dto.CreateDepartmentResponse(department))
	}

	return resp, nil
}

func (s *DepartmentServiceImpl) GetDepartmentByID(ctx context.Context, id string) (resp dto.DepartmentResponse, err error) {
	departmentID, err := parseObjectID(id, "id")
	if err != nil {
		return resp, err
	}

	department, err := s.departmentRepo.GetDepartmentByID(ctx, departmentID)
	if err != nil {
		return resp, err
	}

	return dto.CreateDepartmentResponse(department), nil
}

func (s *DepartmentServiceImpl) UpdateDepartment(ctx context.Context, req dto.DepartmentUpdateRequest) (resp dto.DepartmentResponse, err error) {
	departmentID, err := parseObjectID(req.ID, "id")
	if err != nil {
		return resp, err
	}

	department, err := s.departmentRepo.GetDepartmentByID(ctx, departmentID)
	if err != nil {
		return resp, err
	}

	if req.Name != nil {
		department.Name = strings.TrimSpace(*req.Name)
	}
	if req.Head != nil {
		department.Head = strings.TrimSpace(*req.Head)
	}
	if req.Description != nil {
		department.Description = strings.TrimSpace(*req.Description)
	}

	if err = s.departmentRepo.UpdateDepartment(ctx, department); err != nil {
		return resp, err
	}

	department.UpdatedAt = s.now().UTC()
	return dto.CreateDepartmentResponse(department), nil
}

func (s *DepartmentServiceImpl) DeleteDepartment(ctx context.Context, id string) (err error) {
	departmentID, err := parseObjectID(id, "id")
	if err != nil {
		return err
	}

	department, err := s.departmentRepo.GetDepartmentByID(ctx, departmentID)
	if err != nil {
		return err
	}

	if err = s.departmentRepo.DeleteEmptyDepartment(ctx, departmentID); err != nil {
		log.Ctx(ctx).Info().Err(err).Str("component", "DeleteDepartment").Str("department", department.Name).Msg("")
		return err
	}

	s.activities.LogActivity(ctx, primitive.NilObjectID, fmt.Sprintf("Department %s deleted", department.Name), domain.ActivityDepartment)

	return nil
}

func (s *DepartmentServiceImpl) ResolveDepartment(ctx context.Context, req dto.ResolveDepartmentRequest) (resp dto.ResolveDepartmentResponse, err error) {
	department, created, err := s.tracker.ResolveOrCreateDepartment(ctx, req.Name)
	if err != nil {
		return resp, err
	}

	return dto.ResolveDepartmentResponse{
		Department: dto.CreateDepartmentResponse(department),
		Created:    created,
	}, nil
}

func (s *DepartmentServiceImpl) Reconcile(ctx context.Context) (resp dto.ReconcileResponse, err error) {
	return s.tracker.Reconcile(ctx)
}
