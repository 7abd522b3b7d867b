package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/hassaammgl2/employee-management-system/internal/domain"
	"github.com/hassaammgl2/employee-management-system/internal/dto"
	"github.com/hassaammgl2/employee-management-system/internal/repository"
	pkgdto "github.com/hassaammgl2/employee-management-system/pkg/dto"
	"github.com/hassaammgl2/employee-management-system/pkg/errs"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// driftSettleTime is how long a mismatch must persist, unchanged, before
// Reconcile corrects it. Without transactions an employee write and its
// counter update are separate steps, and a mismatch seen between them is not
// drift.
const driftSettleTime = 30 * time.Second

type observedDrift struct {
	counter int64
	actual  int64
	seenAt  time.Time
}

type RosterTrackerImpl struct {
	departmentRepo repository.DepartmentRepository
	employeeRepo   repository.EmployeeRepository
	now            Clock

	mu    sync.Mutex
	drift map[primitive.ObjectID]observedDrift
}

func CreateNewRosterTracker(departmentRepo repository.DepartmentRepository, employeeRepo repository.EmployeeRepository, now Clock) RosterTracker {
	return &RosterTrackerImpl{
		departmentRepo: departmentRepo,
		employeeRepo:   employeeRepo,
		now:            now,
		drift:          map[primitive.ObjectID]observedDrift{},
	}
}

func (s *RosterTrackerImpl) ResolveOrCreateDepartment(ctx context.Context, name string) (department domain.Department, created bool, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return department, false, errs.ValidationField("department", "required")
	}

	department, err = s.departmentRepo.GetDepartmentByName(ctx, name)
	if err == nil {
		return department, false, nil
	}
	if !errors.Is(err, errs.ErrNotFound) {
		return department, false, err
	}

	now := s.now().UTC()
	department = domain.Department{
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	department.ID, err = s.departmentRepo.AddDepartment(ctx, department)
	if errors.Is(err, errs.ErrDepartmentExists) {
		// Lost the race against a concurrent create of the same name.
		department, err = s.departmentRepo.GetDepartmentByName(ctx, name)
		return department, false, err
	}
	if err != nil {
		return department, false, err
	}

	log.Ctx(ctx).Info().Str("component", "ResolveOrCreateDepartment").Str("department", name).Msg("department created")

	return department, true, nil
}

func (s *RosterTrackerImpl) ApplyTransition(ctx context.Context, from primitive.ObjectID, to primitive.ObjectID) (err error) {
	if from == to {
		return nil
	}

	if !from.IsZero() {
		err = s.departmentRepo.IncrementEmployeeCount(ctx, from, -1)
		if errors.Is(err, errs.ErrNotFound) {
			log.Ctx(ctx).Warn().Str("component", "ApplyTransition").Str("department", from.Hex()).Msg("source department missing, skipping decrement")
			err = nil
		}
		if err != nil {
			return err
		}
	}

	if !to.IsZero() {
		if err = s.departmentRepo.IncrementEmployeeCount(ctx, to, 1); err != nil {
			return err
		}
	}

	return nil
}

// Reconcile corrects a department counter only when an earlier run saw the
// same counter and headcount at least driftSettleTime ago. A first sighting
// is recorded and reported as pending.
func (s *RosterTrackerImpl) Reconcile(ctx context.Context) (resp dto.ReconcileResponse, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	departments, err := s.departmentRepo.GetDepartments(ctx, pkgdto.Filter{})
	if err != nil {
		return resp, err
	}

	headcounts, err := s.employeeRepo.CountEmployeesByDepartment(ctx)
	if err != nil {
		return resp, err
	}

	actual := make(map[primitive.ObjectID]int64, len(headcounts))
	for _, h := range headcounts {
		actual[h.DepartmentID] = h.Count
	}

	now := s.now().UTC()
	drift := make(map[primitive.ObjectID]observedDrift, len(s.drift))

	resp.Checked = len(departments)
	resp.Corrections = []dto.CounterCorrection{}

	for _, department := range departments {
		count := actual[department.ID]
		delete(actual, department.ID)

		if department.EmployeeCount == count {
			continue
		}

		seen, ok := s.drift[department.ID]
		if !ok || seen.counter != department.EmployeeCount || seen.actual != count {
			drift[department.ID] = observedDrift{counter: department.EmployeeCount, actual: count, seenAt: now}
			resp.Pending++
			log.Ctx(ctx).Info().Str("component", "Reconcile").Str("department", department.Name).
				Int64("counter", department.EmployeeCount).Int64("actual", count).Msg("counter mismatch observed, confirming on a later run")
			continue
		}
		if now.Sub(seen.seenAt) < driftSettleTime {
			drift[department.ID] = seen
			resp.Pending++
			continue
		}

		corrected, err := s.departmentRepo.CorrectEmployeeCount(ctx, department.ID, department.EmployeeCount, count)
		if err != nil {
			s.drift = drift
			return resp, err
		}
		if !corrected {
			log.Ctx(ctx).Info().Str("component", "Reconcile").Str("department", department.Name).Msg("counter changed concurrently, left for next run")
			continue
		}

		log.Ctx(ctx).Warn().Str("component", "Reconcile").Str("department", department.Name).
			Int64("previous", department.EmployeeCount).Int64("actual", count).Msg("employee count drift corrected")

		resp.Corrections = append(resp.Corrections, dto.CounterCorrection{
			DepartmentID: department.ID.Hex(),
			Name:         department.Name,
			Previous:     department.EmployeeCount,
			Actual:       count,
		})
	}

	s.drift = drift

	for id, count := range actual {
		log.Ctx(ctx).Warn().Str("component", "Reconcile").Str("department", id.Hex()).Int64("employees", count).Msg("employees reference a missing department")
	}

	return resp, nil
}
