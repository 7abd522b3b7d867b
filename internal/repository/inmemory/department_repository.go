package inmemory

import (
	"context"
	"sort"
	"time"

	"github.com/hassaammgl2/employee-management-system/internal/domain"
	"github.com/hassaammgl2/employee-management-system/internal/repository"
	pkgdto "github.com/hassaammgl2/employee-management-system/pkg/dto"
	"github.com/hassaammgl2/employee-management-system/pkg/errs"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DepartmentRepositoryImpl struct {
	store *Store
}

func CreateNewDepartmentRepository(store *Store) repository.DepartmentRepository {
	return &DepartmentRepositoryImpl{store: store}
}

func (r *DepartmentRepositoryImpl) nameTaken(id primitive.ObjectID, name string) bool {
	for _, d := range r.store.departments {
		if d.ID != id && d.Name == name {
			return true
		}
	}
	return false
}

func (r *DepartmentRepositoryImpl) AddDepartment(ctx context.Context, data domain.Department) (id primitive.ObjectID, err error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	data.ID = newID(data.ID)
	if r.nameTaken(data.ID, data.Name) {
		return primitive.NilObjectID, errs.ErrDepartmentExists
	}

	r.store.departments[data.ID] = data
	return data.ID, nil
}

func (r *DepartmentRepositoryImpl) GetDepartmentByID(ctx context.Context, id primitive.ObjectID) (department domain.Department, err error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	department, ok := r.store.departments[id]
	if !ok {
		return department, errs.NotFound("Department")
	}
	return department, nil
}

func (r *DepartmentRepositoryImpl) GetDepartmentByName(ctx context.Context, name string) (department domain.Department, err error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, d := range r.store.departments {
		if d.Name == name {
			return d, nil
		}
	}
	return department, errs.NotFound("Department")
}

func (r *DepartmentRepositoryImpl) GetDepartments(ctx context.Context, param pkgdto.Filter) (data []domain.Department, err error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, d := range r.store.departments {
		data = append(data, d)
	}
	sort.Slice(data, func(i, j int) bool { return data[i].Name < data[j].Name })

	return paginate(data, param), nil
}

func (r *DepartmentRepositoryImpl) GetDepartmentsByIDs(ctx context.Context, ids []primitive.ObjectID) (data []domain.Department, err error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, id := range ids {
		if d, ok := r.store.departments[id]; ok {
			data = append(data, d)
		}
	}
	return data, nil
}

func (r *DepartmentRepositoryImpl) UpdateDepartment(ctx context.Context, data domain.Department) (err error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	department, ok := r.store.departments[data.ID]
	if !ok {
		return errs.NotFound("Department")
	}
	if r.nameTaken(data.ID, data.Name) {
		return errs.ErrDepartmentExists
	}

	department.Name = data.Name
	department.Head = data.Head
	department.Description = data.Description
	department.UpdatedAt = time.Now().UTC()
	r.store.departments[data.ID] = department

	return nil
}

func (r *DepartmentRepositoryImpl) DeleteEmptyDepartment(ctx context.Context, id primitive.ObjectID) (err error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	department, ok := r.store.departments[id]
	if !ok {
		return errs.NotFound("Department")
	}
	if department.EmployeeCount > 0 {
		return errs.ErrDepartmentHasStaff
	}

	delete(r.store.departments, id)
	return nil
}

func (r *DepartmentRepositoryImpl) IncrementEmployeeCount(ctx context.Context, id primitive.ObjectID, delta int64) (err error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	department, ok := r.store.departments[id]
	if !ok {
		return errs.NotFound("Department")
	}

	department.EmployeeCount += delta
	department.UpdatedAt = time.Now().UTC()
	r.store.departments[id] = department

	return nil
}

func (r *DepartmentRepositoryImpl) CorrectEmployeeCount(ctx context.Context, id primitive.ObjectID, expected int64, actual int64) (corrected bool, err error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	department, ok := r.store.departments[id]
	if !ok || department.EmployeeCount != expected {
		return false, nil
	}

	department.EmployeeCount = actual
	r.store.departments[id] = department

	return true, nil
}
