package inmemory

import (
	"context"
	"time"

	"github.com/hassaammgl2/employee-management-system/internal/domain"
	"github.com/hassaammgl2/employee-management-system/internal/repository"
	pkgdto "github.com/hassaammgl2/employee-management-system/pkg/dto"
	"github.com/hassaammgl2/employee-management-system/pkg/errs"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EmployeeRepositoryImpl struct {
	store *Store
}

func CreateNewEmployeeRepository(store *Store) repository.EmployeeRepository {
	return &EmployeeRepositoryImpl{store: store}
}

func (r *EmployeeRepositoryImpl) AddEmployee(ctx context.Context, data domain.Employee) (id primitive.ObjectID, err error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, e := range r.store.employees {
		if e.UserID == data.UserID {
			return primitive.NilObjectID, errs.Conflict("Employee profile already exists")
		}
	}

	data.ID = newID(data.ID)
	r.store.employees[data.ID] = data
	return data.ID, nil
}

func (r *EmployeeRepositoryImpl) GetEmployeeByID(ctx context.Context, id primitive.ObjectID) (employee domain.Employee, err error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	employee, ok := r.store.employees[id]
	if !ok {
		return employee, errs.NotFound("Employee")
	}
	return employee, nil
}

func (r *EmployeeRepositoryImpl) GetEmployeeByUserID(ctx context.Context, userID primitive.ObjectID) (employee domain.Employee, err error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, e := range r.store.employees {
		if e.UserID == userID {
			return e, nil
		}
	}
	return employee, errs.NotFound("Employee")
}

func (r *EmployeeRepositoryImpl) GetEmployees(ctx context.Context, filter domain.EmployeeFilter, param pkgdto.Filter) (data []domain.Employee, err error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, e := range r.store.employees {
		if !filter.Department.IsZero() && e.Department != filter.Department {
			continue
		}
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		data = append(data, e)
	}
	sortByNewest(data, func(e domain.Employee) int64 { return e.CreatedAt.UnixNano() })

	return paginate(data, param), nil
}

func (r *EmployeeRepositoryImpl) UpdateEmployee(ctx context.Context, data domain.Employee) (err error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	employee, ok := r.store.employees[data.ID]
	if !ok {
		return errs.NotFound("Employee")
	}

	employee.Department = data.Department
	employee.JobTitle = data.JobTitle
	employee.Salary = data.Salary
	employee.Status = data.Status
	employee.JoinDate = data.JoinDate
	employee.Avatar = data.Avatar
	employee.UpdatedAt = time.Now().UTC()
	r.store.employees[data.ID] = employee

	return nil
}

func (r *EmployeeRepositoryImpl) DeleteEmployee(ctx context.Context, id primitive.ObjectID) (err error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.employees[id]; !ok {
		return errs.NotFound("Employee")
	}

	delete(r.store.employees, id)
	return nil
}

func (r *EmployeeRepositoryImpl) CountEmployeesByDepartment(ctx context.Context) (data []domain.DepartmentHeadcount, err error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	counts := map[primitive.ObjectID]int64{}
	for _, e := range r.store.employees {
		if e.HasDepartment() {
			counts[e.Department]++
		}
	}

	for id, count := range counts {
		data = append(data, domain.DepartmentHeadcount{DepartmentID: id, Count: count})
	}
	return data, nil
}
