package inmemory

import (
	"context"
	"testing"

	"github.com/hassaammgl2/employee-management-system/internal/domain"
	pkgdto "github.com/hassaammgl2/employee-management-system/pkg/dto"
	"github.com/hassaammgl2/employee-management-system/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepartmentNamesAreUnique(t *testing.T) {
	repo := CreateNewDepartmentRepository(CreateNewStore())
	ctx := context.Background()

	_, err := repo.AddDepartment(ctx, domain.Department{Name: "Platform"})
	require.NoError(t, err)

	_, err = repo.AddDepartment(ctx, domain.Department{Name: "Platform"})
	assert.ErrorIs(t, err, errs.ErrConflict)

	id, err := repo.AddDepartment(ctx, domain.Department{Name: "Sales"})
	require.NoError(t, err)

	err = repo.UpdateDepartment(ctx, domain.Department{ID: id, Name: "Platform"})
	assert.ErrorIs(t, err, errs.ErrConflict)
}

func TestDeleteEmptyDepartment(t *testing.T) {
	repo := CreateNewDepartmentRepository(CreateNewStore())
	ctx := context.Background()

	id, err := repo.AddDepartment(ctx, domain.Department{Name: "Platform"})
	require.NoError(t, err)
	require.NoError(t, repo.IncrementEmployeeCount(ctx, id, 1))

	assert.ErrorIs(t, repo.DeleteEmptyDepartment(ctx, id), errs.ErrDepartmentHasStaff)

	require.NoError(t, repo.IncrementEmployeeCount(ctx, id, -1))
	require.NoError(t, repo.DeleteEmptyDepartment(ctx, id))

	_, err = repo.GetDepartmentByID(ctx, id)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestCorrectEmployeeCountComparesFirst(t *testing.T) {
	repo := CreateNewDepartmentRepository(CreateNewStore())
	ctx := context.Background()

	id, err := repo.AddDepartment(ctx, domain.Department{Name: "Platform", EmployeeCount: 4})
	require.NoError(t, err)

	corrected, err := repo.CorrectEmployeeCount(ctx, id, 3, 1)
	require.NoError(t, err)
	assert.False(t, corrected)

	corrected, err = repo.CorrectEmployeeCount(ctx, id, 4, 1)
	require.NoError(t, err)
	assert.True(t, corrected)

	department, err := repo.GetDepartmentByID(ctx, id)
	require.NoError(t, err)
	assert.EqualValues(t, 1, department.EmployeeCount)
}

func TestGetDepartmentsPaginates(t *testing.T) {
	repo := CreateNewDepartmentRepository(CreateNewStore())
	ctx := context.Background()

	for _, name := range []string{"C", "A", "B"} {
		_, err := repo.AddDepartment(ctx, domain.Department{Name: name})
		require.NoError(t, err)
	}

	page, err := repo.GetDepartments(ctx, pkgdto.Filter{Limit: 2, Page: 2})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "C", page[0].Name)

	all, err := repo.GetDepartments(ctx, pkgdto.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
