package validation

import (
	"testing"

	"github.com/hassaammgl2/employee-management-system/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,password"`
	Department string `json:"departmentId" validate:"omitempty,objectid"`
}

func TestValidate(t *testing.T) {
	v := CreateValidator()

	assert.NoError(t, v.Validate(&signup{Email: "jane@example.com", Password: "Secret_123"}))

	err := v.Validate(&signup{Email: "jane", Password: "weak", Department: "sales"})
	require.ErrorIs(t, err, errs.ErrValidation)
	assert.Equal(t, map[string]string{
		"email":        "email",
		"password":     "password",
		"departmentId": "objectid",
	}, errs.FieldErrors(err))
}
