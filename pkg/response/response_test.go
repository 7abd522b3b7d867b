package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hassaammgl2/employee-management-system/pkg/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestWriteSuccessResponse(t *testing.T) {
	c, rec := newContext()

	require.NoError(t, WriteCreatedResponse(c, "created", map[string]string{"id": "1"}))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "created", body["message"])
	assert.Equal(t, map[string]interface{}{"id": "1"}, body["data"])
}

func TestWriteErrorResponse(t *testing.T) {
	testCases := []struct {
		Name            string
		Err             error
		ExpectedStatus  int
		ExpectedMessage string
		ExpectedErrors  interface{}
	}{
		{
			Name:            "validation detail",
			Err:             errs.ValidationField("email", "email"),
			ExpectedStatus:  http.StatusBadRequest,
			ExpectedMessage: "Validation failed",
			ExpectedErrors:  map[string]interface{}{"email": "email"},
		},
		{
			Name:            "credentials",
			Err:             errs.ErrInvalidCredentials,
			ExpectedStatus:  http.StatusUnauthorized,
			ExpectedMessage: "Invalid email or password",
		},
		{
			Name:            "internal detail is hidden",
			Err:             errors.New("dial tcp 10.0.0.3:27017: connection refused"),
			ExpectedStatus:  http.StatusInternalServerError,
			ExpectedMessage: "Internal server error",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			c, rec := newContext()

			require.NoError(t, WriteErrorResponse(c, tc.Err, nil))
			assert.Equal(t, tc.ExpectedStatus, rec.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "error", body["status"])
			assert.Equal(t, tc.ExpectedMessage, body["message"])
			assert.Equal(t, tc.ExpectedErrors, body["errors"])
		})
	}
}
