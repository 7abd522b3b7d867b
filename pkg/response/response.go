package response

import (
	"net/http"

	"github.com/hassaammgl2/employee-management-system/pkg/errs"
	"github.com/labstack/echo/v4"
)

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Errors  interface{} `json:"errors"`
}

func WriteSuccessResponse(c echo.Context, message string, data interface{}) error {
	return writeSuccess(c, http.StatusOK, message, data)
}

func WriteCreatedResponse(c echo.Context, message string, data interface{}) error {
	return writeSuccess(c, http.StatusCreated, message, data)
}

func writeSuccess(c echo.Context, status int, message string, data interface{}) error {
	resp := SuccessResponse{}
	resp.Status = "success"
	resp.Data = data
	resp.Message = message

	return c.JSON(status, resp)
}

// WriteErrorResponse never surfaces the text of an unclassified error.
func WriteErrorResponse(c echo.Context, err error, errors interface{}) error {
	statusCode := errs.GetErrorStatusCode(err)
	resp := ErrorResponse{}
	resp.Status = "error"
	resp.Message = err.Error()
	if !errs.IsKnown(err) {
		resp.Message = errs.ErrInternalServer.Error()
	}
	resp.Errors = errors
	if resp.Errors == nil {
		if fields := errs.FieldErrors(err); len(fields) > 0 {
			resp.Errors = fields
		}
	}

	return c.JSON(statusCode, resp)
}
