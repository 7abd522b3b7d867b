package controller

import (
	"github.com/hassaammgl2/employee-management-system/internal/dto"
	"github.com/hassaammgl2/employee-management-system/internal/service"
	pkgdto "github.com/hassaammgl2/employee-management-system/pkg/dto"
	"github.com/hassaammgl2/employee-management-system/pkg/response"
	"github.com/labstack/echo/v4"
)

type EmployeeController struct {
	service service.EmployeeService
}

func CreateEmployeeController(g *echo.Group, service service.EmployeeService, authenticate echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	ec := EmployeeController{service: service}

	g.GET("/employees/me", ec.GetOwnProfile, authenticate)

	admin := g.Group("/employees", authenticate, adminOnly)
	admin.POST("", ec.AddEmployee)
	admin.GET("", ec.GetEmployees)
	admin.GET("/:id", ec.GetEmployeeByID)
	admin.PUT("/:id", ec.UpdateEmployee)
	admin.DELETE("/:id", ec.DeleteEmployee)
}

func (c *EmployeeController) AddEmployee(e echo.Context) error {
	user, err := currentUser(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	payload := dto.EmployeeRequest{}
	if err = bindBody(e, &payload, "AddEmployee"); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.AddEmployee(e.Request().Context(), user.ID, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "Employee added successfully", resp)
}

func (c *EmployeeController) GetEmployees(e echo.Context) error {
	query := dto.EmployeeQuery{}
	if err := bindQuery(e, &query, "GetEmployees"); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	param := pkgdto.Filter{}
	if err := bindQuery(e, &param, "GetEmployees"); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.GetEmployees(e.Request().Context(), query, param)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *EmployeeController) GetEmployeeByID(e echo.Context) error {
	resp, err := c.service.GetEmployeeByID(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *EmployeeController) GetOwnProfile(e echo.Context) error {
	user, err := currentUser(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.GetEmployeeByUserID(e.Request().Context(), user.ID)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *EmployeeController) UpdateEmployee(e echo.Context) error {
	user, err := currentUser(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	payload := dto.EmployeeUpdateRequest{}
	if err = bindBody(e, &payload, "UpdateEmployee"); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	payload.ID = e.Param("id")

	resp, err := c.service.UpdateEmployee(e.Request().Context(), user.ID, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Employee updated successfully", resp)
}

func (c *EmployeeController) DeleteEmployee(e echo.Context) error {
	user, err := currentUser(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	if err = c.service.DeleteEmployee(e.Request().Context(), user.ID, e.Param("id")); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Employee deleted successfully", nil)
}
