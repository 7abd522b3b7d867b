package controller

import (
	"github.com/hassaammgl2/employee-management-system/internal/dto"
	"github.com/hassaammgl2/employee-management-system/internal/service"
	pkgdto "github.com/hassaammgl2/employee-management-system/pkg/dto"
	"github.com/hassaammgl2/employee-management-system/pkg/response"
	"github.com/labstack/echo/v4"
)

type DepartmentController struct {
	service service.DepartmentService
}

func CreateDepartmentController(g *echo.Group, service service.DepartmentService, authenticate echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	dc := DepartmentController{service: service}

	departments := g.Group("/departments", authenticate)
	departments.GET("", dc.GetDepartments)
	departments.GET("/:id", dc.GetDepartmentByID)
	departments.POST("", dc.AddDepartment, adminOnly)
	departments.POST("/resolve", dc.ResolveDepartment, adminOnly)
	departments.POST("/reconcile", dc.Reconcile, adminOnly)
	departments.PUT("/:id", dc.UpdateDepartment, adminOnly)
	departments.DELETE("/:id", dc.DeleteDepartment, adminOnly)
}

func (c *DepartmentController) AddDepartment(e echo.Context) error {
	payload := dto.DepartmentRequest{}
	if err := bindBody(e, &payload, "AddDepartment"); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.AddDepartment(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "Department created successfully", resp)
}

func (c *DepartmentController) GetDepartments(e echo.Context) error {
	param := pkgdto.Filter{}
	if err := bindQuery(e, &param, "GetDepartments"); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.GetDepartments(e.Request().Context(), param)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *DepartmentController) GetDepartmentByID(e echo.Context) error {
	resp, err := c.service.GetDepartmentByID(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *DepartmentController) UpdateDepartment(e echo.Context) error {
	payload := dto.DepartmentUpdateRequest{}
	if err := bindBody(e, &payload, "UpdateDepartment"); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	payload.ID = e.Param("id")

	resp, err := c.service.UpdateDepartment(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Department updated successfully", resp)
}

func (c *DepartmentController) DeleteDepartment(e echo.Context) error {
	if err := c.service.DeleteDepartment(e.Request().Context(), e.Param("id")); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Department deleted successfully", nil)
}

func (c *DepartmentController) ResolveDepartment(e echo.Context) error {
	payload := dto.ResolveDepartmentRequest{}
	if err := bindBody(e, &payload, "ResolveDepartment"); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.ResolveDepartment(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	if resp.Created {
		return response.WriteCreatedResponse(e, "Department created successfully", resp)
	}
	return response.WriteSuccessResponse(e, "", resp)
}

func (c *DepartmentController) Reconcile(e echo.Context) error {
	resp, err := c.service.Reconcile(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Roster reconciled", resp)
}
