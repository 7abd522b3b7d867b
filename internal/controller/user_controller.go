package controller

import (
	"github.com/hassaammgl2/employee-management-system/internal/service"
	pkgdto "github.com/hassaammgl2/employee-management-system/pkg/dto"
	"github.com/hassaammgl2/employee-management-system/pkg/response"
	"github.com/labstack/echo/v4"
)

type UserController struct {
	service service.UserService
}

func CreateUserController(g *echo.Group, service service.UserService, mw ...echo.MiddlewareFunc) {
	uc := UserController{service: service}

	g.GET("/users", uc.GetUsers, mw...)
}

func (c *UserController) GetUsers(e echo.Context) error {
	payload := pkgdto.Filter{}
	if err := bindQuery(e, &payload, "GetUsers"); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.GetUsers(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}
