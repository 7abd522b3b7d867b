package controller

import (
	"strconv"

	"github.com/hassaammgl2/employee-management-system/internal/service"
	"github.com/hassaammgl2/employee-management-system/pkg/errs"
	"github.com/hassaammgl2/employee-management-system/pkg/response"
	"github.com/labstack/echo/v4"
)

type ActivityController struct {
	service service.ActivityService
}

func CreateActivityController(g *echo.Group, service service.ActivityService, mw ...echo.MiddlewareFunc) {
	ac := ActivityController{service: service}

	g.GET("/activities", ac.GetRecentActivities, mw...)
}

func (c *ActivityController) GetRecentActivities(e echo.Context) error {
	var limit int64 = 10
	if raw := e.QueryParam("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return response.WriteErrorResponse(e, errs.ValidationField("limit", "numeric"), nil)
		}
		limit = parsed
	}

	resp, err := c.service.GetRecentActivities(e.Request().Context(), limit)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}
