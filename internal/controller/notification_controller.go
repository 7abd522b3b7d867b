package controller

import (
	"github.com/hassaammgl2/employee-management-system/internal/service"
	pkgdto "github.com/hassaammgl2/employee-management-system/pkg/dto"
	"github.com/hassaammgl2/employee-management-system/pkg/response"
	"github.com/labstack/echo/v4"
)

type NotificationController struct {
	service service.NotificationService
}

func CreateNotificationController(g *echo.Group, service service.NotificationService, authenticate echo.MiddlewareFunc) {
	nc := NotificationController{service: service}

	notifications := g.Group("/notifications", authenticate)
	notifications.GET("", nc.GetNotifications)
	notifications.PATCH("/read-all", nc.MarkAllRead)
	notifications.PATCH("/:id/read", nc.MarkRead)
}

func (c *NotificationController) GetNotifications(e echo.Context) error {
	user, err := currentUser(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	param := pkgdto.Filter{}
	if err = bindQuery(e, &param, "GetNotifications"); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.GetNotifications(e.Request().Context(), user.ID, param)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *NotificationController) MarkRead(e echo.Context) error {
	user, err := currentUser(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	if err = c.service.MarkRead(e.Request().Context(), user.ID, e.Param("id")); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Notification marked as read", nil)
}

func (c *NotificationController) MarkAllRead(e echo.Context) error {
	user, err := currentUser(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	updated, err := c.service.MarkAllRead(e.Request().Context(), user.ID)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "All notifications marked as read", map[string]int64{"updated": updated})
}
