package controller

import (
	"github.com/hassaammgl2/employee-management-system/internal/dto"
	"github.com/hassaammgl2/employee-management-system/internal/service"
	pkgdto "github.com/hassaammgl2/employee-management-system/pkg/dto"
	"github.com/hassaammgl2/employee-management-system/pkg/response"
	"github.com/labstack/echo/v4"
)

type AnnouncementController struct {
	service service.AnnouncementService
}

func CreateAnnouncementController(g *echo.Group, service service.AnnouncementService, authenticate echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	ac := AnnouncementController{service: service}

	announcements := g.Group("/announcements", authenticate)
	announcements.GET("", ac.GetAnnouncements)
	announcements.GET("/:id", ac.GetAnnouncementByID)
	announcements.POST("", ac.AddAnnouncement, adminOnly)
	announcements.PUT("/:id", ac.UpdateAnnouncement, adminOnly)
	announcements.PATCH("/:id", ac.UpdateAnnouncement, adminOnly)
	announcements.DELETE("/:id", ac.DeleteAnnouncement, adminOnly)
}

func (c *AnnouncementController) AddAnnouncement(e echo.Context) error {
	user, err := currentUser(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	payload := dto.AnnouncementRequest{}
	if err = bindBody(e, &payload, "AddAnnouncement"); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.AddAnnouncement(e.Request().Context(), user, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "Announcement created successfully", resp)
}

func (c *AnnouncementController) GetAnnouncements(e echo.Context) error {
	user, err := currentUser(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	param := pkgdto.Filter{}
	if err = bindQuery(e, &param, "GetAnnouncements"); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.GetAnnouncements(e.Request().Context(), user, param)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *AnnouncementController) GetAnnouncementByID(e echo.Context) error {
	user, err := currentUser(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.GetAnnouncementByID(e.Request().Context(), user, e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *AnnouncementController) UpdateAnnouncement(e echo.Context) error {
	payload := dto.AnnouncementUpdateRequest{}
	if err := bindBody(e, &payload, "UpdateAnnouncement"); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	payload.ID = e.Param("id")

	resp, err := c.service.UpdateAnnouncement(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Announcement updated successfully", resp)
}

func (c *AnnouncementController) DeleteAnnouncement(e echo.Context) error {
	if err := c.service.DeleteAnnouncement(e.Request().Context(), e.Param("id")); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Announcement deleted successfully", nil)
}
