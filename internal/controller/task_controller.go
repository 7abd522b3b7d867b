package controller

import (
	"github.com/hassaammgl2/employee-management-system/internal/dto"
	"github.com/hassaammgl2/employee-management-system/internal/service"
	pkgdto "github.com/hassaammgl2/employee-management-system/pkg/dto"
	"github.com/hassaammgl2/employee-management-system/pkg/response"
	"github.com/labstack/echo/v4"
)

type TaskController struct {
	service service.TaskService
}

func CreateTaskController(g *echo.Group, service service.TaskService, authenticate echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	tc := TaskController{service: service}

	tasks := g.Group("/tasks", authenticate)
	tasks.GET("", tc.GetTasks)
	tasks.GET("/:id", tc.GetTaskByID)
	tasks.PUT("/:id", tc.UpdateTask)
	tasks.POST("", tc.AddTask, adminOnly)
	tasks.DELETE("/:id", tc.DeleteTask, adminOnly)
}

func (c *TaskController) AddTask(e echo.Context) error {
	payload := dto.TaskRequest{}
	if err := bindBody(e, &payload, "AddTask"); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.AddTask(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "Task created successfully", resp)
}

func (c *TaskController) GetTasks(e echo.Context) error {
	user, err := currentUser(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	query := dto.TaskQuery{}
	if err = bindQuery(e, &query, "GetTasks"); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	param := pkgdto.Filter{}
	if err = bindQuery(e, &param, "GetTasks"); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.GetTasks(e.Request().Context(), user, query, param)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *TaskController) GetTaskByID(e echo.Context) error {
	user, err := currentUser(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.GetTaskByID(e.Request().Context(), user, e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *TaskController) UpdateTask(e echo.Context) error {
	user, err := currentUser(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	payload := dto.TaskUpdateRequest{}
	if err = bindBody(e, &payload, "UpdateTask"); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	payload.ID = e.Param("id")

	resp, err := c.service.UpdateTask(e.Request().Context(), user, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Task updated successfully", resp)
}

func (c *TaskController) DeleteTask(e echo.Context) error {
	if err := c.service.DeleteTask(e.Request().Context(), e.Param("id")); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Task deleted successfully", nil)
}
