package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hassaammgl2/employee-management-system/internal/domain"
	"github.com/hassaammgl2/employee-management-system/internal/dto"
	"github.com/hassaammgl2/employee-management-system/internal/repository"
	pkgdto "github.com/hassaammgl2/employee-management-system/pkg/dto"
	"github.com/hassaammgl2/employee-management-system/pkg/errs"
	"github.com/hassaammgl2/employee-management-system/pkg/utils"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskServiceImpl struct {
	taskRepo      repository.TaskRepository
	userRepo      repository.UserRepository
	notifications NotificationService
	now           Clock
}

func CreateNewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, notifications NotificationService, now Clock) TaskService {
	return &TaskServiceImpl{
		taskRepo:      taskRepo,
		userRepo:      userRepo,
		notifications: notifications,
		now:           now,
	}
}

func parseDueDate(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}

	dueDate, err := utils.ParseISODate(value)
	if err != nil {
		return nil, errs.ValidationField("dueDate", "iso8601")
	}

	return &dueDate, nil
}

func (s *TaskServiceImpl) resolveAssignee(ctx context.Context, value string) (primitive.ObjectID, error) {
	if value == "" {
		return primitive.NilObjectID, nil
	}

	assignee, err := parseObjectID(value, "assignedTo")
	if err != nil {
		return assignee, err
	}

	if _, err = s.userRepo.GetUserByID(ctx, assignee); err != nil {
		return primitive.NilObjectID, err
	}

	return assignee, nil
}

func (s *TaskServiceImpl) AddTask(ctx context.Context, req dto.TaskRequest) (task domain.Task, err error) {
	assignee, err := s.resolveAssignee(ctx, req.AssignedTo)
	if err != nil {
		return task, err
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return task, err
	}

	priority := req.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	now := s.now().UTC()
	task = domain.Task{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		AssignedTo:  assignee,
		DueDate:     dueDate,
		Priority:    priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	task.ID, err = s.taskRepo.AddTask(ctx, task)
	if err != nil {
		return task, err
	}

	if !assignee.IsZero() {
		s.notifyAssignee(ctx, task)
	}

	return task, nil
}

func (s *TaskServiceImpl) notifyAssignee(ctx context.Context, task domain.Task) {
	err := s.notifications.Notify(ctx, dto.NotificationEvent{
		UserID:  task.AssignedTo.Hex(),
		Title:   "New task assigned",
		Message: fmt.Sprintf("You have been assigned: %s", task.Title),
		Type:    domain.NotificationInfo,
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "notifyAssignee").Str("task", task.ID.Hex()).Msg("")
	}
}

func (s *TaskServiceImpl) GetTasks(ctx context.Context, user domain.User, query dto.TaskQuery, param pkgdto.Filter) (tasks []domain.Task, err error) {
	filter := domain.TaskFilter{Completed: query.Completed}

	if user.IsAdmin() {
		if query.AssignedTo != "" {
			if filter.AssignedTo, err = parseObjectID(query.AssignedTo, "assignedTo"); err != nil {
				return nil, err
			}
		}
	} else {
		filter.AssignedTo = user.ID
	}

	tasks, err = s.taskRepo.GetTasks(ctx, filter, param)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}

	return tasks, nil
}

// GetTaskByID hides tasks assigned to someone else from non-admins.
func (s *TaskServiceImpl) GetTaskByID(ctx context.Context, user domain.User, id string) (task domain.Task, err error) {
	taskID, err := parseObjectID(id, "id")
	if err != nil {
		return task, err
	}

	task, err = s.taskRepo.GetTaskByID(ctx, taskID)
	if err != nil {
		return task, err
	}

	if !user.IsAdmin() && task.AssignedTo != user.ID {
		return domain.Task{}, errs.NotFound("Task")
	}

	return task, nil
}

// UpdateTask lets admins edit every field. Assignees may only toggle completed.
func (s *TaskServiceImpl) UpdateTask(ctx context.Context, user domain.User, req dto.TaskUpdateRequest) (task domain.Task, err error) {
	task, err = s.GetTaskByID(ctx, user, req.ID)
	if err != nil {
		return task, err
	}

	editsDetails := req.Title != nil || req.Description != nil || req.AssignedTo != nil || req.DueDate != nil || req.Priority != nil
	if editsDetails && !user.IsAdmin() {
		return domain.Task{}, errs.ErrForbidden
	}

	if editsDetails {
		previousAssignee := task.AssignedTo

		if req.Title != nil {
			task.Title = strings.TrimSpace(*req.Title)
		}
		if req.Description != nil {
			task.Description = strings.TrimSpace(*req.Description)
		}
		if req.Priority != nil {
			task.Priority = *req.Priority
		}
		if req.AssignedTo != nil {
			if task.AssignedTo, err = s.resolveAssignee(ctx, *req.AssignedTo); err != nil {
				return domain.Task{}, err
			}
		}
		if req.DueDate != nil {
			if task.DueDate, err = parseDueDate(*req.DueDate); err != nil {
				return domain.Task{}, err
			}
		}

		if err = s.taskRepo.UpdateTask(ctx, task); err != nil {
			return domain.Task{}, err
		}

		if !task.AssignedTo.IsZero() && task.AssignedTo != previousAssignee {
			s.notifyAssignee(ctx, task)
		}
	}

	if req.Completed != nil {
		transitioned, err := s.taskRepo.SetTaskCompleted(ctx, task.ID, *req.Completed)
		if err != nil {
			return domain.Task{}, err
		}
		task.Completed = *req.Completed

		if transitioned {
			err = s.notifications.NotifyAdmins(ctx, "Task completed",
				fmt.Sprintf("%s completed the task: %s", user.Name, task.Title), domain.NotificationSuccess)
			if err != nil {
				log.Ctx(ctx).Error().Err(err).Str("component", "UpdateTask").Msg("failed to notify admins")
			}
		}
	}

	task.UpdatedAt = s.now().UTC()
	return task, nil
}

func (s *TaskServiceImpl) DeleteTask(ctx context.Context, id string) (err error) {
	taskID, err := parseObjectID(id, "id")
	if err != nil {
		return err
	}

	return s.taskRepo.DeleteTask(ctx, taskID)
}
