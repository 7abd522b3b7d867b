package service

import (
	"github.com/hassaammgl2/employee-management-system/internal/domain"
	"github.com/hassaammgl2/employee-management-system/internal/dto"
	"github.com/hassaammgl2/employee-management-system/pkg/errs"
)

func (s *ServiceTestSuite) employeeUser(email string) domain.User {
	resp := s.register(email, domain.RoleEmployee)
	user, err := s.auth.AuthorizeRequest(s.ctx, resp.AccessToken)
	s.Require().NoError(err)
	return user
}

func (s *ServiceTestSuite) Test_AddTaskNotifiesAssignee() {
	admin := s.admin()
	worker := s.employeeUser("worker@example.com")

	task, err := s.tasks.AddTask(s.ctx, dto.TaskRequest{Title: "Ship payroll", AssignedTo: worker.ID.Hex(), DueDate: "2024-06-01"})
	s.Require().NoError(err)
	s.Equal(domain.PriorityMedium, task.Priority)
	s.Require().NotNil(task.DueDate)

	inbox, err := s.notifications.GetNotifications(s.ctx, worker.ID, pkgFilterAll)
	s.Require().NoError(err)
	s.Require().Len(inbox, 1)
	s.Equal("New task assigned", inbox[0].Title)

	adminInbox, err := s.notifications.GetNotifications(s.ctx, admin.ID, pkgFilterAll)
	s.Require().NoError(err)
	s.Empty(adminInbox)
}

func (s *ServiceTestSuite) Test_AddTaskRejectsUnknownAssignee() {
	_, err := s.tasks.AddTask(s.ctx, dto.TaskRequest{Title: "Ship payroll", AssignedTo: "64b7f0c2a1b2c3d4e5f60718"})
	s.ErrorIs(err, errs.ErrNotFound)

	_, err = s.tasks.AddTask(s.ctx, dto.TaskRequest{Title: "Ship payroll", DueDate: "tomorrow"})
	s.ErrorIs(err, errs.ErrValidation)
}

func (s *ServiceTestSuite) Test_TaskVisibility() {
	admin := s.admin()
	worker := s.employeeUser("worker@example.com")
	other := s.employeeUser("other@example.com")

	mine, err := s.tasks.AddTask(s.ctx, dto.TaskRequest{Title: "Mine", AssignedTo: worker.ID.Hex()})
	s.Require().NoError(err)
	theirs, err := s.tasks.AddTask(s.ctx, dto.TaskRequest{Title: "Theirs", AssignedTo: other.ID.Hex()})
	s.Require().NoError(err)

	tasks, err := s.tasks.GetTasks(s.ctx, worker, dto.TaskQuery{}, pkgFilterAll)
	s.Require().NoError(err)
	s.Require().Len(tasks, 1)
	s.Equal(mine.ID, tasks[0].ID)

	// An employee cannot widen the filter to someone else.
	tasks, err = s.tasks.GetTasks(s.ctx, worker, dto.TaskQuery{AssignedTo: other.ID.Hex()}, pkgFilterAll)
	s.Require().NoError(err)
	s.Len(tasks, 1)

	tasks, err = s.tasks.GetTasks(s.ctx, admin, dto.TaskQuery{}, pkgFilterAll)
	s.Require().NoError(err)
	s.Len(tasks, 2)

	_, err = s.tasks.GetTaskByID(s.ctx, worker, theirs.ID.Hex())
	s.ErrorIs(err, errs.ErrNotFound)
}

func (s *ServiceTestSuite) Test_UpdateTaskAsEmployee() {
	admin := s.admin()
	worker := s.employeeUser("worker@example.com")

	task, err := s.tasks.AddTask(s.ctx, dto.TaskRequest{Title: "Mine", AssignedTo: worker.ID.Hex()})
	s.Require().NoError(err)

	title := "Renamed"
	_, err = s.tasks.UpdateTask(s.ctx, worker, dto.TaskUpdateRequest{ID: task.ID.Hex(), Title: &title})
	s.ErrorIs(err, errs.ErrForbidden)

	done := true
	updated, err := s.tasks.UpdateTask(s.ctx, worker, dto.TaskUpdateRequest{ID: task.ID.Hex(), Completed: &done})
	s.Require().NoError(err)
	s.True(updated.Completed)

	_, err = s.tasks.UpdateTask(s.ctx, worker, dto.TaskUpdateRequest{ID: task.ID.Hex(), Completed: &done})
	s.Require().NoError(err)

	adminInbox, err := s.notifications.GetNotifications(s.ctx, admin.ID, pkgFilterAll)
	s.Require().NoError(err)
	s.Require().Len(adminInbox, 1)
	s.Equal("Task completed", adminInbox[0].Title)
	s.Equal(domain.NotificationSuccess, adminInbox[0].Type)
}

func (s *ServiceTestSuite) Test_UpdateTaskAsAdmin() {
	admin := s.admin()
	worker := s.employeeUser("worker@example.com")

	task, err := s.tasks.AddTask(s.ctx, dto.TaskRequest{Title: "Unassigned"})
	s.Require().NoError(err)

	assignee := worker.ID.Hex()
	priority := domain.PriorityHigh
	updated, err := s.tasks.UpdateTask(s.ctx, admin, dto.TaskUpdateRequest{ID: task.ID.Hex(), AssignedTo: &assignee, Priority: &priority})
	s.Require().NoError(err)
	s.Equal(worker.ID, updated.AssignedTo)
	s.Equal(domain.PriorityHigh, updated.Priority)

	inbox, err := s.notifications.GetNotifications(s.ctx, worker.ID, pkgFilterAll)
	s.Require().NoError(err)
	s.Len(inbox, 1)

	s.NoError(s.tasks.DeleteTask(s.ctx, task.ID.Hex()))
	s.ErrorIs(s.tasks.DeleteTask(s.ctx, task.ID.Hex()), errs.ErrNotFound)
}
