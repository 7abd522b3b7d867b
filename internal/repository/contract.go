package repository

import (
	"context"

	"github.com/hassaammgl2/employee-management-system/internal/domain"
	pkgdto "github.com/hassaammgl2/employee-management-system/pkg/dto"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Transactor runs fn so that every repository call made with the ctx it
// receives commits or aborts together. Without store support fn simply runs.
type Transactor interface {
	HandleTrx(ctx context.Context, fn func(ctx context.Context) error) error
}

type UserRepository interface {
	AddUser(ctx context.Context, data domain.User) (id primitive.ObjectID, err error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (user domain.User, err error)
	GetUserByEmail(ctx context.Context, email string) (user domain.User, err error)
	GetUsers(ctx context.Context, param pkgdto.Filter) (data []domain.User, err error)
	GetUsersByRole(ctx context.Context, role string) (data []domain.User, err error)
	CountUsers(ctx context.Context) (count int64, err error)
	UpdateUser(ctx context.Context, data domain.User) (err error)
	SetRefreshToken(ctx context.Context, id primitive.ObjectID, digest string) (err error)
	// ReplaceRefreshToken swaps the stored digest only if it still equals oldDigest.
	ReplaceRefreshToken(ctx context.Context, id primitive.ObjectID, oldDigest string, newDigest string) (swapped bool, err error)
	// UpdatePassword stores the new hash and clears the refresh digest.
	UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) (err error)
	DeleteUser(ctx context.Context, id primitive.ObjectID) (err error)
}

type DepartmentRepository interface {
	AddDepartment(ctx context.Context, data domain.Department) (id primitive.ObjectID, err error)
	GetDepartmentByID(ctx context.Context, id primitive.ObjectID) (department domain.Department, err error)
	GetDepartmentByName(ctx context.Context, name string) (department domain.Department, err error)
	GetDepartments(ctx context.Context, param pkgdto.Filter) (data []domain.Department, err error)
	GetDepartmentsByIDs(ctx context.Context, ids []primitive.ObjectID) (data []domain.Department, err error)
	UpdateDepartment(ctx context.Context, data domain.Department) (err error)
	// DeleteEmptyDepartment removes the department only while its employeeCount is not positive.
	DeleteEmptyDepartment(ctx context.Context, id primitive.ObjectID) (err error)
	IncrementEmployeeCount(ctx context.Context, id primitive.ObjectID, delta int64) (err error)
	// CorrectEmployeeCount sets the counter to actual if it still equals expected.
	CorrectEmployeeCount(ctx context.Context, id primitive.ObjectID, expected int64, actual int64) (corrected bool, err error)
}

type EmployeeRepository interface {
	AddEmployee(ctx context.Context, data domain.Employee) (id primitive.ObjectID, err error)
	GetEmployeeByID(ctx context.Context, id primitive.ObjectID) (employee domain.Employee, err error)
	GetEmployeeByUserID(ctx context.Context, userID primitive.ObjectID) (employee domain.Employee, err error)
	GetEmployees(ctx context.Context, filter domain.EmployeeFilter, param pkgdto.Filter) (data []domain.Employee, err error)
	UpdateEmployee(ctx context.Context, data domain.Employee) (err error)
	DeleteEmployee(ctx context.Context, id primitive.ObjectID) (err error)
	CountEmployeesByDepartment(ctx context.Context) (data []domain.DepartmentHeadcount, err error)
}

type TaskRepository interface {
	AddTask(ctx context.Context, data domain.Task) (id primitive.ObjectID, err error)
	GetTaskByID(ctx context.Context, id primitive.ObjectID) (task domain.Task, err error)
	GetTasks(ctx context.Context, filter domain.TaskFilter, param pkgdto.Filter) (data []domain.Task, err error)
	UpdateTask(ctx context.Context, data domain.Task) (err error)
	// SetTaskCompleted reports whether this call flipped completed from false to true.
	SetTaskCompleted(ctx context.Context, id primitive.ObjectID, completed bool) (transitioned bool, err error)
	DeleteTask(ctx context.Context, id primitive.ObjectID) (err error)
}

type AnnouncementRepository interface {
	AddAnnouncement(ctx context.Context, data domain.Announcement) (id primitive.ObjectID, err error)
	GetAnnouncementByID(ctx context.Context, id primitive.ObjectID) (announcement domain.Announcement, err error)
	GetAnnouncements(ctx context.Context, activeOnly bool, param pkgdto.Filter) (data []domain.Announcement, err error)
	UpdateAnnouncement(ctx context.Context, data domain.Announcement) (err error)
	DeleteAnnouncement(ctx context.Context, id primitive.ObjectID) (err error)
}

type NotificationRepository interface {
	AddNotification(ctx context.Context, data domain.Notification) (id primitive.ObjectID, err error)
	GetNotifications(ctx context.Context, userID primitive.ObjectID, param pkgdto.Filter) (data []domain.Notification, err error)
	MarkNotificationRead(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) (err error)
	MarkAllNotificationsRead(ctx context.Context, userID primitive.ObjectID) (updated int64, err error)
}

type ActivityRepository interface {
	AddActivity(ctx context.Context, data domain.Activity) (id primitive.ObjectID, err error)
	GetRecentActivities(ctx context.Context, limit int64) (data []domain.Activity, err error)
}
