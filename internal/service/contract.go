package service

import (
	"context"
	"time"

	"github.com/hassaammgl2/employee-management-system/internal/domain"
	"github.com/hassaammgl2/employee-management-system/internal/dto"
	pkgdto "github.com/hassaammgl2/employee-management-system/pkg/dto"
	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Clock func() time.Time

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (resp dto.AuthResponse, err error)
	Login(ctx context.Context, req dto.LoginRequest) (resp dto.AuthResponse, err error)
	Refresh(ctx context.Context, refreshToken string) (resp dto.AuthResponse, err error)
	Logout(ctx context.Context, userID primitive.ObjectID) (err error)
	AuthorizeRequest(ctx context.Context, accessToken string) (user domain.User, err error)
	ChangePassword(ctx context.Context, userID primitive.ObjectID, req dto.ChangePasswordRequest) (err error)
	GetCurrentUser(ctx context.Context, userID primitive.ObjectID) (resp dto.UserResponse, err error)
}

type UserService interface {
	GetUsers(ctx context.Context, param pkgdto.Filter) (resp pkgdto.DataWithPagination, err error)
}

// RosterTracker keeps Department.employeeCount equal to the number of
// employees referencing each department.
type RosterTracker interface {
	ResolveOrCreateDepartment(ctx context.Context, name string) (department domain.Department, created bool, err error)
	// ApplyTransition moves one employee from one department to another.
	// primitive.NilObjectID stands for no department on either side.
	ApplyTransition(ctx context.Context, from primitive.ObjectID, to primitive.ObjectID) (err error)
	Reconcile(ctx context.Context) (resp dto.ReconcileResponse, err error)
}

type EmployeeService interface {
	AddEmployee(ctx context.Context, actor primitive.ObjectID, req dto.EmployeeRequest) (resp dto.EmployeeResponse, err error)
	GetEmployees(ctx context.Context, query dto.EmployeeQuery, param pkgdto.Filter) (resp []dto.EmployeeResponse, err error)
	GetEmployeeByID(ctx context.Context, id string) (resp dto.EmployeeResponse, err error)
	GetEmployeeByUserID(ctx context.Context, userID primitive.ObjectID) (resp dto.EmployeeResponse, err error)
	UpdateEmployee(ctx context.Context, actor primitive.ObjectID, req dto.EmployeeUpdateRequest) (resp dto.EmployeeResponse, err error)
	DeleteEmployee(ctx context.Context, actor primitive.ObjectID, id string) (err error)
}

type DepartmentService interface {
	AddDepartment(ctx context.Context, req dto.DepartmentRequest) (resp dto.DepartmentResponse, err error)
	GetDepartments(ctx context.Context, param pkgdto.Filter) (resp []dto.DepartmentResponse, err error)
	GetDepartmentByID(ctx context.Context, id string) (resp dto.DepartmentResponse, err error)
	UpdateDepartment(ctx context.Context, req dto.DepartmentUpdateRequest) (resp dto.DepartmentResponse, err error)
	DeleteDepartment(ctx context.Context, id string) (err error)
	ResolveDepartment(ctx context.Context, req dto.ResolveDepartmentRequest) (resp dto.ResolveDepartmentResponse, err error)
	Reconcile(ctx context.Context) (resp dto.ReconcileResponse, err error)
}

type TaskService interface {
	AddTask(ctx context.Context, req dto.TaskRequest) (task domain.Task, err error)
	GetTasks(ctx context.Context, user domain.User, query dto.TaskQuery, param pkgdto.Filter) (tasks []domain.Task, err error)
	GetTaskByID(ctx context.Context, user domain.User, id string) (task domain.Task, err error)
	UpdateTask(ctx context.Context, user domain.User, req dto.TaskUpdateRequest) (task domain.Task, err error)
	DeleteTask(ctx context.Context, id string) (err error)
}

type AnnouncementService interface {
	AddAnnouncement(ctx context.Context, user domain.User, req dto.AnnouncementRequest) (announcement domain.Announcement, err error)
	GetAnnouncements(ctx context.Context, user domain.User, param pkgdto.Filter) (announcements []domain.Announcement, err error)
	GetAnnouncementByID(ctx context.Context, user domain.User, id string) (announcement domain.Announcement, err error)
	UpdateAnnouncement(ctx context.Context, req dto.AnnouncementUpdateRequest) (announcement domain.Announcement, err error)
	DeleteAnnouncement(ctx context.Context, id string) (err error)
}

// Notifier delivers an in-app notification. Callers treat delivery as best
// effort and never fail their own operation on its error.
type Notifier interface {
	Notify(ctx context.Context, event dto.NotificationEvent) (err error)
}

type NotificationService interface {
	Notifier
	NotifyAdmins(ctx context.Context, title string, message string, kind string) (err error)
	StoreNotification(ctx context.Context, event dto.NotificationEvent) (err error)
	GetNotifications(ctx context.Context, userID primitive.ObjectID, param pkgdto.Filter) (notifications []domain.Notification, err error)
	MarkRead(ctx context.Context, userID primitive.ObjectID, id string) (err error)
	MarkAllRead(ctx context.Context, userID primitive.ObjectID) (updated int64, err error)
	ConsumeEvent(ctx context.Context)
}

type ActivityService interface {
	LogActivity(ctx context.Context, userID primitive.ObjectID, action string, category string)
	GetRecentActivities(ctx context.Context, limit int64) (activities []domain.Activity, err error)
}

type EventPublisher interface {
	Publish(ctx context.Context, key string, msg dto.KafkaMessage) (err error)
}

type EventReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type Mailer interface {
	SendWelcome(ctx context.Context, to string, name string, employeeCode string) (err error)
}
