package inmemory

import (
	"context"

	"github.com/hassaammgl2/employee-management-system/internal/domain"
	"github.com/hassaammgl2/employee-management-system/internal/repository"
	pkgdto "github.com/hassaammgl2/employee-management-system/pkg/dto"
	"github.com/hassaammgl2/employee-management-system/pkg/errs"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationRepositoryImpl struct {
	store *Store
}

func CreateNewNotificationRepository(store *Store) repository.NotificationRepository {
	return &NotificationRepositoryImpl{store: store}
}

func (r *NotificationRepositoryImpl) AddNotification(ctx context.Context, data domain.Notification) (id primitive.ObjectID, err error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	data.ID = newID(data.ID)
	r.store.notifications[data.ID] = data
	return data.ID, nil
}

func (r *NotificationRepositoryImpl) GetNotifications(ctx context.Context, userID primitive.ObjectID, param pkgdto.Filter) (data []domain.Notification, err error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, n := range r.store.notifications {
		if n.UserID == userID {
			data = append(data, n)
		}
	}
	sortByNewest(data, func(n domain.Notification) int64 { return n.CreatedAt.UnixNano() })

	return paginate(data, param), nil
}

func (r *NotificationRepositoryImpl) MarkNotificationRead(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) (err error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	notification, ok := r.store.notifications[id]
	if !ok || notification.UserID != userID {
		return errs.NotFound("Notification")
	}

	notification.Read = true
	r.store.notifications[id] = notification
	return nil
}

func (r *NotificationRepositoryImpl) MarkAllNotificationsRead(ctx context.Context, userID primitive.ObjectID) (updated int64, err error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, n := range r.store.notifications {
		if n.UserID == userID && !n.Read {
			n.Read = true
			r.store.notifications[id] = n
			updated++
		}
	}
	return updated, nil
}
