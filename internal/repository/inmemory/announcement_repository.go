package inmemory

import (
	"context"
	"time"

	"github.com/hassaammgl2/employee-management-system/internal/domain"
	"github.com/hassaammgl2/employee-management-system/internal/repository"
	pkgdto "github.com/hassaammgl2/employee-management-system/pkg/dto"
	"github.com/hassaammgl2/employee-management-system/pkg/errs"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AnnouncementRepositoryImpl struct {
	store *Store
}

func CreateNewAnnouncementRepository(store *Store) repository.AnnouncementRepository {
	return &AnnouncementRepositoryImpl{store: store}
}

func (r *AnnouncementRepositoryImpl) AddAnnouncement(ctx context.Context, data domain.Announcement) (id primitive.ObjectID, err error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	data.ID = newID(data.ID)
	r.store.announcements[data.ID] = data
	return data.ID, nil
}

func (r *AnnouncementRepositoryImpl) GetAnnouncementByID(ctx context.Context, id primitive.ObjectID) (announcement domain.Announcement, err error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	announcement, ok := r.store.announcements[id]
	if !ok {
		return announcement, errs.NotFound("Announcement")
	}
	return announcement, nil
}

func (r *AnnouncementRepositoryImpl) GetAnnouncements(ctx context.Context, activeOnly bool, param pkgdto.Filter) (data []domain.Announcement, err error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, a := range r.store.announcements {
		if activeOnly && !a.IsActive {
			continue
		}
		data = append(data, a)
	}
	sortByNewest(data, func(a domain.Announcement) int64 { return a.CreatedAt.UnixNano() })

	return paginate(data, param), nil
}

func (r *AnnouncementRepositoryImpl) UpdateAnnouncement(ctx context.Context, data domain.Announcement) (err error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	announcement, ok := r.store.announcements[data.ID]
	if !ok {
		return errs.NotFound("Announcement")
	}

	announcement.Title = data.Title
	announcement.Message = data.Message
	announcement.Priority = data.Priority
	announcement.IsActive = data.IsActive
	announcement.UpdatedAt = time.Now().UTC()
	r.store.announcements[data.ID] = announcement

	return nil
}

func (r *AnnouncementRepositoryImpl) DeleteAnnouncement(ctx context.Context, id primitive.ObjectID) (err error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.announcements[id]; !ok {
		return errs.NotFound("Announcement")
	}

	delete(r.store.announcements, id)
	return nil
}
