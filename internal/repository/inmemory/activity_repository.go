package inmemory

import (
	"context"

	"github.com/hassaammgl2/employee-management-system/internal/domain"
	"github.com/hassaammgl2/employee-management-system/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ActivityRepositoryImpl struct {
	store *Store
}

func CreateNewActivityRepository(store *Store) repository.ActivityRepository {
	return &ActivityRepositoryImpl{store: store}
}

func (r *ActivityRepositoryImpl) AddActivity(ctx context.Context, data domain.Activity) (id primitive.ObjectID, err error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	data.ID = newID(data.ID)
	r.store.activities[data.ID] = data
	return data.ID, nil
}

func (r *ActivityRepositoryImpl) GetRecentActivities(ctx context.Context, limit int64) (data []domain.Activity, err error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, a := range r.store.activities {
		data = append(data, a)
	}
	sortByNewest(data, func(a domain.Activity) int64 { return a.OccurredAt.UnixNano() })

	if limit > 0 && int64(len(data)) > limit {
		data = data[:limit]
	}
	return data, nil
}
