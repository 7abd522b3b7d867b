package inmemory

import (
	"context"
	"sort"
	"sync"

	"github.com/hassaammgl2/employee-management-system/internal/domain"
	pkgdto "github.com/hassaammgl2/employee-management-system/pkg/dto"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store keeps every collection in process memory behind one lock. It
// enforces the same unique keys as the MongoDB indexes.
type Store struct {
	mu            sync.RWMutex
	users         map[primitive.ObjectID]domain.User
	departments   map[primitive.ObjectID]domain.Department
	employees     map[primitive.ObjectID]domain.Employee
	tasks         map[primitive.ObjectID]domain.Task
	announcements map[primitive.ObjectID]domain.Announcement
	notifications map[primitive.ObjectID]domain.Notification
	activities    map[primitive.ObjectID]domain.Activity
}

func CreateNewStore() *Store {
	return &Store{
		users:         map[primitive.ObjectID]domain.User{},
		departments:   map[primitive.ObjectID]domain.Department{},
		employees:     map[primitive.ObjectID]domain.Employee{},
		tasks:         map[primitive.ObjectID]domain.Task{},
		announcements: map[primitive.ObjectID]domain.Announcement{},
		notifications: map[primitive.ObjectID]domain.Notification{},
		activities:    map[primitive.ObjectID]domain.Activity{},
	}
}

// HandleTrx runs fn directly. The store has no rollback, which matches a
// MongoDB deployment with transactions disabled.
func (s *Store) HandleTrx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newID(id primitive.ObjectID) primitive.ObjectID {
	if id.IsZero() {
		return primitive.NewObjectID()
	}
	return id
}

func paginate[T any](data []T, param pkgdto.Filter) []T {
	if !param.Paginated() {
		return data
	}

	skip := int(param.Skip())
	if skip >= len(data) {
		return []T{}
	}

	end := skip + param.Limit
	if end > len(data) {
		end = len(data)
	}

	return data[skip:end]
}

func sortByNewest[T any](data []T, createdAt func(T) int64) {
	sort.SliceStable(data, func(i, j int) bool {
		return createdAt(data[i]) > createdAt(data[j])
	})
}
