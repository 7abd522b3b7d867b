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

type TaskRepositoryImpl struct {
	store *Store
}

func CreateNewTaskRepository(store *Store) repository.TaskRepository {
	return &TaskRepositoryImpl{store: store}
}

func (r *TaskRepositoryImpl) AddTask(ctx context.Context, data domain.Task) (id primitive.ObjectID, err error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	data.ID = newID(data.ID)
	r.store.tasks[data.ID] = data
	return data.ID, nil
}

func (r *TaskRepositoryImpl) GetTaskByID(ctx context.Context, id primitive.ObjectID) (task domain.Task, err error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	task, ok := r.store.tasks[id]
	if !ok {
		return task, errs.NotFound("Task")
	}
	return task, nil
}

func (r *TaskRepositoryImpl) GetTasks(ctx context.Context, filter domain.TaskFilter, param pkgdto.Filter) (data []domain.Task, err error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, t := range r.store.tasks {
		if !filter.AssignedTo.IsZero() && t.AssignedTo != filter.AssignedTo {
			continue
		}
		if filter.Completed != nil && t.Completed != *filter.Completed {
			continue
		}
		data = append(data, t)
	}
	sortByNewest(data, func(t domain.Task) int64 { return t.CreatedAt.UnixNano() })

	return paginate(data, param), nil
}

func (r *TaskRepositoryImpl) UpdateTask(ctx context.Context, data domain.Task) (err error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	task, ok := r.store.tasks[data.ID]
	if !ok {
		return errs.NotFound("Task")
	}

	task.Title = data.Title
	task.Description = data.Description
	task.AssignedTo = data.AssignedTo
	task.DueDate = data.DueDate
	task.Priority = data.Priority
	task.UpdatedAt = time.Now().UTC()
	r.store.tasks[data.ID] = task

	return nil
}

func (r *TaskRepositoryImpl) SetTaskCompleted(ctx context.Context, id primitive.ObjectID, completed bool) (transitioned bool, err error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	task, ok := r.store.tasks[id]
	if !ok {
		return false, errs.NotFound("Task")
	}

	transitioned = completed && !task.Completed
	task.Completed = completed
	task.UpdatedAt = time.Now().UTC()
	r.store.tasks[id] = task

	return transitioned, nil
}

func (r *TaskRepositoryImpl) DeleteTask(ctx context.Context, id primitive.ObjectID) (err error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.tasks[id]; !ok {
		return errs.NotFound("Task")
	}

	delete(r.store.tasks, id)
	return nil
}
