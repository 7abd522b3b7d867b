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

type UserRepositoryImpl struct {
	store *Store
}

func CreateNewUserRepository(store *Store) repository.UserRepository {
	return &UserRepositoryImpl{store: store}
}

func (r *UserRepositoryImpl) conflict(data domain.User) error {
	for _, u := range r.store.users {
		if u.ID == data.ID {
			continue
		}
		if u.Email == data.Email {
			return errs.ErrEmailAlreadyUsed
		}
		if data.EmployeeCode != "" && u.EmployeeCode == data.EmployeeCode {
			return errs.ErrCodeAlreadyUsed
		}
	}
	return nil
}

func (r *UserRepositoryImpl) AddUser(ctx context.Context, data domain.User) (id primitive.ObjectID, err error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	data.ID = newID(data.ID)
	if err = r.conflict(data); err != nil {
		return primitive.NilObjectID, err
	}

	r.store.users[data.ID] = data
	return data.ID, nil
}

func (r *UserRepositoryImpl) GetUserByID(ctx context.Context, id primitive.ObjectID) (user domain.User, err error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	user, ok := r.store.users[id]
	if !ok {
		return user, errs.NotFound("User")
	}
	return user, nil
}

func (r *UserRepositoryImpl) GetUserByEmail(ctx context.Context, email string) (user domain.User, err error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.store.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user, errs.NotFound("User")
}

func (r *UserRepositoryImpl) GetUsers(ctx context.Context, param pkgdto.Filter) (data []domain.User, err error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.store.users {
		data = append(data, u)
	}
	sortByNewest(data, func(u domain.User) int64 { return u.CreatedAt.UnixNano() })

	return paginate(data, param), nil
}

func (r *UserRepositoryImpl) GetUsersByRole(ctx context.Context, role string) (data []domain.User, err error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.store.users {
		if u.Role == role {
			data = append(data, u)
		}
	}
	return data, nil
}

func (r *UserRepositoryImpl) CountUsers(ctx context.Context) (count int64, err error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return int64(len(r.store.users)), nil
}

func (r *UserRepositoryImpl) UpdateUser(ctx context.Context, data domain.User) (err error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[data.ID]
	if !ok {
		return errs.NotFound("User")
	}
	if err = r.conflict(domain.User{ID: data.ID, Email: data.Email}); err != nil {
		return err
	}

	user.Name = data.Name
	user.FatherName = data.FatherName
	user.Email = data.Email
	user.UpdatedAt = time.Now().UTC()
	r.store.users[data.ID] = user

	return nil
}

func (r *UserRepositoryImpl) SetRefreshToken(ctx context.Context, id primitive.ObjectID, digest string) (err error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[id]
	if !ok {
		return errs.NotFound("User")
	}

	user.RefreshToken = digest
	r.store.users[id] = user
	return nil
}

func (r *UserRepositoryImpl) ReplaceRefreshToken(ctx context.Context, id primitive.ObjectID, oldDigest string, newDigest string) (swapped bool, err error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[id]
	if !ok || oldDigest == "" || user.RefreshToken != oldDigest {
		return false, nil
	}

	user.RefreshToken = newDigest
	r.store.users[id] = user
	return true, nil
}

func (r *UserRepositoryImpl) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) (err error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[id]
	if !ok {
		return errs.NotFound("User")
	}

	user.Password = hash
	user.RefreshToken = ""
	user.UpdatedAt = time.Now().UTC()
	r.store.users[id] = user
	return nil
}

func (r *UserRepositoryImpl) DeleteUser(ctx context.Context, id primitive.ObjectID) (err error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[id]; !ok {
		return errs.NotFound("User")
	}

	delete(r.store.users, id)
	return nil
}
