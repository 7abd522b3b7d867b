package service

import (
	"context"

	"github.com/hassaammgl2/employee-management-system/internal/dto"
	"github.com/hassaammgl2/employee-management-system/internal/repository"
	pkgdto "github.com/hassaammgl2/employee-management-system/pkg/dto"
)

type UserServiceImpl struct {
	userRepo repository.UserRepository
}

func CreateNewUserService(userRepo repository.UserRepository) UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

func (s *UserServiceImpl) GetUsers(ctx context.Context, param pkgdto.Filter) (resp pkgdto.DataWithPagination, err error) {
	users, err := s.userRepo.GetUsers(ctx, param)
	if err != nil {
		return
	}

	count, err := s.userRepo.CountUsers(ctx)
	if err != nil {
		return
	}

	data := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		data = append(data, dto.CreateUserResponse(user))
	}

	resp.Data = data
	resp.Pagination = pkgdto.PaginationMetadata{
		TotalCount: count,
		Page:       param.Page,
		Limit:      param.Limit,
	}

	return resp, nil
}
