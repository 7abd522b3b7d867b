package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/hassaammgl2/employee-management-system/internal/domain"
	"github.com/hassaammgl2/employee-management-system/internal/dto"
	"github.com/hassaammgl2/employee-management-system/internal/repository"
	"github.com/hassaammgl2/employee-management-system/pkg/errs"
	"github.com/hassaammgl2/employee-management-system/pkg/utils"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const codeGenerationAttempts = 5

type AuthServiceImpl struct {
	userRepo repository.UserRepository
	issuer   *utils.TokenIssuer
	hasher   *utils.PasswordHasher
	now      Clock
}

func CreateNewAuthService(userRepo repository.UserRepository, issuer *utils.TokenIssuer, hasher *utils.PasswordHasher, now Clock) AuthService {
	return &AuthServiceImpl{
		userRepo: userRepo,
		issuer:   issuer,
		hasher:   hasher,
		now:      now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// authFailure logs the real reason and returns the generic credential error.
func authFailure(ctx context.Context, component string, reason string, err error) error {
	log.Ctx(ctx).Warn().Err(err).Str("component", component).Str("reason", reason).Msg("authentication rejected")
	return errs.ErrInvalidCredentials
}

func tokenFailure(ctx context.Context, component string, reason string, err error) error {
	log.Ctx(ctx).Warn().Err(err).Str("component", component).Str("reason", reason).Msg("token rejected")
	return errs.ErrInvalidToken
}

func (s *AuthServiceImpl) Register(ctx context.Context, req dto.RegisterRequest) (resp dto.AuthResponse, err error) {
	email := normalizeEmail(req.Email)

	fields := map[string]string{}
	if !utils.IsStrongPassword(req.Password) {
		fields["password"] = "password"
	}
	if req.Role != domain.RoleAdmin && req.Role != domain.RoleEmployee {
		fields["role"] = "oneof"
	}
	if email == "" {
		fields["email"] = "required"
	}
	if len(fields) > 0 {
		return resp, errs.Validation(fields)
	}

	if _, err = s.userRepo.GetUserByEmail(ctx, email); err == nil {
		return resp, errs.ErrEmailAlreadyUsed
	} else if !errors.Is(err, errs.ErrNotFound) {
		return resp, err
	}

	hash, err := s.hasher.HashPassword(req.Password)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Register").Msg("")
		return resp, err
	}

	now := s.now().UTC()
	user := domain.User{
		Name:       strings.TrimSpace(req.Name),
		FatherName: strings.TrimSpace(req.FatherName),
		Email:      email,
		Password:   hash,
		Role:       req.Role,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	prefix := utils.EmployeeCodePrefix
	if req.Role == domain.RoleAdmin {
		prefix = utils.AdminCodePrefix
	}

	user.ID, user.EmployeeCode, err = addUserWithCode(ctx, s.userRepo, user, strings.TrimSpace(req.EmployeeCode), prefix)
	if err != nil {
		return resp, err
	}

	return s.startSession(ctx, user, "Register")
}

// addUserWithCode inserts user with the supplied code, or with a generated
// one that is retried on collision.
func addUserWithCode(ctx context.Context, userRepo repository.UserRepository, user domain.User, code string, prefix string) (id primitive.ObjectID, assigned string, err error) {
	if code != "" {
		user.EmployeeCode = code
		id, err = userRepo.AddUser(ctx, user)
		return id, code, err
	}

	for i := 0; i < codeGenerationAttempts; i++ {
		user.EmployeeCode, err = utils.GenerateEmployeeCode(prefix)
		if err != nil {
			return id, "", err
		}

		id, err = userRepo.AddUser(ctx, user)
		if !errors.Is(err, errs.ErrCodeAlreadyUsed) {
			return id, user.EmployeeCode, err
		}
		log.Ctx(ctx).Debug().Str("component", "addUserWithCode").Str("code", user.EmployeeCode).Msg("employee code collision")
	}

	return id, "", err
}

func (s *AuthServiceImpl) Login(ctx context.Context, req dto.LoginRequest) (resp dto.AuthResponse, err error) {
	user, err := s.userRepo.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return resp, authFailure(ctx, "Login", "user_not_found", err)
		}
		return resp, err
	}

	if code := strings.TrimSpace(req.EmployeeCode); code != "" && code != user.EmployeeCode {
		return resp, authFailure(ctx, "Login", "employee_code_mismatch", nil)
	}

	if err = s.hasher.VerifyPassword(user.Password, req.Password); err != nil {
		if errors.Is(err, utils.ErrMismatchedHash) {
			return resp, authFailure(ctx, "Login", "password_mismatch", err)
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "Login").Str("user", user.ID.Hex()).Msg("stored password hash is unusable")
		return resp, errs.Integrity()
	}

	return s.startSession(ctx, user, "Login")
}

func (s *AuthServiceImpl) startSession(ctx context.Context, user domain.User, component string) (resp dto.AuthResponse, err error) {
	pair, err := s.issuer.CreateTokenPair(user.ID.Hex(), user.Role)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return resp, err
	}

	if err = s.userRepo.SetRefreshToken(ctx, user.ID, utils.HashRefreshToken(pair.RefreshToken)); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return resp, err
	}

	return dto.AuthResponse{
		User:         dto.CreateUserResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (resp dto.AuthResponse, err error) {
	if refreshToken == "" {
		return resp, tokenFailure(ctx, "Refresh", "token_missing", nil)
	}

	claims, err := s.issuer.ParseRefreshToken(refreshToken)
	if err != nil {
		return resp, tokenFailure(ctx, "Refresh", "token_invalid", err)
	}

	userID, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return resp, tokenFailure(ctx, "Refresh", "subject_invalid", err)
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return resp, tokenFailure(ctx, "Refresh", "user_not_found", err)
		}
		return resp, err
	}

	digest := utils.HashRefreshToken(refreshToken)
	if user.RefreshToken == "" || subtle.ConstantTimeCompare([]byte(user.RefreshToken), []byte(digest)) != 1 {
		return resp, tokenFailure(ctx, "Refresh", "token_mismatch", nil)
	}

	pair, err := s.issuer.CreateTokenPair(user.ID.Hex(), user.Role)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Refresh").Msg("")
		return resp, err
	}

	swapped, err := s.userRepo.ReplaceRefreshToken(ctx, user.ID, digest, utils.HashRefreshToken(pair.RefreshToken))
	if err != nil {
		return resp, err
	}
	if !swapped {
		return resp, tokenFailure(ctx, "Refresh", "token_superseded", nil)
	}

	return dto.AuthResponse{
		User:         dto.CreateUserResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

func (s *AuthServiceImpl) Logout(ctx context.Context, userID primitive.ObjectID) (err error) {
	err = s.userRepo.SetRefreshToken(ctx, userID, "")
	if errors.Is(err, errs.ErrNotFound) {
		log.Ctx(ctx).Warn().Str("component", "Logout").Str("user", userID.Hex()).Msg("logout for unknown user")
		return nil
	}

	return err
}

func (s *AuthServiceImpl) AuthorizeRequest(ctx context.Context, accessToken string) (user domain.User, err error) {
	claims, err := s.issuer.ParseAccessToken(accessToken)
	if err != nil {
		return user, tokenFailure(ctx, "AuthorizeRequest", "token_invalid", err)
	}

	userID, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return user, tokenFailure(ctx, "AuthorizeRequest", "subject_invalid", err)
	}

	user, err = s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return user, tokenFailure(ctx, "AuthorizeRequest", "user_not_found", err)
		}
		return user, err
	}

	return user, nil
}

func (s *AuthServiceImpl) ChangePassword(ctx context.Context, userID primitive.ObjectID, req dto.ChangePasswordRequest) (err error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return authFailure(ctx, "ChangePassword", "user_not_found", err)
		}
		return err
	}

	if err = s.hasher.VerifyPassword(user.Password, req.CurrentPassword); err != nil {
		if errors.Is(err, utils.ErrMismatchedHash) {
			return authFailure(ctx, "ChangePassword", "password_mismatch", err)
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "ChangePassword").Str("user", user.ID.Hex()).Msg("stored password hash is unusable")
		return errs.Integrity()
	}

	if !utils.IsStrongPassword(req.NewPassword) {
		return errs.ValidationField("newPassword", "password")
	}

	hash, err := s.hasher.HashPassword(req.NewPassword)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "ChangePassword").Msg("")
		return err
	}

	return s.userRepo.UpdatePassword(ctx, user.ID, hash)
}

func (s *AuthServiceImpl) GetCurrentUser(ctx context.Context, userID primitive.ObjectID) (resp dto.UserResponse, err error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return resp, err
	}

	return dto.CreateUserResponse(user), nil
}
