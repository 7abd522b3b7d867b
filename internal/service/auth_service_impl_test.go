package service

import (
	"sync"

	"github.com/hassaammgl2/employee-management-system/internal/domain"
	"github.com/hassaammgl2/employee-management-system/internal/dto"
	"github.com/hassaammgl2/employee-management-system/pkg/errs"
	"github.com/hassaammgl2/employee-management-system/pkg/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (s *ServiceTestSuite) Test_Register() {
	resp := s.register("  Jane@Example.com ", domain.RoleEmployee)

	s.Equal("jane@example.com", resp.User.Email)
	s.Regexp(`^E\d{5}$`, resp.User.EmployeeCode)

	user, err := s.userRepo.GetUserByEmail(s.ctx, "jane@example.com")
	s.Require().NoError(err)
	s.NotEqual(testPassword, user.Password)
	s.NoError(s.hasher.VerifyPassword(user.Password, testPassword))
	s.ErrorIs(s.hasher.VerifyPassword(user.Password, "Secret_124"), utils.ErrMismatchedHash)
	s.Equal(utils.HashRefreshToken(resp.RefreshToken), user.RefreshToken)

	admin := s.register("boss@example.com", domain.RoleAdmin)
	s.Regexp(`^A\d{5}$`, admin.User.EmployeeCode)
}

func (s *ServiceTestSuite) Test_RegisterRejects() {
	s.register("jane@example.com", domain.RoleEmployee)

	testCases := []struct {
		Name     string
		Request  dto.RegisterRequest
		Expected error
	}{
		{
			Name:     "duplicate email",
			Request:  dto.RegisterRequest{Name: "Jane", FatherName: "John", Email: "JANE@example.com", Password: testPassword, Role: domain.RoleEmployee},
			Expected: errs.ErrConflict,
		},
		{
			Name:     "weak password",
			Request:  dto.RegisterRequest{Name: "Jane", FatherName: "John", Email: "new@example.com", Password: "password", Role: domain.RoleEmployee},
			Expected: errs.ErrValidation,
		},
		{
			Name:     "unknown role",
			Request:  dto.RegisterRequest{Name: "Jane", FatherName: "John", Email: "new@example.com", Password: testPassword, Role: "root"},
			Expected: errs.ErrValidation,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.Name, func() {
			_, err := s.auth.Register(s.ctx, tc.Request)
			s.ErrorIs(err, tc.Expected)
		})
	}
}

func (s *ServiceTestSuite) Test_Login() {
	registered := s.register("jane@example.com", domain.RoleEmployee)

	s.Run("valid credentials", func() {
		resp, err := s.auth.Login(s.ctx, dto.LoginRequest{Email: "jane@example.com", Password: testPassword})
		s.Require().NoError(err)

		user, err := s.userRepo.GetUserByEmail(s.ctx, "jane@example.com")
		s.Require().NoError(err)
		s.Equal(utils.HashRefreshToken(resp.RefreshToken), user.RefreshToken)
	})

	s.Run("matching employee code", func() {
		_, err := s.auth.Login(s.ctx, dto.LoginRequest{Email: "jane@example.com", Password: testPassword, EmployeeCode: registered.User.EmployeeCode})
		s.NoError(err)
	})

	for name, req := range map[string]dto.LoginRequest{
		"wrong password": {Email: "jane@example.com", Password: "Secret_124"},
		"unknown email":  {Email: "nobody@example.com", Password: testPassword},
		"wrong code":     {Email: "jane@example.com", Password: testPassword, EmployeeCode: "X00000"},
	} {
		s.Run(name, func() {
			_, err := s.auth.Login(s.ctx, req)
			s.ErrorIs(err, errs.ErrUnauthorized)
			s.Equal(errs.ErrInvalidCredentials.Error(), err.Error())
		})
	}
}

func (s *ServiceTestSuite) Test_LoginFailureStoresNoToken() {
	hash, err := s.hasher.HashPassword(testPassword)
	s.Require().NoError(err)

	id, err := s.userRepo.AddUser(s.ctx, domain.User{Name: "Jane", Email: "jane@example.com", Password: hash, Role: domain.RoleEmployee, EmployeeCode: "E00001"})
	s.Require().NoError(err)

	_, err = s.auth.Login(s.ctx, dto.LoginRequest{Email: "jane@example.com", Password: "Secret_999"})
	s.ErrorIs(err, errs.ErrUnauthorized)

	user, err := s.userRepo.GetUserByID(s.ctx, id)
	s.Require().NoError(err)
	s.Empty(user.RefreshToken)
}

func (s *ServiceTestSuite) Test_LoginWithCorruptHash() {
	_, err := s.userRepo.AddUser(s.ctx, domain.User{Name: "Jane", Email: "jane@example.com", Password: testPassword, Role: domain.RoleEmployee, EmployeeCode: "E00001"})
	s.Require().NoError(err)

	_, err = s.auth.Login(s.ctx, dto.LoginRequest{Email: "jane@example.com", Password: testPassword})
	s.ErrorIs(err, errs.ErrIntegrity)
}

func (s *ServiceTestSuite) Test_RefreshRotation() {
	login := s.register("jane@example.com", domain.RoleEmployee)

	rotated, err := s.auth.Refresh(s.ctx, login.RefreshToken)
	s.Require().NoError(err)
	s.NotEqual(login.RefreshToken, rotated.RefreshToken)

	s.Run("superseded token is rejected", func() {
		_, err := s.auth.Refresh(s.ctx, login.RefreshToken)
		s.ErrorIs(err, errs.ErrUnauthorized)
	})

	s.Run("access token is not a refresh token", func() {
		_, err := s.auth.Refresh(s.ctx, rotated.AccessToken)
		s.ErrorIs(err, errs.ErrUnauthorized)
	})

	s.Run("latest token still works", func() {
		_, err := s.auth.Refresh(s.ctx, rotated.RefreshToken)
		s.NoError(err)
	})
}

func (s *ServiceTestSuite) Test_RefreshAfterExpiry() {
	login := s.register("jane@example.com", domain.RoleEmployee)

	s.now = s.now.Add(2 * s.issuer.RefreshTTL())

	_, err := s.auth.Refresh(s.ctx, login.RefreshToken)
	s.ErrorIs(err, errs.ErrUnauthorized)
}

func (s *ServiceTestSuite) Test_RefreshLosesToEarlierRotation() {
	session := s.register("jane@example.com", domain.RoleEmployee)

	before, err := s.userRepo.GetUserByEmail(s.ctx, "jane@example.com")
	s.Require().NoError(err)

	winner, err := s.auth.Refresh(s.ctx, session.RefreshToken)
	s.Require().NoError(err)

	// The loser read the principal before the winner rotated the token.
	stale := CreateNewAuthService(staleUserRepo{UserRepository: s.userRepo, snapshot: before}, s.issuer, s.hasher, s.clock)
	_, err = stale.Refresh(s.ctx, session.RefreshToken)
	s.ErrorIs(err, errs.ErrUnauthorized)

	after, err := s.userRepo.GetUserByEmail(s.ctx, "jane@example.com")
	s.Require().NoError(err)
	s.Equal(utils.HashRefreshToken(winner.RefreshToken), after.RefreshToken)
}

func (s *ServiceTestSuite) Test_ConcurrentRefreshWithOneToken() {
	const callers = 32
	session := s.register("jane@example.com", domain.RoleEmployee)

	results := make([]dto.AuthResponse, callers)
	failures := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], failures[i] = s.auth.Refresh(s.ctx, session.RefreshToken)
		}(i)
	}
	wg.Wait()

	succeeded := -1
	for i, err := range failures {
		if err == nil {
			s.Equal(-1, succeeded, "more than one refresh succeeded")
			succeeded = i
			continue
		}
		s.ErrorIs(err, errs.ErrUnauthorized)
	}
	s.Require().NotEqual(-1, succeeded)

	user, err := s.userRepo.GetUserByEmail(s.ctx, "jane@example.com")
	s.Require().NoError(err)
	s.Equal(utils.HashRefreshToken(results[succeeded].RefreshToken), user.RefreshToken)
}

func (s *ServiceTestSuite) Test_Logout() {
	login := s.register("jane@example.com", domain.RoleEmployee)
	userID, err := primitive.ObjectIDFromHex(login.User.ID)
	s.Require().NoError(err)

	s.NoError(s.auth.Logout(s.ctx, userID))
	s.NoError(s.auth.Logout(s.ctx, userID))

	user, err := s.userRepo.GetUserByID(s.ctx, userID)
	s.Require().NoError(err)
	s.Empty(user.RefreshToken)

	_, err = s.auth.Refresh(s.ctx, login.RefreshToken)
	s.ErrorIs(err, errs.ErrUnauthorized)

	s.NoError(s.auth.Logout(s.ctx, primitive.NewObjectID()))
}

func (s *ServiceTestSuite) Test_SessionRoundTrip() {
	registered := s.register("jane@example.com", domain.RoleEmployee)

	login, err := s.auth.Login(s.ctx, dto.LoginRequest{Email: "jane@example.com", Password: testPassword})
	s.Require().NoError(err)

	refreshed, err := s.auth.Refresh(s.ctx, login.RefreshToken)
	s.Require().NoError(err)

	user, err := s.auth.AuthorizeRequest(s.ctx, refreshed.AccessToken)
	s.Require().NoError(err)
	s.Equal(registered.User.ID, user.ID.Hex())
	s.Equal(domain.RoleEmployee, user.Role)
}

func (s *ServiceTestSuite) Test_AuthorizeRequest() {
	login := s.register("jane@example.com", domain.RoleEmployee)

	_, err := s.auth.AuthorizeRequest(s.ctx, "")
	s.ErrorIs(err, errs.ErrUnauthorized)

	_, err = s.auth.AuthorizeRequest(s.ctx, login.RefreshToken)
	s.ErrorIs(err, errs.ErrUnauthorized)

	s.now = s.now.Add(s.issuer.AccessTTL() + 1)
	_, err = s.auth.AuthorizeRequest(s.ctx, login.AccessToken)
	s.ErrorIs(err, errs.ErrUnauthorized)
}

func (s *ServiceTestSuite) Test_AuthorizeRequestForDeletedUser() {
	login := s.register("jane@example.com", domain.RoleEmployee)
	userID, err := primitive.ObjectIDFromHex(login.User.ID)
	s.Require().NoError(err)

	s.Require().NoError(s.userRepo.DeleteUser(s.ctx, userID))

	_, err = s.auth.AuthorizeRequest(s.ctx, login.AccessToken)
	s.ErrorIs(err, errs.ErrUnauthorized)
}

func (s *ServiceTestSuite) Test_ChangePassword() {
	login := s.register("jane@example.com", domain.RoleEmployee)
	userID, err := primitive.ObjectIDFromHex(login.User.ID)
	s.Require().NoError(err)

	err = s.auth.ChangePassword(s.ctx, userID, dto.ChangePasswordRequest{CurrentPassword: "Wrong_123", NewPassword: "Better_456"})
	s.ErrorIs(err, errs.ErrUnauthorized)

	err = s.auth.ChangePassword(s.ctx, userID, dto.ChangePasswordRequest{CurrentPassword: testPassword, NewPassword: "weak"})
	s.ErrorIs(err, errs.ErrValidation)

	err = s.auth.ChangePassword(s.ctx, userID, dto.ChangePasswordRequest{CurrentPassword: testPassword, NewPassword: "Better_456"})
	s.Require().NoError(err)

	_, err = s.auth.Refresh(s.ctx, login.RefreshToken)
	s.ErrorIs(err, errs.ErrUnauthorized)

	_, err = s.auth.Login(s.ctx, dto.LoginRequest{Email: "jane@example.com", Password: testPassword})
	s.ErrorIs(err, errs.ErrUnauthorized)

	_, err = s.auth.Login(s.ctx, dto.LoginRequest{Email: "jane@example.com", Password: "Better_456"})
	s.NoError(err)
}
