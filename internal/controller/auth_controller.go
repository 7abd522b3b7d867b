package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/hassaammgl2/employee-management-system/internal/dto"
	"github.com/hassaammgl2/employee-management-system/internal/middleware"
	"github.com/hassaammgl2/employee-management-system/internal/service"
	"github.com/hassaammgl2/employee-management-system/pkg/errs"
	"github.com/hassaammgl2/employee-management-system/pkg/response"
	"github.com/labstack/echo/v4"
)

type CookieConfig struct {
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type AuthController struct {
	service  service.AuthService
	throttle *middleware.LoginThrottle
	cookies  CookieConfig
}

func CreateAuthController(g *echo.Group, service service.AuthService, throttle *middleware.LoginThrottle, cookies CookieConfig, authenticate echo.MiddlewareFunc) {
	ac := AuthController{
		service:  service,
		throttle: throttle,
		cookies:  cookies,
	}

	g.POST("/auth/register", ac.Register)
	g.POST("/auth/login", ac.Login)
	g.POST("/auth/refresh", ac.Refresh)
	g.POST("/auth/logout", ac.Logout, authenticate)
	g.GET("/auth/me", ac.GetCurrentUser, authenticate)
	g.PUT("/auth/password", ac.ChangePassword, authenticate)
}

func (c *AuthController) newCookie(name string, value string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.cookies.Secure,
		SameSite: http.SameSiteStrictMode,
	}
}

func (c *AuthController) setSessionCookies(e echo.Context, resp dto.AuthResponse) {
	e.SetCookie(c.newCookie(middleware.AccessTokenCookie, resp.AccessToken, c.cookies.AccessTTL))
	e.SetCookie(c.newCookie(middleware.RefreshTokenCookie, resp.RefreshToken, c.cookies.RefreshTTL))
}

func (c *AuthController) clearSessionCookies(e echo.Context) {
	for _, name := range []string{middleware.AccessTokenCookie, middleware.RefreshTokenCookie} {
		cookie := c.newCookie(name, "", 0)
		cookie.MaxAge = -1
		e.SetCookie(cookie)
	}
}

func (c *AuthController) Register(e echo.Context) error {
	payload := dto.RegisterRequest{}
	if err := bindBody(e, &payload, "Register"); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.Register(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	c.setSessionCookies(e, resp)
	return response.WriteCreatedResponse(e, "User registered successfully", resp)
}

func (c *AuthController) Login(e echo.Context) error {
	payload := dto.LoginRequest{}
	if err := bindBody(e, &payload, "Login"); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	ctx := e.Request().Context()
	ip := e.RealIP()
	if !c.throttle.Allowed(ctx, payload.Email, ip) {
		return response.WriteErrorResponse(e, errs.ErrTooManyRequests, nil)
	}

	resp, err := c.service.Login(ctx, payload)
	if err != nil {
		if errors.Is(err, errs.ErrUnauthorized) {
			c.throttle.RecordFailure(ctx, payload.Email, ip)
		}
		return response.WriteErrorResponse(e, err, nil)
	}

	c.throttle.Reset(ctx, payload.Email, ip)
	c.setSessionCookies(e, resp)
	return response.WriteSuccessResponse(e, "Login successful", resp)
}

// Refresh takes the refresh token from its cookie, falling back to the body.
func (c *AuthController) Refresh(e echo.Context) error {
	var token string
	if cookie, err := e.Cookie(middleware.RefreshTokenCookie); err == nil && cookie.Value != "" {
		token = cookie.Value
	} else {
		payload := dto.RefreshRequest{}
		if err := e.Bind(&payload); err != nil {
			return response.WriteErrorResponse(e, errs.ErrClient, nil)
		}
		token = payload.RefreshToken
	}

	resp, err := c.service.Refresh(e.Request().Context(), token)
	if err != nil {
		if errors.Is(err, errs.ErrUnauthorized) {
			c.clearSessionCookies(e)
		}
		return response.WriteErrorResponse(e, err, nil)
	}

	c.setSessionCookies(e, resp)
	return response.WriteSuccessResponse(e, "Token refreshed", resp)
}

func (c *AuthController) Logout(e echo.Context) error {
	user, err := currentUser(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	if err = c.service.Logout(e.Request().Context(), user.ID); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	c.clearSessionCookies(e)
	return response.WriteSuccessResponse(e, "Logged out successfully", nil)
}

func (c *AuthController) GetCurrentUser(e echo.Context) error {
	user, err := currentUser(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.GetCurrentUser(e.Request().Context(), user.ID)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *AuthController) ChangePassword(e echo.Context) error {
	user, err := currentUser(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	payload := dto.ChangePasswordRequest{}
	if err = bindBody(e, &payload, "ChangePassword"); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	if err = c.service.ChangePassword(e.Request().Context(), user.ID, payload); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	c.clearSessionCookies(e)
	return response.WriteSuccessResponse(e, "Password updated, please log in again", nil)
}
