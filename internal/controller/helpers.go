package controller

import (
	"github.com/hassaammgl2/employee-management-system/internal/domain"
	"github.com/hassaammgl2/employee-management-system/internal/middleware"
	"github.com/hassaammgl2/employee-management-system/pkg/errs"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// bindBody decodes and validates a request payload.
func bindBody(e echo.Context, payload interface{}, component string) error {
	if err := e.Bind(payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", component).Msg("")
		return errs.ErrClient
	}

	return e.Validate(payload)
}

func bindQuery(e echo.Context, payload interface{}, component string) error {
	if err := (&echo.DefaultBinder{}).BindQueryParams(e, payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", component).Msg("")
		return errs.ErrClient
	}

	return nil
}

func currentUser(e echo.Context) (domain.User, error) {
	user, ok := middleware.CurrentUser(e)
	if !ok {
		return user, errs.ErrInvalidToken
	}
	return user, nil
}
