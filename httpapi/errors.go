package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kbforge/kbforge/answer"
	"github.com/kbforge/kbforge/docs"
	"github.com/kbforge/kbforge/search"
	"github.com/kbforge/kbforge/storage"
	"github.com/kbforge/kbforge/teams"
)

// httpError maps domain sentinels onto HTTP statuses. Anything unmapped
// is a 500.
func httpError(err error) *echo.HTTPError {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, search.ErrQueryRequired),
		errors.Is(err, search.ErrUserRequired),
		errors.Is(err, search.ErrUnknownMode),
		errors.Is(err, answer.ErrQuestionRequired),
		errors.Is(err, answer.ErrUserRequired),
		errors.Is(err, docs.ErrTeamRequired),
		errors.Is(err, docs.ErrUserRequired),
		errors.Is(err, docs.ErrTitleRequired),
		errors.Is(err, docs.ErrContentRequired),
		errors.Is(err, docs.ErrInvalidAccessLevel),
		errors.Is(err, teams.ErrNameRequired),
		errors.Is(err, teams.ErrUserRequired),
		errors.Is(err, teams.ErrEmailRequired):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())

	case errors.Is(err, docs.ErrNotMember),
		errors.Is(err, docs.ErrPermissionDenied),
		errors.Is(err, teams.ErrAdminRequired),
		errors.Is(err, teams.ErrCannotRemoveAdmin):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())

	case errors.Is(err, storage.ErrNotFound),
		errors.Is(err, teams.ErrMemberNotFound),
		errors.Is(err, docs.ErrNotShared):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())

	case errors.Is(err, teams.ErrAlreadyMember),
		errors.Is(err, storage.ErrDuplicateKey):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}

	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
