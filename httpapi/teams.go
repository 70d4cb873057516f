package httpapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/kbforge/kbforge/core"
	"github.com/kbforge/kbforge/teams"
)

// TeamsHandler serves team management.
type TeamsHandler struct {
	Teams *teams.Service
}

func (h *TeamsHandler) Register(g *echo.Group) {
	g.POST("/teams", h.create)
	g.GET("/teams", h.list)
	g.POST("/teams/:id/invite", h.invite)
	g.DELETE("/teams/:id/members/:member", h.removeMember)
}

func (h *TeamsHandler) create(c echo.Context) error {
	var req struct {
		Name   string `json:"name"`
		UserID uint64 `json:"user_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	team, err := h.Teams.Create(c.Request().Context(), req.Name, core.ID(req.UserID))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]any{"team": toTeamJSON(team)})
}

func (h *TeamsHandler) list(c echo.Context) error {
	views, err := h.Teams.ListForUser(c.Request().Context(), queryUserID(c))
	if err != nil {
		return err
	}

	out := make([]*teamViewJSON, len(views))
	for i, view := range views {
		out[i] = toTeamViewJSON(view)
	}
	return c.JSON(http.StatusOK, map[string]any{"teams": out})
}

func (h *TeamsHandler) invite(c echo.Context) error {
	teamID, err := pathID(c)
	if err != nil {
		return err
	}

	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	team, err := h.Teams.Invite(c.Request().Context(), teamID, req.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"team": toTeamJSON(team)})
}

func (h *TeamsHandler) removeMember(c echo.Context) error {
	teamID, err := pathID(c)
	if err != nil {
		return err
	}

	memberRaw, err := strconv.ParseUint(c.Param("member"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid member id")
	}

	team, err := h.Teams.RemoveMember(c.Request().Context(), teamID, core.ID(memberRaw), queryUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"team": toTeamJSON(team)})
}
