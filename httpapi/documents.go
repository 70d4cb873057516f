package httpapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/kbforge/kbforge/core"
	"github.com/kbforge/kbforge/docs"
)

// DocumentsHandler serves the document lifecycle and activity feed.
type DocumentsHandler struct {
	Docs *docs.Service
}

func (h *DocumentsHandler) Register(g *echo.Group) {
	g.POST("/documents", h.create)
	g.GET("/documents/:id", h.get)
	g.PUT("/documents/:id", h.edit)
	g.DELETE("/documents/:id", h.delete)
	g.POST("/documents/:id/access", h.share)
	g.DELETE("/documents/:id/access/:grantee", h.unshare)
	g.POST("/documents/summarize", h.summarize)
	g.POST("/documents/tags", h.suggestTags)
	g.GET("/activity", h.activity)
}

func pathID(c echo.Context) (core.ID, error) {
	raw, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return core.ID(raw), nil
}

func queryUserID(c echo.Context) core.ID {
	raw, err := strconv.ParseUint(c.QueryParam("user_id"), 10, 64)
	if err != nil {
		return 0
	}
	return core.ID(raw)
}

func (h *DocumentsHandler) create(c echo.Context) error {
	var req struct {
		TeamID  uint64 `json:"team_id"`
		UserID  uint64 `json:"user_id"`
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	doc, err := h.Docs.Create(c.Request().Context(), core.ID(req.TeamID), core.ID(req.UserID), req.Title, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]any{"document": toDocumentJSON(doc)})
}

func (h *DocumentsHandler) get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	detail, err := h.Docs.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDocumentDetailJSON(detail))
}

func (h *DocumentsHandler) edit(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req struct {
		UserID  uint64   `json:"user_id"`
		Title   string   `json:"title"`
		Content string   `json:"content"`
		Summary string   `json:"summary"`
		Tags    []string `json:"tags"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	doc, err := h.Docs.Edit(c.Request().Context(), id, core.ID(req.UserID), docs.EditRequest{
		Title:   req.Title,
		Content: req.Content,
		Summary: req.Summary,
		Tags:    req.Tags,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"document": toDocumentJSON(doc)})
}

func (h *DocumentsHandler) delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.Docs.Delete(c.Request().Context(), id, queryUserID(c)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "document deleted"})
}

func (h *DocumentsHandler) share(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req struct {
		UserID    uint64 `json:"user_id"`
		GranteeID uint64 `json:"grantee_id"`
		Level     string `json:"level"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var level core.AccessLevel
	switch req.Level {
	case "read":
		level = core.AccessRead
	case "write":
		level = core.AccessWrite
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "level must be read or write")
	}

	doc, err := h.Docs.Share(c.Request().Context(), id, core.ID(req.UserID), core.ID(req.GranteeID), level)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"document": toDocumentJSON(doc)})
}

func (h *DocumentsHandler) unshare(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	grantee, err := strconv.ParseUint(c.Param("grantee"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid grantee id")
	}

	doc, err := h.Docs.Unshare(c.Request().Context(), id, queryUserID(c), core.ID(grantee))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"document": toDocumentJSON(doc)})
}

func (h *DocumentsHandler) summarize(c echo.Context) error {
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	summary, err := h.Docs.Summarize(c.Request().Context(), req.Title, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"summary": summary})
}

func (h *DocumentsHandler) suggestTags(c echo.Context) error {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tags, err := h.Docs.SuggestTags(c.Request().Context(), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"tags": tags})
}

func (h *DocumentsHandler) activity(c echo.Context) error {
	feed, err := h.Docs.ActivityFeed(c.Request().Context(), queryUserID(c))
	if err != nil {
		return err
	}

	out := make([]*activityJSON, len(feed))
	for i, entry := range feed {
		out[i] = toActivityJSON(entry)
	}
	return c.JSON(http.StatusOK, map[string]any{"activities": out})
}
