package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kbforge/kbforge/answer"
	"github.com/kbforge/kbforge/core"
	"github.com/kbforge/kbforge/search"
)

// QueryHandler serves search and question answering.
type QueryHandler struct {
	Searcher *search.Searcher
	Answerer *answer.Answerer
}

func (h *QueryHandler) Register(g *echo.Group) {
	if h.Searcher != nil {
		g.POST("/search", h.search)
	}
	if h.Answerer != nil {
		g.POST("/ask", h.ask)
	}
}

func (h *QueryHandler) search(c echo.Context) error {
	var req struct {
		UserID uint64 `json:"user_id"`
		Query  string `json:"query"`
		Mode   string `json:"mode"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// An omitted mode means plain text search.
	if req.Mode == "" {
		req.Mode = string(search.ModeLexical)
	}
	mode, err := search.ParseMode(req.Mode)
	if err != nil {
		return err
	}

	results, err := h.Searcher.Search(c.Request().Context(), req.Query, mode, core.ID(req.UserID))
	if err != nil {
		return err
	}

	out := make([]*resultJSON, len(results))
	for i, res := range results {
		out[i] = toResultJSON(res)
	}
	return c.JSON(http.StatusOK, map[string]any{"results": out})
}

func (h *QueryHandler) ask(c echo.Context) error {
	var req struct {
		UserID   uint64 `json:"user_id"`
		Question string `json:"question"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ans, err := h.Answerer.Ask(c.Request().Context(), req.Question, core.ID(req.UserID))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"answer":   ans.Answer,
		"grounded": ans.Grounded,
	})
}
