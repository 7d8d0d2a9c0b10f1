package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gdugdh24/purposematch/internal/domain"
	"github.com/gdugdh24/purposematch/internal/usecase/matching"
)

type MatchService interface {
	Generate(ctx context.Context, userID int, opts matching.GenerateOptions) (*matching.GenerateResult, error)
	ListMatches(ctx context.Context, userID, limit, offset int) ([]*domain.Match, error)
	Respond(ctx context.Context, userID, matchID int, action domain.MatchAction) (*domain.Match, error)
}

type IcebreakerService interface {
	Generate(ctx context.Context, userID, matchID int) ([]string, error)
}

type MatchHandler struct {
	matches     MatchService
	icebreakers IcebreakerService
}

func NewMatchHandler(matches MatchService, icebreakers IcebreakerService) *MatchHandler {
	return &MatchHandler{
		matches:     matches,
		icebreakers: icebreakers,
	}
}

// GenerateMatchesRequest represents match generation request
type GenerateMatchesRequest struct {
	Limit           int  `json:"limit" binding:"omitempty,min=0"`
	IncludeExisting bool `json:"include_existing"`
	MinScore        *int `json:"min_score" binding:"omitempty,min=0,max=100"`
}

// RespondRequest represents a like or reject on a match
type RespondRequest struct {
	Action domain.MatchAction `json:"action" binding:"required,oneof=like reject"`
}

// IcebreakersResponse is the response structure
type IcebreakersResponse struct {
	MatchID     int      `json:"match_id"`
	Icebreakers []string `json:"icebreakers"`
}

// GenerateMatches handles POST /matches/generate
func (h *MatchHandler) GenerateMatches(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req GenerateMatchesRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
			return
		}
	}

	result, err := h.matches.Generate(c.Request.Context(), userID, matching.GenerateOptions{
		Limit:           req.Limit,
		IncludeExisting: req.IncludeExisting,
		MinScore:        req.MinScore,
	})
	if err != nil {
		writeError(c, err, "failed to generate matches")
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetMatches handles GET /matches?limit=&offset=
func (h *MatchHandler) GetMatches(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		return
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid offset"})
		return
	}

	matches, err := h.matches.ListMatches(c.Request.Context(), userID, limit, offset)
	if err != nil {
		writeError(c, err, "failed to get matches")
		return
	}

	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

// RespondToMatch handles POST /matches/:id/respond
func (h *MatchHandler) RespondToMatch(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	matchID, err := strconv.Atoi(c.Param("id"))
	if err != nil || matchID <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid match id"})
		return
	}

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	match, err := h.matches.Respond(c.Request.Context(), userID, matchID, req.Action)
	if err != nil {
		writeError(c, err, "failed to respond to match")
		return
	}

	c.JSON(http.StatusOK, match)
}

// GenerateIcebreakers handles POST /matches/:id/icebreakers
func (h *MatchHandler) GenerateIcebreakers(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	matchID, err := strconv.Atoi(c.Param("id"))
	if err != nil || matchID <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid match id"})
		return
	}

	icebreakers, err := h.icebreakers.Generate(c.Request.Context(), userID, matchID)
	if err != nil {
		writeError(c, err, "failed to generate icebreakers")
		return
	}

	c.JSON(http.StatusOK, IcebreakersResponse{
		MatchID:     matchID,
		Icebreakers: icebreakers,
	})
}

func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
