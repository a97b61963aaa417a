package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/diary-api/internal/dto"
	apierrors "github.com/yukikurage/diary-api/internal/errors"
	"github.com/yukikurage/diary-api/internal/identity"
	"github.com/yukikurage/diary-api/internal/middleware"
	"github.com/yukikurage/diary-api/internal/services"
)

// RelayHandler serves relay stories. Read access on :id routes is enforced by
// middleware.RequireStoryAccess and write turns by middleware.RequireStoryTurn.
type RelayHandler struct {
	relayService *services.RelayService
	guard        *services.AccessGuard
}

// NewRelayHandler creates a new RelayHandler.
func NewRelayHandler(relayService *services.RelayService, guard *services.AccessGuard) *RelayHandler {
	return &RelayHandler{
		relayService: relayService,
		guard:        guard,
	}
}

// CreateStory creates a story owned by the caller, who writes first.
func (h *RelayHandler) CreateStory(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateStoryRequest struct {
		Title    string   `json:"title"`
		Invitees []string `json:"invitees"`
		IsPublic bool     `json:"is_public"`
	}

	var req CreateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	story, err := h.relayService.Create(c.Request.Context(), services.CreateRelayInput{
		Title:            req.Title,
		OwnerID:          userID,
		InviteeUsernames: req.Invitees,
		IsPublic:         req.IsPublic,
	})
	if err != nil {
		middleware.RespondServiceError(c, err)
		return
	}

	roster, err := h.relayService.Roster(c.Request.Context(), story.ID)
	if err != nil {
		middleware.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToRelayStoryDetailDTO(*story, roster))
}

// ListStories returns the caller's stories plus public ones.
func (h *RelayHandler) ListStories(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	summaries, err := h.relayService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		middleware.RespondServiceError(c, err)
		return
	}

	items := make([]dto.RelayStoryListItemDTO, len(summaries))
	for i, s := range summaries {
		items[i] = dto.RelayStoryListItemDTO{
			RelayStoryDTO: dto.ToRelayStoryDTO(s.Story),
			IsMyTurn:      s.IsMyTurn,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"stories": items,
	})
}

// GetStory returns the story with its roster.
func (h *RelayHandler) GetStory(c *gin.Context) {
	story, ok := middleware.GetStory(c)
	if !ok {
		apierrors.NotFound(c, "Relay story not found")
		return
	}

	roster, err := h.relayService.Roster(c.Request.Context(), story.ID)
	if err != nil {
		middleware.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRelayStoryDetailDTO(story, roster))
}

// WhoIsNext returns the roster member who writes the next part.
func (h *RelayHandler) WhoIsNext(c *gin.Context) {
	story, ok := middleware.GetStory(c)
	if !ok {
		apierrors.NotFound(c, "Relay story not found")
		return
	}

	next, err := h.relayService.WhoIsNext(c.Request.Context(), story.ID)
	if err != nil {
		middleware.RespondServiceError(c, err)
		return
	}

	roster, err := h.relayService.Roster(c.Request.Context(), story.ID)
	if err != nil {
		middleware.RespondServiceError(c, err)
		return
	}
	for _, p := range roster {
		if p.UserID == next {
			userID, _ := middleware.GetUserID(c)
			c.JSON(http.StatusOK, gin.H{
				"user":       dto.ToAuthorDTO(p.User),
				"turn_order": p.TurnOrder,
				"is_my_turn": next == userID,
			})
			return
		}
	}

	middleware.RespondServiceError(c, services.ErrStoryTurnUnassigned)
}

// ListEntries returns the story's parts in reading order.
func (h *RelayHandler) ListEntries(c *gin.Context) {
	story, ok := middleware.GetStory(c)
	if !ok {
		apierrors.NotFound(c, "Relay story not found")
		return
	}

	entries, err := h.relayService.ListEntries(c.Request.Context(), story.ID)
	if err != nil {
		middleware.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": dto.ToRelayEntryDTOs(entries),
	})
}

// AddEntry writes the next part and passes the turn on.
func (h *RelayHandler) AddEntry(c *gin.Context) {
	story, ok := middleware.GetStory(c)
	if !ok {
		apierrors.NotFound(c, "Relay story not found")
		return
	}

	type AddEntryRequest struct {
		Content string `json:"content"`
	}

	var req AddEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	entry, err := h.guard.AddRelayEntry(c.Request.Context(), story.ID, req.Content)
	if err != nil {
		middleware.RespondServiceError(c, err)
		return
	}

	if id, ok := identity.FromContext(c.Request.Context()); ok {
		entry.Author.ID = id.UserID
		entry.Author.Username = id.Username
	}
	c.JSON(http.StatusCreated, dto.ToRelayEntryDTO(*entry))
}
