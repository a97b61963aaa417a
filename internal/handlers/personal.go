package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/diary-api/internal/dto"
	apierrors "github.com/yukikurage/diary-api/internal/errors"
	"github.com/yukikurage/diary-api/internal/middleware"
	"github.com/yukikurage/diary-api/internal/services"
)

// PersonalHandler serves the caller's own diary.
type PersonalHandler struct {
	personalService *services.PersonalService
}

// NewPersonalHandler creates a new PersonalHandler.
func NewPersonalHandler(personalService *services.PersonalService) *PersonalHandler {
	return &PersonalHandler{
		personalService: personalService,
	}
}

// SaveEntry creates or replaces the page for :date.
func (h *PersonalHandler) SaveEntry(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type SaveEntryRequest struct {
		Content string   `json:"content"`
		Tags    []string `json:"tags"`
	}

	var req SaveEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	entry, err := h.personalService.UpsertEntry(c.Request.Context(), userID, c.Param("date"), req.Content, req.Tags)
	if err != nil {
		middleware.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPersonalEntryDTO(*entry))
}

// GetEntry returns the page for :date.
func (h *PersonalHandler) GetEntry(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	entry, err := h.personalService.LoadEntry(c.Request.Context(), userID, c.Param("date"))
	if err != nil {
		middleware.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPersonalEntryDTO(*entry))
}

// SearchEntries lists pages matching ?q=, newest date first.
func (h *PersonalHandler) SearchEntries(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	entries, err := h.personalService.Search(c.Request.Context(), userID, c.Query("q"))
	if err != nil {
		middleware.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": dto.ToPersonalEntryDTOs(entries),
	})
}

// Calendar lists the dates in ?month= that have a page.
func (h *PersonalHandler) Calendar(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	month := c.Query("month")
	dates, err := h.personalService.ListDates(c.Request.Context(), userID, month)
	if err != nil {
		middleware.RespondServiceError(c, err)
		return
	}
	if dates == nil {
		dates = []string{}
	}

	c.JSON(http.StatusOK, gin.H{
		"month": month,
		"dates": dates,
	})
}
