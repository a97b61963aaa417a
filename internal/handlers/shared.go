package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/diary-api/internal/dto"
	apierrors "github.com/yukikurage/diary-api/internal/errors"
	"github.com/yukikurage/diary-api/internal/identity"
	"github.com/yukikurage/diary-api/internal/middleware"
	"github.com/yukikurage/diary-api/internal/services"
	"github.com/yukikurage/diary-api/internal/utils"
)

// SharedHandler serves shared journals. Membership on :id routes is enforced by
// middleware.RequireJournalMember.
type SharedHandler struct {
	sharedService *services.SharedService
	guard         *services.AccessGuard
}

// NewSharedHandler creates a new SharedHandler.
func NewSharedHandler(sharedService *services.SharedService, guard *services.AccessGuard) *SharedHandler {
	return &SharedHandler{
		sharedService: sharedService,
		guard:         guard,
	}
}

// CreateJournal creates a journal owned by the caller.
func (h *SharedHandler) CreateJournal(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateJournalRequest struct {
		Title    string   `json:"title"`
		Invitees []string `json:"invitees"`
	}

	var req CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	journal, err := h.sharedService.Create(c.Request.Context(), services.CreateSharedInput{
		Title:            req.Title,
		OwnerID:          userID,
		InviteeUsernames: req.Invitees,
	})
	if err != nil {
		middleware.RespondServiceError(c, err)
		return
	}

	_, members, err := h.sharedService.Get(c.Request.Context(), journal.ID)
	if err != nil {
		middleware.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSharedJournalDetailDTO(*journal, members))
}

// ListJournals returns every journal the caller belongs to.
func (h *SharedHandler) ListJournals(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	summaries, err := h.sharedService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		middleware.RespondServiceError(c, err)
		return
	}

	items := make([]dto.SharedJournalListItemDTO, len(summaries))
	for i, s := range summaries {
		items[i] = dto.SharedJournalListItemDTO{
			SharedJournalDTO: dto.ToSharedJournalDTO(s.Journal),
			Role:             s.Role,
			MemberCount:      s.MemberCount,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"journals": items,
	})
}

// GetJournal returns the journal with its members.
func (h *SharedHandler) GetJournal(c *gin.Context) {
	journalID, ok := middleware.GetJournalID(c)
	if !ok {
		apierrors.NotFound(c, "Shared journal not found")
		return
	}

	journal, members, err := h.sharedService.Get(c.Request.Context(), journalID)
	if err != nil {
		middleware.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSharedJournalDetailDTO(*journal, members))
}

// ListEntries returns the journal's entries newest first, optionally paged.
func (h *SharedHandler) ListEntries(c *gin.Context) {
	journalID, ok := middleware.GetJournalID(c)
	if !ok {
		apierrors.NotFound(c, "Shared journal not found")
		return
	}

	page := utils.GetPaginationParams(c)
	entries, err := h.sharedService.ListEntriesPage(c.Request.Context(), journalID, page)
	if err != nil {
		middleware.RespondServiceError(c, err)
		return
	}

	response := gin.H{
		"entries": dto.ToSharedEntryDTOs(entries),
	}
	if page.Enabled() {
		response["pagination"] = utils.PaginationResponse{Page: page.Page, Limit: page.Limit}
	}
	c.JSON(http.StatusOK, response)
}

// AddEntry appends an entry written by the caller.
func (h *SharedHandler) AddEntry(c *gin.Context) {
	journalID, ok := middleware.GetJournalID(c)
	if !ok {
		apierrors.NotFound(c, "Shared journal not found")
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

	entry, err := h.guard.AddSharedEntry(c.Request.Context(), journalID, req.Content)
	if err != nil {
		middleware.RespondServiceError(c, err)
		return
	}

	if id, ok := identity.FromContext(c.Request.Context()); ok {
		entry.Author.ID = id.UserID
		entry.Author.Username = id.Username
	}
	c.JSON(http.StatusCreated, dto.ToSharedEntryDTO(*entry))
}
