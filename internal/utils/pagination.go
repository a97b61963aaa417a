package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/diary-api/internal/constants"
)

// PaginationParams holds the pagination parameters. The zero value means "everything".
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// Enabled reports whether a page window was requested.
func (p PaginationParams) Enabled() bool {
	return p.Limit > 0
}

// PaginationResponse represents the pagination metadata in API responses
type PaginationResponse struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// GetPaginationParams reads ?page= and ?limit=. Without either, the listing is unpaginated.
func GetPaginationParams(c *gin.Context) PaginationParams {
	pageStr, hasPage := c.GetQuery("page")
	limitStr, hasLimit := c.GetQuery("limit")
	if !hasPage && !hasLimit {
		return PaginationParams{}
	}

	page, _ := strconv.Atoi(pageStr)
	limit, _ := strconv.Atoi(limitStr)

	if page < constants.MinPageSize {
		page = constants.MinPageSize
	}
	if limit < constants.MinPageSize || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}
