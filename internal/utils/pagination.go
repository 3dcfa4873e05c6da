package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/warbler-api/internal/constants"
)

// PaginationParams selects one page of a listing. A zero Limit means the
// whole listing.
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// AllRows selects every row.
var AllRows = PaginationParams{}

// PaginationResponse is the page metadata returned next to a listing.
type PaginationResponse struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// NewPagination clamps page and limit into range. Limits above the maximum
// are capped rather than reset.
func NewPagination(page, limit int) PaginationParams {
	if page < 1 {
		page = 1
	}
	switch {
	case limit < constants.MinPageSize:
		limit = constants.DefaultPageSize
	case limit > constants.MaxPageSize:
		limit = constants.MaxPageSize
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// GetPaginationParams reads ?page= and ?limit= from the request.
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		limit = constants.DefaultPageSize
	}
	return NewPagination(page, limit)
}

// Response builds the metadata for a page out of total rows.
func (p PaginationParams) Response(total int64) PaginationResponse {
	return PaginationResponse{Page: p.Page, Limit: p.Limit, Total: total}
}
