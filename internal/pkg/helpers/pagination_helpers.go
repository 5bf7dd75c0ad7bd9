package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/voiceofchrist/churchsite/internal/app/models/dto"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultPage     = 1 // pages are 1-based
)

// normalizePage replaces out-of-range values with the defaults
func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return page, size
}

// CalculateOffsetLimit converts a 1-based page into an SQL offset and limit.
func CalculateOffsetLimit(page, size int) (offset uint64, limit int) {
	page, size = normalizePage(page, size)
	return uint64((page - 1) * size), size
}

// CalculateSliceIndices returns the [start, end) window of a page over
// totalItems in-memory records. Pages past the end are empty.
func CalculateSliceIndices(page, size, totalItems int) (start, end int) {
	page, size = normalizePage(page, size)
	start = min((page-1)*size, totalItems)
	end = min(start+size, totalItems)
	return start, end
}

// Paginate returns the requested page of items
func Paginate[T any](items []T, page, size int) []T {
	start, end := CalculateSliceIndices(page, size, len(items))
	return items[start:end]
}

// NewPaginationInfo describes page within totalItems. An empty result still
// reports a single page, and a page past the end is clamped to the last one.
func NewPaginationInfo(totalItems int64, page, size int) dto.PaginationInfo {
	page, size = normalizePage(page, size)

	totalPages := int((totalItems + int64(size) - 1) / int64(size))
	if totalPages == 0 {
		totalPages = 1
	}

	return dto.PaginationInfo{
		CurrentPage: min(page, totalPages),
		TotalPages:  totalPages,
		PageSize:    size,
		TotalItems:  totalItems,
	}
}

// ParsePaginationParams reads ?page= and ?size= falling back to the defaults
func ParsePaginationParams(c *gin.Context) (page, size int) {
	page, _ = strconv.Atoi(c.Query("page"))
	size, _ = strconv.Atoi(c.Query("size"))
	return normalizePage(page, size)
}
