package helpers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestCalculateSliceIndicesClampsToTotal(t *testing.T) {
	cases := []struct {
		page, size, total int
		start, end        int
	}{
		{page: 1, size: 10, total: 4, start: 0, end: 4},
		{page: 2, size: 2, total: 5, start: 2, end: 4},
		{page: 3, size: 2, total: 5, start: 4, end: 5},
		{page: 9, size: 2, total: 5, start: 5, end: 5},
		{page: 0, size: 0, total: 30, start: 0, end: 10},
	}
	for _, tc := range cases {
		start, end := CalculateSliceIndices(tc.page, tc.size, tc.total)
		if start != tc.start || end != tc.end {
			t.Errorf("CalculateSliceIndices(%d, %d, %d) = (%d, %d), want (%d, %d)",
				tc.page, tc.size, tc.total, start, end, tc.start, tc.end)
		}
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	if got := Paginate(items, 2, 2); len(got) != 2 || got[0] != 3 || got[1] != 4 {
		t.Errorf("page 2 = %v, want [3 4]", got)
	}
	if got := Paginate(items, 4, 2); len(got) != 0 {
		t.Errorf("page past the end = %v, want empty", got)
	}
}

func TestCalculateOffsetLimit(t *testing.T) {
	offset, limit := CalculateOffsetLimit(3, 20)
	if offset != 40 || limit != 20 {
		t.Fatalf("got offset=%d limit=%d", offset, limit)
	}
	offset, limit = CalculateOffsetLimit(-1, 1000)
	if offset != 0 || limit != DefaultPageSize {
		t.Fatalf("out-of-range input: got offset=%d limit=%d", offset, limit)
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(21, 5, 10)
	if info.TotalPages != 3 || info.CurrentPage != 3 {
		t.Fatalf("unexpected pagination info: %+v", info)
	}
	empty := NewPaginationInfo(0, 1, 10)
	if empty.TotalPages != 1 {
		t.Fatalf("empty first page should report one page, got %+v", empty)
	}
}

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/Admin/testimonies?page=2&size=500", nil)

	page, size := ParsePaginationParams(c)
	if page != 2 || size != DefaultPageSize {
		t.Fatalf("got page=%d size=%d", page, size)
	}
}

func TestParseDurationFallsBack(t *testing.T) {
	if got := ParseDuration("90m", time.Hour); got != 90*time.Minute {
		t.Fatalf("ParseDuration(90m) = %v", got)
	}
	if got := ParseDuration("soon", time.Hour); got != time.Hour {
		t.Fatalf("ParseDuration(soon) = %v", got)
	}
	if got := ParseDuration("", 2*time.Hour); got != 2*time.Hour {
		t.Fatalf("ParseDuration(\"\") = %v", got)
	}
}

func TestYearBounds(t *testing.T) {
	start, end := YearBounds(2025, nil)
	if !start.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("start = %v", start)
	}
	if !end.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("end = %v", end)
	}
}
