package repositories

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/voiceofchrist/churchsite/internal/app/models"
)

func assertContains(t *testing.T, sql string, parts ...string) {
	t.Helper()
	for _, p := range parts {
		if !strings.Contains(sql, p) {
			t.Errorf("expected SQL to contain %q, got:\n%s", p, sql)
		}
	}
}

func TestBranchListQuery(t *testing.T) {
	r := NewBranchRepository(nil)

	sql, args, err := r.listQuery(true).ToSql()
	if err != nil {
		t.Fatalf("ToSql: %v", err)
	}
	assertContains(t, sql, "FROM branches b", "WHERE b.is_active = $1", "ORDER BY b.id ASC")
	if !reflect.DeepEqual(args, []interface{}{true}) {
		t.Errorf("args = %v", args)
	}

	sql, args, _ = r.listQuery(false).ToSql()
	if strings.Contains(sql, "WHERE") || len(args) != 0 {
		t.Errorf("unfiltered listing should have no WHERE clause: %s %v", sql, args)
	}
}

func TestBranchSummaryQueryCountsRelations(t *testing.T) {
	sql, _, err := NewBranchRepository(nil).summaryQuery().ToSql()
	if err != nil {
		t.Fatalf("ToSql: %v", err)
	}
	assertContains(t, sql,
		"(SELECT COUNT(*) FROM pastors p WHERE p.branch_id = b.id) AS pastor_count",
		"(SELECT COUNT(*) FROM events e WHERE e.branch_id = b.id) AS event_count",
	)
}

func TestBranchRelationsQuery(t *testing.T) {
	sql, args, err := NewBranchRepository(nil).relationsQuery(7).ToSql()
	if err != nil {
		t.Fatalf("ToSql: %v", err)
	}
	assertContains(t, sql,
		"EXISTS (SELECT 1 FROM pastors WHERE branch_id = $1 AND is_active = TRUE)",
		"EXISTS (SELECT 1 FROM events WHERE branch_id = $2 AND status = $3)",
	)
	want := []interface{}{int64(7), int64(7), models.EventStatusUpcoming}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("args = %v, want %v", args, want)
	}
}

func TestBranchUpdateQueryWritesEveryColumn(t *testing.T) {
	b := &models.Branch{ID: 3, Name: "Durban", Address: "1 Marine Parade", City: "Durban", IsActive: true}
	sql, args, err := NewBranchRepository(nil).updateQuery(b).ToSql()
	if err != nil {
		t.Fatalf("ToSql: %v", err)
	}
	assertContains(t, sql, "UPDATE branches SET", "address = $1", "is_active = $", "WHERE id = $9")
	if len(args) != 9 || args[8] != int64(3) {
		t.Errorf("args = %v", args)
	}
}

func TestExistsQuery(t *testing.T) {
	sql, args, err := existsQuery(statementBuilder(), "pastors", map[string]interface{}{"id": int64(2)}).ToSql()
	if err != nil {
		t.Fatalf("ToSql: %v", err)
	}
	assertContains(t, sql, "SELECT EXISTS (", "SELECT 1 FROM pastors WHERE id = $1", ")")
	if len(args) != 1 {
		t.Errorf("args = %v", args)
	}
}

func TestPastorByBranchQueryJoinsBranch(t *testing.T) {
	sql, args, err := NewPastorRepository(nil).byBranchQuery(2, true).ToSql()
	if err != nil {
		t.Fatalf("ToSql: %v", err)
	}
	assertContains(t, sql, "FROM pastors p", "LEFT JOIN branches b ON b.id = p.branch_id",
		"p.is_active = $1", "p.branch_id = $2", "ORDER BY p.id ASC")
	if !reflect.DeepEqual(args, []interface{}{true, int64(2)}) {
		t.Errorf("args = %v", args)
	}
}

func TestEventQueries(t *testing.T) {
	r := NewEventRepository(nil)
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	t.Run("all newest first", func(t *testing.T) {
		sql, _, _ := r.allQuery().ToSql()
		assertContains(t, sql, "LEFT JOIN branches b ON b.id = e.branch_id", "ORDER BY e.event_date DESC")
	})

	t.Run("upcoming", func(t *testing.T) {
		sql, args, err := r.upcomingQuery(now).ToSql()
		if err != nil {
			t.Fatalf("ToSql: %v", err)
		}
		assertContains(t, sql, "e.status = $1", "e.event_date >= $2", "ORDER BY e.event_date ASC")
		if !reflect.DeepEqual(args, []interface{}{models.EventStatusUpcoming, now}) {
			t.Errorf("args = %v", args)
		}
	})

	t.Run("past", func(t *testing.T) {
		sql, args, err := r.pastQuery(now).ToSql()
		if err != nil {
			t.Fatalf("ToSql: %v", err)
		}
		assertContains(t, sql, "(e.status = $1 OR e.event_date < $2)", "ORDER BY e.event_date DESC")
		if !reflect.DeepEqual(args, []interface{}{models.EventStatusCompleted, now}) {
			t.Errorf("args = %v", args)
		}
	})

	t.Run("year bounds", func(t *testing.T) {
		_, args, err := r.yearQuery(2025).ToSql()
		if err != nil {
			t.Fatalf("ToSql: %v", err)
		}
		start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
		if !reflect.DeepEqual(args, []interface{}{start, end}) {
			t.Errorf("args = %v", args)
		}
	})

	t.Run("admin filter", func(t *testing.T) {
		branchID := int64(4)
		sql, args, _ := r.adminQuery(&branchID).ToSql()
		assertContains(t, sql, "e.branch_id = $1", "ORDER BY e.event_date ASC")
		if !reflect.DeepEqual(args, []interface{}{int64(4)}) {
			t.Errorf("args = %v", args)
		}

		sql, _, _ = r.adminQuery(nil).ToSql()
		if strings.Contains(sql, "WHERE") {
			t.Errorf("unfiltered admin listing has WHERE: %s", sql)
		}
	})
}

func TestHighlightListQueryOrdersByIndex(t *testing.T) {
	sql, args, _ := NewHighlightRepository(nil).listQuery(true).ToSql()
	assertContains(t, sql, "WHERE is_active = $1", "ORDER BY order_index ASC, id ASC")
	if !reflect.DeepEqual(args, []interface{}{true}) {
		t.Errorf("args = %v", args)
	}
}

func TestTestimonyQueries(t *testing.T) {
	r := NewTestimonyRepository(nil)

	sql, _, _ := r.approvedQuery().ToSql()
	assertContains(t, sql, "WHERE is_approved = $1", "ORDER BY created_at DESC, id DESC")

	sql, _, _ = r.pageQuery(20, 10).ToSql()
	assertContains(t, sql, "LIMIT 10", "OFFSET 20")
}

func TestStatisticsCountQuery(t *testing.T) {
	r := NewStatisticsRepository(nil)

	sql, args, _ := r.countQuery("events", nil).ToSql()
	if sql != "SELECT COUNT(*) FROM events" || len(args) != 0 {
		t.Errorf("sql = %q args = %v", sql, args)
	}

	sql, _, _ = r.countQuery("pastors", map[string]interface{}{"is_active": true}).ToSql()
	if sql != "SELECT COUNT(*) FROM pastors WHERE is_active = $1" {
		t.Errorf("sql = %q", sql)
	}
}
