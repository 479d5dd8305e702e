package models

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func event(id string) *AlertEvent {
	return &AlertEvent{ID: id, Title: "t-" + id, Message: "m-" + id, Type: TypeInjury, Timestamp: time.Now()}
}

func unreadCount(s *AlertStore) int {
	n := 0
	for _, r := range s.Records() {
		if !r.IsRead {
			n++
		}
	}
	return n
}

func TestAlertStore_AdmitPrependsNewestFirst(t *testing.T) {
	s := NewAlertStore(100, 20)
	now := time.Now()

	_, ok := s.Admit(event("e1"), now)
	require.True(t, ok)
	_, ok = s.Admit(event("e2"), now)
	require.True(t, ok)

	recs := s.Records()
	require.Len(t, recs, 2)
	assert.Equal(t, "e2", recs[0].ID)
	assert.Equal(t, "e1", recs[1].ID)
}

func TestAlertStore_ArrivalOrderNotTimestampOrder(t *testing.T) {
	s := NewAlertStore(100, 20)
	now := time.Now()

	older := &AlertEvent{ID: "old", Timestamp: now.Add(-time.Hour)}
	newer := &AlertEvent{ID: "new", Timestamp: now}

	s.Admit(newer, now)
	s.Admit(older, now)

	recs := s.Records()
	require.Len(t, recs, 2)
	// The later arrival wins the head slot even though its own timestamp is older.
	assert.Equal(t, "old", recs[0].ID)
	assert.Equal(t, "new", recs[1].ID)
}

func TestAlertStore_BoundInvariant(t *testing.T) {
	s := NewAlertStore(100, 1000)
	now := time.Now()

	for i := 1; i <= 101; i++ {
		s.Admit(event(fmt.Sprintf("E%d", i)), now)
		assert.LessOrEqual(t, s.Len(), 100)
	}

	recs := s.Records()
	require.Len(t, recs, 100)
	assert.Equal(t, "E101", recs[0].ID)
	assert.Equal(t, "E2", recs[99].ID)
	for _, r := range recs {
		assert.NotEqual(t, "E1", r.ID, "oldest record must be evicted")
	}
}

func TestAlertStore_DailyCapEnforced(t *testing.T) {
	s := NewAlertStore(100, 20)
	now := time.Now()

	for i := 1; i <= 21; i++ {
		s.Admit(event(fmt.Sprintf("E%d", i)), now)
	}

	assert.Equal(t, 20, s.Len())
	assert.Equal(t, 20, s.UnreadCount())
	assert.Equal(t, 20, s.CountFor(DayKey(now)))

	// Further events on the same day change nothing.
	_, ok := s.Admit(event("E22"), now)
	assert.False(t, ok)
	assert.Equal(t, 20, s.Len())
}

func TestAlertStore_CapRollsOverAtNewDay(t *testing.T) {
	s := NewAlertStore(100, 2)
	day1 := time.Date(2026, 8, 28, 23, 0, 0, 0, time.Local)
	day2 := time.Date(2026, 8, 29, 0, 30, 0, 0, time.Local)

	s.Admit(event("a"), day1)
	s.Admit(event("b"), day1)
	_, ok := s.Admit(event("c"), day1)
	require.False(t, ok)

	_, ok = s.Admit(event("d"), day2)
	assert.True(t, ok)
	assert.Equal(t, 2, s.CountFor(DayKey(day1)))
	assert.Equal(t, 1, s.CountFor(DayKey(day2)))
}

func TestAlertStore_UnreadInvariantAfterEveryOp(t *testing.T) {
	s := NewAlertStore(100, 100)
	now := time.Now()

	for i := 1; i <= 5; i++ {
		s.Admit(event(fmt.Sprintf("e%d", i)), now)
		assert.Equal(t, unreadCount(s), s.UnreadCount())
	}

	s.MarkRead("e3")
	assert.Equal(t, unreadCount(s), s.UnreadCount())
	assert.Equal(t, 4, s.UnreadCount())

	s.MarkUnread("e3")
	assert.Equal(t, 5, s.UnreadCount())

	s.Delete("e2")
	assert.Equal(t, unreadCount(s), s.UnreadCount())
	assert.Equal(t, 4, s.UnreadCount())

	s.MarkAllRead()
	assert.Equal(t, 0, s.UnreadCount())

	s.Clear()
	assert.Equal(t, 0, s.UnreadCount())
	assert.Equal(t, 0, s.Len())
}

func TestAlertStore_MarkReadIdempotent(t *testing.T) {
	s := NewAlertStore(100, 100)
	now := time.Now()
	s.Admit(event("e1"), now)
	s.Admit(event("e2"), now)

	s.MarkAllRead()
	before := s.Records()

	// Re-applying to a converged state yields identical content.
	changed := s.MarkRead("e1")
	assert.False(t, changed)
	assert.Equal(t, before, s.Records())
}

func TestAlertStore_MarkReadAbsentIdIsNoop(t *testing.T) {
	s := NewAlertStore(100, 100)
	s.Admit(event("e1"), time.Now())

	assert.False(t, s.MarkRead("nope"))
	assert.Equal(t, 1, s.UnreadCount())
}

func TestAlertStore_DeleteAbsentIdIsNoop(t *testing.T) {
	s := NewAlertStore(100, 100)
	s.Admit(event("e1"), time.Now())

	assert.False(t, s.Delete("nope"))
	assert.Equal(t, 1, s.Len())
}

func TestAlertStore_DuplicateIdsKeptAsDistinctRecords(t *testing.T) {
	s := NewAlertStore(100, 100)
	now := time.Now()
	s.Admit(event("dup"), now)
	s.Admit(event("dup"), now)

	assert.Equal(t, 2, s.Len())

	// Read-state ops touch every record carrying the id.
	s.MarkRead("dup")
	assert.Equal(t, 0, s.UnreadCount())
	s.Delete("dup")
	assert.Equal(t, 0, s.Len())
}

func TestAlertStore_SnapshotRestoreRoundtrip(t *testing.T) {
	s := NewAlertStore(100, 20)
	now := time.Now()
	s.Admit(event("e1"), now)
	s.Admit(event("e2"), now)
	s.MarkRead("e1")

	snap := s.Snapshot()

	restored := NewAlertStore(100, 20)
	restored.Restore(snap)

	want := s.Records()
	got := restored.Records()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].IsRead, got[i].IsRead)
	}
	assert.Equal(t, s.CountFor(DayKey(now)), restored.CountFor(DayKey(now)))
}

func TestAlertStore_RestoreReappliesBound(t *testing.T) {
	records := make([]AlertRecord, 150)
	for i := range records {
		records[i] = NewAlertRecord(event(fmt.Sprintf("e%d", i)))
	}
	s := NewAlertStore(100, 20)
	s.Restore(&Snapshot{Version: SnapshotVersion, Records: records, Counters: map[string]int{}})

	assert.Equal(t, 100, s.Len())
	// The newest (head) side survives.
	assert.Equal(t, "e0", s.Records()[0].ID)
}

func TestAlertStore_SnapshotIsACopy(t *testing.T) {
	s := NewAlertStore(100, 20)
	s.Admit(event("e1"), time.Now())

	snap := s.Snapshot()
	snap.Records[0].IsRead = true
	snap.Counters["2000-01-01"] = 99

	assert.Equal(t, 1, s.UnreadCount())
	assert.Equal(t, 0, s.CountFor("2000-01-01"))
}

func TestAlertStore_PruneCounters(t *testing.T) {
	s := NewAlertStore(100, 20)
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.Local)

	s.Admit(event("recent"), now)
	s.Admit(event("old"), now.AddDate(0, 0, -40))
	s.Restore(&Snapshot{
		Records: s.Records(),
		Counters: map[string]int{
			DayKey(now):                    1,
			DayKey(now.AddDate(0, 0, -40)): 1,
			"garbage-key":                  3,
			DayKey(now.AddDate(0, 0, -29)): 2,
		},
	})

	removed := s.PruneCounters(now, 30)
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, s.CountFor(DayKey(now)))
	assert.Equal(t, 2, s.CountFor(DayKey(now.AddDate(0, 0, -29))))
	assert.Equal(t, 0, s.CountFor("garbage-key"))
}

func TestDayKey_LocalCalendarDay(t *testing.T) {
	noon := time.Date(2026, 8, 29, 12, 0, 0, 0, time.Local)
	assert.Equal(t, "2026-08-29", DayKey(noon))

	// One instant before local midnight still belongs to the same day.
	lateNight := time.Date(2026, 8, 29, 23, 59, 59, 0, time.Local)
	assert.Equal(t, "2026-08-29", DayKey(lateNight))
}
