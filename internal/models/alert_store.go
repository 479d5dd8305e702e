package models

import (
	"sync"
	"time"
)

// AlertStore owns the bounded newest-first alert history and the per-day
// admission counters. All reads hand out copies so callers can marshal or
// iterate without holding the lock.
type AlertStore struct {
	mu         sync.RWMutex
	records    []AlertRecord // newest first
	counters   map[string]int
	maxHistory int
	dailyCap   int
}

func NewAlertStore(maxHistory, dailyCap int) *AlertStore {
	return &AlertStore{
		records:    make([]AlertRecord, 0, maxHistory),
		counters:   make(map[string]int),
		maxHistory: maxHistory,
		dailyCap:   dailyCap,
	}
}

// DayKey derives the admission-day counter key from the local calendar day
// containing t. The counter rolls over at local midnight.
func DayKey(t time.Time) string {
	return t.Local().Format("2006-01-02")
}

// Admit applies the daily cap and history bound to an inbound event. The
// day key is derived from now (the admission instant), not the event's own
// timestamp. Returns the created record and true on admission, or a zero
// record and false when today's cap is already reached.
func (s *AlertStore) Admit(ev *AlertEvent, now time.Time) (AlertRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := DayKey(now)
	if s.counters[day] >= s.dailyCap {
		return AlertRecord{}, false
	}

	rec := NewAlertRecord(ev)
	s.records = append([]AlertRecord{rec}, s.records...)
	if len(s.records) > s.maxHistory {
		s.records = s.records[:s.maxHistory]
	}
	s.counters[day]++
	return rec, true
}

func (s *AlertStore) MarkRead(id string) bool {
	return s.setRead(id, true)
}

func (s *AlertStore) MarkUnread(id string) bool {
	return s.setRead(id, false)
}

func (s *AlertStore) setRead(id string, read bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	for i := range s.records {
		if s.records[i].ID == id && s.records[i].IsRead != read {
			s.records[i].IsRead = read
			changed = true
		}
	}
	return changed
}

func (s *AlertStore) MarkAllRead() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		s.records[i].IsRead = true
	}
}

// Delete removes every record carrying id. No-op when id is absent.
func (s *AlertStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.records[:0]
	removed := false
	for _, rec := range s.records {
		if rec.ID == id {
			removed = true
			continue
		}
		kept = append(kept, rec)
	}
	s.records = kept
	return removed
}

func (s *AlertStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = s.records[:0]
}

// Records returns a copy of the history, newest first.
func (s *AlertStore) Records() []AlertRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]AlertRecord, len(s.records))
	copy(out, s.records)
	return out
}

func (s *AlertStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// UnreadCount is always derived from the records, never cached, so it can
// not drift from the history.
func (s *AlertStore) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for i := range s.records {
		if !s.records[i].IsRead {
			n++
		}
	}
	return n
}

// CountFor returns the admission counter for a day key.
func (s *AlertStore) CountFor(day string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counters[day]
}

// Snapshot copies the full persisted state into a versioned envelope.
func (s *AlertStore) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]AlertRecord, len(s.records))
	copy(records, s.records)
	counters := make(map[string]int, len(s.counters))
	for k, v := range s.counters {
		counters[k] = v
	}
	return &Snapshot{
		Version:  SnapshotVersion,
		Records:  records,
		Counters: counters,
	}
}

// Restore replaces the store content with a loaded snapshot, re-applying
// the history bound in case the snapshot was written with a larger limit.
func (s *AlertStore) Restore(snap *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := snap.Records
	if len(records) > s.maxHistory {
		records = records[:s.maxHistory]
	}
	s.records = make([]AlertRecord, len(records))
	copy(s.records, records)

	s.counters = make(map[string]int, len(snap.Counters))
	for k, v := range snap.Counters {
		s.counters[k] = v
	}
}

// PruneCounters drops day-counter keys older than retentionDays before now.
// Keys that fail to parse are dropped as well. Returns the number removed.
func (s *AlertStore) PruneCounters(now time.Time, retentionDays int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := DayKey(now.AddDate(0, 0, -retentionDays))
	removed := 0
	for day := range s.counters {
		if _, err := time.ParseInLocation("2006-01-02", day, time.Local); err != nil || day < cutoff {
			delete(s.counters, day)
			removed++
		}
	}
	return removed
}
