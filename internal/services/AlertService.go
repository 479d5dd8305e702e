package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/atomic"

	"alertd/internal/alerthist"
	"alertd/internal/models"
	"alertd/internal/providers"
	"alertd/internal/structures"
)

const admittedBuffer = 64

type AlertServiceInterface interface {
	Run(ctx context.Context, events <-chan *models.AlertEvent)
	OnEvent(ev *models.AlertEvent)
	History() []models.AlertRecord
	UnreadCount() int
	HistorySize() int
	TodayCount() int
	MarkRead(id string)
	MarkUnread(id string)
	MarkAllRead()
	Delete(id string)
	ClearHistory()
	Admitted() <-chan models.AlertRecord
	Generation() uint64
}

// AlertService is the single owner of history, unread state and daily
// counters. Every mutation runs under opsMu and persists the full snapshot
// synchronously before the mutex is released, so a crash can lose at most
// the change currently in flight.
type AlertService struct {
	conf        *structures.Config
	store       *models.AlertStore
	fileManager alerthist.FileManagerInterface
	logger      providers.Logger
	metrics     providers.MetricsProviderInterface

	opsMu    sync.Mutex
	admitted chan models.AlertRecord
	gen      atomic.Uint64
	now      func() time.Time
}

func NewAlertService(conf *structures.Config, store *models.AlertStore, fileManager alerthist.FileManagerInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) AlertServiceInterface {
	return &AlertService{
		conf:        conf,
		store:       store,
		fileManager: fileManager,
		logger:      logger,
		metrics:     metrics,
		admitted:    make(chan models.AlertRecord, admittedBuffer),
		now:         time.Now,
	}
}

// Run consumes the connection's event channel. It is the only ingestion
// path: one consumer, so events enter history in arrival order.
func (as *AlertService) Run(ctx context.Context, events <-chan *models.AlertEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			as.OnEvent(ev)
		}
	}
}

// OnEvent admits one inbound event: daily cap, prepend, truncate, persist,
// signal. A capped event is dropped silently; callers cannot tell the drop
// from "no new events".
func (as *AlertService) OnEvent(ev *models.AlertEvent) {
	if ev == nil || ev.ID == "" {
		return
	}

	as.opsMu.Lock()
	rec, ok := as.store.Admit(ev, as.now())
	if !ok {
		as.opsMu.Unlock()
		as.metrics.IncCapped()
		as.logger.Debugf(providers.TypeAlert, "Daily cap reached, dropping alert %s", ev.ID)
		return
	}
	as.metrics.IncAdmitted(string(rec.Type))
	as.persistLocked()
	as.gen.Inc()
	as.opsMu.Unlock()

	as.logger.Infof(providers.TypeAlert, "Admitted alert %s (%s)", rec.ID, rec.Type)

	select {
	case as.admitted <- rec:
	default:
		as.logger.Warnf(providers.TypeAlert, "Admitted-record queue full, notification for %s skipped", rec.ID)
	}
}

// Admitted delivers every freshly admitted record, newest last. Consumed
// by the notification bridge.
func (as *AlertService) Admitted() <-chan models.AlertRecord {
	return as.admitted
}

func (as *AlertService) History() []models.AlertRecord {
	return as.store.Records()
}

func (as *AlertService) UnreadCount() int {
	return as.store.UnreadCount()
}

func (as *AlertService) HistorySize() int {
	return as.store.Len()
}

// TodayCount is the number of alerts admitted during the current local
// calendar day.
func (as *AlertService) TodayCount() int {
	return as.store.CountFor(models.DayKey(as.now()))
}

// Generation changes on every mutation; the HTTP layer keys its response
// cache on it.
func (as *AlertService) Generation() uint64 {
	return as.gen.Load()
}

func (as *AlertService) MarkRead(id string) {
	as.opsMu.Lock()
	defer as.opsMu.Unlock()

	if as.store.MarkRead(id) {
		as.persistLocked()
		as.gen.Inc()
	}
}

func (as *AlertService) MarkUnread(id string) {
	as.opsMu.Lock()
	defer as.opsMu.Unlock()

	if as.store.MarkUnread(id) {
		as.persistLocked()
		as.gen.Inc()
	}
}

func (as *AlertService) MarkAllRead() {
	as.opsMu.Lock()
	defer as.opsMu.Unlock()

	as.store.MarkAllRead()
	as.persistLocked()
	as.gen.Inc()
}

func (as *AlertService) Delete(id string) {
	as.opsMu.Lock()
	defer as.opsMu.Unlock()

	if as.store.Delete(id) {
		as.persistLocked()
		as.gen.Inc()
	}
}

func (as *AlertService) ClearHistory() {
	as.opsMu.Lock()
	defer as.opsMu.Unlock()

	as.store.Clear()
	as.persistLocked()
	as.gen.Inc()
}

// persistLocked writes the snapshot while opsMu is held. A write failure is
// logged and the in-memory state stands; no retry is scheduled.
func (as *AlertService) persistLocked() {
	start := time.Now()
	if err := as.fileManager.SaveToFile(as.conf.Persistence.FilePath); err != nil {
		as.logger.Errorf(providers.TypeAlert, "Error while persisting data: %s", err)
		return
	}
	as.metrics.ObservePersistenceDuration(time.Since(start))
}
