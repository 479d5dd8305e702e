package models

import (
	"time"

	json "github.com/goccy/go-json"
)

// AlertType is the closed set of alert categories pushed by the backend.
// Unknown inbound values normalize to TypeSystem so a new server-side type
// can never fail ingestion.
type AlertType string

const (
	TypePriceChange     AlertType = "priceChange"
	TypeInjury          AlertType = "injury"
	TypeLateOut         AlertType = "lateOut"
	TypeRoleChange      AlertType = "roleChange"
	TypeTradeDeadline   AlertType = "tradeDeadline"
	TypeCaptainReminder AlertType = "captainReminder"
	TypeBreakingNews    AlertType = "breakingNews"
	TypeMilestone       AlertType = "milestone"
	TypeSystem          AlertType = "system"
)

// TypeMeta is the display metadata for one alert type. The table below is
// the single source of truth; callers must never hardcode per-type strings.
type TypeMeta struct {
	Title string
	Icon  string
	Color string
}

var typeMeta = map[AlertType]TypeMeta{
	TypePriceChange:     {Title: "Price Change", Icon: "chart.line.uptrend", Color: "#2E86DE"},
	TypeInjury:          {Title: "Injury Update", Icon: "cross.case", Color: "#E74C3C"},
	TypeLateOut:         {Title: "Late Out", Icon: "exclamationmark.triangle", Color: "#E67E22"},
	TypeRoleChange:      {Title: "Role Change", Icon: "arrow.triangle.swap", Color: "#9B59B6"},
	TypeTradeDeadline:   {Title: "Trade Deadline", Icon: "clock", Color: "#F1C40F"},
	TypeCaptainReminder: {Title: "Captain Reminder", Icon: "star.circle", Color: "#16A085"},
	TypeBreakingNews:    {Title: "Breaking News", Icon: "newspaper", Color: "#C0392B"},
	TypeMilestone:       {Title: "Milestone", Icon: "flag.checkered", Color: "#27AE60"},
	TypeSystem:          {Title: "System", Icon: "gear", Color: "#7F8C8D"},
}

// ParseAlertType maps a wire string onto the closed type set.
func ParseAlertType(s string) AlertType {
	if _, ok := typeMeta[AlertType(s)]; ok {
		return AlertType(s)
	}
	return TypeSystem
}

// Meta returns the display metadata for the type, falling back to the
// system entry for values outside the closed set.
func (t AlertType) Meta() TypeMeta {
	if m, ok := typeMeta[t]; ok {
		return m
	}
	return typeMeta[TypeSystem]
}

// AllAlertTypes returns every known type, for exhaustiveness checks.
func AllAlertTypes() []AlertType {
	types := make([]AlertType, 0, len(typeMeta))
	for t := range typeMeta {
		types = append(types, t)
	}
	return types
}

// AlertEvent is the wire-level alert payload. Data is kept opaque: this
// subsystem forwards it but never interprets it.
type AlertEvent struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Message   string          `json:"message"`
	Type      AlertType       `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	PlayerID  string          `json:"playerId,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// AlertRecord is the persisted/display entity: an admitted event plus its
// read flag. Identity is ID; duplicate ids from the server are accepted as
// distinct records.
type AlertRecord struct {
	AlertEvent
	IsRead bool `json:"is_read"`
}

// NewAlertRecord builds an unread record from an inbound event, normalizing
// the type onto the closed set.
func NewAlertRecord(ev *AlertEvent) AlertRecord {
	rec := AlertRecord{AlertEvent: *ev}
	rec.Type = ParseAlertType(string(ev.Type))
	return rec
}
