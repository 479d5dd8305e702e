package connection

import (
	"alertd/internal/models"
)

const (
	frameSubscribe    = "subscribe"
	frameUnsubscribe  = "unsubscribe"
	frameAlert        = "alert"
	frameScores       = "live_scores"
	frameSubscribed   = "subscribed"
	frameUnsubscribed = "unsubscribed"
)

// controlFrame is the outbound subscription control message. Fire and
// forget: the server acks with subscribed/unsubscribed frames but nothing
// tracks them.
type controlFrame struct {
	Type     string   `json:"type"`
	Channels []string `json:"channels"`
}

// inboundFrame covers every message the server pushes.
type inboundFrame struct {
	Type     string             `json:"type"`
	Alert    *models.AlertEvent `json:"alert,omitempty"`
	Scores   map[string]int     `json:"scores,omitempty"`
	Channels []string           `json:"channels,omitempty"`
}

// valid rejects frames that parsed as JSON but miss the payload their type
// requires. Such frames are dropped like any other decode failure.
func (f *inboundFrame) valid() bool {
	switch f.Type {
	case frameAlert:
		return f.Alert != nil && f.Alert.ID != ""
	case frameScores:
		return f.Scores != nil
	case frameSubscribed, frameUnsubscribed:
		return true
	default:
		return false
	}
}
