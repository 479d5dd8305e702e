package notify

import (
	"context"

	"alertd/internal/models"
	"alertd/internal/providers"
)

// Request is one system notification, delivered immediately (no scheduled
// trigger). There is no callback on display.
type Request struct {
	Identifier string
	Title      string
	Body       string
	Icon       string
}

// NotificationCenter is the delivery collaborator.
type NotificationCenter interface {
	Deliver(req Request) error
}

// LogCenter writes notifications to the alert log. The default center for
// deployments without a system notification surface.
type LogCenter struct {
	logger providers.Logger
}

func NewLogCenter(logger providers.Logger) NotificationCenter {
	return &LogCenter{logger: logger}
}

func (c *LogCenter) Deliver(req Request) error {
	c.logger.Infof(providers.TypeAlert, "Notification [%s] %s: %s", req.Identifier, req.Title, req.Body)
	return nil
}

// Bridge turns freshly admitted alert records into notification requests
// when permission is authorized. Titles and icons come from the exhaustive
// per-type metadata table; unknown types land on the system entry.
type Bridge struct {
	perm   PermissionProvider
	center NotificationCenter
	logger providers.Logger
}

func NewBridge(perm PermissionProvider, center NotificationCenter, logger providers.Logger) *Bridge {
	return &Bridge{
		perm:   perm,
		center: center,
		logger: logger,
	}
}

// Run consumes admitted records until the context ends.
func (b *Bridge) Run(ctx context.Context, records <-chan models.AlertRecord) {
	for {
		select {
		case <-ctx.Done():
			return
		case rec, ok := <-records:
			if !ok {
				return
			}
			b.Notify(rec)
		}
	}
}

// Notify emits one request for a record, or nothing when permission is not
// authorized.
func (b *Bridge) Notify(rec models.AlertRecord) {
	if b.perm.Status() != Authorized {
		return
	}

	meta := rec.Type.Meta()
	title := rec.Title
	if title == "" {
		title = meta.Title
	}

	req := Request{
		Identifier: rec.ID,
		Title:      title,
		Body:       rec.Message,
		Icon:       meta.Icon,
	}
	if err := b.center.Deliver(req); err != nil {
		b.logger.Warnf(providers.TypeAlert, "Notification delivery for %s failed: %s", rec.ID, err)
	}
}
