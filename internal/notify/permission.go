package notify

import (
	"context"

	"alertd/internal/structures"
)

// PermissionStatus mirrors the OS notification permission states.
type PermissionStatus int

const (
	NotDetermined PermissionStatus = iota
	Authorized
	Denied
)

func (s PermissionStatus) String() string {
	switch s {
	case Authorized:
		return "authorized"
	case Denied:
		return "denied"
	default:
		return "notDetermined"
	}
}

// PermissionProvider is the OS-side permission collaborator. Denial is a
// result, not an error.
type PermissionProvider interface {
	Request(ctx context.Context) (bool, error)
	Status() PermissionStatus
}

// ConfigPermissionProvider derives the permission from configuration, the
// stand-in for an OS prompt in a headless deployment.
type ConfigPermissionProvider struct {
	enabled bool
}

func NewConfigPermissionProvider(conf *structures.Config) PermissionProvider {
	return &ConfigPermissionProvider{enabled: conf.Notifications.Enabled}
}

func (p *ConfigPermissionProvider) Request(_ context.Context) (bool, error) {
	return p.enabled, nil
}

func (p *ConfigPermissionProvider) Status() PermissionStatus {
	if p.enabled {
		return Authorized
	}
	return Denied
}
