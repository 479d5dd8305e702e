package structures

import (
	"net/http"
	"time"
)

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Route struct {
	Url     string
	Handler http.Handler
}

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type ConnectionConfig struct {
	URL              string        `yaml:"url" validate:"required"`
	Channels         []string      `yaml:"channels" validate:"required"`
	PingInterval     time.Duration `yaml:"pingInterval" validate:"required|min:1"`
	ReconnectDelay   time.Duration `yaml:"reconnectDelay" validate:"required|min:1"`
	HandshakeTimeout time.Duration `yaml:"handshakeTimeout"`
}

type AlertsConfig struct {
	MaxHistory           int `yaml:"maxHistory" validate:"required|min:1"`
	DailyCap             int `yaml:"dailyCap" validate:"required|min:1"`
	CounterRetentionDays int `yaml:"counterRetentionDays"`
}

type Persistence struct {
	FilePath     string        `yaml:"filePath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type NotificationsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName       string
	Debug         bool
	Path          string
	Connection    ConnectionConfig    `yaml:"connection"`
	Alerts        AlertsConfig        `yaml:"alerts"`
	WebServer     Server              `yaml:"webServer"`
	Persistence   Persistence         `yaml:"persistence"`
	Logger        LoggerConfig        `yaml:"logger"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Cache         CacheConfig         `yaml:"cache"`
	Metrics       MetricsConfig       `yaml:"metrics"`
}
