package providers

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"alertd/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.SetDefault("connection.channels", []string{"alerts", "scores", "prices"})
	viper.SetDefault("connection.pingInterval", 30*time.Second)
	viper.SetDefault("connection.reconnectDelay", 1*time.Second)
	viper.SetDefault("connection.handshakeTimeout", 10*time.Second)
	viper.SetDefault("alerts.maxHistory", 100)
	viper.SetDefault("alerts.dailyCap", 20)
	viper.SetDefault("alerts.counterRetentionDays", 30)
	viper.SetDefault("cache.ttl", 5*time.Second)

	viper.BindEnv("connection.url", "ALERTD_SERVER_URL")
	viper.BindEnv("connection.reconnectDelay", "ALERTD_RECONNECT_DELAY")
	viper.BindEnv("logger.level", "ALERTD_LOG_LEVEL")
	viper.BindEnv("persistence.saveInterval", "ALERTD_SAVE_INTERVAL")
	viper.BindEnv("alerts.dailyCap", "ALERTD_DAILY_CAP")
	viper.BindEnv("notifications.enabled", "ALERTD_NOTIFICATIONS_ENABLED")
	viper.BindEnv("cache.enabled", "ALERTD_CACHE_ENABLED")
	viper.BindEnv("cache.size", "ALERTD_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "AlertPipelineDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
