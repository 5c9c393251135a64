package configs

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"weather-relay/pkg/resource"
)

const (
	DefaultTargetPropertiesPath = "configs/target.yml"
	DefaultClientPropertiesPath = "configs/client.yml"
)

// ServerConfig holds the HTTP listener settings shared by both services
type ServerConfig struct {
	ApplicationName string
	Port            string
	ContextPath     string
	ShutdownTimeout time.Duration
}

// ForecastClientConfig holds the settings of the outbound calls to the target service
type ForecastClientConfig struct {
	ApiServiceBaseAddress string
	ConnectionTimeout     time.Duration
	ReadTimeout           time.Duration
}

// MonitorConfig holds the upstream monitor schedule. LockTTL bounds how long a crashed leader
// blocks the others; StatusTTL bounds how long its last published status is served.
type MonitorConfig struct {
	Enabled         bool
	CronExpression  string
	LockTTL         time.Duration
	RefreshInterval time.Duration
	StatusTTL       time.Duration
}

// RedisConfig holds the optional redis connection used for the monitor lock and the shared upstream status
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	Database int
}

// TargetConfig is the configuration of the target service
type TargetConfig struct {
	Server ServerConfig
}

// ClientConfig is the configuration of the client service
type ClientConfig struct {
	Server   ServerConfig
	Forecast ForecastClientConfig
	Monitor  MonitorConfig
	Redis    RedisConfig
}

// LoadTarget reads the target service properties file and builds its configuration
func LoadTarget(path string) (*TargetConfig, error) {
	if err := resource.Init(path); err != nil {
		return nil, err
	}

	return &TargetConfig{
		Server: loadServer("target-api", "/api/weatherforecast"),
	}, nil
}

// LoadClient reads the client service properties file and builds its configuration.
// The ApiServiceBaseAddress environment variable wins over the properties file.
func LoadClient(path string) (*ClientConfig, error) {
	if err := resource.Init(path); err != nil {
		return nil, err
	}

	env := viper.New()
	// the variable name is mixed case, so it is bound explicitly instead of through AutomaticEnv
	_ = env.BindEnv("api-service-base-address", "ApiServiceBaseAddress")

	baseAddress := resource.GetString("app.forecast.api-service-base-address")
	if value := env.GetString("api-service-base-address"); value != "" {
		baseAddress = value
	}

	config := &ClientConfig{
		Server: loadServer("client-api", ""),
		Forecast: ForecastClientConfig{
			ApiServiceBaseAddress: baseAddress,
			ConnectionTimeout:     resource.GetDurationOrDefault("app.forecast.client.connection-timeout", 60*time.Second),
			ReadTimeout:           resource.GetDurationOrDefault("app.forecast.client.read-timeout", 60*time.Second),
		},
		Monitor: MonitorConfig{
			Enabled:         resource.GetBool("app.monitor.enabled"),
			CronExpression:  resource.GetStringOrDefault("app.monitor.cron", "@every 30s"),
			LockTTL:         resource.GetDurationOrDefault("app.monitor.lock-ttl", 90*time.Second),
			RefreshInterval: resource.GetDurationOrDefault("app.monitor.refresh-interval", 30*time.Second),
			StatusTTL:       resource.GetDurationOrDefault("app.monitor.status-ttl", 2*time.Minute),
		},
		Redis: RedisConfig{
			Enabled:  resource.GetBool("app.redis.enabled"),
			Host:     resource.GetStringOrDefault("app.redis.host", "localhost"),
			Port:     resource.GetIntOrDefault("app.redis.port", 6379),
			Password: resource.GetString("app.redis.password"),
			Database: resource.GetInt("app.redis.database"),
		},
	}

	if config.Monitor.RefreshInterval >= config.Monitor.LockTTL {
		return nil, fmt.Errorf("app.monitor.refresh-interval (%s) must be shorter than app.monitor.lock-ttl (%s)",
			config.Monitor.RefreshInterval, config.Monitor.LockTTL)
	}
	return config, nil
}

func loadServer(defaultName, defaultContextPath string) ServerConfig {
	env := viper.New()
	env.AutomaticEnv()

	name := env.GetString("APPLICATION_NAME")
	if name == "" {
		name = resource.GetStringOrDefault("app.name", defaultName)
	}

	contextPath := defaultContextPath
	if resource.IsSet("app.server.context-path") {
		contextPath = resource.GetString("app.server.context-path")
	}

	return ServerConfig{
		ApplicationName: name,
		Port:            resource.GetStringOrDefault("app.server.port", "80"),
		ContextPath:     contextPath,
		ShutdownTimeout: resource.GetDurationOrDefault("app.server.shutdown-timeout", 10*time.Second),
	}
}
