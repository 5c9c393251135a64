package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadTargetDefaults(t *testing.T) {
	t.Setenv("APPLICATION_NAME", "")

	config, err := LoadTarget("target.yml")
	if err != nil {
		t.Fatalf("LoadTarget: %v", err)
	}

	if config.Server.ApplicationName != "target-api" {
		t.Errorf("unexpected name %q", config.Server.ApplicationName)
	}
	if config.Server.Port != "80" {
		t.Errorf("unexpected port %q", config.Server.Port)
	}
	if config.Server.ContextPath != "/api/weatherforecast" {
		t.Errorf("unexpected context path %q", config.Server.ContextPath)
	}
	if config.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("unexpected shutdown timeout %v", config.Server.ShutdownTimeout)
	}
}

func TestLoadClientDefaults(t *testing.T) {
	config, err := LoadClient("client.yml")
	if err != nil {
		t.Fatalf("LoadClient: %v", err)
	}

	if config.Forecast.ApiServiceBaseAddress != "http://target-api" {
		t.Errorf("unexpected base address %q", config.Forecast.ApiServiceBaseAddress)
	}
	if config.Forecast.ReadTimeout != 60*time.Second {
		t.Errorf("unexpected read timeout %v", config.Forecast.ReadTimeout)
	}
	if !config.Monitor.Enabled || config.Monitor.CronExpression != "@every 30s" {
		t.Errorf("unexpected monitor config %+v", config.Monitor)
	}
	if config.Monitor.LockTTL != 90*time.Second || config.Monitor.StatusTTL != 2*time.Minute {
		t.Errorf("unexpected monitor TTLs %+v", config.Monitor)
	}
	if config.Redis.Enabled || config.Redis.Port != 6379 || config.Redis.Host != "localhost" {
		t.Errorf("unexpected redis config %+v", config.Redis)
	}
	if config.Server.ContextPath != "" {
		t.Errorf("unexpected context path %q", config.Server.ContextPath)
	}
}

func TestLoadClientReadsEnvironment(t *testing.T) {
	t.Setenv("ApiServiceBaseAddress", "http://weather-target:8080")
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_PORT", "6380")

	config, err := LoadClient("client.yml")
	if err != nil {
		t.Fatalf("LoadClient: %v", err)
	}

	if config.Forecast.ApiServiceBaseAddress != "http://weather-target:8080" {
		t.Errorf("unexpected base address %q", config.Forecast.ApiServiceBaseAddress)
	}
	if config.Server.Port != "8081" {
		t.Errorf("unexpected port %q", config.Server.Port)
	}
	if !config.Redis.Enabled || config.Redis.Port != 6380 {
		t.Errorf("unexpected redis config %+v", config.Redis)
	}
}

func TestLoadClientEnvironmentWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.yml")
	content := "app:\n  forecast:\n    api-service-base-address: http://from-file\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	config, err := LoadClient(path)
	if err != nil {
		t.Fatalf("LoadClient: %v", err)
	}
	if config.Forecast.ApiServiceBaseAddress != "http://from-file" {
		t.Fatalf("unexpected base address %q", config.Forecast.ApiServiceBaseAddress)
	}

	t.Setenv("ApiServiceBaseAddress", "http://from-env")
	config, err = LoadClient(path)
	if err != nil {
		t.Fatalf("LoadClient: %v", err)
	}
	if config.Forecast.ApiServiceBaseAddress != "http://from-env" {
		t.Fatalf("unexpected base address %q", config.Forecast.ApiServiceBaseAddress)
	}
}

func TestLoadClientRejectsRefreshLongerThanTTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.yml")
	content := "app:\n  monitor:\n    lock-ttl: 10s\n    refresh-interval: 30s\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := LoadClient(path); err == nil {
		t.Fatal("expected an error when the refresh interval exceeds the lock TTL")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := LoadTarget(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Fatal("expected an error")
	}
}
