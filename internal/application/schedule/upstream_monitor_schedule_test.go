package schedule

import (
	"context"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"weather-relay/configs"
	"weather-relay/internal/domain/model"
	"weather-relay/pkg/redis"
)

const lockKey = monitorLockNamespace + "::" + monitorLockKey

type countingHealth struct {
	checks atomic.Int32
}

func (h *countingHealth) CheckHealth() model.HealthResponse {
	return model.HealthResponse{Status: model.StatusUp}
}

func (h *countingHealth) CheckUpstream(requestID string) model.ComponentHealthStatus {
	if requestID == "" {
		panic("upstream check without request id")
	}
	h.checks.Add(1)
	return model.ComponentHealthStatus{Status: model.StatusUp}
}

func newRedisClient(t *testing.T, server *miniredis.Miniredis) *redis.Client {
	t.Helper()
	port, err := strconv.Atoi(server.Port())
	if err != nil {
		t.Fatalf("miniredis port: %v", err)
	}
	client, err := redis.NewClient(redis.DefaultConfig().WithHost(server.Host()).WithPort(port))
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func monitorConfig(cronExpression string) configs.MonitorConfig {
	return configs.MonitorConfig{Enabled: true, CronExpression: cronExpression, LockTTL: 10 * time.Second, RefreshInterval: time.Second}
}

type runningScheduler struct {
	scheduler *UpstreamMonitorScheduler
	useCase   *countingHealth
	cancel    context.CancelFunc
}

func start(t *testing.T, client *redis.Client) *runningScheduler {
	t.Helper()
	useCase := &countingHealth{}
	scheduler := NewUpstreamMonitorScheduler(useCase, client, monitorConfig("@every 1s"))

	ctx, cancel := context.WithCancel(context.Background())
	scheduler.InitUpstreamMonitorTasks(ctx)

	running := &runningScheduler{scheduler: scheduler, useCase: useCase, cancel: cancel}
	t.Cleanup(func() { running.stop(t) })
	return running
}

func (r *runningScheduler) stop(t *testing.T) {
	t.Helper()
	r.cancel()
	select {
	case <-r.scheduler.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func eventually(t *testing.T, timeout time.Duration, condition func() bool, message string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for !condition() {
		if time.Now().After(deadline) {
			t.Fatal(message)
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func TestUpstreamMonitorRunsWithoutRedis(t *testing.T) {
	running := start(t, nil)

	eventually(t, 4*time.Second, func() bool { return running.useCase.checks.Load() > 0 }, "expected at least one check")
}

func TestUpstreamMonitorInvalidCron(t *testing.T) {
	useCase := &countingHealth{}
	scheduler := NewUpstreamMonitorScheduler(useCase, nil, monitorConfig("not a cron"))
	scheduler.InitUpstreamMonitorTasks(context.Background())

	select {
	case <-scheduler.Done():
	case <-time.After(time.Second):
		t.Fatal("scheduler with an invalid cron expression should be done")
	}
	if useCase.checks.Load() != 0 {
		t.Fatal("no check expected with an invalid cron expression")
	}
}

func TestStandbyTakesOverWhenLeaderStops(t *testing.T) {
	server := miniredis.RunT(t)

	leader := start(t, newRedisClient(t, server))
	eventually(t, 4*time.Second, func() bool { return leader.useCase.checks.Load() > 0 }, "leader never checked the upstream")

	standby := start(t, newRedisClient(t, server))
	time.Sleep(2500 * time.Millisecond)
	if standby.useCase.checks.Load() != 0 {
		t.Fatal("standby checked the upstream while the leader holds the lock")
	}

	leader.stop(t)
	eventually(t, 4*time.Second, func() bool { return standby.useCase.checks.Load() > 0 }, "standby never took over")
	if !server.Exists(lockKey) {
		t.Fatal("expected the standby to hold the lock")
	}

	standby.stop(t)
	if server.Exists(lockKey) {
		t.Fatal("expected the lock to be released on shutdown")
	}
}

func TestLeaderRegainsLostLock(t *testing.T) {
	server := miniredis.RunT(t)

	running := start(t, newRedisClient(t, server))
	eventually(t, 4*time.Second, func() bool { return server.Exists(lockKey) }, "lock never acquired")

	server.Del(lockKey)
	before := running.useCase.checks.Load()

	eventually(t, 4*time.Second, func() bool {
		return server.Exists(lockKey) && running.useCase.checks.Load() > before
	}, "monitor stopped checking after losing its lock")
}

func TestUpstreamMonitorChecksLocallyWhenRedisIsDown(t *testing.T) {
	server := miniredis.RunT(t)
	client := newRedisClient(t, server)
	server.Close()

	running := start(t, client)
	eventually(t, 8*time.Second, func() bool { return running.useCase.checks.Load() > 0 }, "expected local checks while redis is down")
}
