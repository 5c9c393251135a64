package schedule

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"weather-relay/configs"
	"weather-relay/internal/domain/usecase/health"
	"weather-relay/pkg/log"
	"weather-relay/pkg/msg"
	"weather-relay/pkg/redis"
)

const (
	monitorLockKey       = "upstream_monitor_scheduler"
	monitorLockNamespace = "weather_relay_schedules"
)

// UpstreamMonitorScheduler checks the upstream service on a cron schedule. With a redis client,
// every tick competes for a distributed lock first: the holder checks the upstream and the other
// replicas skip the tick. The lock is contended again on each tick, so another replica takes over
// as soon as the holder releases it or lets it expire.
type UpstreamMonitorScheduler struct {
	cron        *cron.Cron
	useCase     health.UseCase
	redisClient *redis.Client
	config      configs.MonitorConfig
	done        chan struct{}

	mutex         sync.Mutex
	ctx           context.Context
	lock          *redis.Lock
	cancelRefresh context.CancelFunc
}

// NewUpstreamMonitorScheduler creates the upstream monitor. redisClient may be nil.
func NewUpstreamMonitorScheduler(useCase health.UseCase, redisClient *redis.Client, config configs.MonitorConfig) *UpstreamMonitorScheduler {
	return &UpstreamMonitorScheduler{
		cron:        cron.New(),
		useCase:     useCase,
		redisClient: redisClient,
		config:      config,
		done:        make(chan struct{}),
		ctx:         context.Background(),
	}
}

// InitUpstreamMonitorTasks starts the cron runner until ctx is cancelled
func (s *UpstreamMonitorScheduler) InitUpstreamMonitorTasks(ctx context.Context) {
	s.mutex.Lock()
	s.ctx = ctx
	s.mutex.Unlock()

	if _, err := s.cron.AddFunc(s.config.CronExpression, s.ExecuteScheduledTask); err != nil {
		log.Error(msg.GetMessage("monitor.not-started", err), zap.String("cron", s.config.CronExpression))
		close(s.done)
		return
	}

	s.cron.Start()
	log.Info(msg.GetMessage("monitor.start", s.config.CronExpression))

	go func() {
		defer close(s.done)
		<-ctx.Done()

		cronCtx := s.cron.Stop()
		<-cronCtx.Done()
		s.releaseLeadership()
		log.Info(msg.GetMessage("monitor.stopped"))
	}()
}

// ExecuteScheduledTask checks the upstream when this instance holds, or wins, the lock
func (s *UpstreamMonitorScheduler) ExecuteScheduledTask() {
	requestID := uuid.NewString()
	if !s.acquireLeadership(requestID) {
		return
	}
	s.useCase.CheckUpstream(requestID)
}

// acquireLeadership reports whether this tick should check the upstream
func (s *UpstreamMonitorScheduler) acquireLeadership(requestID string) bool {
	if s.redisClient == nil {
		return true
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.lock != nil {
		if held, err := s.lock.IsLocked(s.ctx); err == nil && held {
			return true
		}
		s.dropLeadership()
	}

	lock := redis.NewLock(s.redisClient, monitorLockKey, redis.NewLockOptions().
		WithTTL(s.getLockTTL()).
		WithRefreshInterval(s.getRefreshInterval()).
		WithMaxRetries(0).
		WithLockNamespace(monitorLockNamespace))

	err := lock.Lock(s.ctx)
	switch {
	case err == nil:
	case errors.Is(err, redis.ErrLockHeld):
		log.Debug(msg.GetMessage("monitor.standby", err), zap.String("request_id", requestID))
		return false
	default:
		// without redis nobody can lead, so every replica checks for itself
		log.Warn(msg.GetMessage("monitor.lock-unavailable", err), zap.String("request_id", requestID))
		return true
	}

	refreshCtx, cancel := context.WithCancel(s.ctx)
	s.lock, s.cancelRefresh = lock, cancel
	go s.watchRefresh(lock, lock.AutoRefresh(refreshCtx))

	log.Info(msg.GetMessage("monitor.leader"), zap.String("lock", lock.Key()))
	return true
}

// watchRefresh gives up leadership when the lock can no longer be refreshed
func (s *UpstreamMonitorScheduler) watchRefresh(lock *redis.Lock, refreshErrChan <-chan error) {
	err := <-refreshErrChan

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.lock != lock {
		return
	}
	s.dropLeadership()
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Warn(msg.GetMessage("monitor.lock-lost", err))
	}
}

// dropLeadership forgets the lock. Callers hold s.mutex.
func (s *UpstreamMonitorScheduler) dropLeadership() {
	if s.cancelRefresh != nil {
		s.cancelRefresh()
	}
	s.lock = nil
	s.cancelRefresh = nil
}

func (s *UpstreamMonitorScheduler) releaseLeadership() {
	s.mutex.Lock()
	lock := s.lock
	s.dropLeadership()
	s.mutex.Unlock()

	if lock == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = lock.Unlock(ctx)
}

// Done is closed once the scheduler has stopped and released its lock
func (s *UpstreamMonitorScheduler) Done() <-chan struct{} {
	return s.done
}

// Stop gracefully stops the cron runner
func (s *UpstreamMonitorScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *UpstreamMonitorScheduler) getLockTTL() time.Duration {
	if s.config.LockTTL > 0 {
		return s.config.LockTTL
	}
	return 90 * time.Second
}

func (s *UpstreamMonitorScheduler) getRefreshInterval() time.Duration {
	if s.config.RefreshInterval > 0 {
		return s.config.RefreshInterval
	}
	return 30 * time.Second
}
