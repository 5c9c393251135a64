package health

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"weather-relay/internal/domain/gateway/api"
	"weather-relay/internal/domain/gateway/lock"
	"weather-relay/internal/domain/model"
	"weather-relay/pkg/log"
	"weather-relay/pkg/msg"
)

const (
	upstreamComponent = "upstream"
	lockComponent     = "lock"
)

type healthUseCase struct {
	application   string
	apiGateway    api.ForecastGateway
	lockGateway   lock.HealthGateway
	statusGateway lock.UpstreamStatusGateway
	mutex         sync.RWMutex
	lastUpstream  *model.ComponentHealthStatus
}

// NewHealthUseCase builds the health use case. Every gateway is optional: the target service has
// no upstream, and the lock store and shared upstream status only exist when redis is enabled.
// With a statusGateway, upstream checks made by any replica are visible to all of them.
func NewHealthUseCase(application string, apiGateway api.ForecastGateway, lockGateway lock.HealthGateway, statusGateway lock.UpstreamStatusGateway) UseCase {
	return &healthUseCase{
		application:   application,
		apiGateway:    apiGateway,
		lockGateway:   lockGateway,
		statusGateway: statusGateway,
	}
}

func (useCase *healthUseCase) CheckHealth() model.HealthResponse {
	components := make(map[string]model.ComponentHealthStatus)

	if useCase.apiGateway != nil {
		components[upstreamComponent] = useCase.upstreamStatus()
	}
	if useCase.lockGateway != nil {
		components[lockComponent] = useCase.lockGateway.Health()
	}

	overallStatus := model.StatusUp
	for _, component := range components {
		if component.Status == model.StatusDown {
			overallStatus = model.StatusDown
		}
	}

	response := model.HealthResponse{
		Status:      overallStatus,
		Application: useCase.application,
	}
	if len(components) > 0 {
		response.Components = components
	}
	return response
}

// upstreamStatus prefers the shared status and falls back to the last local check
func (useCase *healthUseCase) upstreamStatus() model.ComponentHealthStatus {
	if useCase.statusGateway != nil {
		shared, err := useCase.statusGateway.LoadUpstreamStatus()
		if err != nil {
			log.Warn(msg.GetMessage("monitor.load-fail", err))
		} else if shared != nil {
			return *shared
		}
	}

	useCase.mutex.RLock()
	defer useCase.mutex.RUnlock()

	if useCase.lastUpstream == nil {
		return model.ComponentHealthStatus{
			Status: model.StatusUnknown,
			Details: map[string]string{
				"message":      "Upstream not checked yet",
				"base_address": useCase.apiGateway.BaseAddress(),
			},
		}
	}
	return *useCase.lastUpstream
}

func (useCase *healthUseCase) CheckUpstream(requestID string) model.ComponentHealthStatus {
	if useCase.apiGateway == nil {
		return model.ComponentHealthStatus{Status: model.StatusUnknown, Details: map[string]string{"message": "No upstream configured"}}
	}

	log.Debug(msg.GetMessage("monitor.run", useCase.apiGateway.BaseAddress()), zap.String("request_id", requestID))

	status := useCase.apiGateway.Health()
	details := make(map[string]string, len(status.Details)+2)
	for key, value := range status.Details {
		details[key] = value
	}
	details["check_request_id"] = requestID
	details["checked_at"] = time.Now().Format(time.RFC3339)
	status.Details = details

	useCase.mutex.Lock()
	useCase.lastUpstream = &status
	useCase.mutex.Unlock()

	if useCase.statusGateway != nil {
		if err := useCase.statusGateway.SaveUpstreamStatus(status); err != nil {
			log.Warn(msg.GetMessage("monitor.save-fail", err), zap.String("request_id", requestID))
		}
	}

	log.Info(msg.GetMessage("monitor.result", useCase.apiGateway.BaseAddress(), status.Status),
		zap.String("request_id", requestID),
		zap.String("status", string(status.Status)))
	return status
}
