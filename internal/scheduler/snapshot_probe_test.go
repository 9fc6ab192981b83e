package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/business-dashboard-api/internal/config"
	"github.com/vfg2006/business-dashboard-api/internal/usecases/dashboarding"
	"github.com/vfg2006/business-dashboard-api/internal/usecases/dashboarding/mocks"
	"go.uber.org/mock/gomock"
)

func newProbeConfig(enabled bool, cron string) *config.Config {
	return &config.Config{
		SnapshotProbe: config.SnapshotProbe{
			CronSchedule: cron,
			Enabled:      enabled,
		},
	}
}

func TestSnapshotProbeService_RunOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockDashboarder := mocks.NewMockDashboarder(ctrl)

	service := NewSnapshotProbeService(mockDashboarder, newProbeConfig(false, "* * * * *"))

	dbErr := &dashboarding.DataSourceError{Step: dashboarding.StepInventory, Err: errors.New("connection refused")}

	gomock.InOrder(
		mockDashboarder.EXPECT().ComputeSnapshot(gomock.Any()).Return(nil, dbErr),
		mockDashboarder.EXPECT().ComputeSnapshot(gomock.Any()).Return(nil, dbErr),
		mockDashboarder.EXPECT().ComputeSnapshot(gomock.Any()).Return(dashboarding.FallbackSnapshot(), nil),
	)

	// Duas falhas seguidas
	require.Error(t, service.RunOnce(context.Background()))
	require.Error(t, service.RunOnce(context.Background()))

	status := service.GetStatus()
	assert.Equal(t, 2, status["consecutive_failures"])
	assert.Contains(t, status["last_error"], "connection refused")
	assert.Equal(t, false, status["running"])

	// Recuperação zera o contador de falhas
	require.NoError(t, service.RunOnce(context.Background()))

	status = service.GetStatus()
	assert.Equal(t, 0, status["consecutive_failures"])
	assert.Equal(t, "", status["last_error"])
}

func TestSnapshotProbeService_StartDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockDashboarder := mocks.NewMockDashboarder(ctrl)

	service := NewSnapshotProbeService(mockDashboarder, newProbeConfig(false, "* * * * *"))

	assert.NoError(t, service.Start(context.Background()))
	assert.Equal(t, false, service.GetStatus()["enabled"])
}

func TestSnapshotProbeService_StartInvalidCron(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockDashboarder := mocks.NewMockDashboarder(ctrl)

	service := NewSnapshotProbeService(mockDashboarder, newProbeConfig(true, "not a cron"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	assert.Error(t, service.Start(ctx))
}

func TestSnapshotProbeService_RunOnceEmptySnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockDashboarder := mocks.NewMockDashboarder(ctrl)

	service := NewSnapshotProbeService(mockDashboarder, newProbeConfig(false, "* * * * *"))

	mockDashboarder.EXPECT().ComputeSnapshot(gomock.Any()).Return(nil, nil)

	var err error
	require.NotPanics(t, func() {
		err = service.RunOnce(context.Background())
	})

	assert.ErrorIs(t, err, errEmptySnapshot)

	status := service.GetStatus()
	assert.Equal(t, 1, status["consecutive_failures"])
	assert.Equal(t, errEmptySnapshot.Error(), status["last_error"])
}
