package cron

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultCleanupSchedule runs every 6 hours
const DefaultCleanupSchedule = "0 0 */6 * * *"

// CleanupFunc removes expired cache entries
type CleanupFunc func(ctx context.Context) error

// CleanupManager runs the reference cache cleanup on a schedule
type CleanupManager struct {
	cron      *cron.Cron
	cronEntry cron.EntryID
	cleanup   CleanupFunc
	timeout   time.Duration
	logger    *zap.Logger
	mutex     sync.RWMutex
	isRunning bool
	schedule  string
}

// NewCleanupManagerWithSchedule creates a cleanup manager with a six-field cron schedule
func NewCleanupManagerWithSchedule(cleanup CleanupFunc, schedule string, logger *zap.Logger) (*CleanupManager, error) {
	manager := &CleanupManager{
		cron:     cron.New(cron.WithSeconds()),
		cleanup:  cleanup,
		timeout:  time.Minute,
		logger:   logger,
		schedule: schedule,
	}

	entryID, err := manager.cron.AddFunc(schedule, manager.RunCleanup)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule cache cleanup %q: %w", schedule, err)
	}
	manager.cronEntry = entryID

	return manager, nil
}

// Start starts the scheduler and runs one cleanup in the background
func (cm *CleanupManager) Start() {
	cm.cron.Start()
	cm.logger.Info("scheduled cache cleanup", zap.String("schedule", cm.schedule))

	go cm.RunCleanup()
}

// RunCleanup performs one cleanup unless another one is in progress
func (cm *CleanupManager) RunCleanup() {
	cm.mutex.Lock()
	if cm.isRunning {
		cm.mutex.Unlock()
		cm.logger.Debug("cache cleanup already in progress, skipping")
		return
	}
	cm.isRunning = true
	cm.mutex.Unlock()

	defer func() {
		cm.mutex.Lock()
		cm.isRunning = false
		cm.mutex.Unlock()
	}()

	if cm.cleanup == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), cm.timeout)
	defer cancel()

	started := time.Now()
	if err := cm.cleanup(ctx); err != nil {
		cm.logger.Error("cache cleanup failed", zap.Error(err))
		return
	}
	cm.logger.Debug("cache cleanup completed", zap.Duration("took", time.Since(started)))
}

// Stop stops the scheduler and waits for a running cleanup to finish
func (cm *CleanupManager) Stop() {
	<-cm.cron.Stop().Done()
	cm.logger.Info("cache cleanup manager stopped")
}

// GetNextRun returns the next scheduled run time
func (cm *CleanupManager) GetNextRun() time.Time {
	return cm.cron.Entry(cm.cronEntry).Next
}

// IsRunning returns whether a cleanup is currently in progress
func (cm *CleanupManager) IsRunning() bool {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()
	return cm.isRunning
}

// GetSchedule returns the current cron schedule
func (cm *CleanupManager) GetSchedule() string {
	return cm.schedule
}
