// File: internal/jobs/session_cleanup.go
package jobs

import (
	"context"
	"fmt"
	"time"

	"tigerbites_backend/internal/auth"
	"tigerbites_backend/internal/config"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SessionCleanupJob holds dependencies for the expired-session purge job.
type SessionCleanupJob struct {
	authService   auth.Service
	logger        *zap.Logger
	cfg           *config.Config
	cronScheduler *cron.Cron
}

// NewSessionCleanupJob creates a new SessionCleanupJob.
func NewSessionCleanupJob(
	authService auth.Service,
	logger *zap.Logger,
	cfg *config.Config,
) *SessionCleanupJob {
	scheduler := cron.New(cron.WithLogger(NewCronLogger(logger.Named("cron"))))

	return &SessionCleanupJob{
		authService:   authService,
		logger:        logger.Named("SessionCleanupJob"),
		cfg:           cfg,
		cronScheduler: scheduler,
	}
}

// SetupAndStart schedules and starts the cron job.
func (j *SessionCleanupJob) SetupAndStart() error {
	jobSpec := j.cfg.SessionCleanupJobSchedule // e.g., "@daily", "0 3 * * *"
	if jobSpec == "" {
		j.logger.Warn("Session cleanup job schedule not defined (SESSION_CLEANUP_JOB_SCHEDULE). Job will not run.")
		return nil
	}

	jobID, err := j.cronScheduler.AddFunc(jobSpec, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule session cleanup job", zap.String("spec", jobSpec), zap.Error(err))
		return err
	}

	j.logger.Info("Session cleanup job scheduled", zap.String("spec", jobSpec), zap.Any("jobID", jobID))
	j.cronScheduler.Start()
	return nil
}

// runJob is the actual work performed by the cron job.
func (j *SessionCleanupJob) runJob() {
	j.logger.Info("Starting session cleanup job run...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	purged, err := j.authService.PurgeExpiredSessions(ctx)
	if err != nil {
		j.logger.Error("Session cleanup job run failed", zap.Error(err))
	} else {
		j.logger.Info("Session cleanup job run completed", zap.Int64("sessions_purged", purged))
	}
}

// Stop gracefully stops the cron scheduler.
func (j *SessionCleanupJob) Stop() {
	if j.cronScheduler != nil {
		j.logger.Info("Stopping session cleanup job scheduler...")
		stopCtx := j.cronScheduler.Stop()
		select {
		case <-stopCtx.Done():
			j.logger.Info("Session cleanup job scheduler stopped gracefully.")
		case <-time.After(10 * time.Second):
			j.logger.Warn("Session cleanup job scheduler stop timed out.")
		}
	}
}

// --- Cron Logger Adapter ---

// cronLogger adapts zap.Logger to the cron.Logger interface.
type cronLogger struct {
	zl *zap.Logger
}

// NewCronLogger creates a new cronLogger.
func NewCronLogger(zl *zap.Logger) cron.Logger {
	return &cronLogger{zl: zl}
}

// Info logs routine messages from cron.
func (cl *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	fields := cl.parseKeysAndValues(keysAndValues...)
	cl.zl.Info(msg, fields...)
}

// Error logs error messages from cron.
func (cl *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := cl.parseKeysAndValues(keysAndValues...)
	fields = append(fields, zap.Error(err))
	cl.zl.Error(msg, fields...)
}

func (cl *cronLogger) parseKeysAndValues(keysAndValues ...interface{}) []zap.Field {
	var fields []zap.Field
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), keysAndValues[i+1]))
		} else {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), "MISSING_VALUE"))
		}
	}
	return fields
}
