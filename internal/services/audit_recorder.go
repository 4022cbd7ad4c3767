package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/taskhive/backend/internal/infrastructure/audit"
	"github.com/taskhive/backend/usecase"
)

// RecorderConfig controls queueing and retention of the audit trail.
type RecorderConfig struct {
	Retention time.Duration
	Sweep     time.Duration
	QueueSize int
}

// AuditRecorder consumes audit entries off a bounded queue and appends
// them to the Bolt store. Recording is fire-and-forget: a full queue or
// a failed append is logged and dropped, never propagated back into the
// request that produced it. A cron job prunes entries past retention.
type AuditRecorder struct {
	store  *audit.Store
	logger *zap.Logger
	cron   *cron.Cron
	cfg    RecorderConfig

	queue  chan audit.Entry
	stopCh chan struct{}
	doneCh chan struct{}
}

func NewAuditRecorder(store *audit.Store, logger *zap.Logger, cfg RecorderConfig) *AuditRecorder {
	if cfg.Retention <= 0 {
		cfg.Retention = 30 * 24 * time.Hour
	}
	if cfg.Sweep <= 0 {
		cfg.Sweep = time.Hour
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &AuditRecorder{
		store:  store,
		logger: logger,
		cfg:    cfg,
		cron:   cron.New(),
		queue:  make(chan audit.Entry, cfg.QueueSize),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Sweep.Seconds()))
	_, _ = r.cron.AddFunc(schedule, func() {
		cutoff := time.Now().Add(-r.cfg.Retention)
		if err := r.store.Prune(cutoff); err != nil {
			r.logger.Error("audit prune failed", zap.Error(err))
		}
	})

	return r
}

// Start launches the consumer goroutine and the retention scheduler.
func (r *AuditRecorder) Start() {
	if r == nil {
		return
	}
	r.cron.Start()
	go r.consume()
	r.logger.Info("audit recorder started")
}

// Stop drains pending entries and stops the scheduler.
func (r *AuditRecorder) Stop(ctx context.Context) {
	if r == nil {
		return
	}
	stopCtx := r.cron.Stop()
	close(r.stopCh)
	select {
	case <-r.doneCh:
	case <-ctx.Done():
	}
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	r.logger.Info("audit recorder stopped")
}

// Record enqueues an entry without blocking the caller.
func (r *AuditRecorder) Record(action, userID, target, detail string) {
	if r == nil {
		return
	}
	entry := audit.Entry{
		UserID: userID,
		Action: action,
		Target: target,
		Detail: detail,
	}
	select {
	case r.queue <- entry:
	default:
		r.logger.Warn("audit queue full, dropping entry", zap.String("action", action))
	}
}

// Size returns the number of persisted audit entries.
func (r *AuditRecorder) Size() int {
	if r == nil || r.store == nil {
		return 0
	}
	size, err := r.store.Size()
	if err != nil {
		return 0
	}
	return size
}

func (r *AuditRecorder) consume() {
	defer close(r.doneCh)
	for {
		select {
		case entry := <-r.queue:
			r.append(entry)
		case <-r.stopCh:
			for {
				select {
				case entry := <-r.queue:
					r.append(entry)
				default:
					return
				}
			}
		}
	}
}

func (r *AuditRecorder) append(entry audit.Entry) {
	if err := r.store.Append(entry); err != nil {
		r.logger.Error("audit append failed",
			zap.String("action", entry.Action),
			zap.Error(err))
	}
}

var _ usecase.AuditTrail = (*AuditRecorder)(nil)
