package listing

import (
	"context"
	"sync"

	"github.com/homefinder/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// compensation reasons recorded on the image_compensations_total counter
const (
	reasonRollback = "rollback"
	reasonCleanup  = "cleanup"
)

// Compensation is an ordered undo list of remote image deletes.
// It is built while uploading and run if the surrounding write fails.
type Compensation struct {
	mu        sync.Mutex
	publicIDs []string
	host      ImageHost
	metrics   *telemetry.BusinessMetrics
	logger    *zap.Logger
}

func newCompensation(host ImageHost, metrics *telemetry.BusinessMetrics, logger *zap.Logger) *Compensation {
	return &Compensation{host: host, metrics: metrics, logger: logger}
}

// add records an uploaded asset to delete on rollback
func (c *Compensation) add(publicID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.publicIDs = append(c.publicIDs, publicID)
}

// Pending returns the asset IDs that Run would delete, in upload order
func (c *Compensation) Pending() []string {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.publicIDs...)
}

// Run deletes the recorded assets in reverse order.
// Failures are logged and counted; the remaining steps still run.
func (c *Compensation) Run(ctx context.Context) {
	if c == nil {
		return
	}
	c.mu.Lock()
	ids := c.publicIDs
	c.publicIDs = nil
	c.mu.Unlock()

	for i := len(ids) - 1; i >= 0; i-- {
		if err := c.host.Delete(ctx, ids[i]); err != nil {
			c.logger.Error("Failed to delete uploaded image during rollback; asset is orphaned",
				zap.String("public_id", ids[i]),
				zap.Error(err))
			c.metrics.RecordImageCompensation(ctx, reasonRollback, telemetry.OutcomeFailed)
			continue
		}
		c.metrics.RecordImageCompensation(ctx, reasonRollback, telemetry.OutcomeDeleted)
	}
}

// Discard forgets the recorded assets once the write has committed
func (c *Compensation) Discard() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.publicIDs = nil
	c.mu.Unlock()
}
