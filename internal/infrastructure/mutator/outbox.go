package mutator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ersonp/adledger/internal/infrastructure/logging"
)

// Operation names written to the outbox.
const (
	OpSetKeywordBid           = "set_keyword_bid"
	OpRemoveCampaignCriterion = "remove_campaign_criterion"
	OpRemoveAdGroupCriterion  = "remove_ad_group_criterion"
	OpEnableAd                = "enable_ad"
)

// Entry is one queued mutation, written as a single JSON line.
type Entry struct {
	Time      time.Time `json:"time"`
	Operation string    `json:"operation"`
	Resource  string    `json:"resource"`
	BidMicros int64     `json:"bid_micros,omitempty"`
}

// Outbox appends mutations to a JSON lines file for an external submitter.
type Outbox struct {
	path   string
	logger *zap.Logger
	now    func() time.Time

	mu sync.Mutex
}

// NewOutbox creates an outbox writing to path. The file is created on first write.
func NewOutbox(path string, logger *zap.Logger) (*Outbox, error) {
	if path == "" {
		return nil, errors.New("outbox path is required")
	}
	return &Outbox{
		path:   path,
		logger: logging.OrNop(logger).Named("outbox"),
		now:    time.Now,
	}, nil
}

// Path returns the outbox file path.
func (o *Outbox) Path() string {
	return o.path
}

func (o *Outbox) enqueue(ctx context.Context, entry Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entry.Time = o.now().UTC()
	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding outbox entry: %w", err)
	}
	line = append(line, '\n')

	o.mu.Lock()
	defer o.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(o.path), 0o755); err != nil {
		return fmt.Errorf("creating outbox directory: %w", err)
	}
	f, err := os.OpenFile(o.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening outbox: %w", err)
	}
	if _, err := f.Write(line); err != nil {
		f.Close()
		return fmt.Errorf("writing outbox: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing outbox: %w", err)
	}

	o.logger.Info("queued mutation",
		zap.String("operation", entry.Operation),
		zap.String("resource", entry.Resource),
	)
	return nil
}

// SetKeywordBid queues a CPC bid change.
func (o *Outbox) SetKeywordBid(ctx context.Context, resource string, bidMicros int64) error {
	return o.enqueue(ctx, Entry{Operation: OpSetKeywordBid, Resource: resource, BidMicros: bidMicros})
}

// RemoveCampaignCriterion queues a campaign criterion removal.
func (o *Outbox) RemoveCampaignCriterion(ctx context.Context, resource string) error {
	return o.enqueue(ctx, Entry{Operation: OpRemoveCampaignCriterion, Resource: resource})
}

// RemoveAdGroupCriterion queues an ad group criterion removal.
func (o *Outbox) RemoveAdGroupCriterion(ctx context.Context, resource string) error {
	return o.enqueue(ctx, Entry{Operation: OpRemoveAdGroupCriterion, Resource: resource})
}

// EnableAd queues an ad status change to enabled.
func (o *Outbox) EnableAd(ctx context.Context, resource string) error {
	return o.enqueue(ctx, Entry{Operation: OpEnableAd, Resource: resource})
}
