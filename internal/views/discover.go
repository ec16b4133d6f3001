package views

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/alitto/pond/v2"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/melodify-live/melodify-client/internal/domain"
	"github.com/melodify-live/melodify-client/internal/ledger"
	"github.com/melodify-live/melodify-client/internal/logger"
	"github.com/melodify-live/melodify-client/internal/metadata"
)

// discoverLimit is how many recently published tracks the discover page shows
const discoverLimit = 6

// DiscoverItem pairs a track record with its resolved display metadata
type DiscoverItem struct {
	Track    domain.Track
	Metadata *domain.TrackMetadata
}

// DiscoverState is a renderable snapshot of the discover page
type DiscoverState struct {
	Items     []DiscoverItem
	Loading   bool
	RequestID string
}

// DiscoverView loads the recently published tracks. Loads may overlap; each
// one bumps a generation counter and only the newest is allowed to write its
// results back, so a slow earlier load can never clobber a fresher page.
type DiscoverView struct {
	ledger    ledger.Client
	metadata  metadata.Resolver
	pool      pond.Pool
	packageID string

	mu         sync.Mutex
	state      DiscoverState
	generation atomic.Uint64
}

// NewDiscoverView creates the discover page state
func NewDiscoverView(ledgerClient ledger.Client, metadataResolver metadata.Resolver, pool pond.Pool, packageID string) *DiscoverView {
	return &DiscoverView{
		ledger:    ledgerClient,
		metadata:  metadataResolver,
		pool:      pool,
		packageID: packageID,
	}
}

// Load queries the newest publish events and fans out one object fetch per
// track. A track that fails to fetch or decode is dropped; the page still
// renders with whatever resolved.
func (v *DiscoverView) Load(ctx context.Context) error {
	gen := v.generation.Add(1)
	requestID := ulid.Make().String()

	v.mu.Lock()
	v.state.Loading = true
	v.state.RequestID = requestID
	v.mu.Unlock()

	events, err := v.ledger.QueryEvents(ctx, ledger.TrackPublishedEventType(v.packageID), discoverLimit, true)
	if err != nil {
		v.finish(gen, nil)
		return err
	}

	// Fan out per-track fetches; each slot is written by exactly one task
	items := make([]*DiscoverItem, len(events))
	group := v.pool.NewGroup()
	for i, event := range events {
		if event.TrackID == "" {
			continue
		}
		group.Submit(func() {
			item, err := v.loadItem(ctx, event.TrackID)
			if err != nil {
				logger.WarnCtx(ctx, "dropping track from discover page",
					zap.String("request_id", requestID),
					zap.String("track", event.TrackID),
					zap.Error(err))
				return
			}
			items[i] = item
		})
	}
	if err := group.Wait(); err != nil {
		logger.WarnCtx(ctx, "discover fan-out incomplete",
			zap.String("request_id", requestID), zap.Error(err))
	}

	resolved := make([]DiscoverItem, 0, len(items))
	for _, item := range items {
		if item != nil {
			resolved = append(resolved, *item)
		}
	}

	v.finish(gen, resolved)
	return nil
}

func (v *DiscoverView) loadItem(ctx context.Context, trackID string) (*DiscoverItem, error) {
	record, err := v.ledger.GetObject(ctx, trackID)
	if err != nil {
		return nil, err
	}
	track, err := ledger.ParseTrack(record)
	if err != nil {
		return nil, err
	}
	return &DiscoverItem{
		Track:    *track,
		Metadata: v.metadata.Fetch(ctx, track.MetadataURI),
	}, nil
}

// finish applies results only when gen is still the newest load
func (v *DiscoverView) finish(gen uint64, items []DiscoverItem) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.generation.Load() != gen {
		return
	}
	v.state.Loading = false
	if items != nil {
		v.state.Items = items
	}
}

// Snapshot returns the current page state
func (v *DiscoverView) Snapshot() DiscoverState {
	v.mu.Lock()
	defer v.mu.Unlock()
	state := v.state
	state.Items = append([]DiscoverItem(nil), v.state.Items...)
	return state
}
