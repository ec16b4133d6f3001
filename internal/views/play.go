package views

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/melodify-live/melodify-client/internal/access"
	"github.com/melodify-live/melodify-client/internal/domain"
	"github.com/melodify-live/melodify-client/internal/ledger"
	"github.com/melodify-live/melodify-client/internal/logger"
	"github.com/melodify-live/melodify-client/internal/metadata"
	"github.com/melodify-live/melodify-client/internal/player"
	"github.com/melodify-live/melodify-client/internal/storage"
	"github.com/melodify-live/melodify-client/internal/txbuilder"
	"github.com/melodify-live/melodify-client/internal/wallet"
)

// PlayState is a renderable snapshot of the play page. StreamURL is set only
// when access resolved to a grant; otherwise PreviewURL is the best the page
// can offer.
type PlayState struct {
	Track      domain.Track
	Metadata   *domain.TrackMetadata
	Access     access.Decision
	StreamURL  string
	PreviewURL string
	Loading    bool
	RequestID  string
}

// PlayView drives a single track's page: load, pay-to-listen, playback
type PlayView struct {
	ledger   ledger.Client
	metadata metadata.Resolver
	access   access.Resolver
	builder  *txbuilder.Builder
	signer   wallet.Signer
	gateway  storage.Gateway
	player   *player.Store

	mu         sync.Mutex
	state      PlayState
	generation atomic.Uint64
}

// NewPlayView creates the play page state
func NewPlayView(
	ledgerClient ledger.Client,
	metadataResolver metadata.Resolver,
	accessResolver access.Resolver,
	builder *txbuilder.Builder,
	signer wallet.Signer,
	gateway storage.Gateway,
	playerStore *player.Store,
) *PlayView {
	return &PlayView{
		ledger:   ledgerClient,
		metadata: metadataResolver,
		access:   accessResolver,
		builder:  builder,
		signer:   signer,
		gateway:  gateway,
		player:   playerStore,
	}
}

// Load fetches the track, its metadata and the caller's access decision.
// An access-resolution failure is a denial on the rendered page, not a load
// failure; the page still shows the track with a retry affordance.
func (v *PlayView) Load(ctx context.Context, trackID string) error {
	gen := v.generation.Add(1)
	requestID := ulid.Make().String()

	v.mu.Lock()
	v.state.Loading = true
	v.state.RequestID = requestID
	v.mu.Unlock()

	state, err := v.load(ctx, trackID, requestID)
	if err != nil {
		v.apply(gen, PlayState{Loading: false, RequestID: requestID})
		return err
	}

	v.apply(gen, *state)
	return nil
}

func (v *PlayView) load(ctx context.Context, trackID, requestID string) (*PlayState, error) {
	record, err := v.ledger.GetObject(ctx, trackID)
	if err != nil {
		return nil, err
	}
	track, err := ledger.ParseTrack(record)
	if err != nil {
		return nil, err
	}

	state := &PlayState{
		Track:     *track,
		Metadata:  v.metadata.Fetch(ctx, track.MetadataURI),
		RequestID: requestID,
	}

	decision, err := v.access.ResolveAccess(ctx, v.signer.Address(), trackID)
	if err != nil {
		logger.WarnCtx(ctx, "access resolution failed, rendering as denied",
			zap.String("track", trackID), zap.Error(err))
	}
	state.Access = decision

	if track.PreviewCID != "" {
		if url, err := v.gateway.ResolveURL(ctx, track.PreviewCID); err == nil {
			state.PreviewURL = url
		}
	}
	if decision.Granted {
		url, err := v.gateway.ResolveURL(ctx, track.AudioCID)
		if err != nil {
			return nil, err
		}
		state.StreamURL = url
	}

	return state, nil
}

// PayToListen pays the per-listen fee and returns the confirmed capability
// handle. The flow never trusts the predicted id: it reconciles against the
// settled receipt, then re-resolves access and re-fetches the track so the
// page reflects what the ledger actually did.
func (v *PlayView) PayToListen(ctx context.Context, trackID string, amountMist int64) (txbuilder.Handle, error) {
	desc, predicted, err := v.builder.BuildPayToListen(trackID, amountMist)
	if err != nil {
		return txbuilder.Handle{}, err
	}

	receipt, err := v.signer.SignAndSubmit(ctx, desc)
	if err != nil {
		return txbuilder.Handle{}, err
	}
	if !receipt.Success() {
		return txbuilder.Handle{}, fmt.Errorf("listen payment rejected: %s", receipt.Error)
	}

	confirmed, err := predicted.Reconcile(receipt.CreatedObjects(), v.signer.Address())
	if err != nil {
		return txbuilder.Handle{}, fmt.Errorf("settled but capability not found in receipt %s: %w", receipt.Digest, err)
	}

	logger.InfoCtx(ctx, "listen payment settled",
		zap.String("track", trackID),
		zap.String("capability", confirmed.ID),
		zap.String("digest", receipt.Digest))

	if err := v.Load(ctx, trackID); err != nil {
		logger.WarnCtx(ctx, "reload after payment failed",
			zap.String("track", trackID), zap.Error(err))
	}

	return confirmed, nil
}

// Play loads the current track into the shared player when access is granted
func (v *PlayView) Play() error {
	v.mu.Lock()
	state := v.state
	v.mu.Unlock()

	if !state.Access.Granted {
		return fmt.Errorf("%w: track %s", domain.ErrAccessDenied, state.Track.ID)
	}

	v.player.Set(player.TrackRef{
		ID:       state.Track.ID,
		Title:    state.Metadata.Title,
		Artist:   state.Metadata.Artist,
		AudioCID: state.Track.AudioCID,
	})
	return nil
}

func (v *PlayView) apply(gen uint64, state PlayState) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.generation.Load() != gen {
		return
	}
	v.state = state
}

// Snapshot returns the current page state
func (v *PlayView) Snapshot() PlayState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}
