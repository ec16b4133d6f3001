package views

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/alitto/pond/v2"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/melodify-live/melodify-client/internal/domain"
	"github.com/melodify-live/melodify-client/internal/ledger"
	"github.com/melodify-live/melodify-client/internal/logger"
	"github.com/melodify-live/melodify-client/internal/txbuilder"
	"github.com/melodify-live/melodify-client/internal/wallet"
)

// ProfileState is a renderable snapshot of the caller's holdings
type ProfileState struct {
	Address      string
	Tracks       []domain.Track
	Capabilities []domain.ListenCapability
	Positions    []domain.StakePosition
	Loading      bool
	RequestID    string
}

// ProfileView loads everything the signer owns: created tracks, listen
// capabilities, stake positions
type ProfileView struct {
	ledger    ledger.Client
	builder   *txbuilder.Builder
	signer    wallet.Signer
	pool      pond.Pool
	packageID string

	mu         sync.Mutex
	state      ProfileState
	generation atomic.Uint64
}

// NewProfileView creates the profile page state
func NewProfileView(ledgerClient ledger.Client, builder *txbuilder.Builder, signer wallet.Signer, pool pond.Pool, packageID string) *ProfileView {
	return &ProfileView{
		ledger:    ledgerClient,
		builder:   builder,
		signer:    signer,
		pool:      pool,
		packageID: packageID,
	}
}

// Load fetches the three owned-object sets concurrently. Each set fails
// independently; a set that cannot load renders empty while the others show.
func (v *ProfileView) Load(ctx context.Context) error {
	gen := v.generation.Add(1)
	requestID := ulid.Make().String()
	owner := v.signer.Address()

	v.mu.Lock()
	v.state.Loading = true
	v.state.RequestID = requestID
	v.state.Address = owner
	v.mu.Unlock()

	var (
		tracks       []domain.Track
		capabilities []domain.ListenCapability
		positions    []domain.StakePosition
	)

	group := v.pool.NewGroup()
	group.Submit(func() {
		records, err := v.ledger.GetOwnedObjects(ctx, owner, ledger.TrackType(v.packageID))
		if err != nil {
			logger.WarnCtx(ctx, "owned track lookup failed", zap.Error(err))
			return
		}
		tracks = make([]domain.Track, 0, len(records))
		for i := range records {
			track, err := ledger.ParseTrack(&records[i])
			if err != nil {
				continue
			}
			tracks = append(tracks, *track)
		}
	})
	group.Submit(func() {
		records, err := v.ledger.GetOwnedObjects(ctx, owner, ledger.ListenCapType(v.packageID))
		if err != nil {
			logger.WarnCtx(ctx, "owned capability lookup failed", zap.Error(err))
			return
		}
		capabilities = make([]domain.ListenCapability, 0, len(records))
		for i := range records {
			cap, err := ledger.ParseListenCapability(&records[i])
			if err != nil {
				continue
			}
			capabilities = append(capabilities, *cap)
		}
	})
	group.Submit(func() {
		records, err := v.ledger.GetOwnedObjects(ctx, owner, ledger.StakePositionType(v.packageID))
		if err != nil {
			logger.WarnCtx(ctx, "owned position lookup failed", zap.Error(err))
			return
		}
		positions = make([]domain.StakePosition, 0, len(records))
		for i := range records {
			position, err := ledger.ParseStakePosition(&records[i])
			if err != nil {
				continue
			}
			positions = append(positions, *position)
		}
	})
	if err := group.Wait(); err != nil {
		logger.WarnCtx(ctx, "profile fan-out incomplete",
			zap.String("request_id", requestID), zap.Error(err))
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.generation.Load() != gen {
		return nil
	}
	v.state.Loading = false
	v.state.Tracks = tracks
	v.state.Capabilities = capabilities
	v.state.Positions = positions
	return nil
}

// WithdrawRevenue withdraws accrued revenue from one of the caller's tracks
func (v *ProfileView) WithdrawRevenue(ctx context.Context, trackID string, amountMist int64) error {
	desc, err := v.builder.BuildWithdrawRevenue(trackID, amountMist)
	if err != nil {
		return err
	}

	receipt, err := v.signer.SignAndSubmit(ctx, desc)
	if err != nil {
		return err
	}
	if !receipt.Success() {
		return fmt.Errorf("withdrawal rejected: %s", receipt.Error)
	}

	logger.InfoCtx(ctx, "revenue withdrawal settled",
		zap.String("track", trackID),
		zap.Int64("amount_mist", amountMist),
		zap.String("digest", receipt.Digest))
	return nil
}

// Snapshot returns the current page state
func (v *ProfileView) Snapshot() ProfileState {
	v.mu.Lock()
	defer v.mu.Unlock()
	state := v.state
	state.Tracks = append([]domain.Track(nil), v.state.Tracks...)
	state.Capabilities = append([]domain.ListenCapability(nil), v.state.Capabilities...)
	state.Positions = append([]domain.StakePosition(nil), v.state.Positions...)
	return state
}
