package views

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/alitto/pond/v2"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/melodify-live/melodify-client/internal/domain"
	"github.com/melodify-live/melodify-client/internal/ledger"
	"github.com/melodify-live/melodify-client/internal/logger"
	"github.com/melodify-live/melodify-client/internal/metadata"
	"github.com/melodify-live/melodify-client/internal/txbuilder"
	"github.com/melodify-live/melodify-client/internal/wallet"
)

// stakeBoardLimit caps how many published tracks the stake board considers
const stakeBoardLimit = 20

// StakeBoardEntry is one track on the stake board, ordered by listen count
type StakeBoardEntry struct {
	Track    domain.Track
	Metadata *domain.TrackMetadata
}

// StakeState is a renderable snapshot of the staking page
type StakeState struct {
	Board     []StakeBoardEntry
	Positions []domain.StakePosition
	Loading   bool
	RequestID string
}

// StakeView drives the popularity-staking page: a board of published tracks
// plus the caller's open positions
type StakeView struct {
	ledger    ledger.Client
	metadata  metadata.Resolver
	builder   *txbuilder.Builder
	signer    wallet.Signer
	pool      pond.Pool
	packageID string

	mu         sync.Mutex
	state      StakeState
	generation atomic.Uint64
}

// NewStakeView creates the staking page state
func NewStakeView(
	ledgerClient ledger.Client,
	metadataResolver metadata.Resolver,
	builder *txbuilder.Builder,
	signer wallet.Signer,
	pool pond.Pool,
	packageID string,
) *StakeView {
	return &StakeView{
		ledger:    ledgerClient,
		metadata:  metadataResolver,
		builder:   builder,
		signer:    signer,
		pool:      pool,
		packageID: packageID,
	}
}

// Load builds the stake board from recent publish events and lists the
// caller's open positions. Per-track failures drop the entry; the board still
// renders.
func (v *StakeView) Load(ctx context.Context) error {
	gen := v.generation.Add(1)
	requestID := ulid.Make().String()

	v.mu.Lock()
	v.state.Loading = true
	v.state.RequestID = requestID
	v.mu.Unlock()

	events, err := v.ledger.QueryEvents(ctx, ledger.TrackPublishedEventType(v.packageID), stakeBoardLimit, true)
	if err != nil {
		v.finish(gen, nil, nil)
		return err
	}

	entries := make([]*StakeBoardEntry, len(events))
	var positions []domain.StakePosition
	group := v.pool.NewGroup()
	for i, event := range events {
		if event.TrackID == "" {
			continue
		}
		group.Submit(func() {
			record, err := v.ledger.GetObject(ctx, event.TrackID)
			if err != nil {
				logger.WarnCtx(ctx, "dropping track from stake board",
					zap.String("track", event.TrackID), zap.Error(err))
				return
			}
			track, err := ledger.ParseTrack(record)
			if err != nil {
				logger.WarnCtx(ctx, "dropping undecodable track from stake board",
					zap.String("track", event.TrackID), zap.Error(err))
				return
			}
			entries[i] = &StakeBoardEntry{
				Track:    *track,
				Metadata: v.metadata.Fetch(ctx, track.MetadataURI),
			}
		})
	}
	group.Submit(func() {
		owned, err := v.ownedPositions(ctx)
		if err != nil {
			logger.WarnCtx(ctx, "stake position lookup failed", zap.Error(err))
			return
		}
		positions = owned
	})
	if err := group.Wait(); err != nil {
		logger.WarnCtx(ctx, "stake board fan-out incomplete",
			zap.String("request_id", requestID), zap.Error(err))
	}

	board := make([]StakeBoardEntry, 0, len(entries))
	for _, entry := range entries {
		if entry != nil {
			board = append(board, *entry)
		}
	}
	sort.SliceStable(board, func(i, j int) bool {
		return board[i].Track.TotalListens > board[j].Track.TotalListens
	})

	v.finish(gen, board, positions)
	return nil
}

func (v *StakeView) ownedPositions(ctx context.Context) ([]domain.StakePosition, error) {
	records, err := v.ledger.GetOwnedObjects(ctx, v.signer.Address(), ledger.StakePositionType(v.packageID))
	if err != nil {
		return nil, err
	}
	positions := make([]domain.StakePosition, 0, len(records))
	for i := range records {
		position, err := ledger.ParseStakePosition(&records[i])
		if err != nil {
			continue
		}
		positions = append(positions, *position)
	}
	return positions, nil
}

// Stake locks funds on a track's popularity and returns the confirmed
// position handle, reconciled against the settled receipt
func (v *StakeView) Stake(ctx context.Context, trackID string, amountMist int64, lockEpochs uint64) (txbuilder.Handle, error) {
	desc, predicted, err := v.builder.BuildStake(trackID, amountMist, lockEpochs)
	if err != nil {
		return txbuilder.Handle{}, err
	}

	receipt, err := v.signer.SignAndSubmit(ctx, desc)
	if err != nil {
		return txbuilder.Handle{}, err
	}
	if !receipt.Success() {
		return txbuilder.Handle{}, fmt.Errorf("stake rejected: %s", receipt.Error)
	}

	confirmed, err := predicted.Reconcile(receipt.CreatedObjects(), v.signer.Address())
	if err != nil {
		return txbuilder.Handle{}, fmt.Errorf("settled but position not found in receipt %s: %w", receipt.Digest, err)
	}

	logger.InfoCtx(ctx, "stake settled",
		zap.String("track", trackID),
		zap.String("position", confirmed.ID),
		zap.String("digest", receipt.Digest))
	return confirmed, nil
}

// Unstake releases a stake position. The ledger rejects positions still
// inside their lock window; the client surfaces that verbatim.
func (v *StakeView) Unstake(ctx context.Context, positionID string) error {
	desc, err := v.builder.BuildUnstake(positionID)
	if err != nil {
		return err
	}

	receipt, err := v.signer.SignAndSubmit(ctx, desc)
	if err != nil {
		return err
	}
	if !receipt.Success() {
		return fmt.Errorf("unstake rejected: %s", receipt.Error)
	}

	logger.InfoCtx(ctx, "unstake settled",
		zap.String("position", positionID),
		zap.String("digest", receipt.Digest))
	return nil
}

func (v *StakeView) finish(gen uint64, board []StakeBoardEntry, positions []domain.StakePosition) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.generation.Load() != gen {
		return
	}
	v.state.Loading = false
	if board != nil {
		v.state.Board = board
	}
	if positions != nil {
		v.state.Positions = positions
	}
}

// Snapshot returns the current page state
func (v *StakeView) Snapshot() StakeState {
	v.mu.Lock()
	defer v.mu.Unlock()
	state := v.state
	state.Board = append([]StakeBoardEntry(nil), v.state.Board...)
	state.Positions = append([]domain.StakePosition(nil), v.state.Positions...)
	return state
}
