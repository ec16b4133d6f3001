package txbuilder

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/melodify-live/melodify-client/internal/domain"
)

// SenderPlaceholder marks a transfer recipient to be substituted with the
// signer's address at signing time.
const SenderPlaceholder = "{{sender}}"

// Config holds the deployed contract and shared-object addresses the
// builders bind their move calls to.
type Config struct {
	PackageID       string
	TrackRegistryID string
	ListenConfigID  string
	ParentPoolID    string
	TreasuryID      string
	StakeRegistryID string
	ClockID         string
}

// CreateTrackParams are the inputs for a new draft track record
type CreateTrackParams struct {
	AudioCID    string
	PreviewCID  string
	MetadataURI string
	CoverURI    string
	RoyaltyBPS  uint16
	ParentID    string // empty for original tracks
}

// Builder constructs unsigned transaction descriptors for every mutating
// intent. All builders are pure: deterministic given their inputs, no I/O.
// Signing and submission belong to the wallet integration.
type Builder struct {
	cfg Config
}

// NewBuilder creates a builder bound to the given contract addresses
func NewBuilder(cfg Config) *Builder {
	if cfg.ClockID == "" {
		cfg.ClockID = domain.ClockObjectID
	}
	return &Builder{cfg: cfg}
}

// BuildCreateTrack builds the descriptor minting a draft track record.
// The returned handle predicts the track reference and must be reconciled
// against the receipt after submission.
func (b *Builder) BuildCreateTrack(p CreateTrackParams) (*TxDescriptor, Handle, error) {
	if p.AudioCID == "" || p.MetadataURI == "" {
		return nil, Handle{}, fmt.Errorf("%w: missing content id or metadata uri", domain.ErrInvalidAmount)
	}
	if p.RoyaltyBPS > domain.MaxBasisPoints {
		return nil, Handle{}, fmt.Errorf("%w: royalty %d exceeds %d basis points", domain.ErrInvalidAmount, p.RoyaltyBPS, domain.MaxBasisPoints)
	}

	var parent interface{}
	if p.ParentID != "" {
		parent = p.ParentID
	}

	desc := &TxDescriptor{
		Target: b.target("track", "create_track"),
		Args: []Argument{
			Pure(p.AudioCID),
			Pure(p.PreviewCID),
			Pure(p.MetadataURI),
			Pure(p.CoverURI),
			Pure(p.RoyaltyBPS),
			Pure(parent),
			Object(b.cfg.TrackRegistryID),
		},
		TransferResultTo: SenderPlaceholder,
	}
	desc.Nonce = nonce(desc)

	return desc, predictedHandle(HandleKindTrack, desc), nil
}

// BuildPublish builds the descriptor marking the draft-to-published transition.
// The transition itself is enforced on-ledger; callers must re-query the track
// rather than assume it succeeded.
func (b *Builder) BuildPublish(trackID string) (*TxDescriptor, error) {
	if trackID == "" {
		return nil, fmt.Errorf("%w: empty track id", domain.ErrInvalidAmount)
	}

	desc := &TxDescriptor{
		Target: b.target("track", "publish"),
		Args:   []Argument{Object(trackID)},
	}
	desc.Nonce = nonce(desc)

	return desc, nil
}

// BuildPayToListen builds the descriptor paying the per-listen fee. The
// payment is split from the signer's gas balance. The predicted capability
// handle lets the UI reference the capability optimistically; the id is not
// stable across build/submit and must be reconciled against the receipt.
func (b *Builder) BuildPayToListen(trackID string, amountMist int64) (*TxDescriptor, Handle, error) {
	if trackID == "" {
		return nil, Handle{}, fmt.Errorf("%w: empty track id", domain.ErrInvalidAmount)
	}
	if amountMist <= 0 {
		return nil, Handle{}, fmt.Errorf("%w: listen payment must be positive, got %d", domain.ErrInvalidAmount, amountMist)
	}

	desc := &TxDescriptor{
		Target:       b.target("listen", "listen"),
		GasSplitMist: uint64(amountMist),
		Args: []Argument{
			Object(trackID),
			GasCoin(),
			Object(b.cfg.ListenConfigID),
			Object(b.cfg.ParentPoolID),
			Object(b.cfg.TreasuryID),
			Object(b.cfg.ClockID),
		},
		TransferResultTo: SenderPlaceholder,
	}
	desc.Nonce = nonce(desc)

	return desc, predictedHandle(HandleKindCapability, desc), nil
}

// BuildApproveAccess builds the read-only approval call used as a dry-run
// simulation against the authorization entry point, with the capability as
// proof. It is never submitted.
func (b *Builder) BuildApproveAccess(capabilityID string) (*TxDescriptor, error) {
	if capabilityID == "" {
		return nil, fmt.Errorf("%w: empty capability id", domain.ErrInvalidAmount)
	}

	desc := &TxDescriptor{
		Target: b.target("listen", "approve"),
		Args: []Argument{
			Pure([]byte{}), // key id, empty for a plain access check
			Object(capabilityID),
			Object(b.cfg.ClockID),
		},
	}
	desc.Nonce = nonce(desc)

	return desc, nil
}

// BuildStake builds the descriptor staking on a track's popularity
func (b *Builder) BuildStake(trackID string, amountMist int64, lockEpochs uint64) (*TxDescriptor, Handle, error) {
	if trackID == "" {
		return nil, Handle{}, fmt.Errorf("%w: empty track id", domain.ErrInvalidAmount)
	}
	if amountMist <= 0 {
		return nil, Handle{}, fmt.Errorf("%w: stake amount must be positive, got %d", domain.ErrInvalidAmount, amountMist)
	}
	if lockEpochs == 0 {
		return nil, Handle{}, fmt.Errorf("%w: lock period must be at least one epoch", domain.ErrInvalidAmount)
	}

	desc := &TxDescriptor{
		Target:       b.target("stake", "stake"),
		GasSplitMist: uint64(amountMist),
		Args: []Argument{
			Object(trackID),
			GasCoin(),
			Pure(lockEpochs),
			Object(b.cfg.StakeRegistryID),
			Object(b.cfg.ClockID),
		},
		TransferResultTo: SenderPlaceholder,
	}
	desc.Nonce = nonce(desc)

	return desc, predictedHandle(HandleKindPosition, desc), nil
}

// BuildUnstake builds the descriptor releasing a stake position
func (b *Builder) BuildUnstake(positionID string) (*TxDescriptor, error) {
	if positionID == "" {
		return nil, fmt.Errorf("%w: empty position id", domain.ErrInvalidAmount)
	}

	desc := &TxDescriptor{
		Target: b.target("stake", "unstake"),
		Args: []Argument{
			Object(positionID),
			Object(b.cfg.StakeRegistryID),
		},
		TransferResultTo: SenderPlaceholder,
	}
	desc.Nonce = nonce(desc)

	return desc, nil
}

// BuildWithdrawRevenue builds the descriptor withdrawing accrued revenue
// from a track's pool to the signer
func (b *Builder) BuildWithdrawRevenue(trackID string, amountMist int64) (*TxDescriptor, error) {
	if trackID == "" {
		return nil, fmt.Errorf("%w: empty track id", domain.ErrInvalidAmount)
	}
	if amountMist <= 0 {
		return nil, fmt.Errorf("%w: withdrawal must be positive, got %d", domain.ErrInvalidAmount, amountMist)
	}

	desc := &TxDescriptor{
		Target: b.target("track", "withdraw_revenue"),
		Args: []Argument{
			Object(trackID),
			Pure(uint64(amountMist)),
		},
		TransferResultTo: SenderPlaceholder,
	}
	desc.Nonce = nonce(desc)

	return desc, nil
}

func (b *Builder) target(module, function string) string {
	return fmt.Sprintf("%s::%s::%s", b.cfg.PackageID, module, function)
}

// nonce derives a stable identifier from the descriptor contents, keeping
// builders deterministic
func nonce(desc *TxDescriptor) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(desc.canonical())).String()
}
