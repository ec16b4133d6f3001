package domain

import "time"

// Network represents the ledger network selector
type Network string

const (
	NetworkMainnet Network = "mainnet"
	NetworkTestnet Network = "testnet"
	NetworkDevnet  Network = "devnet"
)

// IsValidNetwork checks if a network selector is valid
func IsValidNetwork(n Network) bool {
	return n == NetworkMainnet || n == NetworkTestnet || n == NetworkDevnet
}

// TrackStatus represents the lifecycle state of a track record
type TrackStatus uint8

const (
	TrackStatusDraft     TrackStatus = 0
	TrackStatusPublished TrackStatus = 1
	TrackStatusFrozen    TrackStatus = 2
)

// Valid checks if the status is a known value
func (s TrackStatus) Valid() bool {
	return s <= TrackStatusFrozen
}

// CanTransitionTo reports whether the ledger could move the track from s to
// next. Transitions are monotonic Draft -> Published -> Frozen; the client
// only uses this to decide which actions to offer, the ledger enforces it.
func (s TrackStatus) CanTransitionTo(next TrackStatus) bool {
	return next.Valid() && next == s+1
}

func (s TrackStatus) String() string {
	switch s {
	case TrackStatusDraft:
		return "draft"
	case TrackStatusPublished:
		return "published"
	case TrackStatusFrozen:
		return "frozen"
	default:
		return "unknown"
	}
}

// Track is the client-side view of an on-ledger track record.
// The client never mutates it; it only re-reads after transactions settle.
type Track struct {
	ID           string
	Creator      string
	AudioCID     string
	PreviewCID   string
	MetadataURI  string
	CoverURI     string
	ParentID     *string
	TotalListens uint64
	RevenuePool  uint64 // minor units (MIST)
	RoyaltyBPS   uint16
	Status       TrackStatus
	Version      string
}

// ListenCapability is a time-bounded proof of listen entitlement for one track
type ListenCapability struct {
	ID        string
	TrackID   string
	Holder    string
	CreatedAt time.Time
	ExpiresAt time.Time
	Version   string
}

// Expired reports whether the capability has lapsed at the given instant
func (c *ListenCapability) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// Grants reports whether the capability covers trackID and is unexpired at now.
// Expiry here is the local check only; playback additionally requires the
// on-ledger approval simulation to pass.
func (c *ListenCapability) Grants(trackID string, now time.Time) bool {
	return c.TrackID == trackID && !c.Expired(now)
}

// StakePosition is the client-side view of a stake on a track's popularity.
// Settlement (won/lost) is computed externally; the client only displays it.
type StakePosition struct {
	ID            string
	TrackID       string
	Staker        string
	Amount        uint64 // minor units (MIST)
	StakedAtEpoch uint64
	UnlockEpoch   uint64
	StakedAt      time.Time
}

// Unlocked reports whether the position can be unstaked at the given epoch
func (p *StakePosition) Unlocked(currentEpoch uint64) bool {
	return currentEpoch >= p.UnlockEpoch
}

// Event is a normalized ledger event
type Event struct {
	TxDigest  string
	Type      string
	TrackID   string
	Sender    string
	Timestamp time.Time
}
