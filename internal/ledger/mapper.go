package ledger

import (
	"fmt"
	"strconv"
	"time"

	"github.com/melodify-live/melodify-client/internal/domain"
)

// Struct type tags for the marketplace contract objects
const (
	trackTypeSuffix         = "::track::Track"
	listenCapTypeSuffix     = "::listen::ListenCap"
	stakePositionTypeSuffix = "::stake::StakePosition"
	publishedEventSuffix    = "::track::TrackPublished"
)

// TrackType returns the full struct tag for track records
func TrackType(packageID string) string { return packageID + trackTypeSuffix }

// ListenCapType returns the full struct tag for listen capabilities
func ListenCapType(packageID string) string { return packageID + listenCapTypeSuffix }

// StakePositionType returns the full struct tag for stake positions
func StakePositionType(packageID string) string { return packageID + stakePositionTypeSuffix }

// TrackPublishedEventType returns the full event tag for publish events
func TrackPublishedEventType(packageID string) string { return packageID + publishedEventSuffix }

// toRawRecord lifts a node object payload into a RawRecord
func toRawRecord(resp *objectResponse) (*RawRecord, error) {
	if resp.Data == nil || resp.Data.Content == nil {
		return nil, fmt.Errorf("%w: object has no content", domain.ErrMalformedMetadata)
	}

	return &RawRecord{
		ObjectID: resp.Data.ObjectID,
		Type:     resp.Data.Content.Type,
		Version:  resp.Data.Version,
		Owner:    ownerAddress(resp.Data.Owner),
		Fields:   resp.Data.Content.Fields,
	}, nil
}

// ParseTrack decodes a raw record into a typed track view model. Decoding is
// strict: a missing or ill-typed required field fails the whole record rather
// than producing a partially populated struct.
func ParseTrack(record *RawRecord) (*domain.Track, error) {
	creator, err := fieldString(record, "creator")
	if err != nil {
		return nil, err
	}
	audioCID, err := fieldString(record, "audio_cid")
	if err != nil {
		return nil, err
	}
	metadataURI, err := fieldString(record, "metadata_uri")
	if err != nil {
		return nil, err
	}
	totalListens, err := fieldUint(record, "total_listens")
	if err != nil {
		return nil, err
	}
	revenuePool, err := fieldUint(record, "revenue_pool")
	if err != nil {
		return nil, err
	}
	royaltyBPS, err := fieldUint(record, "royalty_bps")
	if err != nil {
		return nil, err
	}
	if royaltyBPS > domain.MaxBasisPoints {
		return nil, fmt.Errorf("%w: royalty %d exceeds %d basis points", domain.ErrMalformedMetadata, royaltyBPS, domain.MaxBasisPoints)
	}
	status, err := fieldUint(record, "status")
	if err != nil {
		return nil, err
	}
	if !domain.TrackStatus(status).Valid() {
		return nil, fmt.Errorf("%w: unknown track status %d", domain.ErrMalformedMetadata, status)
	}

	track := &domain.Track{
		ID:           record.ObjectID,
		Creator:      creator,
		AudioCID:     audioCID,
		PreviewCID:   optionalString(record, "preview_cid"),
		MetadataURI:  metadataURI,
		CoverURI:     optionalString(record, "cover_uri"),
		TotalListens: totalListens,
		RevenuePool:  revenuePool,
		RoyaltyBPS:   uint16(royaltyBPS),
		Status:       domain.TrackStatus(status),
		Version:      record.Version,
	}
	if parent := optionalString(record, "parent"); parent != "" {
		track.ParentID = &parent
	}

	return track, nil
}

// ParseListenCapability decodes a raw record into a typed capability
func ParseListenCapability(record *RawRecord) (*domain.ListenCapability, error) {
	trackID, err := fieldString(record, "track_id")
	if err != nil {
		return nil, err
	}
	holder, err := fieldString(record, "listener")
	if err != nil {
		return nil, err
	}
	createdAt, err := fieldUint(record, "created_at")
	if err != nil {
		return nil, err
	}
	expiresAt, err := fieldUint(record, "expires_at")
	if err != nil {
		return nil, err
	}

	return &domain.ListenCapability{
		ID:        record.ObjectID,
		TrackID:   trackID,
		Holder:    holder,
		CreatedAt: time.UnixMilli(int64(createdAt)),
		ExpiresAt: time.UnixMilli(int64(expiresAt)),
		Version:   record.Version,
	}, nil
}

// ParseStakePosition decodes a raw record into a typed stake position
func ParseStakePosition(record *RawRecord) (*domain.StakePosition, error) {
	trackID, err := fieldString(record, "track_id")
	if err != nil {
		return nil, err
	}
	staker, err := fieldString(record, "staker")
	if err != nil {
		return nil, err
	}
	amount, err := fieldUint(record, "amount")
	if err != nil {
		return nil, err
	}
	stakedAtEpoch, err := fieldUint(record, "staked_at_epoch")
	if err != nil {
		return nil, err
	}
	unlockEpoch, err := fieldUint(record, "unlock_epoch")
	if err != nil {
		return nil, err
	}
	stakedAtMs, err := fieldUint(record, "staked_at_ms")
	if err != nil {
		return nil, err
	}

	return &domain.StakePosition{
		ID:            record.ObjectID,
		TrackID:       trackID,
		Staker:        staker,
		Amount:        amount,
		StakedAtEpoch: stakedAtEpoch,
		UnlockEpoch:   unlockEpoch,
		StakedAt:      time.UnixMilli(int64(stakedAtMs)),
	}, nil
}

// fieldString reads a required string field
func fieldString(record *RawRecord, name string) (string, error) {
	value, ok := record.Fields[name]
	if !ok {
		return "", fmt.Errorf("%w: missing field %q", domain.ErrMalformedMetadata, name)
	}
	s, ok := value.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("%w: field %q is not a string", domain.ErrMalformedMetadata, name)
	}
	return s, nil
}

// optionalString reads a string field that may be absent or null
func optionalString(record *RawRecord, name string) string {
	if s, ok := record.Fields[name].(string); ok {
		return s
	}
	// Option-typed fields arrive as nested {fields: {id: ...}} wrappers
	if m, ok := record.Fields[name].(map[string]interface{}); ok {
		if inner, ok := m["fields"].(map[string]interface{}); ok {
			if id, ok := inner["id"].(string); ok {
				return id
			}
		}
	}
	return ""
}

// fieldUint reads a required unsigned integer field. The node serializes
// u64 values as decimal strings; smaller integers arrive as JSON numbers.
func fieldUint(record *RawRecord, name string) (uint64, error) {
	value, ok := record.Fields[name]
	if !ok {
		return 0, fmt.Errorf("%w: missing field %q", domain.ErrMalformedMetadata, name)
	}

	switch v := value.(type) {
	case string:
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: field %q is not numeric: %v", domain.ErrMalformedMetadata, name, err)
		}
		return n, nil
	case float64:
		if v < 0 {
			return 0, fmt.Errorf("%w: field %q is negative", domain.ErrMalformedMetadata, name)
		}
		return uint64(v), nil
	default:
		return 0, fmt.Errorf("%w: field %q has unexpected type %T", domain.ErrMalformedMetadata, name, value)
	}
}
