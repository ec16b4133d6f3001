package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melodify-live/melodify-client/internal/domain"
	"github.com/melodify-live/melodify-client/internal/ledger"
)

func TestTypeTags(t *testing.T) {
	assert.Equal(t, "0xpkg::track::Track", ledger.TrackType("0xpkg"))
	assert.Equal(t, "0xpkg::listen::ListenCap", ledger.ListenCapType("0xpkg"))
	assert.Equal(t, "0xpkg::stake::StakePosition", ledger.StakePositionType("0xpkg"))
	assert.Equal(t, "0xpkg::track::TrackPublished", ledger.TrackPublishedEventType("0xpkg"))
}

func validTrackFields() map[string]interface{} {
	return map[string]interface{}{
		"creator":       "0xcreator",
		"audio_cid":     "blob-audio",
		"preview_cid":   "blob-preview",
		"metadata_uri":  "https://agg.example/v1/blob-meta",
		"cover_uri":     "https://agg.example/v1/blob-cover",
		"total_listens": "42",
		"revenue_pool":  "5000000",
		"royalty_bps":   float64(500),
		"status":        float64(1),
	}
}

func TestParseTrack(t *testing.T) {
	record := &ledger.RawRecord{
		ObjectID: "0xtrack",
		Type:     ledger.TrackType("0xpkg"),
		Version:  "7",
		Owner:    "0xcreator",
		Fields:   validTrackFields(),
	}

	track, err := ledger.ParseTrack(record)
	require.NoError(t, err)

	assert.Equal(t, "0xtrack", track.ID)
	assert.Equal(t, "0xcreator", track.Creator)
	assert.Equal(t, "blob-audio", track.AudioCID)
	assert.Equal(t, "blob-preview", track.PreviewCID)
	assert.Equal(t, uint64(42), track.TotalListens)
	assert.Equal(t, uint64(5_000_000), track.RevenuePool)
	assert.Equal(t, uint16(500), track.RoyaltyBPS)
	assert.Equal(t, domain.TrackStatusPublished, track.Status)
	assert.Equal(t, "7", track.Version)
	assert.Nil(t, track.ParentID)
}

func TestParseTrack_StrictDecoding(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(fields map[string]interface{})
	}{
		{
			name:   "missing creator",
			mutate: func(f map[string]interface{}) { delete(f, "creator") },
		},
		{
			name:   "empty audio cid",
			mutate: func(f map[string]interface{}) { f["audio_cid"] = "" },
		},
		{
			name:   "non-numeric listen count",
			mutate: func(f map[string]interface{}) { f["total_listens"] = "many" },
		},
		{
			name:   "listen count wrong type",
			mutate: func(f map[string]interface{}) { f["total_listens"] = true },
		},
		{
			name:   "royalty above full rate",
			mutate: func(f map[string]interface{}) { f["royalty_bps"] = float64(10_001) },
		},
		{
			name:   "unknown status",
			mutate: func(f map[string]interface{}) { f["status"] = float64(9) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := validTrackFields()
			tt.mutate(fields)
			record := &ledger.RawRecord{ObjectID: "0xtrack", Fields: fields}

			track, err := ledger.ParseTrack(record)
			assert.ErrorIs(t, err, domain.ErrMalformedMetadata)
			assert.Nil(t, track)
		})
	}
}

func TestParseTrack_OptionalFields(t *testing.T) {
	t.Run("parent as option wrapper", func(t *testing.T) {
		fields := validTrackFields()
		fields["parent"] = map[string]interface{}{
			"fields": map[string]interface{}{"id": "0xparent"},
		}
		track, err := ledger.ParseTrack(&ledger.RawRecord{ObjectID: "0xremix", Fields: fields})
		require.NoError(t, err)
		require.NotNil(t, track.ParentID)
		assert.Equal(t, "0xparent", *track.ParentID)
	})

	t.Run("absent preview and cover tolerated", func(t *testing.T) {
		fields := validTrackFields()
		delete(fields, "preview_cid")
		delete(fields, "cover_uri")
		track, err := ledger.ParseTrack(&ledger.RawRecord{ObjectID: "0xtrack", Fields: fields})
		require.NoError(t, err)
		assert.Empty(t, track.PreviewCID)
		assert.Empty(t, track.CoverURI)
	})
}

func TestParseListenCapability(t *testing.T) {
	record := &ledger.RawRecord{
		ObjectID: "0xcap",
		Version:  "3",
		Owner:    "0xuser",
		Fields: map[string]interface{}{
			"track_id":   "0xtrack",
			"listener":   "0xuser",
			"created_at": "1748779200000",
			"expires_at": "1748782800000",
		},
	}

	cap, err := ledger.ParseListenCapability(record)
	require.NoError(t, err)

	assert.Equal(t, "0xcap", cap.ID)
	assert.Equal(t, "0xtrack", cap.TrackID)
	assert.Equal(t, "0xuser", cap.Holder)
	assert.Equal(t, time.UnixMilli(1748779200000), cap.CreatedAt)
	assert.Equal(t, time.UnixMilli(1748782800000), cap.ExpiresAt)
	assert.Equal(t, time.Hour, cap.ExpiresAt.Sub(cap.CreatedAt))
}

func TestParseListenCapability_MissingExpiry(t *testing.T) {
	record := &ledger.RawRecord{
		ObjectID: "0xcap",
		Fields: map[string]interface{}{
			"track_id":   "0xtrack",
			"listener":   "0xuser",
			"created_at": "1748779200000",
		},
	}

	cap, err := ledger.ParseListenCapability(record)
	assert.ErrorIs(t, err, domain.ErrMalformedMetadata)
	assert.Nil(t, cap)
}

func TestParseStakePosition(t *testing.T) {
	record := &ledger.RawRecord{
		ObjectID: "0xposition",
		Fields: map[string]interface{}{
			"track_id":        "0xtrack",
			"staker":          "0xuser",
			"amount":          "1000000",
			"staked_at_epoch": "412",
			"unlock_epoch":    "413",
			"staked_at_ms":    "1748779200000",
		},
	}

	position, err := ledger.ParseStakePosition(record)
	require.NoError(t, err)

	assert.Equal(t, "0xposition", position.ID)
	assert.Equal(t, uint64(1_000_000), position.Amount)
	assert.Equal(t, uint64(412), position.StakedAtEpoch)
	assert.Equal(t, uint64(413), position.UnlockEpoch)
	assert.False(t, position.Unlocked(412))
	assert.True(t, position.Unlocked(413))
}
