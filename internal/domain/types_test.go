package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/melodify-live/melodify-client/internal/domain"
)

func TestIsValidNetwork(t *testing.T) {
	tests := []struct {
		name     string
		network  domain.Network
		expected bool
	}{
		{name: "mainnet", network: domain.NetworkMainnet, expected: true},
		{name: "testnet", network: domain.NetworkTestnet, expected: true},
		{name: "devnet", network: domain.NetworkDevnet, expected: true},
		{name: "empty", network: domain.Network(""), expected: false},
		{name: "unknown", network: domain.Network("localnet"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.IsValidNetwork(tt.network))
		})
	}
}

func TestTrackStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name     string
		from     domain.TrackStatus
		to       domain.TrackStatus
		expected bool
	}{
		{name: "draft to published", from: domain.TrackStatusDraft, to: domain.TrackStatusPublished, expected: true},
		{name: "published to frozen", from: domain.TrackStatusPublished, to: domain.TrackStatusFrozen, expected: true},
		{name: "draft to frozen skips published", from: domain.TrackStatusDraft, to: domain.TrackStatusFrozen, expected: false},
		{name: "published back to draft", from: domain.TrackStatusPublished, to: domain.TrackStatusDraft, expected: false},
		{name: "frozen is terminal", from: domain.TrackStatusFrozen, to: domain.TrackStatus(3), expected: false},
		{name: "no self transition", from: domain.TrackStatusPublished, to: domain.TrackStatusPublished, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestTrackStatus_String(t *testing.T) {
	assert.Equal(t, "draft", domain.TrackStatusDraft.String())
	assert.Equal(t, "published", domain.TrackStatusPublished.String())
	assert.Equal(t, "frozen", domain.TrackStatusFrozen.String())
	assert.Equal(t, "unknown", domain.TrackStatus(9).String())
}

func TestListenCapability_Grants(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		cap      domain.ListenCapability
		trackID  string
		expected bool
	}{
		{
			name: "matching and unexpired",
			cap: domain.ListenCapability{
				TrackID:   "0xabc",
				ExpiresAt: now.Add(time.Hour),
			},
			trackID:  "0xabc",
			expected: true,
		},
		{
			name: "matching but expired",
			cap: domain.ListenCapability{
				TrackID:   "0xabc",
				ExpiresAt: now.Add(-time.Second),
			},
			trackID:  "0xabc",
			expected: false,
		},
		{
			name: "expiring exactly now",
			cap: domain.ListenCapability{
				TrackID:   "0xabc",
				ExpiresAt: now,
			},
			trackID:  "0xabc",
			expected: false,
		},
		{
			name: "different track",
			cap: domain.ListenCapability{
				TrackID:   "0xother",
				ExpiresAt: now.Add(time.Hour),
			},
			trackID:  "0xabc",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cap.Grants(tt.trackID, now))
		})
	}
}

func TestStakePosition_Unlocked(t *testing.T) {
	position := domain.StakePosition{UnlockEpoch: 100}

	assert.False(t, position.Unlocked(99))
	assert.True(t, position.Unlocked(100))
	assert.True(t, position.Unlocked(101))
}

func TestMistConversions(t *testing.T) {
	assert.Equal(t, 1.0, domain.MistToSui(1_000_000_000))
	assert.Equal(t, 0.001, domain.MistToSui(1_000_000))
	assert.Equal(t, uint64(1_000_000_000), domain.SuiToMist(1))
	assert.Equal(t, uint64(0), domain.SuiToMist(-5))
	assert.Equal(t, 5.0, domain.BasisPointsToPercent(500))
}

func TestFallbackMetadata(t *testing.T) {
	md := domain.FallbackMetadata()

	assert.Equal(t, "Untitled Track", md.Title)
	assert.Equal(t, "No description available", md.Description)
	assert.Equal(t, "Unknown Artist", md.Artist)
	assert.Equal(t, "Unknown", md.Genre)
	assert.Equal(t, 180, md.DurationSeconds)
	assert.Equal(t, 0.001, md.PriceDisplay)
	assert.Empty(t, md.CoverImage)
}
