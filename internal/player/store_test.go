package player_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/melodify-live/melodify-client/internal/player"
)

func TestStore_SetStartsPlayback(t *testing.T) {
	store := player.NewStore()

	track := player.TrackRef{ID: "0xtrack", Title: "Neon Rain", Artist: "The Drifters", AudioCID: "blob-audio"}
	store.Set(track)

	state := store.Snapshot()
	assert.True(t, state.HasTrack)
	assert.True(t, state.Playing)
	assert.Equal(t, track, state.Current)
	assert.Zero(t, state.PositionSec)

	current, ok := store.Current()
	assert.True(t, ok)
	assert.Equal(t, track, current)
}

func TestStore_SetReplacesTrack(t *testing.T) {
	store := player.NewStore()

	store.Set(player.TrackRef{ID: "0xfirst"})
	store.Seek(42)
	store.Set(player.TrackRef{ID: "0xsecond"})

	state := store.Snapshot()
	assert.Equal(t, "0xsecond", state.Current.ID)
	// Loading a new track rewinds
	assert.Zero(t, state.PositionSec)
	assert.True(t, state.Playing)
}

func TestStore_SeekAndDuration(t *testing.T) {
	store := player.NewStore()
	store.Set(player.TrackRef{ID: "0xtrack"})

	store.SetDuration(214)
	store.Seek(30.5)
	store.SetPlaying(false)

	state := store.Snapshot()
	assert.Equal(t, 214.0, state.DurationSec)
	assert.Equal(t, 30.5, state.PositionSec)
	assert.False(t, state.Playing)
}

func TestStore_VolumeClamped(t *testing.T) {
	store := player.NewStore()

	assert.Equal(t, 1.0, store.Snapshot().Volume)

	store.SetVolume(0.5)
	assert.Equal(t, 0.5, store.Snapshot().Volume)

	store.SetVolume(1.7)
	assert.Equal(t, 1.0, store.Snapshot().Volume)

	store.SetVolume(-0.3)
	assert.Equal(t, 0.0, store.Snapshot().Volume)
}

func TestStore_ResetKeepsVolume(t *testing.T) {
	store := player.NewStore()

	store.Set(player.TrackRef{ID: "0xtrack"})
	store.SetVolume(0.4)
	store.Seek(10)
	store.Reset()

	state := store.Snapshot()
	assert.False(t, state.HasTrack)
	assert.False(t, state.Playing)
	assert.Zero(t, state.PositionSec)
	// Volume is a user preference, it survives a reset
	assert.Equal(t, 0.4, state.Volume)

	_, ok := store.Current()
	assert.False(t, ok)
}
