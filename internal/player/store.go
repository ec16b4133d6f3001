package player

import "sync"

// TrackRef is the descriptor of the track loaded into the player
type TrackRef struct {
	ID       string
	Title    string
	Artist   string
	AudioCID string
}

// State is a snapshot of the player
type State struct {
	Current     TrackRef
	HasTrack    bool
	Playing     bool
	PositionSec float64
	DurationSec float64
	Volume      float64
}

// Store holds the currently-playing track shared across pages. It is the
// only entity the client itself owns; scope is the process lifetime with an
// explicit Reset. Instances are passed to the pages that need them rather
// than kept as package-level state, so ownership and reset timing stay
// visible at the call sites.
type Store struct {
	mu    sync.Mutex
	state State
}

// NewStore creates a player store with full volume and nothing loaded
func NewStore() *Store {
	return &Store{state: State{Volume: 1}}
}

// Set loads a track into the player and starts playback
func (s *Store) Set(track TrackRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Current = track
	s.state.HasTrack = true
	s.state.Playing = true
	s.state.PositionSec = 0
}

// Current returns the loaded track, if any
func (s *Store) Current() (TrackRef, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Current, s.state.HasTrack
}

// SetPlaying toggles playback
func (s *Store) SetPlaying(playing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Playing = playing
}

// Seek moves the playback position
func (s *Store) Seek(positionSec float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.PositionSec = positionSec
}

// SetDuration records the decoded track length
func (s *Store) SetDuration(durationSec float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.DurationSec = durationSec
}

// SetVolume adjusts the volume, clamped to [0, 1]
func (s *Store) SetVolume(volume float64) {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Volume = volume
}

// Snapshot returns a copy of the full player state
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Reset clears the loaded track and playback state. Volume survives a reset.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	volume := s.state.Volume
	s.state = State{Volume: volume}
}
