package waveform_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/melodify-live/melodify-client/internal/domain"
	"github.com/melodify-live/melodify-client/internal/waveform"
)

func TestPeaks_InvalidInput(t *testing.T) {
	t.Run("zero buckets", func(t *testing.T) {
		_, err := waveform.Peaks([]byte{0xff, 0xfb}, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	})

	t.Run("negative buckets", func(t *testing.T) {
		_, err := waveform.Peaks([]byte{0xff, 0xfb}, -1)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	})

	t.Run("not an mp3 stream", func(t *testing.T) {
		_, err := waveform.Peaks([]byte("definitely not audio"), 16)
		assert.ErrorIs(t, err, domain.ErrMalformedMetadata)
	})

	t.Run("empty payload", func(t *testing.T) {
		_, err := waveform.Peaks(nil, 16)
		assert.ErrorIs(t, err, domain.ErrMalformedMetadata)
	})
}

func TestDuration_InvalidInput(t *testing.T) {
	_, err := waveform.Duration([]byte("definitely not audio"))
	assert.ErrorIs(t, err, domain.ErrMalformedMetadata)
}

func TestSniffTags_NonAudioFallsBack(t *testing.T) {
	md := waveform.SniffTags(bytes.NewReader([]byte("definitely not audio")))

	// Unreadable tags yield the standard fallback document
	assert.Equal(t, domain.FallbackMetadata(), md)
}
