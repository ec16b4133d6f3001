package waveform

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dhowden/tag"
	"github.com/tcolgate/mp3"

	"github.com/melodify-live/melodify-client/internal/domain"
)

// Peak is one normalized bar of a preview waveform, in [0, 1]
type Peak = float64

// Peaks walks the MP3 frames of data and folds them into buckets normalized
// bars for preview rendering. Frame sizes stand in for signal energy, which
// is enough for a visual preview without a full PCM decode.
func Peaks(data []byte, buckets int) ([]Peak, error) {
	if buckets <= 0 {
		return nil, fmt.Errorf("%w: bucket count must be positive", domain.ErrInvalidAmount)
	}

	sizes, _, err := frameSizes(data)
	if err != nil {
		return nil, err
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("%w: no decodable audio frames", domain.ErrMalformedMetadata)
	}

	// Fold frames into buckets, keeping the largest frame per bucket
	peaks := make([]Peak, buckets)
	perBucket := float64(len(sizes)) / float64(buckets)
	var max float64
	for i, size := range sizes {
		bucket := int(float64(i) / perBucket)
		if bucket >= buckets {
			bucket = buckets - 1
		}
		if float64(size) > peaks[bucket] {
			peaks[bucket] = float64(size)
		}
		if float64(size) > max {
			max = float64(size)
		}
	}

	if max > 0 {
		for i := range peaks {
			peaks[i] /= max
		}
	}

	return peaks, nil
}

// Duration sums the decoded frame durations of an MP3 payload
func Duration(data []byte) (time.Duration, error) {
	_, total, err := frameSizes(data)
	if err != nil {
		return 0, err
	}
	return total, nil
}

// frameSizes decodes the MP3 frame stream, returning per-frame sizes and the
// accumulated duration. A partial decode keeps what it has; only a stream
// with zero decodable frames is an error.
func frameSizes(data []byte) ([]int, time.Duration, error) {
	dec := mp3.NewDecoder(bytes.NewReader(data))

	var sizes []int
	var total time.Duration
	var skipped int
	for {
		var fr mp3.Frame
		if err := dec.Decode(&fr, &skipped); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			if len(sizes) == 0 {
				return nil, 0, fmt.Errorf("%w: %v", domain.ErrMalformedMetadata, err)
			}
			break
		}
		sizes = append(sizes, int(fr.Size()))
		total += fr.Duration()
	}

	return sizes, total, nil
}

// SniffTags reads embedded audio tags to prefill upload metadata. Missing
// tags fall back to the unknown-artist defaults rather than failing the flow.
func SniffTags(r io.ReadSeeker) *domain.TrackMetadata {
	md := domain.FallbackMetadata()

	tags, err := tag.ReadFrom(r)
	if err != nil {
		return md
	}

	if title := tags.Title(); title != "" {
		md.Title = title
	}
	if artist := tags.Artist(); artist != "" {
		md.Artist = artist
	}
	if genre := tags.Genre(); genre != "" {
		md.Genre = genre
	}

	return md
}
