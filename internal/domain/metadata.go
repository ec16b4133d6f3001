package domain

// TrackMetadata is the off-ledger display document referenced by a track's
// metadata URI. It is not authoritative; a failed fetch substitutes
// FallbackMetadata rather than leaving the view undefined.
type TrackMetadata struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Artist          string  `json:"artist"`
	Genre           string  `json:"genre"`
	DurationSeconds int     `json:"duration"`
	PriceDisplay    float64 `json:"price"`
	CoverImage      string  `json:"coverImage,omitempty"`
}

// FallbackMetadata returns the fixed document used whenever the metadata
// fetch fails or the URI is absent
func FallbackMetadata() *TrackMetadata {
	return &TrackMetadata{
		Title:           "Untitled Track",
		Description:     "No description available",
		Artist:          "Unknown Artist",
		Genre:           "Unknown",
		DurationSeconds: 180,
		PriceDisplay:    0.001,
	}
}
