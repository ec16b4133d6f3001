package metadata

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"github.com/gowebpki/jcs"
	"go.uber.org/zap"

	"github.com/melodify-live/melodify-client/internal/adapter"
	"github.com/melodify-live/melodify-client/internal/domain"
	"github.com/melodify-live/melodify-client/internal/logger"
	"github.com/melodify-live/melodify-client/internal/storage"
)

// Resolver fetches the off-ledger display metadata referenced by a track
//
//go:generate mockgen -source=resolver.go -destination=../mocks/metadata_resolver.go -package=mocks -mock_names=Resolver=MockMetadataResolver
type Resolver interface {
	// Fetch returns the metadata document behind uri. It never fails from
	// the caller's point of view: an absent URI, transport error, non-2xx
	// response or malformed payload all substitute the fixed fallback
	// document. Render paths therefore never see a nil document.
	Fetch(ctx context.Context, uri string) *domain.TrackMetadata

	// Upload canonicalizes and stores a metadata document, returning the
	// resolved URI to embed in the track record
	Upload(ctx context.Context, md *domain.TrackMetadata) (string, error)
}

type resolver struct {
	httpClient adapter.HTTPClient
	json       adapter.JSON
	gateway    storage.Gateway
}

// NewResolver creates a metadata resolver
func NewResolver(httpClient adapter.HTTPClient, json adapter.JSON, gateway storage.Gateway) Resolver {
	return &resolver{
		httpClient: httpClient,
		json:       json,
		gateway:    gateway,
	}
}

func (r *resolver) Fetch(ctx context.Context, uri string) *domain.TrackMetadata {
	if uri == "" {
		return domain.FallbackMetadata()
	}

	md, err := r.fetch(ctx, uri)
	if err != nil {
		logger.DebugCtx(ctx, "metadata fetch failed, substituting fallback",
			zap.String("uri", uri), zap.Error(err))
		return domain.FallbackMetadata()
	}

	return md
}

func (r *resolver) fetch(ctx context.Context, uri string) (*domain.TrackMetadata, error) {
	switch {
	case strings.HasPrefix(uri, "data:"):
		return r.parseDataURI(uri)
	case strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://"):
		var md domain.TrackMetadata
		if err := r.httpClient.Get(ctx, uri, &md); err != nil {
			return nil, fmt.Errorf("failed to fetch metadata: %w", err)
		}
		return &md, nil
	default:
		return nil, fmt.Errorf("%w: unsupported metadata uri scheme: %s", domain.ErrMalformedMetadata, uri)
	}
}

// parseDataURI decodes an inline metadata document.
// Accepts data:application/json;base64,<payload> and the percent-encoded
// plain form.
func (r *resolver) parseDataURI(uri string) (*domain.TrackMetadata, error) {
	parts := strings.SplitN(uri[len("data:"):], ",", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: invalid data uri", domain.ErrMalformedMetadata)
	}

	payload := parts[1]
	if strings.Contains(parts[0], "base64") {
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedMetadata, err)
		}
		payload = string(decoded)
	} else if unescaped, err := url.QueryUnescape(payload); err == nil {
		payload = unescaped
	}

	var md domain.TrackMetadata
	if err := r.json.Unmarshal([]byte(payload), &md); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedMetadata, err)
	}

	return &md, nil
}

func (r *resolver) Upload(ctx context.Context, md *domain.TrackMetadata) (string, error) {
	data, err := r.json.Marshal(md)
	if err != nil {
		return "", fmt.Errorf("failed to marshal metadata: %w", err)
	}

	// Canonical form keeps the upload content-addressable: the same document
	// always yields the same content id
	canonical, err := jcs.Transform(data)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize metadata: %w", err)
	}

	contentID, err := r.gateway.Upload(ctx, canonical)
	if err != nil {
		return "", err
	}

	return r.gateway.ResolveURL(ctx, contentID)
}
