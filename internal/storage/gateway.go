package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/melodify-live/melodify-client/internal/adapter"
	"github.com/melodify-live/melodify-client/internal/domain"
	"github.com/melodify-live/melodify-client/internal/logger"
)

// Config holds the content gateway endpoints
type Config struct {
	PublisherURL  string
	AggregatorURL string
	UploadEpochs  int
}

// Gateway wraps upload and retrieval against the content-addressed storage
// network. Content ids are opaque strings; URL resolution is a deterministic
// function of the aggregator endpoint and the id, cached for a fixed duration.
//
//go:generate mockgen -source=gateway.go -destination=../mocks/storage_gateway.go -package=mocks -mock_names=Gateway=MockStorageGateway
type Gateway interface {
	// Upload stores a blob and returns its content id. No retry or backoff:
	// a failed upload surfaces to the caller as-is.
	Upload(ctx context.Context, data []byte) (string, error)

	// ResolveURL maps a content id to a fetchable URL
	ResolveURL(ctx context.Context, contentID string) (string, error)

	// Download fetches the raw bytes behind a content id, for flows that
	// need the payload locally (waveform rendering) rather than a stream URL
	Download(ctx context.Context, contentID string) ([]byte, error)
}

type gateway struct {
	cfg        Config
	httpClient adapter.HTTPClient
	json       adapter.JSON
	cache      URLCache
}

// NewGateway creates a storage gateway over the configured publisher and
// aggregator endpoints
func NewGateway(cfg Config, httpClient adapter.HTTPClient, json adapter.JSON, cache URLCache) Gateway {
	return &gateway{
		cfg:        cfg,
		httpClient: httpClient,
		json:       json,
		cache:      cache,
	}
}

// uploadResponse covers both publisher outcomes: a fresh store and a blob
// the network already holds
type uploadResponse struct {
	NewlyCreated *struct {
		BlobObject struct {
			BlobID string `json:"blobId"`
		} `json:"blobObject"`
	} `json:"newlyCreated"`
	AlreadyCertified *struct {
		BlobID string `json:"blobId"`
	} `json:"alreadyCertified"`
}

func (g *gateway) Upload(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty upload", domain.ErrInvalidAmount)
	}

	contentType := mimetype.Detect(data).String()
	url := fmt.Sprintf("%s/v1/blobs?epochs=%d", strings.TrimSuffix(g.cfg.PublisherURL, "/"), g.cfg.UploadEpochs)

	respBody, err := g.httpClient.Put(ctx, url, contentType, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: upload: %v", domain.ErrUpstreamUnavailable, err)
	}

	var resp uploadResponse
	if err := g.json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}

	switch {
	case resp.NewlyCreated != nil && resp.NewlyCreated.BlobObject.BlobID != "":
		return resp.NewlyCreated.BlobObject.BlobID, nil
	case resp.AlreadyCertified != nil && resp.AlreadyCertified.BlobID != "":
		logger.DebugCtx(ctx, "blob already certified", zap.String("contentId", resp.AlreadyCertified.BlobID))
		return resp.AlreadyCertified.BlobID, nil
	default:
		return "", fmt.Errorf("upload response carried no content id")
	}
}

func (g *gateway) ResolveURL(ctx context.Context, contentID string) (string, error) {
	if contentID == "" {
		return "", fmt.Errorf("%w: empty content id", domain.ErrNotFound)
	}

	if url, ok := g.cache.Get(ctx, contentID); ok {
		return url, nil
	}

	url := g.aggregatorURL(contentID)
	g.cache.Set(ctx, contentID, url)

	return url, nil
}

func (g *gateway) Download(ctx context.Context, contentID string) ([]byte, error) {
	url, err := g.ResolveURL(ctx, contentID)
	if err != nil {
		return nil, err
	}

	data, err := g.httpClient.GetBytes(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: download %s: %v", domain.ErrUpstreamUnavailable, contentID, err)
	}

	return data, nil
}

// aggregatorURL is the deterministic content-id-to-URL mapping
func (g *gateway) aggregatorURL(contentID string) string {
	return fmt.Sprintf("%s/v1/%s", strings.TrimSuffix(g.cfg.AggregatorURL, "/"), contentID)
}
