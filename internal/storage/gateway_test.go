package storage_test

import (
	"context"
	"io"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melodify-live/melodify-client/internal/adapter"
	"github.com/melodify-live/melodify-client/internal/domain"
	"github.com/melodify-live/melodify-client/internal/logger"
	"github.com/melodify-live/melodify-client/internal/mocks"
	"github.com/melodify-live/melodify-client/internal/storage"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

type testGatewayMocks struct {
	ctrl       *gomock.Controller
	httpClient *mocks.MockHTTPClient
	cache      *mocks.MockURLCache
	gateway    storage.Gateway
}

func setupTestGateway(t *testing.T) *testGatewayMocks {
	ctrl := gomock.NewController(t)

	tm := &testGatewayMocks{
		ctrl:       ctrl,
		httpClient: mocks.NewMockHTTPClient(ctrl),
		cache:      mocks.NewMockURLCache(ctrl),
	}
	tm.gateway = storage.NewGateway(storage.Config{
		PublisherURL:  "https://publisher.example",
		AggregatorURL: "https://aggregator.example",
		UploadEpochs:  5,
	}, tm.httpClient, adapter.NewJSON(), tm.cache)

	return tm
}

func TestGateway_Upload_NewBlob(t *testing.T) {
	tm := setupTestGateway(t)
	defer tm.ctrl.Finish()

	tm.httpClient.
		EXPECT().
		Put(gomock.Any(), "https://publisher.example/v1/blobs?epochs=5", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, contentType string, body io.Reader) ([]byte, error) {
			payload, err := io.ReadAll(body)
			require.NoError(t, err)
			assert.Equal(t, []byte("audio payload"), payload)
			assert.NotEmpty(t, contentType)
			return []byte(`{"newlyCreated":{"blobObject":{"blobId":"blob-123"}}}`), nil
		})

	contentID, err := tm.gateway.Upload(context.Background(), []byte("audio payload"))
	require.NoError(t, err)
	assert.Equal(t, "blob-123", contentID)
}

func TestGateway_Upload_AlreadyCertified(t *testing.T) {
	tm := setupTestGateway(t)
	defer tm.ctrl.Finish()

	tm.httpClient.
		EXPECT().
		Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]byte(`{"alreadyCertified":{"blobId":"blob-dup"}}`), nil)

	contentID, err := tm.gateway.Upload(context.Background(), []byte("audio payload"))
	require.NoError(t, err)
	assert.Equal(t, "blob-dup", contentID)
}

func TestGateway_Upload_Failures(t *testing.T) {
	t.Run("empty payload", func(t *testing.T) {
		tm := setupTestGateway(t)
		defer tm.ctrl.Finish()

		_, err := tm.gateway.Upload(context.Background(), nil)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	})

	t.Run("publisher unreachable", func(t *testing.T) {
		tm := setupTestGateway(t)
		defer tm.ctrl.Finish()

		// Single shot: exactly one Put, never retried
		tm.httpClient.
			EXPECT().
			Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, io.ErrUnexpectedEOF).
			Times(1)

		_, err := tm.gateway.Upload(context.Background(), []byte("audio payload"))
		assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	})

	t.Run("response without content id", func(t *testing.T) {
		tm := setupTestGateway(t)
		defer tm.ctrl.Finish()

		tm.httpClient.
			EXPECT().
			Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]byte(`{}`), nil)

		_, err := tm.gateway.Upload(context.Background(), []byte("audio payload"))
		assert.Error(t, err)
	})
}

func TestGateway_ResolveURL(t *testing.T) {
	t.Run("cache miss resolves and stores", func(t *testing.T) {
		tm := setupTestGateway(t)
		defer tm.ctrl.Finish()

		tm.cache.EXPECT().Get(gomock.Any(), "blob-123").Return("", false)
		tm.cache.EXPECT().Set(gomock.Any(), "blob-123", "https://aggregator.example/v1/blob-123")

		url, err := tm.gateway.ResolveURL(context.Background(), "blob-123")
		require.NoError(t, err)
		assert.Equal(t, "https://aggregator.example/v1/blob-123", url)
	})

	t.Run("cache hit skips resolution", func(t *testing.T) {
		tm := setupTestGateway(t)
		defer tm.ctrl.Finish()

		tm.cache.EXPECT().Get(gomock.Any(), "blob-123").Return("https://aggregator.example/v1/blob-123", true)

		url, err := tm.gateway.ResolveURL(context.Background(), "blob-123")
		require.NoError(t, err)
		assert.Equal(t, "https://aggregator.example/v1/blob-123", url)
	})

	t.Run("empty content id", func(t *testing.T) {
		tm := setupTestGateway(t)
		defer tm.ctrl.Finish()

		_, err := tm.gateway.ResolveURL(context.Background(), "")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestGateway_Download(t *testing.T) {
	tm := setupTestGateway(t)
	defer tm.ctrl.Finish()

	tm.cache.EXPECT().Get(gomock.Any(), "blob-123").Return("", false)
	tm.cache.EXPECT().Set(gomock.Any(), "blob-123", gomock.Any())
	tm.httpClient.
		EXPECT().
		GetBytes(gomock.Any(), "https://aggregator.example/v1/blob-123").
		Return([]byte("payload"), nil)

	data, err := tm.gateway.Download(context.Background(), "blob-123")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)
}

func TestMemoryCache_TTL(t *testing.T) {
	cache := storage.NewMemoryCache(50 * time.Millisecond)
	ctx := context.Background()

	cache.Set(ctx, "blob-123", "https://aggregator.example/v1/blob-123")

	url, ok := cache.Get(ctx, "blob-123")
	assert.True(t, ok)
	assert.Equal(t, "https://aggregator.example/v1/blob-123", url)

	// Entries lapse purely by time
	time.Sleep(120 * time.Millisecond)
	_, ok = cache.Get(ctx, "blob-123")
	assert.False(t, ok)

	// A fresh Set resolves again after expiry
	cache.Set(ctx, "blob-123", "https://aggregator.example/v1/blob-123")
	_, ok = cache.Get(ctx, "blob-123")
	assert.True(t, ok)
}
