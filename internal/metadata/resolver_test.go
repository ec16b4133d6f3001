package metadata_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melodify-live/melodify-client/internal/adapter"
	"github.com/melodify-live/melodify-client/internal/domain"
	"github.com/melodify-live/melodify-client/internal/logger"
	"github.com/melodify-live/melodify-client/internal/metadata"
	"github.com/melodify-live/melodify-client/internal/mocks"
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

type testResolverMocks struct {
	ctrl       *gomock.Controller
	httpClient *mocks.MockHTTPClient
	gateway    *mocks.MockStorageGateway
	resolver   metadata.Resolver
}

func setupTestResolver(t *testing.T) *testResolverMocks {
	ctrl := gomock.NewController(t)

	tm := &testResolverMocks{
		ctrl:       ctrl,
		httpClient: mocks.NewMockHTTPClient(ctrl),
		gateway:    mocks.NewMockStorageGateway(ctrl),
	}
	tm.resolver = metadata.NewResolver(tm.httpClient, adapter.NewJSON(), tm.gateway)

	return tm
}

func TestResolver_Fetch_HTTP(t *testing.T) {
	tm := setupTestResolver(t)
	defer tm.ctrl.Finish()

	tm.httpClient.
		EXPECT().
		Get(gomock.Any(), "https://aggregator.example/v1/blob-meta", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, result interface{}) error {
			md := result.(*domain.TrackMetadata)
			md.Title = "Neon Rain"
			md.Artist = "The Drifters"
			md.DurationSeconds = 214
			return nil
		})

	md := tm.resolver.Fetch(context.Background(), "https://aggregator.example/v1/blob-meta")
	require.NotNil(t, md)
	assert.Equal(t, "Neon Rain", md.Title)
	assert.Equal(t, "The Drifters", md.Artist)
	assert.Equal(t, 214, md.DurationSeconds)
}

func TestResolver_Fetch_FallbackLaw(t *testing.T) {
	tests := []struct {
		name  string
		uri   string
		setup func(tm *testResolverMocks)
	}{
		{
			name: "empty uri",
			uri:  "",
		},
		{
			name: "transport failure",
			uri:  "https://aggregator.example/v1/blob-meta",
			setup: func(tm *testResolverMocks) {
				tm.httpClient.
					EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(io.ErrUnexpectedEOF)
			},
		},
		{
			name: "unsupported scheme",
			uri:  "ipfs://QmSomething",
		},
		{
			name: "malformed data uri",
			uri:  "data:application/json;base64,%%%not-base64%%%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTestResolver(t)
			defer tm.ctrl.Finish()
			if tt.setup != nil {
				tt.setup(tm)
			}

			// Every failure substitutes the identical fallback document
			md := tm.resolver.Fetch(context.Background(), tt.uri)
			assert.Equal(t, domain.FallbackMetadata(), md)
		})
	}
}

func TestResolver_Fetch_DataURI(t *testing.T) {
	tm := setupTestResolver(t)
	defer tm.ctrl.Finish()

	doc, err := json.Marshal(map[string]interface{}{
		"title":  "Inline Track",
		"artist": "Embedded",
	})
	require.NoError(t, err)
	uri := "data:application/json;base64," + base64.StdEncoding.EncodeToString(doc)

	md := tm.resolver.Fetch(context.Background(), uri)
	assert.Equal(t, "Inline Track", md.Title)
	assert.Equal(t, "Embedded", md.Artist)
}

func TestResolver_Upload(t *testing.T) {
	tm := setupTestResolver(t)
	defer tm.ctrl.Finish()

	md := &domain.TrackMetadata{
		Title:           "Neon Rain",
		Description:     "A track",
		Artist:          "The Drifters",
		Genre:           "Synthwave",
		DurationSeconds: 214,
		PriceDisplay:    0.001,
	}

	var uploaded []byte
	tm.gateway.
		EXPECT().
		Upload(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, data []byte) (string, error) {
			uploaded = data
			return "blob-meta", nil
		})
	tm.gateway.
		EXPECT().
		ResolveURL(gomock.Any(), "blob-meta").
		Return("https://aggregator.example/v1/blob-meta", nil)

	uri, err := tm.resolver.Upload(context.Background(), md)
	require.NoError(t, err)
	assert.Equal(t, "https://aggregator.example/v1/blob-meta", uri)

	// The stored document round-trips to the same values
	var stored domain.TrackMetadata
	require.NoError(t, json.Unmarshal(uploaded, &stored))
	assert.Equal(t, *md, stored)
}

func TestResolver_Upload_GatewayFailure(t *testing.T) {
	tm := setupTestResolver(t)
	defer tm.ctrl.Finish()

	tm.gateway.
		EXPECT().
		Upload(gomock.Any(), gomock.Any()).
		Return("", domain.ErrUpstreamUnavailable)

	_, err := tm.resolver.Upload(context.Background(), domain.FallbackMetadata())
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}
