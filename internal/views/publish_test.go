package views_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melodify-live/melodify-client/internal/domain"
	"github.com/melodify-live/melodify-client/internal/ledger"
	"github.com/melodify-live/melodify-client/internal/mocks"
	"github.com/melodify-live/melodify-client/internal/txbuilder"
	"github.com/melodify-live/melodify-client/internal/views"
)

type testPublishMocks struct {
	ctrl     *gomock.Controller
	gateway  *mocks.MockStorageGateway
	metadata *mocks.MockMetadataResolver
	signer   *mocks.MockSigner
	view     *views.PublishView
}

func setupTestPublish(t *testing.T) *testPublishMocks {
	ctrl := gomock.NewController(t)

	tm := &testPublishMocks{
		ctrl:     ctrl,
		gateway:  mocks.NewMockStorageGateway(ctrl),
		metadata: mocks.NewMockMetadataResolver(ctrl),
		signer:   mocks.NewMockSigner(ctrl),
	}

	builder := txbuilder.NewBuilder(txbuilder.Config{PackageID: testPackageID})
	tm.view = views.NewPublishView(tm.gateway, tm.metadata, builder, tm.signer)

	return tm
}

func TestPublishView_Publish(t *testing.T) {
	tm := setupTestPublish(t)
	defer tm.ctrl.Finish()

	audio := []byte("not really mp3 but uploaded as-is")

	tm.gateway.EXPECT().Upload(gomock.Any(), audio).Return("blob-audio", nil)

	var uploadedMD *domain.TrackMetadata
	tm.metadata.
		EXPECT().
		Upload(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, md *domain.TrackMetadata) (string, error) {
			uploadedMD = md
			return "https://aggregator.example/v1/blob-meta", nil
		})

	createReceipt := &ledger.Receipt{
		Digest:  "digest-create",
		Status:  "success",
		Created: []ledger.CreatedRef{{ObjectID: "0xtrack", Owner: testUser}},
	}
	publishReceipt := &ledger.Receipt{Digest: "digest-publish", Status: "success"}

	gomock.InOrder(
		tm.signer.EXPECT().
			SignAndSubmit(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, desc *txbuilder.TxDescriptor) (*ledger.Receipt, error) {
				assert.Equal(t, testPackageID+"::track::create_track", desc.Target)
				return createReceipt, nil
			}),
		tm.signer.EXPECT().
			SignAndSubmit(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, desc *txbuilder.TxDescriptor) (*ledger.Receipt, error) {
				assert.Equal(t, testPackageID+"::track::publish", desc.Target)
				// Publishing targets the confirmed id, not the prediction
				raw, err := json.Marshal(desc.Args)
				require.NoError(t, err)
				assert.Contains(t, string(raw), "0xtrack")
				return publishReceipt, nil
			}),
	)
	tm.signer.EXPECT().Address().Return(testUser)

	result, err := tm.view.Publish(context.Background(), views.PublishParams{
		Audio:      audio,
		Title:      "Neon Rain",
		Artist:     "The Drifters",
		PriceMist:  1_000_000,
		RoyaltyBPS: 500,
	})
	require.NoError(t, err)

	assert.Equal(t, "0xtrack", result.Track.ID)
	assert.True(t, result.Track.Confirmed())
	assert.Equal(t, "blob-audio", result.AudioCID)
	assert.Equal(t, "https://aggregator.example/v1/blob-meta", result.MetadataURI)

	// Explicit params override the sniffed tags; unreadable audio falls back
	require.NotNil(t, uploadedMD)
	assert.Equal(t, "Neon Rain", uploadedMD.Title)
	assert.Equal(t, "The Drifters", uploadedMD.Artist)
	assert.Equal(t, 0.001, uploadedMD.PriceDisplay)
	assert.Equal(t, "Unknown", uploadedMD.Genre)
}

func TestPublishView_Publish_NoAudio(t *testing.T) {
	tm := setupTestPublish(t)
	defer tm.ctrl.Finish()

	_, err := tm.view.Publish(context.Background(), views.PublishParams{})
	assert.Error(t, err)
}

func TestPublishView_Publish_UploadFails(t *testing.T) {
	tm := setupTestPublish(t)
	defer tm.ctrl.Finish()

	// The flow aborts before anything is minted
	tm.gateway.
		EXPECT().
		Upload(gomock.Any(), gomock.Any()).
		Return("", domain.ErrUpstreamUnavailable)

	_, err := tm.view.Publish(context.Background(), views.PublishParams{Audio: []byte("payload")})
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestPublishView_Publish_CreateRejected(t *testing.T) {
	tm := setupTestPublish(t)
	defer tm.ctrl.Finish()

	tm.gateway.EXPECT().Upload(gomock.Any(), gomock.Any()).Return("blob-audio", nil)
	tm.metadata.
		EXPECT().
		Upload(gomock.Any(), gomock.Any()).
		Return("https://aggregator.example/v1/blob-meta", nil)
	tm.signer.
		EXPECT().
		SignAndSubmit(gomock.Any(), gomock.Any()).
		Return(&ledger.Receipt{Digest: "digest-1", Status: "failure", Error: "registry full"}, nil)

	_, err := tm.view.Publish(context.Background(), views.PublishParams{Audio: []byte("payload")})
	assert.ErrorContains(t, err, "registry full")
}
