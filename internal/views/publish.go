package views

import (
	"bytes"
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/melodify-live/melodify-client/internal/logger"
	"github.com/melodify-live/melodify-client/internal/metadata"
	"github.com/melodify-live/melodify-client/internal/storage"
	"github.com/melodify-live/melodify-client/internal/txbuilder"
	"github.com/melodify-live/melodify-client/internal/wallet"
	"github.com/melodify-live/melodify-client/internal/waveform"
)

// PublishParams are the caller-supplied inputs for publishing a track.
// Title and Artist override whatever the audio tags carry; zero values defer
// to the sniffed tags and their fallbacks.
type PublishParams struct {
	Audio      []byte
	Cover      []byte // optional
	Title      string
	Artist     string
	Genre      string
	PriceMist  int64
	RoyaltyBPS uint16
	ParentID   string // set when remixing an existing track
}

// PublishResult reports what a completed publish flow created
type PublishResult struct {
	Track       txbuilder.Handle
	AudioCID    string
	CoverCID    string
	MetadataURI string
}

// PublishView drives the full upload-and-mint pipeline: store the audio and
// cover, derive display metadata from the audio tags, mint the draft record,
// reconcile its id from the receipt, then flip it to published. Uploads are
// not retried; a failed step aborts the flow and the caller restarts it.
type PublishView struct {
	gateway  storage.Gateway
	metadata metadata.Resolver
	builder  *txbuilder.Builder
	signer   wallet.Signer
}

// NewPublishView creates the publish flow
func NewPublishView(gateway storage.Gateway, metadataResolver metadata.Resolver, builder *txbuilder.Builder, signer wallet.Signer) *PublishView {
	return &PublishView{
		gateway:  gateway,
		metadata: metadataResolver,
		builder:  builder,
		signer:   signer,
	}
}

// Publish runs the pipeline end to end and returns the confirmed track handle
func (v *PublishView) Publish(ctx context.Context, p PublishParams) (*PublishResult, error) {
	if len(p.Audio) == 0 {
		return nil, fmt.Errorf("no audio payload")
	}

	audioCID, err := v.gateway.Upload(ctx, p.Audio)
	if err != nil {
		return nil, fmt.Errorf("audio upload: %w", err)
	}

	var coverCID, coverURI string
	if len(p.Cover) > 0 {
		coverCID, err = v.gateway.Upload(ctx, p.Cover)
		if err != nil {
			return nil, fmt.Errorf("cover upload: %w", err)
		}
		coverURI, err = v.gateway.ResolveURL(ctx, coverCID)
		if err != nil {
			return nil, fmt.Errorf("cover resolve: %w", err)
		}
	}

	md := waveform.SniffTags(bytes.NewReader(p.Audio))
	if dur, err := waveform.Duration(p.Audio); err == nil {
		md.DurationSeconds = int(dur.Seconds())
	}
	if p.Title != "" {
		md.Title = p.Title
	}
	if p.Artist != "" {
		md.Artist = p.Artist
	}
	if p.Genre != "" {
		md.Genre = p.Genre
	}
	if p.PriceMist > 0 {
		md.PriceDisplay = float64(p.PriceMist) / 1e9
	}
	md.CoverImage = coverURI

	metadataURI, err := v.metadata.Upload(ctx, md)
	if err != nil {
		return nil, fmt.Errorf("metadata upload: %w", err)
	}

	desc, predicted, err := v.builder.BuildCreateTrack(txbuilder.CreateTrackParams{
		AudioCID:    audioCID,
		MetadataURI: metadataURI,
		CoverURI:    coverURI,
		RoyaltyBPS:  p.RoyaltyBPS,
		ParentID:    p.ParentID,
	})
	if err != nil {
		return nil, err
	}

	receipt, err := v.signer.SignAndSubmit(ctx, desc)
	if err != nil {
		return nil, fmt.Errorf("create track: %w", err)
	}
	if !receipt.Success() {
		return nil, fmt.Errorf("create track rejected: %s", receipt.Error)
	}

	confirmed, err := predicted.Reconcile(receipt.CreatedObjects(), v.signer.Address())
	if err != nil {
		return nil, fmt.Errorf("settled but track not found in receipt %s: %w", receipt.Digest, err)
	}

	publishDesc, err := v.builder.BuildPublish(confirmed.ID)
	if err != nil {
		return nil, err
	}
	publishReceipt, err := v.signer.SignAndSubmit(ctx, publishDesc)
	if err != nil {
		return nil, fmt.Errorf("publish: %w", err)
	}
	if !publishReceipt.Success() {
		return nil, fmt.Errorf("publish rejected: %s", publishReceipt.Error)
	}

	logger.InfoCtx(ctx, "track published",
		zap.String("track", confirmed.ID),
		zap.String("audio_cid", audioCID),
		zap.String("metadata_uri", metadataURI),
		zap.String("digest", publishReceipt.Digest))

	return &PublishResult{
		Track:       confirmed,
		AudioCID:    audioCID,
		CoverCID:    coverCID,
		MetadataURI: metadataURI,
	}, nil
}
