package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/melodify-live/melodify-client/internal/domain"
	"github.com/melodify-live/melodify-client/internal/views"
	"github.com/melodify-live/melodify-client/internal/waveform"
)

func newDiscoverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "discover",
		Short: "List recently published tracks",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.shutdown()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			go app.chart.Run(ctx)

			if err := app.discover.Load(ctx); err != nil {
				return err
			}

			state := app.discover.Snapshot()
			if len(state.Items) == 0 {
				fmt.Println("no published tracks found")
			}
			for _, item := range state.Items {
				fmt.Printf("%s  %s - %s  (%d listens, %.3f SUI pooled)\n",
					item.Track.ID,
					item.Metadata.Title,
					item.Metadata.Artist,
					item.Track.TotalListens,
					domain.MistToSui(item.Track.RevenuePool))
			}

			chart := app.chart.Current()
			fmt.Printf("\ntrending over the last %dh (simulated):\n%s\n",
				len(chart.Points), renderChart(chart))
			return nil
		},
	}
}

func newPlayCmd() *cobra.Command {
	var (
		payMist      int64
		showWaveform bool
	)

	cmd := &cobra.Command{
		Use:   "play <track-id>",
		Short: "Show a track and optionally pay for listen access",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.shutdown()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			trackID := args[0]
			if err := app.play.Load(ctx, trackID); err != nil {
				return err
			}

			state := app.play.Snapshot()
			if !state.Access.Granted && payMist > 0 {
				handle, err := app.play.PayToListen(ctx, trackID, payMist)
				if err != nil {
					return err
				}
				fmt.Printf("listen capability minted: %s\n", handle.ID)
				state = app.play.Snapshot()
			}

			fmt.Printf("%s - %s\n", state.Metadata.Title, state.Metadata.Artist)
			fmt.Printf("status: %s, listens: %d\n", state.Track.Status, state.Track.TotalListens)
			if state.Access.Granted {
				fmt.Printf("access granted via %s\n", state.Access.CapabilityID)
				fmt.Printf("stream: %s\n", state.StreamURL)
			} else {
				fmt.Println("access denied, pay with --pay <mist> to listen")
				if state.PreviewURL != "" {
					fmt.Printf("preview: %s\n", state.PreviewURL)
				}
			}

			if showWaveform {
				// The full track needs a grant; the preview is public
				cid := state.Track.PreviewCID
				if state.Access.Granted {
					cid = state.Track.AudioCID
				}
				if cid == "" {
					fmt.Println("no audio available for a waveform")
					return nil
				}
				data, err := app.gateway.Download(ctx, cid)
				if err != nil {
					return err
				}
				peaks, err := waveform.Peaks(data, waveformBuckets)
				if err != nil {
					return err
				}
				fmt.Print(renderPeaks(peaks))
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&payMist, "pay", 0, "pay the listen fee in MIST when access is denied")
	cmd.Flags().BoolVar(&showWaveform, "waveform", false, "download the audio and print its waveform")
	return cmd
}

func newPublishCmd() *cobra.Command {
	var (
		audioPath  string
		coverPath  string
		title      string
		artist     string
		genre      string
		priceMist  int64
		royaltyBPS uint16
		parentID   string
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload a track and mint its on-ledger record",
		RunE: func(cmd *cobra.Command, args []string) error {
			audio, err := os.ReadFile(audioPath)
			if err != nil {
				return fmt.Errorf("failed to read audio file: %w", err)
			}
			var cover []byte
			if coverPath != "" {
				cover, err = os.ReadFile(coverPath)
				if err != nil {
					return fmt.Errorf("failed to read cover file: %w", err)
				}
			}

			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.shutdown()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			result, err := app.publish.Publish(ctx, views.PublishParams{
				Audio:      audio,
				Cover:      cover,
				Title:      title,
				Artist:     artist,
				Genre:      genre,
				PriceMist:  priceMist,
				RoyaltyBPS: royaltyBPS,
				ParentID:   parentID,
			})
			if err != nil {
				return err
			}

			fmt.Printf("track published: %s\n", result.Track.ID)
			fmt.Printf("audio: %s\n", result.AudioCID)
			fmt.Printf("metadata: %s\n", result.MetadataURI)
			return nil
		},
	}
	cmd.Flags().StringVar(&audioPath, "audio", "", "path to the audio file")
	cmd.Flags().StringVar(&coverPath, "cover", "", "path to the cover image")
	cmd.Flags().StringVar(&title, "title", "", "track title, defaults to the audio tags")
	cmd.Flags().StringVar(&artist, "artist", "", "artist name, defaults to the audio tags")
	cmd.Flags().StringVar(&genre, "genre", "", "genre, defaults to the audio tags")
	cmd.Flags().Int64Var(&priceMist, "price", domain.DefaultListenPriceMist, "listen price in MIST")
	cmd.Flags().Uint16Var(&royaltyBPS, "royalty", 500, "remix royalty in basis points")
	cmd.Flags().StringVar(&parentID, "parent", "", "parent track id when publishing a remix")
	_ = cmd.MarkFlagRequired("audio")
	return cmd
}

func newStakeCmd() *cobra.Command {
	var (
		trackID    string
		amountMist int64
		lockEpochs uint64
		unstakeID  string
	)

	cmd := &cobra.Command{
		Use:   "stake",
		Short: "Show the stake board, or stake and unstake on track popularity",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.shutdown()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if unstakeID != "" {
				if err := app.stake.Unstake(ctx, unstakeID); err != nil {
					return err
				}
				fmt.Printf("position released: %s\n", unstakeID)
				return nil
			}

			if trackID != "" {
				handle, err := app.stake.Stake(ctx, trackID, amountMist, lockEpochs)
				if err != nil {
					return err
				}
				fmt.Printf("stake position opened: %s\n", handle.ID)
				return nil
			}

			if err := app.stake.Load(ctx); err != nil {
				return err
			}
			state := app.stake.Snapshot()
			for _, entry := range state.Board {
				fmt.Printf("%s  %s - %s  (%d listens)\n",
					entry.Track.ID, entry.Metadata.Title, entry.Metadata.Artist, entry.Track.TotalListens)
			}
			for _, position := range state.Positions {
				fmt.Printf("position %s on %s: %.3f SUI, unlocks at epoch %d\n",
					position.ID, position.TrackID, domain.MistToSui(position.Amount), position.UnlockEpoch)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&trackID, "track", "", "track id to stake on")
	cmd.Flags().Int64Var(&amountMist, "amount", domain.PredictionStakeMist, "stake amount in MIST")
	cmd.Flags().Uint64Var(&lockEpochs, "lock", domain.PredictionLockEpochs, "lock period in epochs")
	cmd.Flags().StringVar(&unstakeID, "unstake", "", "position id to release")
	return cmd
}

func newProfileCmd() *cobra.Command {
	var (
		withdrawTrack string
		withdrawMist  int64
	)

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show owned tracks, capabilities and stake positions",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.shutdown()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if withdrawTrack != "" {
				if err := app.profile.WithdrawRevenue(ctx, withdrawTrack, withdrawMist); err != nil {
					return err
				}
				fmt.Printf("withdrew %.3f SUI from %s\n", domain.MistToSui(uint64(withdrawMist)), withdrawTrack)
				return nil
			}

			if err := app.profile.Load(ctx); err != nil {
				return err
			}
			state := app.profile.Snapshot()
			fmt.Printf("address: %s\n", state.Address)
			for _, track := range state.Tracks {
				fmt.Printf("track %s: %s, %d listens, %.3f SUI pooled\n",
					track.ID, track.Status, track.TotalListens, domain.MistToSui(track.RevenuePool))
			}
			for _, cap := range state.Capabilities {
				fmt.Printf("capability %s for %s, expires %s\n",
					cap.ID, cap.TrackID, cap.ExpiresAt.Format("2006-01-02 15:04:05"))
			}
			for _, position := range state.Positions {
				fmt.Printf("position %s on %s: %.3f SUI, unlocks at epoch %d\n",
					position.ID, position.TrackID, domain.MistToSui(position.Amount), position.UnlockEpoch)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&withdrawTrack, "withdraw", "", "track id to withdraw revenue from")
	cmd.Flags().Int64Var(&withdrawMist, "amount", 0, "withdrawal amount in MIST")
	return cmd
}
