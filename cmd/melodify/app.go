package main

import (
	"fmt"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/redis/go-redis/v9"

	"github.com/melodify-live/melodify-client/internal/access"
	"github.com/melodify-live/melodify-client/internal/adapter"
	"github.com/melodify-live/melodify-client/internal/config"
	"github.com/melodify-live/melodify-client/internal/ledger"
	"github.com/melodify-live/melodify-client/internal/logger"
	"github.com/melodify-live/melodify-client/internal/metadata"
	"github.com/melodify-live/melodify-client/internal/player"
	"github.com/melodify-live/melodify-client/internal/storage"
	"github.com/melodify-live/melodify-client/internal/txbuilder"
	"github.com/melodify-live/melodify-client/internal/views"
	"github.com/melodify-live/melodify-client/internal/wallet"
)

// app holds the fully wired dependency graph shared by the subcommands
type app struct {
	cfg      *config.ClientConfig
	ledger   ledger.Client
	builder  *txbuilder.Builder
	signer   wallet.Signer
	gateway  storage.Gateway
	metadata metadata.Resolver
	access   access.Resolver
	player   *player.Store
	pool     pond.Pool

	discover *views.DiscoverView
	play     *views.PlayView
	publish  *views.PublishView
	stake    *views.StakeView
	profile  *views.ProfileView
	chart    *views.ChartSimulator
}

// newApp loads configuration, initializes logging and constructs every
// component. Call shutdown when done so buffered log entries flush.
func newApp() (*app, error) {
	cfg, err := config.LoadClientConfig(configFile, envPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags:      map[string]string{"network": string(cfg.Ledger.Network)},
	}); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	cfg.WarnMissing()

	httpClient := adapter.NewHTTPClient(cfg.HTTPTimeout, adapter.NewIO())
	jsonAdapter := adapter.NewJSON()
	clock := adapter.NewClock()

	ledgerClient := ledger.NewClient(cfg.Ledger.RPCURL, httpClient, jsonAdapter)

	var cache storage.URLCache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		cache = storage.NewRedisCache(redisClient, cfg.Storage.URLCacheTTL)
	} else {
		cache = storage.NewMemoryCache(cfg.Storage.URLCacheTTL)
	}

	gateway := storage.NewGateway(storage.Config{
		PublisherURL:  cfg.Storage.PublisherURL,
		AggregatorURL: cfg.Storage.AggregatorURL,
		UploadEpochs:  cfg.Storage.UploadEpochs,
	}, httpClient, jsonAdapter, cache)

	metadataResolver := metadata.NewResolver(httpClient, jsonAdapter, gateway)

	builder := txbuilder.NewBuilder(txbuilder.Config{
		PackageID:       cfg.Ledger.PackageID,
		TrackRegistryID: cfg.Ledger.TrackRegistryID,
		ListenConfigID:  cfg.Ledger.ListenConfigID,
		ParentPoolID:    cfg.Ledger.ParentPoolID,
		TreasuryID:      cfg.Ledger.TreasuryID,
		StakeRegistryID: cfg.Ledger.StakeRegistryID,
	})

	signer := wallet.NewTestSigner(seedPhrase, ledgerClient, jsonAdapter)
	accessResolver := access.NewResolver(ledgerClient, builder, clock, cfg.Ledger.PackageID)
	playerStore := player.NewStore()
	pool := pond.NewPool(cfg.FetchPool)

	a := &app{
		cfg:      cfg,
		ledger:   ledgerClient,
		builder:  builder,
		signer:   signer,
		gateway:  gateway,
		metadata: metadataResolver,
		access:   accessResolver,
		player:   playerStore,
		pool:     pool,
	}
	a.discover = views.NewDiscoverView(ledgerClient, metadataResolver, pool, cfg.Ledger.PackageID)
	a.play = views.NewPlayView(ledgerClient, metadataResolver, accessResolver, builder, signer, gateway, playerStore)
	a.publish = views.NewPublishView(gateway, metadataResolver, builder, signer)
	a.stake = views.NewStakeView(ledgerClient, metadataResolver, builder, signer, pool, cfg.Ledger.PackageID)
	a.profile = views.NewProfileView(ledgerClient, builder, signer, pool, cfg.Ledger.PackageID)
	a.chart = views.NewChartSimulator(clock, time.Minute, time.Now().UnixNano())

	return a, nil
}

func (a *app) shutdown() {
	a.pool.StopAndWait()
	logger.Flush(5 * time.Second)
}
