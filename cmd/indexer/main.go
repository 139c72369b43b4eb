// Command indexer replays the node's chain into the local index and then
// follows it through live gossip, RPC catch-up and optional export.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/logging"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/blockdb"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/chainsync"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/explorer"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/kvstore"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/repository/clickhouse"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/service/ingester"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/txdb"
)

type config struct {
	Coin              model.Coin    `long:"coin" env:"INDEXER_COIN" default:"BTC" description:"coin name"`
	Network           model.Network `long:"network" env:"INDEXER_NETWORK" required:"true" description:"network name (mainnet, testnet, regtest, signet)"`
	DBPath            string        `long:"db-path" env:"INDEXER_DB_PATH" default:"data/indexer" description:"leveldb directory"`
	DBCacheSize       string        `long:"db-cache-size" env:"INDEXER_DB_CACHE_SIZE" default:"64MiB" description:"leveldb block cache size"`
	DBWriteBuffer     string        `long:"db-write-buffer" env:"INDEXER_DB_WRITE_BUFFER" default:"16MiB" description:"leveldb write buffer size"`
	SafeConfirmations int64         `long:"safe-confirmations" env:"INDEXER_SAFE_CONFIRMATIONS" default:"6" description:"depth after which confirmations are cached; changing it requires a resync"`
	RPCURL            string        `long:"rpc-url" env:"INDEXER_RPC_URL" default:"http://127.0.0.1:8332" description:"node RPC URL"`
	RPCUser           string        `long:"rpc-user" env:"INDEXER_RPC_USER" description:"node RPC username"`
	RPCPassword       string        `long:"rpc-password" env:"INDEXER_RPC_PASSWORD" description:"node RPC password"`
	RPCTimeout        time.Duration `long:"rpc-timeout" env:"INDEXER_RPC_TIMEOUT" default:"30s" description:"timeout of a single RPC call"`
	BlocksDir         string        `long:"blocks-dir" env:"INDEXER_BLOCKS_DIR" description:"node blocks directory for blk*.dat replay; empty syncs through RPC"`
	ForceRPC          bool          `long:"force-rpc" env:"INDEXER_FORCE_RPC" description:"never replay block files"`
	ZMQAddr           string        `long:"zmq-addr" env:"INDEXER_ZMQ_ADDR" description:"node ZMQ publisher address"`
	PeerAddr          string        `long:"peer-addr" env:"INDEXER_PEER_ADDR" description:"node P2P address for block and transaction gossip"`
	PollInterval      time.Duration `long:"poll-interval" env:"INDEXER_POLL_INTERVAL" default:"1m" description:"RPC catch-up interval without a block signal"`
	StatusInterval    time.Duration `long:"status-interval" env:"INDEXER_STATUS_INTERVAL" default:"5m" description:"interval of status log lines"`
	ClickhouseDSN     string        `long:"clickhouse-dsn" env:"INDEXER_CLICKHOUSE_DSN" description:"ClickHouse DSN for block export; empty disables export"`
	MetricsAddr       string        `long:"metrics-addr" env:"INDEXER_METRICS_ADDR" default:":2112" description:"address for metrics server"`

	Logging logging.Config `group:"logging" env-namespace:"INDEXER"`
}

func main() {
	cfg := config{}
	if _, err := flags.Parse(&cfg); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		log.Fatalf("failed to parse flags: %v", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("can't initialize logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()
	logger = logger.With(zap.String("coin", string(cfg.Coin)), zap.String("network", string(cfg.Network)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("indexer failed", zap.Error(err))
	}
	logger.Info("indexer stopped")
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	decoder, err := bitcoin.NewScriptDecoder(cfg.Network)
	if err != nil {
		return fmt.Errorf("init script decoder: %w", err)
	}

	db, err := kvstore.Open(cfg.DBPath, kvstore.Options{CacheSize: cfg.DBCacheSize, WriteBufferSize: cfg.DBWriteBuffer}, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("close store", zap.Error(err))
		}
	}()

	blocks := blockdb.New(db, logger)
	outputs, err := txdb.New(db, blocks, metrics.NewIndexStore(cfg.Coin, cfg.Network), cfg.SafeConfirmations, logger)
	if err != nil {
		return fmt.Errorf("init index store: %w", err)
	}
	engine, err := chainsync.New(db, blocks, outputs, metrics.NewChainEngine(cfg.Coin, cfg.Network), 0, logger)
	if err != nil {
		return fmt.Errorf("init chain engine: %w", err)
	}

	rpcClient, err := newRPCClient(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
	if err != nil {
		return fmt.Errorf("init rpc client: %w", err)
	}
	defer func() {
		rpcClient.Shutdown()
		rpcClient.WaitForShutdown()
	}()
	node, err := bitcoin.NewRPCClient(rpcClient, metrics.NewNodeRPC(cfg.Coin, cfg.Network), decoder, cfg.RPCTimeout)
	if err != nil {
		return fmt.Errorf("init node client: %w", err)
	}

	var sink ingester.ChangeSink
	if cfg.ClickhouseDSN != "" {
		writer, closeExport, err := startExport(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer closeExport()
		sink = writer
	}

	historic, err := ingester.NewHistoricSync(
		ingester.HistoricSyncConfig{BlocksDir: cfg.BlocksDir, ForceRPC: cfg.ForceRPC, StartFile: -1},
		node,
		engine,
		blocks,
		sink,
		decoder,
		metrics.NewHistoricSync(cfg.Coin, cfg.Network),
		logger,
	)
	if err != nil {
		return fmt.Errorf("init historic sync: %w", err)
	}
	if err := historic.Run(ctx); err != nil {
		return fmt.Errorf("historic sync: %w", err)
	}

	exp, err := explorer.New(blocks, outputs, node, historic, logger)
	if err != nil {
		return fmt.Errorf("init explorer: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	var blockSignal chan struct{}
	if cfg.ZMQAddr != "" {
		zmqSignal, err := bitcoin.NewZMQBlockSignal(cfg.ZMQAddr, logger)
		if err != nil {
			return fmt.Errorf("init block signal: %w", err)
		}
		blockSignal = make(chan struct{}, 1)
		g.Go(func() error {
			return zmqSignal.Run(ctx, blockSignal)
		})
	}

	follower, err := ingester.NewFollower(historic, blockSignal, cfg.PollInterval, logger)
	if err != nil {
		return fmt.Errorf("init follower: %w", err)
	}
	g.Go(func() error {
		return follower.Run(ctx)
	})

	source, err := newLiveSource(cfg, decoder, logger)
	if err != nil {
		return err
	}
	if source != nil {
		live, err := ingester.NewLiveSync(source, engine, historic, sink, metrics.NewLiveSync(cfg.Coin, cfg.Network), logger)
		if err != nil {
			return fmt.Errorf("init live sync: %w", err)
		}
		g.Go(func() error {
			return live.Run(ctx)
		})
	}

	g.Go(func() error {
		return reportStatus(ctx, exp, cfg.StatusInterval, logger)
	})

	return g.Wait()
}

// newLiveSource prefers P2P gossip and falls back to ZMQ. Neither configured
// leaves the follower as the only driver.
func newLiveSource(cfg config, decoder *bitcoin.ScriptDecoder, logger *zap.Logger) (chain.LiveSource, error) {
	switch {
	case cfg.PeerAddr != "":
		source, err := bitcoin.NewPeerSource(cfg.PeerAddr, decoder, logger)
		if err != nil {
			return nil, fmt.Errorf("init peer source: %w", err)
		}
		return source, nil
	case cfg.ZMQAddr != "":
		source, err := bitcoin.NewZMQSource(cfg.ZMQAddr, decoder, logger)
		if err != nil {
			return nil, fmt.Errorf("init zmq source: %w", err)
		}
		return source, nil
	default:
		logger.Info("no live source configured, relying on rpc polling")
		return nil, nil
	}
}

func startExport(ctx context.Context, cfg config, logger *zap.Logger) (*ingester.ExportWriter, func(), error) {
	repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, cfg.Coin, cfg.Network, metrics.NewExportRepository())
	if err != nil {
		return nil, nil, fmt.Errorf("init export repository: %w", err)
	}
	height, err := repo.MainChainHeight(ctx)
	if err != nil {
		_ = repo.Close()
		return nil, nil, fmt.Errorf("read exported height: %w", err)
	}
	logger.Info("export enabled", zap.Int64("exported_height", height))

	writer, err := ingester.NewExportWriter(repo, logger)
	if err != nil {
		_ = repo.Close()
		return nil, nil, err
	}
	writer.Start(ctx)
	return writer, func() {
		writer.Stop()
		if err := repo.Close(); err != nil {
			logger.Error("close export repository", zap.Error(err))
		}
	}, nil
}

func reportStatus(ctx context.Context, exp *explorer.Explorer, interval time.Duration, logger *zap.Logger) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			status, err := exp.Status(ctx)
			if err != nil {
				logger.Warn("status unavailable", zap.Error(err))
				continue
			}
			logger.Info("status",
				zap.Int64("tip_height", status.Tip.Height),
				zap.String("tip", status.Tip.Hash),
				zap.Int64("node_blocks", status.Node.Blocks),
				zap.String("sync_status", string(status.Sync.Status)),
			)
		}
	}
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}

func newRPCClient(rawURL, user, password string) (*rpcclient.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	return rpcclient.New(&rpcclient.ConnConfig{
		Host:         parsed.Host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   true,
	}, nil)
}
