// Command sync runs one historic sync pass against the local index and exits.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/logging"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/blockdb"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/chainsync"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/kvstore"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/repository/clickhouse"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/service/ingester"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/txdb"
)

type config struct {
	Coin              model.Coin    `long:"coin" env:"SYNC_COIN" default:"BTC" description:"coin name"`
	Network           model.Network `long:"network" env:"SYNC_NETWORK" required:"true" description:"network name (mainnet, testnet, regtest, signet)"`
	DBPath            string        `long:"db-path" env:"SYNC_DB_PATH" default:"data/indexer" description:"leveldb directory"`
	DBCacheSize       string        `long:"db-cache-size" env:"SYNC_DB_CACHE_SIZE" default:"64MiB" description:"leveldb block cache size"`
	DBWriteBuffer     string        `long:"db-write-buffer" env:"SYNC_DB_WRITE_BUFFER" default:"64MiB" description:"leveldb write buffer size"`
	SafeConfirmations int64         `long:"safe-confirmations" env:"SYNC_SAFE_CONFIRMATIONS" default:"6" description:"depth after which confirmations are cached"`
	RPCURL            string        `long:"rpc-url" env:"SYNC_RPC_URL" default:"http://127.0.0.1:8332" description:"node RPC URL"`
	RPCUser           string        `long:"rpc-user" env:"SYNC_RPC_USER" description:"node RPC username"`
	RPCPassword       string        `long:"rpc-password" env:"SYNC_RPC_PASSWORD" description:"node RPC password"`
	RPCTimeout        time.Duration `long:"rpc-timeout" env:"SYNC_RPC_TIMEOUT" default:"30s" description:"timeout of a single RPC call"`
	BlocksDir         string        `long:"blocks-dir" env:"SYNC_BLOCKS_DIR" description:"node blocks directory for blk*.dat replay"`
	ClickhouseDSN     string        `long:"clickhouse-dsn" env:"SYNC_CLICKHOUSE_DSN" description:"ClickHouse DSN for block export; empty disables export"`

	Destroy   bool     `short:"D" long:"destroy" description:"remove the current index before syncing"`
	StartFile int      `short:"S" long:"start-file" default:"-1" description:"block file number to start from; negative uses the stored index"`
	ForceRPC  bool     `short:"R" long:"rpc" description:"force sync through RPC"`
	Start     string   `long:"start" description:"resume from this stored block hash"`
	Stop      string   `long:"stop" description:"stop before this block hash"`
	DropTx    []string `long:"drop-tx" description:"remove a transaction's outputs and spends from the index and exit (repeatable)"`

	Logging logging.Config `group:"logging" env-namespace:"SYNC"`
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

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("sync failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	db, err := kvstore.Open(cfg.DBPath, kvstore.Options{CacheSize: cfg.DBCacheSize, WriteBufferSize: cfg.DBWriteBuffer}, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("close store", zap.Error(err))
		}
	}()

	var repo *clickhouse.Repository
	if cfg.ClickhouseDSN != "" {
		repo, err = clickhouse.NewRepository(cfg.ClickhouseDSN, cfg.Coin, cfg.Network, metrics.NewExportRepository())
		if err != nil {
			return fmt.Errorf("init export repository: %w", err)
		}
		defer func() {
			_ = repo.Close()
		}()
	}

	if cfg.Destroy {
		logger.Info("deleting index")
		if err := db.Drop(); err != nil {
			return err
		}
		if repo != nil {
			if err := repo.ResetNetwork(ctx); err != nil {
				return fmt.Errorf("reset export: %w", err)
			}
		}
	}

	blocks := blockdb.New(db, logger)
	outputs, err := txdb.New(db, blocks, metrics.NewIndexStore(cfg.Coin, cfg.Network), cfg.SafeConfirmations, logger)
	if err != nil {
		return fmt.Errorf("init index store: %w", err)
	}

	if len(cfg.DropTx) > 0 {
		for _, txid := range cfg.DropTx {
			n, err := outputs.RemoveTransaction(txid)
			if err != nil {
				return fmt.Errorf("drop transaction %s: %w", txid, err)
			}
			logger.Info("transaction dropped", zap.String("txid", txid), zap.Int("keys", n))
		}
		return nil
	}

	engine, err := chainsync.New(db, blocks, outputs, metrics.NewChainEngine(cfg.Coin, cfg.Network), 0, logger)
	if err != nil {
		return fmt.Errorf("init chain engine: %w", err)
	}

	decoder, err := bitcoin.NewScriptDecoder(cfg.Network)
	if err != nil {
		return fmt.Errorf("init script decoder: %w", err)
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
	if repo != nil {
		writer, err := ingester.NewExportWriter(repo, logger)
		if err != nil {
			return err
		}
		writer.Start(ctx)
		defer writer.Stop()
		sink = writer
	}

	historic, err := ingester.NewHistoricSync(
		ingester.HistoricSyncConfig{
			BlocksDir: cfg.BlocksDir,
			ForceRPC:  cfg.ForceRPC,
			StartFile: cfg.StartFile,
			StartAt:   cfg.Start,
			StopAt:    cfg.Stop,
		},
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

	logger.Info("sync options",
		zap.Bool("destroy", cfg.Destroy),
		zap.Int("start_file", cfg.StartFile),
		zap.Bool("force_rpc", cfg.ForceRPC),
		zap.String("start", cfg.Start),
		zap.String("stop", cfg.Stop),
	)
	err = historic.Run(ctx)
	info := historic.Info()
	logger.Info("sync info",
		zap.String("status", string(info.Status)),
		zap.String("type", string(info.Type)),
		zap.Int64("height", info.Height),
		zap.Int64("chain_height", info.BlockChainHeight),
		zap.Float64("percentage", info.SyncPercentage),
		zap.String("tip", info.SyncTipHash),
	)
	return err
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
