package bitcoin

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/model"
)

// RPCSource walks the node's main chain through nextblockhash links. It
// implements chain.BlockSource.
type RPCSource struct {
	fetcher BlockFetcher
	decoder *ScriptDecoder
	after   string
	next    string
	started bool
	done    bool
}

// NewRPCSource creates a source yielding the blocks following after. An empty
// after starts from the genesis block.
func NewRPCSource(fetcher BlockFetcher, decoder *ScriptDecoder, after string) (*RPCSource, error) {
	if fetcher == nil {
		return nil, errors.New("block fetcher is required")
	}
	if decoder == nil {
		return nil, errors.New("script decoder is required")
	}
	return &RPCSource{fetcher: fetcher, decoder: decoder, after: after}, nil
}

// Next fetches the block at the cursor and advances it. io.EOF is returned
// when the node reports no successor.
func (s *RPCSource) Next(ctx context.Context) (*model.RawBlock, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !s.started {
		if err := s.start(ctx); err != nil {
			return nil, err
		}
		s.started = true
	}
	if s.done || s.next == "" {
		s.done = true
		return nil, io.EOF
	}

	src, err := s.fetcher.GetBlock(ctx, s.next)
	if err != nil {
		return nil, fmt.Errorf("get block %s: %w", s.next, err)
	}
	block, err := BlockFromRPC(src, s.decoder)
	if err != nil {
		return nil, err
	}
	s.next = src.NextHash
	return block, nil
}

// Close releases nothing; the RPC connection is owned by the caller.
func (s *RPCSource) Close() error {
	return nil
}

func (s *RPCSource) start(ctx context.Context) error {
	if s.after == "" {
		hash, err := s.fetcher.GetBlockHashAtHeight(ctx, 0)
		if err != nil {
			return fmt.Errorf("get genesis hash: %w", err)
		}
		s.next = hash
		return nil
	}
	src, err := s.fetcher.GetBlock(ctx, s.after)
	if err != nil {
		return fmt.Errorf("get start block %s: %w", s.after, err)
	}
	s.next = src.NextHash
	return nil
}
