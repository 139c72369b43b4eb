package bitcoin

import (
	"bufio"
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/model"
	"go.uber.org/zap"
)

const (
	// blockDownloadWindow bounds the out-of-order blocks held while waiting for a parent.
	blockDownloadWindow = 1024
	maxBlockRecordSize  = 32 << 20
)

// FileSourceConfig selects the blk*.dat files to replay.
type FileSourceConfig struct {
	// Dir is the node's blocks directory holding blk*.dat files.
	Dir string
	// StartFile is the index into the sorted file list to start from.
	StartFile int
	// After is the hash the first yielded block must extend; empty means genesis.
	After string
	// Stored, when set, reports blocks already on the main chain. Those are
	// skipped instead of buffered since they can never be yielded again.
	Stored HeightLookup
}

// HeightLookup returns the stored height of a block, model.ErrNotFound when unknown.
type HeightLookup interface {
	GetHeight(hash string) (int64, error)
}

// FileSource replays blocks from the node's raw block files. The files store
// blocks in download order, so blocks are buffered until their parent was
// yielded. It implements chain.BlockSource.
type FileSource struct {
	files   []string
	magic   uint32
	decoder *ScriptDecoder
	stored  HeightLookup
	logger  *zap.Logger
	window  int

	fileIndex int
	file      *os.File
	reader    *bufio.Reader
	eof       bool

	expected string
	// pending holds parsed blocks keyed by their parent hash.
	pending map[string]*wire.MsgBlock
}

// NewFileSource lists the block files in cfg.Dir.
func NewFileSource(cfg FileSourceConfig, decoder *ScriptDecoder, logger *zap.Logger) (*FileSource, error) {
	if decoder == nil {
		return nil, errors.New("script decoder is required")
	}
	files, err := filepath.Glob(filepath.Join(cfg.Dir, "blk*.dat"))
	if err != nil {
		return nil, fmt.Errorf("list block files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no block files found in %s", cfg.Dir)
	}
	sort.Strings(files)
	if cfg.StartFile < 0 || cfg.StartFile >= len(files) {
		return nil, fmt.Errorf("start file %d out of range [0, %d)", cfg.StartFile, len(files))
	}
	expected := cfg.After
	if expected == "" {
		expected = model.GenesisParentHash
	}
	return &FileSource{
		files:     files,
		magic:     uint32(decoder.Params().Net),
		decoder:   decoder,
		stored:    cfg.Stored,
		logger:    logger.Named("fileSource"),
		window:    blockDownloadWindow,
		fileIndex: cfg.StartFile,
		expected:  expected,
		pending:   make(map[string]*wire.MsgBlock),
	}, nil
}

// FileIndex returns the index of the file currently being read.
func (s *FileSource) FileIndex() int {
	return s.fileIndex
}

// Next returns the next block extending the previously yielded one.
func (s *FileSource) Next(ctx context.Context) (*model.RawBlock, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if block, ok := s.pending[s.expected]; ok {
			delete(s.pending, s.expected)
			s.expected = block.BlockHash().String()
			return BlockFromWire(block, s.decoder), nil
		}
		if s.eof {
			if len(s.pending) > 0 {
				s.logger.Warn("block files exhausted with unlinked blocks", zap.Int("pending", len(s.pending)))
			}
			return nil, io.EOF
		}

		block, err := s.readBlock()
		if errors.Is(err, io.EOF) {
			s.eof = true
			continue
		}
		if err != nil {
			return nil, err
		}

		prev := block.Header.PrevBlock.String()
		if _, dup := s.pending[prev]; dup {
			continue
		}
		if prev != s.expected {
			skip, err := s.isStored(block)
			if err != nil {
				return nil, err
			}
			if skip {
				continue
			}
		}
		s.hold(prev, block)
	}
}

func (s *FileSource) isStored(block *wire.MsgBlock) (bool, error) {
	if s.stored == nil {
		return false, nil
	}
	hash := block.BlockHash().String()
	height, err := s.stored.GetHeight(hash)
	if errors.Is(err, model.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check stored block %s: %w", hash, err)
	}
	return height >= 0, nil
}

// hold buffers block under its parent. A full window gives up the block with
// the oldest header time, which is the one furthest behind the chain tip.
func (s *FileSource) hold(prev string, block *wire.MsgBlock) {
	if prev != s.expected && len(s.pending) >= s.window {
		oldest := ""
		for parent, b := range s.pending {
			if parent == s.expected {
				continue
			}
			if oldest == "" || b.Header.Timestamp.Before(s.pending[oldest].Header.Timestamp) {
				oldest = parent
			}
		}
		if oldest == "" || !block.Header.Timestamp.After(s.pending[oldest].Header.Timestamp) {
			s.logger.Debug("download window full, dropping block",
				zap.String("hash", block.BlockHash().String()),
				zap.String("file", s.files[s.fileIndex]),
			)
			return
		}
		s.logger.Debug("download window full, evicting block",
			zap.String("hash", s.pending[oldest].BlockHash().String()),
		)
		delete(s.pending, oldest)
	}
	s.pending[prev] = block
}

// Close closes the file being read.
func (s *FileSource) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// readBlock reads one record, moving through files. io.EOF means every file was read.
func (s *FileSource) readBlock() (*wire.MsgBlock, error) {
	for {
		if s.reader == nil {
			if s.fileIndex >= len(s.files) {
				return nil, io.EOF
			}
			f, err := os.Open(s.files[s.fileIndex])
			if err != nil {
				return nil, fmt.Errorf("open block file: %w", err)
			}
			s.logger.Info("reading block file", zap.String("file", s.files[s.fileIndex]))
			s.file = f
			s.reader = bufio.NewReaderSize(f, 1<<20)
		}

		block, err := s.readRecord()
		if err == nil {
			return block, nil
		}
		if !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read %s: %w", s.files[s.fileIndex], err)
		}
		if err := s.Close(); err != nil {
			return nil, fmt.Errorf("close block file: %w", err)
		}
		s.reader = nil
		if s.fileIndex == len(s.files)-1 {
			return nil, io.EOF
		}
		s.fileIndex++
	}
}

// readRecord parses magic(4) size(4) block. A zero magic marks the
// preallocated tail of a file and is reported as io.EOF.
func (s *FileSource) readRecord() (*wire.MsgBlock, error) {
	var header [8]byte
	if _, err := io.ReadFull(s.reader, header[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, io.EOF
		}
		return nil, err
	}
	magic := binary.LittleEndian.Uint32(header[:4])
	if magic == 0 {
		return nil, io.EOF
	}
	if magic != s.magic {
		return nil, fmt.Errorf("magic mismatch: got %08x, want %08x", magic, s.magic)
	}
	size := binary.LittleEndian.Uint32(header[4:])
	if size > maxBlockRecordSize {
		return nil, fmt.Errorf("block record size %d too large", size)
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(s.reader, buf); err != nil {
		return nil, fmt.Errorf("read block record: %w", err)
	}
	var block wire.MsgBlock
	if err := block.Deserialize(bytes.NewReader(buf)); err != nil {
		return nil, fmt.Errorf("deserialize block: %w", err)
	}
	return &block, nil
}
