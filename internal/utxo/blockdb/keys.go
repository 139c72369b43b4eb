package blockdb

import (
	"encoding/binary"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/kvstore"
)

// Block keyspace layout. Every key starts with 'b' so the keyspace can be
// scanned or dropped on its own.
var (
	prefixTimestamp = []byte("bt") // bt <ts:8> <hash> -> nil
	prefixPrev      = []byte("bp") // bp <hash> -> prev hash
	prefixNext      = []byte("bn") // bn <hash> -> next hash
	prefixHeight    = []byte("bh") // bh <hash> -> height
	prefixBlock     = []byte("bb") // bb <hash> -> ts, txids
	prefixMain      = []byte("bm") // bm <height:8> -> hash
	prefixTxBlock   = []byte("bi") // bi <txid> -> hash, height
	keyTip          = []byte("bT") // hash, height
	keyFileIndex    = []byte("bF") // last bootstrap file index
)

// Prefix is the prefix shared by every key of the block keyspace.
var Prefix = []byte("b")

func timestampKey(ts int64, hash []byte) []byte {
	return kvstore.Key(prefixTimestamp, kvstore.Uint64(clampTs(ts)), hash)
}

func clampTs(ts int64) uint64 {
	if ts < 0 {
		return 0
	}
	return uint64(ts)
}

func mainKey(height int64) []byte {
	return kvstore.Key(prefixMain, kvstore.Uint64(uint64(height)))
}

func encodeHashHeight(hash []byte, height int64) []byte {
	return kvstore.Key(hash, kvstore.Int64(height))
}

func decodeHashHeight(v []byte) (string, int64, error) {
	if len(v) != kvstore.HashSize+8 {
		return "", 0, fmt.Errorf("decode hash height: bad length %d", len(v))
	}
	hash, err := kvstore.HashString(v[:kvstore.HashSize])
	if err != nil {
		return "", 0, err
	}
	height, err := kvstore.DecodeInt64(v[kvstore.HashSize:])
	if err != nil {
		return "", 0, err
	}
	return hash, height, nil
}

func encodeBlock(ts int64, txids [][]byte) []byte {
	v := make([]byte, 8, 8+len(txids)*kvstore.HashSize)
	binary.BigEndian.PutUint64(v, uint64(ts))
	for _, id := range txids {
		v = append(v, id...)
	}
	return v
}

func decodeBlock(v []byte) (int64, []string, error) {
	if len(v) < 8 || (len(v)-8)%kvstore.HashSize != 0 {
		return 0, nil, fmt.Errorf("decode block: bad length %d", len(v))
	}
	ts := int64(binary.BigEndian.Uint64(v))
	n := (len(v) - 8) / kvstore.HashSize
	txids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		off := 8 + i*kvstore.HashSize
		id, err := kvstore.HashString(v[off : off+kvstore.HashSize])
		if err != nil {
			return 0, nil, err
		}
		txids = append(txids, id)
	}
	return ts, txids, nil
}

func hashKeys(hashes []string) ([][]byte, error) {
	out := make([][]byte, 0, len(hashes))
	for _, h := range hashes {
		k, err := kvstore.Hash(h)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, nil
}
