package txdb

import (
	"encoding/binary"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/kvstore"
)

// endOfWorldTs is subtracted from timestamps so address scans run newest first.
const endOfWorldTs = 10_000_000_000_000

// Output keyspace ("t") and address keyspace ("a").
var (
	prefixOutput  = []byte("to") // to <txid> <vout:4> -> value, address, script
	prefixSpend   = []byte("ts") // ts <txid> <vout:4> <spending txid> <vin:4> -> ts
	prefixAddress = []byte("a")  // a <len:1 addr> <inverted ts:8> <txid> <vout:4> -> value [cache]
)

// Prefixes of the keyspaces owned by this package.
var (
	OutputPrefix  = []byte("t")
	AddressPrefix = prefixAddress
)

const (
	flagConfirmed      byte = 1 << 0
	flagSpentConfirmed byte = 1 << 1
)

func outputKey(txid []byte, vout uint32) []byte {
	return kvstore.Key(prefixOutput, txid, kvstore.Uint32(vout))
}

func spendPrefix(txid []byte, vout uint32) []byte {
	return kvstore.Key(prefixSpend, txid, kvstore.Uint32(vout))
}

func spendKey(txid []byte, vout uint32, spending []byte, vin uint32) []byte {
	return kvstore.Key(spendPrefix(txid, vout), spending, kvstore.Uint32(vin))
}

func addressPrefix(addr string) ([]byte, error) {
	a, err := kvstore.String(addr)
	if err != nil {
		return nil, err
	}
	return kvstore.Key(prefixAddress, a), nil
}

func invertTs(ts int64) uint64 {
	if ts < 0 {
		ts = 0
	}
	if ts > endOfWorldTs {
		ts = endOfWorldTs
	}
	return uint64(endOfWorldTs - ts)
}

// keyTs is ts as it reads back from an address key.
func keyTs(ts int64) int64 {
	return endOfWorldTs - int64(invertTs(ts))
}

func addressKey(addr string, ts int64, txid []byte, vout uint32) ([]byte, error) {
	p, err := addressPrefix(addr)
	if err != nil {
		return nil, err
	}
	return kvstore.Key(p, kvstore.Uint64(invertTs(ts)), txid, kvstore.Uint32(vout)), nil
}

type addressKeyParts struct {
	ts   int64
	txid string
	vout uint32
}

func parseAddressKey(prefixLen int, key []byte) (addressKeyParts, error) {
	rest := key[prefixLen:]
	if len(rest) != 8+kvstore.HashSize+4 {
		return addressKeyParts{}, fmt.Errorf("parse address key: bad length %d", len(rest))
	}
	txid, err := kvstore.HashString(rest[8 : 8+kvstore.HashSize])
	if err != nil {
		return addressKeyParts{}, err
	}
	return addressKeyParts{
		ts:   endOfWorldTs - int64(binary.BigEndian.Uint64(rest[:8])),
		txid: txid,
		vout: binary.BigEndian.Uint32(rest[8+kvstore.HashSize:]),
	}, nil
}

// outputValue is the stored form of an output record. firstSeen and lastSeen
// are the oldest and newest timestamps the output was recorded at, matching
// the timestamps of its address entries.
type outputValue struct {
	value     int64
	firstSeen int64
	lastSeen  int64
	address   string
	script    []byte
}

func (v outputValue) encode() ([]byte, error) {
	a, err := kvstore.String(v.address)
	if err != nil {
		return nil, err
	}
	return kvstore.Key(kvstore.Int64(v.value), kvstore.Int64(v.firstSeen), kvstore.Int64(v.lastSeen), a, v.script), nil
}

func decodeOutputValue(b []byte) (outputValue, error) {
	const head = 24
	if len(b) < head+1 {
		return outputValue{}, fmt.Errorf("decode output: short value of %d bytes", len(b))
	}
	n := int(b[head])
	if len(b) < head+1+n {
		return outputValue{}, fmt.Errorf("decode output: address overflows value")
	}
	return outputValue{
		value:     int64(binary.BigEndian.Uint64(b[:8])),
		firstSeen: int64(binary.BigEndian.Uint64(b[8:16])),
		lastSeen:  int64(binary.BigEndian.Uint64(b[16:24])),
		address:   string(b[head+1 : head+1+n]),
		script:    append([]byte(nil), b[head+1+n:]...),
	}, nil
}

// seen merges an observation at ts into the record.
func (v *outputValue) seen(ts int64) {
	ts = keyTs(ts)
	v.firstSeen = min(v.firstSeen, ts)
	v.lastSeen = max(v.lastSeen, ts)
}

// addressValue is the stored form of an address-index entry with its
// optional confirmation cache.
type addressValue struct {
	value          int64
	confirmed      bool
	spentConfirmed bool
	spentTxID      []byte
	spentIndex     uint32
	spentTs        int64
}

func (v addressValue) encode() []byte {
	b := kvstore.Int64(v.value)
	if !v.confirmed {
		return b
	}
	if !v.spentConfirmed {
		return append(b, flagConfirmed)
	}
	b = append(b, flagConfirmed|flagSpentConfirmed)
	return kvstore.Key(b, v.spentTxID, kvstore.Uint32(v.spentIndex), kvstore.Int64(v.spentTs))
}

func decodeAddressValue(b []byte) (addressValue, error) {
	if len(b) < 8 {
		return addressValue{}, fmt.Errorf("decode address entry: short value of %d bytes", len(b))
	}
	v := addressValue{value: int64(binary.BigEndian.Uint64(b[:8]))}
	if len(b) == 8 {
		return v, nil
	}
	flags := b[8]
	v.confirmed = flags&flagConfirmed != 0
	if flags&flagSpentConfirmed == 0 {
		return v, nil
	}
	rest := b[9:]
	if len(rest) != kvstore.HashSize+4+8 {
		return addressValue{}, fmt.Errorf("decode address entry: bad spend cache length %d", len(rest))
	}
	v.spentConfirmed = true
	v.spentTxID = rest[:kvstore.HashSize]
	v.spentIndex = binary.BigEndian.Uint32(rest[kvstore.HashSize:])
	v.spentTs = int64(binary.BigEndian.Uint64(rest[kvstore.HashSize+4:]))
	return v, nil
}
