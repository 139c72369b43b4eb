package bitcoin

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/chain"
)

const (
	topicHashBlock = "hashblock"
	topicRawBlock  = "rawblock"
	topicRawTx     = "rawtx"
)

// decodeZMQMessage turns a multipart rawblock or rawtx notification into a
// live event. ts is used as the first-seen time of a transaction.
func decodeZMQMessage(parts [][]byte, ts int64, decoder *ScriptDecoder) (chain.LiveEvent, error) {
	if len(parts) < 2 {
		return chain.LiveEvent{}, fmt.Errorf("malformed zmq message with %d parts", len(parts))
	}
	switch topic := string(parts[0]); topic {
	case topicRawBlock:
		var block wire.MsgBlock
		if err := block.Deserialize(bytes.NewReader(parts[1])); err != nil {
			return chain.LiveEvent{}, fmt.Errorf("deserialize zmq block: %w", err)
		}
		return chain.LiveEvent{Block: BlockFromWire(&block, decoder)}, nil
	case topicRawTx:
		var tx wire.MsgTx
		if err := tx.Deserialize(bytes.NewReader(parts[1])); err != nil {
			return chain.LiveEvent{}, fmt.Errorf("deserialize zmq tx: %w", err)
		}
		norm := TxFromWire(&tx, ts, decoder)
		return chain.LiveEvent{Tx: &norm}, nil
	default:
		return chain.LiveEvent{}, fmt.Errorf("unexpected zmq topic %q", topic)
	}
}
