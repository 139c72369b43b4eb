//go:build !zmq

package bitcoin

import (
	"context"
	"errors"

	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/chain"
	"go.uber.org/zap"
)

var errZMQUnsupported = errors.New("zmq support not compiled in; build with -tags zmq")

// ZMQSource is unavailable without the zmq build tag.
type ZMQSource struct{}

// NewZMQSource reports that zmq support is not compiled in.
func NewZMQSource(string, *ScriptDecoder, *zap.Logger) (*ZMQSource, error) {
	return nil, errZMQUnsupported
}

// Run reports that zmq support is not compiled in.
func (*ZMQSource) Run(context.Context, chan<- chain.LiveEvent) error {
	return errZMQUnsupported
}

// ZMQBlockSignal is unavailable without the zmq build tag.
type ZMQBlockSignal struct{}

// NewZMQBlockSignal reports that zmq support is not compiled in.
func NewZMQBlockSignal(string, *zap.Logger) (*ZMQBlockSignal, error) {
	return nil, errZMQUnsupported
}

// Run reports that zmq support is not compiled in.
func (*ZMQBlockSignal) Run(context.Context, chan<- struct{}) error {
	return errZMQUnsupported
}
