//go:build zmq

package bitcoin

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/model"
	"github.com/pebbe/zmq4"
	"go.uber.org/zap"
)

const zmqReceiveTimeout = 2 * time.Second

// ZMQSource streams rawblock and rawtx notifications of a node. It implements chain.LiveSource.
type ZMQSource struct {
	addr    string
	decoder *ScriptDecoder
	logger  *zap.Logger
	now     func() time.Time
}

// NewZMQSource creates a live source subscribed to addr.
func NewZMQSource(addr string, decoder *ScriptDecoder, logger *zap.Logger) (*ZMQSource, error) {
	if addr == "" {
		return nil, errors.New("zmq address is required")
	}
	if decoder == nil {
		return nil, errors.New("script decoder is required")
	}
	return &ZMQSource{addr: addr, decoder: decoder, logger: logger.Named("zmqSource"), now: time.Now}, nil
}

// Run forwards decoded events until ctx is done.
func (s *ZMQSource) Run(ctx context.Context, events chan<- chain.LiveEvent) error {
	sub, err := newSubscriber(s.addr, topicRawBlock, topicRawTx)
	if err != nil {
		return fmt.Errorf("connect zmq: %w: %w", model.ErrUpstreamUnavailable, err)
	}
	defer sub.Close()

	for {
		parts, err := receive(ctx, sub)
		if err != nil {
			return err
		}
		if parts == nil {
			continue
		}
		event, err := decodeZMQMessage(parts, s.now().Unix(), s.decoder)
		if err != nil {
			s.logger.Warn("skip zmq message", zap.Error(err))
			continue
		}
		select {
		case events <- event:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// ZMQBlockSignal notifies on hashblock messages. It implements chain.BlockSignal.
type ZMQBlockSignal struct {
	addr   string
	logger *zap.Logger
}

// NewZMQBlockSignal creates a block signal subscribed to addr.
func NewZMQBlockSignal(addr string, logger *zap.Logger) (*ZMQBlockSignal, error) {
	if addr == "" {
		return nil, errors.New("zmq address is required")
	}
	return &ZMQBlockSignal{addr: addr, logger: logger.Named("zmqBlockSignal")}, nil
}

// Run sends a non-blocking notification for every new block until ctx is done.
func (s *ZMQBlockSignal) Run(ctx context.Context, notify chan<- struct{}) error {
	sub, err := newSubscriber(s.addr, topicHashBlock)
	if err != nil {
		return fmt.Errorf("connect zmq: %w: %w", model.ErrUpstreamUnavailable, err)
	}
	defer sub.Close()

	for {
		parts, err := receive(ctx, sub)
		if err != nil {
			return err
		}
		if parts == nil {
			continue
		}
		if len(parts) < 2 {
			s.logger.Warn("skip malformed zmq message", zap.Int("parts", len(parts)))
			continue
		}
		select {
		case notify <- struct{}{}:
		default:
		}
	}
}

// receive returns nil parts on a receive timeout so callers can observe ctx.
func receive(ctx context.Context, sub *zmq4.Socket) ([][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	parts, err := sub.RecvMessageBytes(0)
	if err == nil {
		return parts, nil
	}
	var errno zmq4.Errno
	if errors.As(err, &errno) && (errno == zmq4.Errno(syscall.EAGAIN) || errno == zmq4.Errno(syscall.ETIMEDOUT)) {
		return nil, nil
	}
	return nil, fmt.Errorf("zmq receive: %w: %w", model.ErrUpstreamUnavailable, err)
}

func newSubscriber(addr string, topics ...string) (*zmq4.Socket, error) {
	sub, err := zmq4.NewSocket(zmq4.SUB)
	if err != nil {
		return nil, err
	}
	if err := sub.SetRcvtimeo(zmqReceiveTimeout); err != nil {
		sub.Close()
		return nil, err
	}
	for _, topic := range topics {
		if err := sub.SetSubscribe(topic); err != nil {
			sub.Close()
			return nil, err
		}
	}
	if err := sub.Connect(addr); err != nil {
		sub.Close()
		return nil, err
	}
	return sub, nil
}
