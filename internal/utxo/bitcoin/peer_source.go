package bitcoin

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/btcsuite/btcd/peer"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/model"
	"go.uber.org/zap"
)

const (
	peerUserAgentName    = "blockinsight7000-indexer"
	peerUserAgentVersion = "1.0.0"
	peerDialTimeout      = 10 * time.Second
)

// PeerSource listens to block and transaction gossip of a single node over
// the P2P protocol. It implements chain.LiveSource.
type PeerSource struct {
	addr    string
	decoder *ScriptDecoder
	logger  *zap.Logger
	now     func() time.Time
	dial    func(ctx context.Context, network, addr string) (net.Conn, error)
}

// NewPeerSource creates a live source connecting to addr (host:port).
func NewPeerSource(addr string, decoder *ScriptDecoder, logger *zap.Logger) (*PeerSource, error) {
	if addr == "" {
		return nil, errors.New("peer address is required")
	}
	if decoder == nil {
		return nil, errors.New("script decoder is required")
	}
	dialer := &net.Dialer{Timeout: peerDialTimeout}
	return &PeerSource{
		addr:    addr,
		decoder: decoder,
		logger:  logger.Named("peerSource").With(zap.String("peer", addr)),
		now:     time.Now,
		dial:    dialer.DialContext,
	}, nil
}

// Run connects to the peer and forwards announced blocks and transactions
// until ctx is done or the peer disconnects.
func (s *PeerSource) Run(ctx context.Context, events chan<- chain.LiveEvent) error {
	forward := func(e chain.LiveEvent) {
		select {
		case events <- e:
		case <-ctx.Done():
		}
	}

	cfg := &peer.Config{
		UserAgentName:    peerUserAgentName,
		UserAgentVersion: peerUserAgentVersion,
		ChainParams:      s.decoder.Params(),
		Listeners: peer.MessageListeners{
			OnVerAck: func(p *peer.Peer, _ *wire.MsgVerAck) {
				s.logger.Info("peer handshake complete", zap.String("user_agent", p.UserAgent()))
			},
			OnInv: func(p *peer.Peer, msg *wire.MsgInv) {
				getData := requestedInventory(msg)
				if len(getData.InvList) > 0 {
					p.QueueMessage(getData, nil)
				}
			},
			OnBlock: func(_ *peer.Peer, msg *wire.MsgBlock, _ []byte) {
				forward(chain.LiveEvent{Block: BlockFromWire(msg, s.decoder)})
			},
			OnTx: func(_ *peer.Peer, msg *wire.MsgTx) {
				tx := TxFromWire(msg, s.now().Unix(), s.decoder)
				forward(chain.LiveEvent{Tx: &tx})
			},
		},
	}

	p, err := peer.NewOutboundPeer(cfg, s.addr)
	if err != nil {
		return fmt.Errorf("create peer: %w", err)
	}
	conn, err := s.dial(ctx, "tcp", s.addr)
	if err != nil {
		return fmt.Errorf("dial peer %s: %w: %w", s.addr, model.ErrUpstreamUnavailable, err)
	}
	p.AssociateConnection(conn)

	stopped := make(chan struct{})
	defer close(stopped)
	go func() {
		select {
		case <-ctx.Done():
			p.Disconnect()
		case <-stopped:
		}
	}()

	p.WaitForDisconnect()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fmt.Errorf("peer %s disconnected: %w", s.addr, model.ErrUpstreamUnavailable)
}

// requestedInventory builds a getdata for the block and transaction entries of an inv.
func requestedInventory(msg *wire.MsgInv) *wire.MsgGetData {
	getData := wire.NewMsgGetData()
	for _, inv := range msg.InvList {
		if inv.Type != wire.InvTypeBlock && inv.Type != wire.InvTypeTx {
			continue
		}
		if err := getData.AddInvVect(inv); err != nil {
			break
		}
	}
	return getData
}
