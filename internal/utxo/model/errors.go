package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned for lookups of keys that were never stored.
	ErrNotFound = errors.New("not found")
	// ErrNeedsResync signals that the feed went ahead of what the store can reconcile.
	ErrNeedsResync = errors.New("needs resync")
	// ErrReorgDepth signals that a fork point cannot be found in stored ancestry.
	ErrReorgDepth = errors.New("reorg fork point not found")
	// ErrRejected is returned when reorgs are disabled and the block does not extend the last accepted one.
	ErrRejected = errors.New("block rejected")
	// ErrUpstreamUnavailable wraps node RPC, peer and ZMQ failures.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrMalformedAddressScript marks outputs whose script is not a single-address standard script.
	ErrMalformedAddressScript = errors.New("malformed address script")
)

// LinkageError reports a block whose parent is unknown.
type LinkageError struct {
	Hash     string
	PrevHash string
}

func (e *LinkageError) Error() string {
	return fmt.Sprintf("block %s: unknown parent %s: %s", e.Hash, e.PrevHash, ErrNeedsResync)
}

func (e *LinkageError) Unwrap() error {
	return ErrNeedsResync
}

// ReorgDepthError reports a backward walk that left stored ancestry.
type ReorgDepthError struct {
	From    string
	Missing string
}

func (e *ReorgDepthError) Error() string {
	return fmt.Sprintf("walking back from %s: block %s not stored: %s", e.From, e.Missing, ErrReorgDepth)
}

func (e *ReorgDepthError) Unwrap() error {
	return ErrReorgDepth
}
