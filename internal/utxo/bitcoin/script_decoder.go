package bitcoin

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/model"
)

// ScriptDecoder resolves output scripts to addresses using params of one network.
type ScriptDecoder struct {
	params *chaincfg.Params
}

// NewScriptDecoder initializes a decoder for the provided network.
func NewScriptDecoder(network model.Network) (*ScriptDecoder, error) {
	params, err := ChainParams(network)
	if err != nil {
		return nil, err
	}
	return &ScriptDecoder{params: params}, nil
}

// Params returns the chain params the decoder was built with.
func (d *ScriptDecoder) Params() *chaincfg.Params {
	return d.params
}

// Address returns the single address paid by pkScript. Scripts paying zero or
// several addresses, and non-standard scripts, yield ErrMalformedAddressScript.
func (d *ScriptDecoder) Address(pkScript []byte) (string, error) {
	_, addrs, _, err := txscript.ExtractPkScriptAddrs(pkScript, d.params)
	if err != nil {
		return "", fmt.Errorf("extract script addresses: %w: %w", model.ErrMalformedAddressScript, err)
	}
	if len(addrs) != 1 {
		return "", fmt.Errorf("script pays %d addresses: %w", len(addrs), model.ErrMalformedAddressScript)
	}
	return addrs[0].EncodeAddress(), nil
}

// ChainParams maps a network name to btcd chain params.
func ChainParams(network model.Network) (*chaincfg.Params, error) {
	switch strings.ToLower(string(network)) {
	case "main", "mainnet", "bitcoin":
		return &chaincfg.MainNetParams, nil
	case "testnet", "testnet3":
		return &chaincfg.TestNet3Params, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	default:
		return nil, fmt.Errorf("unsupported network %q", network)
	}
}
