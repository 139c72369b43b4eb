package metrics

import "github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/model"

func labels(coin model.Coin, network model.Network) (string, string) {
	if coin == "" {
		coin = "unknown"
	}
	if network == "" {
		network = "unknown"
	}
	return string(coin), string(network)
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
