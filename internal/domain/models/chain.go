package models

import (
	"fmt"
	"strings"
)

// Chain identifies an EVM network supported by the signal adapters.
type Chain string

const (
	ChainEthereum Chain = "ETHEREUM"
	ChainGoerli   Chain = "GOERLI"
	ChainPolygon  Chain = "POLYGON"
	ChainLocal    Chain = "LOCAL"
)

// ChainFromName resolves the common aliases used in adapter inputs and
// configuration files to a Chain.
func ChainFromName(name string) (Chain, error) {
	switch strings.ToLower(name) {
	case "ethereum", "mainnet", "eth", "homestead":
		return ChainEthereum, nil
	case "goerli":
		return ChainGoerli, nil
	case "polygon", "matic":
		return ChainPolygon, nil
	case "local":
		return ChainLocal, nil
	}
	return "", fmt.Errorf("unsupported chain: %s", name)
}

// Name returns the lowercase chain name.
func (c Chain) Name() string {
	return strings.ToLower(string(c))
}

// IsTestnet reports whether the chain is a test network.
func (c Chain) IsTestnet() bool {
	return c == ChainGoerli
}

// NetworkID returns the EVM network id used to verify RPC providers.
func (c Chain) NetworkID() string {
	switch c {
	case ChainEthereum:
		return "1"
	case ChainGoerli:
		return "5"
	case ChainPolygon:
		return "137"
	default:
		return ""
	}
}
