package models

// UnknownTokenSymbol is the fallback symbol for token addresses missing from
// the per-chain table. Unknown tokens are priced at 0, never treated as an
// error.
const UnknownTokenSymbol = "Other"

// TokenSymbolsByChain maps lowercase token contract addresses to symbols.
var TokenSymbolsByChain = map[Chain]map[string]string{
	ChainEthereum: {
		"0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48": "USDC",
		"0x6b175474e89094c44da98b954eedeac495271d0f": "DAI",
		"0xdac17f958d2ee523a2206206994597c13d831ec7": "USDT",
	},
	ChainPolygon: {
		"0x2791bca1f2de4661ed88a30c99a7a9449aa84174": "USDC",
		"0x8f3cf7ad23cd3cadbd9735aff958023239c6a063": "DAI",
		"0xc2132d05d31c914a87c6611c10748aeb04b58e8f": "USDT",
	},
	ChainGoerli: {
		"0x07865c6e87b9f70255377e024ace6630c1eaa37f": "USDC",
		"0xdc31ee1784292379fbb2964b3b9c4124d8f89c60": "DAI",
		"0x56705db9f87c8a930ec87da0d458e00a657fccb0": "USDT",
	},
}

// TokenUSDPrice maps a token symbol to the USD value of one native unit.
// Stablecoins are pegged at $1, so the price is 1 over the token's decimals.
var TokenUSDPrice = map[string]float64{
	"USDC": 1.0 / 1e6,
	"DAI":  1.0 / 1e18,
	"USDT": 1.0 / 1e6,
}

// TokenSymbol resolves a token contract address on a chain to its symbol,
// falling back to UnknownTokenSymbol.
func TokenSymbol(chain Chain, tokenAddress string) string {
	if symbols, ok := TokenSymbolsByChain[chain]; ok {
		if s, ok := symbols[tokenAddress]; ok {
			return s
		}
	}
	return UnknownTokenSymbol
}
