package lendingpool

import "CreditPull/internal/domain/models"

// Pool types select the contract family deployed at a pool address.
const (
	PoolTypeBaseCredit          = "BaseCreditPool"
	PoolTypeReceivableFactoring = "ReceivableFactoringPool"
	PoolTypeStreamFactoring     = "StreamFactoringPool"
)

// knownPools is the fixed registry of deployed pools, keyed by checksummed
// address.
var knownPools = []models.PoolSetting{
	{
		PoolAddress: "0xA22D20FB0c9980fb96A9B0B5679C061aeAf5dDE4",
		Chain:       models.ChainGoerli,
		PoolType:    PoolTypeBaseCredit,
	},
	{
		PoolAddress: "0x11672c0bBFF498c72BC2200f42461c0414855042",
		Chain:       models.ChainGoerli,
		PoolType:    PoolTypeReceivableFactoring,
	},
	{
		PoolAddress: "0x79486A42Bb34fc81F1988ED60b33c3eb42065D98",
		Chain:       models.ChainGoerli,
		PoolType:    PoolTypeStreamFactoring,
	},
	{
		PoolAddress: "0xAb3dc5221F373Dd879BEc070058c775A0f6Af759",
		Chain:       models.ChainPolygon,
		PoolType:    PoolTypeBaseCredit,
	},
	{
		PoolAddress: "0x58AAF1f9cB10F335111A2129273056bbED251B61",
		Chain:       models.ChainPolygon,
		PoolType:    PoolTypeReceivableFactoring,
	},
}

// PoolRegistry resolves pool settings by address, case-insensitively.
type PoolRegistry map[string]models.PoolSetting

// NewPoolRegistry builds the registry from the known pool list.
func NewPoolRegistry() PoolRegistry {
	return newRegistry(knownPools)
}

func newRegistry(pools []models.PoolSetting) PoolRegistry {
	registry := make(PoolRegistry, len(pools))
	for _, pool := range pools {
		registry[normalizeAddress(pool.PoolAddress)] = pool
	}
	return registry
}

// Lookup returns the settings for a pool address.
func (r PoolRegistry) Lookup(poolAddress string) (models.PoolSetting, bool) {
	pool, ok := r[normalizeAddress(poolAddress)]
	return pool, ok
}
