package types

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// PoolSide indicates whether a pool asset is issued on this replica's chain
// (Native) or the counterparty's (Remote). Opposite between the two
// replicas of the same pool (§3 invariant 3).
type PoolSide int32

const (
	PoolSide_Native PoolSide = 0
	PoolSide_Remote PoolSide = 1
)

// PoolStatus is the pool lifecycle state (§3, state machine).
type PoolStatus int32

const (
	PoolStatus_Initial PoolStatus = 0
	PoolStatus_Ready   PoolStatus = 1
)

// PoolAsset is one side of a two-asset pool.
type PoolAsset struct {
	Side    PoolSide
	Balance sdk.Coin
	// Weight is an integer percentage in [1, 99]; the two assets' weights
	// of a pool sum to exactly 100 (§3 invariant 2).
	Weight int32
	// Decimal is the display-decimal exponent in [0, 18]; it does not
	// participate in AMM math, which always operates on raw integer
	// amounts.
	Decimal int32
}

// Pool is the persisted entity mirrored across both replicas (§3).
//
// PortId/ChannelId are this replica's own channel end for the pool (not
// named in §3's literal entity list, which only records the counterparty
// side); they are required to derive this chain's own escrow address
// (§4.7) and to populate a packet's source port/channel when the
// Delegator re-sends on this pool. Every packet already carries both
// ends' identifiers (Source*/Destination*), so both replicas can populate
// all four fields from packet data alone with no extra channel query.
type Pool struct {
	Id                  string
	Assets              [2]PoolAsset
	Supply              sdk.Coin
	Status              PoolStatus
	PortId              string
	ChannelId           string
	CounterpartyPortId  string
	CounterpartyChannel string
}

// NormalizedWeight returns the asset's weight as a LegacyDec in (0, 1),
// i.e. weight/100, the form every AMM formula in §4.2 consumes.
func (a PoolAsset) NormalizedWeight() math.LegacyDec {
	return math.LegacyNewDec(int64(a.Weight)).QuoInt64(100)
}

// otherIndex returns the index of the pool's other asset.
func otherIndex(i int) int {
	if i == 0 {
		return 1
	}
	return 0
}

// AssetIndex returns the index of the asset matching denom, or -1.
func (p Pool) AssetIndex(denom string) int {
	for i, a := range p.Assets {
		if a.Balance.Denom == denom {
			return i
		}
	}
	return -1
}

// Other returns the pool's other asset relative to index i.
func (p Pool) Other(i int) PoolAsset {
	return p.Assets[otherIndex(i)]
}

// GeneratePoolID derives a deterministic, replica-independent pool ID from
// the pool's two denoms (§3, "PoolId derivation"):
//
//	"pool" || hex(sha256(sort_lex(denoms).concat_no_sep()))
func GeneratePoolID(denomA, denomB string) string {
	denoms := []string{denomA, denomB}
	sort.Strings(denoms)
	h := sha256.Sum256([]byte(denoms[0] + denoms[1]))
	return "pool" + hex.EncodeToString(h[:])
}
