package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/interchain-labs/interchainswap/x/interchainswap/types"
)

// Property 1 (§8): generatePoolId(denoms) == generatePoolId(reverse(denoms)).
func TestGeneratePoolID_OrderIndependent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.StringMatching(`[a-z]{2,10}`).Draw(t, "a")
		b := rapid.StringMatching(`[a-z]{2,10}`).Draw(t, "b")

		id1 := types.GeneratePoolID(a, b)
		id2 := types.GeneratePoolID(b, a)
		require.Equal(t, id1, id2)
	})
}

func TestGeneratePoolID_DifferentPairsDiffer(t *testing.T) {
	id1 := types.GeneratePoolID("ATOM", "OSMO")
	id2 := types.GeneratePoolID("ATOM", "JUNO")
	require.NotEqual(t, id1, id2)
}
