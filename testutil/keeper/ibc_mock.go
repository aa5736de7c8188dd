package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	capabilitytypes "github.com/cosmos/ibc-go/modules/capability/types"
	clienttypes "github.com/cosmos/ibc-go/v8/modules/core/02-client/types"
)

// MockChannelSender implements only SendPacket, standing in for the core
// ChannelKeeper the Delegator calls through (keeper.channelSender),
// grounded verbatim on the teacher's testutil/keeper/ibc_mock.go
// MockChannelKeeper.
type MockChannelSender struct {
	NextSeq uint64
	Sent    int
}

func (m *MockChannelSender) SendPacket(
	_ sdk.Context,
	_ *capabilitytypes.Capability,
	_ string,
	_ string,
	_ clienttypes.Height,
	_ uint64,
	_ []byte,
) (uint64, error) {
	m.Sent++
	m.NextSeq++
	return m.NextSeq, nil
}
