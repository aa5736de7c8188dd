package types

import "fmt"

// MarshalPool canonically encodes a Pool for persistence in the Pool Store
// (§4.3) and for cross-replica comparison (§8 invariant 4).
func MarshalPool(p Pool) []byte {
	w := NewWriter()
	w.WriteString(p.Id)
	for _, a := range p.Assets {
		w.WriteInt32(int32(a.Side))
		w.WriteCoin(a.Balance)
		w.WriteInt32(a.Weight)
		w.WriteInt32(a.Decimal)
	}
	w.WriteCoin(p.Supply)
	w.WriteInt32(int32(p.Status))
	w.WriteString(p.PortId)
	w.WriteString(p.ChannelId)
	w.WriteString(p.CounterpartyPortId)
	w.WriteString(p.CounterpartyChannel)
	return w.Bytes()
}

// UnmarshalPool decodes a Pool previously written by MarshalPool.
func UnmarshalPool(data []byte) (Pool, error) {
	r := NewReader(data)
	var p Pool

	id, err := r.ReadString()
	if err != nil {
		return p, fmt.Errorf("pool id: %w", err)
	}
	p.Id = id

	for i := 0; i < 2; i++ {
		side, err := r.ReadInt32()
		if err != nil {
			return p, fmt.Errorf("asset %d side: %w", i, err)
		}
		balance, err := r.ReadCoin()
		if err != nil {
			return p, fmt.Errorf("asset %d balance: %w", i, err)
		}
		weight, err := r.ReadInt32()
		if err != nil {
			return p, fmt.Errorf("asset %d weight: %w", i, err)
		}
		decimal, err := r.ReadInt32()
		if err != nil {
			return p, fmt.Errorf("asset %d decimal: %w", i, err)
		}
		p.Assets[i] = PoolAsset{
			Side:    PoolSide(side),
			Balance: balance,
			Weight:  weight,
			Decimal: decimal,
		}
	}

	supply, err := r.ReadCoin()
	if err != nil {
		return p, fmt.Errorf("supply: %w", err)
	}
	p.Supply = supply

	status, err := r.ReadInt32()
	if err != nil {
		return p, fmt.Errorf("status: %w", err)
	}
	p.Status = PoolStatus(status)

	port, err := r.ReadString()
	if err != nil {
		return p, fmt.Errorf("port: %w", err)
	}
	p.PortId = port

	channel, err := r.ReadString()
	if err != nil {
		return p, fmt.Errorf("channel: %w", err)
	}
	p.ChannelId = channel

	cpPort, err := r.ReadString()
	if err != nil {
		return p, fmt.Errorf("counterparty port: %w", err)
	}
	p.CounterpartyPortId = cpPort

	cpChannel, err := r.ReadString()
	if err != nil {
		return p, fmt.Errorf("counterparty channel: %w", err)
	}
	p.CounterpartyChannel = cpChannel

	return p, nil
}
