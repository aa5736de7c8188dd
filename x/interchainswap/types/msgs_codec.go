package types

import sdk "github.com/cosmos/cosmos-sdk/types"

// Marshal/Unmarshal pairs for every request/response in the message
// taxonomy (§6), built on the canonical Writer/Reader of codec.go.

func (m CreatePoolRequest) Marshal() []byte {
	w := NewWriter()
	w.WriteString(m.SourcePort)
	w.WriteString(m.SourceChannel)
	w.WriteString(m.Sender)
	w.WriteString(m.Denoms[0])
	w.WriteString(m.Denoms[1])
	w.WriteInt32(m.Decimals[0])
	w.WriteInt32(m.Decimals[1])
	w.WriteString(m.Weight)
	return w.Bytes()
}

func UnmarshalCreatePoolRequest(data []byte) (CreatePoolRequest, error) {
	r := NewReader(data)
	var m CreatePoolRequest
	var err error
	if m.SourcePort, err = r.ReadString(); err != nil {
		return m, err
	}
	if m.SourceChannel, err = r.ReadString(); err != nil {
		return m, err
	}
	if m.Sender, err = r.ReadString(); err != nil {
		return m, err
	}
	if m.Denoms[0], err = r.ReadString(); err != nil {
		return m, err
	}
	if m.Denoms[1], err = r.ReadString(); err != nil {
		return m, err
	}
	if m.Decimals[0], err = r.ReadInt32(); err != nil {
		return m, err
	}
	if m.Decimals[1], err = r.ReadInt32(); err != nil {
		return m, err
	}
	if m.Weight, err = r.ReadString(); err != nil {
		return m, err
	}
	return m, nil
}

func (resp CreatePoolResponse) Marshal() []byte {
	w := NewWriter()
	w.WriteString(resp.PoolId)
	return w.Bytes()
}

func UnmarshalCreatePoolResponse(data []byte) (CreatePoolResponse, error) {
	r := NewReader(data)
	id, err := r.ReadString()
	return CreatePoolResponse{PoolId: id}, err
}

func (m SingleDepositRequest) Marshal() []byte {
	w := NewWriter()
	w.WriteString(m.PoolId)
	w.WriteString(m.Sender)
	w.WriteInt32(int32(len(m.Tokens)))
	for _, c := range m.Tokens {
		w.WriteCoin(c)
	}
	return w.Bytes()
}

func UnmarshalSingleDepositRequest(data []byte) (SingleDepositRequest, error) {
	r := NewReader(data)
	var m SingleDepositRequest
	var err error
	if m.PoolId, err = r.ReadString(); err != nil {
		return m, err
	}
	if m.Sender, err = r.ReadString(); err != nil {
		return m, err
	}
	n, err := r.ReadInt32()
	if err != nil {
		return m, err
	}
	m.Tokens = make([]sdk.Coin, n)
	for i := range m.Tokens {
		if m.Tokens[i], err = r.ReadCoin(); err != nil {
			return m, err
		}
	}
	return m, nil
}

func (resp SingleDepositResponse) Marshal() []byte {
	w := NewWriter()
	w.WriteCoin(resp.PoolToken)
	return w.Bytes()
}

func UnmarshalSingleDepositResponse(data []byte) (SingleDepositResponse, error) {
	r := NewReader(data)
	c, err := r.ReadCoin()
	return SingleDepositResponse{PoolToken: c}, err
}

func (m DoubleDepositRequest) Marshal() []byte {
	w := NewWriter()
	w.WriteString(m.PoolId)
	w.WriteString(m.LocalDeposit.Sender)
	w.WriteCoin(m.LocalDeposit.Token)
	w.WriteString(m.RemoteDeposit.Sender)
	w.WriteUint64(m.RemoteDeposit.Sequence)
	w.WriteCoin(m.RemoteDeposit.Token)
	w.WriteBytes(m.RemoteDeposit.Signature)
	return w.Bytes()
}

func UnmarshalDoubleDepositRequest(data []byte) (DoubleDepositRequest, error) {
	r := NewReader(data)
	var m DoubleDepositRequest
	var err error
	if m.PoolId, err = r.ReadString(); err != nil {
		return m, err
	}
	if m.LocalDeposit.Sender, err = r.ReadString(); err != nil {
		return m, err
	}
	if m.LocalDeposit.Token, err = r.ReadCoin(); err != nil {
		return m, err
	}
	if m.RemoteDeposit.Sender, err = r.ReadString(); err != nil {
		return m, err
	}
	if m.RemoteDeposit.Sequence, err = r.ReadUint64(); err != nil {
		return m, err
	}
	if m.RemoteDeposit.Token, err = r.ReadCoin(); err != nil {
		return m, err
	}
	if m.RemoteDeposit.Signature, err = r.ReadBytes(); err != nil {
		return m, err
	}
	return m, nil
}

func (resp DoubleDepositResponse) Marshal() []byte {
	w := NewWriter()
	w.WriteCoin(resp.PoolTokens[0])
	w.WriteCoin(resp.PoolTokens[1])
	return w.Bytes()
}

func UnmarshalDoubleDepositResponse(data []byte) (DoubleDepositResponse, error) {
	r := NewReader(data)
	var resp DoubleDepositResponse
	var err error
	if resp.PoolTokens[0], err = r.ReadCoin(); err != nil {
		return resp, err
	}
	if resp.PoolTokens[1], err = r.ReadCoin(); err != nil {
		return resp, err
	}
	return resp, nil
}

func (m WithdrawRequest) Marshal() []byte {
	w := NewWriter()
	w.WriteString(m.Sender)
	w.WriteCoin(m.PoolCoin)
	w.WriteString(m.DenomOut)
	return w.Bytes()
}

func UnmarshalWithdrawRequest(data []byte) (WithdrawRequest, error) {
	r := NewReader(data)
	var m WithdrawRequest
	var err error
	if m.Sender, err = r.ReadString(); err != nil {
		return m, err
	}
	if m.PoolCoin, err = r.ReadCoin(); err != nil {
		return m, err
	}
	if m.DenomOut, err = r.ReadString(); err != nil {
		return m, err
	}
	return m, nil
}

func marshalSwapRequest(w *Writer, sender string, tokenIn, tokenOut sdk.Coin, slippage uint64, recipient string) {
	w.WriteString(sender)
	w.WriteCoin(tokenIn)
	w.WriteCoin(tokenOut)
	w.WriteUint64(slippage)
	w.WriteString(recipient)
}

func unmarshalSwapRequest(r *Reader) (sender string, tokenIn, tokenOut sdk.Coin, slippage uint64, recipient string, err error) {
	if sender, err = r.ReadString(); err != nil {
		return
	}
	if tokenIn, err = r.ReadCoin(); err != nil {
		return
	}
	if tokenOut, err = r.ReadCoin(); err != nil {
		return
	}
	if slippage, err = r.ReadUint64(); err != nil {
		return
	}
	recipient, err = r.ReadString()
	return
}

func (m LeftSwapRequest) Marshal() []byte {
	w := NewWriter()
	marshalSwapRequest(w, m.Sender, m.TokenIn, m.TokenOut, m.Slippage, m.Recipient)
	return w.Bytes()
}

func UnmarshalLeftSwapRequest(data []byte) (LeftSwapRequest, error) {
	sender, tokenIn, tokenOut, slippage, recipient, err := unmarshalSwapRequest(NewReader(data))
	return LeftSwapRequest{Sender: sender, TokenIn: tokenIn, TokenOut: tokenOut, Slippage: slippage, Recipient: recipient}, err
}

func (m RightSwapRequest) Marshal() []byte {
	w := NewWriter()
	marshalSwapRequest(w, m.Sender, m.TokenIn, m.TokenOut, m.Slippage, m.Recipient)
	return w.Bytes()
}

func UnmarshalRightSwapRequest(data []byte) (RightSwapRequest, error) {
	sender, tokenIn, tokenOut, slippage, recipient, err := unmarshalSwapRequest(NewReader(data))
	return RightSwapRequest{Sender: sender, TokenIn: tokenIn, TokenOut: tokenOut, Slippage: slippage, Recipient: recipient}, err
}

func (resp SwapResponse) Marshal() []byte {
	w := NewWriter()
	w.WriteInt32(int32(len(resp.Tokens)))
	for _, c := range resp.Tokens {
		w.WriteCoin(c)
	}
	return w.Bytes()
}

func UnmarshalSwapResponse(data []byte) (SwapResponse, error) {
	r := NewReader(data)
	n, err := r.ReadInt32()
	if err != nil {
		return SwapResponse{}, err
	}
	tokens := make([]sdk.Coin, n)
	for i := range tokens {
		if tokens[i], err = r.ReadCoin(); err != nil {
			return SwapResponse{}, err
		}
	}
	return SwapResponse{Tokens: tokens}, nil
}

func (resp WithdrawResponse) Marshal() []byte {
	w := NewWriter()
	w.WriteInt32(int32(len(resp.Tokens)))
	for _, c := range resp.Tokens {
		w.WriteCoin(c)
	}
	return w.Bytes()
}

func UnmarshalWithdrawResponse(data []byte) (WithdrawResponse, error) {
	r := NewReader(data)
	n, err := r.ReadInt32()
	if err != nil {
		return WithdrawResponse{}, err
	}
	tokens := make([]sdk.Coin, n)
	for i := range tokens {
		if tokens[i], err = r.ReadCoin(); err != nil {
			return WithdrawResponse{}, err
		}
	}
	return WithdrawResponse{Tokens: tokens}, nil
}
