package types

import "fmt"

// MessageType tags the payload carried by a Packet (§3). The six message
// types are modelled as a tagged variant rather than via dynamic dispatch
// by inheritance (§9, "Polymorphism") — a single dispatch(type, bytes)
// table in the keeper's Relay Listener is the only place that switches on
// this value.
type MessageType int32

const (
	MessageType_CreatePool MessageType = iota + 1
	MessageType_SingleDeposit
	MessageType_DoubleDeposit
	MessageType_Withdraw
	MessageType_LeftSwap
	MessageType_RightSwap
)

// String returns a human-readable name, used in events and error messages.
func (t MessageType) String() string {
	switch t {
	case MessageType_CreatePool:
		return "CreatePool"
	case MessageType_SingleDeposit:
		return "SingleDeposit"
	case MessageType_DoubleDeposit:
		return "DoubleDeposit"
	case MessageType_Withdraw:
		return "Withdraw"
	case MessageType_LeftSwap:
		return "LeftSwap"
	case MessageType_RightSwap:
		return "RightSwap"
	default:
		return "Unknown"
	}
}

// Packet is the wire envelope (§3): {type, data}, where data is the
// canonical encoding (§4.4) of the typed request named by type.
type Packet struct {
	Type MessageType
	Data []byte
}

// Marshal canonically encodes the packet envelope.
func (p Packet) Marshal() []byte {
	w := NewWriter()
	w.WriteInt32(int32(p.Type))
	w.WriteBytes(p.Data)
	return w.Bytes()
}

// UnmarshalPacket decodes a packet envelope previously written by Marshal.
func UnmarshalPacket(data []byte) (Packet, error) {
	r := NewReader(data)
	typ, err := r.ReadInt32()
	if err != nil {
		return Packet{}, fmt.Errorf("%w: packet type: %s", ErrInvalidPacket, err)
	}
	payload, err := r.ReadBytes()
	if err != nil {
		return Packet{}, fmt.Errorf("%w: packet data: %s", ErrInvalidPacket, err)
	}
	return Packet{Type: MessageType(typ), Data: payload}, nil
}

// NewPacket wraps an already-encoded request as a Packet of the given type.
func NewPacket(msgType MessageType, payload []byte) Packet {
	return Packet{Type: msgType, Data: payload}
}
