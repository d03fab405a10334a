// Package codec replaces the default gRPC "proto" codec with one that also
// understands messages encoding themselves in the protobuf wire format.
package codec

import (
	"fmt"

	"google.golang.org/grpc/encoding"
	grpcproto "google.golang.org/grpc/encoding/proto"
	"google.golang.org/protobuf/proto"
)

// Name is the gRPC content subtype of the codec: application/grpc+proto, the
// default subtype.
const Name = grpcproto.Name

func init() {
	encoding.RegisterCodec(Proto{})
}

// Marshaler is implemented by messages that append their protobuf encoding
// to b.
type Marshaler interface {
	AppendProto(b []byte) []byte
}

// Unmarshaler is implemented by messages that decode themselves from their
// protobuf encoding.
type Unmarshaler interface {
	UnmarshalProto(b []byte) error
}

// Proto marshals Marshaler/Unmarshaler messages directly and everything else
// (reflection, health) with the protobuf runtime.
type Proto struct{}

func (Proto) Marshal(v any) ([]byte, error) {
	switch m := v.(type) {
	case Marshaler:
		return m.AppendProto(nil), nil
	case proto.Message:
		b, err := proto.Marshal(m)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %T: %w", v, err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("failed to marshal %T: not a protobuf message", v)
	}
}

func (Proto) Unmarshal(data []byte, v any) error {
	switch m := v.(type) {
	case Unmarshaler:
		if err := m.UnmarshalProto(data); err != nil {
			return fmt.Errorf("failed to unmarshal %T: %w", v, err)
		}
		return nil
	case proto.Message:
		if err := proto.Unmarshal(data, m); err != nil {
			return fmt.Errorf("failed to unmarshal %T: %w", v, err)
		}
		return nil
	default:
		return fmt.Errorf("failed to unmarshal %T: not a protobuf message", v)
	}
}

func (Proto) Name() string {
	return Name
}
