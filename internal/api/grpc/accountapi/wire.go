package accountapi

import (
	"google.golang.org/protobuf/encoding/protowire"
)

// fieldVisitor consumes the value of one field and returns the number of
// bytes read, or a negative protowire error code.
type fieldVisitor func(num protowire.Number, typ protowire.Type, b []byte) (int, error)

func consumeFields(b []byte, visit fieldVisitor) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		n, err := visit(num, typ, b)
		if err != nil {
			return err
		}
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
	}
	return nil
}

// skipField drops a field this version of the contract does not know.
func skipField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	return protowire.ConsumeFieldValue(num, typ, b), nil
}

func consumeString(num protowire.Number, typ protowire.Type, b []byte, dst *string) (int, error) {
	if typ != protowire.BytesType {
		return skipField(num, typ, b)
	}
	v, n := protowire.ConsumeString(b)
	if n >= 0 {
		*dst = v
	}
	return n, nil
}

func consumeBool(num protowire.Number, typ protowire.Type, b []byte, dst *bool) (int, error) {
	if typ != protowire.VarintType {
		return skipField(num, typ, b)
	}
	v, n := protowire.ConsumeVarint(b)
	if n >= 0 {
		*dst = protowire.DecodeBool(v)
	}
	return n, nil
}

func consumeAccount(num protowire.Number, typ protowire.Type, b []byte, dst *Account) (int, error) {
	if typ != protowire.BytesType {
		return skipField(num, typ, b)
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return n, nil
	}
	return n, dst.UnmarshalProto(v)
}

// appendString omits empty strings, as proto3 does for scalar defaults.
func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeBool(v))
}

func appendAccount(b []byte, num protowire.Number, v Account) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v.AppendProto(nil))
}
