package pb

import (
	"fmt"

	proto "github.com/gogo/protobuf/proto"
	"google.golang.org/grpc/encoding"
)

// codec replaces the default grpc proto codec so the controller messages are
// marshalled by gogo/protobuf.
type codec struct{}

func (codec) Marshal(v interface{}) ([]byte, error) {
	m, ok := v.(proto.Message)
	if !ok {
		return nil, fmt.Errorf("pb: cannot marshal %T", v)
	}
	return proto.Marshal(m)
}

func (codec) Unmarshal(data []byte, v interface{}) error {
	m, ok := v.(proto.Message)
	if !ok {
		return fmt.Errorf("pb: cannot unmarshal into %T", v)
	}
	return proto.Unmarshal(data, m)
}

func (codec) Name() string { return "proto" }

func init() { encoding.RegisterCodec(codec{}) }

// Marshal encodes a message for storage backends.
func Marshal(m proto.Message) ([]byte, error) { return proto.Marshal(m) }

// Unmarshal decodes a message written by Marshal.
func Unmarshal(data []byte, m proto.Message) error { return proto.Unmarshal(data, m) }
