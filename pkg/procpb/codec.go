package procpb

import (
	"bytes"
	"encoding/gob"

	"google.golang.org/grpc/encoding"
)

// gobCodec marshals procpb messages with encoding/gob instead of real
// protobuf wire format. There is no protoc in this build environment to
// generate descriptor-backed messages, and hand-writing the
// protoreflect.Message machinery protoc-gen-go relies on by hand would not
// be a faithful port of anything in the corpus — it would be fabricated.
// gob already knows how to walk the plain exported-field structs in
// types.go, and grpc only asks its codec for three methods (Name, Marshal,
// Unmarshal), so this is the
// smallest honest substitute for the generated marshaler.
//
// Registering under the name "proto" (rather than a distinct subtype)
// replaces grpc-go's default codec globally for this process. That is safe
// here because procd/procc never speak to anything that expects real
// protobuf bytes on the wire — grpc's own control-plane messages (status
// details, etc.) are encoded separately through google.golang.org/protobuf
// and are unaffected.
type gobCodec struct{}

func (gobCodec) Name() string { return "proto" }

func (gobCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (gobCodec) Unmarshal(data []byte, v any) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

func init() {
	encoding.RegisterCodec(gobCodec{})
}
