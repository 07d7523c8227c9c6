package differenzler

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Codec turns event payloads into message bodies and back.
type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(body []byte, v any) error
	// Binary reports whether bodies travel as binary websocket frames.
	Binary() bool
}

func NewCodec(binary bool) Codec {
	if binary {
		return structCodec{}
	}
	return jsonCodec{}
}

type jsonCodec struct{}

func (jsonCodec) Encode(v any) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Decode(body []byte, v any) error { return json.Unmarshal(body, v) }

func (jsonCodec) Binary() bool { return false }

// structCodec carries the JSON document as a google.protobuf.Struct.
type structCodec struct{}

func (structCodec) Encode(v any) ([]byte, error) {
	doc, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	st := &structpb.Struct{}
	if err = protojson.Unmarshal(doc, st); err != nil {
		return nil, fmt.Errorf("payload is not a JSON object: %w", err)
	}
	return proto.Marshal(st)
}

func (structCodec) Decode(body []byte, v any) error {
	st := &structpb.Struct{}
	if err := proto.Unmarshal(body, st); err != nil {
		return err
	}
	doc, err := protojson.Marshal(st)
	if err != nil {
		return err
	}
	return json.Unmarshal(doc, v)
}

func (structCodec) Binary() bool { return true }
