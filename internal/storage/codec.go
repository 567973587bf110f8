package storage

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
)

// Codec turns documents into bytes and back.
type Codec interface {
	Name() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// cborCodec uses Core Deterministic Encoding so that the same document
// always produces the same bytes, which keeps ETags stable.
type cborCodec struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

func newCBORCodec() (*cborCodec, error) {
	opts := cbor.CoreDetEncOptions()
	// Timestamps keep sub-second precision and their zone offset.
	opts.Time = cbor.TimeRFC3339Nano
	enc, err := opts.EncMode()
	if err != nil {
		return nil, fmt.Errorf("cbor encoder: %w", err)
	}
	dec, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		return nil, fmt.Errorf("cbor decoder: %w", err)
	}
	return &cborCodec{enc: enc, dec: dec}, nil
}

func (c *cborCodec) Name() string                       { return "cbor" }
func (c *cborCodec) Marshal(v any) ([]byte, error)      { return c.enc.Marshal(v) }
func (c *cborCodec) Unmarshal(data []byte, v any) error { return c.dec.Unmarshal(data, v) }

type jsonCodec struct{}

func (jsonCodec) Name() string                       { return "json" }
func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// NewCodec returns the codec registered under name.
func NewCodec(name string) (Codec, error) {
	switch name {
	case "cbor", "":
		return newCBORCodec()
	case "json":
		return jsonCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown codec %q", name)
	}
}

// Stored values carry a one-byte frame marker so that a store can read
// values written under a different compression setting.
const (
	frameRaw  byte = 0x00
	frameZstd byte = 0x01
)

// zstd encoders and decoders are safe for concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("storage: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("storage: zstd decoder initialization failed: " + err.Error())
	}
}

func frame(data []byte, compress bool) []byte {
	if compress {
		out := make([]byte, 1, len(data)/2+1)
		out[0] = frameZstd
		return zstdEncoder.EncodeAll(data, out)
	}
	out := make([]byte, 0, len(data)+1)
	out = append(out, frameRaw)
	return append(out, data...)
}

func unframe(stored []byte) ([]byte, error) {
	if len(stored) == 0 {
		return nil, fmt.Errorf("empty value")
	}
	switch stored[0] {
	case frameRaw:
		return stored[1:], nil
	case frameZstd:
		data, err := zstdDecoder.DecodeAll(stored[1:], nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unknown frame marker 0x%02x", stored[0])
	}
}
