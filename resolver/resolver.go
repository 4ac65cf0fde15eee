package resolver

import (
	"io"
	"sync"

	"github.com/ugorji/go/codec"
)

// Resolver describes an encoder/decoder handler.
type Resolver struct {
	decoder *codec.Decoder
	encoder *codec.Encoder
	handle  sync.Mutex

	setup sync.Once
}

var resolver Resolver

// init sets up the resolver.
func (r *Resolver) init() {
	r.setup.Do(func() {
		r.decoder = codec.NewDecoder(nil, &codec.JsonHandle{})
		r.encoder = codec.NewEncoder(nil, &codec.JsonHandle{})
	})
}

// DecodeReader decodes data from a Reader.
func DecodeReader(reader io.Reader, apply interface{}) error {
	resolver.init()

	resolver.handle.Lock()
	defer resolver.handle.Unlock()

	resolver.decoder.Reset(reader)
	return resolver.decoder.Decode(apply)
}

// DecodeBytes decodes data from a byte array.
func DecodeBytes(data []byte, apply interface{}) error {
	resolver.init()

	resolver.handle.Lock()
	defer resolver.handle.Unlock()

	resolver.decoder.ResetBytes(data)
	return resolver.decoder.Decode(apply)
}

// EncodeBytes encodes data into a byte array.
func EncodeBytes(data *[]byte, value interface{}) error {
	resolver.init()

	resolver.handle.Lock()
	defer resolver.handle.Unlock()

	resolver.encoder.ResetBytes(data)
	return resolver.encoder.Encode(value)
}

// Store coerces a loosely typed value into the container pointed to
// by apply. Player runtimes report property values with arbitrary
// types, and this settles them into the expected ones.
func Store(value, apply interface{}) error {
	var data []byte

	if err := EncodeBytes(&data, value); err != nil {
		return err
	}

	return DecodeBytes(data, apply)
}
