// Licensed under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License.  You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package binutil

// TagRepr selects the wire width of an enum discriminant.
type TagRepr uint8

const (
	// TagU8 writes the discriminant as a single byte (the default repr)
	TagU8 TagRepr = iota
	// TagU16 writes the discriminant as a big-endian uint16
	TagU16
	// TagU32 writes the discriminant as a big-endian uint32
	TagU32
	// TagU64 writes the discriminant as a big-endian uint64
	TagU64
	// TagVarU32 writes the discriminant as an unsigned varint
	TagVarU32
)

func (t TagRepr) max() uint64 {
	switch t {
	case TagU8:
		return 1<<8 - 1
	case TagU16:
		return 1<<16 - 1
	case TagU32, TagVarU32:
		return 1<<32 - 1
	default:
		return 1<<64 - 1
	}
}

// EnumCodec encodes and decodes a tagged-variant sum type: an explicit
// integer discriminant followed by the active variant's payload. Decoding
// dispatches through a tag-to-decoder mapping and fails closed with
// ErrKindUnknownVariant for unmapped tags.
//
// An EnumCodec is built once per enum type and is safe for concurrent use
// after registration is complete.
type EnumCodec struct {
	repr     TagRepr
	decoders map[uint64]func(r *ByteReader, err *Error)
}

// NewEnumCodec creates a codec whose discriminant uses the given repr.
func NewEnumCodec(repr TagRepr) *EnumCodec {
	return &EnumCodec{
		repr:     repr,
		decoders: map[uint64]func(r *ByteReader, err *Error){},
	}
}

// Variant registers a payload decoder for a tag. decode may be nil for a
// variant with no payload. Returns the codec for chained registration.
func (c *EnumCodec) Variant(tag uint64, decode func(r *ByteReader, err *Error)) *EnumCodec {
	if decode == nil {
		decode = func(r *ByteReader, err *Error) {}
	}
	c.decoders[tag] = decode
	return c
}

// EncodeVariant writes the discriminant in the declared repr, then the
// payload. payload may be nil for a variant with no payload.
func (c *EnumCodec) EncodeVariant(w *ByteWriter, tag uint64, payload Writable, err *Error) {
	if tag > c.repr.max() {
		*err = RangeOverflowErrorf("enum discriminant %d exceeds repr width", tag)
		return
	}
	switch c.repr {
	case TagU8:
		w.WriteU8(uint8(tag))
	case TagU16:
		w.WriteU16(uint16(tag))
	case TagU32:
		w.WriteU32(uint32(tag))
	case TagU64:
		w.WriteU64(tag)
	case TagVarU32:
		w.WriteVarU32(uint32(tag))
	}
	if payload != nil {
		payload.Encode(w, err)
	}
}

// DecodeVariant reads the discriminant, dispatches to the registered variant
// decoder, and returns the tag. Unmapped tags set ErrKindUnknownVariant
// without consuming any payload bytes.
func (c *EnumCodec) DecodeVariant(r *ByteReader, err *Error) uint64 {
	var tag uint64
	switch c.repr {
	case TagU8:
		tag = uint64(r.ReadU8(err))
	case TagU16:
		tag = uint64(r.ReadU16(err))
	case TagU32:
		tag = uint64(r.ReadU32(err))
	case TagU64:
		tag = r.ReadU64(err)
	case TagVarU32:
		tag = uint64(r.ReadVarU32(err))
	}
	if err.HasError() {
		return 0
	}
	decode, ok := c.decoders[tag]
	if !ok {
		*err = UnknownVariantError(tag)
		return tag
	}
	decode(r, err)
	return tag
}
