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

const (
	// MaxU24 is the largest value a U24 can hold
	MaxU24 = 1<<24 - 1
	// MinI24 is the smallest value an I24 can hold
	MinI24 = -1 << 23
	// MaxI24 is the largest value an I24 can hold
	MaxI24 = 1<<23 - 1
)

// U24 is an unsigned integer stored in exactly 3 bytes on the wire.
// Values outside [0, 2^24-1] fail construction, never silently truncate.
// The bare encoding is network byte order; wrap in LE for little-endian.
type U24 uint32

// NewU24 range-checks v and returns it as a U24.
func NewU24(v uint32) (U24, error) {
	if v > MaxU24 {
		return 0, RangeOverflowErrorf("u24: value %d out of range [0, %d]", v, uint32(MaxU24))
	}
	return U24(v), nil
}

// Uint32 returns the unwrapped value.
func (v U24) Uint32() uint32 {
	return uint32(v)
}

// Encode writes the value as 3 bytes in network byte order
func (v U24) Encode(w *ByteWriter, err *Error) {
	w.WriteU24(uint32(v))
}

// Decode reads 3 bytes in network byte order
func (v *U24) Decode(r *ByteReader, err *Error) {
	*v = U24(r.ReadU24(err))
}

// I24 is a signed two's-complement integer stored in exactly 3 bytes on the
// wire, sign-extended to int32 on decode. Values outside [-2^23, 2^23-1]
// fail construction. The bare encoding is network byte order; wrap in LE for
// little-endian.
type I24 int32

// NewI24 range-checks v and returns it as an I24.
func NewI24(v int32) (I24, error) {
	if v < MinI24 || v > MaxI24 {
		return 0, RangeOverflowErrorf("i24: value %d out of range [%d, %d]", v, MinI24, MaxI24)
	}
	return I24(v), nil
}

// Int32 returns the unwrapped value.
func (v I24) Int32() int32 {
	return int32(v)
}

// Encode writes the value as 3 bytes in network byte order
func (v I24) Encode(w *ByteWriter, err *Error) {
	w.WriteI24(int32(v))
}

// Decode reads 3 bytes in network byte order, sign-extending
func (v *I24) Decode(r *ByteReader, err *Error) {
	*v = I24(r.ReadI24(err))
}

// FixedInt is the set of integer types an endianness wrapper can carry.
type FixedInt interface {
	uint16 | uint32 | uint64 | int16 | int32 | int64 | U24 | I24
}

// LE forces little-endian encoding for the wrapped integer, overriding the
// default network byte order of the surrounding context. Only the wire order
// differs; comparisons operate on Value directly.
type LE[T FixedInt] struct {
	Value T
}

// NewLE wraps v in a little-endian tag.
func NewLE[T FixedInt](v T) LE[T] {
	return LE[T]{Value: v}
}

// Encode writes the wrapped value in little-endian order
func (v LE[T]) Encode(w *ByteWriter, err *Error) {
	switch x := any(v.Value).(type) {
	case uint16:
		w.WriteU16LE(x)
	case uint32:
		w.WriteU32LE(x)
	case uint64:
		w.WriteU64LE(x)
	case int16:
		w.WriteI16LE(x)
	case int32:
		w.WriteI32LE(x)
	case int64:
		w.WriteI64LE(x)
	case U24:
		w.WriteU24LE(uint32(x))
	case I24:
		w.WriteI24LE(int32(x))
	}
}

// Decode reads the wrapped value in little-endian order
func (v *LE[T]) Decode(r *ByteReader, err *Error) {
	switch p := any(&v.Value).(type) {
	case *uint16:
		*p = r.ReadU16LE(err)
	case *uint32:
		*p = r.ReadU32LE(err)
	case *uint64:
		*p = r.ReadU64LE(err)
	case *int16:
		*p = r.ReadI16LE(err)
	case *int32:
		*p = r.ReadI32LE(err)
	case *int64:
		*p = r.ReadI64LE(err)
	case *U24:
		*p = U24(r.ReadU24LE(err))
	case *I24:
		*p = I24(r.ReadI24LE(err))
	}
}

// BE forces big-endian encoding for the wrapped integer, independent of any
// context default. Only the wire order differs; comparisons operate on Value
// directly.
type BE[T FixedInt] struct {
	Value T
}

// NewBE wraps v in a big-endian tag.
func NewBE[T FixedInt](v T) BE[T] {
	return BE[T]{Value: v}
}

// Encode writes the wrapped value in big-endian order
func (v BE[T]) Encode(w *ByteWriter, err *Error) {
	switch x := any(v.Value).(type) {
	case uint16:
		w.WriteU16(x)
	case uint32:
		w.WriteU32(x)
	case uint64:
		w.WriteU64(x)
	case int16:
		w.WriteI16(x)
	case int32:
		w.WriteI32(x)
	case int64:
		w.WriteI64(x)
	case U24:
		w.WriteU24(uint32(x))
	case I24:
		w.WriteI24(int32(x))
	}
}

// Decode reads the wrapped value in big-endian order
func (v *BE[T]) Decode(r *ByteReader, err *Error) {
	switch p := any(&v.Value).(type) {
	case *uint16:
		*p = r.ReadU16(err)
	case *uint32:
		*p = r.ReadU32(err)
	case *uint64:
		*p = r.ReadU64(err)
	case *int16:
		*p = r.ReadI16(err)
	case *int32:
		*p = r.ReadI32(err)
	case *int64:
		*p = r.ReadI64(err)
	case *U24:
		*p = U24(r.ReadU24(err))
	case *I24:
		*p = I24(r.ReadI24(err))
	}
}

// VarU32 is a helper type that encodes as an unsigned varint when used
// through the capability contract.
type VarU32 uint32

// Encode writes the value as an unsigned varint
func (v VarU32) Encode(w *ByteWriter, err *Error) {
	w.WriteVarU32(uint32(v))
}

// Decode reads the value as an unsigned varint
func (v *VarU32) Decode(r *ByteReader, err *Error) {
	*v = VarU32(r.ReadVarU32(err))
}

// VarI32 is a helper type that encodes as a zig-zag signed varint when used
// through the capability contract.
type VarI32 int32

// Encode writes the value as a zig-zag signed varint
func (v VarI32) Encode(w *ByteWriter, err *Error) {
	w.WriteVarI32(int32(v))
}

// Decode reads the value as a zig-zag signed varint
func (v *VarI32) Decode(r *ByteReader, err *Error) {
	*v = VarI32(r.ReadVarI32(err))
}

// VarU64 is a helper type that encodes as an unsigned varint when used
// through the capability contract.
type VarU64 uint64

// Encode writes the value as an unsigned varint
func (v VarU64) Encode(w *ByteWriter, err *Error) {
	w.WriteVarU64(uint64(v))
}

// Decode reads the value as an unsigned varint
func (v *VarU64) Decode(r *ByteReader, err *Error) {
	*v = VarU64(r.ReadVarU64(err))
}

// VarI64 is a helper type that encodes as a zig-zag signed varint when used
// through the capability contract.
type VarI64 int64

// Encode writes the value as a zig-zag signed varint
func (v VarI64) Encode(w *ByteWriter, err *Error) {
	w.WriteVarI64(int64(v))
}

// Decode reads the value as a zig-zag signed varint
func (v *VarI64) Decode(r *ByteReader, err *Error) {
	*v = VarI64(r.ReadVarI64(err))
}
