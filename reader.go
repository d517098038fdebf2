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

import (
	"encoding/binary"
	"io"
	"math"
	"unicode/utf8"
)

// ByteReader is a cursor over an immutable byte slice. Every read either
// advances the cursor by exactly the bytes consumed and returns the value, or
// leaves the cursor unchanged and sets the error. It never panics on
// malformed or truncated input.
//
// Multi-byte fixed-width reads default to network byte order; the LE variants
// read little-endian. The slice is borrowed, not copied.
type ByteReader struct {
	data []byte
	pos  int
}

// NewByteReader creates a reader over data with the cursor at zero.
func NewByteReader(data []byte) *ByteReader {
	return &ByteReader{data: data}
}

// Position returns the current cursor position.
func (r *ByteReader) Position() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *ByteReader) Remaining() int {
	return len(r.data) - r.pos
}

// PeekAhead copies the byte at the given offset past the cursor without
// advancing it.
func (r *ByteReader) PeekAhead(offset int, err *Error) byte {
	if offset < 0 || r.pos+offset >= len(r.data) {
		*err = UnexpectedEofError(r.pos, offset+1, len(r.data))
		return 0
	}
	return r.data[r.pos+offset]
}

// ReadU8 reads a single unsigned byte
func (r *ByteReader) ReadU8(err *Error) uint8 {
	if r.pos+1 > len(r.data) {
		*err = UnexpectedEofError(r.pos, 1, len(r.data))
		return 0
	}
	v := r.data[r.pos]
	r.pos++
	return v
}

// ReadI8 reads a single signed byte
func (r *ByteReader) ReadI8(err *Error) int8 {
	return int8(r.ReadU8(err))
}

// ReadBool reads one byte; any nonzero value is true
func (r *ByteReader) ReadBool(err *Error) bool {
	return r.ReadU8(err) != 0
}

// ReadU16 reads a big-endian uint16
func (r *ByteReader) ReadU16(err *Error) uint16 {
	if r.pos+2 > len(r.data) {
		*err = UnexpectedEofError(r.pos, 2, len(r.data))
		return 0
	}
	v := binary.BigEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v
}

// ReadU16LE reads a little-endian uint16
func (r *ByteReader) ReadU16LE(err *Error) uint16 {
	if r.pos+2 > len(r.data) {
		*err = UnexpectedEofError(r.pos, 2, len(r.data))
		return 0
	}
	v := binary.LittleEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v
}

// ReadI16 reads a big-endian int16
func (r *ByteReader) ReadI16(err *Error) int16 {
	return int16(r.ReadU16(err))
}

// ReadI16LE reads a little-endian int16
func (r *ByteReader) ReadI16LE(err *Error) int16 {
	return int16(r.ReadU16LE(err))
}

// ReadU24 reads a big-endian 3-byte unsigned integer
func (r *ByteReader) ReadU24(err *Error) uint32 {
	if r.pos+3 > len(r.data) {
		*err = UnexpectedEofError(r.pos, 3, len(r.data))
		return 0
	}
	d := r.data[r.pos:]
	v := uint32(d[0])<<16 | uint32(d[1])<<8 | uint32(d[2])
	r.pos += 3
	return v
}

// ReadU24LE reads a little-endian 3-byte unsigned integer
func (r *ByteReader) ReadU24LE(err *Error) uint32 {
	if r.pos+3 > len(r.data) {
		*err = UnexpectedEofError(r.pos, 3, len(r.data))
		return 0
	}
	d := r.data[r.pos:]
	v := uint32(d[0]) | uint32(d[1])<<8 | uint32(d[2])<<16
	r.pos += 3
	return v
}

// ReadI24 reads a big-endian 3-byte two's-complement integer, sign-extended
// to int32
func (r *ByteReader) ReadI24(err *Error) int32 {
	return signExtend24(r.ReadU24(err))
}

// ReadI24LE reads a little-endian 3-byte two's-complement integer,
// sign-extended to int32
func (r *ByteReader) ReadI24LE(err *Error) int32 {
	return signExtend24(r.ReadU24LE(err))
}

func signExtend24(v uint32) int32 {
	return int32(v<<8) >> 8
}

// ReadU32 reads a big-endian uint32
func (r *ByteReader) ReadU32(err *Error) uint32 {
	if r.pos+4 > len(r.data) {
		*err = UnexpectedEofError(r.pos, 4, len(r.data))
		return 0
	}
	v := binary.BigEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v
}

// ReadU32LE reads a little-endian uint32
func (r *ByteReader) ReadU32LE(err *Error) uint32 {
	if r.pos+4 > len(r.data) {
		*err = UnexpectedEofError(r.pos, 4, len(r.data))
		return 0
	}
	v := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v
}

// ReadI32 reads a big-endian int32
func (r *ByteReader) ReadI32(err *Error) int32 {
	return int32(r.ReadU32(err))
}

// ReadI32LE reads a little-endian int32
func (r *ByteReader) ReadI32LE(err *Error) int32 {
	return int32(r.ReadU32LE(err))
}

// ReadU64 reads a big-endian uint64
func (r *ByteReader) ReadU64(err *Error) uint64 {
	if r.pos+8 > len(r.data) {
		*err = UnexpectedEofError(r.pos, 8, len(r.data))
		return 0
	}
	v := binary.BigEndian.Uint64(r.data[r.pos:])
	r.pos += 8
	return v
}

// ReadU64LE reads a little-endian uint64
func (r *ByteReader) ReadU64LE(err *Error) uint64 {
	if r.pos+8 > len(r.data) {
		*err = UnexpectedEofError(r.pos, 8, len(r.data))
		return 0
	}
	v := binary.LittleEndian.Uint64(r.data[r.pos:])
	r.pos += 8
	return v
}

// ReadI64 reads a big-endian int64
func (r *ByteReader) ReadI64(err *Error) int64 {
	return int64(r.ReadU64(err))
}

// ReadI64LE reads a little-endian int64
func (r *ByteReader) ReadI64LE(err *Error) int64 {
	return int64(r.ReadU64LE(err))
}

// ReadF32 reads a big-endian float32
func (r *ByteReader) ReadF32(err *Error) float32 {
	return math.Float32frombits(r.ReadU32(err))
}

// ReadF32LE reads a little-endian float32
func (r *ByteReader) ReadF32LE(err *Error) float32 {
	return math.Float32frombits(r.ReadU32LE(err))
}

// ReadF64 reads a big-endian float64
func (r *ByteReader) ReadF64(err *Error) float64 {
	return math.Float64frombits(r.ReadU64(err))
}

// ReadF64LE reads a little-endian float64
func (r *ByteReader) ReadF64LE(err *Error) float64 {
	return math.Float64frombits(r.ReadU64LE(err))
}

// ReadVarU32 reads an unsigned LEB128 varint of at most 5 groups.
// The cursor does not move until the whole varint has been validated.
func (r *ByteReader) ReadVarU32(err *Error) uint32 {
	var result uint32
	for i := 0; i < MaxVarU32Bytes; i++ {
		if r.pos+i >= len(r.data) {
			*err = UnexpectedEofError(r.pos, i+1, len(r.data))
			return 0
		}
		b := r.data[r.pos+i]
		result |= uint32(b&0x7F) << (7 * i)
		if b < 0x80 {
			r.pos += i + 1
			return result
		}
	}
	*err = VarIntOverflowError(32)
	return 0
}

// ReadVarI32 reads a zig-zag encoded signed varint of at most 5 groups
func (r *ByteReader) ReadVarI32(err *Error) int32 {
	return unzigzag32(r.ReadVarU32(err))
}

// ReadVarU64 reads an unsigned LEB128 varint of at most 10 groups.
// The cursor does not move until the whole varint has been validated.
func (r *ByteReader) ReadVarU64(err *Error) uint64 {
	var result uint64
	for i := 0; i < MaxVarU64Bytes; i++ {
		if r.pos+i >= len(r.data) {
			*err = UnexpectedEofError(r.pos, i+1, len(r.data))
			return 0
		}
		b := r.data[r.pos+i]
		result |= uint64(b&0x7F) << (7 * i)
		if b < 0x80 {
			r.pos += i + 1
			return result
		}
	}
	*err = VarIntOverflowError(64)
	return 0
}

// ReadVarI64 reads a zig-zag encoded signed varint of at most 10 groups
func (r *ByteReader) ReadVarI64(err *Error) int64 {
	return unzigzag64(r.ReadVarU64(err))
}

// ReadBytes reads exactly n raw bytes. The returned slice aliases the
// underlying buffer.
func (r *ByteReader) ReadBytes(n int, err *Error) []byte {
	if n < 0 || r.pos+n > len(r.data) {
		*err = UnexpectedEofError(r.pos, n, len(r.data))
		return nil
	}
	v := r.data[r.pos : r.pos+n]
	r.pos += n
	return v
}

// ReadSizedBytes reads a var-u32 length prefix followed by that many raw
// bytes. The cursor is unchanged if the payload is truncated.
func (r *ByteReader) ReadSizedBytes(err *Error) []byte {
	start := r.pos
	n := r.ReadVarU32(err)
	if err.HasError() {
		return nil
	}
	if r.pos+int(n) > len(r.data) {
		*err = UnexpectedEofError(start, int(n), len(r.data))
		r.pos = start
		return nil
	}
	v := r.data[r.pos : r.pos+int(n)]
	r.pos += int(n)
	return v
}

// ReadString reads a var-u32 byte-length prefix followed by a UTF-8 payload.
// Invalid UTF-8 fails with ErrKindInvalidUtf8 and the cursor is restored to
// its pre-read position.
func (r *ByteReader) ReadString(err *Error) string {
	start := r.pos
	payload := r.ReadSizedBytes(err)
	if err.HasError() {
		return ""
	}
	if !utf8.Valid(payload) {
		*err = InvalidUtf8Error(start)
		r.pos = start
		return ""
	}
	return string(payload)
}

// Skip advances the cursor by n bytes
func (r *ByteReader) Skip(n int, err *Error) {
	if n < 0 || r.pos+n > len(r.data) {
		*err = UnexpectedEofError(r.pos, n, len(r.data))
		return
	}
	r.pos += n
}

// Slice returns the unread portion of the buffer without advancing the
// cursor.
func (r *ByteReader) Slice() []byte {
	return r.data[r.pos:]
}

// Read implements io.Reader over the unread portion of the buffer.
func (r *ByteReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}
