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
	"math"
)

// ByteWriter is an append-only growable byte sink. Capacity grows
// geometrically and writes are infallible with respect to growth. Already
// written bytes are never mutated in place.
//
// Multi-byte fixed-width writes default to network byte order; the LE
// variants write little-endian.
type ByteWriter struct {
	data []byte
	n    int
}

// NewByteWriter creates an empty writer.
func NewByteWriter() *ByteWriter {
	return &ByteWriter{}
}

func (w *ByteWriter) grow(n int) {
	l := w.n
	if l+n < len(w.data) {
		return
	}
	if l+n < cap(w.data) {
		w.data = w.data[:cap(w.data)]
	} else {
		newBuf := make([]byte, 2*(l+n))
		copy(newBuf, w.data)
		w.data = newBuf
	}
}

// Len returns the number of bytes written so far.
func (w *ByteWriter) Len() int {
	return w.n
}

// Bytes returns the written bytes without copying. The slice is valid until
// the next write.
func (w *ByteWriter) Bytes() []byte {
	return w.data[:w.n]
}

// Reset truncates the writer to zero length, keeping capacity.
func (w *ByteWriter) Reset() {
	w.n = 0
}

func (w *ByteWriter) WriteU8(v uint8) {
	w.grow(1)
	w.data[w.n] = v
	w.n++
}

func (w *ByteWriter) WriteI8(v int8) {
	w.WriteU8(uint8(v))
}

// WriteBool writes one byte, 1 for true and 0 for false
func (w *ByteWriter) WriteBool(v bool) {
	if v {
		w.WriteU8(1)
	} else {
		w.WriteU8(0)
	}
}

func (w *ByteWriter) WriteU16(v uint16) {
	w.grow(2)
	binary.BigEndian.PutUint16(w.data[w.n:], v)
	w.n += 2
}

func (w *ByteWriter) WriteU16LE(v uint16) {
	w.grow(2)
	binary.LittleEndian.PutUint16(w.data[w.n:], v)
	w.n += 2
}

func (w *ByteWriter) WriteI16(v int16) {
	w.WriteU16(uint16(v))
}

func (w *ByteWriter) WriteI16LE(v int16) {
	w.WriteU16LE(uint16(v))
}

// WriteU24 writes the 3 least-significant bytes of v in big-endian order.
// Range checking lives on the U24 type, not here.
func (w *ByteWriter) WriteU24(v uint32) {
	w.grow(3)
	w.data[w.n] = byte(v >> 16)
	w.data[w.n+1] = byte(v >> 8)
	w.data[w.n+2] = byte(v)
	w.n += 3
}

// WriteU24LE writes the 3 least-significant bytes of v in little-endian order
func (w *ByteWriter) WriteU24LE(v uint32) {
	w.grow(3)
	w.data[w.n] = byte(v)
	w.data[w.n+1] = byte(v >> 8)
	w.data[w.n+2] = byte(v >> 16)
	w.n += 3
}

// WriteI24 writes a two's-complement 3-byte integer in big-endian order
func (w *ByteWriter) WriteI24(v int32) {
	w.WriteU24(uint32(v) & 0xFFFFFF)
}

// WriteI24LE writes a two's-complement 3-byte integer in little-endian order
func (w *ByteWriter) WriteI24LE(v int32) {
	w.WriteU24LE(uint32(v) & 0xFFFFFF)
}

func (w *ByteWriter) WriteU32(v uint32) {
	w.grow(4)
	binary.BigEndian.PutUint32(w.data[w.n:], v)
	w.n += 4
}

func (w *ByteWriter) WriteU32LE(v uint32) {
	w.grow(4)
	binary.LittleEndian.PutUint32(w.data[w.n:], v)
	w.n += 4
}

func (w *ByteWriter) WriteI32(v int32) {
	w.WriteU32(uint32(v))
}

func (w *ByteWriter) WriteI32LE(v int32) {
	w.WriteU32LE(uint32(v))
}

func (w *ByteWriter) WriteU64(v uint64) {
	w.grow(8)
	binary.BigEndian.PutUint64(w.data[w.n:], v)
	w.n += 8
}

func (w *ByteWriter) WriteU64LE(v uint64) {
	w.grow(8)
	binary.LittleEndian.PutUint64(w.data[w.n:], v)
	w.n += 8
}

func (w *ByteWriter) WriteI64(v int64) {
	w.WriteU64(uint64(v))
}

func (w *ByteWriter) WriteI64LE(v int64) {
	w.WriteU64LE(uint64(v))
}

func (w *ByteWriter) WriteF32(v float32) {
	w.WriteU32(math.Float32bits(v))
}

func (w *ByteWriter) WriteF32LE(v float32) {
	w.WriteU32LE(math.Float32bits(v))
}

func (w *ByteWriter) WriteF64(v float64) {
	w.WriteU64(math.Float64bits(v))
}

func (w *ByteWriter) WriteF64LE(v float64) {
	w.WriteU64LE(math.Float64bits(v))
}

// WriteVarU32 writes an unsigned varint in at most 5 groups and returns the
// number of bytes written. Encoding is always minimal width.
func (w *ByteWriter) WriteVarU32(v uint32) int {
	w.grow(MaxVarU32Bytes)
	n := 0
	for v >= 0x80 {
		w.data[w.n+n] = byte(v) | 0x80
		v >>= 7
		n++
	}
	w.data[w.n+n] = byte(v)
	n++
	w.n += n
	return n
}

// WriteVarI32 writes a zig-zag encoded signed varint and returns the number
// of bytes written
func (w *ByteWriter) WriteVarI32(v int32) int {
	return w.WriteVarU32(zigzag32(v))
}

// WriteVarU64 writes an unsigned varint in at most 10 groups and returns the
// number of bytes written. Encoding is always minimal width.
func (w *ByteWriter) WriteVarU64(v uint64) int {
	w.grow(MaxVarU64Bytes)
	n := 0
	for v >= 0x80 {
		w.data[w.n+n] = byte(v) | 0x80
		v >>= 7
		n++
	}
	w.data[w.n+n] = byte(v)
	n++
	w.n += n
	return n
}

// WriteVarI64 writes a zig-zag encoded signed varint and returns the number
// of bytes written
func (w *ByteWriter) WriteVarI64(v int64) int {
	return w.WriteVarU64(zigzag64(v))
}

// WriteBytes appends raw bytes with no length prefix
func (w *ByteWriter) WriteBytes(p []byte) {
	w.grow(len(p))
	copy(w.data[w.n:], p)
	w.n += len(p)
}

// WriteSizedBytes writes a var-u32 length prefix followed by the raw bytes
func (w *ByteWriter) WriteSizedBytes(p []byte) {
	w.WriteVarU32(uint32(len(p)))
	w.WriteBytes(p)
}

// WriteString writes a var-u32 byte-length prefix followed by the UTF-8
// payload
func (w *ByteWriter) WriteString(s string) {
	w.WriteVarU32(uint32(len(s)))
	w.grow(len(s))
	copy(w.data[w.n:], s)
	w.n += len(s)
}

// Write implements io.Writer.
func (w *ByteWriter) Write(p []byte) (int, error) {
	w.WriteBytes(p)
	return len(p), nil
}
