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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// helloPacket exercises the struct composition rule: fields encoded strictly
// in declaration order, fail-fast on the first field error.
type helloPacket struct {
	Name    string
	Age     uint8
	IsCool  bool
	Seq     U24
	AckID   *VarI32
	Friends []string
}

func (p helloPacket) Encode(w *ByteWriter, err *Error) {
	w.WriteString(p.Name)
	w.WriteU8(p.Age)
	w.WriteBool(p.IsCool)
	p.Seq.Encode(w, err)
	if err.HasError() {
		return
	}
	WriteOption(w, p.AckID, err)
	if err.HasError() {
		return
	}
	WriteStringSlice(w, p.Friends)
}

func (p *helloPacket) Decode(r *ByteReader, err *Error) {
	p.Name = r.ReadString(err)
	if err.HasError() {
		return
	}
	p.Age = r.ReadU8(err)
	p.IsCool = r.ReadBool(err)
	p.Seq.Decode(r, err)
	if err.HasError() {
		return
	}
	p.AckID = ReadOption[VarI32](r, err)
	if err.HasError() {
		return
	}
	p.Friends = ReadStringSlice(r, err)
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	ack := VarI32(-42)
	src := helloPacket{
		Name:    "John",
		Age:     18,
		IsCool:  true,
		Seq:     U24(70000),
		AckID:   &ack,
		Friends: []string{"Bob", "Joe"},
	}

	data, err := Serialize(src)
	require.NoError(t, err)

	var dst helloPacket
	require.NoError(t, Deserialize(data, &dst))
	if diff := cmp.Diff(src, dst); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSerializeAbsentOption(t *testing.T) {
	src := helloPacket{Name: "x", Seq: U24(1)}
	data, err := Serialize(src)
	require.NoError(t, err)

	var dst helloPacket
	require.NoError(t, Deserialize(data, &dst))
	assert.Nil(t, dst.AckID)
	assert.Empty(t, dst.Friends)
}

func TestDeserializeTruncatedFailsFast(t *testing.T) {
	ack := VarI32(1)
	src := helloPacket{Name: "truncate-me", Seq: U24(5), AckID: &ack}
	data, err := Serialize(src)
	require.NoError(t, err)

	var dst helloPacket
	decErr := Deserialize(data[:len(data)-3], &dst)
	require.Error(t, decErr)
	var bErr Error
	require.ErrorAs(t, decErr, &bErr)
	assert.Equal(t, ErrKindUnexpectedEof, bErr.Kind())
}

func TestWriteReadOption(t *testing.T) {
	err := &Error{}
	w := NewByteWriter()
	v := VarU32(300)
	WriteOption(w, &v, err)
	WriteOption[VarU32](w, nil, err)
	require.True(t, err.Ok())

	r := NewByteReader(w.Bytes())
	got := ReadOption[VarU32](r, err)
	require.True(t, err.Ok())
	require.NotNil(t, got)
	assert.Equal(t, VarU32(300), *got)

	gone := ReadOption[VarU32](r, err)
	require.True(t, err.Ok())
	assert.Nil(t, gone)
	assert.Equal(t, 0, r.Remaining())
}

func TestWriteReadSlice(t *testing.T) {
	err := &Error{}
	items := []VarU32{1, 128, 1 << 20}
	w := NewByteWriter()
	WriteSlice(w, items, err)
	require.True(t, err.Ok())

	r := NewByteReader(w.Bytes())
	got := ReadSlice[VarU32](r, err)
	require.True(t, err.Ok())
	assert.Equal(t, items, got)
}

func TestReadSliceElementFailure(t *testing.T) {
	err := &Error{}
	// count says two elements but only one u24 payload follows
	w := NewByteWriter()
	w.WriteVarU32(2)
	w.WriteU24(7)
	r := NewByteReader(w.Bytes())
	got := ReadSlice[U24](r, err)
	require.Equal(t, ErrKindUnexpectedEof, err.Kind())
	assert.Nil(t, got)
}

// A forged element count far beyond the buffer must not preallocate past
// what the buffer could hold.
func TestReadSliceForgedCount(t *testing.T) {
	err := &Error{}
	w := NewByteWriter()
	w.WriteVarU32(1 << 30)
	w.WriteU8(0)
	r := NewByteReader(w.Bytes())
	got := ReadSlice[U24](r, err)
	require.Equal(t, ErrKindUnexpectedEof, err.Kind())
	assert.Nil(t, got)
}

func TestSerializeEmptySlice(t *testing.T) {
	err := &Error{}
	w := NewByteWriter()
	WriteSlice(w, []VarU32{}, err)
	require.Equal(t, []byte{0}, w.Bytes())

	r := NewByteReader(w.Bytes())
	got := ReadSlice[VarU32](r, err)
	require.True(t, err.Ok())
	assert.Empty(t, got)
}
