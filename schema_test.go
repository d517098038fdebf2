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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// handshake is the shape a generator would emit a policy table for:
//
//	id     uint8
//	debug  uint32   skip
//	token  *VarU32  optional
//	sig    uint32   require(token)
//	echo   uint8    if_present(token)
//	count  uint8    satisfy(count <= 10)
type handshake struct {
	id    uint8
	debug uint32
	token *VarU32
	sig   uint32
	echo  uint8
	count uint8
}

func (h *handshake) schema(t *testing.T) *Schema {
	t.Helper()
	s, err := NewSchema(
		Field{
			Name:   "id",
			Encode: func(w *ByteWriter, err *Error) { w.WriteU8(h.id) },
			Decode: func(r *ByteReader, err *Error) { h.id = r.ReadU8(err) },
		},
		Field{
			Name:    "debug",
			Rule:    RuleSkip,
			Default: func() { h.debug = 0 },
		},
		Field{
			Name:    "token",
			Present: func() bool { return h.token != nil },
			Encode:  func(w *ByteWriter, err *Error) { WriteOption(w, h.token, err) },
			Decode:  func(r *ByteReader, err *Error) { h.token = ReadOption[VarU32](r, err) },
		},
		Field{
			Name:      "sig",
			Rule:      RuleRequire,
			DependsOn: "token",
			Encode:    func(w *ByteWriter, err *Error) { w.WriteU32(h.sig) },
			Decode:    func(r *ByteReader, err *Error) { h.sig = r.ReadU32(err) },
		},
		Field{
			Name:      "echo",
			Rule:      RuleIfPresent,
			DependsOn: "token",
			Default:   func() { h.echo = 0 },
			Encode:    func(w *ByteWriter, err *Error) { w.WriteU8(h.echo) },
			Decode:    func(r *ByteReader, err *Error) { h.echo = r.ReadU8(err) },
		},
		Field{
			Name:      "count",
			Predicate: func() bool { return h.count <= 10 },
			Encode:    func(w *ByteWriter, err *Error) { w.WriteU8(h.count) },
			Decode:    func(r *ByteReader, err *Error) { h.count = r.ReadU8(err) },
		},
	)
	require.NoError(t, err)
	return s
}

// lenient is handshake without the require row, so an absent token exercises
// the if_present degrade path.
func (h *handshake) lenientSchema(t *testing.T) *Schema {
	t.Helper()
	s, err := NewSchema(
		Field{
			Name:   "id",
			Encode: func(w *ByteWriter, err *Error) { w.WriteU8(h.id) },
			Decode: func(r *ByteReader, err *Error) { h.id = r.ReadU8(err) },
		},
		Field{
			Name:    "token",
			Present: func() bool { return h.token != nil },
			Encode:  func(w *ByteWriter, err *Error) { WriteOption(w, h.token, err) },
			Decode:  func(r *ByteReader, err *Error) { h.token = ReadOption[VarU32](r, err) },
		},
		Field{
			Name:      "echo",
			Rule:      RuleIfPresent,
			DependsOn: "token",
			Default:   func() { h.echo = 0 },
			Encode:    func(w *ByteWriter, err *Error) { w.WriteU8(h.echo) },
			Decode:    func(r *ByteReader, err *Error) { h.echo = r.ReadU8(err) },
		},
	)
	require.NoError(t, err)
	return s
}

func TestSchemaRoundTripAllPresent(t *testing.T) {
	err := &Error{}
	token := VarU32(99)
	src := handshake{id: 7, debug: 123456, token: &token, sig: 0xDEADBEEF, echo: 5, count: 3}

	w := NewByteWriter()
	src.schema(t).Encode(w, err)
	require.True(t, err.Ok())

	var dst handshake
	dst.schema(t).Decode(NewByteReader(w.Bytes()), err)
	require.True(t, err.Ok())

	assert.Equal(t, uint8(7), dst.id)
	// skip fields always decode to the default, whatever was in the source
	assert.Equal(t, uint32(0), dst.debug)
	require.NotNil(t, dst.token)
	assert.Equal(t, VarU32(99), *dst.token)
	assert.Equal(t, uint32(0xDEADBEEF), dst.sig)
	assert.Equal(t, uint8(5), dst.echo)
	assert.Equal(t, uint8(3), dst.count)
}

func TestSchemaSkipNeverOnWire(t *testing.T) {
	err := &Error{}
	token := VarU32(1)
	src := handshake{id: 1, debug: 0xFFFFFFFF, token: &token, count: 0}

	w := NewByteWriter()
	src.schema(t).Encode(w, err)
	require.True(t, err.Ok())
	// id(1) + presence(1) + varint token(1) + sig(4) + echo(1) + count(1)
	require.Equal(t, 9, w.Len())
}

func TestSchemaRequireMissing(t *testing.T) {
	err := &Error{}
	src := handshake{id: 1}

	w := NewByteWriter()
	src.schema(t).Encode(w, err)
	require.Equal(t, ErrKindRequiredFieldMissing, err.Kind())

	// decode side: absent token fails before touching sig bytes
	*err = Error{}
	var dst handshake
	payload := []byte{1, 0}
	dst.schema(t).Decode(NewByteReader(payload), err)
	require.Equal(t, ErrKindRequiredFieldMissing, err.Kind())
}

func TestSchemaIfPresentDegradesToSkip(t *testing.T) {
	err := &Error{}
	src := handshake{id: 4, echo: 200}

	w := NewByteWriter()
	src.lenientSchema(t).Encode(w, err)
	require.True(t, err.Ok())
	// id(1) + presence(1); echo silently skipped
	require.Equal(t, 2, w.Len())

	var dst handshake
	dst.echo = 77 // must be overwritten by the default
	dst.lenientSchema(t).Decode(NewByteReader(w.Bytes()), err)
	require.True(t, err.Ok())
	assert.Nil(t, dst.token)
	assert.Equal(t, uint8(0), dst.echo)
}

func TestSchemaPredicateFailed(t *testing.T) {
	err := &Error{}
	token := VarU32(1)
	src := handshake{id: 1, token: &token, count: 11}

	w := NewByteWriter()
	src.schema(t).Encode(w, err)
	require.Equal(t, ErrKindPredicateFailed, err.Kind())

	// decode evaluates the same predicate against the partially decoded state
	*err = Error{}
	good := handshake{id: 1, token: &token, count: 2}
	w.Reset()
	good.schema(t).Encode(w, err)
	require.True(t, err.Ok())

	var dst handshake
	dst.count = 11 // stale local state; predicate runs before the field decodes
	dst.schema(t).Decode(NewByteReader(w.Bytes()), err)
	require.Equal(t, ErrKindPredicateFailed, err.Kind())
}

func TestSchemaValidation(t *testing.T) {
	noop := func(w *ByteWriter, err *Error) {}
	noopR := func(r *ByteReader, err *Error) {}

	// dependency must be an earlier field
	_, err := NewSchema(
		Field{Name: "a", Rule: RuleRequire, DependsOn: "b", Encode: noop, Decode: noopR},
		Field{Name: "b", Present: func() bool { return true }, Encode: noop, Decode: noopR},
	)
	require.Error(t, err)
	var bErr Error
	require.ErrorAs(t, err, &bErr)
	assert.Equal(t, ErrKindInvalidSchema, bErr.Kind())

	// dependency must report presence
	_, err = NewSchema(
		Field{Name: "a", Encode: noop, Decode: noopR},
		Field{Name: "b", Rule: RuleIfPresent, DependsOn: "a", Encode: noop, Decode: noopR},
	)
	require.Error(t, err)

	// duplicate names rejected
	_, err = NewSchema(
		Field{Name: "a", Encode: noop, Decode: noopR},
		Field{Name: "a", Encode: noop, Decode: noopR},
	)
	require.Error(t, err)

	// unnamed fields rejected
	_, err = NewSchema(Field{Encode: noop, Decode: noopR})
	require.Error(t, err)
}

func TestSchemaFingerprint(t *testing.T) {
	var h1, h2 handshake
	a := h1.schema(t)
	b := h2.schema(t)
	// same layout, same fingerprint, regardless of the bound instance
	require.Equal(t, a.Fingerprint(), b.Fingerprint())

	c := h1.lenientSchema(t)
	require.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestMustSchemaPanics(t *testing.T) {
	require.Panics(t, func() {
		MustSchema(Field{Name: "a", Rule: RuleRequire, DependsOn: "missing"})
	})
}
