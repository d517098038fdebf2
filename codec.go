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

// Writable is the write half of the capability contract. A composite type
// implements it to become encodable through a ByteWriter. Struct
// implementations must encode fields strictly in declaration order and set
// the error on the first field failure.
type Writable interface {
	Encode(w *ByteWriter, err *Error)
}

// Readable is the read half of the capability contract. A composite type
// implements it on a pointer receiver to become decodable through a
// ByteReader. Struct implementations must decode fields strictly in
// declaration order and stop at the first field failure; no partial value is
// considered valid once the error is set.
type Readable interface {
	Decode(r *ByteReader, err *Error)
}

// readablePtr constrains PT to be a pointer to T that implements Readable.
type readablePtr[T any] interface {
	Readable
	*T
}

// Serialize encodes v into a fresh byte slice.
func Serialize(v Writable) ([]byte, error) {
	w := NewByteWriter()
	var err Error
	v.Encode(w, &err)
	if err.HasError() {
		return nil, err
	}
	return w.Bytes(), nil
}

// Deserialize decodes data into v. The whole decode fails as soon as any
// field fails.
func Deserialize(data []byte, v Readable) error {
	r := NewByteReader(data)
	var err Error
	v.Decode(r, &err)
	return err.CheckError()
}

// WriteOption writes a presence byte, then the payload when v is non-nil.
// Absence is modeled as a nil pointer.
func WriteOption[T Writable](w *ByteWriter, v *T, err *Error) {
	if v == nil {
		w.WriteBool(false)
		return
	}
	w.WriteBool(true)
	(*v).Encode(w, err)
}

// ReadOption reads a presence byte and, when set, decodes the payload.
// Returns nil for an absent value.
func ReadOption[T any, PT readablePtr[T]](r *ByteReader, err *Error) *T {
	present := r.ReadBool(err)
	if err.HasError() || !present {
		return nil
	}
	v := new(T)
	PT(v).Decode(r, err)
	if err.HasError() {
		return nil
	}
	return v
}

// WriteSlice writes a var-u32 element count followed by each element encoded
// through its own capability, stopping at the first element failure.
func WriteSlice[T Writable](w *ByteWriter, items []T, err *Error) {
	w.WriteVarU32(uint32(len(items)))
	for i := range items {
		items[i].Encode(w, err)
		if err.HasError() {
			return
		}
	}
}

// ReadSlice reads a var-u32 element count then decodes exactly that many
// elements, failing fast on the first element error.
func ReadSlice[T any, PT readablePtr[T]](r *ByteReader, err *Error) []T {
	n := int(r.ReadVarU32(err))
	if err.HasError() {
		return nil
	}
	// Cap the initial allocation by what the buffer could possibly hold so a
	// forged count cannot force a huge allocation before the first EOF.
	capHint := n
	if capHint > r.Remaining() {
		capHint = r.Remaining()
	}
	out := make([]T, 0, capHint)
	for i := 0; i < n; i++ {
		var v T
		PT(&v).Decode(r, err)
		if err.HasError() {
			return nil
		}
		out = append(out, v)
	}
	return out
}

// WriteStringSlice writes a var-u32 count followed by length-prefixed
// strings.
func WriteStringSlice(w *ByteWriter, items []string) {
	w.WriteVarU32(uint32(len(items)))
	for _, s := range items {
		w.WriteString(s)
	}
}

// ReadStringSlice reads a var-u32 count followed by length-prefixed strings.
func ReadStringSlice(r *ByteReader, err *Error) []string {
	n := int(r.ReadVarU32(err))
	if err.HasError() {
		return nil
	}
	capHint := n
	if capHint > r.Remaining() {
		capHint = r.Remaining()
	}
	out := make([]string, 0, capHint)
	for i := 0; i < n; i++ {
		s := r.ReadString(err)
		if err.HasError() {
			return nil
		}
		out = append(out, s)
	}
	return out
}
