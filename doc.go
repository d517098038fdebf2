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

/*
Package binutil is a binary wire-format codec: it reads and writes structured
values to and from contiguous byte buffers without ever panicking on
malformed or truncated input.

# Reading and writing

ByteReader is a cursor over an immutable byte slice; ByteWriter is a growable
append-only sink. Reads are atomic with respect to the cursor: a failed read
leaves the position exactly where it was. Errors accumulate into an
out-parameter *Error so a run of reads can be checked once:

	r := binutil.NewByteReader(data)
	var err binutil.Error
	id := r.ReadU8(&err)
	seq := r.ReadU24(&err)
	name := r.ReadString(&err)
	if err.HasError() {
		return err
	}

Multi-byte fixed-width operations default to network byte order; every
operation has an LE variant, and the LE/BE wrapper types force an order for a
single value independent of context.

# Varints

Unsigned varints are LEB128 7-bit groups, least-significant group first, with
the high bit of each byte as a continuation flag: at most 5 groups for 32-bit
values, 10 for 64-bit. Signed varints apply zig-zag mapping first so small
negative magnitudes stay short. Encodings are always minimal width.

# Composite types

A type joins the codec by implementing the capability contract: Encode on a
value receiver, Decode on a pointer receiver. Struct implementations process
fields strictly in declaration order and fail fast. WriteSlice/ReadSlice,
WriteOption/ReadOption and EnumCodec compose element, option and
tagged-variant encodings from the same contract.

# Field presence

Schema is an ordered per-field policy table (skip, require, if_present and
satisfy-style predicates) evaluated left-to-right by a generic composition
routine. Code generators target this table instead of emitting conditional
logic of their own: one Field row per declared struct field, in declaration
order.

The package performs no network I/O and keeps no process-wide state; a
reader or writer belongs to the call stack that created it.
*/
package binutil
