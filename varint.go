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

import "math/bits"

// Varints are LEB128-style: each byte carries 7 value bits, least-significant
// group first, with the high bit as a continuation flag. 32-bit values take
// at most 5 groups, 64-bit values at most 10. Signed values are zig-zag
// mapped first so small magnitudes stay short.

const (
	// MaxVarU32Bytes is the maximum encoded size of a 32-bit varint
	MaxVarU32Bytes = 5
	// MaxVarU64Bytes is the maximum encoded size of a 64-bit varint
	MaxVarU64Bytes = 10
)

func zigzag32(v int32) uint32 {
	return uint32((v << 1) ^ (v >> 31))
}

func unzigzag32(u uint32) int32 {
	v := int32(u >> 1)
	if u&1 != 0 {
		v = ^v
	}
	return v
}

func zigzag64(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

func unzigzag64(u uint64) int64 {
	v := int64(u >> 1)
	if u&1 != 0 {
		v = ^v
	}
	return v
}

// VarU32Size returns the encoded byte width of v.
func VarU32Size(v uint32) int {
	return (38 - bits.LeadingZeros32(v|1)) / 7
}

// VarU64Size returns the encoded byte width of v.
func VarU64Size(v uint64) int {
	return (70 - bits.LeadingZeros64(v|1)) / 7
}

// VarI32Size returns the encoded byte width of v after zig-zag mapping.
func VarI32Size(v int32) int {
	return VarU32Size(zigzag32(v))
}

// VarI64Size returns the encoded byte width of v after zig-zag mapping.
func VarI64Size(v int64) int {
	return VarU64Size(zigzag64(v))
}
