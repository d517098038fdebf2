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
	"github.com/spaolacci/murmur3"
)

// schemaHashSeed keeps fingerprints stable across processes.
const schemaHashSeed = 47

// PresenceRule controls whether and when a field participates in
// encode/decode. Rules are evaluated left-to-right in field declaration
// order; a rule may depend on an earlier field's value but never on a later
// one.
type PresenceRule uint8

const (
	// RuleAlways encodes and decodes the field unconditionally
	RuleAlways PresenceRule = iota
	// RuleSkip never puts the field on the wire; decode assigns its default
	RuleSkip
	// RuleRequire fails when the named earlier optional field is absent
	RuleRequire
	// RuleIfPresent degrades to RuleSkip when the named earlier optional
	// field is absent
	RuleIfPresent
)

func (r PresenceRule) String() string {
	switch r {
	case RuleAlways:
		return "always"
	case RuleSkip:
		return "skip"
	case RuleRequire:
		return "require"
	case RuleIfPresent:
		return "if_present"
	default:
		return "unknown"
	}
}

// Field is one row of a schema's policy table. Encode/Decode move the
// field's value through the stream; the remaining members are policy.
//
// Present reports whether an optional field holds a value and must be set on
// any field another field depends on. Default assigns the field's zero value
// and is invoked when a decode skips the field. Predicate, when set, is
// evaluated against the value constructed so far before the field is
// processed; a false result aborts the whole encode/decode.
type Field struct {
	Name      string
	Rule      PresenceRule
	DependsOn string
	Predicate func() bool
	Present   func() bool
	Default   func()
	Encode    func(w *ByteWriter, err *Error)
	Decode    func(r *ByteReader, err *Error)
}

// Schema is an ordered field policy table plus a generic composition routine
// over it. It is the single source of truth a code generator targets: the
// generator emits one Field per declared struct field, in declaration order,
// and delegates all presence semantics here.
type Schema struct {
	fields []Field
	index  map[string]int
}

// NewSchema validates the policy table and builds a schema. Field names must
// be unique; require/if_present dependencies must name an earlier field that
// reports presence.
func NewSchema(fields ...Field) (*Schema, error) {
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		if f.Name == "" {
			return nil, InvalidSchemaErrorf("field %d has no name", i)
		}
		if _, dup := index[f.Name]; dup {
			return nil, InvalidSchemaErrorf("duplicate field name %q", f.Name)
		}
		switch f.Rule {
		case RuleRequire, RuleIfPresent:
			at, ok := index[f.DependsOn]
			if !ok {
				return nil, InvalidSchemaErrorf(
					"field %q depends on %q, which is not an earlier field", f.Name, f.DependsOn)
			}
			if fields[at].Present == nil {
				return nil, InvalidSchemaErrorf(
					"field %q depends on %q, which does not report presence", f.Name, f.DependsOn)
			}
		case RuleAlways, RuleSkip:
		default:
			return nil, InvalidSchemaErrorf("field %q has unknown rule %d", f.Name, f.Rule)
		}
		index[f.Name] = i
	}
	return &Schema{fields: fields, index: index}, nil
}

// MustSchema is like NewSchema but panics on a malformed table. Intended for
// generated code and package-level codec variables where the table is fixed
// at compile time.
func MustSchema(fields ...Field) *Schema {
	s, err := NewSchema(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Encode runs the policy table against the writer. Fields are processed
// strictly in declaration order and the first failure aborts the whole
// encode.
func (s *Schema) Encode(w *ByteWriter, err *Error) {
	for i := range s.fields {
		f := &s.fields[i]
		if f.Predicate != nil && !f.Predicate() {
			*err = PredicateFailedError(f.Name)
			return
		}
		switch f.Rule {
		case RuleSkip:
			continue
		case RuleRequire:
			if !s.dependencyPresent(f) {
				*err = RequiredFieldMissingError(f.Name, f.DependsOn)
				return
			}
		case RuleIfPresent:
			if !s.dependencyPresent(f) {
				continue
			}
		}
		f.Encode(w, err)
		if err.HasError() {
			return
		}
	}
}

// Decode runs the policy table against the reader. Skipped fields are
// assigned their default; predicates see the partially decoded state of all
// earlier fields.
func (s *Schema) Decode(r *ByteReader, err *Error) {
	for i := range s.fields {
		f := &s.fields[i]
		if f.Predicate != nil && !f.Predicate() {
			*err = PredicateFailedError(f.Name)
			return
		}
		switch f.Rule {
		case RuleSkip:
			s.assignDefault(f)
			continue
		case RuleRequire:
			if !s.dependencyPresent(f) {
				*err = RequiredFieldMissingError(f.Name, f.DependsOn)
				return
			}
		case RuleIfPresent:
			if !s.dependencyPresent(f) {
				s.assignDefault(f)
				continue
			}
		}
		f.Decode(r, err)
		if err.HasError() {
			return
		}
	}
}

func (s *Schema) dependencyPresent(f *Field) bool {
	dep := &s.fields[s.index[f.DependsOn]]
	return dep.Present()
}

func (s *Schema) assignDefault(f *Field) {
	if f.Default != nil {
		f.Default()
	}
}

// Fingerprint hashes the ordered policy table (names, rules, dependencies)
// so two processes can verify they generated the same field layout. The
// value never appears on the wire.
func (s *Schema) Fingerprint() uint64 {
	w := NewByteWriter()
	for i := range s.fields {
		f := &s.fields[i]
		w.WriteString(f.Name)
		w.WriteU8(uint8(f.Rule))
		w.WriteString(f.DependsOn)
		w.WriteBool(f.Predicate != nil)
	}
	return murmur3.Sum64WithSeed(w.Bytes(), schemaHashSeed)
}
