/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package evt

import (
	"fmt"
	"strings"
	"time"
)

// Recorder timestamps count seconds since the Kinemetrics epoch.
var evtEpoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// Record holds the named fields decoded from one block. Values are
// int64, float64, string, time.Time, or []interface{} for per-channel
// arrays (elements may be nil for absent channels).
type Record map[string]interface{}

type TransformKind int

const (
	TransformNone TransformKind = iota
	TransformStringTrim
	TransformTimestamp
	TransformBitFlags
	TransformLabelLookup
	TransformChannelArray
	TransformChannelArrayNullable
)

// BitFlag binds one bitmask to its human readable label.
type BitFlag struct {
	Mask  int64
	Label string
}

// Transform describes the optional post-processing of one schema field.
// The set is closed: every decoder dispatches on Kind with an exhaustive
// switch.
type Transform struct {
	Kind TransformKind
	// MSecPos is the position of the milliseconds companion field for
	// TransformTimestamp. -1 means the field is seconds only.
	MSecPos int
	// Flags for TransformBitFlags, in ascending mask order.
	Flags []BitFlag
	// Labels for TransformLabelLookup.
	Labels map[int64]string
	// Count, Stride and Base describe per-channel arrays: element i is
	// taken from position Base+i*Stride.
	Count  int
	Stride int
	Base   int
}

// Field binds a name to a position in the flat unpacked value sequence.
type Field struct {
	Name string
	Pos  int
	Transform
}

// Schema is an ordered set of fields over one logical block. A block
// may be unpacked in several passes over different byte ranges, each
// pass applied with the base offset of its range.
type Schema struct {
	fields []Field
}

// NewSchema panics on duplicate positions, that is a programming error
// in a layout table, not a property of the input stream.
func NewSchema(fields []Field) *Schema {
	seen := make(map[int]string)
	for _, f := range fields {
		if name, ok := seen[f.Pos]; ok {
			panic(fmt.Sprintf("duplicate schema position %d: %s and %s", f.Pos, name, f.Name))
		}
		seen[f.Pos] = f.Name
	}
	return &Schema{fields: fields}
}

// Decode builds a fresh record from one unpacked value window.
func (s *Schema) Decode(values []Value, base int) (Record, error) {
	rec := Record{}
	if err := s.Apply(rec, values, base); err != nil {
		return nil, err
	}
	return rec, nil
}

// Apply merges the fields reachable from one value window into rec.
// Fields whose position falls outside the window keep their previous
// value, which is how a header split into several unpack passes is
// assembled. A field inside the window whose companion or array
// positions fall outside it is a structural error.
func (s *Schema) Apply(rec Record, values []Value, base int) error {
	for _, f := range s.fields {
		idx := f.Pos - base
		if idx < 0 || idx >= len(values) {
			continue
		}
		v := values[idx]
		switch f.Transform.Kind {
		case TransformNone:
			rec[f.Name] = v.Native()
		case TransformStringTrim:
			rec[f.Name] = trimNull(v.Str)
		case TransformTimestamp:
			secs := v.Int
			msec := int64(0)
			if f.Transform.MSecPos >= 0 {
				midx := f.Transform.MSecPos - base
				if midx < 0 || midx >= len(values) {
					return ErrBadHeader{What: fmt.Sprintf("field %s: msec companion position %d out of range", f.Name, f.Transform.MSecPos)}
				}
				msec = values[midx].Int
			}
			rec[f.Name] = evtEpoch.Add(time.Duration(secs)*time.Second + time.Duration(msec)*time.Millisecond)
		case TransformBitFlags:
			var labels []string
			for _, flag := range f.Transform.Flags {
				if v.Int&flag.Mask != 0 {
					labels = append(labels, flag.Label)
				}
			}
			rec[f.Name] = strings.Join(labels, " ")
		case TransformLabelLookup:
			label, ok := f.Transform.Labels[v.Int]
			if !ok {
				label = fmt.Sprintf("unknown (%d)", v.Int)
			}
			rec[f.Name] = label
		case TransformChannelArray, TransformChannelArrayNullable:
			arr := make([]interface{}, f.Transform.Count)
			for i := 0; i < f.Transform.Count; i++ {
				p := f.Transform.Base + i*f.Transform.Stride - base
				if p < 0 || p >= len(values) {
					return ErrBadHeader{What: fmt.Sprintf("field %s: array position %d out of range", f.Name, f.Transform.Base+i*f.Transform.Stride)}
				}
				el := values[p]
				if f.Transform.Kind == TransformChannelArrayNullable && el.Null() {
					arr[i] = nil
					continue
				}
				if el.Kind == Str {
					arr[i] = trimNull(el.Str)
				} else {
					arr[i] = el.Native()
				}
			}
			rec[f.Name] = arr
		}
	}
	return nil
}

func trimNull(s string) string {
	return strings.TrimRight(s, "\x00")
}

func timestamp(msecPos int) Transform {
	return Transform{Kind: TransformTimestamp, MSecPos: msecPos}
}

func array(count, stride, base int) Transform {
	return Transform{Kind: TransformChannelArray, Count: count, Stride: stride, Base: base}
}

func arrayNull(count, stride, base int) Transform {
	return Transform{Kind: TransformChannelArrayNullable, Count: count, Stride: stride, Base: base}
}

// Kinemetrics recorder model codes.
var instrumentLabels = map[int64]string{
	0:  "QDR",
	9:  "K2",
	10: "Makalu",
	20: "New Etna",
	30: "Rock",
}

func instrument() Transform {
	return Transform{Kind: TransformLabelLookup, Labels: instrumentLabels}
}
