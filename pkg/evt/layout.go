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
	"encoding/binary"
	"fmt"
	"math"
)

// Kind identifies the primitive type of a value in a binary layout.
type Kind int

const (
	U8 Kind = iota
	I8
	U16
	I16
	U32
	I32
	F32
	Str
	Pad
)

// Value is one primitive unpacked from a byte range. The original kind is
// kept so that transforms can reason about the width of the raw field,
// e.g. the all-bits-set null sentinel of nullable per-channel arrays.
type Value struct {
	Kind  Kind
	Int   int64
	Float float64
	Str   string
}

// Native returns the value as a plain Go scalar.
func (v Value) Native() interface{} {
	switch v.Kind {
	case F32:
		return v.Float
	case Str:
		return v.Str
	default:
		return v.Int
	}
}

// Null reports whether an integer value carries the all-bits-set
// sentinel for its width, meaning "not present".
func (v Value) Null() bool {
	switch v.Kind {
	case U8:
		return v.Int == 0xff
	case U16:
		return v.Int == 0xffff
	case U32:
		return v.Int == 0xffffffff
	case I8, I16, I32:
		return v.Int == -1
	default:
		return false
	}
}

// Item is one element of a Layout. Size is the byte length for Str and
// Pad items and is ignored for fixed-width kinds.
type Item struct {
	Kind Kind
	Size int
}

// Layout describes the exact binary shape of a block or of one of the
// fixed byte ranges a file header is partitioned into.
type Layout []Item

func kindSize(k Kind) int {
	switch k {
	case U8, I8:
		return 1
	case U16, I16:
		return 2
	case U32, I32, F32:
		return 4
	}
	return 0
}

// Size returns the number of bytes the layout consumes.
func (l Layout) Size() int {
	size := 0
	for _, item := range l {
		if item.Kind == Str || item.Kind == Pad {
			size += item.Size
		} else {
			size += kindSize(item.Kind)
		}
	}
	return size
}

// Unpack decodes buf into the flat value sequence described by the
// layout. Pad items consume bytes without producing a value. The buffer
// must match the layout size exactly.
func (l Layout) Unpack(buf []byte, order binary.ByteOrder) ([]Value, error) {
	if len(buf) != l.Size() {
		return nil, ErrBadHeader{What: fmt.Sprintf("layout size mismatch: want %d bytes, have %d", l.Size(), len(buf))}
	}
	values := make([]Value, 0, len(l))
	offset := 0
	for _, item := range l {
		switch item.Kind {
		case U8:
			values = append(values, Value{Kind: U8, Int: int64(buf[offset])})
			offset++
		case I8:
			values = append(values, Value{Kind: I8, Int: int64(int8(buf[offset]))})
			offset++
		case U16:
			values = append(values, Value{Kind: U16, Int: int64(order.Uint16(buf[offset : offset+2]))})
			offset += 2
		case I16:
			values = append(values, Value{Kind: I16, Int: int64(int16(order.Uint16(buf[offset : offset+2])))})
			offset += 2
		case U32:
			values = append(values, Value{Kind: U32, Int: int64(order.Uint32(buf[offset : offset+4]))})
			offset += 4
		case I32:
			values = append(values, Value{Kind: I32, Int: int64(int32(order.Uint32(buf[offset : offset+4])))})
			offset += 4
		case F32:
			bits := order.Uint32(buf[offset : offset+4])
			values = append(values, Value{Kind: F32, Float: float64(math.Float32frombits(bits))})
			offset += 4
		case Str:
			values = append(values, Value{Kind: Str, Str: string(buf[offset : offset+item.Size])})
			offset += item.Size
		case Pad:
			offset += item.Size
		}
	}
	return values, nil
}

// Layout builder helpers. They keep the layout tables close to the
// pack-format notation of the recorder documentation.

func times(n int, k Kind) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = Item{Kind: k}
	}
	return items
}

func u8(n int) []Item  { return times(n, U8) }
func i8(n int) []Item  { return times(n, I8) }
func u16(n int) []Item { return times(n, U16) }
func i16(n int) []Item { return times(n, I16) }
func u32(n int) []Item { return times(n, U32) }
func i32(n int) []Item { return times(n, I32) }
func f32(n int) []Item { return times(n, F32) }

func str(size int) []Item { return []Item{{Kind: Str, Size: size}} }
func pad(size int) []Item { return []Item{{Kind: Pad, Size: size}} }

func lay(groups ...[]Item) Layout {
	var l Layout
	for _, g := range groups {
		l = append(l, g...)
	}
	return l
}

func rep(n int, groups ...[]Item) []Item {
	unit := lay(groups...)
	var items []Item
	for i := 0; i < n; i++ {
		items = append(items, unit...)
	}
	return items
}
