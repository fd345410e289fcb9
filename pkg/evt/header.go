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
	"io"
	"time"

	"oma.be/seismo/go-evt/pkg/log"
)

// MaxChannels is the channel count of the supported file header layout.
const MaxChannels = 12

// The 12 channel file header is partitioned into seven fixed byte
// ranges. Each range is unpacked on its own and merged into one record
// with the value offset its first primitive has in the whole header.
// The trailing three ranges carry no mapped fields but are still
// unpacked so the full 2040 bytes stay accounted for.
const (
	hdrOff1 = 0x000
	hdrOff2 = 0x07c
	hdrOff3 = 0x22c
	hdrOff4 = 0x2c8
	hdrOff5 = 0x658
	hdrOff6 = 0x688
	hdrOff7 = 0x6c4
	hdrEnd  = 0x7f8
)

// 0x000-0x07c, values 0-34: instrument identification and state of health
var headerLayout1 = lay(
	str(3), u8(1), u16(2), u8(3), pad(3),
	u16(6), i16(1), u16(2), i16(1), pad(22),
	u8(3), pad(5), u16(2), i16(4), u16(1), pad(2), i16(2), u32(6), pad(16),
)

// 0x07c-0x22c, values 35-106: per-channel trigger setup, not field-mapped
var headerLayout2 = lay(
	rep(MaxChannels, i32(1), u32(1), i32(1), u32(1), i32(2), pad(12)),
)

// 0x22c-0x2c8, values 107-139: event times, station identification
var headerLayout3 = lay(
	u32(3), u16(4), u32(2), pad(4), u16(2),
	str(5), str(33), i16(1), f32(2), i16(4), u8(4), u32(2),
	u8(1), str(17), u8(2), u8(2), pad(6), i16(1), pad(22),
)

// 0x2c8-0x658, values 140-463: per-channel sensor parameters, 27 values
// with a stride of 27 per channel
var headerLayout4 = lay(
	rep(MaxChannels,
		str(5), i8(1), u16(1), i16(5), u16(3), u8(4), u16(1), u8(1), pad(1),
		f32(8), u8(2), pad(10)),
)

// Trailing ranges, consumed but not field-mapped.
var headerLayout5 = lay(
	u8(3), pad(5), u16(6), i16(2), i8(1), u8(2), pad(1), i16(1), u16(3), i32(1), pad(8),
)
var headerLayout6 = lay(rep(15, str(1), u8(1), i16(1)))
var headerLayout7 = lay(
	str(64), str(16), str(16), str(16), str(16), str(16),
	str(24), str(24), str(24), str(24),
	u8(3), i8(3), i16(5), pad(4), u16(1), str(46),
)

const (
	chanStride = 27
	chanBase   = 140
)

var fileHeaderSchema = NewSchema([]Field{
	{Name: "instrument", Pos: 1, Transform: instrument()},
	{Name: "a2dbits", Pos: 4},
	{Name: "samplebytes", Pos: 5},
	{Name: "installedchan", Pos: 7},
	{Name: "maxchannels", Pos: 8},
	{Name: "batteryvoltage", Pos: 13},
	{Name: "temperature", Pos: 16},
	{Name: "gpsstatus", Pos: 18, Transform: Transform{Kind: TransformBitFlags, Flags: []BitFlag{
		{Mask: 1, Label: "Checking"},
		{Mask: 2, Label: "Present"},
		{Mask: 4, Label: "Error"},
		{Mask: 8, Label: "Failed"},
		{Mask: 16, Label: "Not Locked"},
		{Mask: 32, Label: "ON"},
	}}},
	{Name: "gpslastlock", Pos: 33, Transform: timestamp(-1)},
	{Name: "starttime", Pos: 107, Transform: timestamp(112)},
	{Name: "triggertime", Pos: 108, Transform: timestamp(113)},
	{Name: "duration", Pos: 109},
	{Name: "nscans", Pos: 115},
	{Name: "serialnumber", Pos: 116},
	{Name: "nchannels", Pos: 117},
	{Name: "stnid", Pos: 118, Transform: Transform{Kind: TransformStringTrim}},
	{Name: "comment", Pos: 119, Transform: Transform{Kind: TransformStringTrim}},
	{Name: "elevation", Pos: 120},
	{Name: "latitude", Pos: 121},
	{Name: "longitude", Pos: 122},
	{Name: "chan_id", Pos: 140, Transform: arrayNull(MaxChannels, chanStride, 140)},
	{Name: "chan_north", Pos: 143, Transform: arrayNull(MaxChannels, chanStride, 143)},
	{Name: "chan_east", Pos: 144, Transform: arrayNull(MaxChannels, chanStride, 144)},
	{Name: "chan_up", Pos: 145, Transform: arrayNull(MaxChannels, chanStride, 145)},
	{Name: "chan_azimuth", Pos: 147, Transform: arrayNull(MaxChannels, chanStride, 147)},
	{Name: "chan_gain", Pos: 150, Transform: array(MaxChannels, chanStride, 150)},
	{Name: "chan_fullscale", Pos: 157, Transform: array(MaxChannels, chanStride, 157)},
	{Name: "chan_sensitivity", Pos: 158, Transform: array(MaxChannels, chanStride, 158)},
	{Name: "chan_damping", Pos: 159, Transform: array(MaxChannels, chanStride, 159)},
	{Name: "chan_natfreq", Pos: 160, Transform: array(MaxChannels, chanStride, 160)},
	{Name: "chan_calcoil", Pos: 164, Transform: array(MaxChannels, chanStride, 164)},
	{Name: "chan_range", Pos: 165, Transform: array(MaxChannels, chanStride, 165)},
	{Name: "chan_sensorgain", Pos: 166, Transform: array(MaxChannels, chanStride, 166)},
})

// FileHeader is the decoded station and instrument metadata of one
// recording. It is read-only after DecodeFileHeader returns.
type FileHeader struct {
	Record Record
}

// DecodeFileHeader reads tag.Length bytes and decodes the 12 channel
// file header layout. The 18 channel layout is recognized but not
// supported.
func DecodeFileHeader(r io.Reader, tag *Tag) (*FileHeader, error) {
	buf := make([]byte, int(tag.Length))
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, ErrBadHeader{What: "short file header block"}
	}
	switch tag.Length {
	case FileHeaderSize12:
	case FileHeaderSize18:
		return nil, ErrNotImplemented{What: "18 channel file header"}
	default:
		return nil, ErrBadHeader{What: fmt.Sprintf("bad file header length: %d", tag.Length)}
	}

	parts := []struct {
		layout   Layout
		from, to int
		base     int // value offset of the range, -1 when not field-mapped
	}{
		{headerLayout1, hdrOff1, hdrOff2, 0},
		{headerLayout2, hdrOff2, hdrOff3, 35},
		{headerLayout3, hdrOff3, hdrOff4, 107},
		{headerLayout4, hdrOff4, hdrOff5, chanBase},
		{headerLayout5, hdrOff5, hdrOff6, -1},
		{headerLayout6, hdrOff6, hdrOff7, -1},
		{headerLayout7, hdrOff7, hdrEnd, -1},
	}

	rec := Record{}
	for _, part := range parts {
		values, err := part.layout.Unpack(buf[part.from:part.to], tag.Order)
		if err != nil {
			return nil, err
		}
		if part.base < 0 {
			continue
		}
		if err := fileHeaderSchema.Apply(rec, values, part.base); err != nil {
			return nil, err
		}
	}

	header := &FileHeader{Record: rec}
	log.Debug("DecodeFileHeader: station: %s nchannels: %d duration: %d",
		header.StationID(), header.NChannels(), header.Duration())
	return header, nil
}

func (h *FileHeader) intField(name string) int64 {
	v, _ := h.Record[name].(int64)
	return v
}

func (h *FileHeader) strField(name string) string {
	v, _ := h.Record[name].(string)
	return v
}

func (h *FileHeader) timeField(name string) time.Time {
	v, _ := h.Record[name].(time.Time)
	return v
}

func (h *FileHeader) floatArray(name string) []float64 {
	arr, _ := h.Record[name].([]interface{})
	out := make([]float64, len(arr))
	for i, el := range arr {
		switch v := el.(type) {
		case float64:
			out[i] = v
		case int64:
			out[i] = float64(v)
		}
	}
	return out
}

func (h *FileHeader) Instrument() string     { return h.strField("instrument") }
func (h *FileHeader) StationID() string      { return h.strField("stnid") }
func (h *FileHeader) Comment() string        { return h.strField("comment") }
func (h *FileHeader) SerialNumber() int      { return int(h.intField("serialnumber")) }
func (h *FileHeader) NChannels() int         { return int(h.intField("nchannels")) }
func (h *FileHeader) Duration() int          { return int(h.intField("duration")) }
func (h *FileHeader) StartTime() time.Time   { return h.timeField("starttime") }
func (h *FileHeader) TriggerTime() time.Time { return h.timeField("triggertime") }
func (h *FileHeader) Latitude() float64      { v, _ := h.Record["latitude"].(float64); return v }
func (h *FileHeader) Longitude() float64     { v, _ := h.Record["longitude"].(float64); return v }
func (h *FileHeader) Elevation() int         { return int(h.intField("elevation")) }

func (h *FileHeader) ChanGain() []float64        { return h.floatArray("chan_gain") }
func (h *FileHeader) ChanFullScale() []float64   { return h.floatArray("chan_fullscale") }
func (h *FileHeader) ChanSensitivity() []float64 { return h.floatArray("chan_sensitivity") }
func (h *FileHeader) ChanDamping() []float64     { return h.floatArray("chan_damping") }
func (h *FileHeader) ChanNatFreq() []float64     { return h.floatArray("chan_natfreq") }

// ChannelMeta projects the full decoded field set to one channel:
// per-channel arrays collapse to their i-th element, scalars are kept
// as they are.
func (h *FileHeader) ChannelMeta(i int) Record {
	meta := Record{}
	for name, value := range h.Record {
		if arr, ok := value.([]interface{}); ok {
			if i >= 0 && i < len(arr) {
				meta[name] = arr[i]
			}
			continue
		}
		meta[name] = value
	}
	return meta
}
