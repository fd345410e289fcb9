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
	"io"
	"math/bits"
	"time"

	"oma.be/seismo/go-evt/pkg/log"
)

// FrameHeaderSize is the only valid frame header length.
const FrameHeaderSize = 32

const (
	frameType12  = 3
	frameType16  = 4
	frameTypeAlt = 5
)

// frametype u8, instrumentcode u8, recorderid u16, framesize u16,
// blocktime u32, channelbitmap u16, streampar u16, framestatus u8,
// framestatus2 u8, msec u16, channelbitmap1 u8, timecode 13 bytes
var frameLayout = lay(u8(2), u16(2), u32(1), u16(2), u8(2), u16(1), u8(1), str(13))

var frameSchema = NewSchema([]Field{
	{Name: "frametype", Pos: 0},
	{Name: "instrumentcode", Pos: 1, Transform: instrument()},
	{Name: "recorderid", Pos: 2},
	{Name: "framesize", Pos: 3},
	{Name: "blocktime", Pos: 4, Transform: timestamp(9)},
	{Name: "channelbitmap", Pos: 5},
	{Name: "streampar", Pos: 6},
	{Name: "framestatus", Pos: 7},
	{Name: "framestatus2", Pos: 8},
	{Name: "msec", Pos: 9},
	{Name: "channelbitmap1", Pos: 10},
	{Name: "timecode", Pos: 11},
})

// FrameGeometry is what a frame header announces about the data block
// that follows it.
type FrameGeometry struct {
	SamplingRate int
	SampleWidth  int
	Channels     int
	BlockTime    time.Time
}

// FrameDecoder decodes frame headers and counts them. The count is
// matched against the duration declared by the file header once the
// stream ends.
type FrameDecoder struct {
	count int
}

// Count returns the number of frames decoded so far.
func (d *FrameDecoder) Count() int {
	return d.count
}

// Decode reads tag.Length bytes, which must be exactly 32, and derives
// the geometry of the paired data block. The frame counter increments
// as soon as the header is unpacked, before the structural checks.
func (d *FrameDecoder) Decode(r io.Reader, tag *Tag, order binary.ByteOrder) (*FrameGeometry, error) {
	if tag.Length != FrameHeaderSize {
		return nil, ErrBadHeader{What: fmt.Sprintf("bad frame header length: %d", tag.Length)}
	}
	buf := make([]byte, FrameHeaderSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, ErrBadHeader{What: "short frame header block"}
	}

	values, err := frameLayout.Unpack(buf, order)
	if err != nil {
		return nil, err
	}
	d.count++
	rec, err := frameSchema.Decode(values, 0)
	if err != nil {
		return nil, err
	}

	frameType, _ := rec["frametype"].(int64)
	switch frameType {
	case frameType12, frameTypeAlt:
	case frameType16:
		return nil, ErrNotImplemented{What: "16 channel frame"}
	default:
		return nil, ErrBadHeader{What: fmt.Sprintf("bad frame type: %d", frameType)}
	}

	streamPar, _ := rec["streampar"].(int64)
	frameStatus, _ := rec["framestatus"].(int64)
	bitmap, _ := rec["channelbitmap"].(int64)
	blockTime, _ := rec["blocktime"].(time.Time)

	// Low 12 bits of the stream parameters carry the sampling rate.
	samplingRate := int(streamPar & 0xfff)
	// Bits 6-7 of the frame status encode the sample byte width.
	// Recorders have been seen announcing widths outside 2..4, those
	// fall back to 3 bytes rather than failing the frame.
	sampleWidth := int(frameStatus>>6) + 1
	if sampleWidth < 2 || sampleWidth > 4 {
		log.Warning("Frame %d: sample width %d out of range, using 3", d.count, sampleWidth)
		sampleWidth = 3
	}
	channels := bits.OnesCount16(uint16(bitmap) & 0xfff)

	log.Debug("FrameDecoder.Decode: frame: %d rate: %d width: %d channels: %d",
		d.count, samplingRate, sampleWidth, channels)

	return &FrameGeometry{
		SamplingRate: samplingRate,
		SampleWidth:  sampleWidth,
		Channels:     channels,
		BlockTime:    blockTime,
	}, nil
}
