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
	"bytes"
	"encoding/binary"
	"testing"
	"time"
)

func frameTag(length uint16) *Tag {
	return &Tag{Order: binary.BigEndian, Type: TagTypeFrameHeader, Length: length}
}

func TestDecodeFrame(t *testing.T) {
	decoder := &FrameDecoder{}
	// rate 100, width 4, all 12 channels active
	buf := buildFrame(1, 3, 600000000, 0x0fff, 100, 3<<6, 250)
	geom, err := decoder.Decode(bytes.NewReader(buf), frameTag(FrameHeaderSize), binary.BigEndian)
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if geom.SamplingRate != 100 {
		t.Errorf("sampling rate mismatch: got %d, want 100", geom.SamplingRate)
	}
	if geom.SampleWidth != 4 {
		t.Errorf("sample width mismatch: got %d, want 4", geom.SampleWidth)
	}
	if geom.Channels != 12 {
		t.Errorf("channels mismatch: got %d, want 12", geom.Channels)
	}
	wantTime := evtEpoch.Add(600000000*time.Second + 250*time.Millisecond)
	if !geom.BlockTime.Equal(wantTime) {
		t.Errorf("block time mismatch: got %v, want %v", geom.BlockTime, wantTime)
	}
	if decoder.Count() != 1 {
		t.Errorf("frame count mismatch: got %d, want 1", decoder.Count())
	}
}

func TestDecodeFrameSampleWidths(t *testing.T) {
	cases := []struct {
		frameStatus byte
		want        int
	}{
		{1 << 6, 2},
		{2 << 6, 3},
		{3 << 6, 4},
		// A derived width of 1 is out of range, the decoder falls
		// back to 3 bytes instead of failing.
		{0, 3},
	}
	for _, c := range cases {
		decoder := &FrameDecoder{}
		buf := buildFrame(1, 3, 0, 0x0fff, 100, c.frameStatus, 0)
		geom, err := decoder.Decode(bytes.NewReader(buf), frameTag(FrameHeaderSize), binary.BigEndian)
		if err != nil {
			t.Fatalf("status %d: unexpected decode error: %v", c.frameStatus, err)
		}
		if geom.SampleWidth != c.want {
			t.Errorf("status %d: width mismatch: got %d, want %d", c.frameStatus, geom.SampleWidth, c.want)
		}
	}
}

func TestDecodeFrameChannelBitmap(t *testing.T) {
	decoder := &FrameDecoder{}
	// Only bits inside the low 12 count.
	buf := buildFrame(1, 3, 0, 0xf00f, 100, 3<<6, 0)
	geom, err := decoder.Decode(bytes.NewReader(buf), frameTag(FrameHeaderSize), binary.BigEndian)
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if geom.Channels != 4 {
		t.Errorf("channels mismatch: got %d, want 4", geom.Channels)
	}
}

func TestDecodeFrameBadLength(t *testing.T) {
	decoder := &FrameDecoder{}
	_, err := decoder.Decode(bytes.NewReader(make([]byte, 16)), frameTag(16), binary.BigEndian)
	if _, ok := err.(ErrBadHeader); !ok {
		t.Fatalf("expected ErrBadHeader, got %v", err)
	}
	if decoder.Count() != 0 {
		t.Errorf("count should not increment on a bad length, got %d", decoder.Count())
	}
}

func TestDecodeFrameBadType(t *testing.T) {
	decoder := &FrameDecoder{}
	buf := buildFrame(1, 7, 0, 0x0fff, 100, 3<<6, 0)
	_, err := decoder.Decode(bytes.NewReader(buf), frameTag(FrameHeaderSize), binary.BigEndian)
	if _, ok := err.(ErrBadHeader); !ok {
		t.Fatalf("expected ErrBadHeader, got %v", err)
	}
	// The counter tracks every unpacked frame, including ones that
	// fail the structural checks afterwards.
	if decoder.Count() != 1 {
		t.Errorf("count mismatch: got %d, want 1", decoder.Count())
	}
}

func TestDecodeFrame16ChannelNotImplemented(t *testing.T) {
	decoder := &FrameDecoder{}
	buf := buildFrame(1, 4, 0, 0x0fff, 100, 3<<6, 0)
	_, err := decoder.Decode(bytes.NewReader(buf), frameTag(FrameHeaderSize), binary.BigEndian)
	if _, ok := err.(ErrNotImplemented); !ok {
		t.Fatalf("expected ErrNotImplemented, got %v", err)
	}
}
