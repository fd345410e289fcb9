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

func TestHeaderLayoutSizes(t *testing.T) {
	ranges := []struct {
		name     string
		layout   Layout
		from, to int
	}{
		{"layout1", headerLayout1, hdrOff1, hdrOff2},
		{"layout2", headerLayout2, hdrOff2, hdrOff3},
		{"layout3", headerLayout3, hdrOff3, hdrOff4},
		{"layout4", headerLayout4, hdrOff4, hdrOff5},
		{"layout5", headerLayout5, hdrOff5, hdrOff6},
		{"layout6", headerLayout6, hdrOff6, hdrOff7},
		{"layout7", headerLayout7, hdrOff7, hdrEnd},
	}
	total := 0
	for _, r := range ranges {
		if got, want := r.layout.Size(), r.to-r.from; got != want {
			t.Errorf("%s size mismatch: got %d, want %d", r.name, got, want)
		}
		total += r.layout.Size()
	}
	if total != FileHeaderSize12 {
		t.Errorf("total header size mismatch: got %d, want %d", total, FileHeaderSize12)
	}
}

func TestFrameLayoutSize(t *testing.T) {
	if got := frameLayout.Size(); got != FrameHeaderSize {
		t.Errorf("frame layout size mismatch: got %d, want %d", got, FrameHeaderSize)
	}
}

func TestTagLayoutSize(t *testing.T) {
	if got := tagLayout.Size(); got != TagSize-2 {
		t.Errorf("tag layout size mismatch: got %d, want %d", got, TagSize-2)
	}
}

func decodeHeader(t *testing.T, orderFlag byte, p headerParams) *FileHeader {
	t.Helper()
	tag, err := ReadTag(bytes.NewReader(buildTag(orderFlag, TagTypeFileHeader, FileHeaderSize12, 0)))
	if err != nil {
		t.Fatalf("unexpected tag error: %v", err)
	}
	header, err := DecodeFileHeader(bytes.NewReader(buildFileHeader(orderFlag, p)), tag)
	if err != nil {
		t.Fatalf("unexpected header decode error: %v", err)
	}
	return header
}

func TestDecodeFileHeader(t *testing.T) {
	p := defaultHeaderParams()
	p.north[3] = -1 // channel 3 has no north coordinate
	header := decodeHeader(t, 1, p)

	if header.StationID() != "ROB1" {
		t.Errorf("station mismatch: got %q, want %q", header.StationID(), "ROB1")
	}
	if header.Comment() != "test recording" {
		t.Errorf("comment mismatch: got %q", header.Comment())
	}
	if header.Instrument() != "New Etna" {
		t.Errorf("instrument mismatch: got %q, want %q", header.Instrument(), "New Etna")
	}
	if header.NChannels() != 12 {
		t.Errorf("nchannels mismatch: got %d, want 12", header.NChannels())
	}
	if header.Duration() != 2 {
		t.Errorf("duration mismatch: got %d, want 2", header.Duration())
	}
	if header.SerialNumber() != 4321 {
		t.Errorf("serial mismatch: got %d, want 4321", header.SerialNumber())
	}
	wantStart := evtEpoch.Add(600000000*time.Second + 250*time.Millisecond)
	if !header.StartTime().Equal(wantStart) {
		t.Errorf("start time mismatch: got %v, want %v", header.StartTime(), wantStart)
	}
	if header.Elevation() != 100 {
		t.Errorf("elevation mismatch: got %d, want 100", header.Elevation())
	}
	if lat := header.Latitude(); lat < 50.79 || lat > 50.81 {
		t.Errorf("latitude mismatch: got %g", lat)
	}
	if gps, _ := header.Record["gpsstatus"].(string); gps != "Present ON" {
		t.Errorf("gpsstatus mismatch: got %q, want %q", gps, "Present ON")
	}

	fullScale := header.ChanFullScale()
	sensitivity := header.ChanSensitivity()
	gain := header.ChanGain()
	if len(fullScale) != 12 {
		t.Fatalf("fullscale length mismatch: got %d, want 12", len(fullScale))
	}
	for i := 0; i < 12; i++ {
		if fullScale[i] != 2.5 {
			t.Errorf("fullscale[%d] mismatch: got %g, want 2.5", i, fullScale[i])
		}
		if sensitivity[i] != 1.25 {
			t.Errorf("sensitivity[%d] mismatch: got %g, want 1.25", i, sensitivity[i])
		}
		if gain[i] != 1 {
			t.Errorf("gain[%d] mismatch: got %g, want 1", i, gain[i])
		}
	}

	north := header.Record["chan_north"].([]interface{})
	if north[0] != int64(1) {
		t.Errorf("north[0] mismatch: got %v, want 1", north[0])
	}
	if north[3] != nil {
		t.Errorf("north[3] should be nil for the -1 sentinel, got %v", north[3])
	}
}

func TestDecodeFileHeaderLittleEndian(t *testing.T) {
	header := decodeHeader(t, 0, defaultHeaderParams())
	if header.StationID() != "ROB1" {
		t.Errorf("station mismatch: got %q, want %q", header.StationID(), "ROB1")
	}
	if header.NChannels() != 12 {
		t.Errorf("nchannels mismatch: got %d, want 12", header.NChannels())
	}
	if header.ChanFullScale()[5] != 2.5 {
		t.Errorf("fullscale[5] mismatch: got %g, want 2.5", header.ChanFullScale()[5])
	}
}

func TestChannelMetaProjection(t *testing.T) {
	header := decodeHeader(t, 1, defaultHeaderParams())
	meta := header.ChannelMeta(2)
	if meta["chan_fullscale"] != 2.5 {
		t.Errorf("projected fullscale mismatch: got %v, want 2.5", meta["chan_fullscale"])
	}
	if meta["stnid"] != "ROB1" {
		t.Errorf("projected station mismatch: got %v", meta["stnid"])
	}
	if _, ok := meta["chan_gain"].(float64); ok {
		t.Error("projected gain should be the scalar raw value, not a float array element")
	}
	if meta["chan_gain"] != int64(1) {
		t.Errorf("projected gain mismatch: got %v, want 1", meta["chan_gain"])
	}
}

func TestDecodeFileHeader18Channel(t *testing.T) {
	tag := &Tag{Order: binary.BigEndian, Type: TagTypeFileHeader, Length: FileHeaderSize18}
	_, err := DecodeFileHeader(bytes.NewReader(make([]byte, FileHeaderSize18)), tag)
	if _, ok := err.(ErrNotImplemented); !ok {
		t.Fatalf("expected ErrNotImplemented, got %v", err)
	}
}

func TestDecodeFileHeaderBadLength(t *testing.T) {
	tag := &Tag{Order: binary.BigEndian, Type: TagTypeFileHeader, Length: 64}
	_, err := DecodeFileHeader(bytes.NewReader(make([]byte, 64)), tag)
	if _, ok := err.(ErrBadHeader); !ok {
		t.Fatalf("expected ErrBadHeader, got %v", err)
	}
}

func TestDecodeFileHeaderShortStream(t *testing.T) {
	tag := &Tag{Order: binary.BigEndian, Type: TagTypeFileHeader, Length: FileHeaderSize12}
	_, err := DecodeFileHeader(bytes.NewReader(make([]byte, 100)), tag)
	if _, ok := err.(ErrBadHeader); !ok {
		t.Fatalf("expected ErrBadHeader, got %v", err)
	}
}
