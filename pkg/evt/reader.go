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
	"os"

	"oma.be/seismo/go-evt/pkg/log"
)

// ReadHeader reads the leading tag and file header and leaves the
// stream positioned at the first frame tag. The returned byte order is
// the one resolved from the first tag, it holds for the rest of the
// stream.
func ReadHeader(r io.Reader) (*FileHeader, binary.ByteOrder, error) {
	tag, err := ReadTag(r)
	if err != nil {
		if err == EndOfStream {
			return nil, nil, ErrBadHeader{What: "unexpected end of stream"}
		}
		return nil, nil, err
	}
	if tag.Type != TagTypeFileHeader {
		return nil, nil, ErrBadHeader{What: fmt.Sprintf("expected file header tag, got type %d", tag.Type)}
	}
	header, err := DecodeFileHeader(r, tag)
	if err != nil {
		return nil, nil, err
	}
	if header.NChannels() != MaxChannels {
		return nil, nil, ErrNotImplemented{What: fmt.Sprintf("%d channel recording", header.NChannels())}
	}
	return header, tag.Order, nil
}

// Read decodes one complete recording from the stream: one file header,
// then alternating frame headers and data blocks until the end
// sentinel. Any structural error aborts the whole decode, no partial
// recording is returned.
func Read(r io.Reader) (*Recording, error) {
	header, order, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}

	frames := &FrameDecoder{}
	samples := make([][]int32, header.NChannels())
	rec := &Recording{
		Station:  header.StationID(),
		Channels: header.NChannels(),
		Header:   header,
	}

	for {
		tag, err := ReadTag(r)
		if err == EndOfStream {
			break
		}
		if err != nil {
			return nil, err
		}
		if tag.Type != TagTypeFrameHeader {
			return nil, ErrBadHeader{What: fmt.Sprintf("unexpected tag type %d inside block sequence", tag.Type)}
		}

		geom, err := frames.Decode(r, tag, order)
		if err != nil {
			return nil, err
		}
		if frames.Count() == 1 {
			rec.SamplingRate = geom.SamplingRate
			rec.FirstBlockTime = geom.BlockTime
		} else if geom.SamplingRate != rec.SamplingRate {
			return nil, ErrBadHeader{What: "sampling rate not constant"}
		}
		if geom.Channels != len(samples) {
			return nil, ErrBadData{What: fmt.Sprintf("frame carries %d channels, recording has %d", geom.Channels, len(samples))}
		}

		data, err := DecodeData(r, tag, geom)
		if err != nil {
			return nil, err
		}
		for k := range samples {
			samples[k] = append(samples[k], data[k]...)
		}
		for k := 1; k < len(samples); k++ {
			if len(samples[k]) != len(samples[0]) {
				return nil, ErrBadData{What: "channel sample counts diverged"}
			}
		}
	}

	if frames.Count() != header.Duration() {
		return nil, ErrBadData{What: fmt.Sprintf("bad number of blocks: %d, header declares %d", frames.Count(), header.Duration())}
	}

	rec.StartTime = header.StartTime()
	rec.FrameCount = frames.Count()
	rec.Samples = samples
	log.Info("Decoded recording: station: %s rate: %d frames: %d", rec.Station, rec.SamplingRate, rec.FrameCount)
	return rec, nil
}

// ReadFile decodes the recording stored at path. The file is closed on
// every return path.
func ReadFile(path string) (*Recording, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Read(file)
}
