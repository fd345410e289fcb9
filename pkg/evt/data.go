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
)

// DecodeData reads tag.DataLength bytes and unpacks them into one
// sample sequence per active channel. Samples are interleaved
// channel-minor and are big-endian no matter what byte order the tag
// block selected, the packed sample region is fixed big-endian.
func DecodeData(r io.Reader, tag *Tag, geom *FrameGeometry) ([][]int32, error) {
	buf := make([]byte, int(tag.DataLength))
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, ErrBadData{What: "short data block"}
	}

	// Each frame carries a tenth of a second of data. A rate that does
	// not divide by 10 would leave unaccounted trailing bytes.
	if geom.SamplingRate%10 != 0 {
		return nil, ErrBadData{What: fmt.Sprintf("sampling rate %d is not a multiple of 10", geom.SamplingRate)}
	}
	perChannel := geom.SamplingRate / 10
	expected := perChannel * geom.SampleWidth * geom.Channels
	if int(tag.DataLength) != expected {
		return nil, ErrBadData{What: fmt.Sprintf("bad data length: %d, want %d", tag.DataLength, expected)}
	}

	data := make([][]int32, geom.Channels)
	for k := range data {
		data[k] = make([]int32, perChannel)
	}

	for j := 0; j < perChannel; j++ {
		for k := 0; k < geom.Channels; k++ {
			i := (j*geom.Channels + k) * geom.SampleWidth
			var v int32
			switch geom.SampleWidth {
			case 2:
				// Zero-pad to 4 bytes on the low end, then shift
				// right arithmetically to sign-extend.
				v = int32(uint32(buf[i])<<24|uint32(buf[i+1])<<16) >> 8
			case 3:
				v = int32(uint32(buf[i])<<24|uint32(buf[i+1])<<16|uint32(buf[i+2])<<8) >> 8
			case 4:
				v = int32(binary.BigEndian.Uint32(buf[i : i+4]))
			}
			data[k][j] = v
		}
	}
	return data, nil
}
