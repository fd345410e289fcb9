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
	"math"
)

// Builders for synthetic EVT streams. Byte offsets are written out
// independently of the layout tables so that a broken table cannot
// cancel out against a broken builder.

func orderOf(flag byte) binary.ByteOrder {
	if flag == 1 {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func buildTag(orderFlag byte, tagType uint32, length, dataLength uint16) []byte {
	buf := make([]byte, TagSize)
	buf[0] = SyncMarker
	buf[1] = orderFlag
	order := orderOf(orderFlag)
	order.PutUint32(buf[4:8], tagType)
	order.PutUint16(buf[8:10], length)
	order.PutUint16(buf[10:12], dataLength)
	order.PutUint16(buf[12:14], 1) // id
	return buf
}

func putF32(order binary.ByteOrder, buf []byte, off int, v float32) {
	order.PutUint32(buf[off:off+4], math.Float32bits(v))
}

type headerParams struct {
	nchannels   uint16
	duration    uint32
	station     string
	comment     string
	instrument  byte
	gpsStatus   byte
	startTime   uint32
	startMSec   uint16
	triggerTime uint32
	latitude    float32
	longitude   float32
	elevation   int16
	fullScale   [MaxChannels]float32
	sensitivity [MaxChannels]float32
	gain        [MaxChannels]uint16
	north       [MaxChannels]int16
}

func buildFileHeader(orderFlag byte, p headerParams) []byte {
	buf := make([]byte, FileHeaderSize12)
	order := orderOf(orderFlag)

	// Identification and state of health range, 0x000.
	buf[3] = p.instrument
	buf[57] = p.gpsStatus
	order.PutUint32(buf[100:104], p.startTime) // gps last lock

	// Event time and station range, 0x22c.
	order.PutUint32(buf[556:560], p.startTime)
	order.PutUint32(buf[560:564], p.triggerTime)
	order.PutUint32(buf[564:568], p.duration)
	order.PutUint16(buf[572:574], p.startMSec)
	order.PutUint16(buf[588:590], 4321) // serial number
	order.PutUint16(buf[590:592], p.nchannels)
	copy(buf[592:597], p.station)
	copy(buf[597:630], p.comment)
	order.PutUint16(buf[630:632], uint16(p.elevation))
	putF32(order, buf, 632, p.latitude)
	putF32(order, buf, 636, p.longitude)

	// Per-channel sensor parameter range, 0x2c8, 76 bytes per channel.
	for i := 0; i < MaxChannels; i++ {
		base := 712 + 76*i
		copy(buf[base:base+5], "CHN")
		order.PutUint16(buf[base+8:base+10], uint16(p.north[i]))
		order.PutUint16(buf[base+22:base+24], p.gain[i])
		putF32(order, buf, base+32, p.fullScale[i])
		putF32(order, buf, base+36, p.sensitivity[i])
		putF32(order, buf, base+40, 0.7)  // damping
		putF32(order, buf, base+44, 196.) // natural frequency
	}
	return buf
}

func defaultHeaderParams() headerParams {
	p := headerParams{
		nchannels:   12,
		duration:    2,
		station:     "ROB1",
		comment:     "test recording",
		instrument:  20, // New Etna
		gpsStatus:   2 | 32,
		startTime:   600000000,
		startMSec:   250,
		triggerTime: 600000010,
		latitude:    50.798,
		longitude:   4.358,
		elevation:   100,
	}
	for i := 0; i < MaxChannels; i++ {
		p.fullScale[i] = 2.5
		p.sensitivity[i] = 1.25
		p.gain[i] = 1
		p.north[i] = 1
	}
	return p
}

func buildFrame(orderFlag byte, frameType byte, blockTime uint32, bitmap uint16, streamPar uint16, frameStatus byte, msec uint16) []byte {
	buf := make([]byte, FrameHeaderSize)
	order := orderOf(orderFlag)
	buf[0] = frameType
	buf[1] = 20 // instrument code
	order.PutUint16(buf[2:4], 7)  // recorder id
	order.PutUint16(buf[4:6], 32) // frame size
	order.PutUint32(buf[6:10], blockTime)
	order.PutUint16(buf[10:12], bitmap)
	order.PutUint16(buf[12:14], streamPar)
	buf[14] = frameStatus
	order.PutUint16(buf[16:18], msec)
	return buf
}

// buildData packs samples[j][k] (sample j of channel k) big-endian with
// the given byte width.
func buildData(width int, channels int, samples [][]int32) []byte {
	buf := make([]byte, len(samples)*channels*width)
	for j, row := range samples {
		for k, v := range row {
			off := (j*channels + k) * width
			switch width {
			case 2:
				binary.BigEndian.PutUint16(buf[off:off+2], uint16(v>>8))
			case 3:
				buf[off] = byte(v >> 16)
				buf[off+1] = byte(v >> 8)
				buf[off+2] = byte(v)
			case 4:
				binary.BigEndian.PutUint32(buf[off:off+4], uint32(v))
			}
		}
	}
	return buf
}
