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

	"oma.be/seismo/go-evt/pkg/log"
)

const (
	// TagSize is the fixed length of the tag block preceding every
	// file header and frame header.
	TagSize = 16
	// SyncMarker is the expected value of tag byte 0. A null byte
	// there is the explicit end-of-recording sentinel.
	SyncMarker = 'K'

	TagTypeFileHeader  = 1
	TagTypeFrameHeader = 2

	// FileHeaderSize12 is the 12 channel file header length.
	FileHeaderSize12 = 2040
	// FileHeaderSize18 is the 18 channel variant, recognized as valid
	// EVT but not decoded.
	FileHeaderSize18 = 2736
)

// Tag is the 16 byte self-describing block header. Byte 1 selects the
// byte order used for every integer that follows in the stream.
type Tag struct {
	Order      binary.ByteOrder
	Version    uint8
	Instrument uint8
	Type       uint32
	Length     uint16
	DataLength uint16
	ID         uint16
	Checksum   uint16
}

// version u8, instrument u8, type u32, length u16, datalength u16,
// id u16, checksum u16 -> the 14 bytes after sync and order.
var tagLayout = lay(u8(2), u32(1), u16(4))

// ReadTag reads the next tag block. It returns EndOfStream when fewer
// than 16 bytes are available or when the sync byte is the null
// sentinel.
func ReadTag(r io.Reader) (*Tag, error) {
	buf := make([]byte, TagSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, EndOfStream
	}
	if buf[0] == 0 {
		return nil, EndOfStream
	}
	if buf[0] != SyncMarker {
		return nil, ErrBadHeader{What: fmt.Sprintf("sync error: 0x%02x", buf[0])}
	}

	var order binary.ByteOrder
	switch buf[1] {
	case 1:
		order = binary.BigEndian
	case 0:
		order = binary.LittleEndian
	default:
		return nil, ErrBadHeader{What: fmt.Sprintf("bad byte order flag: %d", buf[1])}
	}

	values, err := tagLayout.Unpack(buf[2:], order)
	if err != nil {
		return nil, err
	}
	tag := &Tag{
		Order:      order,
		Version:    uint8(values[0].Int),
		Instrument: uint8(values[1].Int),
		Type:       uint32(values[2].Int),
		Length:     uint16(values[3].Int),
		DataLength: uint16(values[4].Int),
		ID:         uint16(values[5].Int),
		Checksum:   uint16(values[6].Int),
	}
	log.Debug("ReadTag: type: %d length: %d datalength: %d id: %d", tag.Type, tag.Length, tag.DataLength, tag.ID)

	if err := tag.verify(); err != nil {
		return nil, err
	}
	return tag, nil
}

func (t *Tag) verify() error {
	switch t.Type {
	case TagTypeFileHeader:
		if t.Length != FileHeaderSize12 && t.Length != FileHeaderSize18 {
			return ErrBadHeader{What: fmt.Sprintf("bad file header length: %d", t.Length)}
		}
	case TagTypeFrameHeader:
	default:
		return ErrBadHeader{What: fmt.Sprintf("unknown tag type: %d", t.Type)}
	}
	return nil
}
