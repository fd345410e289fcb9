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

package decode

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeEmptyRecording builds a structurally valid recording with no
// frames at all: file header tag, a 12 channel header declaring
// duration 0, and the null sentinel tag.
func writeEmptyRecording(t *testing.T) string {
	t.Helper()
	var stream bytes.Buffer

	tag := make([]byte, 16)
	tag[0] = 'K'
	tag[1] = 1 // big-endian
	binary.BigEndian.PutUint32(tag[4:8], 1)
	binary.BigEndian.PutUint16(tag[8:10], 2040)
	stream.Write(tag)

	header := make([]byte, 2040)
	binary.BigEndian.PutUint16(header[590:592], 12) // nchannels
	copy(header[592:597], "ROB1")
	stream.Write(header)

	stream.Write(make([]byte, 16)) // end sentinel

	path := filepath.Join(t.TempDir(), "empty.evt")
	if err := os.WriteFile(path, stream.Bytes(), 0644); err != nil {
		t.Fatalf("unexpected write error: %v", err)
	}
	return path
}

func TestDecodeEmptyRecording(t *testing.T) {
	path := writeEmptyRecording(t)
	cmd := NewCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if !strings.Contains(out.String(), "Frames:        0") {
		t.Errorf("summary missing zero frame count:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Station:       ROB1") {
		t.Errorf("summary missing station:\n%s", out.String())
	}
}
