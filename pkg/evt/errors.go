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
	"errors"
	"fmt"
)

// EndOfStream is returned by ReadTag when the recording is over, either
// because fewer than 16 bytes are left or because the null sync sentinel
// was found. It terminates the block read loop and is not a failure.
var EndOfStream = errors.New("end of stream")

// ErrBadHeader returned when a tag, file header or frame header is structurally invalid
type ErrBadHeader struct {
	What string
}

func (e ErrBadHeader) Error() string {
	return fmt.Sprintf("Bad header: %s", e.What)
}

// ErrBadData returned when a data block does not match the geometry announced by its frame
type ErrBadData struct {
	What string
}

func (e ErrBadData) Error() string {
	return fmt.Sprintf("Bad data: %s", e.What)
}

// ErrNotImplemented returned for recognized but unsupported format variants,
// the 18 channel file header and the 16 channel frame layout.
type ErrNotImplemented struct {
	What string
}

func (e ErrNotImplemented) Error() string {
	return fmt.Sprintf("Not implemented: %s", e.What)
}
