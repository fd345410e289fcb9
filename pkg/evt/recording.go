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
	"time"
)

// Recording is the fully assembled result of one file decode. Samples
// holds one sequence per channel, all of equal length.
type Recording struct {
	Station        string
	SamplingRate   int
	StartTime      time.Time
	FirstBlockTime time.Time
	Channels       int
	FrameCount     int
	Samples        [][]int32
	Header         *FileHeader
}

// TraceAppender is the narrow interface to whatever time-series domain
// the decoded channels end up in. One call per channel.
type TraceAppender interface {
	AppendTrace(samples []int32, samplingRate int, start time.Time, station string, meta Record) error
}

// EmitTraces hands every channel to the collaborator together with the
// shared sampling rate, start time, station id and the metadata
// projection of that channel.
func (rec *Recording) EmitTraces(app TraceAppender) error {
	for i := 0; i < rec.Channels; i++ {
		err := app.AppendTrace(rec.Samples[i], rec.SamplingRate, rec.StartTime, rec.Station, rec.Header.ChannelMeta(i))
		if err != nil {
			return err
		}
	}
	return nil
}
