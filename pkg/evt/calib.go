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
	"gonum.org/v1/gonum/floats"
)

const (
	// counts24 is the positive range of a 24 bit sample, 2^23.
	counts24 = 8388608.0
	// gravity is the mean acceleration of gravity used to convert
	// volts per g into MKS units.
	gravity = 9.81
)

// Calibrate converts the raw counts of every channel into m/s^2 using
// the per-channel full scale and sensitivity from the file header:
// counts are scaled by fullscale/2^23 into volts, then by g/sensitivity
// into acceleration. The division is unchecked float arithmetic, a zero
// full scale yields zeros rather than an error.
func (rec *Recording) Calibrate() [][]float64 {
	fullScale := rec.Header.ChanFullScale()
	sensitivity := rec.Header.ChanSensitivity()

	out := make([][]float64, len(rec.Samples))
	for i, channel := range rec.Samples {
		calibV := counts24 / fullScale[i]
		calibMKS := calibV * sensitivity[i] / gravity
		out[i] = make([]float64, len(channel))
		for j, s := range channel {
			out[i][j] = float64(s)
		}
		floats.Scale(1/calibMKS, out[i])
	}
	return out
}
