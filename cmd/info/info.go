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

package info

import (
	"os"

	"github.com/spf13/cobra"

	"oma.be/seismo/go-evt/pkg/evt"
)

// NewCommand creates the command that prints file header metadata
// without decoding the sample blocks.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Print the file header of an EVT recording",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()

			header, _, err := evt.ReadHeader(file)
			if err != nil {
				return err
			}

			cmd.Printf("Station:      %s\n", header.StationID())
			cmd.Printf("Comment:      %s\n", header.Comment())
			cmd.Printf("Instrument:   %s\n", header.Instrument())
			cmd.Printf("Serial:       %d\n", header.SerialNumber())
			cmd.Printf("Channels:     %d\n", header.NChannels())
			cmd.Printf("Start time:   %s\n", header.StartTime())
			cmd.Printf("Trigger time: %s\n", header.TriggerTime())
			cmd.Printf("Duration:     %d blocks\n", header.Duration())
			cmd.Printf("Latitude:     %g\n", header.Latitude())
			cmd.Printf("Longitude:    %g\n", header.Longitude())
			cmd.Printf("Elevation:    %d\n", header.Elevation())

			gain := header.ChanGain()
			fullScale := header.ChanFullScale()
			sensitivity := header.ChanSensitivity()
			damping := header.ChanDamping()
			natFreq := header.ChanNatFreq()
			cmd.Printf("%-4s %8s %12s %12s %10s %10s\n", "chan", "gain", "fullscale", "sensitivity", "damping", "natfreq")
			for i := 0; i < header.NChannels(); i++ {
				cmd.Printf("%-4d %8g %12g %12g %10g %10g\n",
					i, gain[i], fullScale[i], sensitivity[i], damping[i], natFreq[i])
			}
			return nil
		},
	}
	return cmd
}
