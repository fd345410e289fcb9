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
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"oma.be/seismo/go-evt/pkg/catalog"
	"oma.be/seismo/go-evt/pkg/config"
	"oma.be/seismo/go-evt/pkg/evt"
)

const (
	RawOptionName     = "raw"
	CatalogOptionName = "catalog"
)

func NewCommand() *cobra.Command {
	var raw, toCatalog bool
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "decode <file>",
		Short: "Decode an EVT recording and print a per-channel summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := evt.ReadFile(args[0])
			if err != nil {
				return err
			}

			cmd.Printf("Station:       %s\n", rec.Station)
			cmd.Printf("Instrument:    %s\n", rec.Header.Instrument())
			cmd.Printf("Start time:    %s\n", rec.StartTime)
			cmd.Printf("Sampling rate: %d Hz\n", rec.SamplingRate)
			cmd.Printf("Channels:      %d\n", rec.Channels)
			cmd.Printf("Frames:        %d\n", rec.FrameCount)

			var channels [][]float64
			unit := "counts"
			if raw || !cfg.Calibrate {
				channels = make([][]float64, len(rec.Samples))
				for i, samples := range rec.Samples {
					channels[i] = make([]float64, len(samples))
					for j, s := range samples {
						channels[i][j] = float64(s)
					}
				}
			} else {
				channels = rec.Calibrate()
				unit = "m/s2"
			}

			cmd.Printf("%-4s %12s %12s %12s  [%s]\n", "chan", "min", "max", "mean", unit)
			for i, channel := range channels {
				// floats.Min panics on an empty slice, a duration 0
				// recording has no samples to summarize.
				if len(channel) == 0 {
					cmd.Printf("%-4d %12s %12s %12s\n", i, "-", "-", "-")
					continue
				}
				cmd.Printf("%-4d %12.4g %12.4g %12.4g\n",
					i, floats.Min(channel), floats.Max(channel), stat.Mean(channel, nil))
			}

			if toCatalog {
				c, err := catalog.NewCatalog(cfg.DBPath)
				if err != nil {
					return err
				}
				defer c.Close()
				entry := catalog.EntryFromRecording(args[0], rec)
				if err := c.Put(entry); err != nil {
					return err
				}
				cmd.Printf("Catalog entry: %s\n", entry.ID)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, RawOptionName, false, "Keep raw counts, skip calibration")
	cmd.Flags().BoolVar(&toCatalog, CatalogOptionName, false, "Record the recording in the catalog database")
	return cmd
}
