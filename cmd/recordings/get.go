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

package recordings

import (
	"github.com/spf13/cobra"

	"oma.be/seismo/go-evt/pkg/command"
	"oma.be/seismo/go-evt/pkg/config"
)

func NewGetCommand() *cobra.Command {
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Get one catalog entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := command.NewApiClient(cfg)
			entry, err := client.GetRecording(args[0])
			if err != nil {
				return err
			}
			cmd.Printf("ID:            %s\n", entry.ID)
			cmd.Printf("Path:          %s\n", entry.Path)
			cmd.Printf("Station:       %s\n", entry.Station)
			cmd.Printf("Instrument:    %s\n", entry.Instrument)
			cmd.Printf("Start time:    %s\n", entry.StartTime)
			cmd.Printf("Sampling rate: %d\n", entry.SamplingRate)
			cmd.Printf("Channels:      %d\n", entry.Channels)
			cmd.Printf("Frames:        %d\n", entry.Frames)
			return nil
		},
	}
	return cmd
}
