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

func NewListCommand() *cobra.Command {
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := command.NewApiClient(cfg)
			entries, err := client.ListRecordings()
			if err != nil {
				return err
			}
			for _, entry := range entries {
				cmd.Printf("%s  %s  %d Hz  %d frames  %s\n",
					entry.ID, entry.Station, entry.SamplingRate, entry.Frames, entry.Path)
			}
			return nil
		},
	}
	return cmd
}
