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

package serve

import (
	"context"

	"github.com/spf13/cobra"

	"oma.be/seismo/go-evt/pkg/config"
	"oma.be/seismo/go-evt/pkg/srv"
)

func NewCommand() *cobra.Command {
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the recording catalog over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := srv.NewApiServer(context.Background(), cfg)
			if err != nil {
				return err
			}
			return server.Run()
		},
	}
	return cmd
}
