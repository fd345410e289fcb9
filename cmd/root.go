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

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"oma.be/seismo/go-evt/cmd/completion"
	configcmd "oma.be/seismo/go-evt/cmd/config"
	"oma.be/seismo/go-evt/cmd/decode"
	"oma.be/seismo/go-evt/cmd/info"
	"oma.be/seismo/go-evt/cmd/recordings"
	"oma.be/seismo/go-evt/cmd/serve"
	pkgconfig "oma.be/seismo/go-evt/pkg/config"
	"oma.be/seismo/go-evt/pkg/log"
)

const (
	LogLevelOptionName = "log-level"
)

func NewRootCommand(out io.Writer) *cobra.Command {
	var logLevel string
	cfg := pkgconfig.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "go-evt",
		Short: "Tool to work with Kinemetrics EVT recordings",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			log.Init(cmd.ErrOrStderr(), cfg.LogLevel)
		},
	}
	cmd.SetOut(out)
	cmd.AddCommand(decode.NewCommand())
	cmd.AddCommand(info.NewCommand())
	cmd.AddCommand(serve.NewCommand())
	cmd.AddCommand(recordings.NewCommand())
	cmd.AddCommand(configcmd.NewCommand())
	cmd.AddCommand(completion.NewCommand())
	cmd.PersistentFlags().StringVar(&logLevel, LogLevelOptionName, "", fmt.Sprintf("Log level. %s", log.HelpLevels))
	return cmd
}
