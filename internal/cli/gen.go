package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/synapseflow/codegen"
	"github.com/hupe1980/synapseflow/logging"
)

func newGenCmd() *cobra.Command {
	var (
		dir string
		pkg string
	)

	cmd := &cobra.Command{
		Use:   "gen [description...]",
		Short: "Generate a capability stub from a free-text description",
		Long: `Writes a compilable Go capability stub plus its discovery descriptor.
The first non-empty line of the description names the capability; lines
starting with "use:" become input parameter descriptions. With no
arguments the description is read from stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			description := strings.Join(args, " ")
			if description == "" {
				raw, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read description: %w", err)
				}
				description = strings.TrimSpace(string(raw))
			}
			if description == "" {
				return fmt.Errorf("empty capability description")
			}

			gen, err := codegen.New(dir, func(o *codegen.Options) {
				o.Package = pkg
				o.Logger = logging.NewSlogLogger(logging.ParseLevel(cfg.Log.Level), cfg.Log.Format)
			})
			if err != nil {
				return err
			}

			path, err := gen.Create(description)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	wd, _ := os.Getwd()
	cmd.Flags().StringVarP(&dir, "dir", "d", wd, "Directory to write the stub into")
	cmd.Flags().StringVarP(&pkg, "package", "p", "tools", "Package name for the generated file")

	return cmd
}
