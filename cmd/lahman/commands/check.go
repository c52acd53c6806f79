package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/diamondstats/lahman/pkg/backends"
)

func newCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <backend>",
		Short: "Check whether a backend is reachable",
		Long: `Attempt a lightweight connection to a backend and report the result.
Connection errors make the backend unreachable; an unknown backend name is
an error. The exit code is non-zero when the backend is unreachable.`,
		Example: `  lahman check sqlite
  lahman check postgres`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := backends.ParseKind(args[0])
			if err != nil {
				return err
			}

			provider, err := newProvider()
			if err != nil {
				return err
			}
			defer provider.Close()

			ok := provider.Reachable(cmd.Context(), kind)

			if jsonOutput {
				if err := json.NewEncoder(os.Stdout).Encode(map[string]any{
					"backend":   kind.String(),
					"reachable": ok,
				}); err != nil {
					return err
				}
			} else if ok {
				fmt.Printf("backend %s: reachable\n", kind)
			} else {
				fmt.Printf("backend %s: unreachable\n", kind)
			}

			if !ok {
				return fmt.Errorf("backend %s is unreachable", kind)
			}
			return nil
		},
	}
	return cmd
}
