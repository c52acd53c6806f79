package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/diamondstats/lahman/pkg/backends"
)

func newCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache <backend>",
		Short: "Cache the dataset into a backend",
		Long: `Connect to a backend and copy every missing dataset table into it.
Tables already present are left untouched.`,
		Example: `  # Populate the local SQLite file
  lahman cache sqlite

  # Populate a PostgreSQL server configured via environment
  LAHMAN_PG_HOST=db.internal lahman cache postgres`,
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

			b, err := provider.Get(cmd.Context(), kind)
			if err != nil {
				return err
			}

			tables, err := b.TableNames(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput {
				return json.NewEncoder(os.Stdout).Encode(map[string]any{
					"backend": kind.String(),
					"tables":  len(tables),
				})
			}
			fmt.Printf("backend %s ready: %d tables\n", kind, len(tables))
			return nil
		},
	}
	return cmd
}
