package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/diamondstats/lahman/pkg/config"
)

func newPathCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the embedded database file locations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			if jsonOutput {
				return json.NewEncoder(os.Stdout).Encode(map[string]string{
					"sqlite": cfg.SQLite.Path,
					"duckdb": cfg.DuckDB.Path,
				})
			}
			fmt.Printf("sqlite: %s\n", cfg.SQLite.Path)
			fmt.Printf("duckdb: %s\n", cfg.DuckDB.Path)
			return nil
		},
	}
	return cmd
}
