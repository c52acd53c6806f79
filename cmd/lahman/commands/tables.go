package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/diamondstats/lahman/pkg/dataset"
)

func newTablesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "List the bundled dataset tables",
		Long: `List every table a populated backend must hold, with column and row
counts from the bundled snapshot.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			type tableInfo struct {
				Name    string `json:"name"`
				Columns int    `json:"columns"`
				Rows    int    `json:"rows"`
			}

			var infos []tableInfo
			for _, name := range dataset.Tables() {
				f, err := dataset.Open(name)
				if err != nil {
					return err
				}
				infos = append(infos, tableInfo{Name: name, Columns: len(f.Columns), Rows: f.NumRows()})
			}

			if jsonOutput {
				return json.NewEncoder(os.Stdout).Encode(map[string]any{
					"dataset_version": dataset.Version,
					"tables":          infos,
				})
			}

			fmt.Printf("dataset version %s\n\n", dataset.Version)
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TABLE\tCOLUMNS\tROWS")
			for _, info := range infos {
				fmt.Fprintf(w, "%s\t%d\t%d\n", info.Name, info.Columns, info.Rows)
			}
			return w.Flush()
		},
	}
	return cmd
}
