package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/scbrown/deliverable/internal/delivery"
	"github.com/spf13/cobra"
)

// patternsInfo is the JSON structure for the patterns command output.
type patternsInfo struct {
	Archetypes map[string][]string `json:"archetypes"`
	Denylist   []string            `json:"denylist"`
	Substrings []string            `json:"substrings"`
	Extractors []string            `json:"extractors"`
}

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "List the main-file registry and auxiliary rules",
	Long: `Display the rules used to judge file names: the main files registered
for each project archetype, the exact auxiliary denylist, the substrings
that mark a file as auxiliary and the path extractors in the order they
are tried.`,
	Example: `  dlvr patterns
  dlvr patterns --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		extractors := make([]string, len(delivery.Patterns))
		for i, p := range delivery.Patterns {
			extractors[i] = p.Name
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(patternsInfo{
				Archetypes: delivery.Registry(),
				Denylist:   delivery.Denylist(),
				Substrings: delivery.AuxiliarySubstrings(),
				Extractors: extractors,
			})
		}

		tbl := NewTable(os.Stdout, "ARCHETYPE", "MAIN FILES")
		for _, name := range delivery.Archetypes() {
			tbl.Row(name, strings.Join(delivery.MainFiles(name), ", "))
		}
		if err := tbl.Flush(); err != nil {
			return err
		}

		fmt.Printf("\n%s %s\n", tbl.Bold("Auxiliary:"), strings.Join(delivery.Denylist(), ", "))
		fmt.Printf("%s %s\n", tbl.Bold("Auxiliary substrings:"), strings.Join(delivery.AuxiliarySubstrings(), ", "))
		fmt.Printf("%s %s\n", tbl.Bold("Extractors:"), strings.Join(extractors, ", "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(patternsCmd)
}
