package cli

import (
	"encoding/json"
	"os"

	"github.com/scbrown/deliverable/internal/source"
	"github.com/spf13/cobra"
)

// sourceInfo is the JSON structure for the sources command output.
type sourceInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Default     bool   `json:"default"`
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List available transcript sources",
	Long: `Display all registered transcript sources with their description. The
source marked default is the one scan uses when --source is not given.`,
	Example: `  dlvr sources
  dlvr sources --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listSources(defaultSource())
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

// defaultSource returns the configured default source name, falling back
// to "events".
func defaultSource() string {
	if _, cfg, err := loadScanner(); err == nil && cfg.DefaultSource != "" {
		return cfg.DefaultSource
	}
	return defaultSourceName
}

func listSources(def string) error {
	names := source.Names()
	sources := make([]sourceInfo, 0, len(names))
	for _, name := range names {
		src := source.Get(name)
		sources = append(sources, sourceInfo{
			Name:        src.Name(),
			Description: src.Description(),
			Default:     name == def,
		})
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(sources)
	}

	tbl := NewTable(os.Stdout, "NAME", "DESCRIPTION", "DEFAULT")
	for _, s := range sources {
		mark := ""
		if s.Default {
			mark = "*"
		}
		tbl.Row(s.Name, s.Description, mark)
	}
	return tbl.Flush()
}
