package cli

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/scbrown/deliverable/internal/analyze"
	"github.com/scbrown/deliverable/internal/delivery"
	"github.com/scbrown/deliverable/internal/model"
	"github.com/spf13/cobra"
)

type classifyResult struct {
	Name        string               `json:"name"`
	Class       model.Classification `json:"class"`
	Archetypes  []string             `json:"archetypes"`
	Suggestions []string             `json:"suggestions,omitempty"` // near-miss main files, unclassified only
}

var classifyCmd = &cobra.Command{
	Use:   "classify <file-name>...",
	Short: "Classify file names as main, auxiliary or unclassified",
	Long: `Classify prints how each bare file name would be judged. Auxiliary
rules (the denylist and the test/spec substrings) are checked before the
main-file registry. Matching is exact and case-sensitive; pass names, not
paths. Unclassified names that nearly match a main file get a hint.`,
	Example: `  dlvr classify index.html style.css
  dlvr classify --json main.py latest.html`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results := make([]classifyResult, 0, len(args))
		for _, name := range args {
			archetypes := delivery.ArchetypesFor(name)
			if archetypes == nil {
				archetypes = []string{}
			}
			res := classifyResult{
				Name:       name,
				Class:      delivery.Classify(name),
				Archetypes: archetypes,
			}
			if res.Class == model.Unclassified {
				for _, sg := range analyze.SuggestMainFile(name) {
					res.Suggestions = append(res.Suggestions, sg.Name)
				}
			}
			results = append(results, res)
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		}

		tbl := NewTable(os.Stdout, "NAME", "CLASS", "ARCHETYPES", "DID YOU MEAN")
		for _, r := range results {
			archetypes, hint := "-", "-"
			if len(r.Archetypes) > 0 {
				archetypes = strings.Join(r.Archetypes, ",")
			}
			if len(r.Suggestions) > 0 {
				hint = strings.Join(r.Suggestions, ",")
			}
			tbl.Row(r.Name, r.Class.String(), archetypes, hint)
		}
		return tbl.Flush()
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
