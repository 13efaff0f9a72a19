package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/scbrown/deliverable/internal/delivery"
	"github.com/scbrown/deliverable/internal/model"
	"github.com/spf13/cobra"
)

// errNoPath is returned by extract when the blob names no file.
var errNoPath = errors.New("no file path found")

type extractResult struct {
	FullPath string `json:"full_path"`
	FileName string `json:"file_name"`
	Pattern  string `json:"pattern"`
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract the target file path from a tool call payload",
	Long: `Extract reads a tool call payload from stdin and prints the file path it
targets, its bare file name and the pattern that matched. The payload may
be raw text, an XML parameter block or JSON, including JSON wrapped inside
a "content" field.

Patterns are tried in a fixed order: parameter tags, then key assignments,
then JSON keys, each over file_path, target_file, file-path and
target-file.`,
	Example: `  echo '<parameter name="file_path">src/index.html</parameter>' | dlvr extract
  echo '{"target_file": "app/main.py"}' | dlvr extract --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		blob, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		path, pat, ok := delivery.Locate(model.Text(blob))
		if !ok {
			return errNoPath
		}
		res := extractResult{FullPath: path.FullPath, FileName: path.FileName, Pattern: pat.Name}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			return enc.Encode(res)
		}
		tbl := NewTable(os.Stdout)
		tbl.Row("full path:", res.FullPath)
		tbl.Row("file name:", res.FileName)
		tbl.Row("pattern:", res.Pattern)
		return tbl.Flush()
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
}
