package cli

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/scbrown/deliverable/internal/delivery"
	"github.com/scbrown/deliverable/internal/logger"
	"github.com/scbrown/deliverable/internal/source"
	"github.com/spf13/cobra"
)

// momentOutput is the JSON line emitted for each delivery moment.
type momentOutput struct {
	Index    int    `json:"index"`
	ToolName string `json:"tool_name"`
	FullPath string `json:"full_path"`
	FileName string `json:"file_name"`
}

var streamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Report delivery moments as tool calls arrive",
	Long: `Stream reads tool call events from stdin, one JSON object per line, and
prints a line each time an event is a delivery moment: a whole-file write
(create_file or full_file_rewrite) of a main deliverable. Edits never
count as delivery moments.

Lines that cannot be parsed are logged and skipped.`,
	Example: `  agent-run | dlvr stream
  tail -f events.jsonl | dlvr stream --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		scanner, _, err := loadScanner()
		if err != nil {
			return err
		}
		n, err := StreamMoments(os.Stdin, os.Stdout, scanner)
		if err != nil {
			return err
		}
		logger.Debugf("Stream ended after %d delivery moments", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(streamCmd)
}

// StreamMoments checks each JSONL event read from r and writes one line to
// w per delivery moment. It returns the number of moments written.
func StreamMoments(r io.Reader, w io.Writer, s *delivery.Scanner) (int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	moments, pos, lineNum := 0, 0, 0
	for sc.Scan() {
		lineNum++
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		ev, err := source.DecodeEvent(line, pos)
		pos++
		if err != nil {
			logger.Warnf("Skipping line %d: %v", lineNum, err)
			continue
		}
		if !s.IsDeliveryMoment(ev) {
			continue
		}
		v := s.Judge(ev)
		moments++
		if jsonOutput {
			if err := enc.Encode(momentOutput{
				Index:    ev.Index,
				ToolName: ev.ToolName,
				FullPath: v.Path.FullPath,
				FileName: v.Path.FileName,
			}); err != nil {
				return moments, fmt.Errorf("write moment: %w", err)
			}
			continue
		}
		fmt.Fprintf(w, "delivery: %s (event %d, %s)\n", v.Path.FileName, ev.Index, ev.ToolName)
	}
	if err := sc.Err(); err != nil {
		return moments, fmt.Errorf("read events: %w", err)
	}
	return moments, nil
}
