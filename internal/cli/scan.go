package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/scbrown/deliverable/internal/delivery"
	"github.com/scbrown/deliverable/internal/logger"
	"github.com/scbrown/deliverable/internal/model"
	"github.com/scbrown/deliverable/internal/source"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// defaultSourceName is used when neither --source nor default_source is set.
const defaultSourceName = "events"

var (
	scanSource  string
	scanExplain bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [file]",
	Short: "Find the main deliverable in a transcript",
	Long: `Scan reads a transcript (from a file, or stdin when no file is given),
inspects every file-mutation tool call (create_file, full_file_rewrite,
edit_file) in order and reports the first one whose file is a main
deliverable.

The --source flag selects the transcript format; it defaults to the
default_source config value, then to "events". Use --explain to see how
each inspected call was judged.`,
	Example: `  dlvr scan events.json
  dlvr scan --source claude-code session.jsonl
  cat reply.txt | dlvr scan --source invoke-xml --explain
  dlvr scan --json events.jsonl`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scanner, cfg, err := loadScanner()
		if err != nil {
			return err
		}

		name := scanSource
		if name == "" {
			name = cfg.DefaultSource
		}
		if name == "" {
			name = defaultSourceName
		}
		src, err := source.Lookup(name)
		if err != nil {
			return err
		}

		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		r, file, err := openInput(path)
		if err != nil {
			return err
		}
		defer r.Close()

		events, err := src.Events(r)
		if err != nil {
			return fmt.Errorf("read transcript: %w", err)
		}
		logger.Debugf("Read %d events from %s using %s", len(events), displayName(file), src.Name())

		report := buildReport(scanner, src.Name(), file, events)

		if jsonOutput {
			if !scanExplain {
				report.Verdicts = nil
			}
			return writeReportJSON(os.Stdout, report)
		}
		writeReportText(os.Stdout, report, scanExplain)
		return nil
	},
}

func init() {
	scanCmd.Flags().StringVar(&scanSource, "source", "", "transcript source plugin (see dlvr sources)")
	scanCmd.Flags().BoolVar(&scanExplain, "explain", false, "show the verdict for every inspected tool call")
	rootCmd.AddCommand(scanCmd)
}

// buildReport scans events and records every verdict at debug level.
func buildReport(s *delivery.Scanner, sourceName, file string, events []model.ToolCallEvent) model.Report {
	verdicts := s.Explain(events)
	for _, v := range verdicts {
		fields := logrus.Fields{
			"index":  v.Index,
			"tool":   v.ToolName,
			"reason": v.Reason,
		}
		if v.Path != nil {
			fields["file"] = v.Path.FileName
			fields["pattern"] = v.Pattern
		}
		logger.WithFields(fields).Debug("verdict")
	}
	return model.Report{
		ID:       uuid.New().String(),
		Source:   sourceName,
		File:     file,
		Events:   len(events),
		Decision: s.FindMainDelivery(events),
		Verdicts: verdicts,
	}
}

func writeReportJSON(w io.Writer, r model.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(r)
}

func writeReportText(w io.Writer, r model.Report, explain bool) {
	if explain {
		tbl := NewTable(w, "INDEX", "TOOL", "FILE", "PATTERN", "CLASS")
		for _, v := range r.Verdicts {
			file, pattern := "-", "-"
			if v.Path != nil {
				file = truncate(v.Path.FullPath, 48)
				pattern = v.Pattern
			}
			tbl.Row(strconv.Itoa(v.Index), v.ToolName, file, pattern, v.Reason)
		}
		tbl.Flush()
		fmt.Fprintln(w)
	}

	if !r.Decision.Found() {
		fmt.Fprintf(w, "No main deliverable among %s events.\n", humanize.Comma(int64(r.Events)))
		return
	}
	fmt.Fprintf(w, "Main deliverable: %s (event %s of %s)\n", r.Decision.FileName,
		humanize.Comma(int64(*r.Decision.Index)), humanize.Comma(int64(r.Events)))
}

func displayName(file string) string {
	if file == "" {
		return "stdin"
	}
	return file
}
