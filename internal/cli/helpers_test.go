package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/scbrown/deliverable/internal/logger"
)

// resetFlags restores package-level flag variables and points configPath
// at an empty temp dir so the user's real config is never read.
func resetFlags(t *testing.T) {
	t.Helper()
	oldCfg := configPath
	configPath = filepath.Join(t.TempDir(), "config.toml")
	jsonOutput = false
	logLevel = "warn"
	scanSource = ""
	scanExplain = false
	for _, name := range []string{"json", "log-level"} {
		rootCmd.PersistentFlags().Lookup(name).Changed = false
	}
	t.Cleanup(func() {
		configPath = oldCfg
		jsonOutput = false
		scanSource = ""
		scanExplain = false
		logger.Init("warn")
	})
}

// captureStdout returns everything fn writes to os.Stdout.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

// captureStdoutAndLogs runs fn with stdout and the logger redirected.
func captureStdoutAndLogs(t *testing.T, fn func()) (stdout, logs string) {
	t.Helper()
	var logBuf bytes.Buffer
	logger.SetOutput(&logBuf)
	defer logger.SetOutput(os.Stderr)

	stdout = captureStdout(t, fn)
	return stdout, logBuf.String()
}

// pipeStdin replaces os.Stdin with a pipe carrying data until the test ends.
func pipeStdin(t *testing.T, data string) {
	t.Helper()
	old := os.Stdin
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdin = r
	t.Cleanup(func() { os.Stdin = old })
	go func() {
		defer w.Close()
		w.WriteString(data)
	}()
}

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var err error
	out := captureStdout(t, func() {
		rootCmd.SetArgs(args)
		err = rootCmd.Execute()
	})
	return out, err
}

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
