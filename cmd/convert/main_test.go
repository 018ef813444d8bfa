package main

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/Zuo-Peng/clocktsv/internal/output"
	"github.com/Zuo-Peng/clocktsv/internal/parse"
	"github.com/stretchr/testify/require"
)

const sampleLog = `* Zeiten
** Work :Daily:
   CLOCK: [2024-01-01 Mo 22:00]--[2024-01-02 Tu 01:00] =>  3:00
** Rest :Freizeit:
   CLOCK: [2024-01-03 Mi 12:00]--[2024-01-03 Mi 13:15] =>  1:15
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var stderr bytes.Buffer
	cmd := rootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stderr)
	cmd.SetErr(&stderr)
	err := cmd.ExecuteContext(context.Background())
	return stderr.String(), err
}

func writeInput(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	in := filepath.Join(dir, "zeit.org")
	require.NoError(t, os.WriteFile(in, []byte(sampleLog), 0o644))
	return in, dir
}

func TestConvertTSV(t *testing.T) {
	in, dir := writeInput(t)
	out := filepath.Join(dir, "zeit.tsv")

	stderr, err := execute(t, in, out)
	require.NoError(t, err)
	require.Contains(t, stderr, "Wrote "+out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "Activity\tActivityType\tStart\tEnd\n"+
		"Work\tDaily\t2024-01-01 22:00\t2024-01-01 23:59\n"+
		"Work\tDaily\t2024-01-02 00:00\t2024-01-02 01:00\n"+
		"Rest\t\t2024-01-03 12:00\t2024-01-03 13:15\n", string(data))
}

func TestConvertSQLite(t *testing.T) {
	in, dir := writeInput(t)
	out := filepath.Join(dir, "zeit.db")

	_, err := execute(t, "--quiet", in, out)
	require.NoError(t, err)

	rows, err := output.ReadSQLite(out)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, parse.Row{Activity: "Rest", Start: "2024-01-03 12:00", End: "2024-01-03 13:15"}, rows[2])
}

func TestConvertQuiet(t *testing.T) {
	in, dir := writeInput(t)

	stderr, err := execute(t, "-q", in, filepath.Join(dir, "zeit.tsv"))
	require.NoError(t, err)
	require.Empty(t, stderr)
}

func TestConvertRequiresTwoArgs(t *testing.T) {
	for _, args := range [][]string{{}, {"only-input.org"}, {"a", "b", "c"}} {
		stderr, err := execute(t, args...)
		require.Error(t, err)
		require.Contains(t, stderr, "Usage:")
	}
}

func TestMainExitsWithStatusOne(t *testing.T) {
	if os.Getenv("CLOCKTSV_RUN_MAIN") == "1" {
		os.Args = []string{"convert", "only-input.org"}
		main()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestMainExitsWithStatusOne$")
	cmd.Env = append(os.Environ(), "CLOCKTSV_RUN_MAIN=1", "HOME="+t.TempDir())
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 1, exitErr.ExitCode())
	require.Contains(t, stderr.String(), "accepts 2 arg(s)")
	require.Contains(t, stderr.String(), "Usage:")
}

func TestConvertMissingInput(t *testing.T) {
	dir := t.TempDir()
	stderr, err := execute(t, filepath.Join(dir, "missing.org"), filepath.Join(dir, "out.tsv"))
	require.ErrorContains(t, err, "open input")
	require.NotContains(t, stderr, "Usage:")
}

func TestConvertUnwritableOutput(t *testing.T) {
	in, dir := writeInput(t)
	_, err := execute(t, in, filepath.Join(dir, "no-such-dir", "out.tsv"))
	require.ErrorContains(t, err, "open output")
}

func TestConvertStrict(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "bad.org")
	require.NoError(t, os.WriteFile(in, []byte("** Work :Daily:\nCLOCK: [2024-02-30 Fr 09:00]--[2024-02-30 Fr 10:00] =>  1:00\n"), 0o644))
	out := filepath.Join(dir, "out.tsv")

	stderr, err := execute(t, in, out)
	require.NoError(t, err)
	require.Contains(t, stderr, "Skipping clock line")

	_, err = execute(t, "--strict", in, out)
	require.ErrorContains(t, err, "bad timestamp")
}

func TestConvertSplitEveryDay(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "long.org")
	require.NoError(t, os.WriteFile(in, []byte("** Trip :Reise:\nCLOCK: [2024-01-01 Mo 22:00]--[2024-01-03 Mi 02:00] => 28:00\n"), 0o644))
	out := filepath.Join(dir, "out.tsv")

	_, err := execute(t, "-q", "--split-every-day", in, out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "Activity\tActivityType\tStart\tEnd\n"+
		"Trip\tReise\t2024-01-01 22:00\t2024-01-01 23:59\n"+
		"Trip\tReise\t2024-01-02 00:00\t2024-01-02 23:59\n"+
		"Trip\tReise\t2024-01-03 00:00\t2024-01-03 02:00\n", string(data))
}

func TestConvertConfigFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "log.org")
	require.NoError(t, os.WriteFile(in, []byte("** Work :Daily:\nCLOCK: [2024-01-01 Mo 09:00]--[2024-01-01 Mo 10:00] =>  1:00\n"), 0o644))
	cfgPath := filepath.Join(dir, "vocab.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`noise_tags = ["Daily"]`), 0o644))
	out := filepath.Join(dir, "out.tsv")

	_, err := execute(t, "-q", "--config", cfgPath, in, out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Contains(t, string(data), "Work\t\t2024-01-01 09:00\t2024-01-01 10:00\n")
}
