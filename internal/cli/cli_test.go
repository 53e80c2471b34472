package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/db47h/netsim/internal/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testdata = filepath.Join("..", "scenario", "testdata")

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "netsim", cmd.Use)
	assert.Contains(t, cmd.Long, "3-valued logic")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"run", "sched", "parts"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err, "Command %s should exist", name)
			require.NotNil(t, sub)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
	assert.Equal(t, "false", verbose.DefValue)

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)

	maxDelta := cmd.PersistentFlags().Lookup("max-delta")
	require.NotNil(t, maxDelta)
	assert.Equal(t, "1000", maxDelta.DefValue)

	for _, n := range []string{"workers", "vectorized"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(n), n)
	}
}

func TestInvalidFlags(t *testing.T) {
	_, _, err := execute(t, "--format", "xml", "parts")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")

	_, _, err = execute(t, "--max-delta", "-1", "parts")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid max-delta")
}

func TestRun_text(t *testing.T) {
	out, _, err := execute(t, "run", filepath.Join(testdata, "add4.yaml"))
	require.NoError(t, err)
	golden, err := os.ReadFile(filepath.Join(testdata, "golden", "add4.golden"))
	require.NoError(t, err)
	assert.Equal(t, string(golden), out)
}

func TestRun_failed(t *testing.T) {
	out, _, err := execute(t, "run", "--workers", "2",
		filepath.Join(testdata, "add4.yaml"),
		filepath.Join(testdata, "counter2.yaml"))
	require.Error(t, err)
	assert.Equal(t, "1 of 2 scenarios failed", err.Error())
	assert.Contains(t, out, "scenario add4\n")
	assert.Contains(t, out, "FAIL step=4 frame=11 out: want 10, got 11\n")
}

func TestRun_json(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "--vectorized", "run", filepath.Join(testdata, "add4.yaml"))
	require.NoError(t, err)
	var rs []scenario.Result
	require.NoError(t, json.Unmarshal([]byte(out), &rs))
	require.Len(t, rs, 1)
	assert.Equal(t, "add4", rs[0].Name)
	require.Len(t, rs[0].Trace, 3)
	assert.Empty(t, rs[0].Failures)
	last := rs[0].Trace[2]
	assert.Equal(t, uint64(3), last.Frame)
	assert.Equal(t, scenario.PortValue{Name: "out", Value: "x010"}, last.Ports[2])
}

func TestRun_verbose(t *testing.T) {
	_, errOut, err := execute(t, "-v", "run", filepath.Join(testdata, "add4.yaml"))
	require.NoError(t, err)
	assert.Contains(t, errOut, "running scenario")
	assert.Contains(t, errOut, "frame settled")
}

func TestRun_missingFile(t *testing.T) {
	_, _, err := execute(t, "run", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")

	_, _, err = execute(t, "run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg")
}

func TestSched(t *testing.T) {
	out, _, err := execute(t, "sched", filepath.Join(testdata, "add4.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "module add4: 20 cells")
	assert.Contains(t, out, "0: RippleAdder4:0/FullAdder:0/HalfAdder:0/XOR:0 ")

	out, _, err = execute(t, "--format", "json", "sched", filepath.Join(testdata, "add4.yaml"))
	require.NoError(t, err)
	var info ScheduleInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "add4", info.Module)
	assert.Equal(t, 20, info.Cells)
	n := 0
	for _, l := range info.Levels {
		n += len(l)
	}
	assert.Equal(t, 20, n)
}

func TestParts(t *testing.T) {
	out, _, err := execute(t, "parts", "-w", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "counter")
	assert.Contains(t, out, "rippleadder")

	out, _, err = execute(t, "--format", "json", "parts")
	require.NoError(t, err)
	var ps []PartInfo
	require.NoError(t, json.Unmarshal([]byte(out), &ps))
	for _, p := range ps {
		if p.Type == "and" {
			assert.Equal(t, []string{"a", "b"}, p.Inputs)
			assert.Equal(t, []string{"out"}, p.Outputs)
		}
	}
}
