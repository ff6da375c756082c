package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testConfig = `
board_radius: 2
seed: 3
log_level: disabled
agents:
  - name: shallow
    kind: feature
    depth: 1
    weights: {window: 2, triad: 5, slot: 1, double: 1}
  - name: random
    kind: random
play:
  red: shallow
  green: random
tournament:
  games: 2
  goroutines: 2
  output_dir: ""
  matchups:
    - [shallow, random]
`

func execute(t *testing.T, args ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0644))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs(append([]string{"--config", path}, args...))
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestPlayCommand(t *testing.T) {
	out := execute(t, "play", "--quiet")
	require.Regexp(t, `(red wins|green wins|draw).* after \d+ moves`, out)

	out = execute(t, "play", "--red", "random")
	require.Contains(t, out, "1. red plays")
}

func TestTournamentCommand(t *testing.T) {
	out := execute(t, "tournament", "--games", "4")
	require.Contains(t, out, "shallow")
	require.Contains(t, out, "random")
}

func TestScoresCommand(t *testing.T) {
	out := execute(t, "scores", "--agent", "shallow", "--", "0,0", "1,-1")
	require.Contains(t, out, "(0,1)")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0644))
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", path, "scores", "--agent", "random"})
	require.Error(t, cmd.Execute())
}
