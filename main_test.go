package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"dottap/pkg/game/config"
	"dottap/pkg/game/renderer"
)

func writeTimeline(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "positions.json"),
		[]byte(`{"positions":[{"image":"a.png","x":0,"y":0},{"image":"b.png","x":100,"y":100}]}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "timeline.yaml"), []byte(`
language: nl
trials:
  - image_positions: positions.json
    happy_sound: happy.mp3
    bad_sound: bad.mp3
    no_feedback_sound: tap.wav
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "script.txt"),
		[]byte("tap 50 50\ntap 150 150\ntap 150 150\nnext\nnext\n"), 0o644))
	return dir
}

func resetFlags(t *testing.T) {
	t.Helper()
	logger = zap.NewNop()
	t.Cleanup(func() {
		configPath, outPath, scriptPath, htmlPath, language = "", "", "", "", ""
		displayWidth = 600
		renderer.InitColors(true)
	})
}

func TestSimulateCmd_WritesResults(t *testing.T) {
	resetFlags(t)
	dir := writeTimeline(t)

	configPath = filepath.Join(dir, "timeline.yaml")
	scriptPath = filepath.Join(dir, "script.txt")
	htmlPath = filepath.Join(dir, "feedback.html")
	displayWidth = 600

	var stdout, stderr bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	require.NoError(t, runSimulate(cmd, nil))

	line := strings.TrimSpace(stdout.String())
	assert.JSONEq(t, `{"0":1,"1":2}`, gjson.Get(line, "image_clicks").Raw)
	assert.Equal(t, int64(5), gjson.Get(line, "tap_order.#").Int())

	// The timeline asks for Dutch.
	assert.Contains(t, stderr.String(), "Ronde 1 van 1")
	assert.FileExists(t, htmlPath)
}

func TestSimulateCmd_OutFileAndLanguageOverride(t *testing.T) {
	resetFlags(t)
	dir := writeTimeline(t)

	configPath = filepath.Join(dir, "timeline.yaml")
	scriptPath = filepath.Join(dir, "script.txt")
	outPath = filepath.Join(dir, "results.jsonl")
	language = "en"
	displayWidth = 600

	var stderr bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetErr(&stderr)

	require.NoError(t, runSimulate(cmd, nil))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.True(t, gjson.Valid(strings.TrimSpace(string(data))))
	assert.Contains(t, stderr.String(), "Trial 1 of 1")
}

func TestSimulateCmd_BadConfig(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	configPath = filepath.Join(dir, "timeline.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("trials: []\n"), 0o644))

	err := runSimulate(&cobra.Command{}, nil)
	require.ErrorIs(t, err, config.ErrInvalid)
}

func TestRunCmd_HelpListsBindings(t *testing.T) {
	assert.Contains(t, runCmd.Long, "Bindings:")
	assert.Contains(t, runCmd.Long, "Next      enter, next, numpad_enter")
	assert.Contains(t, runCmd.Long, "escape, q, quit")
	assert.Contains(t, runCmd.Long, "f12, snapshot")
}

func TestLangFlag_ListsLanguages(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("lang")
	require.NotNil(t, flag)
	assert.Contains(t, flag.Usage, "en, nl")
}

func TestSimulateCmd_UnknownLanguageFallsBack(t *testing.T) {
	resetFlags(t)
	dir := writeTimeline(t)

	configPath = filepath.Join(dir, "timeline.yaml")
	scriptPath = filepath.Join(dir, "script.txt")
	language = "xx"
	displayWidth = 600

	var stdout, stderr bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	require.NoError(t, runSimulate(cmd, nil))
	assert.Contains(t, stderr.String(), "Trial 1 of 1")
}

func TestInfoCmd(t *testing.T) {
	var out bytes.Buffer
	infoCmd.SetOut(&out)
	require.NoError(t, infoCmd.RunE(infoCmd, nil))
	assert.Contains(t, out.String(), "image_positions")
}
