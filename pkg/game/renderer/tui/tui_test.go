package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gookit/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dottap/pkg/engine/assets"
	"dottap/pkg/game/config"
	"dottap/pkg/game/i18n"
	"dottap/pkg/game/renderer"
	"dottap/pkg/game/session"
	"dottap/pkg/game/trial"
)

func setup(t *testing.T) (string, *[]trial.Result, *[]string) {
	t.Helper()
	require.NoError(t, i18n.Init("en"))
	renderer.InitColors(false)
	t.Cleanup(func() { renderer.InitColors(true) })

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "p.json"),
		[]byte(`{"positions":[{"image":"a.png","x":0,"y":0},{"image":"b.png","x":100,"y":100}]}`), 0o644))

	var results []trial.Result
	var played []string
	return dir, &results, &played
}

func newSessions(dir string, n int, results *[]trial.Result, played *[]string) []*session.Session {
	cache := assets.NewAudioCache(assets.FuncSoundFactory(func(url string) { *played = append(*played, url) }))
	var out []*session.Session
	for i := 0; i < n; i++ {
		out = append(out, session.New(config.Trial{
			ImagePositions:  "p.json",
			HappySound:      "happy.mp3",
			BadSound:        "bad.mp3",
			NoFeedbackSound: "tap.wav",
			FeedbackImages:  config.DefaultFeedbackImages(),
		}, session.Deps{
			Fetcher: assets.NewFetcher(dir),
			Audio:   cache,
			Finish: func(r trial.Result) error {
				*results = append(*results, r)
				return nil
			},
		}))
	}
	return out
}

func TestRun_EndToEndScenario(t *testing.T) {
	dir, results, played := setup(t)

	// Canvas displayed at 600px starts 20px into the simulated window.
	script := strings.Join([]string{
		"# test phase",
		"next",
		"tap 50 50",
		"tap 150 150",
		"tap 150 150",
		"tap 5 5",
		"next",
		"next",
	}, "\n")

	var out bytes.Buffer
	r := New(Options{Script: strings.NewReader(script), Out: &out})
	require.NoError(t, r.Run(context.Background(), newSessions(dir, 1, results, played)))

	require.Len(t, *results, 1)
	data, err := json.Marshal((*results)[0])
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	delete(doc, "trial_id")
	got, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"image_clicks":{"0":1,"1":2},"tap_order":[0,{"index":0,"tap_count":1},1,{"index":1,"tap_count":1},{"index":1,"tap_count":2}]}`,
		string(got))

	assert.Equal(t, []string{"tap.wav", "tap.wav", "tap.wav", "bad.mp3"}, *played)

	text := color.ClearCode(out.String())
	assert.Contains(t, text, "Next is disabled until an image is tapped")
	assert.Contains(t, text, "Tapped image 1 (2 taps)")
	assert.Contains(t, text, "Some image was tapped more than once")
	assert.Contains(t, text, "Image 1: multiple_taps")
	assert.Contains(t, text, "Trial 1 finished")
}

func TestRun_HalfSizeDisplayScalesTaps(t *testing.T) {
	dir, results, played := setup(t)

	// At 300px each device pixel is two logical pixels: (20+65, 20+65) is (130, 130).
	r := New(Options{Script: strings.NewReader("tap 85 85\nnext\nnext\n"), DisplayWidth: 300})
	require.NoError(t, r.Run(context.Background(), newSessions(dir, 1, results, played)))

	require.Len(t, *results, 1)
	assert.Equal(t, map[int]int{1: 1}, (*results)[0].ImageClicks)
	assert.Equal(t, "happy.mp3", (*played)[len(*played)-1])
}

func TestRun_ScriptExhausted(t *testing.T) {
	dir, results, played := setup(t)

	r := New(Options{Script: strings.NewReader("tap 50 50\n")})
	err := r.Run(context.Background(), newSessions(dir, 2, results, played))
	require.ErrorIs(t, err, ErrScriptExhausted)
	assert.Contains(t, err.Error(), "trial 0")
	assert.Empty(t, *results)
}

func TestRun_QuitAborts(t *testing.T) {
	dir, results, played := setup(t)

	r := New(Options{Script: strings.NewReader("tap 50 50\nnext\nnext\nquit\n")})
	err := r.Run(context.Background(), newSessions(dir, 2, results, played))
	require.ErrorIs(t, err, renderer.ErrAborted)
	assert.Contains(t, err.Error(), "trial 1")
	assert.Len(t, *results, 1)
}

func TestRun_WritesSnapshotOnFeedback(t *testing.T) {
	dir, results, played := setup(t)
	snap := filepath.Join(t.TempDir(), "fb.html")

	r := New(Options{Script: strings.NewReader("tap 50 50\nnext\nnext\n"), SnapshotPath: snap})
	require.NoError(t, r.Run(context.Background(), newSessions(dir, 1, results, played)))

	data, err := os.ReadFile(snap)
	require.NoError(t, err)
	assert.Contains(t, string(data), `data-variant="single_tap"`)
}

func TestRun_LoadErrorSurfaced(t *testing.T) {
	_, results, played := setup(t)

	r := New(Options{Script: strings.NewReader("")})
	err := r.Run(context.Background(), newSessions(t.TempDir(), 1, results, played))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load positions")
}
