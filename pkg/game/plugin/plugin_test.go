package plugin

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/goleak"

	"dottap/pkg/engine/assets"
	"dottap/pkg/game/config"
	"dottap/pkg/game/i18n"
	"dottap/pkg/game/renderer/tui"
	"dottap/pkg/game/trial"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func timeline(t *testing.T, trials int) *config.Timeline {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "p.json"),
		[]byte(`{"positions":[{"image":"a.png","x":0,"y":0},{"image":"b.png","x":100,"y":100}]}`), 0o644))

	tl := config.DefaultTimeline()
	tl.BaseDir = dir
	for i := 0; i < trials; i++ {
		tl.Trials = append(tl.Trials, config.Trial{
			ImagePositions:  "p.json",
			HappySound:      "happy.mp3",
			BadSound:        "bad.mp3",
			NoFeedbackSound: "tap.wav",
		})
	}
	return tl
}

func TestInitialize_ValidatesAndFillsDefaults(t *testing.T) {
	p := New(Deps{})

	_, err := p.Initialize(config.Trial{ImagePositions: "p.json", NoFeedbackSound: "t.wav"}, nil)
	require.ErrorIs(t, err, config.ErrInvalid, "outcome sounds are required")

	s, err := p.Initialize(config.Trial{
		ImagePositions:  "p.json",
		HappySound:      "h.mp3",
		BadSound:        "b.mp3",
		NoFeedbackSound: "t.wav",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultFeedbackImages(), s.Config().FeedbackImages)
	assert.NotEmpty(t, s.ID())
}

func TestRun_JSONLinesEndToEnd(t *testing.T) {
	require.NoError(t, i18n.Init("en"))
	tl := timeline(t, 2)

	script := "tap 50 50\ntap 150 150\ntap 150 150\nnext\nnext\n" +
		"next\ntap 50 50\nnext\nnext\n"

	var out bytes.Buffer
	host := NewJSONLinesHost(&out)
	p := New(Deps{
		Fetcher:  assets.NewFetcher(tl.BaseDir),
		Renderer: tui.New(tui.Options{Script: strings.NewReader(script)}),
	})
	require.NoError(t, p.Run(context.Background(), tl, host))
	assert.Equal(t, 2, host.Count())

	var lines []string
	sc := bufio.NewScanner(&out)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	require.Len(t, lines, 2)

	first := lines[0]
	assert.JSONEq(t, `{"0":1,"1":2}`, gjson.Get(first, "image_clicks").Raw)
	assert.JSONEq(t, `[0,{"index":0,"tap_count":1},1,{"index":1,"tap_count":1},{"index":1,"tap_count":2}]`,
		gjson.Get(first, "tap_order").Raw)

	second := lines[1]
	assert.JSONEq(t, `{"0":1}`, gjson.Get(second, "image_clicks").Raw)
	assert.NotEqual(t, gjson.Get(first, "trial_id").String(), gjson.Get(second, "trial_id").String())
}

func TestRun_HostErrorStopsTimeline(t *testing.T) {
	tl := timeline(t, 2)
	boom := errors.New("disk full")

	calls := 0
	host := HostFunc(func(trial.Result) error {
		calls++
		return boom
	})
	p := New(Deps{
		Fetcher:  assets.NewFetcher(tl.BaseDir),
		Renderer: tui.New(tui.Options{Script: strings.NewReader("tap 50 50\nnext\nnext\ntap 50 50\nnext\nnext\n")}),
	})

	err := p.Run(context.Background(), tl, host)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestRun_InvalidTrial(t *testing.T) {
	tl := timeline(t, 1)
	tl.Trials[0].NoFeedbackSound = ""

	p := New(Deps{Renderer: tui.New(tui.Options{})})
	err := p.Run(context.Background(), tl, nil)
	require.ErrorIs(t, err, config.ErrInvalid)
	assert.Contains(t, err.Error(), "trial 0")
}

func TestRun_NoRenderer(t *testing.T) {
	assert.Error(t, New(Deps{}).Run(context.Background(), timeline(t, 1), nil))
}

func TestWriteInfo(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteInfo(&buf))

	out := buf.String()
	assert.Contains(t, out, "name: image-feedback-task")
	assert.Contains(t, out, "single_tap: images/inflated_balloon.png")
	assert.Equal(t, 5, strings.Count(out, "pretty_name:"))
	assert.Equal(t, 4, strings.Count(out, "required: true"))
}
