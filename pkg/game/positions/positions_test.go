package positions

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dottap/pkg/engine/assets"
	"dottap/pkg/game/trial"
)

func TestParse_Valid(t *testing.T) {
	ps, err := Parse([]byte(`{"positions":[{"image":"a.png","x":0,"y":0},{"image":"b.png","x":100.5,"y":100}]}`))
	require.NoError(t, err)
	assert.Equal(t, []trial.Position{
		{Image: "a.png", X: 0, Y: 0},
		{Image: "b.png", X: 100.5, Y: 100},
	}, ps)
}

func TestParse_EmptyList(t *testing.T) {
	ps, err := Parse([]byte(`{"positions":[]}`))
	require.NoError(t, err)
	assert.Empty(t, ps)
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		msg  string
	}{
		{"not json", `{"positions":`, "invalid JSON"},
		{"missing positions", `{"images":[]}`, "not an array"},
		{"positions object", `{"positions":{}}`, "not an array"},
		{"entry not object", `{"positions":[1]}`, "entry 0"},
		{"missing image", `{"positions":[{"image":"a.png","x":0,"y":0},{"x":1,"y":2}]}`, "entry 1"},
		{"string coordinate", `{"positions":[{"image":"a.png","x":"0","y":0}]}`, "x and y"},
		{"missing y", `{"positions":[{"image":"a.png","x":0}]}`, "x and y"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.ErrorIs(t, err, ErrMalformed)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pos.json"),
		[]byte(`{"positions":[{"image":"a.png","x":10,"y":20}]}`), 0o644))

	ps, err := Load(context.Background(), assets.NewFetcher(dir), "pos.json")
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, 10.0, ps[0].X)
}

func TestLoad_MissingFileSurfaced(t *testing.T) {
	_, err := Load(context.Background(), assets.NewFetcher(t.TempDir()), "nope.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load positions")
}
