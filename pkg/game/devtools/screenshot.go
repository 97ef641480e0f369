// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dottap/pkg/engine/assets"
	"dottap/pkg/engine/surface"
	"dottap/pkg/game/session"
	"dottap/pkg/game/trial"
)

// FeedbackHTML renders the feedback screen of s as a standalone HTML page.
// Tapped positions become absolutely positioned overlays sized by scale;
// untapped positions are drawn inside the canvas at the same placement.
func FeedbackHTML(s *session.Session, scale surface.Scale) string {
	side := float64(surface.DefaultLogicalSize) * scale.X
	cell := trial.CellSize * scale.X

	var b strings.Builder

	b.WriteString(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>dottap - Feedback</title>
    <style>
        body {
            background-color: #ffffff;
            color: #222;
            font-family: sans-serif;
            padding: 20px;
        }
        .header { font-size: 18px; margin-bottom: 10px; }
        .outcome-happy { color: #1b8a2e; }
        .outcome-bad { color: #b36b00; }
        .stage { position: relative; }
        .canvas {
            position: absolute;
            left: 0;
            top: 0;
            border: 1px solid #ddd;
        }
        .canvas-image, .overlay { position: absolute; }
        .overlay { z-index: 10; }
    </style>
</head>
<body>
`)

	outcome := s.Outcome()
	fmt.Fprintf(&b, `    <div class="header">Trial %s: <span class="outcome-%s">%s</span></div>`+"\n",
		html.EscapeString(s.ID()), outcome, outcome)

	fmt.Fprintf(&b, `    <div class="stage" style="width:%.0fpx; height:%.0fpx">`+"\n", side, side)
	fmt.Fprintf(&b, `        <div class="canvas" style="width:%.0fpx; height:%.0fpx">`+"\n", side, side)
	for _, o := range s.Overlays() {
		if o.Tapped {
			continue
		}
		writeImage(&b, "canvas-image", s.Fetcher(), o, scale, cell)
	}
	b.WriteString(`        </div>` + "\n")

	for _, o := range s.Overlays() {
		if !o.Tapped {
			continue
		}
		writeImage(&b, "overlay", s.Fetcher(), o, scale, cell)
	}
	b.WriteString(`    </div>` + "\n")

	b.WriteString(`</body>
</html>
`)
	return b.String()
}

func writeImage(b *strings.Builder, class string, f *assets.Fetcher, o trial.Overlay, scale surface.Scale, cell float64) {
	fmt.Fprintf(b, `            <img class="%s" data-index="%d" data-variant="%s" src="%s" style="left:%.0fpx; top:%.0fpx; width:%.0fpx; height:%.0fpx">`+"\n",
		class, o.Index, o.Variant, html.EscapeString(imageSrc(f, o.Image)),
		o.Position.X*scale.X, o.Position.Y*scale.Y, cell, cell)
}

// imageSrc makes local references usable from wherever the page is opened.
func imageSrc(f *assets.Fetcher, ref string) string {
	if assets.IsRemote(ref) || f == nil {
		return ref
	}
	path := f.Path(ref)
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return "file://" + filepath.ToSlash(path)
}

// SaveFeedbackHTML writes the feedback page to path, or to a timestamped
// file in the working directory when path is empty. It returns the name
// written.
func SaveFeedbackHTML(path string, s *session.Session, scale surface.Scale, now time.Time) (string, error) {
	if path == "" {
		path = fmt.Sprintf("feedback-%s.html", now.Format("20060102-150405"))
	}
	if err := os.WriteFile(path, []byte(FeedbackHTML(s, scale)), 0o644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// IndexedPath inserts "-n" before the extension of path, so each trial of a
// timeline gets its own snapshot.
func IndexedPath(path string, n int) string {
	if path == "" {
		return ""
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(path, ext), n, ext)
}
