// Package config loads the YAML timeline describing a run's trials.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"dottap/pkg/game/trial"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Default feedback images.
const (
	DefaultSingleTapImage    = "images/inflated_balloon.png"
	DefaultMultipleTapsImage = "images/popped_balloon.png"
	DefaultNoTapImage        = "images/deflated_balloon.png"
)

// Timeline is the whole configuration file.
type Timeline struct {
	Language string  `yaml:"language"`
	Window   Window  `yaml:"window"`
	Trials   []Trial `yaml:"trials"`

	// BaseDir is where relative asset paths resolve. Set by Load.
	BaseDir string `yaml:"-"`
}

// Window sizes the Ebiten window.
type Window struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Trial holds the options of one trial.
type Trial struct {
	ImagePositions  string         `yaml:"image_positions"`
	HappySound      string         `yaml:"happy_sound"`
	BadSound        string         `yaml:"bad_sound"`
	NoFeedbackSound string         `yaml:"no_feedback_sound"`
	FeedbackImages  FeedbackImages `yaml:"feedback_images"`
}

// FeedbackImages mirrors trial.FeedbackImages with YAML keys.
type FeedbackImages struct {
	SingleTap    string `yaml:"single_tap"`
	MultipleTaps string `yaml:"multiple_taps"`
	NoTap        string `yaml:"no_tap"`
}

// Images converts to the trial package's type.
func (f FeedbackImages) Images() trial.FeedbackImages {
	return trial.FeedbackImages{
		SingleTap:    f.SingleTap,
		MultipleTaps: f.MultipleTaps,
		NoTap:        f.NoTap,
	}
}

// DefaultFeedbackImages returns the balloon images.
func DefaultFeedbackImages() FeedbackImages {
	return FeedbackImages{
		SingleTap:    DefaultSingleTapImage,
		MultipleTaps: DefaultMultipleTapsImage,
		NoTap:        DefaultNoTapImage,
	}
}

// DefaultTimeline returns a timeline with window defaults and no trials.
func DefaultTimeline() *Timeline {
	return &Timeline{
		Language: "en",
		Window: Window{
			Title:  "dottap",
			Width:  640,
			Height: 760,
		},
		BaseDir: ".",
	}
}

// Load reads and validates a timeline file.
func Load(path string) (*Timeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	t.BaseDir = filepath.Dir(path)
	return t, nil
}

// Parse decodes a timeline over the defaults, fills per-trial defaults and
// validates it.
func Parse(data []byte) (*Timeline, error) {
	t := DefaultTimeline()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(t); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %v: %w", err, ErrInvalid)
	}

	t.applyDefaults()
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// applyDefaults fills missing feedback images. Sounds have no defaults.
func (t *Timeline) applyDefaults() {
	for i := range t.Trials {
		t.Trials[i] = t.Trials[i].WithDefaults()
	}
}

// WithDefaults returns tr with any missing feedback image set to its default.
func (tr Trial) WithDefaults() Trial {
	defaults := DefaultFeedbackImages()
	fi := &tr.FeedbackImages
	if fi.SingleTap == "" {
		fi.SingleTap = defaults.SingleTap
	}
	if fi.MultipleTaps == "" {
		fi.MultipleTaps = defaults.MultipleTaps
	}
	if fi.NoTap == "" {
		fi.NoTap = defaults.NoTap
	}
	return tr
}

// Validate checks the timeline has trials and each trial its required options.
func (t *Timeline) Validate() error {
	if len(t.Trials) == 0 {
		return fmt.Errorf("no trials: %w", ErrInvalid)
	}
	if t.Window.Width <= 0 || t.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d: %w", t.Window.Width, t.Window.Height, ErrInvalid)
	}
	for i, tr := range t.Trials {
		if err := tr.Validate(); err != nil {
			return fmt.Errorf("trial %d: %w", i, err)
		}
	}
	return nil
}

// Validate checks a single trial's required options.
func (tr Trial) Validate() error {
	if tr.ImagePositions == "" {
		return fmt.Errorf("image_positions is required: %w", ErrInvalid)
	}
	if tr.HappySound == "" {
		return fmt.Errorf("happy_sound is required: %w", ErrInvalid)
	}
	if tr.BadSound == "" {
		return fmt.Errorf("bad_sound is required: %w", ErrInvalid)
	}
	if tr.NoFeedbackSound == "" {
		return fmt.Errorf("no_feedback_sound is required: %w", ErrInvalid)
	}
	return nil
}
