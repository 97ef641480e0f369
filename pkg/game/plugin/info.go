package plugin

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"dottap/pkg/game/config"
)

// Name identifies the plugin in result streams and help output.
const Name = "image-feedback-task"

// ParamType is the kind of value a parameter accepts.
type ParamType string

const (
	ParamString ParamType = "string"
	ParamAudio  ParamType = "audio"
	ParamObject ParamType = "object"
)

// Param describes one recognized trial option.
type Param struct {
	Name        string    `yaml:"name"`
	PrettyName  string    `yaml:"pretty_name"`
	Type        ParamType `yaml:"type"`
	Default     any       `yaml:"default,omitempty"`
	Required    bool      `yaml:"required"`
	Description string    `yaml:"description"`
}

// PluginInfo is the plugin's name and parameter table.
type PluginInfo struct {
	Name       string  `yaml:"name"`
	Parameters []Param `yaml:"parameters"`
}

// Info describes the options a trial accepts.
var Info = PluginInfo{
	Name: Name,
	Parameters: []Param{
		{
			Name:        "image_positions",
			PrettyName:  "Image Positions",
			Type:        ParamString,
			Required:    true,
			Description: "Path or URL of the JSON file containing image positions and image references.",
		},
		{
			Name:        "happy_sound",
			PrettyName:  "Happy sound",
			Type:        ParamAudio,
			Required:    true,
			Description: "Sound played on entering feedback when no image was tapped more than once.",
		},
		{
			Name:        "bad_sound",
			PrettyName:  "Bad sound",
			Type:        ParamAudio,
			Required:    true,
			Description: "Sound played on entering feedback when some image was tapped more than once.",
		},
		{
			Name:        "no_feedback_sound",
			PrettyName:  "No Feedback sound",
			Type:        ParamAudio,
			Required:    true,
			Description: "Sound played whenever an image is tapped in the test phase.",
		},
		{
			Name:        "feedback_images",
			PrettyName:  "Feedback Images",
			Type:        ParamObject,
			Default:     config.DefaultFeedbackImages(),
			Description: "Feedback images for single taps, multiple taps and untapped positions.",
		},
	},
}

// WriteInfo writes the parameter table as YAML.
func WriteInfo(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Info); err != nil {
		return fmt.Errorf("write info: %w", err)
	}
	return enc.Close()
}
