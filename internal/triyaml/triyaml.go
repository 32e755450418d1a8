// Package triyaml loads a triton.Config override file for the CLI host. The
// core library never reads files itself; this is purely a host concern.
package triyaml

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Overrides holds the subset of triton.Config fields a user may set from a
// config file. Zero-valued fields are left at the caller's defaults.
type Overrides struct {
	MsgGutter                float64 `yaml:"msgGutter"`
	FontSize                 float64 `yaml:"fontSize"`
	FontScaleFactor          float64 `yaml:"fontScaleFactor"`
	Padding                  float64 `yaml:"padding"`
	CornerRadius             float64 `yaml:"cornerRadius"`
	MaxMsgLabelLength        int     `yaml:"maxMsgLabelLength"`
	MaxParticipantHeadLength int     `yaml:"maxParticipantHeadLength"`
}

// Load reads and parses a YAML overrides file from path.
func Load(path string) (Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Overrides{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	var o Overrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return Overrides{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return o, nil
}
