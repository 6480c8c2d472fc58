package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Segments is a path written either as a single string or as a list of
// segments to be joined.
type Segments []string

// UnmarshalYAML accepts a scalar or a sequence of scalars.
func (s *Segments) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.ShortTag() == "!!null" {
			*s = nil
			return nil
		}
		var one string
		if err := value.Decode(&one); err != nil {
			return err
		}
		*s = Segments{one}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return err
		}
		*s = list
		return nil
	default:
		return fmt.Errorf("line %d: path must be a string or a list of strings", value.Line)
	}
}

// Join joins the segments without expanding anything.
func (s Segments) Join() string {
	return filepath.Join(s...)
}

// Expand joins the segments after expanding "~" and environment variables.
// A leading drive segment such as "C:" becomes "C:/".
func (s Segments) Expand() (string, error) {
	parts := make([]string, 0, len(s))
	for i, seg := range s {
		seg = os.ExpandEnv(seg)
		if i == 0 {
			var err error
			if seg, err = expandHome(seg); err != nil {
				return "", err
			}
			if len(seg) == 2 && seg[1] == ':' {
				seg += "/"
			}
		}
		parts = append(parts, seg)
	}
	return filepath.Join(parts...), nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expanding %q: %w", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
