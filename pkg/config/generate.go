package config

import (
	"strings"

	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/glint/pkg/errors"
)

// GenerateConfigContent renders a starter config file: the current effective
// configuration serialized to TOML with every value commented out, so the
// user uncomments only what they want to change.
func GenerateConfigContent(cfg *Config) (string, error) {
	data, err := gotoml.Marshal(cfg)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "serializing configuration")
	}

	header := "" +
		"# glint configuration.\n" +
		"# Uncomment a line to override the built-in default.\n\n"
	return header + commentOutValues(string(data)), nil
}

// commentOutValues comments every assignment line, leaving blank lines,
// existing comments and [section] headers as they are.
func commentOutValues(content string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "", strings.HasPrefix(trimmed, "#"):
			result = append(result, line)
		case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
			result = append(result, line)
		default:
			result = append(result, "# "+line)
		}
	}
	return strings.Join(result, "\n")
}
