package loader

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// decodeYAML decodes nested mappings as map[string]any, so YAML and TOML
// layers merge the same way.
func decodeYAML(source string, data []byte) (map[string]any, error) {
	var out map[string]any
	if err := yaml.Unmarshal(data, &out); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		var te *yaml.TypeError
		if !errors.As(err, &te) {
			pe.Line = yamlLine(err.Error())
		}
		return nil, pe
	}
	return out, nil
}

// yamlLine pulls the line number out of a yaml.v3 syntax error, which
// reads like "yaml: line 3: did not find expected key".
func yamlLine(msg string) int {
	var line int
	if _, err := fmt.Sscanf(msg, "yaml: line %d:", &line); err != nil {
		return 0
	}
	return line
}
