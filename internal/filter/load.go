package filter

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/jsonc"
)

// LoadPatterns reads glob patterns from a JSONC file holding a single array
// of strings. Comments and trailing commas are allowed; blank entries are
// skipped. A file that yields no patterns at all is an error, since silently
// matching nothing would be indistinguishable from a typoed file path.
func LoadPatterns(path string) ([]string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is from user-supplied config
	if err != nil {
		return nil, fmt.Errorf("reading patterns file %q: %w", path, err)
	}

	var entries []string
	if err := json.Unmarshal(jsonc.ToJSONInPlace(data), &entries); err != nil {
		return nil, fmt.Errorf("parsing patterns file %q: %w", path, err)
	}

	patterns := entries[:0]

	for _, entry := range entries {
		if trimmed := strings.TrimSpace(entry); trimmed != "" {
			patterns = append(patterns, trimmed)
		}
	}

	if len(patterns) == 0 {
		return nil, fmt.Errorf("patterns file %q contains no patterns", path)
	}

	return patterns, nil
}
