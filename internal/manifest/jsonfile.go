package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/tidwall/jsonc"
)

// ErrNoVersionField is returned when a JSON file has no top-level string
// "version" member.
var ErrNoVersionField = errors.New("no top-level version field")

// UpdateVersionField replaces the value of the top-level "version" member of
// the JSON file at path. Everything else in the file is kept byte for byte,
// including comments, indentation and key order.
func UpdateVersionField(path, version string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &ManifestNotFoundError{Path: path, Err: err}
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	updated, err := ReplaceVersion(data, version)
	if err != nil {
		return &ManifestParseError{Path: path, Err: err}
	}

	if err := os.WriteFile(path, updated, info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ReplaceVersion returns data with the top-level "version" string set to
// version.
func ReplaceVersion(data []byte, version string) ([]byte, error) {
	start, end, err := versionSpan(jsonc.ToJSON(data))
	if err != nil {
		return nil, err
	}

	quoted, err := json.Marshal(version)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(data)-(end-start)+len(quoted))
	out = append(out, data[:start]...)
	out = append(out, quoted...)
	out = append(out, data[end:]...)
	return out, nil
}

// versionSpan locates the quoted value of the top-level "version" member.
// The comment stripped input keeps the offsets of the original bytes.
func versionSpan(data []byte) (int, int, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return 0, 0, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return 0, 0, fmt.Errorf("top-level value must be an object")
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return 0, 0, err
		}
		if key, _ := keyTok.(string); key != "version" {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return 0, 0, err
			}
			continue
		}

		// the value starts after the separator following the key
		start := int(dec.InputOffset())
		for start < len(data) && (data[start] == ':' || isSpace(data[start])) {
			start++
		}

		valTok, err := dec.Token()
		if err != nil {
			return 0, 0, err
		}
		if _, ok := valTok.(string); !ok {
			return 0, 0, fmt.Errorf("version must be a string")
		}
		end := int(dec.InputOffset())
		if start >= end || data[start] != '"' {
			return 0, 0, fmt.Errorf("malformed version value")
		}
		return start, end, nil
	}
	return 0, 0, ErrNoVersionField
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
