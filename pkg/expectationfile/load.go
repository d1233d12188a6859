package expectationfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tidwall/jsonc"
	"sigs.k8s.io/yaml"
)

var (
	// ErrNoMatch is returned when a pattern matches no file.
	ErrNoMatch = errors.New("no files match pattern")
	// ErrUnsupportedFormat is returned for files with an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// File is one expectation read from disk.
type File struct {
	// Path is the file the expectation was read from.
	Path string
	// Index is the position inside a top-level array, or -1 when the file
	// holds a single expectation.
	Index int
	// JSON is the expectation as a JSON object.
	JSON json.RawMessage
}

// Name identifies the expectation in messages: the path, followed by the
// array index when there is one.
func (f File) Name() string {
	if f.Index < 0 {
		return f.Path
	}
	return fmt.Sprintf("%s[%d]", f.Path, f.Index)
}

// Load expands patterns and reads every matching file. Paths matched by more
// than one pattern are read once. Results follow pattern order, then sorted
// path order, then array order.
func Load(patterns ...string) ([]File, error) {
	seen := make(map[string]bool)
	var out []File
	for _, pattern := range patterns {
		matches, err := expandGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("expanding glob pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoMatch, pattern)
		}
		sort.Strings(matches)

		for _, path := range matches {
			if seen[path] {
				continue
			}
			seen[path] = true

			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", path, err)
			}
			files, err := Parse(path, data)
			if err != nil {
				return nil, err
			}
			out = append(out, files...)
		}
	}
	return out, nil
}

// expandGlob uses doublestar when the pattern needs ** and filepath.Glob
// otherwise. Directories are dropped.
func expandGlob(pattern string) ([]string, error) {
	var matches []string
	var err error
	if strings.Contains(pattern, "**") {
		matches, err = doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	} else {
		matches, err = filepath.Glob(pattern)
	}
	if err != nil {
		return nil, err
	}

	files := matches[:0]
	for _, m := range matches {
		if info, statErr := os.Stat(m); statErr == nil && !info.IsDir() {
			files = append(files, m)
		}
	}
	return files, nil
}

// Parse converts the content of path to JSON according to its extension and
// splits a top-level array into its elements.
func Parse(path string, data []byte) ([]File, error) {
	raw, err := toJSON(path, data)
	if err != nil {
		return nil, err
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, fmt.Errorf("%s: file is empty", path)
	}

	if raw[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		files := make([]File, 0, len(items))
		for i, item := range items {
			if err := checkObject(item); err != nil {
				return nil, fmt.Errorf("%s[%d]: %w", path, i, err)
			}
			files = append(files, File{Path: path, Index: i, JSON: item})
		}
		return files, nil
	}

	if err := checkObject(raw); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return []File{{Path: path, Index: -1, JSON: json.RawMessage(raw)}}, nil
}

func toJSON(path string, data []byte) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return data, nil
	case ".jsonc":
		return jsonc.ToJSON(data), nil
	case ".yaml", ".yml":
		out, err := yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("%s: converting YAML: %w", path, err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

func checkObject(raw []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return fmt.Errorf("expectation must be a JSON object: %w", err)
	}
	if obj == nil {
		return errors.New("expectation must be a JSON object, got null")
	}
	return nil
}
