// Package dataset provides the records the inserter sends: a built-in list
// of programming languages, or a list read from a YAML/JSON file.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/trowebseed/internal/client/models"
	"github.com/dmitrijs2005/trowebseed/internal/common"
)

// Default returns a fresh copy of the built-in programming languages.
func Default() []models.Record {
	return []models.Record{
		{
			Title:       "GoLang",
			Website:     "go.dev",
			Designers:   []string{"Robert Griesemer", "Rob Pike", "Ken Thompson"},
			Description: "Go is a statically typed, compiled programming language designed at Google by Robert Griesemer, Rob Pike, and Ken Thompson. It is syntactically similar to C, but with memory safety, garbage collection, structural typing, and CSP-style concurrency.",
		},
		{
			Title:   "JavaScript",
			Website: "javascript.com",
			// Others have also contributed to the ECMAScript standard.
			Designers:   []string{"Brendan Eich of Netscape initially"},
			Description: "JavaScript, often abbreviated JS, is a programming language that is one of the core technologies of the World Wide Web, alongside HTML and CSS. Over 97% of websites use JavaScript on the client side for web page behavior, often incorporating third-party libraries.",
		},
		{
			Title:       "Python",
			Website:     "python.org",
			Designers:   []string{"Guido van Rossum"},
			Description: "Python is a high-level, interpreted, general-purpose programming language. Its design philosophy emphasizes code readability with the use of significant indentation. Python is dynamically-typed and garbage-collected.",
		},
	}
}

// Load reads a list of records from path. The format follows the
// extension: .yaml/.yml or .json.
func Load(path string) ([]models.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrLocalIO, err)
	}

	var records []models.Record

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &records)
	case ".json":
		err = json.Unmarshal(data, &records)
	default:
		return nil, fmt.Errorf("unsupported records file extension %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if records == nil {
		records = []models.Record{}
	}
	return records, nil
}

// Resolve returns the records from path, or Default when path is empty.
func Resolve(path string) ([]models.Record, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}
