package types

import (
	"bytes"
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// CodeEntry holds the full text of one core source file.
type CodeEntry struct {
	FilePath string `json:"file_path"`
	Content  string `json:"content"`
}

// Report is the result of scanning one project root.
type Report struct {
	DirectoryTree *Directory    `json:"directory_tree"`
	CoreCodeInfo  []CodeEntry   `json:"core_code_info"`
	Dependencies  *Dependencies `json:"dependencies"`
}

// NewReport returns an empty report ready to be filled by a collector.
func NewReport() *Report {
	return &Report{
		DirectoryTree: NewDirectory(),
		CoreCodeInfo:  []CodeEntry{},
		Dependencies:  NewDependencies(),
	}
}

// AddCodeEntry appends the content of a core source file.
func (report *Report) AddCodeEntry(filePath string, content string) {
	report.CoreCodeInfo = append(report.CoreCodeInfo, CodeEntry{FilePath: filePath, Content: content})
}

// Dependencies maps manifest paths to their content, keeping insertion order.
type Dependencies struct {
	entries *orderedmap.OrderedMap[string, string]
}

// NewDependencies returns an empty dependency mapping.
func NewDependencies() *Dependencies {
	return &Dependencies{entries: orderedmap.New[string, string]()}
}

// Set stores the manifest content under path. Replacing an existing path keeps its position.
func (dependencies *Dependencies) Set(path string, content string) {
	if dependencies.entries == nil {
		dependencies.entries = orderedmap.New[string, string]()
	}
	dependencies.entries.Set(path, content)
}

// Get returns the manifest content stored under path.
func (dependencies *Dependencies) Get(path string) (string, bool) {
	if dependencies.entries == nil {
		return "", false
	}
	return dependencies.entries.Get(path)
}

// Len returns the number of manifests.
func (dependencies *Dependencies) Len() int {
	if dependencies.entries == nil {
		return 0
	}
	return dependencies.entries.Len()
}

// Paths returns the manifest paths in insertion order.
func (dependencies *Dependencies) Paths() []string {
	paths := make([]string, 0, dependencies.Len())
	if dependencies.entries == nil {
		return paths
	}
	for pair := dependencies.entries.Oldest(); pair != nil; pair = pair.Next() {
		paths = append(paths, pair.Key)
	}
	return paths
}

// MarshalJSON encodes the mapping as an object in insertion order, leaving HTML characters unescaped.
func (dependencies *Dependencies) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	buffer.WriteByte('{')
	if dependencies.entries != nil {
		for pair := dependencies.entries.Oldest(); pair != nil; pair = pair.Next() {
			if buffer.Len() > 1 {
				buffer.WriteByte(',')
			}
			encodedPath, pathError := encodeString(pair.Key)
			if pathError != nil {
				return nil, pathError
			}
			encodedContent, contentError := encodeString(pair.Value)
			if contentError != nil {
				return nil, contentError
			}
			buffer.Write(encodedPath)
			buffer.WriteByte(':')
			buffer.Write(encodedContent)
		}
	}
	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}

// UnmarshalJSON decodes an object of strings, keeping member order.
func (dependencies *Dependencies) UnmarshalJSON(data []byte) error {
	decoded := orderedmap.New[string, string]()
	if err := decoded.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("decoding dependencies: %w", err)
	}
	dependencies.entries = decoded
	return nil
}

// encodeString encodes value as a JSON string without HTML escaping.
func encodeString(value string) ([]byte, error) {
	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(value); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buffer.Bytes(), "\n"), nil
}

func expectDelimiter(decoder *json.Decoder, expected json.Delim) error {
	token, tokenError := decoder.Token()
	if tokenError != nil {
		return tokenError
	}
	delimiter, isDelimiter := token.(json.Delim)
	if !isDelimiter || delimiter != expected {
		return fmt.Errorf("expected %v, got %v", expected, token)
	}
	return nil
}

func decodeKey(decoder *json.Decoder) (string, error) {
	token, tokenError := decoder.Token()
	if tokenError != nil {
		return "", tokenError
	}
	key, isString := token.(string)
	if !isString {
		return "", fmt.Errorf("expected object key, got %v", token)
	}
	return key, nil
}
