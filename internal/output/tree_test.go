package output_test

import (
	"bytes"
	"testing"

	"github.com/temirov/projinfo/internal/output"
	"github.com/temirov/projinfo/internal/types"
)

func TestWriteTreeSiblings(t *testing.T) {
	root := types.NewDirectory()
	root.Subdirectory("a").Set("x.py", types.File{Status: types.FileStatusNormal})
	root.Set("b.py", types.File{Status: types.FileStatusNormal})

	var buffer bytes.Buffer
	output.WriteTree(&buffer, root)

	expected := "├── a/\n" +
		"│   └── x.py (file)\n" +
		"└── b.py (file)\n"
	if buffer.String() != expected {
		t.Fatalf("unexpected tree\nexpected:\n%s\nactual:\n%s", expected, buffer.String())
	}
}

func TestWriteTreeNestedPrefixes(t *testing.T) {
	root := types.NewDirectory()
	root.Set("Cargo.toml", types.File{Status: types.FileStatusIgnored})
	source := root.Subdirectory("src")
	source.Set("main.rs", types.File{Status: types.FileStatusNormal})
	source.Subdirectory("bin").Set("tool.rs", types.File{Status: types.FileStatusNormal})
	source.Subdirectory("empty")
	root.Subdirectory("docs").Set("guide.md", types.File{Status: types.FileStatusIgnored})

	var buffer bytes.Buffer
	output.WriteTree(&buffer, root)

	expected := "├── Cargo.toml (ignored_file)\n" +
		"├── src/\n" +
		"│   ├── main.rs (file)\n" +
		"│   ├── bin/\n" +
		"│   │   └── tool.rs (file)\n" +
		"│   └── empty/\n" +
		"└── docs/\n" +
		"    └── guide.md (ignored_file)\n"
	if buffer.String() != expected {
		t.Fatalf("unexpected tree\nexpected:\n%s\nactual:\n%s", expected, buffer.String())
	}
}

func TestWriteTreeEmptyAndNil(t *testing.T) {
	var buffer bytes.Buffer
	output.WriteTree(&buffer, types.NewDirectory())
	output.WriteTree(&buffer, nil)
	if buffer.Len() != 0 {
		t.Fatalf("expected no output, got %q", buffer.String())
	}
}
