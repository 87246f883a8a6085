// Package output renders collected reports to the console and persists them as JSON.
package output

import (
	"fmt"
	"io"

	"github.com/temirov/projinfo/internal/types"
)

const (
	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "

	directoryLineFormat = "%s%s%s/\n"
	fileLineFormat      = "%s%s%s (%s)\n"
)

// WriteTree renders the entries of directory as a tree diagram, one line per entry.
func WriteTree(writer io.Writer, directory *types.Directory) {
	if directory == nil {
		return
	}
	renderDirectory(writer, directory, "")
}

func renderDirectory(writer io.Writer, directory *types.Directory, prefix string) {
	entries := directory.Entries()
	for index, entry := range entries {
		connector, childPrefix := treeEntryPrefix(prefix, index == len(entries)-1)
		switch node := entry.Node.(type) {
		case *types.Directory:
			fmt.Fprintf(writer, directoryLineFormat, prefix, connector, entry.Name)
			renderDirectory(writer, node, childPrefix)
		case types.File:
			fmt.Fprintf(writer, fileLineFormat, prefix, connector, entry.Name, node.Status.Marker())
		}
	}
}

// treeEntryPrefix returns the connector for an entry and the prefix for its children.
func treeEntryPrefix(prefix string, isLast bool) (string, string) {
	if isLast {
		return treeLastConnector, prefix + treeLastPadding
	}
	return treeBranchConnector, prefix + treeBranchPadding
}
