package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/temirov/projinfo/internal/types"
)

const (
	structureHeader  = "Project Directory Structure:"
	codeHeader       = "Core Code Information:"
	dependencyHeader = "Dependency Information:"

	codePathFormat       = "File Path: %s\n"
	codeContentStart     = "--- Code Content Start ---"
	codeContentEnd       = "--- Code Content End ---"
	noCodeMessage        = "No core code files found (e.g., .rs, .py, .js, etc.)."
	dependencyPathFormat = "Dependency File: %s\n"
	dependencyStart      = "--- Dependency Content Start ---"
	dependencyEnd        = "--- Dependency Content End ---"
	noDependencyMessage  = "No dependency files found (e.g., Cargo.toml, Cargo.lock)."

	separatorWidth = 50
	separatorRune  = "="
)

var sectionSeparator = "\n" + strings.Repeat(separatorRune, separatorWidth) + "\n"

// WriteReport prints the tree, captured source files, and dependency manifests of report.
// rootName labels the top of the tree.
func WriteReport(writer io.Writer, rootName string, report *types.Report) {
	fmt.Fprintln(writer, structureHeader)
	fmt.Fprintf(writer, "%s/\n", rootName)
	WriteTree(writer, report.DirectoryTree)
	fmt.Fprintln(writer, sectionSeparator)

	fmt.Fprintln(writer, codeHeader)
	if len(report.CoreCodeInfo) == 0 {
		fmt.Fprintln(writer, noCodeMessage)
	}
	for _, codeEntry := range report.CoreCodeInfo {
		fmt.Fprintf(writer, codePathFormat, codeEntry.FilePath)
		fmt.Fprintln(writer, codeContentStart)
		fmt.Fprintln(writer, codeEntry.Content)
		fmt.Fprintln(writer, codeContentEnd)
		fmt.Fprintln(writer)
	}
	fmt.Fprintln(writer, sectionSeparator)

	fmt.Fprintln(writer, dependencyHeader)
	if report.Dependencies.Len() == 0 {
		fmt.Fprintln(writer, noDependencyMessage)
	}
	for _, dependencyPath := range report.Dependencies.Paths() {
		content, _ := report.Dependencies.Get(dependencyPath)
		fmt.Fprintf(writer, dependencyPathFormat, dependencyPath)
		fmt.Fprintln(writer, dependencyStart)
		fmt.Fprintln(writer, content)
		fmt.Fprintln(writer, dependencyEnd)
		fmt.Fprintln(writer)
	}
	fmt.Fprintln(writer, sectionSeparator)
}
