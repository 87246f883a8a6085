package output

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/temirov/projinfo/internal/types"
)

const (
	jsonIndentPrefix = ""
	jsonIndentSpacer = "    "

	errorEncodeReportFormat = "encoding report: %w"
	errorCreateFileFormat   = "creating %s: %w"
	errorWriteFileFormat    = "writing %s: %w"
	errorCloseFileFormat    = "closing %s: %w"
)

// WriteJSON encodes the report with four-space indentation, leaving HTML and non-ASCII characters unescaped.
func WriteJSON(writer io.Writer, report *types.Report) error {
	encoder := json.NewEncoder(writer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent(jsonIndentPrefix, jsonIndentSpacer)
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf(errorEncodeReportFormat, err)
	}
	return nil
}

// ReadJSON decodes a report previously written by WriteJSON.
func ReadJSON(reader io.Reader) (*types.Report, error) {
	report := types.NewReport()
	if err := json.NewDecoder(reader).Decode(report); err != nil {
		return nil, fmt.Errorf("decoding report: %w", err)
	}
	return report, nil
}

// SaveJSON writes the report to filePath, creating or truncating the file.
//
// #nosec G304
func SaveJSON(filePath string, report *types.Report) (err error) {
	fileHandle, createError := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if createError != nil {
		return fmt.Errorf(errorCreateFileFormat, filePath, createError)
	}
	defer func() {
		if closeError := fileHandle.Close(); closeError != nil && err == nil {
			err = fmt.Errorf(errorCloseFileFormat, filePath, closeError)
		}
	}()

	bufferedWriter := bufio.NewWriter(fileHandle)
	if err := WriteJSON(bufferedWriter, report); err != nil {
		return err
	}
	if err := bufferedWriter.Flush(); err != nil {
		return fmt.Errorf(errorWriteFileFormat, filePath, err)
	}
	return nil
}
