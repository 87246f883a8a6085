package tokenizer

import (
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/temirov/projinfo/internal/types"
)

// Estimate holds token counts for the captured sections of a report.
type Estimate struct {
	Model            string
	CodeTokens       int
	DependencyTokens int
}

// Total returns the sum of all sections.
func (estimate Estimate) Total() int {
	return estimate.CodeTokens + estimate.DependencyTokens
}

// countedText is one captured text and the path it was read from.
type countedText struct {
	path    string
	content string
}

// CountReport counts the tokens of every captured source file and dependency manifest.
// The two sections are counted concurrently; the counter must be safe for concurrent use.
func CountReport(counter Counter, report *types.Report) (Estimate, error) {
	if counter == nil {
		return Estimate{}, errors.New("nil tokenizer counter")
	}

	codeTexts := make([]countedText, 0, len(report.CoreCodeInfo))
	for _, codeEntry := range report.CoreCodeInfo {
		codeTexts = append(codeTexts, countedText{path: codeEntry.FilePath, content: codeEntry.Content})
	}
	dependencyTexts := make([]countedText, 0, report.Dependencies.Len())
	for _, dependencyPath := range report.Dependencies.Paths() {
		content, _ := report.Dependencies.Get(dependencyPath)
		dependencyTexts = append(dependencyTexts, countedText{path: dependencyPath, content: content})
	}

	estimate := Estimate{Model: counter.Name()}
	var group errgroup.Group
	group.Go(func() error {
		total, err := countSection(counter, codeTexts)
		estimate.CodeTokens = total
		return err
	})
	group.Go(func() error {
		total, err := countSection(counter, dependencyTexts)
		estimate.DependencyTokens = total
		return err
	})
	if err := group.Wait(); err != nil {
		return Estimate{}, err
	}
	return estimate, nil
}

func countSection(counter Counter, texts []countedText) (int, error) {
	total := 0
	for _, text := range texts {
		tokens, countError := counter.CountString(text.content)
		if countError != nil {
			return 0, fmt.Errorf("counting tokens for %s: %w", text.path, countError)
		}
		total += tokens
	}
	return total, nil
}
