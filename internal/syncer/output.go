package syncer

import (
	"fmt"
	"path"
	"strings"

	"github.com/daylog/daylog/internal/gitsync"
	"github.com/daylog/daylog/internal/model"
	"github.com/daylog/daylog/internal/placeholder"
)

// NormalizeFormat canonicalizes the output format name. Markdown is the
// only supported text format.
func NormalizeFormat(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "md", "markdown":
		return "markdown", nil
	default:
		return "", fmt.Errorf("invalid output_format: supported: markdown only")
	}
}

// BuildOutputFiles renders the files one sync attempt will write. A
// date token in the output path yields one file per journal; otherwise
// every journal lands in a single aggregate file.
func BuildOutputFiles(outputPath, format string, journals []model.Journal, schema placeholder.Schema) ([]gitsync.OutputFile, error) {
	if format == "markdown" && placeholder.ContainsDateToken(outputPath, schema) {
		files := make([]gitsync.OutputFile, 0, len(journals))
		for _, j := range journals {
			rendered, err := placeholder.RenderPath(outputPath, j.Date, schema)
			if err != nil {
				return nil, err
			}
			relPath, err := validateRelPath(rendered)
			if err != nil {
				return nil, fmt.Errorf("invalid output_path: %w", err)
			}
			if err := ensureMarkdownPath(relPath); err != nil {
				return nil, err
			}
			files = append(files, gitsync.OutputFile{
				RelPath: relPath,
				Content: renderSingleMarkdown(j),
			})
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("no journals to sync for markdown template output")
		}
		return files, nil
	}

	relPath, err := validateRelPath(outputPath)
	if err != nil {
		return nil, fmt.Errorf("invalid output_path: %w", err)
	}
	if err := ensureMarkdownPath(relPath); err != nil {
		return nil, err
	}
	return []gitsync.OutputFile{{
		RelPath: relPath,
		Content: renderAggregateMarkdown(journals),
	}}, nil
}

func validateRelPath(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if path.IsAbs(trimmed) {
		return "", fmt.Errorf("absolute path is not allowed")
	}
	for _, seg := range strings.Split(trimmed, "/") {
		if seg == ".." {
			return "", fmt.Errorf("parent dir is not allowed")
		}
	}
	return trimmed, nil
}

func ensureMarkdownPath(relPath string) error {
	if strings.EqualFold(path.Ext(relPath), ".md") {
		return nil
	}
	return fmt.Errorf("output path must end with .md: %s", relPath)
}

func renderAggregateMarkdown(journals []model.Journal) string {
	var out strings.Builder
	out.WriteString("# DayLog Journals\n\n")
	for _, j := range journals {
		out.WriteString(fmt.Sprintf("## %s\n\n", j.Date))
		out.WriteString(j.Content)
		out.WriteString("\n\n---\n\n")
	}
	return out.String()
}

func renderSingleMarkdown(j model.Journal) string {
	var out strings.Builder
	out.WriteString(fmt.Sprintf("# %s\n\n", j.Date))
	out.WriteString(j.Content)
	out.WriteString("\n")
	return out.String()
}
