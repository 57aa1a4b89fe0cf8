package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/daylog/daylog/internal/logger"
	"github.com/daylog/daylog/internal/placeholder"
	"go.uber.org/zap"
)

type ScanResult struct {
	TotalMarkdownFiles int
	Matched            []Entry
	SkippedCount       int
}

// ScanRepo collects dated markdown entries from a checked-out working
// tree. Unlike the archive import, a duplicate resolved date within one
// scan is itself a skip: the first occurrence wins. The .git directory
// is never descended into.
func ScanRepo(root string, patterns []string, schema placeholder.Schema) (*ScanResult, error) {
	files, err := collectMarkdownFiles(root)
	if err != nil {
		return nil, err
	}

	result := &ScanResult{}
	seen := make(map[string]struct{})

	for _, rel := range files {
		path := filepath.ToSlash(rel)

		date, err := placeholder.ExtractDate(path, patterns, schema)
		if err != nil {
			result.SkippedCount++
			logger.Log.Warn("startup import skip",
				zap.String("path", path),
				zap.String("reason", err.Error()))
			continue
		}

		if _, dup := seen[date]; dup {
			result.SkippedCount++
			logger.Log.Warn("startup import skip duplicate",
				zap.String("date", date),
				zap.String("path", path))
			continue
		}
		seen[date] = struct{}{}

		full := filepath.Join(root, rel)
		content, err := os.ReadFile(full)
		if err != nil {
			return nil, fmt.Errorf("read markdown failed: %s (%w)", full, err)
		}

		result.Matched = append(result.Matched, Entry{
			Path:    path,
			Date:    date,
			Content: string(content),
		})
	}

	result.TotalMarkdownFiles = len(result.Matched) + result.SkippedCount
	return result, nil
}

// collectMarkdownFiles walks the tree with an explicit pending stack
// instead of recursing, so deep trees cannot exhaust the call stack.
func collectMarkdownFiles(root string) ([]string, error) {
	var out []string
	pending := []string{""}

	for len(pending) > 0 {
		last := len(pending) - 1
		rel := pending[last]
		pending = pending[:last]

		dir := filepath.Join(root, rel)
		items, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("read dir failed: %s (%w)", dir, err)
		}

		for _, item := range items {
			itemRel := filepath.Join(rel, item.Name())
			if item.IsDir() {
				if item.Name() == ".git" {
					continue
				}
				pending = append(pending, itemRel)
				continue
			}
			if !item.Type().IsRegular() {
				continue
			}
			if !strings.EqualFold(filepath.Ext(item.Name()), ".md") {
				continue
			}
			out = append(out, itemRel)
		}
	}

	return out, nil
}
