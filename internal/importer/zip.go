package importer

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/daylog/daylog/internal/logger"
	"github.com/daylog/daylog/internal/placeholder"
	"go.uber.org/zap"
)

type ZipResult struct {
	TotalMarkdownFiles int
	Matched            []Entry
	Skipped            []SkipDetail
}

// ParseZip walks every markdown entry of the archive, extracting a
// date from its name. A file that matches no pattern becomes a skip;
// a broken container or an unreadable entry fails the whole batch.
func ParseZip(data []byte, patterns []string, schema placeholder.Schema) (*ZipResult, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("invalid zip file")
	}

	result := &ZipResult{}
	for _, file := range archive.File {
		if file.FileInfo().IsDir() {
			continue
		}

		path := strings.ReplaceAll(file.Name, "\\", "/")
		if !strings.HasSuffix(strings.ToLower(path), ".md") {
			continue
		}
		result.TotalMarkdownFiles++

		date, err := placeholder.ExtractDate(path, patterns, schema)
		if err != nil {
			detail := SkipDetail{Path: path, Reason: err.Error()}
			logger.Log.Warn("zip import skipped",
				zap.String("path", detail.Path),
				zap.String("reason", detail.Reason))
			result.Skipped = append(result.Skipped, detail)
			continue
		}

		content, err := readZipEntry(file)
		if err != nil {
			return nil, err
		}

		result.Matched = append(result.Matched, Entry{
			Path:    path,
			Date:    date,
			Content: content,
		})
	}

	return result, nil
}

func readZipEntry(file *zip.File) (string, error) {
	rc, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("read zip entry failed")
	}
	defer rc.Close()

	buf, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("read markdown content failed")
	}
	// Invalid UTF-8 is replaced, not rejected.
	return strings.ToValidUTF8(string(buf), "�"), nil
}
