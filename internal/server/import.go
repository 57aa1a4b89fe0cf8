package server

import (
	"errors"
	"io"
	"mime/multipart"

	"github.com/daylog/daylog/internal/logger"
	"github.com/daylog/daylog/internal/syncer"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// handleImportZip accepts a multipart upload: the archive in the "file"
// field (or the first file field as a fallback) plus an optional
// "patterns" field overriding the configured path templates.
func (s *Server) handleImportZip(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return respondErr(c, codeBadRequest, "multipart form required")
	}

	header := pickZipFile(form)
	if header == nil {
		return respondErr(c, codeFileMissing, "file field required")
	}

	file, err := header.Open()
	if err != nil {
		return respondErr(c, codeBadRequest, "failed to open uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return respondErr(c, codeBadRequest, "failed to read uploaded file")
	}

	logger.Log.Info("zip import requested",
		zap.String("filename", header.Filename),
		zap.Int("bytes", len(data)))

	result, err := s.orchestrator.ImportZip(data, c.FormValue("patterns"))
	if err != nil {
		var vErr *syncer.ValidationError
		if errors.As(err, &vErr) {
			return respondErr(c, codeBadRequest, vErr.Error())
		}
		logger.Log.Error("zip import failed", zap.Error(err))
		return respondErr(c, codeDbInsertFailed, err.Error())
	}
	return respondOK(c, result)
}

func pickZipFile(form *multipart.Form) *multipart.FileHeader {
	if headers, ok := form.File["file"]; ok && len(headers) > 0 {
		return headers[0]
	}
	for _, headers := range form.File {
		if len(headers) > 0 {
			return headers[0]
		}
	}
	return nil
}
