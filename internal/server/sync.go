package server

import (
	"errors"

	"github.com/daylog/daylog/internal/logger"
	"github.com/daylog/daylog/internal/syncer"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func (s *Server) handleSync(c echo.Context) error {
	result, err := s.orchestrator.Sync()
	if err != nil {
		var vErr *syncer.ValidationError
		switch {
		case errors.As(err, &vErr):
			return respondErr(c, codeBadRequest, vErr.Error())
		case errors.Is(err, syncer.ErrStoreQuery):
			return respondErr(c, codeDbListFailed, err.Error())
		default:
			logger.Log.Error("journal sync failed", zap.Error(err))
			return respondErr(c, codeSyncFailed, err.Error())
		}
	}
	return respondOK(c, result)
}
