package server

import (
	"github.com/daylog/daylog/internal/placeholder"
	"github.com/labstack/echo/v4"
)

type settingsView struct {
	ImportPatterns    []string           `json:"importPatterns"`
	SyncOutputPath    string             `json:"syncOutputPath"`
	SyncCommitMessage string             `json:"syncCommitMessage"`
	DatePlaceholders  placeholder.Schema `json:"datePlaceholders"`
}

type updateSettingsReq struct {
	ImportPatterns    []string            `json:"importPatterns"`
	SyncOutputPath    *string             `json:"syncOutputPath"`
	SyncCommitMessage *string             `json:"syncCommitMessage"`
	DatePlaceholders  *placeholder.Schema `json:"datePlaceholders"`
}

func (s *Server) currentSettings() settingsView {
	schema := s.settings.Schema()
	return settingsView{
		ImportPatterns:    s.settings.ImportPatterns(schema),
		SyncOutputPath:    s.settings.SyncOutputPath(),
		SyncCommitMessage: s.settings.SyncCommitMessage(),
		DatePlaceholders:  schema,
	}
}

func (s *Server) handleGetSettings(c echo.Context) error {
	return respondOK(c, s.currentSettings())
}

// handleUpdateSettings applies any subset of the settings fields.
func (s *Server) handleUpdateSettings(c echo.Context) error {
	var req updateSettingsReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, codeBadRequest, "invalid body")
	}

	if req.DatePlaceholders != nil {
		if _, err := s.settings.SaveSchema(*req.DatePlaceholders); err != nil {
			return respondErr(c, codeBadRequest, err.Error())
		}
	}
	if req.ImportPatterns != nil {
		if err := s.settings.SaveImportPatterns(req.ImportPatterns); err != nil {
			return respondErr(c, codeBadRequest, err.Error())
		}
	}
	// A token-free output path is valid: it selects the aggregate file
	// mode. Patterns are validated when an import uses them.
	if req.SyncOutputPath != nil {
		if err := s.settings.SaveSyncOutputPath(*req.SyncOutputPath); err != nil {
			return respondErr(c, codeBadRequest, err.Error())
		}
	}
	if req.SyncCommitMessage != nil {
		if err := s.settings.SaveSyncCommitMessage(*req.SyncCommitMessage); err != nil {
			return respondErr(c, codeBadRequest, err.Error())
		}
	}

	return respondOK(c, s.currentSettings())
}
