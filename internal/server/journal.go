package server

import (
	"errors"
	"strconv"
	"time"

	"github.com/daylog/daylog/internal/logger"
	"github.com/daylog/daylog/internal/repository"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type createJournalReq struct {
	Content  string `json:"content"`
	Date     string `json:"date"`
	AutoSync bool   `json:"autoSync"`
}

type updateJournalReq struct {
	Content  *string `json:"content"`
	Date     *string `json:"date"`
	AutoSync bool    `json:"autoSync"`
}

// handleCreateJournal creates or overwrites the journal for a date;
// one day holds exactly one journal.
func (s *Server) handleCreateJournal(c echo.Context) error {
	var req createJournalReq
	if err := c.Bind(&req); err != nil || req.Date == "" {
		return respondErr(c, codeBadRequest, "content and date required")
	}

	logger.Log.Info("create journal",
		zap.String("date", req.Date),
		zap.Bool("auto_sync", req.AutoSync))

	journal, err := s.journalRepo.UpsertByDate(req.Date, req.Content, time.Now().Unix())
	if err != nil {
		return respondErr(c, codeDbInsertFailed, "db insert failed")
	}
	return respondOK(c, journal)
}

func (s *Server) handleListJournals(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	if page == 0 {
		page = 1
	}
	if size == 0 {
		size = 10
	}

	journals, err := s.journalRepo.List(page, size, c.QueryParam("date"))
	if err != nil {
		return respondErr(c, codeDbListFailed, "db query failed")
	}
	return respondOK(c, journals)
}

func (s *Server) handleGetJournal(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respondErr(c, codeBadRequest, "invalid id")
	}

	journal, err := s.journalRepo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return respondErr(c, codeNotFound, "not found")
	}
	if err != nil {
		return respondErr(c, codeDbGetFailed, "db query failed")
	}
	return respondOK(c, journal)
}

func (s *Server) handleUpdateJournal(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respondErr(c, codeBadRequest, "invalid id")
	}

	var req updateJournalReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, codeBadRequest, "invalid body")
	}
	if req.Content == nil && req.Date == nil {
		return respondErr(c, codeBadRequest, "content or date required")
	}

	logger.Log.Info("update journal",
		zap.Int64("id", id),
		zap.Bool("auto_sync", req.AutoSync))

	journal, err := s.journalRepo.Update(id, req.Content, req.Date)
	switch {
	case errors.Is(err, repository.ErrDateTaken):
		return respondErr(c, codeBadRequest, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		return respondErr(c, codeNotFound, "not found")
	case err != nil:
		return respondErr(c, codeDbUpdateFailed, "db update failed")
	}
	return respondOK(c, journal)
}

func (s *Server) handleDeleteJournal(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respondErr(c, codeBadRequest, "invalid id")
	}

	err = s.journalRepo.Delete(id)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return respondErr(c, codeNotFound, "not found")
	case err != nil:
		return respondErr(c, codeDbDeleteFailed, "db delete failed")
	}
	return respondOK(c, nil)
}
