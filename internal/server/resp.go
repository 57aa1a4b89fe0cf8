package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Business codes ride inside a 200 envelope; the HTTP status stays OK
// so clients branch on the code field.
const (
	codeOK             = 200
	codeBadRequest     = 400
	codeNotFound       = 404
	codeDbInsertFailed = 1001
	codeDbQueryFailed  = 1002
	codeDbListFailed   = 1003
	codeDbGetFailed    = 1004
	codeDbUpdateFailed = 1005
	codeDbDeleteFailed = 1007
	codeFileMissing    = 2001
	codeSyncFailed     = 3001
)

type response struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data"`
}

func respondOK(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, response{Code: codeOK, Msg: "ok", Data: data})
}

func respondErr(c echo.Context, code int, msg string) error {
	return c.JSON(http.StatusOK, response{Code: code, Msg: msg})
}
