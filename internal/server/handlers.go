package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/joseph-ayodele/docfacts/constants"
	"github.com/joseph-ayodele/docfacts/internal/common"
	"github.com/joseph-ayodele/docfacts/internal/entity"
	"github.com/joseph-ayodele/docfacts/internal/pdftext"
	"github.com/joseph-ayodele/docfacts/internal/pipeline"
)

type pageData struct {
	HasCredential  bool
	CredentialName string
	Provider       string
	UseAI          bool
	MaxUploadMB    int64
	Accept         string
	Flashes        []Flash
	HasResult      bool
	Source         string
	Rows           []entity.Row
	Text           string
}

func (s *Server) handleIndex(c echo.Context) error {
	sess := sessionFrom(c)
	data := pageData{
		HasCredential:  s.cfg.HasCredential(),
		CredentialName: s.cfg.CredentialName(),
		Provider:       s.cfg.LLM.Provider,
		UseAI:          sess.UseAI(),
		MaxUploadMB:    s.cfg.Server.MaxUploadMB,
		Accept:         constants.MIMEPDF + ",.pdf",
		Flashes:        sess.TakeFlashes(),
	}
	if res := sess.Result(); res != nil {
		data.HasResult = true
		data.Source = res.Source
		data.Rows = res.Table.Rows
		data.Text = res.Text
	}

	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "index.html", data); err != nil {
		common.LoggerFrom(c.Request().Context(), s.logger).Error("server.render.failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not render page")
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

// handleExtract runs the pipeline once for the uploaded file and stores the
// result in the session. Outcomes are reported as flash messages.
func (s *Server) handleExtract(c echo.Context) error {
	sess := sessionFrom(c)
	ctx := c.Request().Context()
	log := common.LoggerFrom(ctx, s.logger)

	useAI := checked(c.FormValue("use_ai"))
	sess.SetUseAI(useAI)

	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		sess.AddFlash(levelWarning, "Please upload a PDF file to begin extraction.")
		return s.backToForm(c)
	}
	if useAI && !s.cfg.HasCredential() {
		sess.AddFlash(levelError, fmt.Sprintf("Cannot run AI extraction without the %s.", s.cfg.CredentialName()))
		return s.backToForm(c)
	}

	v := common.NewValidator().
		Field("file", fh.Filename, common.Required, common.PDFFilename).
		Field("size", fh.Size, common.MaxBytes(s.cfg.Server.MaxUploadMB<<20))
	if err := common.ValidateAndReturnError(v); err != nil {
		log.Warn("server.extract.rejected", "filename", fh.Filename, "error", err)
		sess.AddFlash(levelError, v.ErrorMessage())
		return s.backToForm(c)
	}

	data, err := readUpload(fh)
	if err != nil {
		log.Error("server.extract.upload_failed", "filename", fh.Filename, "error", err)
		sess.AddFlash(levelError, "An error occurred during file processing: "+err.Error())
		return s.backToForm(c)
	}

	res := s.proc.Run(ctx, pdftext.FromBytes(fh.Filename, data), pipeline.RunOptions{
		UseAI: useAI,
		Memo:  sess.Memo(),
	})
	sess.SetResult(res)

	for _, is := range res.Issues {
		sess.AddFlash(levelError, issueMessage(is, s.cfg.CredentialName()))
	}
	switch {
	case !res.Empty():
		sess.AddFlash(levelSuccess, fmt.Sprintf("Extraction Complete! Found %d key-value pairs.", res.Table.Len()))
	case res.Strategy == constants.StrategyModel:
		sess.AddFlash(levelWarning, "No structured data could be extracted by the AI model. Check the console for details.")
	default:
		sess.AddFlash(levelWarning, "No structured data could be extracted from the document.")
	}
	log.Info("server.extract.done",
		"filename", fh.Filename,
		"strategy", res.Strategy,
		"records", res.Table.Len(),
		"issues", len(res.Issues),
	)
	return s.backToForm(c)
}

// handleDownload streams the session's table as Output.xlsx.
func (s *Server) handleDownload(c echo.Context) error {
	res := sessionFrom(c).Result()
	if res == nil || res.Empty() {
		return echo.NewHTTPError(http.StatusNotFound, "No extracted data to download.")
	}

	b, err := s.exporter.WriteXLSX(c.Request().Context(), res.Table)
	if err != nil {
		if errors.Is(err, common.ErrEmptyTable) {
			return echo.NewHTTPError(http.StatusNotFound, "No extracted data to download.")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "could not build spreadsheet: "+err.Error())
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", constants.DownloadFilename))
	return c.Blob(http.StatusOK, constants.MIMEXLSX, b)
}

// handleClear drops the session's result and memo.
func (s *Server) handleClear(c echo.Context) error {
	sess := sessionFrom(c)
	sess.Clear()
	sess.AddFlash(levelInfo, "Results cleared.")
	common.LoggerFrom(c.Request().Context(), s.logger).Info("server.session.cleared")
	return s.backToForm(c)
}

func (s *Server) backToForm(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, "/")
}

func checked(v string) bool {
	switch v {
	case "on", "true", "1":
		return true
	}
	return false
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
