package ui

import (
	"net/http"
	"strings"

	"statcalc/adapters/excel"
	"statcalc/app"
	"statcalc/domain/stats"
	"statcalc/internal/errors"
	"statcalc/internal/profiling"
	"statcalc/internal/report"
	"statcalc/ui/middleware"

	"github.com/gin-gonic/gin"
)

// styleHTML asks for the markdown report rendered to HTML
const styleHTML = "html"

type intervalPayload struct {
	Data       string   `json:"data"`
	Confidence *float64 `json:"confidence"` // percent
	Kind       string   `json:"kind"`
	Style      string   `json:"style"`
}

type testPayload struct {
	Data      string   `json:"data"`
	NullValue *float64 `json:"null_value"`
	Alpha     *float64 `json:"alpha"`
	Direction string   `json:"direction"`
	Kind      string   `json:"kind"`
	Style     string   `json:"style"`
}

type columnPayload struct {
	profiling.ColumnProfile
	Text string `json:"text"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleHelp(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(HelpHTML()))
}

func (s *Server) handleInterval(c *gin.Context) {
	var payload intervalPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		s.respondError(c, errors.InvalidInput("request body must be JSON: "+err.Error()))
		return
	}

	kind, err := s.parseKind(payload.Kind)
	if err != nil {
		s.respondError(c, err)
		return
	}
	confidence := s.config.Inference.DefaultConfidence
	if payload.Confidence != nil {
		confidence = *payload.Confidence
	}
	style, html := s.resolveStyle(payload.Style)

	resp, err := s.calculator.ComputeInterval(c.Request.Context(), app.IntervalRequest{
		Data:              payload.Data,
		ConfidencePercent: confidence,
		Kind:              kind,
		Style:             style,
		RequestID:         middleware.GetRequestID(c),
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	if html {
		resp.Report = report.RenderHTML(resp.Report)
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleTest(c *gin.Context) {
	var payload testPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		s.respondError(c, errors.InvalidInput("request body must be JSON: "+err.Error()))
		return
	}
	if payload.NullValue == nil {
		s.respondError(c, errors.InvalidInput("null_value is required"))
		return
	}

	kind, err := s.parseKind(payload.Kind)
	if err != nil {
		s.respondError(c, err)
		return
	}
	direction := stats.TwoSided
	if strings.TrimSpace(payload.Direction) != "" {
		if direction, err = stats.ParseDirection(payload.Direction); err != nil {
			s.respondError(c, err)
			return
		}
	}
	alpha := s.config.Inference.DefaultAlpha
	if payload.Alpha != nil {
		alpha = *payload.Alpha
	}
	style, html := s.resolveStyle(payload.Style)

	resp, err := s.calculator.RunTest(c.Request.Context(), app.HypothesisRequest{
		Data:      payload.Data,
		NullValue: *payload.NullValue,
		Alpha:     alpha,
		Direction: direction,
		Kind:      kind,
		Style:     style,
		RequestID: middleware.GetRequestID(c),
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	if html {
		resp.Report = report.RenderHTML(resp.Report)
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleColumns(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.config.MaxUploadBytes())

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		s.respondError(c, errors.InvalidInput("multipart field \"file\" is required"))
		return
	}
	defer file.Close()

	sheet := c.PostForm("sheet")
	if sheet == "" {
		sheet = s.config.Data.ExcelSheet
	}
	table, err := excel.ReadTableFrom(file, header.Filename, excel.ReaderConfig{Sheet: sheet})
	if err != nil {
		s.respondError(c, err)
		return
	}

	profiles, err := s.profiler.ProfileTable(table)
	if err != nil {
		s.respondError(c, err)
		return
	}
	columns := make([]columnPayload, len(profiles))
	for i, profile := range profiles {
		text, err := table.ColumnText(profile.Name)
		if err != nil {
			s.respondError(c, err)
			return
		}
		columns[i] = columnPayload{ColumnProfile: profile, Text: text}
	}

	c.JSON(http.StatusOK, gin.H{
		"request_id": middleware.GetRequestID(c),
		"source":     table.Source,
		"sheet":      table.Sheet,
		"rows":       table.Rows,
		"headers":    table.Headers,
		"columns":    columns,
	})
}

// parseKind defaults to t, the procedure valid for every sample size
func (s *Server) parseKind(raw string) (stats.TestKind, error) {
	if strings.TrimSpace(raw) == "" {
		return stats.TestKindT, nil
	}
	return stats.ParseTestKind(raw)
}

// resolveStyle maps the requested style onto a formatter style. "html"
// renders the markdown report.
func (s *Server) resolveStyle(raw string) (string, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	switch raw {
	case styleHTML:
		return string(report.StyleMarkdown), true
	case "":
		return s.config.Inference.ReportStyle, false
	}
	return raw, false
}

func (s *Server) respondError(c *gin.Context, err error) {
	appErr := errors.FromDomain(err)
	status := errors.HTTPStatus(appErr.Code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request %s failed: %v", middleware.GetRequestID(c), err)
	}
	c.JSON(status, gin.H{
		"request_id": middleware.GetRequestID(c),
		"code":       appErr.Code,
		"error":      err.Error(),
	})
}
