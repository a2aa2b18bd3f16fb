// Package server exposes the extraction pipeline over HTTP.
package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bdcommerce/order-extractor/constants"
	"github.com/bdcommerce/order-extractor/internal/async"
	"github.com/bdcommerce/order-extractor/internal/common"
	"github.com/bdcommerce/order-extractor/internal/export"
	"github.com/bdcommerce/order-extractor/internal/pipeline"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Server struct {
	proc   *pipeline.Processor
	queue  *async.Queue
	logger *slog.Logger
}

func New(proc *pipeline.Processor, queue *async.Queue, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{proc: proc, queue: queue, logger: logger}
}

// Routes builds the gin engine with all handlers attached.
func (s *Server) Routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestID())
	r.GET("/healthz", s.healthzHandler)
	r.POST("/extract", s.extractHandler)
	r.POST("/extract/xlsx", s.extractXLSXHandler)
	r.POST("/extract/async", s.extractAsyncHandler)
	return r
}

func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Request = c.Request.WithContext(common.WithRequestID(c.Request.Context(), id))
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func (s *Server) healthzHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// extractRequest is the JSON submission shape. Plain-text bodies are
// accepted as well so operators can pipe pasted text directly.
type extractRequest struct {
	Text string `json:"text"`
}

func (s *Server) readInput(c *gin.Context) (string, bool) {
	if strings.HasPrefix(c.ContentType(), "application/json") {
		var req extractRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return "", false
		}
		return req.Text, true
	}
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read request body"})
		return "", false
	}
	return string(raw), true
}

type rejectionView struct {
	Entry   int      `json:"entry"`
	Missing []string `json:"missing"`
}

func rejectionViews(rejected []export.Rejected) []rejectionView {
	out := make([]rejectionView, 0, len(rejected))
	for _, r := range rejected {
		out = append(out, rejectionView{
			Entry:   r.BlockIndex,
			Missing: constants.FieldsAsStrings(r.Missing),
		})
	}
	return out
}

func summaryView(summary *pipeline.Summary) gin.H {
	return gin.H{
		"run_id":   summary.RunID.String(),
		"blocks":   summary.Blocks,
		"valid":    len(summary.Rows),
		"rejected": rejectionViews(summary.Rejected),
	}
}

// extractHandler returns run diagnostics as JSON without producing an
// artifact.
func (s *Server) extractHandler(c *gin.Context) {
	input, ok := s.readInput(c)
	if !ok {
		return
	}
	summary, err := s.proc.Process(c.Request.Context(), input)
	if err != nil {
		s.writeError(c, summary, err)
		return
	}
	c.JSON(http.StatusOK, summaryView(summary))
}

// extractXLSXHandler runs the pipeline and streams the workbook back as
// an attachment with the timestamped filename.
func (s *Server) extractXLSXHandler(c *gin.Context) {
	input, ok := s.readInput(c)
	if !ok {
		return
	}
	summary, data, err := s.proc.ProcessToXLSX(c.Request.Context(), input)
	if err != nil {
		s.writeError(c, summary, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+export.Filename(time.Now())+`"`)
	c.Header("X-Blocks", strconv.Itoa(summary.Blocks))
	c.Header("X-Valid-Rows", strconv.Itoa(len(summary.Rows)))
	c.Data(http.StatusOK, xlsxMIME, data)
}

// extractAsyncHandler accepts a submission for background processing
// and returns immediately with the run ID.
func (s *Server) extractAsyncHandler(c *gin.Context) {
	if s.queue == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "async processing not enabled"})
		return
	}
	input, ok := s.readInput(c)
	if !ok {
		return
	}
	if strings.TrimSpace(input) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrNoInput.Error()})
		return
	}
	job := async.Job{RunID: uuid.New(), Input: input, SubmittedAt: time.Now()}
	if err := s.queue.Enqueue(c.Request.Context(), job); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "enqueue failed"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"run_id": job.RunID.String()})
}

// writeError maps terminal run failures onto HTTP statuses. A run where
// everything was rejected still carries its diagnostics so the operator
// can see which entries were missing which fields.
func (s *Server) writeError(c *gin.Context, summary *pipeline.Summary, err error) {
	reqID := common.RequestIDFromContext(c.Request.Context())
	switch {
	case errors.Is(err, common.ErrNoInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrNoValidData):
		body := gin.H{"error": err.Error()}
		if summary != nil {
			body["blocks"] = summary.Blocks
			body["rejected"] = rejectionViews(summary.Rejected)
		}
		c.JSON(http.StatusUnprocessableEntity, body)
	case errors.Is(err, common.ErrExportFailed):
		s.logger.Error("server.export.failed", "request_id", reqID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		s.logger.Error("server.request.failed", "request_id", reqID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

