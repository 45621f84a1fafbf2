package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spigell/resume-scorer/internal/extract"
)

const (
	formResume         = "resume"
	formJobDescription = "jobDescription"

	msgNoResume        = "No resume file provided"
	msgNoJobDesc       = "No job description provided"
	msgNoSelectedFile  = "No selected file"
	msgUnsupportedType = "Unsupported file type. Please upload PDF or DOCX."
	msgExtractFailed   = "Failed to extract text from resume."
	msgTooLarge        = "Resume file is too large"
	msgRunning         = "AI Service Running!"
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": msgRunning})
}

func (s *Server) analyze(c *gin.Context) {
	logger := requestLogger(c, s.logger)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxUploadBytes)

	header, err := c.FormFile(formResume)
	if err != nil {
		if statusFor(err) == http.StatusRequestEntityTooLarge {
			c.JSON(http.StatusRequestEntityTooLarge, errorBody(msgTooLarge))
			return
		}
		c.JSON(http.StatusBadRequest, errorBody(msgNoResume))
		return
	}

	jd, ok := c.GetPostForm(formJobDescription)
	if !ok {
		c.JSON(http.StatusBadRequest, errorBody(msgNoJobDesc))
		return
	}

	if strings.TrimSpace(header.Filename) == "" {
		c.JSON(http.StatusBadRequest, errorBody(msgNoSelectedFile))
		return
	}

	ext := extract.Ext(header.Filename)
	if !extract.Uploadable(ext) {
		c.JSON(http.StatusBadRequest, errorBody(msgUnsupportedType))
		return
	}

	file, err := header.Open()
	if err != nil {
		s.fail(c, logger, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.fail(c, logger, err)
		return
	}

	resumeText, err := extract.Text(data, ext)
	if err != nil {
		logger.Warn("resume text extraction failed",
			zap.String("file", header.Filename),
			zap.Int64("size", header.Size),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, errorBody(msgExtractFailed))
		return
	}

	result, err := s.analyzer.WithLogger(logger).Analyze(c.Request.Context(), resumeText, jd)
	if err != nil {
		s.fail(c, logger, err)
		return
	}

	s.metrics.observeScores(result.MatchScore, result.AnalysisDetails.ContentMatchScore, result.AnalysisDetails.FormatScore)
	c.JSON(http.StatusOK, result)
}

func (s *Server) fail(c *gin.Context, logger *zap.Logger, err error) {
	logger.Error("error processing resume and job description", zap.Error(err))
	c.JSON(statusFor(err), errorBody(processingError(err)))
}

// statusFor maps pipeline errors to HTTP status codes.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError

	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, extract.ErrUnsupported):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func processingError(err error) string {
	return fmt.Sprintf("An error occurred during processing: %s", err)
}

func errorBody(msg string) gin.H {
	return gin.H{"error": msg}
}
