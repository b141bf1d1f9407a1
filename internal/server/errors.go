package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"FortuneTeller/internal/interpret"
	"FortuneTeller/internal/saju"
)

// ErrorReply is the body of every non-2xx response.
type ErrorReply struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// classify maps a domain error to its status and error code.
func classify(err error) (int, string) {
	var verr *saju.ValidationError
	var cerr *saju.ChartExtractionError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, "invalid_input"
	case errors.As(err, &cerr):
		return http.StatusNotFound, "chart_not_found"
	case errors.Is(err, interpret.ErrQuotaExceeded):
		return http.StatusTooManyRequests, "quota_exceeded"
	case errors.Is(err, interpret.ErrDisabled):
		return http.StatusServiceUnavailable, "interpretation_disabled"
	}
	return http.StatusInternalServerError, "internal_error"
}

func (s *Server) fail(c *gin.Context, err error) {
	status, code := classify(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", zap.String("request_id", c.GetString("request_id")), zap.Error(err))
		msg = "internal error"
	} else {
		s.log.Warn("request rejected", zap.String("code", code), zap.Error(err))
	}
	c.AbortWithStatusJSON(status, ErrorReply{Error: code, Message: msg})
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorReply{Error: "invalid_request", Message: msg})
}
