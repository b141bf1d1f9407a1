// Package server exposes the chart and fortune computations as a JSON API.
package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"FortuneTeller/internal/calendar"
	"FortuneTeller/internal/interpret"
	"FortuneTeller/internal/recorder"
	"FortuneTeller/internal/usage"
)

const requestIDHeader = "X-Request-ID"

// Server holds the collaborators shared by all handlers.
type Server struct {
	provider    calendar.Provider
	recorder    recorder.Recorder
	interpreter interpret.Interpreter
	tracker     *usage.Tracker
	terms       calendar.SolarTerms
	log         *zap.Logger
	now         func() time.Time
}

// Options bundles the optional collaborators; nil fields get no-op defaults.
type Options struct {
	Recorder    recorder.Recorder
	Interpreter interpret.Interpreter
	Tracker     *usage.Tracker
	Terms       calendar.SolarTerms
}

// New creates a Server over provider.
func New(provider calendar.Provider, opts Options, log *zap.Logger) *Server {
	s := &Server{
		provider:    provider,
		recorder:    opts.Recorder,
		interpreter: opts.Interpreter,
		tracker:     opts.Tracker,
		terms:       opts.Terms,
		log:         log,
		now:         time.Now,
	}
	if s.recorder == nil {
		s.recorder = recorder.NewNoopRecorder()
	}
	if s.interpreter == nil {
		s.interpreter = interpret.Disabled{}
	}
	if s.terms == (calendar.SolarTerms{}) {
		s.terms = calendar.DefaultSolarTerms
	}
	return s
}

// Handler builds the gin engine with all routes registered.
func (s *Server) Handler() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestID(), s.accessLog())
	s.InitRoutes(r)
	return r
}

// InitRoutes registers the API routes on r.
func (s *Server) InitRoutes(r *gin.Engine) {
	r.GET("/health", s.HandleHealth)

	api := r.Group("/api/v1")
	{
		api.POST("/saju/analyze", s.HandleAnalyze)        // chart reading
		api.POST("/saju/daeun", s.HandleGreatFortune)     // ten-year periods
		api.POST("/saju/saeun", s.HandleAnnualFortune)    // year and month periods
		api.POST("/saju/interpret", s.HandleInterpret)    // model interpretation
		api.POST("/compatibility", s.HandleCompatibility) // two-person comparison
		api.GET("/usage", s.HandleUsage)
	}
}

func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}
