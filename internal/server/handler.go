package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"FortuneTeller/internal/compat"
	"FortuneTeller/internal/fortune"
	"FortuneTeller/internal/model"
	"FortuneTeller/internal/saju"
)

// BirthRequest is the JSON body describing one person.
type BirthRequest struct {
	Name   string `json:"name"`
	Year   int    `json:"year"`
	Month  int    `json:"month"`
	Day    int    `json:"day"`
	Hour   *int   `json:"hour"`
	Gender string `json:"gender"`
}

// toBirth rejects a missing hour and validates gender when present, or always when
// requireGender is set.
func (r BirthRequest) toBirth(requireGender bool) (model.BirthInfo, error) {
	b := model.BirthInfo{Name: r.Name, Year: r.Year, Month: r.Month, Day: r.Day}
	if r.Hour == nil {
		return b, &saju.ValidationError{Field: "hour", Msg: "required"}
	}
	b.Hour = *r.Hour
	if r.Gender != "" || requireGender {
		g, err := saju.ParseGender(r.Gender)
		if err != nil {
			return b, err
		}
		b.Gender = g
	}
	return b, nil
}

type compatibilityRequest struct {
	Person1 BirthRequest `json:"person1"`
	Person2 BirthRequest `json:"person2"`
}

type interpretRequest struct {
	BirthRequest
	Question string `json:"question"`
}

// greatFortuneReply uses the field names the web client reads.
type greatFortuneReply struct {
	Birth         model.BirthInfo       `json:"birth"`
	Chart         model.Chart           `json:"chart"`
	StartAge      int                   `json:"daeun_start_age"`
	Forward       bool                  `json:"is_forward"`
	CurrentAge    int                   `json:"current_age"`
	Periods       []model.FortunePeriod `json:"daeun_list"`
	CurrentPeriod *model.FortunePeriod  `json:"current_daeun,omitempty"`
}

func (s *Server) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "calendar": s.provider.Name()})
}

func (s *Server) bindBirth(c *gin.Context, requireGender bool) (model.BirthInfo, bool) {
	var req BirthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request body must be a JSON birth record: "+err.Error())
		return model.BirthInfo{}, false
	}
	birth, err := req.toBirth(requireGender)
	if err != nil {
		s.fail(c, err)
		return model.BirthInfo{}, false
	}
	return birth, true
}

// HandleAnalyze computes the full chart reading.
func (s *Server) HandleAnalyze(c *gin.Context) {
	birth, ok := s.bindBirth(c, false)
	if !ok {
		return
	}
	r, err := saju.Analyze(c.Request.Context(), s.provider, birth)
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := s.recorder.RecordReading(r); err != nil {
		s.log.Error("record reading", zap.Error(err))
	}
	c.JSON(http.StatusOK, r)
}

// HandleGreatFortune computes the ten-year periods; gender is required.
func (s *Server) HandleGreatFortune(c *gin.Context) {
	birth, ok := s.bindBirth(c, true)
	if !ok {
		return
	}
	chart, err := saju.ExtractChart(c.Request.Context(), s.provider, birth.Year, birth.Month, birth.Day, birth.Hour)
	if err != nil {
		s.fail(c, err)
		return
	}
	gf, err := fortune.GreatFortune(chart, birth, s.terms, s.now().Year())
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := s.recorder.RecordGreatFortune(birth, gf); err != nil {
		s.log.Error("record great fortune", zap.Error(err))
	}

	reply := greatFortuneReply{
		Birth:      birth,
		Chart:      chart,
		StartAge:   gf.StartAge,
		Forward:    gf.Forward,
		CurrentAge: gf.CurrentAge,
		Periods:    gf.Periods,
	}
	for i := range gf.Periods {
		if gf.Periods[i].IsCurrent {
			reply.CurrentPeriod = &gf.Periods[i]
		}
	}
	c.JSON(http.StatusOK, reply)
}

// HandleAnnualFortune computes the year and month periods for ?target_year=, default this year.
func (s *Server) HandleAnnualFortune(c *gin.Context) {
	target := s.now().Year()
	if v := c.Query("target_year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			badRequest(c, "target_year must be an integer")
			return
		}
		target = y
	}

	birth, ok := s.bindBirth(c, false)
	if !ok {
		return
	}
	chart, err := saju.ExtractChart(c.Request.Context(), s.provider, birth.Year, birth.Month, birth.Day, birth.Hour)
	if err != nil {
		s.fail(c, err)
		return
	}
	af, err := fortune.AnnualFortune(chart, target)
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := s.recorder.RecordAnnualFortune(chart, af); err != nil {
		s.log.Error("record annual fortune", zap.Error(err))
	}
	c.JSON(http.StatusOK, af)
}

// HandleCompatibility compares two people.
func (s *Server) HandleCompatibility(c *gin.Context) {
	var req compatibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request body must contain person1 and person2: "+err.Error())
		return
	}
	first, err := req.Person1.toBirth(false)
	if err != nil {
		s.fail(c, err)
		return
	}
	second, err := req.Person2.toBirth(false)
	if err != nil {
		s.fail(c, err)
		return
	}

	res, err := compat.Analyze(c.Request.Context(), s.provider, first, second)
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := s.recorder.RecordCompatibility(res); err != nil {
		s.log.Error("record compatibility", zap.Error(err))
	}
	c.JSON(http.StatusOK, res)
}

// HandleInterpret asks the language model about a chart.
func (s *Server) HandleInterpret(c *gin.Context) {
	var req interpretRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request body must be a JSON birth record with a question: "+err.Error())
		return
	}
	birth, err := req.toBirth(false)
	if err != nil {
		s.fail(c, err)
		return
	}
	r, err := saju.Analyze(c.Request.Context(), s.provider, birth)
	if err != nil {
		s.fail(c, err)
		return
	}
	text, err := s.interpreter.Interpret(c.Request.Context(), r, req.Question)
	if err != nil {
		s.fail(c, err)
		return
	}

	reply := gin.H{"chart": r.Chart, "question": req.Question, "interpretation": text}
	if s.tracker != nil {
		reply["usage"] = s.tracker.Status(s.now())
	}
	c.JSON(http.StatusOK, reply)
}

// HandleUsage reports the interpretation quota.
func (s *Server) HandleUsage(c *gin.Context) {
	if s.tracker == nil {
		c.JSON(http.StatusOK, gin.H{"enabled": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"enabled": true, "status": s.tracker.Status(s.now())})
}
