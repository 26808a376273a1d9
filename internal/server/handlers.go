package server

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/KaramelBytes/districtlens-cli/internal/analysis"
	"github.com/KaramelBytes/districtlens-cli/internal/chart"
	"github.com/KaramelBytes/districtlens-cli/internal/dataset"
	"github.com/KaramelBytes/districtlens-cli/internal/pipeline"
	"github.com/gin-gonic/gin"
)

// Response is the envelope of every JSON reply.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

const (
	codeOK          = 0
	codeBadRequest  = 1001
	codeNotFound    = 1004
	codeInternal    = 5000
	codeUnavailable = 5003
)

func success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Code:    codeOK,
		Message: "success",
		Data:    data,
	})
}

func errorResponse(c *gin.Context, status, code int, message string) {
	c.JSON(status, Response{
		Code:    code,
		Message: message,
	})
}

// viewError maps analysis argument errors to 400 and everything else to 500.
func viewError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, analysis.ErrUnknownColumn),
		errors.Is(err, analysis.ErrUnknownMetric),
		errors.Is(err, analysis.ErrSameAxis):
		errorResponse(c, http.StatusBadRequest, codeBadRequest, err.Error())
	default:
		errorResponse(c, http.StatusInternalServerError, codeInternal, err.Error())
	}
}

// snapshot returns the current snapshot when every listed source loaded;
// otherwise it writes a 503 and returns nil.
func (s *Server) snapshot(c *gin.Context, sources ...pipeline.Source) *pipeline.Snapshot {
	snap := s.pipeline.Current()
	for _, src := range sources {
		if err := snap.Err(src); err != nil {
			errorResponse(c, http.StatusServiceUnavailable, codeUnavailable, err.Error())
			return nil
		}
	}
	return snap
}

type sourceStatus struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type healthResponse struct {
	LoadedAt      time.Time                        `json:"loadedAt"`
	ReferenceYear int                              `json:"referenceYear"`
	Degraded      bool                             `json:"degraded"`
	Sources       map[pipeline.Source]sourceStatus `json:"sources"`
}

func (s *Server) health(c *gin.Context) {
	snap := s.pipeline.Current()
	if snap == nil {
		errorResponse(c, http.StatusServiceUnavailable, codeUnavailable, pipeline.ErrNotLoaded.Error())
		return
	}
	resp := healthResponse{
		LoadedAt:      snap.LoadedAt,
		ReferenceYear: s.pipeline.ReferenceYear,
		Degraded:      snap.Degraded(),
		Sources:       map[pipeline.Source]sourceStatus{},
	}
	for _, src := range []pipeline.Source{pipeline.SourceCrime, pipeline.SourceCamera, pipeline.SourceHousehold, pipeline.SourceMerged} {
		st := sourceStatus{OK: true}
		if err := snap.Err(src); err != nil {
			st = sourceStatus{Error: err.Error()}
		}
		resp.Sources[src] = st
	}
	success(c, resp)
}

func (s *Server) crimeOptions(c *gin.Context) {
	snap := s.snapshot(c, pipeline.SourceCrime)
	if snap == nil {
		return
	}
	success(c, analysis.CrimeChoices(snap.Crime, snap.CrimeTypes))
}

func (s *Server) crime(c *gin.Context) {
	snap := s.snapshot(c, pipeline.SourceCrime)
	if snap == nil {
		return
	}
	year, crimeType, category := analysis.CrimeChoices(snap.Crime, snap.CrimeTypes).Defaults()
	if q := c.Query("year"); q != "" {
		y, err := strconv.Atoi(q)
		if err != nil {
			errorResponse(c, http.StatusBadRequest, codeBadRequest, "year must be an integer")
			return
		}
		year = y
	}
	if q := c.Query("type"); q != "" {
		crimeType = q
	}
	if q := c.Query("category"); q != "" {
		category = q
	}
	success(c, analysis.CrimeView(snap.Crime, year, crimeType, category))
}

func (s *Server) cameraYears(c *gin.Context) {
	snap := s.snapshot(c, pipeline.SourceCamera)
	if snap == nil {
		return
	}
	success(c, analysis.CameraYears(snap.Camera))
}

func (s *Server) camera(c *gin.Context) {
	snap := s.snapshot(c, pipeline.SourceCamera)
	if snap == nil {
		return
	}
	label := c.Query("year")
	if label == "" {
		if years := analysis.CameraYears(snap.Camera); len(years) > 0 {
			label = years[0]
		}
	}
	v, err := analysis.CameraView(snap.Camera, label)
	if err != nil {
		viewError(c, err)
		return
	}
	success(c, v)
}

func (s *Server) household(c *gin.Context) {
	snap := s.snapshot(c, pipeline.SourceHousehold)
	if snap == nil {
		return
	}
	v, err := analysis.HouseholdView(snap.Household, analysis.HouseholdMetric(c.Query("metric")))
	if err != nil {
		viewError(c, err)
		return
	}
	success(c, v)
}

func (s *Server) merged(c *gin.Context) {
	snap := s.snapshot(c, pipeline.SourceMerged)
	if snap == nil {
		return
	}
	success(c, snap.Merged)
}

func (s *Server) correlate(c *gin.Context) *analysis.Correlation {
	snap := s.snapshot(c, pipeline.SourceMerged)
	if snap == nil {
		return nil
	}
	year := snap.Merged.ReferenceYear
	x := c.DefaultQuery("x", dataset.CameraSummaryLabel(year))
	y := c.DefaultQuery("y", dataset.CrimeTotalLabel(year))
	corr, err := analysis.Correlate(snap.Merged, x, y)
	if err != nil {
		viewError(c, err)
		return nil
	}
	return corr
}

type correlationResponse struct {
	*analysis.Correlation
	Message string `json:"message"`
}

func (s *Server) correlation(c *gin.Context) {
	corr := s.correlate(c)
	if corr == nil {
		return
	}
	success(c, correlationResponse{Correlation: corr, Message: corr.Strength.Message()})
}

func (s *Server) correlationChart(c *gin.Context) {
	corr := s.correlate(c)
	if corr == nil {
		return
	}
	var buf bytes.Buffer
	if err := chart.Scatter(&buf, corr, chart.Size{Width: 900, Height: 600}); err != nil {
		errorResponse(c, http.StatusInternalServerError, codeInternal, err.Error())
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
