package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"

	"github.com/KaramelBytes/districtlens-cli/internal/config"
	"github.com/KaramelBytes/districtlens-cli/internal/pipeline"
	"github.com/KaramelBytes/districtlens-cli/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, cfg *config.Global, load bool) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	p, err := pipeline.New(cfg, nil)
	require.NoError(t, err)
	if load {
		_, _ = p.Load()
	}
	return New(p, nil, true)
}

func get(t *testing.T, s *Server, target string) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	var resp Response
	if w.Header().Get("Content-Type") != "image/png" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body=%s", w.Body.String())
	}
	return w, resp
}

// decode re-marshals the envelope data into out.
func decode(t *testing.T, data any, out any) {
	t.Helper()
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, out))
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, testutil.Sources(t), true)
	w, resp := get(t, s, "/api/health")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, codeOK, resp.Code)

	var h struct {
		Degraded bool                    `json:"degraded"`
		Sources  map[string]sourceStatus `json:"sources"`
	}
	decode(t, resp.Data, &h)
	assert.False(t, h.Degraded)
	for _, src := range []string{"crime", "camera", "household", "merged"} {
		assert.True(t, h.Sources[src].OK, src)
	}
	assert.NotEmpty(t, w.Header().Get(headerRequestID))
}

func TestHealth_NotLoaded(t *testing.T) {
	s := newTestServer(t, testutil.Sources(t), false)
	w, resp := get(t, s, "/api/health")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, codeUnavailable, resp.Code)
}

func TestCrimeEndpoints(t *testing.T) {
	s := newTestServer(t, testutil.Sources(t), true)

	w, resp := get(t, s, "/api/crime/options")
	require.Equal(t, http.StatusOK, w.Code)
	var opts struct {
		Years      []int    `json:"years"`
		CrimeTypes []string `json:"crimeTypes"`
	}
	decode(t, resp.Data, &opts)
	assert.Equal(t, []int{2020, 2019}, opts.Years)
	assert.Equal(t, []string{"절도"}, opts.CrimeTypes)

	w, resp = get(t, s, "/api/crime?"+url.Values{"year": {"2020"}, "type": {"절도"}, "category": {"발생"}}.Encode())
	require.Equal(t, http.StatusOK, w.Code)
	var view struct {
		Rows []struct {
			District string   `json:"district"`
			Value    *float64 `json:"value"`
		} `json:"rows"`
	}
	decode(t, resp.Data, &view)
	require.Len(t, view.Rows, 3)
	assert.Equal(t, "강남구", view.Rows[0].District)
	assert.Equal(t, "송파구", view.Rows[2].District)
	assert.Nil(t, view.Rows[2].Value)

	w, resp = get(t, s, "/api/crime")
	require.Equal(t, http.StatusOK, w.Code)
	var def struct {
		Title string `json:"title"`
	}
	decode(t, resp.Data, &def)
	assert.Equal(t, "2020년 절도 (발생) 건수", def.Title)

	w, _ = get(t, s, "/api/crime?year=abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCameraEndpoints(t *testing.T) {
	s := newTestServer(t, testutil.Sources(t), true)

	w, resp := get(t, s, "/api/cctv/years")
	require.Equal(t, http.StatusOK, w.Code)
	var years []string
	decode(t, resp.Data, &years)
	assert.Equal(t, []string{"2020년", "2019년"}, years)

	w, resp = get(t, s, "/api/cctv")
	require.Equal(t, http.StatusOK, w.Code)
	var view struct {
		Rows []struct {
			District string  `json:"district"`
			Value    float64 `json:"value"`
		} `json:"rows"`
	}
	decode(t, resp.Data, &view)
	require.Len(t, view.Rows, 3)
	assert.Equal(t, "강남구", view.Rows[0].District)
	assert.Equal(t, 2000.0, view.Rows[0].Value)

	w, _ = get(t, s, "/api/cctv?"+url.Values{"year": {"1999년"}}.Encode())
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHouseholdEndpoint(t *testing.T) {
	s := newTestServer(t, testutil.Sources(t), true)
	w, _ := get(t, s, "/api/household?metric=ratio")
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = get(t, s, "/api/household?metric=median")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMergedAndCorrelation(t *testing.T) {
	s := newTestServer(t, testutil.Sources(t), true)

	w, resp := get(t, s, "/api/merged")
	require.Equal(t, http.StatusOK, w.Code)
	var merged struct {
		Rows []struct {
			District    string  `json:"district"`
			Cameras     float64 `json:"cameras"`
			TotalCrimes float64 `json:"totalCrimes"`
		} `json:"rows"`
	}
	decode(t, resp.Data, &merged)
	require.Len(t, merged.Rows, 3)

	w, resp = get(t, s, "/api/correlation")
	require.Equal(t, http.StatusOK, w.Code)
	var corr struct {
		R        *float64 `json:"r"`
		Strength string   `json:"strength"`
		Message  string   `json:"message"`
	}
	decode(t, resp.Data, &corr)
	require.NotNil(t, corr.R)
	assert.Equal(t, "strong", corr.Strength)
	assert.NotEmpty(t, corr.Message)

	w, _ = get(t, s, "/api/correlation?"+url.Values{"x": {"전체세대_합"}, "y": {"전체세대_합"}}.Encode())
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = get(t, s, "/api/chart/correlation.png")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))
}

func TestFailedSourceReturns503(t *testing.T) {
	cfg := testutil.Sources(t)
	require.NoError(t, os.Remove(cfg.HouseholdPath))
	s := newTestServer(t, cfg, true)

	w, resp := get(t, s, "/api/household")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, codeUnavailable, resp.Code)

	w, _ = get(t, s, "/api/merged")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	// independent sources keep working
	w, _ = get(t, s, "/api/cctv")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestIDIsEchoed(t *testing.T) {
	s := newTestServer(t, testutil.Sources(t), true)
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(headerRequestID, "abc-123")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(headerRequestID))
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, testutil.Sources(t), true)
	req := httptest.NewRequest(http.MethodOptions, "/api/merged", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
