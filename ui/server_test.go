package ui

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heartrisk/domain/encoding"
	"heartrisk/domain/risk"
	"heartrisk/internal/config"
	"heartrisk/internal/report"
)

type stubClassifier struct {
	label int
	p     float64
}

func (s *stubClassifier) Classify(row encoding.FeatureVector) (int, error) {
	return s.label, nil
}

func (s *stubClassifier) EstimateProbability(row encoding.FeatureVector) (float64, error) {
	return s.p, nil
}

func newTestServer(t *testing.T, classifier *stubClassifier) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server: config.ServerConfig{Port: "0", GinMode: gin.TestMode},
		Delays: config.DelayConfig{},
	}
	// The embed root lives at the module root; tests run from ui/.
	server, err := NewServer(cfg, classifier, os.DirFS(".."))
	require.NoError(t, err)
	return server
}

func validForm() url.Values {
	return url.Values{
		"age":      {"63"},
		"trestbps": {"145"},
		"chol":     {"233"},
		"thalach":  {"150"},
		"oldpeak":  {"2.3"},
		"sex":      {"Male"},
		"cp":       {"Typical Angina"},
		"fbs":      {"True"},
		"restecg":  {"Normal"},
		"exercise": {"No pain"},
		"slope":    {"Downsloping"},
		"ca":       {"Normal"},
		"thal":     {"Fixed Defect"},
	}
}

func postForm(server *Server, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)
	return w
}

func TestHandleIndex(t *testing.T) {
	server := newTestServer(t, &stubClassifier{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Predict Heart Disease Risk")
	assert.Contains(t, body, `name="age"`)
	assert.Contains(t, body, "Typical Angina")
}

func TestHandlePredict_PositiveVerdict(t *testing.T) {
	server := newTestServer(t, &stubClassifier{label: 1, p: 0.87})

	w := postForm(server, validForm())
	assert.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "may have heart disease")
	assert.NotContains(t, body, "not likely")
	assert.Contains(t, body, "87.00%")
	assert.Contains(t, body, "/report/")
}

func TestHandlePredict_NegativeVerdict(t *testing.T) {
	server := newTestServer(t, &stubClassifier{label: 0, p: 0.12})

	w := postForm(server, validForm())
	assert.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "not likely to have heart disease")
	assert.Contains(t, body, "12.00%")
}

func TestHandlePredict_TamperedCategoricalRejected(t *testing.T) {
	server := newTestServer(t, &stubClassifier{label: 0, p: 0.12})

	form := validForm()
	form.Set("thal", "Definitely Fine")
	w := postForm(server, form)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "thalassemia")
}

func TestHandlePredict_OutOfBoundsAgeRejected(t *testing.T) {
	server := newTestServer(t, &stubClassifier{})

	form := validForm()
	form.Set("age", "121")
	w := postForm(server, form)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "age")
}

var reportLinkPattern = regexp.MustCompile(`/report/([0-9a-f-]+)/csv`)

func reportFixture() report.Report {
	rep, err := report.Build(
		encoding.FeatureVector{63, 145, 233, 150, 2.3, 1, 3, 1, 1, 0, 0, 0, 0},
		risk.Result{Label: 1, Probability: 0.76543},
	)
	if err != nil {
		panic(err)
	}
	return rep
}

func TestReportDownload_CSV(t *testing.T) {
	server := newTestServer(t, &stubClassifier{label: 1, p: 0.76543})

	w := postForm(server, validForm())
	require.Equal(t, http.StatusOK, w.Code)

	match := reportLinkPattern.FindStringSubmatch(w.Body.String())
	require.Len(t, match, 2, "result page must link the CSV download")

	req := httptest.NewRequest(http.MethodGet, "/report/"+match[1]+"/csv", nil)
	dl := httptest.NewRecorder()
	server.Router().ServeHTTP(dl, req)

	assert.Equal(t, http.StatusOK, dl.Code)
	assert.Equal(t, "text/csv", dl.Header().Get("Content-Type"))
	assert.Contains(t, dl.Header().Get("Content-Disposition"), "heart_risk_report.csv")

	lines := strings.Split(strings.TrimSpace(dl.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "age,trestbps,chol,thalach,oldpeak,encoded_sex,encoded_cp,encoded_fbs,encoded_restecg,encoded_exang,encoded_slope,encoded_ca,encoded_thal,prediction,risk_percent", strings.TrimSpace(lines[0]))
	assert.Equal(t, "63,145,233,150,2.3,1,3,1,1,0,0,0,0,1,76.54", strings.TrimSpace(lines[1]))
}

func TestReportDownload_XLSXOfferedAndUnknownIDRejected(t *testing.T) {
	server := newTestServer(t, &stubClassifier{label: 0, p: 0.3})

	w := postForm(server, validForm())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/xlsx")

	req := httptest.NewRequest(http.MethodGet, "/report/not-a-real-id/csv", nil)
	dl := httptest.NewRecorder()
	server.Router().ServeHTTP(dl, req)
	assert.Equal(t, http.StatusNotFound, dl.Code)
}

func TestHandleAbout(t *testing.T) {
	server := newTestServer(t, &stubClassifier{})

	req := httptest.NewRequest(http.MethodGet, "/about", nil)
	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "About this predictor")
}

func TestReportStore_Expiry(t *testing.T) {
	store := newReportStore()
	id := store.Put(reportFixture())

	got, ok := store.Get(id)
	require.True(t, ok)
	assert.Equal(t, reportFixture(), got)

	entry := store.entries[id]
	entry.createdAt = time.Now().Add(-reportTTL - time.Minute)
	store.entries[id] = entry

	_, ok = store.Get(id)
	assert.False(t, ok, "expired reports must not be served")
}
