package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobwave/internal/auth"
	"github.com/justsurfingit/jobwave/internal/config"
	"github.com/justsurfingit/jobwave/internal/connector"
	"github.com/justsurfingit/jobwave/internal/models"
	"github.com/justsurfingit/jobwave/internal/services"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var (
	seeker   = auth.User{ID: auth.DemoSeekerID, Email: "jobseeker@jobwave.dev", FirstName: "Demo", LastName: "User", Role: models.RoleJobSeeker}
	employer = auth.User{ID: auth.DemoEmployerID, Email: "demo.employer@jobwave.dev", FirstName: "Demo", LastName: "Employer", Role: models.RoleEmployer}
)

type testApp struct {
	router   *gin.Engine
	sessions *auth.SessionStore
	conn     connector.Connector
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	ds, err := connector.LoadDemoDataset()
	require.NoError(t, err)
	conn, err := connector.NewMock(ds)
	require.NoError(t, err)

	log := zap.NewNop()
	cfg := &config.Config{
		Port:           8080,
		LogLevel:       "info",
		SessionTTL:     time.Hour,
		UploadDir:      t.TempDir(),
		MaxUploadBytes: 1 << 20,
		AllowedOrigins: []string{"*"},
		LoginRate:      3,
	}
	llm, err := services.NewLLMService(t.Context(), "", "", log)
	require.NoError(t, err)

	jobs := services.NewJobService(conn, log)
	applications := services.NewApplicationService(conn, log)
	sessions := auth.NewSessionStore(cfg.SessionTTL)
	d := &Deps{
		Config:       cfg,
		Log:          log,
		Conn:         conn,
		Shim:         auth.NewShim(),
		Sessions:     sessions,
		Jobs:         jobs,
		Applications: applications,
		Companies:    services.NewCompanyService(conn, log),
		Profiles:     services.NewProfileService(conn, log, cfg.UploadDir, cfg.MaxUploadBytes),
		Dashboard:    services.NewDashboardService(conn, jobs, applications),
		LLM:          llm,
	}
	return &testApp{router: NewRouter(d), sessions: sessions, conn: conn}
}

func (a *testApp) do(req *http.Request, user *auth.User) *httptest.ResponseRecorder {
	if user != nil {
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: a.sessions.Create(*user)})
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) get(path string, user *auth.User) *httptest.ResponseRecorder {
	return a.do(httptestGet(path), user)
}

func (a *testApp) postForm(path string, form url.Values, user *auth.User) *httptest.ResponseRecorder {
	return a.do(httptestPostForm(path, form), user)
}

func httptestGet(path string) *http.Request {
	return httptest.NewRequest(http.MethodGet, path, nil)
}

func httptestPostForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func (a *testApp) sendJSON(t *testing.T, method, path string, body any, user *auth.User) *httptest.ResponseRecorder {
	t.Helper()
	return a.do(jsonRequest(t, method, path, body), user)
}

func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func (a *testApp) upload(t *testing.T, path, field, filename string, content []byte, user *auth.User) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return a.do(req, user)
}

// jobID looks a posting up by title through the API.
func (a *testApp) jobID(t *testing.T, title string) uint {
	t.Helper()
	var resp struct {
		Jobs []struct {
			ID    uint   `json:"id"`
			Title string `json:"title"`
		} `json:"jobs"`
	}
	decode(t, a.get("/api/v1/jobs", &seeker), &resp)
	for _, j := range resp.Jobs {
		if j.Title == title {
			return j.ID
		}
	}
	t.Fatalf("no job titled %q", title)
	return 0
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

// flashOf returns the banner a response set, as "kind:message".
func flashOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == flashCookie {
			v, err := url.QueryUnescape(c.Value)
			require.NoError(t, err)
			return v
		}
	}
	return ""
}

func cookieOf(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
