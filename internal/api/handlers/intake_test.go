package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/vetlab-project/vetlab-server/internal/api/middleware"
	"github.com/vetlab-project/vetlab-server/internal/api/views"
	"github.com/vetlab-project/vetlab-server/internal/database"
	"github.com/vetlab-project/vetlab-server/internal/database/queries"
	"github.com/vetlab-project/vetlab-server/internal/models"
)

type testServer struct {
	router   *gin.Engine
	db       *database.DB
	requests *queries.RequestQueries
	users    *queries.UserQueries
	sessions *middleware.SessionManager
}

// newTestServer wires the full route table against an in-memory database,
// mirroring the setup in cmd/server.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect("", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate())

	requestQueries := queries.NewRequestQueries(db)
	userQueries := queries.NewUserQueries(db)
	sessions := middleware.NewSessionManager("test-secret")

	intakeHandler := NewIntakeHandler(requestQueries)
	requestsHandler := NewRequestsHandler(requestQueries)
	authHandler := NewAuthHandler(userQueries, sessions)
	staffHandler := NewStaffHandler(userQueries)

	router := gin.New()
	router.SetHTMLTemplate(views.Templates())

	router.GET("/", intakeHandler.ShowForm)
	router.POST("/solicitud", intakeHandler.Submit)
	router.GET("/login", authHandler.ShowLogin)
	router.POST("/login", authHandler.Login)
	router.GET("/logout", authHandler.Logout)

	staff := router.Group("/")
	staff.Use(sessions.RequireLogin())
	{
		staff.GET("/solicitudes", requestsHandler.List)
		staff.POST("/solicitudes/borrar", requestsHandler.Delete)

		admin := staff.Group("/")
		admin.Use(sessions.RequireAdmin())
		{
			admin.GET("/crear-vet", staffHandler.ShowCreateVet)
			admin.POST("/crear-vet", staffHandler.CreateVet)
		}
	}

	return &testServer{
		router:   router,
		db:       db,
		requests: requestQueries,
		users:    userQueries,
		sessions: sessions,
	}
}

func (ts *testServer) postForm(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func (ts *testServer) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func (ts *testServer) requestCount(t *testing.T) int {
	t.Helper()
	var count int
	require.NoError(t, ts.db.Get(&count, `SELECT COUNT(*) FROM solicitudes`))
	return count
}

func validForm() url.Values {
	return url.Values{
		"dueno_nombre":   {"Ana"},
		"dueno_telefono": {"555-1111"},
		"mascota_nombre": {"Rex"},
		"muestra_tipo":   {"sangre"},
		"direccion":      {"Calle 1"},
	}
}

func TestSubmitValidRequest(t *testing.T) {
	ts := newTestServer(t)

	before := time.Now().UTC()
	w := ts.postForm("/solicitud", validForm())
	after := time.Now().UTC()

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, ts.requestCount(t))

	records, err := ts.requests.ListRecent(1)
	require.NoError(t, err)
	rec := records[0]
	require.Equal(t, "Ana", rec.OwnerName)
	require.Equal(t, models.StatusPending, rec.Status)
	require.False(t, rec.CreatedAt.Before(before))
	require.False(t, rec.CreatedAt.After(after))
}

func TestSubmitMissingRequiredField(t *testing.T) {
	ts := newTestServer(t)

	form := validForm()
	form.Del("direccion")
	w := ts.postForm("/solicitud", form)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "dirección")
	require.Equal(t, 0, ts.requestCount(t))
}

func TestSubmitBlankAfterTrimIsMissing(t *testing.T) {
	ts := newTestServer(t)

	form := validForm()
	form.Set("dueno_nombre", "   ")
	w := ts.postForm("/solicitud", form)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, 0, ts.requestCount(t))
}

func TestSubmitLenientAgeParsing(t *testing.T) {
	ts := newTestServer(t)

	form := validForm()
	form.Set("mascota_edad", "viejito")
	w := ts.postForm("/solicitud", form)
	require.Equal(t, http.StatusOK, w.Code)

	records, err := ts.requests.ListRecent(1)
	require.NoError(t, err)
	require.Nil(t, records[0].PetAge)
}

func TestSubmitRejectsMalformedDate(t *testing.T) {
	ts := newTestServer(t)

	form := validForm()
	form.Set("fecha", "mañana")
	w := ts.postForm("/solicitud", form)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, 0, ts.requestCount(t))
}

func TestSubmitUnknownSampleTypeBecomesOther(t *testing.T) {
	ts := newTestServer(t)

	form := validForm()
	form.Set("muestra_tipo", "pelo")
	w := ts.postForm("/solicitud", form)
	require.Equal(t, http.StatusOK, w.Code)

	records, err := ts.requests.ListRecent(1)
	require.NoError(t, err)
	require.Equal(t, models.CategoryOther, records[0].SampleType)
	require.Equal(t, "pelo", records[0].SampleDetail)
}

func TestParseSubmissionOptionalFields(t *testing.T) {
	form := url.Values{
		"dueno_nombre":   {"Ana"},
		"dueno_telefono": {"555-1111"},
		"mascota_nombre": {"Rex"},
		"mascota_edad":   {"4"},
		"muestra_tipo":   {"orina"},
		"direccion":      {"Calle 1"},
		"fecha":          {"2026-09-15"},
	}

	req, verr := parseSubmission(form.Get)
	require.Nil(t, verr)
	require.NotNil(t, req.PetAge)
	require.Equal(t, 4, *req.PetAge)
	require.NotNil(t, req.PickupDate)
	require.Equal(t, "2026-09-15", *req.PickupDate)
}
