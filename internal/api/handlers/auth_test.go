package handlers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vetlab-project/vetlab-server/internal/api/middleware"
	"github.com/vetlab-project/vetlab-server/internal/models"
)

func loginForm(username, password string) url.Values {
	return url.Values{
		"usuario": {username},
		"clave":   {password},
	}
}

// login authenticates through the handler and returns the session cookie.
func (ts *testServer) login(t *testing.T, username, password string) *http.Cookie {
	t.Helper()
	w := ts.postForm("/login", loginForm(username, password))
	require.Equal(t, http.StatusSeeOther, w.Code)
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestLoginSuccessRedirectsToListing(t *testing.T) {
	ts := newTestServer(t)
	_, err := ts.users.Create("admin", "Administrador", "clave-admin", models.RoleAdmin)
	require.NoError(t, err)

	cookie := ts.login(t, "admin", "clave-admin")

	w := ts.get("/solicitudes", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Solicitudes recientes")
}

func TestLoginFailuresAreGeneric(t *testing.T) {
	ts := newTestServer(t)
	_, err := ts.users.Create("admin", "Administrador", "clave-admin", models.RoleAdmin)
	require.NoError(t, err)

	wrongPass := ts.postForm("/login", loginForm("admin", "incorrecta"))
	ghostUser := ts.postForm("/login", loginForm("fantasma", "loquesea"))

	require.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	require.Equal(t, http.StatusUnauthorized, ghostUser.Code)
	require.Equal(t, wrongPass.Body.String(), ghostUser.Body.String())
}

func TestProtectedRoutesRedirectWithoutSession(t *testing.T) {
	ts := newTestServer(t)

	w := ts.get("/solicitudes")
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))
}

func TestTamperedSessionCookieIsRejected(t *testing.T) {
	ts := newTestServer(t)
	_, err := ts.users.Create("admin", "Administrador", "clave-admin", models.RoleAdmin)
	require.NoError(t, err)

	cookie := ts.login(t, "admin", "clave-admin")
	cookie.Value += "tampered"

	w := ts.get("/solicitudes", cookie)
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))
}

func TestLogoutClearsSession(t *testing.T) {
	ts := newTestServer(t)
	_, err := ts.users.Create("admin", "Administrador", "clave-admin", models.RoleAdmin)
	require.NoError(t, err)

	cookie := ts.login(t, "admin", "clave-admin")

	w := ts.get("/logout", cookie)
	require.Equal(t, http.StatusSeeOther, w.Code)

	var cleared *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			cleared = c
		}
	}
	require.NotNil(t, cleared)
	require.Empty(t, cleared.Value)
}

func TestCreateVetRequiresAdminRole(t *testing.T) {
	ts := newTestServer(t)
	_, err := ts.users.Create("vet1", "Verónica", "clave-vet", models.RoleVet)
	require.NoError(t, err)

	cookie := ts.login(t, "vet1", "clave-vet")

	w := ts.get("/crear-vet", cookie)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminCreatesVetAccount(t *testing.T) {
	ts := newTestServer(t)
	_, err := ts.users.Create("admin", "Administrador", "clave-admin", models.RoleAdmin)
	require.NoError(t, err)

	cookie := ts.login(t, "admin", "clave-admin")

	w := ts.postForm("/crear-vet", url.Values{
		"usuario": {"vet1"},
		"nombre":  {"Verónica"},
		"clave":   {"clave-vet"},
	}, cookie)
	require.Equal(t, http.StatusSeeOther, w.Code)

	user, err := ts.users.GetByUsername("vet1")
	require.NoError(t, err)
	require.Equal(t, models.RoleVet, user.Role)
}

func TestCreateVetRejectsDuplicates(t *testing.T) {
	ts := newTestServer(t)
	_, err := ts.users.Create("admin", "Administrador", "clave-admin", models.RoleAdmin)
	require.NoError(t, err)
	_, err = ts.users.Create("vet1", "Verónica", "clave-vet", models.RoleVet)
	require.NoError(t, err)

	cookie := ts.login(t, "admin", "clave-admin")

	w := ts.postForm("/crear-vet", url.Values{
		"usuario": {"vet1"},
		"nombre":  {"Otra"},
		"clave":   {"otra-clave"},
	}, cookie)
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "ya existe")
}
