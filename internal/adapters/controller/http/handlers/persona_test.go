package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mozteach/teach-api/internal/adapters/config"
)

func personaApp(origins []string, debug bool) config.App {
	return config.App{
		Debug:          debug,
		PersonaOrigins: origins,
		Audience:       "https://teach.example.org",
	}
}

func (e *env) postPersona(t *testing.T, origin string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/persona/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if origin != "" {
		req.Header.Set("Origin", origin)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestPersonaRejectsMissingOrigin(t *testing.T) {
	e := newEnv(personaApp([]string{"http://example.org"}, false))

	rec := e.postPersona(t, "", url.Values{})
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "invalid origin", rec.Body.String())
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestPersonaRejectsUnlistedOrigin(t *testing.T) {
	e := newEnv(personaApp([]string{"http://example.org"}, false))

	rec := e.postPersona(t, "http://foo.com", url.Values{})
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "invalid origin", rec.Body.String())
}

func TestPersonaWildcardAllowedWhenDebugging(t *testing.T) {
	e := newEnv(personaApp([]string{"*"}, true))

	rec := e.postPersona(t, "http://foo.com", url.Values{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "assertion required", rec.Body.String())
}

func TestPersonaWildcardRejectedInProduction(t *testing.T) {
	e := newEnv(personaApp([]string{"*"}, false))

	rec := e.postPersona(t, "http://foo.com", url.Values{})
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "invalid origin", rec.Body.String())
}

func TestPersonaEchoesValidatedOrigin(t *testing.T) {
	e := newEnv(personaApp([]string{"http://example.org"}, false))

	// the echo is present even on failure paths past the origin check
	rec := e.postPersona(t, "http://example.org", url.Values{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "http://example.org", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestPersonaRequiresAssertion(t *testing.T) {
	e := newEnv(personaApp([]string{"http://example.org"}, false))

	rec := e.postPersona(t, "http://example.org", url.Values{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "assertion required", rec.Body.String())
}

func TestPersonaRejectsInvalidAssertion(t *testing.T) {
	e := newEnv(personaApp([]string{"http://example.org"}, false))
	e.verifier.email = "" // verified, but no email resolved

	rec := e.postPersona(t, "http://example.org", url.Values{"assertion": {"foo"}})
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "invalid assertion or email", rec.Body.String())
	require.Equal(t, "http://example.org", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestPersonaRejectsUnknownAccount(t *testing.T) {
	e := newEnv(personaApp([]string{"http://example.org"}, false))
	e.verifier.email = "stranger@example.org"

	rec := e.postPersona(t, "http://example.org", url.Values{"assertion": {"foo"}})
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "invalid assertion or email", rec.Body.String())
}

func TestPersonaIssuesTokenForExistingAccount(t *testing.T) {
	e := newEnv(personaApp([]string{"http://example.org"}, false))
	e.addUser("foo", "foo@example.org")
	e.verifier.email = "foo@example.org"

	rec := e.postPersona(t, "http://example.org", url.Values{"assertion": {"foo"}})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "http://example.org", rec.Header().Get("Access-Control-Allow-Origin"))

	var body map[string]string
	decodeJSON(t, rec, &body)
	require.Equal(t, "foo", body["username"])
	require.Regexp(t, "^[0-9a-f]+$", body["token"])
}
