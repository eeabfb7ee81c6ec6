package route_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"zlot/src-server/route"
)

func TestAuthRegisterLoginLogout(t *testing.T) {
	as := newTestAppState(t)
	muxer := http.NewServeMux()
	route.Auth(muxer, as)

	registerBody, _ := json.Marshal(map[string]string{
		"name":     "ala kowalska",
		"email":    "ala@example.com",
		"password": "hunter2",
	})
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(registerBody))
	recorder := httptest.NewRecorder()
	muxer.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("register status = %d, body = %s", recorder.Code, recorder.Body.String())
	}

	// duplicate email conflicts
	req = httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(registerBody))
	recorder = httptest.NewRecorder()
	muxer.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusConflict {
		t.Errorf("duplicate register status = %d, want 409", recorder.Code)
	}

	// wrong password
	badLoginBody, _ := json.Marshal(map[string]string{
		"email":    "ala@example.com",
		"password": "wrong",
	})
	req = httptest.NewRequest(http.MethodPost, "/auth", bytes.NewReader(badLoginBody))
	recorder = httptest.NewRecorder()
	muxer.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("bad login status = %d, want 401", recorder.Code)
	}

	// good login sets the session cookie
	loginBody, _ := json.Marshal(map[string]string{
		"email":    "ala@example.com",
		"password": "hunter2",
	})
	req = httptest.NewRequest(http.MethodPost, "/auth", bytes.NewReader(loginBody))
	recorder = httptest.NewRecorder()
	muxer.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", recorder.Code, recorder.Body.String())
	}
	var sessionSecret string
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == route.SessionSecretCookieName {
			sessionSecret = cookie.Value
		}
	}
	if sessionSecret == "" {
		t.Fatal("login response has no session cookie")
	}

	// logout invalidates the session
	req = httptest.NewRequest(http.MethodDelete, "/auth", nil)
	req.AddCookie(&http.Cookie{Name: route.SessionSecretCookieName, Value: sessionSecret})
	recorder = httptest.NewRecorder()
	muxer.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Errorf("logout status = %d", recorder.Code)
	}

	route.Calendar(muxer, as)
	req = httptest.NewRequest(http.MethodPost, "/calendar/get-occurrences", bytes.NewReader([]byte("{}")))
	req.AddCookie(&http.Cookie{Name: route.SessionSecretCookieName, Value: sessionSecret})
	recorder = httptest.NewRecorder()
	muxer.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("request with dead session status = %d, want 401", recorder.Code)
	}
}
