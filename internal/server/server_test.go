package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nadzzz/nova/internal/skill"
)

type fakeDispatcher struct {
	outcome skill.Outcome
	stopped bool
}

func (d *fakeDispatcher) DispatchText(_ context.Context, text string, gated bool) (string, skill.Outcome) {
	if gated && !strings.Contains(text, "hey nova") {
		return "", skill.Unclaimed
	}
	return strings.TrimSpace(strings.ReplaceAll(text, "hey nova", "")), d.outcome
}

func (d *fakeDispatcher) Skills() []string {
	return []string{"exit", "time", "weather"}
}

func (d *fakeDispatcher) Stop() { d.stopped = true }

func postDispatch(t *testing.T, h http.Handler, body string) DispatchResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/dispatch", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp DispatchResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestDispatchEndpoint(t *testing.T) {
	d := &fakeDispatcher{outcome: skill.Handled}
	h := New(0, d).Handler()

	resp := postDispatch(t, h, `{"text": "hey nova what time is it", "gated": true}`)
	require.Equal(t, "what time is it", resp.Command)
	require.Equal(t, "handled", resp.Outcome)
	require.False(t, resp.SessionEnd)
	require.False(t, d.stopped)
}

func TestDispatchGateRejectsUnaddressedText(t *testing.T) {
	d := &fakeDispatcher{outcome: skill.Handled}
	h := New(0, d).Handler()

	resp := postDispatch(t, h, `{"text": "background chatter", "gated": true}`)
	require.Empty(t, resp.Command)
	require.Equal(t, "unclaimed", resp.Outcome)
}

func TestDispatchSessionEndStopsAssistant(t *testing.T) {
	d := &fakeDispatcher{outcome: skill.SessionEnd}
	h := New(0, d).Handler()

	resp := postDispatch(t, h, `{"text": "goodbye"}`)
	require.True(t, resp.SessionEnd)
	require.True(t, d.stopped)
}

func TestDispatchRejectsInvalidJSON(t *testing.T) {
	h := New(0, &fakeDispatcher{}).Handler()
	req := httptest.NewRequest(http.MethodPost, "/dispatch", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSkillsEndpoint(t *testing.T) {
	h := New(0, &fakeDispatcher{}).Handler()
	req := httptest.NewRequest(http.MethodGet, "/skills", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SkillsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, []string{"exit", "time", "weather"}, resp.Skills)
}

func TestHealthEndpoints(t *testing.T) {
	s := New(0, &fakeDispatcher{})
	h := s.Handler()

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	s.SetReady(true)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}
