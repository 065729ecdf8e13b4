package server_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alkime/dictate/internal/config"
	"github.com/alkime/dictate/internal/profile"
	"github.com/alkime/dictate/internal/server"
	"github.com/alkime/dictate/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeController records which actions were invoked and can be primed to
// fail.
type fakeController struct {
	machine *state.Machine
	err     error
	actions []string
}

func (f *fakeController) StartRecording(context.Context) error {
	return f.invoke("start", state.StartRecording{})
}

func (f *fakeController) StopRecording(context.Context) error {
	return f.invoke("stop", state.StopRecording{RecordingPath: "rec.mp3"})
}

func (f *fakeController) ToggleRecording(ctx context.Context) error {
	if f.machine.IsRecording() {
		return f.StopRecording(ctx)
	}

	return f.StartRecording(ctx)
}

func (f *fakeController) CancelRecording() error {
	return f.invoke("cancel", state.CancelRecording{})
}

func (f *fakeController) Reset() error {
	return f.invoke("reset", state.Reset{})
}

func (f *fakeController) invoke(action string, event state.AppEvent) error {
	f.actions = append(f.actions, action)

	if f.err != nil {
		return f.err
	}

	return f.machine.ProcessEvent(event)
}

func newTestServer(t *testing.T) (*server.Server, *fakeController, *state.Machine) {
	t.Helper()

	dir := t.TempDir()

	profiles, err := profile.NewManager(profile.NewStore(filepath.Join(dir, "profiles.json")), "default")
	require.NoError(t, err)

	machine := state.NewMachine()
	ctrl := &fakeController{machine: machine}

	cfg := &config.Config{
		Env:           "test",
		LogLevel:      "info",
		ControlAddr:   "127.0.0.1",
		ControlPort:   "4817",
		ActiveProfile: "default",
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))

	recordings := filepath.Join(dir, "recordings")
	require.NoError(t, os.MkdirAll(recordings, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(recordings, "20260101-120000.mp3"), []byte("mp3"), 0o644))

	return server.New(cfg, logger, machine, profiles, ctrl, recordings), ctrl, machine
}

func TestHealthEndpoint(t *testing.T) {
	srv, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
	assert.Contains(t, w.Body.String(), "dictate")
}

func TestStatusEndpoint(t *testing.T) {
	srv, _, machine := newTestServer(t)
	require.NoError(t, machine.ProcessEvent(state.StartRecording{}))

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()

	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"state":"Recording"`)
	assert.Contains(t, w.Body.String(), `"recording":true`)
	assert.Contains(t, w.Body.String(), `"activeProfile":"default"`)
}

func TestProfilesEndpoint(t *testing.T) {
	srv, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/profiles", nil)
	w := httptest.NewRecorder()

	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"active":"default"`)
	assert.Contains(t, w.Body.String(), `"id":"raw"`)
}

func TestCommandEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		action     string
		wantStatus int
		wantState  string
	}{
		{name: "start begins recording", action: "start", wantStatus: http.StatusOK, wantState: "Recording"},
		{name: "toggle begins recording", action: "toggle", wantStatus: http.StatusOK, wantState: "Recording"},
		{name: "reset is always accepted", action: "reset", wantStatus: http.StatusOK, wantState: "Idle(visible=true)"},
		{name: "unknown action rejected", action: "jump", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _, machine := newTestServer(t)

			body := strings.NewReader(`{"action":"` + tt.action + `"}`)
			req := httptest.NewRequest(http.MethodPost, "/command", body)
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			srv.Router().ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantState != "" {
				assert.Equal(t, tt.wantState, machine.Current().String())
			}
		})
	}
}

func TestCommandEndpointConflict(t *testing.T) {
	srv, ctrl, _ := newTestServer(t)
	ctrl.err = errors.New("microphone unavailable")

	body := strings.NewReader(`{"action":"start"}`)
	req := httptest.NewRequest(http.MethodPost, "/command", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "microphone unavailable")
}

func TestCommandEndpointBadBody(t *testing.T) {
	srv, ctrl, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/command", strings.NewReader("not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, ctrl.actions)
}

func TestRecordingsAreServed(t *testing.T) {
	srv, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/recordings/20260101-120000.mp3", nil)
	w := httptest.NewRecorder()

	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "mp3", w.Body.String())
}
