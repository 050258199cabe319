package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surat-tugas/portal-api/pkg/config"
)

func newScriptRepo(url string) *ScriptRepository {
	return NewScriptRepository(config.ScriptConfig{URL: url, Timeout: 5 * time.Second}, nil)
}

func TestDeliverSucceedsOnJSONSuccess(t *testing.T) {
	var jsonCalls, formCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") == "application/json" {
			atomic.AddInt32(&jsonCalls, 1)
			var payload map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "update-permintaan", payload["action"])
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"success":true}`))
			return
		}
		atomic.AddInt32(&formCalls, 1)
	}))
	defer srv.Close()

	err := newScriptRepo(srv.URL).Deliver(context.Background(), map[string]string{"action": "update-permintaan"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, jsonCalls)
	assert.EqualValues(t, 0, formCalls, "verified primary success must not trigger the fallback")
}

func TestDeliverTreatsUnreadableResponseAsDispatched(t *testing.T) {
	var formCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			atomic.AddInt32(&formCalls, 1)
			return
		}
		// declare more bytes than are sent so the client cannot read the body
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Length", "512")
		_, _ = w.Write([]byte(`{"succ`))
	}))
	defer srv.Close()

	err := newScriptRepo(srv.URL).Deliver(context.Background(), map[string]string{"action": "updateProfil"})
	require.NoError(t, err)
	assert.EqualValues(t, 0, atomic.LoadInt32(&formCalls), "opaque response is success, no fallback attempt")
}

func TestDeliverSurfacesServerMessageThenFallsBack(t *testing.T) {
	var formCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") == "application/json" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"success":false,"message":"baris tidak ditemukan"}`))
			return
		}
		atomic.AddInt32(&formCalls, 1)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "update-permintaan", r.PostFormValue("action"))
	}))
	defer srv.Close()

	// fallback dispatch succeeds, so the overall delivery is optimistic success
	err := newScriptRepo(srv.URL).Deliver(context.Background(), map[string]string{"action": "update-permintaan"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&formCalls))
}

func TestDeliverNonJSONResponseUsesStatusClass(t *testing.T) {
	var formCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") == "application/json" {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html>ok</html>"))
			return
		}
		atomic.AddInt32(&formCalls, 1)
	}))
	defer srv.Close()

	err := newScriptRepo(srv.URL).Deliver(context.Background(), map[string]string{"k": "v"})
	require.NoError(t, err)
	assert.EqualValues(t, 0, atomic.LoadInt32(&formCalls))
}

func TestDeliverFailsWhenBothTransportsFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // immediately unreachable

	err := newScriptRepo(srv.URL).Deliver(context.Background(), map[string]string{"k": "v"})
	assert.Error(t, err)
}

func TestDeliverRequiresConfiguredEndpoint(t *testing.T) {
	err := newScriptRepo("").Deliver(context.Background(), nil)
	assert.Error(t, err)
}
