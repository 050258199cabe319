package sheets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surat-tugas/portal-api/pkg/config"
)

func feedBody(label string) string {
	return `x({"table":{"cols":[{"label":"` + label + `"}],"rows":[{"c":[{"v":"baris"}]}]}});`
}

func TestClientFetchAllJoinsFourFeeds(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(feedBody(r.URL.Path)))
	}))
	defer srv.Close()

	client := NewClient(config.SheetsConfig{
		TeacherURL:    srv.URL + "/pengajar",
		AssignmentURL: srv.URL + "/surat-tugas",
		ServiceLogURL: srv.URL + "/pelayanan",
		RequestURL:    srv.URL + "/permintaan",
	}, nil)

	set, err := client.FetchAll(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 4, atomic.LoadInt32(&calls))
	assert.Equal(t, []string{"/pengajar"}, set.Teachers.Headers)
	assert.Equal(t, []string{"/surat-tugas"}, set.Assignments.Headers)
	assert.Equal(t, []string{"/pelayanan"}, set.ServiceLog.Headers)
	assert.Equal(t, []string{"/permintaan"}, set.Requests.Headers)
}

func TestClientFetchAllFailsWhenAnyFeedFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/permintaan" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(feedBody(r.URL.Path)))
	}))
	defer srv.Close()

	client := NewClient(config.SheetsConfig{
		TeacherURL:    srv.URL + "/pengajar",
		AssignmentURL: srv.URL + "/surat-tugas",
		ServiceLogURL: srv.URL + "/pelayanan",
		RequestURL:    srv.URL + "/permintaan",
	}, nil)

	_, err := client.FetchAll(context.Background())
	assert.Error(t, err)
}

func TestClientFetchRequiresConfiguredURL(t *testing.T) {
	client := NewClient(config.SheetsConfig{}, nil)
	_, err := client.Fetch(context.Background(), FeedTeachers)
	assert.Error(t, err)
}

func TestClientFetchRejectsMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("tidak ada json di sini"))
	}))
	defer srv.Close()

	client := NewClient(config.SheetsConfig{TeacherURL: srv.URL}, nil)
	_, err := client.Fetch(context.Background(), FeedTeachers)
	assert.Error(t, err)
}
