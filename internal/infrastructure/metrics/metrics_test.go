package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorder_Observe(t *testing.T) {
	r := NewRecorder()
	r.Observe("reconcile", nil, time.Second)
	r.Observe("reconcile", errors.New("boom"), time.Second)
	r.Observe("reconcile", nil, time.Second)

	if got := testutil.ToFloat64(r.operations.WithLabelValues("reconcile", "ok")); got != 2 {
		t.Errorf("ok count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.operations.WithLabelValues("reconcile", "error")); got != 1 {
		t.Errorf("error count = %v, want 1", got)
	}

	r.SetRecords(3, 1, 0)
	r.SetCandidates("IPv4", 3)
	r.Finish(time.Unix(100, 0), nil)
	if got := testutil.ToFloat64(r.records.WithLabelValues("created")); got != 3 {
		t.Errorf("created = %v", got)
	}
	if got := testutil.ToFloat64(r.success); got != 1 {
		t.Errorf("success = %v", got)
	}
}

func TestRecorder_Push(t *testing.T) {
	var method, path, body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		method, path = req.Method, req.URL.Path
		data, _ := io.ReadAll(req.Body)
		body = string(data)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	r := NewRecorder()
	r.Finish(time.Now(), errors.New("failed"))
	if err := r.Push(context.Background(), srv.URL, "ipsync", "hk"); err != nil {
		t.Fatalf("Push() error = %v", err)
	}
	if method != http.MethodPut {
		t.Errorf("method = %s, want PUT", method)
	}
	if path != "/metrics/job/ipsync/group/hk" {
		t.Errorf("path = %s", path)
	}
	if body == "" || strings.Contains(body, "<html") {
		t.Errorf("unexpected body %q", body)
	}
}
