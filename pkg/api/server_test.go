package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	json "github.com/goccy/go-json"

	"github.com/umonteiro/toric/pkg/solver"
)

func testServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	s := NewServer(Config{
		Store:  NewMemoryStore(),
		Runner: solver.NewRunner(nil, nil, logger),
		Logger: logger,
	})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func cubicRequest() solver.Options {
	return solver.Options{
		Matrix: [][]int{
			{1, 1, 1, 1},
			{0, 1, 2, 3},
		},
		Generators: [][]int{
			{-1, 2, -1, 0},
			{-1, 1, 1, -1},
		},
	}
}

func postJob(t *testing.T, ts *httptest.Server, opts solver.Options) Job {
	t.Helper()
	body, err := json.Marshal(opts)
	if err != nil {
		t.Fatalf("marshal options: %v", err)
	}
	resp, err := http.Post(ts.URL+"/v1/jobs", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /v1/jobs: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("POST /v1/jobs status = %d, want 202", resp.StatusCode)
	}
	var job Job
	if err := json.NewDecoder(resp.Body).Decode(&job); err != nil {
		t.Fatalf("decode job: %v", err)
	}
	if job.ID == "" {
		t.Fatal("job ID should not be empty")
	}
	return job
}

func waitForJob(t *testing.T, ts *httptest.Server, id string) Job {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(ts.URL + "/v1/jobs/" + id)
		if err != nil {
			t.Fatalf("GET job: %v", err)
		}
		var job Job
		err = json.NewDecoder(resp.Body).Decode(&job)
		resp.Body.Close()
		if err != nil {
			t.Fatalf("decode job: %v", err)
		}
		if job.Status == StatusDone || job.Status == StatusFailed {
			return job
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("job did not finish in time")
	return Job{}
}

func TestHealthz(t *testing.T) {
	_, ts := testServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	var payload map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["status"] != "ok" {
		t.Errorf("status field = %q, want ok", payload["status"])
	}
}

func TestJobLifecycle(t *testing.T) {
	_, ts := testServer(t)

	created := postJob(t, ts, cubicRequest())
	if created.Status != StatusPending {
		t.Errorf("created status = %s, want pending", created.Status)
	}

	job := waitForJob(t, ts, created.ID)
	if job.Status != StatusDone {
		t.Fatalf("job status = %s (%s), want done", job.Status, job.Error)
	}
	if job.Result == nil {
		t.Fatal("done job should carry a result")
	}

	want := [][]int{
		{-1, 1, 1, -1},
		{-1, 2, -1, 0},
		{0, -1, 2, -1},
	}
	if !reflect.DeepEqual(job.Result.Vectors, want) {
		t.Errorf("vectors = %v, want %v", job.Result.Vectors, want)
	}
}

// The accepted-job response is encoded while the background run is
// already updating status; the handler must hand the run its own copy.
func TestCreateJobResponseDetachedFromRun(t *testing.T) {
	_, ts := testServer(t)

	created := make([]Job, 0, 8)
	for i := 0; i < 8; i++ {
		created = append(created, postJob(t, ts, cubicRequest()))
	}
	for _, job := range created {
		if job.Status != StatusPending {
			t.Errorf("created status = %s, want pending", job.Status)
		}
		if got := waitForJob(t, ts, job.ID); got.Status != StatusDone {
			t.Errorf("job %s status = %s (%s), want done", job.ID, got.Status, got.Error)
		}
	}
}

// deadlineStore rejects writes once the context is done, the way a real
// database driver would.
type deadlineStore struct{ *MemoryStore }

func (s *deadlineStore) Put(ctx context.Context, job *Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.MemoryStore.Put(ctx, job)
}

// A job that fails because its run context expired must still reach a
// terminal state in the store.
func TestTimedOutJobReachesFailed(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	s := NewServer(Config{
		Store:      &deadlineStore{NewMemoryStore()},
		Runner:     solver.NewRunner(nil, nil, logger),
		Logger:     logger,
		JobTimeout: time.Nanosecond,
	})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	created := postJob(t, ts, cubicRequest())
	job := waitForJob(t, ts, created.ID)
	if job.Status != StatusFailed {
		t.Fatalf("job status = %s, want failed", job.Status)
	}
	if job.Error == "" {
		t.Error("failed job should carry the run error")
	}
}

func TestGetBasis(t *testing.T) {
	_, ts := testServer(t)

	created := postJob(t, ts, cubicRequest())
	waitForJob(t, ts, created.ID)

	// JSON by default
	resp, err := http.Get(ts.URL + "/v1/jobs/" + created.ID + "/basis")
	if err != nil {
		t.Fatalf("GET basis: %v", err)
	}
	var payload struct {
		Vectors [][]int `json:"vectors"`
	}
	err = json.NewDecoder(resp.Body).Decode(&payload)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("decode basis: %v", err)
	}
	if len(payload.Vectors) != 3 {
		t.Errorf("vectors = %d, want 3", len(payload.Vectors))
	}

	// 4ti2 text on request
	resp, err = http.Get(ts.URL + "/v1/jobs/" + created.ID + "/basis?format=4ti2")
	if err != nil {
		t.Fatalf("GET basis text: %v", err)
	}
	text, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("read basis text: %v", err)
	}
	want := "3 4\n-1 1 1 -1\n-1 2 -1 0\n0 -1 2 -1\n"
	if string(text) != want {
		t.Errorf("basis text = %q, want %q", text, want)
	}
}

func TestGetBasisNotDone(t *testing.T) {
	s, ts := testServer(t)

	// A job stuck in pending, stored directly.
	job := &Job{ID: "pending-job", Status: StatusPending, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	if err := s.store.Put(context.Background(), job); err != nil {
		t.Fatalf("put job: %v", err)
	}

	resp, err := http.Get(ts.URL + "/v1/jobs/pending-job/basis")
	if err != nil {
		t.Fatalf("GET basis: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("status = %d, want 409", resp.StatusCode)
	}
	var payload errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if payload.Code != "JOB_NOT_DONE" {
		t.Errorf("code = %s, want JOB_NOT_DONE", payload.Code)
	}
}

func TestCreateJobInvalid(t *testing.T) {
	_, ts := testServer(t)

	// Missing matrix
	resp, err := http.Post(ts.URL+"/v1/jobs", "application/json", bytes.NewReader([]byte(`{}`)))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}

	// Malformed JSON
	resp2, err := http.Post(ts.URL+"/v1/jobs", "application/json", bytes.NewReader([]byte(`{not json`)))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp2.StatusCode)
	}

	// Ragged matrix passes validation but fails problem construction
	bad := solver.Options{Matrix: [][]int{{1, 2, 3}, {4, 5}}}
	body, _ := json.Marshal(bad)
	resp3, err := http.Post(ts.URL+"/v1/jobs", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp3.Body.Close()
	if resp3.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp3.StatusCode)
	}
}

func TestCreateJobNamed(t *testing.T) {
	_, ts := testServer(t)

	body := []byte(`{"name":"cubic","matrix":[[1,1,1,1],[0,1,2,3]]}`)
	resp, err := http.Post(ts.URL+"/v1/jobs", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", resp.StatusCode)
	}
	var job Job
	if err := json.NewDecoder(resp.Body).Decode(&job); err != nil {
		t.Fatalf("decode job: %v", err)
	}
	if job.Name != "cubic" {
		t.Errorf("job name = %q, want cubic", job.Name)
	}
}

func TestCreateJobBadName(t *testing.T) {
	_, ts := testServer(t)

	body := []byte(`{"name":"../escape","matrix":[[1,1]]}`)
	resp, err := http.Post(ts.URL+"/v1/jobs", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	var payload errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if payload.Code != "INVALID_INPUT" {
		t.Errorf("code = %s, want INVALID_INPUT", payload.Code)
	}
}

func TestGetJobNotFound(t *testing.T) {
	_, ts := testServer(t)

	resp, err := http.Get(ts.URL + "/v1/jobs/nope")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
	var payload errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if payload.Code != "JOB_NOT_FOUND" {
		t.Errorf("code = %s, want JOB_NOT_FOUND", payload.Code)
	}
}

func TestDeleteJob(t *testing.T) {
	_, ts := testServer(t)

	created := postJob(t, ts, cubicRequest())
	waitForJob(t, ts, created.ID)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/v1/jobs/"+created.ID, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want 204", resp.StatusCode)
	}

	resp2, err := http.Get(ts.URL + "/v1/jobs/" + created.ID)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusNotFound {
		t.Errorf("status after delete = %d, want 404", resp2.StatusCode)
	}
}

func TestListJobs(t *testing.T) {
	_, ts := testServer(t)

	created := postJob(t, ts, cubicRequest())
	waitForJob(t, ts, created.ID)

	resp, err := http.Get(ts.URL + "/v1/jobs")
	if err != nil {
		t.Fatalf("GET /v1/jobs: %v", err)
	}
	defer resp.Body.Close()
	var payload struct {
		Jobs []Job `json:"jobs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(payload.Jobs) != 1 {
		t.Fatalf("jobs = %d, want 1", len(payload.Jobs))
	}
	if payload.Jobs[0].ID != created.ID {
		t.Errorf("job ID = %s, want %s", payload.Jobs[0].ID, created.ID)
	}

	// Bad limit is rejected
	resp2, err := http.Get(ts.URL + "/v1/jobs?limit=zero")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp2.StatusCode)
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	// Missing job is nil, nil
	job, err := s.Get(ctx, "none")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if job != nil {
		t.Error("missing job should be nil")
	}

	// Put then Get returns a copy
	orig := &Job{ID: "a", Status: StatusPending, CreatedAt: time.Now()}
	if err := s.Put(ctx, orig); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	got, err := s.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	got.Status = StatusFailed
	again, _ := s.Get(ctx, "a")
	if again.Status != StatusPending {
		t.Error("mutating a returned job should not affect the store")
	}

	// List newest first
	older := &Job{ID: "b", Status: StatusDone, CreatedAt: time.Now().Add(-time.Hour)}
	if err := s.Put(ctx, older); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	jobs, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(jobs) != 2 || jobs[0].ID != "a" || jobs[1].ID != "b" {
		t.Errorf("List order wrong: %v, %v", jobs[0].ID, jobs[1].ID)
	}
	limited, err := s.List(ctx, 1)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("List limit = %d jobs, want 1", len(limited))
	}

	// Delete is idempotent
	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatalf("second Delete error: %v", err)
	}
}
