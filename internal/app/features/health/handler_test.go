package health_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dalemusser/floodrelief/internal/app/features/health"
	"github.com/dalemusser/floodrelief/internal/app/system/floodapi"
	"github.com/dalemusser/floodrelief/internal/testutil"
	"go.uber.org/zap"
)

type healthBody struct {
	Status  string `json:"status"`
	API     string `json:"api"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func newClient(t *testing.T, api *testutil.FakeAPI) *floodapi.Client {
	t.Helper()
	c, err := floodapi.New(floodapi.Config{BaseURL: api.URL, APIKey: testutil.TestAPIKey}, zap.NewNop())
	if err != nil {
		t.Fatalf("floodapi.New() error = %v", err)
	}
	return c
}

func serve(t *testing.T, h *health.Handler) (*testutil.ResponseRecorder, healthBody) {
	t.Helper()
	rec := testutil.Get(http.HandlerFunc(h.Serve), "/health")

	var body healthBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	return rec, body
}

func TestServe_APIReachable(t *testing.T) {
	api := testutil.NewFakeAPI(t, testutil.ServeEnvelope(testutil.Envelope(nil, nil, 0, 0, 1, 0)))
	h := health.NewHandler(newClient(t, api), zap.NewNop())

	rec, body := serve(t, h)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertHeader(t, "Content-Type", "application/json")
	if body.Status != "ok" || body.API != "reachable" {
		t.Errorf("body = %+v, want ok/reachable", body)
	}
}

func TestServe_APIFailing(t *testing.T) {
	api := testutil.NewFakeAPI(t, testutil.ServeError(http.StatusBadGateway, "upstream down"))
	h := health.NewHandler(newClient(t, api), zap.NewNop())

	rec, body := serve(t, h)

	rec.AssertStatus(t, http.StatusServiceUnavailable)
	if body.Status != "error" || body.API != "unreachable" {
		t.Errorf("body = %+v, want error/unreachable", body)
	}
	if body.Error != "upstream down" {
		t.Errorf("error: got %q, want %q", body.Error, "upstream down")
	}
}
