package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stormgis/internal/core/observability"
)

func TestProvider_ServesAppMetrics(t *testing.T) {
	p := Init()
	observability.Init(p.Registerer(), true)
	observability.ExposeBuildInfo("test")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	p.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d want 200", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "app_build_info") {
		t.Fatalf("missing app_build_info:\n%s", body)
	}
	if !strings.Contains(body, "go_goroutines") {
		t.Fatalf("missing runtime collectors:\n%s", body)
	}
}
