package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordShoppingListExport(t *testing.T) {
	before := testutil.ToFloat64(ShoppingListExportsTotal.WithLabelValues("ok"))
	RecordShoppingListExport("ok")
	after := testutil.ToFloat64(ShoppingListExportsTotal.WithLabelValues("ok"))
	if after != before+1 {
		t.Fatalf("export counter want %v got %v", before+1, after)
	}
}

func TestRecordImageCleanup(t *testing.T) {
	before := testutil.ToFloat64(ImageCleanupTotal.WithLabelValues("error"))
	RecordImageCleanup("error")
	if got := testutil.ToFloat64(ImageCleanupTotal.WithLabelValues("error")); got != before+1 {
		t.Fatalf("cleanup error counter want %v got %v", before+1, got)
	}
}

func TestGinMiddlewareUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/recipes/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/metrics", Handler())

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/recipes/:id", "204"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recipes/42", nil))
	if got := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/recipes/:id", "204")); got != before+1 {
		t.Fatalf("request counter want %v got %v", before+1, got)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("metrics status want 200 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "foodgram_http_requests_total") {
		t.Fatalf("metrics output should contain request counter")
	}
}
