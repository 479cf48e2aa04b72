package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/foodgram-next/internal/config"

	"github.com/gin-gonic/gin"
)

// serve 挂载中间件与一个回显处理器后发起请求
func serve(t *testing.T, mw gin.HandlerFunc, method string, headers map[string]string, h gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw)
	if h == nil {
		h = func(c *gin.Context) { c.Status(http.StatusOK) }
	}
	r.Handle(method, "/target", h)

	req := httptest.NewRequest(method, "/target", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func envelopeCode(t *testing.T, w *httptest.ResponseRecorder) int {
	t.Helper()
	var body struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, w.Body.String())
	}
	return body.StatusCode
}

func TestResolveAllowedOrigin(t *testing.T) {
	cases := []struct {
		origin      string
		allowed     []string
		credentials bool
		want        string
	}{
		{"https://foodgram.example", []string{"*"}, false, "*"},
		{"https://foodgram.example", []string{"*"}, true, "https://foodgram.example"},
		{"https://b.foodgram.example", []string{"https://a.foodgram.example", "https://b.foodgram.example"}, false, "https://b.foodgram.example"},
		{"https://evil.example", []string{"https://a.foodgram.example"}, false, ""},
	}
	for _, tc := range cases {
		if got := resolveAllowedOrigin(tc.origin, tc.allowed, tc.credentials); got != tc.want {
			t.Fatalf("origin %s allowed %v: want %q got %q", tc.origin, tc.allowed, tc.want, got)
		}
	}
}

func TestCORSMiddlewarePreflight(t *testing.T) {
	mw := CORSMiddleware(config.CORSConfig{AllowedOrigins: []string{"https://foodgram.example"}})
	w := serve(t, mw, http.MethodOptions, map[string]string{"Origin": "https://foodgram.example"}, nil)

	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight want 204 got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://foodgram.example" {
		t.Fatalf("allow origin mismatch: %q", got)
	}
	if !strings.Contains(w.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition") {
		t.Fatalf("shopping list download needs Content-Disposition exposed")
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	echo := func(c *gin.Context) { c.String(http.StatusOK, getRequestID(c)) }

	w := serve(t, RequestIDMiddleware(), http.MethodGet, map[string]string{requestIDHeader: "req-123"}, echo)
	if w.Header().Get(requestIDHeader) != "req-123" || w.Body.String() != "req-123" {
		t.Fatalf("incoming id must be kept, header=%q body=%q", w.Header().Get(requestIDHeader), w.Body.String())
	}

	w = serve(t, RequestIDMiddleware(), http.MethodGet, map[string]string{requestIDHeader: strings.Repeat("x", 200)}, echo)
	if got := w.Body.String(); got == "" || len(got) > 128 {
		t.Fatalf("oversized id must be replaced, got %q", got)
	}

	w = serve(t, RequestIDMiddleware(), http.MethodGet, nil, echo)
	if w.Header().Get(requestIDHeader) == "" {
		t.Fatalf("missing id must be generated")
	}
}

func TestBearerToken(t *testing.T) {
	if got, err := bearerToken("Token abc.def", "Token", "Bearer"); err != nil || got != "abc.def" {
		t.Fatalf("Token scheme: got %q err=%v", got, err)
	}
	if got, err := bearerToken("  Bearer xyz ", "Token", "Bearer"); err != nil || got != "xyz" {
		t.Fatalf("Bearer scheme: got %q err=%v", got, err)
	}
	for _, header := range []string{"Token abc", "bearer abc", "Bearer", "Bearer   "} {
		if _, err := bearerToken(header, "Bearer"); err == nil {
			t.Fatalf("header %q should be rejected", header)
		}
	}
}

func TestAdminAuthWithoutSecretRejects(t *testing.T) {
	w := serve(t, JWTAuthMiddleware("", nil), http.MethodGet, nil, nil)
	if code := envelopeCode(t, w); code != 401 {
		t.Fatalf("want 401 got %d", code)
	}
}

func TestOptionalUserAuth(t *testing.T) {
	seen := func(c *gin.Context) {
		_, ok := c.Get("user_id")
		c.JSON(http.StatusOK, gin.H{"status_code": 0, "authenticated": ok})
	}
	mw := OptionalUserAuthMiddleware("secret", nil)

	w := serve(t, mw, http.MethodGet, nil, seen)
	if envelopeCode(t, w) != 0 || strings.Contains(w.Body.String(), `"authenticated":true`) {
		t.Fatalf("anonymous request must pass without user_id: %s", w.Body.String())
	}

	for _, header := range []string{"Basic abc", "Token not-a-jwt"} {
		w = serve(t, mw, http.MethodGet, map[string]string{"Authorization": header}, seen)
		if code := envelopeCode(t, w); code != 401 {
			t.Fatalf("header %q want 401 got %d", header, code)
		}
	}
}
