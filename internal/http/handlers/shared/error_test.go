package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/service"

	"github.com/gin-gonic/gin"
)

type keyedError struct {
	key  string
	args []interface{}
}

func (e keyedError) Error() string { return e.key }
func (e keyedError) Key() string { return e.key }
func (e keyedError) Args() []interface{} { return e.args }

type envelope struct {
	StatusCode int    `json:"status_code"`
	Msg        string `json:"msg"`
}

func serveMappedError(t *testing.T, err error, rules []MappedError, lang string) envelope {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		RespondWithMappedError(c, err, rules, response.CodeInternal, "error.internal_error")
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x?lang="+lang, nil)
	r.ServeHTTP(w, req)

	var resp envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	return resp
}

func TestRespondWithMappedErrorMatchesWrappedRule(t *testing.T) {
	rules := []MappedError{
		{Target: service.ErrRecipeNotFound, Code: response.CodeNotFound, Key: "error.recipe_not_found"},
	}
	resp := serveMappedError(t, fmt.Errorf("load: %w", service.ErrRecipeNotFound), rules, "en-US")
	if resp.StatusCode != response.CodeNotFound {
		t.Fatalf("status_code want 404 got %d", resp.StatusCode)
	}
	if resp.Msg != "Recipe not found" {
		t.Fatalf("unexpected msg: %s", resp.Msg)
	}
}

func TestRespondWithMappedErrorFallback(t *testing.T) {
	resp := serveMappedError(t, errors.New("boom"), nil, "en-US")
	if resp.StatusCode != response.CodeInternal {
		t.Fatalf("status_code want 500 got %d", resp.StatusCode)
	}
}

func TestRespondWithMappedErrorUsesLocalizedKey(t *testing.T) {
	err := keyedError{key: "error.validation_failed"}
	resp := serveMappedError(t, err, nil, "ru-RU")
	if resp.StatusCode != response.CodeBadRequest {
		t.Fatalf("status_code want 400 got %d", resp.StatusCode)
	}
	if resp.Msg != "Ошибка валидации" {
		t.Fatalf("unexpected msg: %s", resp.Msg)
	}
}

func TestConcatMappedErrors(t *testing.T) {
	a := []MappedError{{Target: service.ErrTagNotFound}}
	b := []MappedError{{Target: service.ErrIngredientNotFound}, {Target: service.ErrRecipeNotFound}}
	merged := ConcatMappedErrors(a, nil, b)
	if len(merged) != 3 {
		t.Fatalf("want 3 rules got %d", len(merged))
	}
	if merged[2].Target != service.ErrRecipeNotFound {
		t.Fatalf("rule order not preserved")
	}
}
