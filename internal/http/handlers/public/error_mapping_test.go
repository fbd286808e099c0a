package public

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/forkful/forkful/internal/service"

	"github.com/gin-gonic/gin"
)

func decodeErrorResponse(t *testing.T, w *httptest.ResponseRecorder) (int, string) {
	t.Helper()
	var resp struct {
		StatusCode int    `json:"status_code"`
		Msg        string `json:"msg"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	return resp.StatusCode, resp.Msg
}

func TestRespondWithMappedErrorMatchesRule(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/cart/items", nil)

	respondWithMappedError(c, service.ErrProductNotFound, cartItemErrorRules, 500, "error.order_update_failed")

	code, msg := decodeErrorResponse(t, w)
	if code != 404 {
		t.Fatalf("status_code want 404 got %d", code)
	}
	if msg != "error.product_not_found" {
		t.Fatalf("msg want error.product_not_found got %s", msg)
	}
}

func TestRespondWithMappedErrorMatchesWrappedError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/orders", nil)

	wrapped := fmt.Errorf("place order: %w", service.ErrCartEmpty)
	respondPlaceOrderError(c, wrapped)

	code, msg := decodeErrorResponse(t, w)
	if code != 400 {
		t.Fatalf("status_code want 400 got %d", code)
	}
	if msg != "error.cart_empty" {
		t.Fatalf("msg want error.cart_empty got %s", msg)
	}
}

func TestRespondCartErrorFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/cart/items", nil)

	respondCartError(c, errors.New("db gone"))

	code, msg := decodeErrorResponse(t, w)
	if code != 500 {
		t.Fatalf("status_code want 500 got %d", code)
	}
	if msg != "error.order_update_failed" {
		t.Fatalf("msg want error.order_update_failed got %s", msg)
	}
}

func TestConcatMappedHandlerErrors(t *testing.T) {
	merged := concatMappedHandlerErrors(cartItemErrorRules, orderMutationErrorRules)
	if len(merged) != len(cartItemErrorRules)+len(orderMutationErrorRules) {
		t.Fatalf("merged rules want %d got %d", len(cartItemErrorRules)+len(orderMutationErrorRules), len(merged))
	}
	if merged[0].key != cartItemErrorRules[0].key {
		t.Fatalf("merged rules should preserve order")
	}
}
