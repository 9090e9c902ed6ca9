package payement

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func performPlaceOrder(t *testing.T, body any) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/purchase", bytes.NewReader(payload))
	c.Set("user_id", "user-1")
	c.Set("email", "user@example.com")

	PlaceOrder(c)
	return w
}

// La validation locale doit rejeter avant tout I/O : aucun client global
// n'est initialisé dans ce test, un appel réseau ou Redis paniquerait.
func TestPlaceOrderRejectsMissingFieldsBeforeAnyIO(t *testing.T) {
	w := performPlaceOrder(t, gin.H{
		"receiver": "",
		"address":  "12 rue des Lilas",
		"phone":    "0499123456",
		"items":    []gin.H{{"name": "Mug", "price": 350, "qty": 1}},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "please fill all required fields and add at least one product", resp["error"])
}

func TestPlaceOrderRejectsMalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/purchase", bytes.NewReader([]byte("{not json")))
	c.Set("user_id", "user-1")
	c.Set("email", "user@example.com")

	PlaceOrder(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlaceOrderRequiresAuthenticatedUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/purchase", bytes.NewReader([]byte("{}")))

	PlaceOrder(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
