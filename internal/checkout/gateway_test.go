package checkout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"giftwrap_back_end/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitiateEmbeddedSendsFullPayload(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/order", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]string{"url": "https://pay.example/abc"})
	}))
	defer srv.Close()

	g := &Gateway{BaseURL: srv.URL, Mode: ModeEmbedded, Client: srv.Client()}
	a := NewAttempt("u1", "alice@test.com", ModeEmbedded,
		"Alice", "123 St", "555-0100", "",
		[]models.CartItem{{Name: "Mug", Price: 200, Qty: 1}})

	url, err := g.Initiate(context.Background(), a)
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/abc", url)

	assert.Equal(t, 200.0, got["total"])
	assert.Equal(t, "Alice", got["receiver"])
	assert.Equal(t, "alice@test.com", got["userEmail"])
	assert.Equal(t, "u1", got["userId"])
	assert.NotEmpty(t, got["token"])
	require.NotNil(t, got["items"], "le mode embedded transmet les articles")
	items := got["items"].([]any)
	require.Len(t, items, 1)
}

func TestInitiateExternalOmitsItems(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/order/init", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]string{"url": "https://pay.example/ext"})
	}))
	defer srv.Close()

	g := &Gateway{BaseURL: srv.URL, Mode: ModeExternal, Client: srv.Client()}
	a := NewAttempt("u1", "alice@test.com", ModeExternal,
		"Alice", "123 St", "555-0100", "",
		[]models.CartItem{{Name: "Mug", Price: 200, Qty: 1}})

	url, err := g.Initiate(context.Background(), a)
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/ext", url)

	_, hasItems := got["items"]
	assert.False(t, hasItems, "le mode external omet les articles")
}

func TestInitiateCallbackURLsCarryToken(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(map[string]string{"url": "https://pay.example/x"})
	}))
	defer srv.Close()

	g := &Gateway{BaseURL: srv.URL, CallbackURL: "https://api.giftwrap.app", Mode: ModeEmbedded, Client: srv.Client()}
	a := NewAttempt("u1", "a@b.c", ModeEmbedded, "Alice", "123 St", "555", "",
		[]models.CartItem{{Name: "Mug", Price: 200, Qty: 1}})

	_, err := g.Initiate(context.Background(), a)
	require.NoError(t, err)
	assert.Equal(t, "https://api.giftwrap.app/payment/success/"+a.Token, got["successUrl"])
	assert.Equal(t, "https://api.giftwrap.app/payment/fail/"+a.Token, got["failUrl"])
	assert.Equal(t, "https://api.giftwrap.app/payment/cancel/"+a.Token, got["cancelUrl"])
}

func TestInitiateMissingURLIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer srv.Close()

	g := &Gateway{BaseURL: srv.URL, Mode: ModeEmbedded, Client: srv.Client()}
	a := newTestAttempt()

	_, err := g.Initiate(context.Background(), a)
	assert.ErrorIs(t, err, ErrNoPaymentURL)
}

func TestInitiateMalformedResponseIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	g := &Gateway{BaseURL: srv.URL, Mode: ModeEmbedded, Client: srv.Client()}
	_, err := g.Initiate(context.Background(), newTestAttempt())
	assert.ErrorIs(t, err, ErrNoPaymentURL)
}

func TestInitiateNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // serveur déjà fermé : échec réseau

	g := &Gateway{BaseURL: srv.URL, Mode: ModeEmbedded, Client: &http.Client{}}
	_, err := g.Initiate(context.Background(), newTestAttempt())
	assert.Error(t, err)
}

// Scénario complet : panier sélectionné → payload → URL → commande pending.
func TestEndToEndSubmission(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, 200.0, payload["total"])
		json.NewEncoder(w).Encode(map[string]string{"url": "https://pay.example/abc"})
	}))
	defer srv.Close()

	items := []models.CartItem{{Name: "Mug", Price: 200, Qty: 1}}
	require.NoError(t, ValidateSubmission("Alice", "123 St", "555-0100", items))

	a := NewAttempt("u1", "alice@test.com", ModeEmbedded, "Alice", "123 St", "555-0100", "", items)
	require.NoError(t, a.Transition(StateSubmitting))

	g := &Gateway{BaseURL: srv.URL, Mode: ModeEmbedded, Client: srv.Client()}
	url, err := g.Initiate(context.Background(), a)
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/abc", url)

	require.NoError(t, a.Transition(StateAwaitingPayment))

	order := BuildPendingOrder(a)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, 200.0, order.Total)
	assert.Equal(t, "Alice", order.Receiver)
	assert.Equal(t, a.Token, order.Token)
}
