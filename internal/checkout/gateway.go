package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"giftwrap_back_end/internal/models"
)

// Mode choisit le protocole de soumission vers la passerelle de paiement.
// Les deux variantes historiques coexistent : le mode est une configuration,
// jamais déduit à l'exécution.
type Mode string

const (
	// ModeEmbedded : payload complet (articles inclus), commande "pending"
	// persistée dès l'obtention de l'URL, page de paiement embarquée.
	ModeEmbedded Mode = "embedded"
	// ModeExternal : payload réduit sans articles, navigateur système,
	// persistance de la commande différée au callback.
	ModeExternal Mode = "external"
)

var ErrNoPaymentURL = errors.New("payment gateway response has no url")

// Gateway est le client de la passerelle de paiement hébergée. Elle répond
// {"url": "..."} et redirige ensuite l'acheteur vers nos callbacks
// success/fail/cancel avec le token de la tentative.
type Gateway struct {
	BaseURL     string
	CallbackURL string
	Mode        Mode
	Client      *http.Client
}

// NewGatewayFromEnv lit PAYMENT_GATEWAY_URL, PAYMENT_CALLBACK_URL et
// PAYMENT_MODE (embedded par défaut).
func NewGatewayFromEnv() *Gateway {
	mode := ModeEmbedded
	if os.Getenv("PAYMENT_MODE") == string(ModeExternal) {
		mode = ModeExternal
	}
	return &Gateway{
		BaseURL:     os.Getenv("PAYMENT_GATEWAY_URL"),
		CallbackURL: os.Getenv("PAYMENT_CALLBACK_URL"),
		Mode:        mode,
		Client:      &http.Client{Timeout: 15 * time.Second},
	}
}

// initiationPayload est le corps POST attendu par l'endpoint de création de
// commande de la passerelle. En mode external les articles sont omis.
type initiationPayload struct {
	Total      float64           `json:"total"`
	Receiver   string            `json:"receiver"`
	Address    string            `json:"address"`
	Phone      string            `json:"phone"`
	Items      []models.CartItem `json:"items,omitempty"`
	UserEmail  string            `json:"userEmail"`
	UserID     string            `json:"userId"`
	Token      string            `json:"token"`
	SuccessURL string            `json:"successUrl,omitempty"`
	FailURL    string            `json:"failUrl,omitempty"`
	CancelURL  string            `json:"cancelUrl,omitempty"`
}

// Initiate soumet la tentative à la passerelle et retourne l'URL de la page
// de paiement hébergée. Toute réponse sans champ "url" est un échec.
func (g *Gateway) Initiate(ctx context.Context, a *Attempt) (string, error) {
	payload := initiationPayload{
		Total:     a.Total,
		Receiver:  a.Receiver,
		Address:   a.Address,
		Phone:     a.Phone,
		UserEmail: a.UserEmail,
		UserID:    a.UserID,
		Token:     a.Token,
	}

	endpoint := g.BaseURL + "/order"
	if g.Mode == ModeEmbedded {
		payload.Items = a.Items
	} else {
		endpoint = g.BaseURL + "/order/init"
	}

	if g.CallbackURL != "" {
		payload.SuccessURL = fmt.Sprintf("%s/payment/success/%s", g.CallbackURL, a.Token)
		payload.FailURL = fmt.Sprintf("%s/payment/fail/%s", g.CallbackURL, a.Token)
		payload.CancelURL = fmt.Sprintf("%s/payment/cancel/%s", g.CallbackURL, a.Token)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var result struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", ErrNoPaymentURL
	}
	if result.URL == "" {
		return "", ErrNoPaymentURL
	}
	return result.URL, nil
}
