package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"giftwrap_back_end/internal/database"
	"giftwrap_back_end/internal/models"

	"github.com/google/uuid"
)

// États d'une tentative de checkout.
type State string

const (
	StateIdle            State = "idle"
	StateValidating      State = "validating"
	StateSubmitting      State = "submitting"
	StateAwaitingPayment State = "awaiting_payment"
	StateSuccess         State = "success"
	StateFailed          State = "failed"
	StateCancelled       State = "cancelled"
)

// AttemptTTL est la minuterie de repli : une tentative sans callback expire
// d'elle-même et libère le verrou utilisateur.
const AttemptTTL = 30 * time.Minute

var (
	ErrAttemptInFlight    = errors.New("a checkout is already in progress")
	ErrAttemptNotFound    = errors.New("unknown or expired checkout attempt")
	ErrInvalidTransition  = errors.New("invalid checkout state transition")
	ErrAttemptNotAwaiting = errors.New("checkout attempt is not awaiting payment")
)

// Attempt est une tentative de checkout unique. Le token sert à la fois
// d'identifiant d'idempotence et de corrélation du callback de paiement.
type Attempt struct {
	Token     string            `json:"token"`
	UserID    string            `json:"userId"`
	UserEmail string            `json:"userEmail"`
	State     State             `json:"state"`
	Mode      Mode              `json:"mode"`
	Receiver  string            `json:"receiver"`
	Address   string            `json:"address"`
	Phone     string            `json:"phone"`
	Note      string            `json:"note"`
	Items     []models.CartItem `json:"items"`
	Total     float64           `json:"total"`
	OrderID   string            `json:"orderId,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

// NewAttempt fige la liste de réconciliation (copie, jamais une référence
// vivante) et démarre en VALIDATING.
func NewAttempt(userID, userEmail string, mode Mode, receiver, address, phone, note string, items []models.CartItem) *Attempt {
	copied := make([]models.CartItem, len(items))
	copy(copied, items)
	return &Attempt{
		Token:     uuid.NewString(),
		UserID:    userID,
		UserEmail: userEmail,
		State:     StateValidating,
		Mode:      mode,
		Receiver:  receiver,
		Address:   address,
		Phone:     phone,
		Note:      note,
		Items:     copied,
		Total:     Total(copied),
		CreatedAt: time.Now(),
	}
}

// transitions licites d'une tentative.
var transitions = map[State][]State{
	StateIdle:            {StateValidating},
	StateValidating:      {StateSubmitting, StateIdle},
	StateSubmitting:      {StateAwaitingPayment, StateIdle},
	StateAwaitingPayment: {StateSuccess, StateFailed, StateCancelled},
}

// Transition fait passer la tentative à l'état cible si le passage est
// licite.
func (a *Attempt) Transition(to State) error {
	for _, next := range transitions[a.State] {
		if next == to {
			a.State = to
			return nil
		}
	}
	return ErrInvalidTransition
}

// Terminal indique un état final (le callback est arrivé).
func (a *Attempt) Terminal() bool {
	return a.State == StateSuccess || a.State == StateFailed || a.State == StateCancelled
}

func attemptKey(token string) string {
	return "checkout:attempt:" + token
}

func guardKey(userID string) string {
	return "checkout:pending:" + userID
}

// Begin pose le verrou anti-resoumission de l'utilisateur puis persiste la
// tentative. Une tentative SUBMITTING/AWAITING_PAYMENT encore vivante fait
// échouer toute nouvelle soumission.
func Begin(ctx context.Context, a *Attempt) error {
	ok, err := database.Redis.SetNX(ctx, guardKey(a.UserID), a.Token, AttemptTTL).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrAttemptInFlight
	}
	return SaveAttempt(ctx, a)
}

// SaveAttempt réécrit la tentative sous sa clé token.
func SaveAttempt(ctx context.Context, a *Attempt) error {
	data, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return database.Redis.Set(ctx, attemptKey(a.Token), data, AttemptTTL).Err()
}

// LoadAttempt retrouve une tentative par son token de callback.
func LoadAttempt(ctx context.Context, token string) (*Attempt, error) {
	data, err := database.Redis.Get(ctx, attemptKey(token)).Result()
	if err != nil || data == "" {
		return nil, ErrAttemptNotFound
	}
	var a Attempt
	if err := json.Unmarshal([]byte(data), &a); err != nil {
		return nil, ErrAttemptNotFound
	}
	return &a, nil
}

// PendingToken retourne le token de la tentative en cours de l'utilisateur,
// ou ErrAttemptNotFound si aucun verrou n'est posé.
func PendingToken(ctx context.Context, userID string) (string, error) {
	token, err := database.Redis.Get(ctx, guardKey(userID)).Result()
	if err != nil || token == "" {
		return "", ErrAttemptNotFound
	}
	return token, nil
}

// Release libère le verrou utilisateur, sur échec de soumission ou état
// terminal. La clé token reste jusqu'à expiration pour absorber un callback
// en double.
func Release(ctx context.Context, a *Attempt) {
	database.Redis.Del(ctx, guardKey(a.UserID))
}

// Abandon est le démontage explicite : l'utilisateur quitte l'écran avant le
// callback. La tentative et son verrou disparaissent pour qu'aucune
// navigation tardive ne se déclenche.
func Abandon(ctx context.Context, a *Attempt) {
	database.Redis.Del(ctx, attemptKey(a.Token), guardKey(a.UserID))
}
