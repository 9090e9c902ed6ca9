package models

import (
	"time"
)

// Statuts d'une commande.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusFailed    = "failed"
	OrderStatusCancelled = "cancelled"
)

// Order est le document persistant de la collection "orders". Le total est
// indicatif : il est figé à la soumission et jamais recalculé côté lecture.
type Order struct {
	ID        string     `json:"id" bson:"_id,omitempty"`
	UserID    string     `json:"userId" bson:"userId"`
	UserEmail string     `json:"userEmail" bson:"userEmail"`
	Receiver  string     `json:"receiver" bson:"receiver"`
	Address   string     `json:"address" bson:"address"`
	Phone     string     `json:"phone" bson:"phone"`
	Note      string     `json:"note,omitempty" bson:"note,omitempty"`
	Items     []CartItem `json:"items" bson:"items"`
	Total     float64    `json:"total" bson:"total"`
	Status    string     `json:"status" bson:"status"`
	// Token d'idempotence généré côté serveur à la soumission et renvoyé
	// tel quel par le callback de paiement.
	Token     string    `json:"token,omitempty" bson:"token,omitempty"`
	Delivered bool      `json:"delivered" bson:"delivered"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
