package checkout

import (
	"giftwrap_back_end/internal/models"
)

// BuildPendingOrder fige la tentative en document de commande "pending".
// Les articles sont recopiés : le document ne partage rien avec la liste de
// réconciliation.
func BuildPendingOrder(a *Attempt) models.Order {
	items := make([]models.CartItem, len(a.Items))
	copy(items, a.Items)
	return models.Order{
		UserID:    a.UserID,
		UserEmail: a.UserEmail,
		Receiver:  a.Receiver,
		Address:   a.Address,
		Phone:     a.Phone,
		Note:      a.Note,
		Items:     items,
		Total:     a.Total,
		Status:    models.OrderStatusPending,
		Token:     a.Token,
		CreatedAt: a.CreatedAt,
	}
}
