// Package checkout transforme une sélection d'articles du panier plus des
// coordonnées de livraison en une commande soumise et une URL de paiement.
package checkout

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"giftwrap_back_end/internal/models"
)

// Erreurs de validation avant soumission. Messages côté client en anglais,
// comme dans l'app.
var (
	ErrMissingFields = errors.New("please fill all required fields and add at least one product")
	ErrNoItems       = errors.New("please select at least one item before checkout")
)

// Reconciler est la liste de travail des articles en cours de finalisation,
// découplée du panier persistant jusqu'à la soumission.
type Reconciler struct {
	items []models.CartItem
}

// NewReconciler copie les articles : la liste de travail ne doit jamais
// référencer le panier vivant.
func NewReconciler(items []models.CartItem) *Reconciler {
	copied := make([]models.CartItem, len(items))
	copy(copied, items)
	return &Reconciler{items: copied}
}

// MergeSources fusionne les articles issus des deux requêtes de repli
// (par email puis par id utilisateur), dédupliqués par clé "nom__prix".
// L'ordre d'insertion est fixe : email d'abord, id ensuite — en cas de
// conflit sur une clé, la version appariée par id l'emporte.
func MergeSources(byEmail, byID []models.CartItem) []models.CartItem {
	merged := map[string]models.CartItem{}
	order := []string{}

	insert := func(it models.CartItem) {
		k := it.Key()
		if _, seen := merged[k]; !seen {
			order = append(order, k)
		}
		merged[k] = it
	}
	for _, it := range byEmail {
		insert(it)
	}
	for _, it := range byID {
		insert(it)
	}

	items := make([]models.CartItem, 0, len(order))
	for _, k := range order {
		items = append(items, merged[k])
	}
	return items
}

// UpdateQty ajoute delta à la quantité de la ligne ; sous 1, la ligne est
// retirée. N'écrit rien dans le panier ni dans le store avant soumission.
func (r *Reconciler) UpdateQty(index, delta int) {
	if index < 0 || index >= len(r.items) {
		return
	}
	qty := r.items[index].Qty + delta
	if qty < 1 {
		r.RemoveAt(index)
		return
	}
	r.items[index].Qty = qty
}

// RemoveAt retire la ligne de la liste de travail.
func (r *Reconciler) RemoveAt(index int) {
	if index < 0 || index >= len(r.items) {
		return
	}
	r.items = append(r.items[:index], r.items[index+1:]...)
}

// Items retourne une copie de la liste de travail.
func (r *Reconciler) Items() []models.CartItem {
	copied := make([]models.CartItem, len(r.items))
	copy(copied, r.items)
	return copied
}

// Total calcule Σ prix × quantité, arrondi à 2 décimales avant transmission.
func (r *Reconciler) Total() float64 {
	return Total(r.items)
}

func Total(items []models.CartItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Qty)
	}
	return math.Round(total*100) / 100
}

// FormatPrice affiche les entiers sans décimales et les fractions avec
// exactement deux : "350 BDT", "33.33 BDT".
func FormatPrice(value float64) string {
	if value == math.Trunc(value) {
		return fmt.Sprintf("%d BDT", int64(value))
	}
	return fmt.Sprintf("%.2f BDT", value)
}

// ValidateSubmission est la précondition locale : destinataire, adresse et
// téléphone non vides, liste non vide. En cas d'échec, aucun appel réseau
// ne doit être tenté.
func ValidateSubmission(receiver, address, phone string, items []models.CartItem) error {
	if len(items) == 0 {
		return ErrNoItems
	}
	if strings.TrimSpace(receiver) == "" ||
		strings.TrimSpace(address) == "" ||
		strings.TrimSpace(phone) == "" {
		return ErrMissingFields
	}
	return nil
}
