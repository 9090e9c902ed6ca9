// Package cart maintient la liste des articles du panier et leur état de
// sélection pour l'utilisateur connecté. L'état vit dans Redis sous une clé
// par utilisateur, réécrite entièrement à chaque mutation.
package cart

import (
	"giftwrap_back_end/internal/models"
)

// State est le panier d'un utilisateur : les lignes et, en parallèle, les
// cases cochées pour le checkout. Invariant : len(Selected) == len(Items).
type State struct {
	Items    []models.CartItem `json:"items"`
	Selected []bool            `json:"selected"`
}

func NewState() *State {
	return &State{Items: []models.CartItem{}, Selected: []bool{}}
}

// AddOrIncrement ajoute une ligne ou incrémente la quantité si une ligne
// avec le même couple (nom, prix) existe déjà. qty <= 0 vaut 1.
func (s *State) AddOrIncrement(name string, price float64, qty int) {
	if qty <= 0 {
		qty = 1
	}
	for i := range s.Items {
		if s.Items[i].Name == name && s.Items[i].Price == price {
			s.Items[i].Qty += qty
			return
		}
	}
	s.Items = append(s.Items, models.CartItem{Name: name, Price: price, Qty: qty})
	s.Selected = append(s.Selected, false)
}

// ChangeQty ajoute delta à la quantité de la ligne. Si le résultat passe
// sous 1, la ligne est supprimée et la sélection est réalignée.
func (s *State) ChangeQty(index, delta int) {
	if index < 0 || index >= len(s.Items) {
		return
	}
	s.Items[index].Qty += delta
	if s.Items[index].Qty < 1 {
		s.RemoveAt(index)
	}
}

// RemoveAt supprime la ligne et sa case de sélection.
func (s *State) RemoveAt(index int) {
	if index < 0 || index >= len(s.Items) {
		return
	}
	s.Items = append(s.Items[:index], s.Items[index+1:]...)
	s.Selected = append(s.Selected[:index], s.Selected[index+1:]...)
}

// ToggleSelected inverse la case à cet index. Hors bornes : no-op.
func (s *State) ToggleSelected(index int) {
	if index < 0 || index >= len(s.Selected) {
		return
	}
	s.Selected[index] = !s.Selected[index]
}

// SelectedItems retourne une copie des lignes cochées.
func (s *State) SelectedItems() []models.CartItem {
	items := []models.CartItem{}
	for i, sel := range s.Selected {
		if sel && i < len(s.Items) {
			items = append(items, s.Items[i])
		}
	}
	return items
}

// RemoveSelected retire les lignes cochées du panier et les retourne.
// Les lignes restantes repartent décochées.
func (s *State) RemoveSelected() []models.CartItem {
	removed := []models.CartItem{}
	kept := []models.CartItem{}
	for i := range s.Items {
		if i < len(s.Selected) && s.Selected[i] {
			removed = append(removed, s.Items[i])
		} else {
			kept = append(kept, s.Items[i])
		}
	}
	s.Items = kept
	s.Selected = make([]bool, len(kept))
	return removed
}

// RemoveItems retire du panier les lignes dont le couple (nom, prix) figure
// dans items, par exemple après un paiement confirmé.
func (s *State) RemoveItems(items []models.CartItem) {
	purchased := make(map[string]bool, len(items))
	for _, it := range items {
		purchased[it.Key()] = true
	}
	kept := []models.CartItem{}
	for _, it := range s.Items {
		if !purchased[it.Key()] {
			kept = append(kept, it)
		}
	}
	s.Items = kept
	s.Selected = make([]bool, len(kept))
}

// realign garantit len(Selected) == len(Items) après un décodage d'un état
// persisté par une ancienne version (sélection absente ou trop courte).
func (s *State) realign() {
	if s.Items == nil {
		s.Items = []models.CartItem{}
	}
	switch {
	case len(s.Selected) < len(s.Items):
		pad := make([]bool, len(s.Items)-len(s.Selected))
		s.Selected = append(s.Selected, pad...)
	case len(s.Selected) > len(s.Items):
		s.Selected = s.Selected[:len(s.Items)]
	}
}
