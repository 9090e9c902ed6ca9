package models

import "strconv"

// CartItem est une ligne du panier. L'identité d'une ligne est le couple
// (nom, prix) : il n'y a pas d'identifiant produit dans le panier.
type CartItem struct {
	Name  string  `json:"name" bson:"name"`
	Price float64 `json:"price" bson:"price"`
	Qty   int     `json:"qty" bson:"qty"`
}

// Key identifie une ligne par son couple (nom, prix), au format
// "nom__prix". Le prix est rendu sans zéros superflus (200, 33.5).
func (it CartItem) Key() string {
	return it.Name + "__" + strconv.FormatFloat(it.Price, 'f', -1, 64)
}

// CartSelection est un document historique de la collection "cart" :
// une sélection d'articles cochés, rattachée à un utilisateur par son id
// et/ou son email (les anciens documents n'ont pas toujours les deux).
type CartSelection struct {
	ID        string     `json:"id" bson:"_id,omitempty"`
	UserID    string     `json:"userId" bson:"userId"`
	UserEmail string     `json:"userEmail" bson:"userEmail"`
	Selected  bool       `json:"selected" bson:"selected"`
	Items     []CartItem `json:"items" bson:"items"`
}
