package models

import "time"

// Filter est une catégorie de produits gérée depuis la console admin.
type Filter struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// DefaultFilters sont les catégories toujours proposées, avant celles
// ajoutées par l'admin.
var DefaultFilters = []string{"All", "Wedding", "Birthday", "Anniversary", "Farewell"}
