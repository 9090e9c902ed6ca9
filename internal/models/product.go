package models

import (
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name"`
	Price          float64            `json:"price" bson:"price"`
	Category       string             `json:"category" bson:"category"`
	Description    string             `json:"description,omitempty" bson:"description,omitempty"`
	Picture        string             `json:"picture,omitempty" bson:"picture,omitempty"`
	ProductsImages []string           `json:"productsImages,omitempty" bson:"productsImages,omitempty"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
}

// MainImage retourne l'image à afficher en priorité.
func (p Product) MainImage() string {
	if len(p.ProductsImages) > 0 && p.ProductsImages[0] != "" {
		return p.ProductsImages[0]
	}
	return p.Picture
}

// NormalizeProductDoc convertit un document brut de la collection "products"
// en Product. Les anciens documents ont des formes variables (prix stocké en
// string, champ image sous "image" ou "picture") : on tolère tout avec des
// valeurs par défaut plutôt que de rejeter le document.
func NormalizeProductDoc(doc bson.M) Product {
	var p Product

	if id, ok := doc["_id"].(primitive.ObjectID); ok {
		p.ID = id
	}
	p.Name = stringField(doc, "name")
	p.Category = stringField(doc, "category")
	p.Description = stringField(doc, "description")

	p.Picture = stringField(doc, "picture")
	if p.Picture == "" {
		p.Picture = stringField(doc, "image")
	}

	p.Price = numberField(doc, "price")

	if imgs, ok := doc["productsImages"].(bson.A); ok {
		for _, v := range imgs {
			if s, ok := v.(string); ok && s != "" {
				p.ProductsImages = append(p.ProductsImages, s)
			}
		}
	}

	if t, ok := doc["createdAt"].(primitive.DateTime); ok {
		p.CreatedAt = t.Time()
	}

	return p
}

func stringField(doc bson.M, key string) string {
	if s, ok := doc[key].(string); ok {
		return s
	}
	return ""
}

// numberField lit un nombre stocké indifféremment en double, int ou string.
func numberField(doc bson.M, key string) float64 {
	switch v := doc[key].(type) {
	case float64:
		return v
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return 0
}
