package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestNormalizeUserDocLegacyFieldNames(t *testing.T) {
	tests := []struct {
		name string
		doc  bson.M
		want User
	}{
		{
			name: "champs modernes",
			doc:  bson.M{"_id": "u1", "name": "Alice", "email": "alice@test.com", "phone": "555-0100"},
			want: User{ID: "u1", Name: "Alice", Email: "alice@test.com", Phone: "555-0100"},
		},
		{
			name: "username prioritaire sur name",
			doc:  bson.M{"username": "alice92", "name": "Alice"},
			want: User{Name: "alice92"},
		},
		{
			name: "phoneNumber legacy",
			doc:  bson.M{"phoneNumber": "017"},
			want: User{Phone: "017"},
		},
		{
			name: "mobile legacy",
			doc:  bson.M{"mobile": "018"},
			want: User{Phone: "018"},
		},
		{
			name: "contact legacy",
			doc:  bson.M{"contact": "019"},
			want: User{Phone: "019"},
		},
		{
			name: "document vide toléré",
			doc:  bson.M{},
			want: User{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeUserDoc(tt.doc))
		})
	}
}

func TestNormalizeProductDocPriceShapes(t *testing.T) {
	assert.Equal(t, 200.0, NormalizeProductDoc(bson.M{"price": 200.0}).Price)
	assert.Equal(t, 200.0, NormalizeProductDoc(bson.M{"price": int32(200)}).Price)
	assert.Equal(t, 33.33, NormalizeProductDoc(bson.M{"price": "33.33"}).Price)
	assert.Equal(t, 0.0, NormalizeProductDoc(bson.M{"price": "pas un nombre"}).Price)
	assert.Equal(t, 0.0, NormalizeProductDoc(bson.M{}).Price)
}

func TestNormalizeProductDocImageFallback(t *testing.T) {
	p := NormalizeProductDoc(bson.M{"name": "Mug", "image": "http://img/mug.jpg"})
	assert.Equal(t, "http://img/mug.jpg", p.Picture)
	assert.Equal(t, "http://img/mug.jpg", p.MainImage())

	p = NormalizeProductDoc(bson.M{
		"picture":        "http://img/old.jpg",
		"productsImages": bson.A{"http://img/new.jpg"},
	})
	assert.Equal(t, "http://img/new.jpg", p.MainImage())
}
