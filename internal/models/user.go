package models

import (
	"go.mongodb.org/mongo-driver/bson"
)

type User struct {
	ID       string `json:"user_id" bson:"_id,omitempty"`
	Name     string `json:"name,omitempty" bson:"name,omitempty"`
	Email    string `json:"email" bson:"email"`
	Password string `json:"-" bson:"password,omitempty"`
	Phone    string `json:"phone,omitempty" bson:"phone,omitempty"`
	Role     string `json:"role,omitempty" bson:"role,omitempty"`
	Verified bool   `json:"verified" bson:"verified"`
}

// NormalizeUserDoc convertit un document brut de la collection "users" en
// User. Les documents historiques utilisent plusieurs noms pour le même
// concept (username/name, phone/phoneNumber/mobile/contact) : la
// normalisation se fait ici, une seule fois, à la frontière du store.
func NormalizeUserDoc(doc bson.M) User {
	var u User

	switch id := doc["_id"].(type) {
	case string:
		u.ID = id
	}

	u.Name = firstString(doc, "username", "name")
	u.Email = stringField(doc, "email")
	u.Phone = firstString(doc, "phone", "phoneNumber", "mobile", "contact")
	u.Role = stringField(doc, "role")
	if v, ok := doc["verified"].(bool); ok {
		u.Verified = v
	}
	if s, ok := doc["password"].(string); ok {
		u.Password = s
	}

	return u
}

func firstString(doc bson.M, keys ...string) string {
	for _, k := range keys {
		if s, ok := doc[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
