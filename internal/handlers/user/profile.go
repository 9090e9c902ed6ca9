package user

import (
	"context"
	"net/http"
	"time"

	"giftwrap_back_end/internal/database"
	"giftwrap_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// GET /api/me — le profil de l'utilisateur connecté. Le document brut passe
// par la normalisation (username/name, phone/phoneNumber/mobile/contact)
// une seule fois, ici, à la frontière du store.
func GetProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var doc bson.M
	err := database.Collection(database.ColUsers).FindOne(ctx, bson.M{"_id": userID}).Decode(&doc)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	user := models.NormalizeUserDoc(doc)
	user.Password = ""
	c.JSON(http.StatusOK, user)
}
