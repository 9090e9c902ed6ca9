package admin

import (
	"context"
	"log"
	"net/http"
	"time"

	"giftwrap_back_end/internal/database"
	"giftwrap_back_end/internal/models"
	"giftwrap_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GET /api/admin/orders?status= — toutes les commandes, récentes d'abord.
func GetAllOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := database.Collection(database.ColOrders).Find(ctx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage commandes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

// PATCH /api/admin/orders/:id/delivered — bascule le statut de livraison.
// Le passage à "livré" déclenche l'email de notification au client.
func SetOrderDelivered(c *gin.Context) {
	orderID := c.Param("id")

	var input struct {
		Delivered bool `json:"delivered"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var order models.Order
	if err := database.Collection(database.ColOrders).FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	if _, err := database.Collection(database.ColOrders).UpdateOne(ctx,
		bson.M{"_id": orderID},
		bson.M{"$set": bson.M{"delivered": input.Delivered}}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour commande"})
		return
	}

	// Email uniquement lors du passage non-livré → livré.
	if input.Delivered && !order.Delivered && order.UserEmail != "" {
		order.Delivered = true
		go func(o models.Order) {
			if err := utils.SendOrderDeliveredEmail(o); err != nil {
				log.Println("⚠️ Erreur envoi email livraison:", err)
			}
		}(order)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Commande mise à jour", "delivered": input.Delivered})
}
