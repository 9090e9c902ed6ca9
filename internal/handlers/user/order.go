package user

import (
	"context"
	"log"
	"net/http"
	"sort"
	"time"

	"giftwrap_back_end/internal/database"
	"giftwrap_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// ✅ GET /api/orders — les commandes de l'utilisateur connecté. Les anciens
// documents n'ont pas toujours le bon userId : on interroge par id ET par
// email, puis on fusionne par id de document (l'appariement par id gagne).
func GetMyOrders(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	email := c.GetString("email")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	byID, err := findOrders(ctx, bson.M{"userId": userID})
	if err != nil {
		log.Println("❌ Erreur lecture commandes:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}
	byEmail, err := findOrders(ctx, bson.M{"userEmail": email})
	if err != nil {
		log.Println("❌ Erreur lecture commandes:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}

	merged := map[string]models.Order{}
	for _, o := range byEmail {
		merged[o.ID] = o
	}
	for _, o := range byID {
		merged[o.ID] = o
	}

	orders := make([]models.Order, 0, len(merged))
	for _, o := range merged {
		orders = append(orders, o)
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	log.Printf("✅ %d commandes trouvées pour user %s", len(orders), userID)
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// ✅ GET /api/orders/:id — une commande, avec contrôle de propriété. Même
// tolérance d'attribution que la liste : une commande historique rattachée
// par email doit s'ouvrir comme les autres.
func GetOrderByID(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	orderID := c.Param("id")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var order models.Order
	err := database.Collection(database.ColOrders).
		FindOne(ctx, orderOwnershipFilter(orderID, userID, c.GetString("email"))).
		Decode(&order)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// orderOwnershipFilter apparie la commande par id de document et par
// propriétaire. Les anciens documents n'ont pas toujours le bon userId :
// l'appariement accepte aussi l'email, comme GetMyOrders.
func orderOwnershipFilter(orderID, userID, email string) bson.M {
	owner := []bson.M{{"userId": userID}}
	if email != "" {
		owner = append(owner, bson.M{"userEmail": email})
	}
	return bson.M{"_id": orderID, "$or": owner}
}

func findOrders(ctx context.Context, filter bson.M) ([]models.Order, error) {
	cursor, err := database.Collection(database.ColOrders).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
