// Package payement expose la soumission d'achat et les callbacks de la
// passerelle de paiement.
package payement

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"giftwrap_back_end/internal/checkout"
	"giftwrap_back_end/internal/database"
	"giftwrap_back_end/internal/models"
	"giftwrap_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

type placeOrderInput struct {
	Receiver string            `json:"receiver"`
	Address  string            `json:"address"`
	Phone    string            `json:"phone"`
	Note     string            `json:"note"`
	Items    []models.CartItem `json:"items"`
}

// POST /api/purchase — soumet la sélection courante à la passerelle de
// paiement et retourne l'URL de la page de paiement hébergée.
//
// La liste explicite du corps fait foi ; à défaut, la sélection figée dans
// la collection "cart" sert de repli (requêtes par email puis par id,
// fusionnées). La validation locale précède tout appel à la passerelle.
func PlaceOrder(c *gin.Context) {
	userID := c.GetString("user_id")
	email := c.GetString("email")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var input placeOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	ctx := c.Request.Context()

	items := input.Items
	if len(items) == 0 {
		items = fallbackSelection(ctx, userID, email)
	}

	if err := checkout.ValidateSubmission(input.Receiver, input.Address, input.Phone, items); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	gateway := checkout.NewGatewayFromEnv()
	attempt := checkout.NewAttempt(userID, email, gateway.Mode,
		input.Receiver, input.Address, input.Phone, input.Note, items)

	if err := checkout.Begin(ctx, attempt); err != nil {
		if errors.Is(err, checkout.ErrAttemptInFlight) {
			c.JSON(http.StatusConflict, gin.H{"error": "A checkout is already in progress. Please complete or cancel it first."})
			return
		}
		log.Println("❌ Erreur démarrage tentative checkout:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur démarrage du paiement"})
		return
	}

	if err := attempt.Transition(checkout.StateSubmitting); err != nil {
		checkout.Release(ctx, attempt)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur démarrage du paiement"})
		return
	}
	checkout.SaveAttempt(ctx, attempt)

	url, err := gateway.Initiate(ctx, attempt)
	if err != nil {
		log.Println("❌ Passerelle de paiement injoignable:", err)
		if terr := attempt.Transition(checkout.StateIdle); terr != nil {
			log.Println("⚠️ Retour IDLE impossible:", terr)
		}
		checkout.SaveAttempt(ctx, attempt)
		checkout.Release(ctx, attempt)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Payment could not be initiated. Please try again."})
		return
	}

	// En mode embedded la commande "pending" est persistée dès maintenant ;
	// en mode external elle n'existera qu'au callback.
	if gateway.Mode == checkout.ModeEmbedded {
		order := checkout.BuildPendingOrder(attempt)
		order.ID = uuid.NewString()
		if _, err := database.Collection(database.ColOrders).InsertOne(ctx, order); err != nil {
			log.Println("⚠️ Erreur persistance commande pending:", err)
		} else {
			attempt.OrderID = order.ID
		}
	}

	if err := attempt.Transition(checkout.StateAwaitingPayment); err != nil {
		// SUBMITTING → AWAITING_PAYMENT est licite, seule une corruption de
		// la tentative peut arriver ici.
		log.Println("⚠️ Transition AWAITING_PAYMENT impossible:", err)
	}
	checkout.SaveAttempt(ctx, attempt)

	qr, err := utils.GeneratePaymentQR(url)
	if err != nil {
		log.Println("⚠️ Erreur génération QR code:", err)
	}

	log.Println("💳 Paiement initié :", attempt.Token)
	c.JSON(http.StatusOK, gin.H{
		"url":   url,
		"token": attempt.Token,
		"total": attempt.Total,
		"qr":    qr,
	})
}

// DELETE /api/purchase — démontage explicite : l'utilisateur quitte l'écran
// d'achat avant le callback. La tentative et son verrou disparaissent.
func AbandonCheckout(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	ctx := c.Request.Context()
	token, err := checkout.PendingToken(ctx, userID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"message": "Aucun paiement en cours"})
		return
	}

	attempt, err := checkout.LoadAttempt(ctx, token)
	if err != nil {
		attempt = &checkout.Attempt{Token: token, UserID: userID}
	}
	checkout.Abandon(ctx, attempt)

	c.JSON(http.StatusOK, gin.H{"message": "Paiement abandonné"})
}

// GET /api/purchase/status — l'état de la tentative en cours, pour que
// l'écran d'achat puisse se resynchroniser après un retour d'arrière-plan.
func CheckoutStatus(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	ctx := c.Request.Context()
	token, err := checkout.PendingToken(ctx, userID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"state": checkout.StateIdle})
		return
	}
	attempt, err := checkout.LoadAttempt(ctx, token)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"state": checkout.StateIdle})
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": attempt.State, "token": attempt.Token, "total": attempt.Total})
}

// fallbackSelection recharge la sélection figée dans la collection "cart" :
// les documents appariés par email sont insérés d'abord, ceux appariés par
// id ensuite (l'id l'emporte en cas de conflit de clé).
func fallbackSelection(ctx context.Context, userID, email string) []models.CartItem {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var byEmail []models.CartItem
	if email != "" {
		byEmail = selectionItems(ctx, bson.M{"userEmail": email, "selected": true})
	}
	byID := selectionItems(ctx, bson.M{"userId": userID, "selected": true})
	return checkout.MergeSources(byEmail, byID)
}

func selectionItems(ctx context.Context, filter bson.M) []models.CartItem {
	cursor, err := database.Collection(database.ColCart).Find(ctx, filter)
	if err != nil {
		return nil
	}
	defer cursor.Close(ctx)

	var docs []models.CartSelection
	if err := cursor.All(ctx, &docs); err != nil {
		return nil
	}

	items := []models.CartItem{}
	for _, doc := range docs {
		items = append(items, doc.Items...)
	}
	return items
}
