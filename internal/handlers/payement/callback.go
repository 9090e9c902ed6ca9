package payement

import (
	"context"
	"log"
	"net/http"
	"os"

	"giftwrap_back_end/internal/cart"
	"giftwrap_back_end/internal/checkout"
	"giftwrap_back_end/internal/database"
	"giftwrap_back_end/internal/models"
	"giftwrap_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// deepLink construit l'URL de retour vers l'app mobile.
func deepLink(path string) string {
	scheme := os.Getenv("APP_DEEP_LINK_SCHEME")
	if scheme == "" {
		scheme = "giftwrap"
	}
	return scheme + "://" + path
}

// GET /payment/success/:token — callback de la passerelle après paiement
// réussi. Les articles achetés quittent le panier ici et seulement ici,
// identifiés par le token d'idempotence de la tentative.
func PaymentSuccess(c *gin.Context) {
	token := c.Param("token")
	ctx := c.Request.Context()

	attempt, err := checkout.LoadAttempt(ctx, token)
	if err != nil {
		// Token inconnu ou expiré : retour neutre vers le catalogue.
		c.Redirect(http.StatusFound, deepLink("home"))
		return
	}

	// Callback en double : la tentative est déjà terminale, on ne rejoue
	// aucun effet.
	if attempt.Terminal() {
		c.Redirect(http.StatusFound, deepLink("payment-success"))
		return
	}

	if err := attempt.Transition(checkout.StateSuccess); err != nil {
		log.Println("⚠️ Callback success sur tentative non en attente:", token)
		c.Redirect(http.StatusFound, deepLink("home"))
		return
	}
	checkout.SaveAttempt(ctx, attempt)

	finalizeOrder(ctx, attempt, models.OrderStatusPaid)

	// Seul le succès retire les articles du panier.
	s := cart.Load(ctx, attempt.UserID)
	s.RemoveItems(attempt.Items)
	if err := cart.Save(ctx, attempt.UserID, s); err != nil {
		log.Println("⚠️ Erreur nettoyage panier après paiement:", err)
	}
	clearSelectionDocs(ctx, attempt)

	checkout.Release(ctx, attempt)

	go sendConfirmation(*attempt)

	log.Println("✅ Paiement confirmé :", token)
	c.Redirect(http.StatusFound, deepLink("payment-success"))
}

// GET /payment/fail/:token
func PaymentFail(c *gin.Context) {
	resolveFailure(c, checkout.StateFailed, models.OrderStatusFailed, "payment-fail")
}

// GET /payment/cancel/:token
func PaymentCancel(c *gin.Context) {
	resolveFailure(c, checkout.StateCancelled, models.OrderStatusCancelled, "payment-cancel")
}

// resolveFailure traite les callbacks fail et cancel : état terminal,
// commande marquée, verrou libéré. Le panier reste intact.
func resolveFailure(c *gin.Context, state checkout.State, orderStatus, link string) {
	token := c.Param("token")
	ctx := c.Request.Context()

	attempt, err := checkout.LoadAttempt(ctx, token)
	if err != nil {
		c.Redirect(http.StatusFound, deepLink("home"))
		return
	}
	if attempt.Terminal() {
		c.Redirect(http.StatusFound, deepLink(link))
		return
	}
	if err := attempt.Transition(state); err != nil {
		c.Redirect(http.StatusFound, deepLink("home"))
		return
	}
	checkout.SaveAttempt(ctx, attempt)

	// En mode embedded une commande pending existe déjà : on la marque.
	// En mode external rien n'a été persisté, rien à faire.
	if attempt.OrderID != "" {
		database.Collection(database.ColOrders).UpdateOne(ctx,
			bson.M{"_id": attempt.OrderID},
			bson.M{"$set": bson.M{"status": orderStatus}})
	}

	checkout.Release(ctx, attempt)
	c.Redirect(http.StatusFound, deepLink(link))
}

// finalizeOrder persiste ou met à jour la commande selon le mode de la
// tentative : patch du document pending (embedded) ou insertion différée
// (external).
func finalizeOrder(ctx context.Context, attempt *checkout.Attempt, status string) {
	col := database.Collection(database.ColOrders)

	if attempt.OrderID != "" {
		if _, err := col.UpdateOne(ctx,
			bson.M{"_id": attempt.OrderID},
			bson.M{"$set": bson.M{"status": status}}); err != nil {
			log.Println("⚠️ Erreur mise à jour commande:", err)
		}
		return
	}

	order := checkout.BuildPendingOrder(attempt)
	order.ID = uuid.NewString()
	order.Status = status
	if _, err := col.InsertOne(ctx, order); err != nil {
		log.Println("⚠️ Erreur persistance commande:", err)
		return
	}
	attempt.OrderID = order.ID
	checkout.SaveAttempt(ctx, attempt)
}

// clearSelectionDocs purge les documents de sélection consommés par cet
// achat.
func clearSelectionDocs(ctx context.Context, attempt *checkout.Attempt) {
	col := database.Collection(database.ColCart)
	col.DeleteMany(ctx, bson.M{"userId": attempt.UserID, "selected": true})
	if attempt.UserEmail != "" {
		col.DeleteMany(ctx, bson.M{"userEmail": attempt.UserEmail, "selected": true})
	}
}

func sendConfirmation(attempt checkout.Attempt) {
	if attempt.UserEmail == "" {
		return
	}
	order := checkout.BuildPendingOrder(&attempt)
	order.ID = attempt.OrderID
	order.Status = models.OrderStatusPaid

	qr, _ := utils.GeneratePaymentQR(attempt.Token)
	if err := utils.SendOrderConfirmationEmail(order, qr); err != nil {
		log.Println("⚠️ Erreur envoi email de confirmation:", err)
	}
}
