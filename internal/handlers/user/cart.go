package user

import (
	"context"
	"net/http"
	"strconv"

	"giftwrap_back_end/internal/cart"
	"giftwrap_back_end/internal/checkout"
	"giftwrap_back_end/internal/database"
	"giftwrap_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

func currentUser(c *gin.Context) (string, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return "", false
	}
	return userID, true
}

//
// 🛒 GET /api/cart
//
func GetCart(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	s := cart.Load(c.Request.Context(), userID)
	c.JSON(http.StatusOK, gin.H{
		"items":    s.Items,
		"selected": s.Selected,
		"total":    checkout.Total(s.Items),
	})
}

//
// 🟢 POST /api/cart/add
//
func AddToCart(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var input struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
		Qty   int     `json:"qty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prix invalide"})
		return
	}

	ctx := c.Request.Context()
	s := cart.Load(ctx, userID)
	s.AddOrIncrement(input.Name, input.Price, input.Qty)

	if err := cart.Save(ctx, userID, s); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  input.Name + " added to cart!",
		"items":    s.Items,
		"selected": s.Selected,
	})
}

//
// 🔁 POST /api/cart/qty   {index, delta}
//
func ChangeQty(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var input struct {
		Index int `json:"index"`
		Delta int `json:"delta"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	ctx := c.Request.Context()
	s := cart.Load(ctx, userID)
	if input.Index < 0 || input.Index >= len(s.Items) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Index hors bornes"})
		return
	}
	s.ChangeQty(input.Index, input.Delta)

	if err := cart.Save(ctx, userID, s); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": s.Items, "selected": s.Selected})
}

//
// ☑️ POST /api/cart/select   {index}
//
func ToggleSelect(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var input struct {
		Index int `json:"index"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	ctx := c.Request.Context()
	s := cart.Load(ctx, userID)
	if input.Index < 0 || input.Index >= len(s.Selected) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Index hors bornes"})
		return
	}
	s.ToggleSelected(input.Index)

	if err := cart.Save(ctx, userID, s); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": s.Items, "selected": s.Selected})
}

//
// ❌ DELETE /api/cart/:index
//
func RemoveFromCart(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Index invalide"})
		return
	}

	ctx := c.Request.Context()
	s := cart.Load(ctx, userID)
	if index < 0 || index >= len(s.Items) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Index hors bornes"})
		return
	}
	s.RemoveAt(index)

	if err := cart.Save(ctx, userID, s); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": s.Items, "selected": s.Selected})
}

//
// 🧹 DELETE /api/cart
//
func ClearCart(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := cart.Clear(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du vidage du panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Panier vidé avec succès"})
}

//
// ➡️ POST /api/cart/checkout — passe les lignes cochées à l'étape d'achat.
// Les lignes cochées quittent le panier et sont figées dans un document de
// sélection de la collection "cart", que l'écran d'achat peut recharger en
// repli si la liste explicite se perd en route.
//
func CheckoutSelected(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	email := c.GetString("email")

	ctx := c.Request.Context()
	s := cart.Load(ctx, userID)

	checked := s.SelectedItems()
	if len(checked) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please select at least one item before checkout."})
		return
	}

	s.RemoveSelected()
	if err := cart.Save(ctx, userID, s); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	saveSelectionDoc(ctx, userID, email, checked)

	c.JSON(http.StatusOK, gin.H{
		"items":     checked,
		"remaining": s.Items,
	})
}

// saveSelectionDoc remplace le document de sélection courant de
// l'utilisateur. Best effort : l'étape d'achat reçoit de toute façon la
// liste explicite dans la réponse.
func saveSelectionDoc(ctx context.Context, userID, email string, items []models.CartItem) {
	col := database.Collection(database.ColCart)
	col.DeleteMany(ctx, bson.M{"userId": userID, "selected": true})
	col.InsertOne(ctx, models.CartSelection{
		UserID:    userID,
		UserEmail: email,
		Selected:  true,
		Items:     items,
	})
}
