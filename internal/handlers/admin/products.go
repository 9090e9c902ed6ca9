package admin

import (
	"context"
	"log"
	"net/http"
	"time"

	"giftwrap_back_end/internal/cache"
	"giftwrap_back_end/internal/database"
	"giftwrap_back_end/internal/models"
	"giftwrap_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type productInput struct {
	Name           string   `json:"name"`
	Price          float64  `json:"price"`
	Category       string   `json:"category"`
	Description    string   `json:"description"`
	Picture        string   `json:"picture"`
	ProductsImages []string `json:"productsImages"`
}

// POST /api/admin/products
func CreateProduct(c *gin.Context) {
	var input productInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le nom du produit est requis"})
		return
	}
	if input.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le prix doit être supérieur à zéro"})
		return
	}

	product := models.Product{
		ID:             primitive.NewObjectID(),
		Name:           input.Name,
		Price:          input.Price,
		Category:       input.Category,
		Description:    input.Description,
		Picture:        input.Picture,
		ProductsImages: input.ProductsImages,
		CreatedAt:      time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := database.Collection(database.ColProducts).InsertOne(ctx, product); err != nil {
		log.Println("❌ Erreur création produit:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création produit"})
		return
	}

	services.IndexProduct(product)
	cache.InvalidateCatalog(ctx)

	log.Println("✅ Produit créé :", product.Name)
	c.JSON(http.StatusCreated, product)
}

// PUT /api/admin/products/:id
func UpdateProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var input productInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	update := bson.M{}
	if input.Name != "" {
		update["name"] = input.Name
	}
	if input.Price > 0 {
		update["price"] = input.Price
	}
	if input.Category != "" {
		update["category"] = input.Category
	}
	if input.Description != "" {
		update["description"] = input.Description
	}
	if input.Picture != "" {
		update["picture"] = input.Picture
	}
	if len(input.ProductsImages) > 0 {
		update["productsImages"] = input.ProductsImages
	}
	if len(update) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucun champ à modifier"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := database.Collection(database.ColProducts).UpdateOne(ctx,
		bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	var doc bson.M
	if err := database.Collection(database.ColProducts).FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err == nil {
		services.IndexProduct(models.NormalizeProductDoc(doc))
	}
	cache.InvalidateCatalog(ctx)

	c.JSON(http.StatusOK, gin.H{"message": "Produit mis à jour"})
}

// DELETE /api/admin/products/:id
func DeleteProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := database.Collection(database.ColProducts).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression produit"})
		return
	}
	if res.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	services.RemoveProductFromIndex(id.Hex())
	cache.InvalidateCatalog(ctx)

	log.Println("✅ Produit supprimé :", id.Hex())
	c.JSON(http.StatusOK, gin.H{"message": "Produit supprimé"})
}
