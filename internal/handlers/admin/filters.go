package admin

import (
	"context"
	"net/http"
	"strings"
	"time"

	"giftwrap_back_end/internal/cache"
	"giftwrap_back_end/internal/database"
	"giftwrap_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// POST /api/admin/filters — ajoute une catégorie personnalisée.
func CreateFilter(c *gin.Context) {
	var input struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le nom de la catégorie est requis"})
		return
	}
	for _, d := range models.DefaultFilters {
		if strings.EqualFold(d, name) {
			c.JSON(http.StatusConflict, gin.H{"error": "Cette catégorie existe déjà"})
			return
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := database.Collection(database.ColFilters).CountDocuments(ctx, bson.M{"name": name})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur vérification catégorie"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Cette catégorie existe déjà"})
		return
	}

	filter := models.Filter{Name: name, CreatedAt: time.Now()}
	if _, err := database.Collection(database.ColFilters).InsertOne(ctx, bson.M{
		"name":      filter.Name,
		"createdAt": filter.CreatedAt,
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création catégorie"})
		return
	}

	cache.InvalidateCatalog(ctx)
	c.JSON(http.StatusCreated, gin.H{"message": "Catégorie créée", "name": name})
}

// DELETE /api/admin/filters/:name — supprime une catégorie personnalisée.
// Refusé si des produits l'utilisent encore, et pour les catégories par
// défaut.
func DeleteFilter(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le nom de la catégorie est requis"})
		return
	}
	for _, d := range models.DefaultFilters {
		if strings.EqualFold(d, name) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Les catégories par défaut ne peuvent pas être supprimées"})
			return
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	inUse, err := database.Collection(database.ColProducts).CountDocuments(ctx, bson.M{"category": name})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur vérification catégorie"})
		return
	}
	if inUse > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Des produits utilisent encore cette catégorie"})
		return
	}

	res, err := database.Collection(database.ColFilters).DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression catégorie"})
		return
	}
	if res.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Catégorie introuvable"})
		return
	}

	cache.InvalidateCatalog(ctx)
	c.JSON(http.StatusOK, gin.H{"message": "Catégorie supprimée"})
}
