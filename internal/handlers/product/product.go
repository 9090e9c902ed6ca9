package product

import (
	"context"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"giftwrap_back_end/internal/cache"
	"giftwrap_back_end/internal/database"
	"giftwrap_back_end/internal/models"
	"giftwrap_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GET /api/products?category= — la liste du catalogue, triée par nom.
// Les documents bruts passent par la normalisation permissive ; la liste
// complète est cachée dans Redis.
func GetProducts(c *gin.Context) {
	ctx := c.Request.Context()
	category := c.Query("category")

	products, ok := cache.GetProducts(ctx)
	if !ok {
		var err error
		products, err = loadProducts(ctx)
		if err != nil {
			log.Println("❌ Erreur lecture produits:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération produits"})
			return
		}
		cache.SetProducts(ctx, products)
	}

	if category != "" && !strings.EqualFold(category, "All") {
		filtered := []models.Product{}
		for _, p := range products {
			if strings.EqualFold(p.Category, category) {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GET /api/products/:id
func GetProductByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var doc bson.M
	if err := database.Collection(database.ColProducts).FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	c.JSON(http.StatusOK, models.NormalizeProductDoc(doc))
}

// GET /api/products/search?q=&category= — recherche Elasticsearch, avec
// repli MongoDB (filtrage substring insensible à la casse) quand Elastic
// n'est pas disponible.
func SearchProducts(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	category := c.Query("category")

	if query == "" {
		GetProducts(c)
		return
	}

	if database.Elastic != nil {
		results, err := services.SearchProducts(query)
		if err == nil {
			c.JSON(http.StatusOK, gin.H{"products": filterByCategory(results, category)})
			return
		}
		log.Println("⚠️ Recherche Elastic échouée, repli MongoDB:", err)
	}

	ctx := c.Request.Context()
	products, ok := cache.GetProducts(ctx)
	if !ok {
		var err error
		products, err = loadProducts(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération produits"})
			return
		}
		cache.SetProducts(ctx, products)
	}

	matched := []models.Product{}
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) {
			matched = append(matched, p)
		}
	}

	c.JSON(http.StatusOK, gin.H{"products": filterByCategory(matched, category)})
}

// GET /api/filters — les catégories : celles par défaut puis celles de
// l'admin, dédupliquées, dans cet ordre.
func GetFilters(c *gin.Context) {
	ctx := c.Request.Context()

	if filters, ok := cache.GetFilters(ctx); ok {
		c.JSON(http.StatusOK, gin.H{"filters": filters})
		return
	}

	cursor, err := database.Collection(database.ColFilters).Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération filtres"})
		return
	}
	defer cursor.Close(ctx)

	var stored []models.Filter
	if err := cursor.All(ctx, &stored); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage filtres"})
		return
	}

	seen := map[string]bool{}
	filters := []string{}
	for _, name := range models.DefaultFilters {
		if !seen[name] {
			seen[name] = true
			filters = append(filters, name)
		}
	}
	for _, f := range stored {
		if f.Name != "" && !seen[f.Name] {
			seen[f.Name] = true
			filters = append(filters, f.Name)
		}
	}

	cache.SetFilters(ctx, filters)
	c.JSON(http.StatusOK, gin.H{"filters": filters})
}

func loadProducts(ctx context.Context) ([]models.Product, error) {
	cursor, err := database.Collection(database.ColProducts).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(docs))
	for _, doc := range docs {
		products = append(products, models.NormalizeProductDoc(doc))
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].Name < products[j].Name
	})
	return products, nil
}

func filterByCategory(products []models.Product, category string) []models.Product {
	if category == "" || strings.EqualFold(category, "All") {
		return products
	}
	filtered := []models.Product{}
	for _, p := range products {
		if strings.EqualFold(p.Category, category) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
