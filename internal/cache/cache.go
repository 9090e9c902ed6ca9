package cache

import (
	"context"
	"encoding/json"
	"time"

	"giftwrap_back_end/internal/database"
	"giftwrap_back_end/internal/models"
)

const (
	ProductCacheTTL = 10 * time.Minute
	FilterCacheTTL  = 10 * time.Minute

	productsKey = "products:all"
	filtersKey  = "filters:all"
)

// GetProducts lit la liste de produits en cache ; ok=false en cas de miss.
func GetProducts(ctx context.Context) ([]models.Product, bool) {
	data, err := database.Redis.Get(ctx, productsKey).Result()
	if err != nil || data == "" {
		return nil, false
	}
	var products []models.Product
	if err := json.Unmarshal([]byte(data), &products); err != nil {
		return nil, false
	}
	return products, true
}

// SetProducts met la liste de produits en cache.
func SetProducts(ctx context.Context, products []models.Product) {
	data, err := json.Marshal(products)
	if err != nil {
		return
	}
	database.Redis.Set(ctx, productsKey, data, ProductCacheTTL)
}

// GetFilters lit les catégories en cache ; ok=false en cas de miss.
func GetFilters(ctx context.Context) ([]string, bool) {
	data, err := database.Redis.Get(ctx, filtersKey).Result()
	if err != nil || data == "" {
		return nil, false
	}
	var filters []string
	if err := json.Unmarshal([]byte(data), &filters); err != nil {
		return nil, false
	}
	return filters, true
}

// SetFilters met les catégories en cache.
func SetFilters(ctx context.Context, filters []string) {
	data, err := json.Marshal(filters)
	if err != nil {
		return
	}
	database.Redis.Set(ctx, filtersKey, data, FilterCacheTTL)
}

// InvalidateCatalog invalide les caches produits et catégories après une
// mutation admin.
func InvalidateCatalog(ctx context.Context) {
	database.Redis.Del(ctx, productsKey, filtersKey)
}
