package cart

import (
	"context"
	"encoding/json"
	"time"

	"giftwrap_back_end/internal/database"
)

// CartTTL : un panier inactif expire au bout de 30 jours.
const CartTTL = 30 * 24 * time.Hour

func key(userID string) string {
	return "cart:" + userID
}

// Load charge le panier de l'utilisateur. Clé absente ou illisible :
// panier vide.
func Load(ctx context.Context, userID string) *State {
	data, err := database.Redis.Get(ctx, key(userID)).Result()
	if err != nil || data == "" {
		return NewState()
	}

	var s State
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return NewState()
	}
	s.realign()
	return &s
}

// Save réécrit entièrement le panier sous la clé de l'utilisateur et
// notifie le canal pub/sub pour la synchro temps réel.
func Save(ctx context.Context, userID string, s *State) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := database.Redis.Set(ctx, key(userID), data, CartTTL).Err(); err != nil {
		return err
	}
	database.Redis.Publish(ctx, key(userID), "updated")
	return nil
}

// Clear supprime complètement la clé du panier.
func Clear(ctx context.Context, userID string) error {
	if err := database.Redis.Del(ctx, key(userID)).Err(); err != nil {
		return err
	}
	database.Redis.Publish(ctx, key(userID), "cleared")
	return nil
}

// Channel est le canal pub/sub écouté par le websocket de synchro panier.
func Channel(userID string) string {
	return key(userID)
}
