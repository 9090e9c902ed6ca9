package user

import (
	"context"
	"log"
	"net/http"
	"time"

	"giftwrap_back_end/internal/cart"
	"giftwrap_back_end/internal/checkout"
	"giftwrap_back_end/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// pingInterval cadence la détection des clients déconnectés sans close
// frame.
var pingInterval = 30 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Autoriser toutes les origines (à ajuster en production)
		return true
	},
}

// CartWebSocket gère la synchronisation temps réel du panier : chaque
// mutation publie sur le canal Redis de l'utilisateur et tous ses appareils
// connectés reçoivent l'état à jour.
func CartWebSocket(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx := context.Background()

	pubsub := database.Redis.Subscribe(ctx, cart.Channel(userID))
	defer pubsub.Close()

	ch := pubsub.Channel()

	conn.WriteJSON(map[string]interface{}{
		"type":    "connected",
		"message": "Synchronisation panier activée",
	})

	// Boucle d'écoute
	for {
		select {
		case msg := <-ch:
			if msg.Payload != "updated" && msg.Payload != "cleared" {
				continue
			}

			s := cart.Load(ctx, userID)
			count := 0
			for _, it := range s.Items {
				count += it.Qty
			}

			if err := conn.WriteJSON(map[string]interface{}{
				"type":     "cart_updated",
				"items":    s.Items,
				"selected": s.Selected,
				"total":    checkout.Total(s.Items),
				"count":    count,
			}); err != nil {
				log.Printf("❌ Erreur envoi WebSocket: %v", err)
				return
			}
		case <-time.After(pingInterval):
			// Ping pour détecter les clients déconnectés sans close frame
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
