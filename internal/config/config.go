package config

import (
	"log"

	"github.com/joho/godotenv"
)

// Load charge le .env du projet. En production il n'y en a pas : la config
// GiftWrap vient des variables d'environnement du conteneur.
func Load() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Configuration GiftWrap chargée depuis .env")
	}
}
