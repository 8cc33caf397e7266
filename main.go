// @title NumiViz Backend API
// @version 1.0
// @description Serveur backend de la plateforme NumiViz (analyse numérique).

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"
	"numiviz_backend/internal/app"
	"numiviz_backend/internal/config"
	"numiviz_backend/pkg/logger"
)

func main() {
	// Paramètres en ligne de commande
	migrateOnly := flag.Bool("migrate-only", false, "exécute les migrations puis quitte")
	migrate := flag.Bool("migrate", false, "force les migrations au démarrage (même en mode release)")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("migrations terminées, arrêt du programme")
		return
	}

	application.Run()
}
