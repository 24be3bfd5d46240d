package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"planhotel/internal/config"
	"planhotel/internal/server"
	"planhotel/internal/util"
)

var (
	port    = flag.Int("port", 0, "port d'écoute (prioritaire sur config.toml)")
	devMode = flag.Bool("dev", false, "mode développement")
	dataDir = flag.String("dataDir", "", "répertoire de données (remplace la configuration)")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  PlanHotel - Analyse du planning hôtelier")
	fmt.Println("==========================================")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("chargement de la configuration impossible, valeurs par défaut: %v", err)
		cfg = config.DefaultConfig()
	}

	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}

	if dir, err := config.EnsureDataDir(cfg); err != nil {
		log.Printf("création du répertoire de données impossible: %v", err)
	} else {
		fmt.Printf("Répertoire de données: %s\n", dir)
	}

	srv := server.NewServer(cfg)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	go func() {
		fmt.Printf("Démarrage du service sur le port %d ...\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			log.Fatalf("démarrage du serveur impossible: %v", err)
		}
	}()

	if !cfg.Server.DevMode {
		fmt.Printf("Ouverture du navigateur: %s\n", url)
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Printf("Ouverture automatique impossible, rendez-vous sur: %s\n", url)
		}
	} else {
		fmt.Printf("Mode développement: %s\n", url)
	}

	fmt.Println("\nCtrl+C pour arrêter le service...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nArrêt du service.")
}
