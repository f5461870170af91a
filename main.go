package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/matteosandrin/shady-directions/config"
	"github.com/matteosandrin/shady-directions/handlers"
	"github.com/matteosandrin/shady-directions/osm"
	"github.com/matteosandrin/shady-directions/services"
	"github.com/matteosandrin/shady-directions/shade"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default environment variables")
	}

	cfg := config.Load()

	topology := osm.NewClient(cfg.OverpassURL)

	var shadeProvider shade.Provider
	if cfg.ShadeMapURL != "" {
		shadeProvider = shade.NewHTTPProvider(cfg.ShadeMapURL)
	} else {
		log.Println("SHADEMAP_URL not set, routing without shade data")
	}

	var cache *services.TopologyCache
	if cfg.GraphCacheDir != "" {
		var err error
		cache, err = services.NewTopologyCache(cfg.GraphCacheDir)
		if err != nil {
			log.Fatalf("Failed to initialize topology cache: %v", err)
		}
		log.Printf("Topology cache enabled at %s", cfg.GraphCacheDir)
	}

	routeService := services.NewRouteService(topology, shadeProvider, cache, cfg)
	routeHandler := handlers.NewRouteHandler(routeService)

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"*"}
	r.Use(cors.New(corsConfig))

	routeHandler.RegisterRoutes(r)

	log.Printf("Shade route server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
