package main

import (
	"bufio"
	"log"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"statvalue-backend/internal/cache"
	"statvalue-backend/internal/config"
	"statvalue-backend/internal/handler"
	"statvalue-backend/internal/store"
	"statvalue-backend/internal/valuation"
)

func init() {
	// Load .env by hand so local runs match deployment env vars.
	file, err := os.Open(".env")
	if err != nil {
		log.Println("no .env file, using system environment")
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) == 2 {
			os.Setenv(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]))
		}
	}
}

func main() {
	cfg := config.Load()

	if err := store.Init(cfg.DBPath); err != nil {
		log.Fatalf("store init failed: %v", err)
	}
	defer store.Close()

	if cfg.RedisAddr != "" {
		redisCache, err := cache.NewRedis(cfg.RedisAddr)
		if err != nil {
			log.Printf("redis unavailable, falling back to in-memory cache: %v", err)
		} else {
			defer redisCache.Close()
			store.SetCacheProvider(redisCache)
			log.Printf("redis cache connected: %s", cfg.RedisAddr)
		}
	}

	handler.SetPredictionContext(valuation.NewContext(cfg.ModelDir))

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	api := r.Group("/api")
	{
		api.POST("/auth/verify", handler.VerifyInviteCode)

		// Everything below requires a session token when an invite code is set.
		api.Use(handler.AuthMiddleware())

		// Rosters and search
		api.GET("/players/:position", handler.GetPlayersByPosition)
		api.GET("/players/:position/:id", handler.GetPlayerByID)
		api.GET("/search", handler.SearchPlayers)

		// Comparison
		api.POST("/compare", handler.ComparePlayers)
		api.POST("/similar", handler.SimilarPlayers)
		api.POST("/radar", handler.RadarCompare)

		// Market value projection
		api.POST("/predict", handler.Predict)
		api.GET("/player-history/:player_name", handler.GetPlayerHistory)
	}

	log.Printf("listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
