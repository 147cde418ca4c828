package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	"github.com/cliffdoyle/swiss-pairing-engine/internal/client"
	"github.com/cliffdoyle/swiss-pairing-engine/internal/config"
	"github.com/cliffdoyle/swiss-pairing-engine/internal/handler"
	"github.com/cliffdoyle/swiss-pairing-engine/internal/middleware"
	"github.com/cliffdoyle/swiss-pairing-engine/internal/repository"
	"github.com/cliffdoyle/swiss-pairing-engine/internal/service"
	"github.com/cliffdoyle/swiss-pairing-engine/internal/wsbroadcast"
)

func main() {
	cfg := config.Load()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("failed to ping database: %v", err)
	}
	log.Println("successfully connected to database")

	hub := wsbroadcast.NewHub()
	go hub.Run()

	tournamentRepo := repository.NewTournamentRepository(db)
	participantRepo := repository.NewParticipantRepository(db)
	roundRepo := repository.NewRoundRepository(db)
	matchRepo := repository.NewMatchRepository(db)

	ratingClient := client.NewRatingService()

	tournamentSvc := service.NewTournamentService(tournamentRepo, participantRepo, ratingClient)
	pairingSvc := service.NewPairingService(tournamentRepo, participantRepo, roundRepo, matchRepo, hub.Broadcast)
	standingsSvc := service.NewStandingsService(tournamentRepo, participantRepo, matchRepo, hub.Broadcast)

	tournamentHandler := handler.NewTournamentHandler(tournamentSvc)
	pairingHandler := handler.NewPairingHandler(pairingSvc, matchRepo)
	standingsHandler := handler.NewStandingsHandler(standingsSvc)

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.CORSOrigin}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/ws", func(c *gin.Context) {
		handler.ServeWs(hub, c)
	})

	router.POST("/tournaments", tournamentHandler.CreateTournament)
	router.GET("/tournaments/:id", tournamentHandler.GetTournament)
	router.POST("/tournaments/:id/participants", tournamentHandler.RegisterParticipant)
	router.GET("/tournaments/:id/participants", tournamentHandler.ListParticipants)
	router.DELETE("/tournaments/:id/participants/:participantId", tournamentHandler.WithdrawParticipant)
	router.GET("/tournaments/:id/standings", standingsHandler.GetStandings)
	router.GET("/tournaments/:id/rounds/:round/pairings", pairingHandler.GetRoundPairings)

	organizer := router.Group("")
	organizer.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		organizer.POST("/tournaments/:id/rounds/:round/pairings", pairingHandler.GenerateRound)
	}

	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Printf("server starting on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited properly")
}
