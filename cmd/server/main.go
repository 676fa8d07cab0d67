package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"quizboard/internal/cache"
	"quizboard/internal/config"
	"quizboard/internal/repository"
	"quizboard/internal/service"
	"quizboard/internal/transport/rest"
	"quizboard/internal/transport/ws"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database("quizboard")

	// Redis connection
	redisAddr := cfg.RedisAddr
	if len(redisAddr) > 8 && redisAddr[:8] == "redis://" {
		redisAddr = redisAddr[8:]
	}
	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Repositories and caches
	questionRepo := repository.NewQuestionRepo(db)
	userRepo := repository.NewUserRepo(db)
	questionCache := cache.NewQuestionCache(rdb)

	// Services
	authSvc := service.NewAuthService(cfg.JWTSecret, cfg.TokenTTL)
	accountSvc := service.NewAccountService(userRepo, authSvc)
	questionSvc := service.NewQuestionService(questionRepo, questionCache)

	turns := service.NewTurnScheduler()
	selector := service.NewQuestionSelector()
	sessions := service.NewSessionStore(turns)

	// Session hub; all room state lives behind it
	hub := ws.NewHub(sessions, turns, selector, questionSvc)
	wsHandler := ws.NewHandler(hub, authSvc)
	log.Println("Session hub started")

	router := rest.NewRouter(&rest.Container{
		AuthService:     authSvc,
		AccountService:  accountSvc,
		QuestionService: questionSvc,
		WSHandler:       wsHandler,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/register")
		log.Println("  POST /v1/auth/login")
		log.Println("  GET  /v1/questions")
		log.Println("  WS   /v1/ws")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
