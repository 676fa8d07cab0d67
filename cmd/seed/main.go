package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"quizboard/internal/cache"
	"quizboard/internal/model"
	"quizboard/internal/repository"
)

// Seeds the question catalog with a starter set so a fresh install
// has something to play with.
func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	repo := repository.NewQuestionRepo(client.Database("quizboard"))

	count, err := repo.Count(ctx)
	if err != nil {
		log.Fatalf("Failed to count questions: %v", err)
	}
	if count > 0 {
		log.Printf("Catalog already has %d questions, nothing to do", count)
		return
	}

	questions := []*model.Question{
		{
			Prompt:  "Which planet has the most moons?",
			Answer:  "Saturn",
			Choices: []string{"Jupiter", "Saturn", "Uranus", "Neptune"},
		},
		{
			Prompt:  "What is the largest ocean on Earth?",
			Answer:  "Pacific",
			Choices: []string{"Atlantic", "Indian", "Pacific", "Arctic"},
		},
		{
			Prompt:  "In what year did the first person walk on the Moon?",
			Answer:  "1969",
			Choices: []string{"1965", "1967", "1969", "1971"},
		},
		{
			Prompt:  "Which element has the chemical symbol Au?",
			Answer:  "Gold",
			Choices: []string{"Silver", "Gold", "Aluminium", "Argon"},
		},
		{
			Prompt:  "What is the longest river in the world?",
			Answer:  "Nile",
			Choices: []string{"Amazon", "Nile", "Yangtze", "Mississippi"},
		},
		{
			Prompt:  "Which country invented paper?",
			Answer:  "China",
			Choices: []string{"Egypt", "Greece", "China", "India"},
		},
	}

	for _, q := range questions {
		if err := repo.Create(ctx, q); err != nil {
			log.Fatalf("Failed to insert question: %v", err)
		}
	}

	log.Printf("Seeded %d questions", len(questions))

	// Drop the cached catalog so a running server picks up the new
	// questions right away instead of after the TTL.
	redisAddr := os.Getenv("REDIS_URI")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	if len(redisAddr) > 8 && redisAddr[:8] == "redis://" {
		redisAddr = redisAddr[8:]
	}
	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer rdb.Close()

	if err := cache.NewQuestionCache(rdb).Invalidate(ctx); err != nil {
		log.Printf("Warning: failed to invalidate question cache: %v", err)
	}
}
