package service

import (
	"context"
	"fmt"
	"log"

	"quizboard/internal/cache"
	"quizboard/internal/model"
	"quizboard/internal/repository"
)

// QuestionService serves the trivia catalog, keeping a Redis copy in
// front of MongoDB. The catalog's length is the selector's pool size.
type QuestionService struct {
	repo  repository.QuestionRepo
	cache cache.QuestionCache
}

// NewQuestionService creates a new question service
func NewQuestionService(repo repository.QuestionRepo, cache cache.QuestionCache) *QuestionService {
	return &QuestionService{
		repo:  repo,
		cache: cache,
	}
}

// GetCatalog returns every question in stable order, from cache when
// possible. Cache failures fall through to MongoDB.
func (s *QuestionService) GetCatalog(ctx context.Context) ([]*model.Question, error) {
	cached, err := s.cache.GetCatalog(ctx)
	if err != nil {
		log.Printf("question cache read failed: %v", err)
	}
	if cached != nil {
		return cached, nil
	}

	questions, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}

	if err := s.cache.SetCatalog(ctx, questions); err != nil {
		log.Printf("question cache write failed: %v", err)
	}
	return questions, nil
}

// PoolSize returns the number of questions available for selection
func (s *QuestionService) PoolSize(ctx context.Context) (int, error) {
	questions, err := s.GetCatalog(ctx)
	if err != nil {
		return 0, err
	}
	return len(questions), nil
}
