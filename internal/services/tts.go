package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/harshastride/interview-coach/internal/logger"
	"github.com/harshastride/interview-coach/internal/repos"
)

// TtsService is the cache half of the cache-or-generate contract; synthesis
// itself happens outside this process.
type TtsService interface {
	Get(ctx context.Context, term string) ([]byte, error)
	Save(ctx context.Context, term string, audio []byte) error
}

type ttsService struct {
	db        *gorm.DB
	log       *logger.Logger
	cacheRepo repos.TtsCacheRepo
}

func NewTtsService(db *gorm.DB, log *logger.Logger, cacheRepo repos.TtsCacheRepo) TtsService {
	serviceLog := log.With("service", "TtsService")
	return &ttsService{db: db, log: serviceLog, cacheRepo: cacheRepo}
}

func normalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

func (ts *ttsService) Get(ctx context.Context, term string) ([]byte, error) {
	entry, err := ts.cacheRepo.Get(ctx, nil, normalizeTerm(term))
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrNotFound
	}
	return entry.AudioData, nil
}

func (ts *ttsService) Save(ctx context.Context, term string, audio []byte) error {
	normalized := normalizeTerm(term)
	if normalized == "" || len(audio) == 0 {
		return validationError("missing term or audio")
	}
	return ts.cacheRepo.Upsert(ctx, nil, normalized, audio)
}
