package sysconfig

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/events"
	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/storage"
)

type Service interface {
	// Get returns the value of key, reading through the cache.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) (*Entry, error)
	// LoadAll warms the cache with every stored entry and returns how many were loaded.
	LoadAll(ctx context.Context) (int, error)
	// UploadLogo shrinks the image, stores it and points HOTEL_LOGO_URL at it.
	UploadLogo(ctx context.Context, content io.Reader) (*Entry, error)
}

type service struct {
	repo      Repository
	cache     Cache
	storage   storage.Storage
	images    *storage.ImageProcessor
	publisher events.Publisher
	log       *zap.Logger
	now       func() time.Time
}

func NewService(repo Repository, cache Cache, store storage.Storage, images *storage.ImageProcessor, publisher events.Publisher, log *zap.Logger) Service {
	return &service{
		repo:      repo,
		cache:     cache,
		storage:   store,
		images:    images,
		publisher: publisher,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Get(ctx context.Context, key string) (string, error) {
	key = NormalizeKey(key)
	if key == "" {
		return "", ErrKeyRequired
	}

	val, err := s.cache.Get(ctx, key)
	if err == nil {
		return val, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		s.log.Warn("config cache read failed", zap.String("key", key), zap.Error(err))
	}

	entry, err := s.repo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", err
		}
		return "", apperror.Internal(fmt.Errorf("load config %s: %w", key, err), "failed to read configuration")
	}

	if err := s.cache.Set(ctx, key, entry.Value); err != nil {
		s.log.Warn("config cache fill failed", zap.String("key", key), zap.Error(err))
		return entry.Value, nil
	}
	s.dropStaleFill(ctx, entry)
	return entry.Value, nil
}

// dropStaleFill re-reads the store after a cache fill and evicts the key if a Set committed in between.
func (s *service) dropStaleFill(ctx context.Context, filled *Entry) {
	cur, err := s.repo.Get(ctx, filled.Key)
	if err == nil && cur.Value == filled.Value && cur.UpdatedAt.Equal(filled.UpdatedAt) {
		return
	}
	if err := s.cache.Delete(ctx, filled.Key); err != nil {
		s.log.Warn("config cache invalidation failed", zap.String("key", filled.Key), zap.Error(err))
	}
}

func (s *service) Set(ctx context.Context, key, value string) (*Entry, error) {
	key = NormalizeKey(key)
	if key == "" {
		return nil, ErrKeyRequired
	}

	entry, err := s.repo.Upsert(ctx, key, value, s.now())
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("store config %s: %w", key, err), "failed to update configuration")
	}

	// The next Get reloads from the store.
	if err := s.cache.Delete(ctx, key); err != nil {
		s.log.Warn("config cache invalidation failed", zap.String("key", key), zap.Error(err))
	}

	if err := s.publisher.Publish(ctx, events.New(events.ConfigUpdated, key, map[string]string{"key": key})); err != nil {
		s.log.Warn("config event not published", zap.String("key", key), zap.Error(err))
	}
	return entry, nil
}

func (s *service) LoadAll(ctx context.Context) (int, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list system configs: %w", err)
	}
	loaded := 0
	for _, e := range entries {
		if err := s.cache.Set(ctx, e.Key, e.Value); err != nil {
			s.log.Warn("config cache warm-up failed", zap.String("key", e.Key), zap.Error(err))
			continue
		}
		loaded++
	}
	return loaded, nil
}

func (s *service) UploadLogo(ctx context.Context, content io.Reader) (*Entry, error) {
	img, err := s.images.FitPNG(content, logoMaxWidth, logoMaxHeight)
	if err != nil {
		return nil, apperror.Wrap(err, ErrInvalidImage.Code, ErrInvalidImage.Message)
	}

	if err := s.storage.Save(ctx, logoPath, img, "image/png"); err != nil {
		return nil, apperror.Internal(fmt.Errorf("save logo: %w", err), "failed to store logo")
	}

	return s.Set(ctx, KeyHotelLogoURL, s.storage.URL(logoPath))
}
