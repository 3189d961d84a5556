// Package snapshot assembles the read-only reference dataset the
// recommendation engine consumes. It refreshes from the repositories on an
// interval, serves a shared in-memory copy between refreshes, and optionally
// mirrors the dataset through Redis and into an S3 archive.
package snapshot

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/kimkim0621/events-marketing-ai/internal/domain"
)

// EventSource lists historical events.
type EventSource interface {
	List(ctx context.Context) ([]domain.HistoricalEvent, error)
}

// MediaSource lists the media catalog.
type MediaSource interface {
	List(ctx context.Context) ([]domain.MediaEntry, error)
}

// KnowledgeSource lists knowledge entries in insertion order.
type KnowledgeSource interface {
	List(ctx context.Context) ([]domain.KnowledgeEntry, error)
}

// Service serves dataset snapshots.
type Service struct {
	events    EventSource
	media     MediaSource
	knowledge KnowledgeSource
	cache     *Cache   // optional
	archive   *Archive // optional

	mu      sync.RWMutex
	current *domain.Dataset
}

// NewService wires the snapshot service. cache and archive may be nil.
func NewService(events EventSource, media MediaSource, knowledge KnowledgeSource, cache *Cache, archive *Archive) *Service {
	return &Service{events: events, media: media, knowledge: knowledge, cache: cache, archive: archive}
}

// Dataset returns the current snapshot, loading it on first use. Callers
// must treat the returned dataset as read-only.
func (s *Service) Dataset(ctx context.Context) (*domain.Dataset, error) {
	s.mu.RLock()
	ds := s.current
	s.mu.RUnlock()
	if ds != nil {
		return ds, nil
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			log.Printf("[snapshot] cache read failed: %v", err)
		} else if cached != nil {
			s.mu.Lock()
			s.current = cached
			s.mu.Unlock()
			return cached, nil
		}
	}

	return s.Refresh(ctx)
}

// Refresh reloads the snapshot from the repositories and repopulates the
// cache. The previous snapshot stays in service until the reload succeeds.
func (s *Service) Refresh(ctx context.Context) (*domain.Dataset, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh events: %w", err)
	}
	media, err := s.media.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh media: %w", err)
	}
	knowledge, err := s.knowledge.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh knowledge: %w", err)
	}

	ds := &domain.Dataset{Events: events, Media: media, Knowledge: knowledge}
	s.mu.Lock()
	s.current = ds
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.Set(ctx, ds); err != nil {
			log.Printf("[snapshot] cache write failed: %v", err)
		}
	}
	log.Printf("[snapshot] refreshed: %d events, %d media, %d knowledge entries",
		len(events), len(media), len(knowledge))
	return ds, nil
}

// ArchiveCurrent exports the current snapshot to the S3 archive. No-op
// without an archive.
func (s *Service) ArchiveCurrent(ctx context.Context) (string, error) {
	if s.archive == nil {
		return "", nil
	}
	ds, err := s.Dataset(ctx)
	if err != nil {
		return "", err
	}
	return s.archive.Export(ctx, ds)
}

// Start refreshes the snapshot on the given interval until ctx is done.
func (s *Service) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := s.Refresh(ctx); err != nil {
					log.Printf("[snapshot] refresh failed: %v", err)
				}
			}
		}
	}()
}
