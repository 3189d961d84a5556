package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/kimkim0621/events-marketing-ai/internal/domain"
	"github.com/kimkim0621/events-marketing-ai/internal/optimizer"
)

// Recommender produces a campaign portfolio for one event request.
type Recommender interface {
	Recommend(req *domain.EventRequest, data *domain.Dataset) (*optimizer.Result, error)
}

// DatasetProvider serves the reference dataset snapshot.
type DatasetProvider interface {
	Dataset(ctx context.Context) (*domain.Dataset, error)
	Refresh(ctx context.Context) (*domain.Dataset, error)
	ArchiveCurrent(ctx context.Context) (string, error)
}

// EventStore persists uploaded historical events.
type EventStore interface {
	Add(ctx context.Context, e *domain.HistoricalEvent) (int, error)
}

// MediaStore persists uploaded media entries.
type MediaStore interface {
	Add(ctx context.Context, m *domain.MediaEntry) error
}

// KnowledgeStore persists uploaded knowledge entries.
type KnowledgeStore interface {
	Add(ctx context.Context, k *domain.KnowledgeEntry) (int, error)
}

// Handlers contains all HTTP handlers
type Handlers struct {
	engine    Recommender
	snapshots DatasetProvider
	events    EventStore
	media     MediaStore
	knowledge KnowledgeStore
	startedAt time.Time
}

// NewHandlers creates a new Handlers instance
func NewHandlers(engine Recommender, snapshots DatasetProvider, events EventStore, media MediaStore, knowledge KnowledgeStore) *Handlers {
	return &Handlers{
		engine:    engine,
		snapshots: snapshots,
		events:    events,
		media:     media,
		knowledge: knowledge,
		startedAt: time.Now(),
	}
}

// Root returns service identity.
func (h *Handlers) Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"service": "events-marketing-ai",
		"version": "1.0.0",
	})
}

// HealthCheck reports liveness and uptime.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"uptime": time.Since(h.startedAt).String(),
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// SuggestCampaigns runs the recommendation pipeline for one event request.
func (h *Handlers) SuggestCampaigns(w http.ResponseWriter, r *http.Request) {
	var req domain.EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	data, err := h.snapshots.Dataset(r.Context())
	if err != nil {
		log.Printf("[api] dataset load failed: %v", err)
		respondError(w, http.StatusInternalServerError, "reference data unavailable")
		return
	}

	result, err := h.engine.Recommend(&req, data)
	if err != nil {
		log.Printf("[api] recommend failed for event %q: %v", req.Name, err)
		respondError(w, http.StatusInternalServerError, "recommendation failed")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// HistoricalEvents returns all historical events from the snapshot.
func (h *Handlers) HistoricalEvents(w http.ResponseWriter, r *http.Request) {
	data, err := h.snapshots.Dataset(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "reference data unavailable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"events": data.Events})
}

// MediaPerformance returns the media catalog from the snapshot.
func (h *Handlers) MediaPerformance(w http.ResponseWriter, r *http.Request) {
	data, err := h.snapshots.Dataset(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "reference data unavailable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"media_performance": data.Media})
}

// Knowledge returns the knowledge base from the snapshot.
func (h *Handlers) Knowledge(w http.ResponseWriter, r *http.Request) {
	data, err := h.snapshots.Dataset(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "reference data unavailable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"knowledge": data.Knowledge})
}

// UploadEvent stores a historical event and refreshes the snapshot.
func (h *Handlers) UploadEvent(w http.ResponseWriter, r *http.Request) {
	var e domain.HistoricalEvent
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if e.Name == "" || e.TargetAttendees <= 0 {
		respondError(w, http.StatusUnprocessableEntity, "event_name and positive target_attendees are required")
		return
	}

	id, err := h.events.Add(r.Context(), &e)
	if err != nil {
		log.Printf("[api] upload event failed: %v", err)
		respondError(w, http.StatusInternalServerError, "event upload failed")
		return
	}
	h.refreshAndArchive(r.Context())
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "event data added",
		"id":      id,
	})
}

// UploadMedia stores a media entry and refreshes the snapshot.
func (h *Handlers) UploadMedia(w http.ResponseWriter, r *http.Request) {
	var m domain.MediaEntry
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if m.Name == "" {
		respondError(w, http.StatusUnprocessableEntity, "media_name is required")
		return
	}

	if err := h.media.Add(r.Context(), &m); err != nil {
		log.Printf("[api] upload media failed: %v", err)
		respondError(w, http.StatusInternalServerError, "media upload failed")
		return
	}
	h.refreshAndArchive(r.Context())
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "media data added",
	})
}

// UploadKnowledge stores a knowledge entry and refreshes the snapshot.
func (h *Handlers) UploadKnowledge(w http.ResponseWriter, r *http.Request) {
	var k domain.KnowledgeEntry
	if err := json.NewDecoder(r.Body).Decode(&k); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if k.Title == "" || k.Content == "" {
		respondError(w, http.StatusUnprocessableEntity, "title and content are required")
		return
	}

	id, err := h.knowledge.Add(r.Context(), &k)
	if err != nil {
		log.Printf("[api] upload knowledge failed: %v", err)
		respondError(w, http.StatusInternalServerError, "knowledge upload failed")
		return
	}
	h.refreshAndArchive(r.Context())
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "knowledge entry added",
		"id":      id,
	})
}

// refreshAndArchive updates the snapshot after a write. Both steps are
// best-effort: the write already succeeded and the next poll will catch up.
func (h *Handlers) refreshAndArchive(ctx context.Context) {
	if _, err := h.snapshots.Refresh(ctx); err != nil {
		log.Printf("[api] snapshot refresh after upload failed: %v", err)
		return
	}
	if _, err := h.snapshots.ArchiveCurrent(ctx); err != nil {
		log.Printf("[api] dataset archive after upload failed: %v", err)
	}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[api] JSON encode error: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
