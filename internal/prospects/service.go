package prospects

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/bcnlabs/prospect-ai-platform/internal/auth"
	"github.com/bcnlabs/prospect-ai-platform/internal/directory"
	"github.com/bcnlabs/prospect-ai-platform/internal/geo"
	"github.com/bcnlabs/prospect-ai-platform/internal/observability/metrics"
	"github.com/bcnlabs/prospect-ai-platform/pkg/logging"
)

var searchTracer = otel.Tracer("prospect.internal.prospects.service")

// TargetTitles are the product-leadership roles a search looks for.
var TargetTitles = []string{
	"Chief Product Officer",
	"VP Product",
	"VP of Product",
	"Head of Product",
	"Vice President of Product",
	"Director of Product",
	"Product Director",
	"CPO",
}

// DirectoryClient retrieves raw position records.
type DirectoryClient interface {
	SearchPositions(ctx context.Context, query directory.SearchQuery) ([]directory.Position, error)
}

// SessionCounter hands out the per-owner search session number that drives
// offset rotation.
type SessionCounter interface {
	Next(ctx context.Context, ownerID string) (int, error)
}

// ServiceConfig wires the search pipeline dependencies.
type ServiceConfig struct {
	Directory DirectoryClient // nil when the directory credential is not configured
	Repo      Repository
	Sessions  SessionCounter
	Metrics   *metrics.PipelineMetrics
	Logger    *logging.Logger
	Limit     int // directory page size
	ResultCap int // max prospects kept per search
}

// Service runs the search pipeline: resolve location, query the directory,
// normalize, persist.
type Service struct {
	directory DirectoryClient
	repo      Repository
	sessions  SessionCounter
	metrics   *metrics.PipelineMetrics
	logger    *logging.Logger
	limit     int
	resultCap int
}

// NewService creates the pipeline service.
func NewService(cfg ServiceConfig) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	limit := cfg.Limit
	if limit <= 0 {
		limit = 10
	}
	resultCap := cfg.ResultCap
	if resultCap <= 0 {
		resultCap = 6
	}
	return &Service{
		directory: cfg.Directory,
		repo:      cfg.Repo,
		sessions:  cfg.Sessions,
		metrics:   cfg.Metrics,
		logger:    logger,
		limit:     limit,
		resultCap: resultCap,
	}
}

// SearchResult is what a completed search round returns to the caller.
type SearchResult struct {
	Prospects      []Prospect `json:"prospects"`
	Count          int        `json:"count"`
	SearchLocation string     `json:"searchLocation"`
	SearchTitles   []string   `json:"searchTitles"`
}

// Search runs one pipeline round for the principal and replaces their stored
// prospect set. A directory failure aborts before any destructive write, so
// the previous set stays intact.
func (s *Service) Search(ctx context.Context, principal auth.Principal, countryOverride string) (*SearchResult, error) {
	ctx, span := searchTracer.Start(ctx, "prospects.search", trace.WithAttributes(
		attribute.String("prospect.owner_id", principal.ID),
	))
	defer span.End()

	if s.directory == nil {
		s.metrics.ObserveSearch("config_error", 0)
		return nil, directory.ErrMissingAPIKey
	}

	country := countryOverride
	if country == "" {
		country = geo.ResolveCountry(principal.Metadata)
	}
	span.SetAttributes(attribute.String("prospect.country", country))

	session := s.nextSession(ctx, principal.ID)
	offset := directory.RotateOffset(session, s.limit)

	start := time.Now()
	records, err := s.directory.SearchPositions(ctx, directory.SearchQuery{
		Country: country,
		Titles:  TargetTitles,
		Limit:   s.limit,
		Offset:  offset,
	})
	s.metrics.ObserveDirectoryLatency(time.Since(start).Seconds())
	if err != nil {
		s.metrics.ObserveSearch("directory_error", 0)
		s.logger.Error("directory search failed", "error", err, "country", country, "offset", offset)
		return nil, err
	}

	picked := directory.ShuffleAndCap(records, int64(session), s.resultCap)
	normalized := Normalize(picked, country)

	now := time.Now().UTC()
	for i := range normalized {
		normalized[i].ID = uuid.NewString()
		normalized[i].OwnerID = principal.ID
		normalized[i].CreatedAt = now
	}

	if err := s.repo.ReplaceForOwner(ctx, principal.ID, normalized); err != nil {
		s.metrics.ObserveSearch("storage_error", 0)
		s.logger.Error("failed to persist prospects", "error", err, "owner_id", principal.ID)
		return nil, err
	}

	s.metrics.ObserveSearch("ok", len(normalized))
	s.logger.Info("prospect search completed",
		"owner_id", principal.ID,
		"country", country,
		"session", session,
		"raw_records", len(records),
		"persisted", len(normalized),
	)

	return &SearchResult{
		Prospects:      normalized,
		Count:          len(normalized),
		SearchLocation: country,
		SearchTitles:   TargetTitles,
	}, nil
}

// nextSession fetches the next search session number. Variety is best effort;
// a counter failure falls back to session zero rather than failing the search.
func (s *Service) nextSession(ctx context.Context, ownerID string) int {
	if s.sessions == nil {
		return 0
	}
	session, err := s.sessions.Next(ctx, ownerID)
	if err != nil {
		s.logger.Warn("session counter unavailable", "error", err, "owner_id", ownerID)
		return 0
	}
	return session
}

// List returns the owner's stored prospects, newest first.
func (s *Service) List(ctx context.Context, ownerID string) ([]Prospect, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Delete removes one prospect scoped to the owner.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	return s.repo.Delete(ctx, ownerID, id)
}
