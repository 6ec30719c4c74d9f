package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ersonp/xungho/internal/domain/kinship"
	"github.com/ersonp/xungho/internal/domain/ports"
	"github.com/ersonp/xungho/internal/infrastructure/metrics"
)

// KinshipService answers relationship queries over a stored family tree.
// Each query reads a fresh snapshot; nothing is cached between queries.
type KinshipService struct {
	store ports.FamilyStore
}

// NewKinshipService creates a new KinshipService.
func NewKinshipService(store ports.FamilyStore) *KinshipService {
	return &KinshipService{store: store}
}

// Relate resolves how personA relates to personB, both given by ID.
func (s *KinshipService) Relate(ctx context.Context, personA, personB string, opts kinship.Options) (*kinship.Result, error) {
	done := metrics.TimeQuery()

	people, err := s.store.AllPeople(ctx)
	if err != nil {
		done("", metrics.OutcomeError)
		return nil, fmt.Errorf("loading people: %w", err)
	}
	edges, err := s.store.ListRelationships(ctx)
	if err != nil {
		done("", metrics.OutcomeError)
		return nil, fmt.Errorf("loading relationships: %w", err)
	}
	slog.Debug("loaded family snapshot",
		slog.Int("people", len(people)),
		slog.Int("edges", len(edges)),
	)

	result, err := kinship.Relate(people, edges, personA, personB, opts)
	if err != nil {
		outcome := metrics.OutcomeNotFound
		if errors.Is(err, kinship.ErrInvalidQuery) {
			outcome = metrics.OutcomeInvalid
		}
		done("", outcome)
		slog.Info("relationship query failed",
			slog.String("a", personA),
			slog.String("b", personB),
			slog.String("outcome", outcome),
		)
		return nil, err
	}

	outcome := metrics.OutcomeResolved
	if result.Terms.Approximate {
		outcome = metrics.OutcomeApproximate
	}
	kind := result.Classification.Kind.String()
	done(kind, outcome)
	metrics.Default().ObservePathHops(len(result.Hops))

	slog.Info("relationship resolved",
		slog.String("a", personA),
		slog.String("b", personB),
		slog.String("kind", kind),
		slog.Int("hops", len(result.Hops)),
		slog.Bool("approximate", result.Terms.Approximate),
	)
	return result, nil
}
