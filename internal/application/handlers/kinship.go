package handlers

import (
	"context"

	"github.com/ersonp/xungho/internal/domain/entities"
	"github.com/ersonp/xungho/internal/domain/kinship"
	"github.com/ersonp/xungho/internal/domain/services"
	"github.com/ersonp/xungho/internal/infrastructure/config"
)

// KinshipHandler answers "who is B to A" queries.
type KinshipHandler struct {
	family   *services.FamilyService
	kinship  *services.KinshipService
	defaults kinship.Options
}

// NewKinshipHandler creates a new KinshipHandler. defaults apply when a
// query leaves region or generation cap unset.
func NewKinshipHandler(family *services.FamilyService, kin *services.KinshipService, defaults kinship.Options) *KinshipHandler {
	return &KinshipHandler{
		family:   family,
		kinship:  kin,
		defaults: defaults,
	}
}

// WhoOptions overrides the defaults for a single query.
type WhoOptions struct {
	Region        string // bac, trung or nam; empty keeps the default
	MaxGeneration int    // 0 keeps the default
}

// WhoResult is a resolved query with both people spelled out.
type WhoResult struct {
	A      entities.Person `json:"a"`
	B      entities.Person `json:"b"`
	Region kinship.Region  `json:"region"`
	*kinship.Result
}

// HandleWho resolves how the person given by refA relates to the person
// given by refB. Both may be IDs or unique names.
func (h *KinshipHandler) HandleWho(ctx context.Context, refA, refB string, opts WhoOptions) (*WhoResult, error) {
	queryOpts := h.defaults
	if opts.Region != "" {
		region, err := kinship.ParseRegion(opts.Region)
		if err != nil {
			return nil, err
		}
		queryOpts.Region = region
	}
	if opts.MaxGeneration > 0 {
		queryOpts.MaxGeneration = opts.MaxGeneration
	}

	a, err := h.family.ResolvePerson(ctx, refA)
	if err != nil {
		return nil, err
	}
	b, err := h.family.ResolvePerson(ctx, refB)
	if err != nil {
		return nil, err
	}

	result, err := h.kinship.Relate(ctx, a.ID, b.ID, queryOpts)
	if err != nil {
		return nil, err
	}

	return &WhoResult{
		A:      *a,
		B:      *b,
		Region: queryOpts.Region,
		Result: result,
	}, nil
}

// KinshipOptions builds query defaults from the kinship config. A tree's
// own region, when set, wins over the configured one.
func KinshipOptions(cfg config.KinshipConfig, treeRegion string) (kinship.Options, error) {
	code := cfg.Region
	if treeRegion != "" {
		code = treeRegion
	}
	region, err := kinship.ParseRegion(code)
	if err != nil {
		return kinship.Options{}, err
	}
	return kinship.Options{
		Region:        region,
		MaxGeneration: cfg.MaxGeneration,
	}, nil
}
