package api

import (
	"context"
	"crypto/sha256"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"mediashelf/internal/catalog"
	"mediashelf/internal/datastore"
	"mediashelf/internal/facets"
	"mediashelf/internal/query"
	"mediashelf/internal/validation"
)

// Loader supplies the current catalog.
type Loader interface {
	Load(ctx context.Context) (datastore.Result, error)
}

// Snapshot holds everything derived from one catalog text.
type Snapshot struct {
	Records     []catalog.Record
	Meta        facets.Meta
	Diagnostics []validation.Diagnostic
}

// CatalogService answers item, facet and validation queries.
type CatalogService struct {
	loader    Loader
	engine    *query.Engine
	snapshots *lru.Cache[[sha256.Size]byte, *Snapshot]
}

// NewCatalogService returns a service that sorts using locale and keeps up
// to cacheEntries parsed snapshots.
func NewCatalogService(loader Loader, locale string, cacheEntries int) (*CatalogService, error) {
	if cacheEntries < 1 {
		cacheEntries = 1
	}
	cache, err := lru.New[[sha256.Size]byte, *Snapshot](cacheEntries)
	if err != nil {
		return nil, fmt.Errorf("create snapshot cache: %w", err)
	}
	return &CatalogService{
		loader:    loader,
		engine:    query.NewEngine(locale),
		snapshots: cache,
	}, nil
}

// Current loads the catalog and returns its snapshot and origin.
func (s *CatalogService) Current(ctx context.Context) (*Snapshot, datastore.Origin, error) {
	result, err := s.loader.Load(ctx)
	if err != nil {
		return nil, "", err
	}
	return s.snapshot(result), result.Origin, nil
}

func (s *CatalogService) snapshot(result datastore.Result) *Snapshot {
	key := sha256.Sum256([]byte(result.Text))
	if snap, ok := s.snapshots.Get(key); ok {
		return snap
	}
	snap := &Snapshot{
		Records:     result.Records,
		Meta:        facets.Extract(result.Records),
		Diagnostics: validation.Validate(result.Records),
	}
	s.snapshots.Add(key, snap)
	return snap
}

// CachedSnapshots reports how many snapshots are cached.
func (s *CatalogService) CachedSnapshots() int {
	return s.snapshots.Len()
}

// Items filters then sorts the current catalog.
func (s *CatalogService) Items(ctx context.Context, filter query.Filter, sort query.SortKey) (ItemsResponse, error) {
	snap, origin, err := s.Current(ctx)
	if err != nil {
		return ItemsResponse{}, err
	}
	items := s.engine.Apply(snap.Records, filter, sort)
	if items == nil {
		items = []catalog.Record{}
	}
	return ItemsResponse{
		Items:  items,
		Total:  len(snap.Records),
		Origin: string(origin),
		Sort:   string(sort),
	}, nil
}

// Meta returns the facets of the current catalog.
func (s *CatalogService) Meta(ctx context.Context) (MetaResponse, error) {
	snap, origin, err := s.Current(ctx)
	if err != nil {
		return MetaResponse{}, err
	}
	return FromMeta(snap.Meta, string(origin)), nil
}

// Validate reports diagnostics for the current catalog.
func (s *CatalogService) Validate(ctx context.Context) (ValidateResponse, error) {
	snap, origin, err := s.Current(ctx)
	if err != nil {
		return ValidateResponse{}, err
	}
	resp := ValidateRecords(snap.Records, snap.Diagnostics)
	resp.Origin = string(origin)
	return resp, nil
}

// ValidateRecords builds a ValidateResponse. diags may be nil, in which case
// records are validated here.
func ValidateRecords(records []catalog.Record, diags []validation.Diagnostic) ValidateResponse {
	if diags == nil {
		diags = validation.Validate(records)
	}
	messages := make([]string, len(diags))
	for i, d := range diags {
		messages[i] = d.String()
	}
	return ValidateResponse{
		Valid:       len(diags) == 0,
		Records:     len(records),
		Diagnostics: nonNil(diags),
		Messages:    messages,
	}
}
