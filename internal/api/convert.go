package api

import (
	"net/url"
	"strings"

	"mediashelf/internal/facets"
	"mediashelf/internal/query"
)

// FilterFromValues reads the search, type, status, genre, tag and sort
// parameters. fallbackSort applies when sort is absent.
func FilterFromValues(values url.Values, fallbackSort string) (query.Filter, query.SortKey) {
	filter := query.Filter{
		Search: strings.TrimSpace(values.Get("search")),
		Type:   strings.TrimSpace(values.Get("type")),
		Status: strings.TrimSpace(values.Get("status")),
		Genre:  strings.TrimSpace(values.Get("genre")),
		Tag:    strings.TrimSpace(values.Get("tag")),
	}
	sort := values.Get("sort")
	if strings.TrimSpace(sort) == "" {
		sort = fallbackSort
	}
	return filter, query.ParseSortKey(sort)
}

// FromMeta converts extracted facets, substituting empty slices for nil so
// the JSON carries arrays.
func FromMeta(meta facets.Meta, origin string) MetaResponse {
	return MetaResponse{
		Genres:   nonNil(meta.Genres),
		Tags:     nonNil(meta.Tags),
		Statuses: nonNil(meta.Statuses),
		Years:    nonNil(meta.Years),
		Origin:   origin,
	}
}

func nonNil[T any](values []T) []T {
	if values == nil {
		return []T{}
	}
	return values
}
