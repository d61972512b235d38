package catalog

import (
	"maps"
	"strings"
)

// Record types recognised by the catalog.
const (
	TypeMovie   = "movie"
	TypeEpisode = "episode"
)

// Canonical field names in serialization order.
const (
	FieldType    = "type"
	FieldTitle   = "title"
	FieldSeries  = "series"
	FieldSeason  = "season"
	FieldEpisode = "episode"
	FieldYear    = "year"
	FieldGenres  = "genres"
	FieldTags    = "tags"
	FieldRating  = "rating"
	FieldStatus  = "status"
	FieldRuntime = "runtime"
	FieldLink    = "link"
	FieldImage   = "image"
	FieldSummary = "summary"
)

var canonicalKeys = []string{
	FieldType,
	FieldTitle,
	FieldSeries,
	FieldSeason,
	FieldEpisode,
	FieldYear,
	FieldGenres,
	FieldTags,
	FieldRating,
	FieldStatus,
	FieldRuntime,
	FieldLink,
	FieldImage,
	FieldSummary,
}

// CanonicalKeys returns the fixed field order used when formatting records.
func CanonicalKeys() []string {
	out := make([]string, len(canonicalKeys))
	copy(out, canonicalKeys)
	return out
}

// IsCanonical reports whether key names one of the fixed record fields.
func IsCanonical(key string) bool {
	for _, k := range canonicalKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Record is one catalog entry. Every field is free text; Type, Season,
// Episode, Year and Rating carry semantic constraints that only the
// validator enforces.
type Record struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Series  string `json:"series,omitempty"`
	Season  string `json:"season,omitempty"`
	Episode string `json:"episode,omitempty"`
	Year    string `json:"year,omitempty"`
	Genres  string `json:"genres,omitempty"`
	Tags    string `json:"tags,omitempty"`
	Rating  string `json:"rating,omitempty"`
	Status  string `json:"status,omitempty"`
	Runtime string `json:"runtime,omitempty"`
	Link    string `json:"link,omitempty"`
	Image   string `json:"image,omitempty"`
	Summary string `json:"summary,omitempty"`

	// Extras holds non-canonical keys verbatim.
	Extras map[string]string `json:"extras,omitempty"`
}

func (r *Record) field(key string) *string {
	switch key {
	case FieldType:
		return &r.Type
	case FieldTitle:
		return &r.Title
	case FieldSeries:
		return &r.Series
	case FieldSeason:
		return &r.Season
	case FieldEpisode:
		return &r.Episode
	case FieldYear:
		return &r.Year
	case FieldGenres:
		return &r.Genres
	case FieldTags:
		return &r.Tags
	case FieldRating:
		return &r.Rating
	case FieldStatus:
		return &r.Status
	case FieldRuntime:
		return &r.Runtime
	case FieldLink:
		return &r.Link
	case FieldImage:
		return &r.Image
	case FieldSummary:
		return &r.Summary
	default:
		return nil
	}
}

// Get returns the value stored under key, consulting Extras for
// non-canonical keys.
func (r Record) Get(key string) string {
	if p := r.field(key); p != nil {
		return *p
	}
	return r.Extras[key]
}

// Set assigns value to key. Canonical keys overwrite their field; any other
// key lands in Extras.
func (r *Record) Set(key, value string) {
	if p := r.field(key); p != nil {
		*p = value
		return
	}
	if r.Extras == nil {
		r.Extras = make(map[string]string)
	}
	r.Extras[key] = value
}

// IsEpisode reports whether the record describes a series episode.
func (r Record) IsEpisode() bool {
	return r.Type == TypeEpisode
}

// Key returns the derived title-year-series identity used by views to find a
// record again. It is not unique: two records sharing all three fields
// collide and callers must tolerate that.
func (r Record) Key() string {
	return r.Title + "-" + r.Year + "-" + r.Series
}

// GenreList splits Genres on commas and trims each piece.
func (r Record) GenreList() []string {
	return SplitList(r.Genres)
}

// TagList splits Tags on commas and trims each piece.
func (r Record) TagList() []string {
	return SplitList(r.Tags)
}

// SplitList splits a comma-separated field and trims each piece. Pieces that
// trim to empty are kept so callers see the field exactly as written; an
// empty field yields nil.
func SplitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	for i, part := range parts {
		parts[i] = trimSpace(part)
	}
	return parts
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	out := r
	if r.Extras != nil {
		out.Extras = maps.Clone(r.Extras)
	}
	return out
}

// Equal compares two records field by field, treating nil and empty Extras
// as equal.
func (r Record) Equal(other Record) bool {
	for _, key := range canonicalKeys {
		if r.Get(key) != other.Get(key) {
			return false
		}
	}
	if len(r.Extras) != len(other.Extras) {
		return false
	}
	for k, v := range r.Extras {
		if ov, ok := other.Extras[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// EqualRecords reports whether two sequences are field-wise equal in order.
func EqualRecords(a, b []Record) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
