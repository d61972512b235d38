package datastore

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"mediashelf/internal/catalog"
	"mediashelf/internal/config"
	"mediashelf/internal/fileutil"
	"mediashelf/internal/logging"
	"mediashelf/internal/store"
)

//go:embed sample.txt
var sampleData string

// maxRemoteBytes bounds the remote catalog download.
var maxRemoteBytes = 32 << 20

// ErrRemoteTooLarge is returned when the remote catalog exceeds the download
// limit; Load falls through to the next source.
var ErrRemoteTooLarge = errors.New("remote catalog too large")

// Origin names the source a catalog was loaded from.
type Origin string

const (
	OriginRemote Origin = "remote"
	OriginLocal  Origin = "local"
	OriginFile   Origin = "file"
	OriginSample Origin = "sample"
)

// Result is a loaded catalog. Records must be treated as read-only because
// concurrent callers of Load may share them.
type Result struct {
	Records []catalog.Record
	Text    string
	Origin  Origin
}

// Option configures a Store.
type Option func(*Store)

// WithHTTPClient overrides the HTTP client used for remote loads.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Store) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// WithClock overrides the time source used for cache-busting.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Store coordinates catalog persistence across the remote source, local state
// and files.
type Store struct {
	state      store.Backend
	sourceURL  string
	dataFile   string
	lockPath   func(string) string
	httpClient *http.Client
	now        func() time.Time
	logger     *slog.Logger
	group      singleflight.Group
}

// New constructs a Store from configuration.
func New(cfg *config.Config, state store.Backend, logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		state:      state,
		sourceURL:  cfg.Source.URL,
		dataFile:   cfg.Paths.DataFile,
		lockPath:   cfg.LockPath,
		httpClient: &http.Client{Timeout: time.Duration(cfg.Source.TimeoutSeconds) * time.Second},
		now:        time.Now,
		logger:     logging.NewComponentLogger(logger, "datastore"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sample returns the embedded fallback catalog text.
func Sample() string {
	return sampleData
}

// Load returns the catalog from the highest-priority source that has one.
// Concurrent callers share one load; cancelling ctx abandons the wait but not
// the shared load, which stays bounded by the HTTP client timeout.
func (s *Store) Load(ctx context.Context) (Result, error) {
	ch := s.group.DoChan("load", func() (any, error) {
		return s.load(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return Result{}, res.Err
		}
		return res.Val.(Result), nil
	}
}

func (s *Store) load(ctx context.Context) (Result, error) {
	if s.sourceURL != "" {
		text, err := s.fetchRemote(ctx)
		if err == nil {
			return s.result(text, OriginRemote), nil
		}
		s.logger.Warn("remote catalog unavailable, falling back to local state",
			logging.String("url", s.sourceURL), logging.Error(err))
	}

	if text, ok, err := store.Lookup(ctx, s.state, store.KeyCatalogData); err != nil {
		s.logger.Warn("read saved catalog failed", logging.Error(err))
	} else if ok && text != "" {
		return s.result(text, OriginLocal), nil
	}

	if s.dataFile != "" {
		data, err := os.ReadFile(s.dataFile)
		switch {
		case err == nil && strings.TrimSpace(string(data)) != "":
			return s.result(string(data), OriginFile), nil
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			s.logger.Warn("read data file failed", logging.String(logging.FieldPath, s.dataFile), logging.Error(err))
		}
	}

	return s.result(sampleData, OriginSample), nil
}

func (s *Store) result(text string, origin Origin) Result {
	records := catalog.Parse(text)
	s.logger.Debug("catalog loaded",
		logging.String(logging.FieldOrigin, string(origin)),
		logging.Int(logging.FieldRecords, len(records)))
	return Result{Records: records, Text: text, Origin: origin}
}

func (s *Store) fetchRemote(ctx context.Context) (string, error) {
	endpoint, err := url.Parse(s.sourceURL)
	if err != nil {
		return "", fmt.Errorf("parse source url: %w", err)
	}
	query := endpoint.Query()
	query.Set("_", strconv.FormatInt(s.now().UnixMilli(), 10))
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "text/plain")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetch catalog: unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, int64(maxRemoteBytes)+1))
	if err != nil {
		return "", fmt.Errorf("read catalog: %w", err)
	}
	if len(body) > maxRemoteBytes {
		return "", fmt.Errorf("%w: over %d bytes", ErrRemoteTooLarge, maxRemoteBytes)
	}
	return string(body), nil
}

// SaveLocal stores the formatted catalog in local state and returns the text.
func (s *Store) SaveLocal(ctx context.Context, records []catalog.Record) (string, error) {
	text := catalog.Format(records)
	if err := s.state.Set(ctx, store.KeyCatalogData, text); err != nil {
		return "", fmt.Errorf("save catalog: %w", err)
	}
	s.logger.Info("catalog saved locally", logging.Int(logging.FieldRecords, len(records)))
	return text, nil
}

// ClearLocal removes the saved catalog so Load falls through to the next source.
func (s *Store) ClearLocal(ctx context.Context) error {
	return s.state.Delete(ctx, store.KeyCatalogData)
}

// Export writes the formatted catalog to path.
func (s *Store) Export(ctx context.Context, path string, records []catalog.Record) error {
	text := catalog.Format(records)
	if text != "" {
		text += "\n"
	}
	err := fileutil.WithLock(ctx, s.lockPath(path), func() error {
		return fileutil.WriteAtomic(path, []byte(text), 0o644)
	})
	if err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	s.logger.Info("catalog exported", logging.String(logging.FieldPath, path), logging.Int(logging.FieldRecords, len(records)))
	return nil
}

// Import reads and parses path, saves the result locally, and returns it.
func (s *Store) Import(ctx context.Context, path string) ([]catalog.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}
	defer file.Close()

	records, err := catalog.ParseReader(file)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	if _, err := s.SaveLocal(ctx, records); err != nil {
		return nil, err
	}
	return records, nil
}

// SHA returns the last known remote blob SHA, or "" when none is recorded.
func (s *Store) SHA(ctx context.Context) (string, error) {
	sha, _, err := store.Lookup(ctx, s.state, store.KeyCatalogSHA)
	return sha, err
}

// SetSHA records the remote blob SHA.
func (s *Store) SetSHA(ctx context.Context, sha string) error {
	return s.state.Set(ctx, store.KeyCatalogSHA, sha)
}
