// Package dataset downloads and unpacks the published monthly trip
// dumps so the pipeline can run without a manually dropped CSV.
package dataset

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
)

// DefaultBaseURL is the public bucket the monthly dumps are published to.
const DefaultBaseURL = "https://s3.amazonaws.com/hubway-data"

// Sentinel errors surfaced by Fetch.
var (
	// ErrCircuitOpen is returned when the dump host has been failing
	// and the breaker is refusing calls.
	ErrCircuitOpen = errors.New("dataset host circuit open")

	// ErrNotFound is returned when the requested month has no
	// published dump. Not retried.
	ErrNotFound = errors.New("dataset not published")

	// ErrNoCSVInArchive is returned when a downloaded archive holds no
	// trip CSV.
	ErrNoCSVInArchive = errors.New("no csv file in archive")
)

// Config holds fetcher settings. Zero values get defaults.
type Config struct {
	// BaseURL of the dump bucket.
	BaseURL string

	// DestDir receives the extracted CSV files.
	DestDir string

	// Timeout bounds each HTTP attempt. Dumps run tens of megabytes,
	// so the default is generous: 2 minutes.
	Timeout time.Duration

	// MaxRetries bounds transient-failure retries. Default 3.
	MaxRetries uint64

	// InitialInterval and MaxInterval shape the exponential backoff.
	InitialInterval time.Duration
	MaxInterval     time.Duration

	Logger zerolog.Logger
}

// Fetcher downloads monthly dumps with retry and circuit-breaker
// protection around the bucket host.
type Fetcher struct {
	cfg        Config
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*http.Response]
}

// NewFetcher creates a Fetcher.
func NewFetcher(cfg Config) *Fetcher {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 2 * time.Minute
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.InitialInterval == 0 {
		cfg.InitialInterval = 500 * time.Millisecond
	}
	if cfg.MaxInterval == 0 {
		cfg.MaxInterval = 10 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:    "dataset-bucket",
		Timeout: 60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 5 &&
				float64(counts.TotalFailures)/float64(counts.Requests) >= 0.5
		},
	})

	return &Fetcher{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    breaker,
	}
}

// ArchiveName returns the zip object name for a month tag like "202501".
func ArchiveName(month string) string {
	return month + "-bluebikes-tripdata.zip"
}

// CSVName returns the trip CSV name for a month tag.
func CSVName(month string) string {
	return month + "-bluebikes-tripdata.csv"
}

// Fetch downloads the dump for the given month tag, extracts the trip
// CSV into DestDir, and returns the extracted path. Transient failures
// (5xx, network errors) are retried with exponential backoff; a
// missing dump is permanent.
func (f *Fetcher) Fetch(ctx context.Context, month string) (string, error) {
	url := f.cfg.BaseURL + "/" + ArchiveName(month)

	archivePath, err := f.download(ctx, url)
	if err != nil {
		return "", err
	}
	defer os.Remove(archivePath)

	csvPath := filepath.Join(f.cfg.DestDir, CSVName(month))
	if err := extractCSV(archivePath, csvPath); err != nil {
		return "", err
	}

	f.cfg.Logger.Info().
		Str("month", month).
		Str("path", csvPath).
		Msg("dataset fetched")
	return csvPath, nil
}

type serverError struct {
	status int
}

func (e *serverError) Error() string {
	return "server error: " + http.StatusText(e.status)
}

func (f *Fetcher) download(ctx context.Context, url string) (string, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = f.cfg.InitialInterval
	bo.MaxInterval = f.cfg.MaxInterval
	bo.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, f.cfg.MaxRetries), ctx)

	var path string
	operation := func() error {
		resp, err := f.breaker.Execute(func() (*http.Response, error) {
			req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
			if reqErr != nil {
				return nil, backoff.Permanent(reqErr)
			}
			r, doErr := f.httpClient.Do(req)
			if doErr != nil {
				return nil, doErr
			}
			if r.StatusCode >= 500 {
				r.Body.Close()
				return nil, &serverError{status: r.StatusCode}
			}
			return r, nil
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return backoff.Permanent(ErrCircuitOpen)
			}
			f.cfg.Logger.Warn().Err(err).Str("url", url).Msg("dataset download attempt failed")
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return backoff.Permanent(fmt.Errorf("%w: %s", ErrNotFound, url))
		case resp.StatusCode != http.StatusOK:
			return backoff.Permanent(fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url))
		}

		tmp, err := os.CreateTemp("", "tripdata-*.zip")
		if err != nil {
			return backoff.Permanent(fmt.Errorf("create temp archive: %w", err))
		}
		if _, err := io.Copy(tmp, resp.Body); err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			return fmt.Errorf("download archive: %w", err)
		}
		if err := tmp.Close(); err != nil {
			os.Remove(tmp.Name())
			return fmt.Errorf("close temp archive: %w", err)
		}
		path = tmp.Name()
		return nil
	}

	if err := backoff.Retry(operation, policy); err != nil {
		return "", err
	}
	return path, nil
}

// extractCSV pulls the first top-level trip CSV out of the archive.
// The published zips carry the CSV plus a __MACOSX noise directory.
func extractCSV(archivePath, destPath string) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer zr.Close()

	for _, file := range zr.File {
		name := file.Name
		if strings.HasPrefix(name, "__MACOSX/") || !strings.HasSuffix(name, ".csv") {
			continue
		}

		src, err := file.Open()
		if err != nil {
			return fmt.Errorf("open archive entry %s: %w", name, err)
		}
		defer src.Close()

		if dir := filepath.Dir(destPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create dest dir: %w", err)
			}
		}
		dst, err := os.Create(destPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", destPath, err)
		}
		if _, err := io.Copy(dst, src); err != nil {
			dst.Close()
			return fmt.Errorf("extract %s: %w", name, err)
		}
		return dst.Close()
	}
	return ErrNoCSVInArchive
}
