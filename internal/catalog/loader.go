package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const (
	defaultTimeout = 15 * time.Second
	userAgent      = "fabricbot/1.0"
)

// S3Options configures access to s3:// dataset sources.
type S3Options struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// Options configures a Loader.
type Options struct {
	Timeout time.Duration
	S3      S3Options
}

// Loader fetches the fabric dataset. It makes exactly one attempt per call
// and never retries.
type Loader struct {
	httpClient *http.Client
	timeout    time.Duration
	s3         S3Options
}

// NewLoader creates a loader. A zero timeout selects the default.
func NewLoader(opts Options) *Loader {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Loader{
		httpClient: &http.Client{Timeout: timeout},
		timeout:    timeout,
		s3:         opts.S3,
	}
}

// Load reads the dataset at source and returns the full catalog, or a
// *LoadError. A successful catalog is never empty.
func (l *Loader) Load(ctx context.Context, source string) (*Catalog, error) {
	src, err := ParseSource(source)
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	body, err := l.open(ctx, src)
	if err != nil {
		return nil, &LoadError{Source: src.String(), Err: err}
	}
	defer body.Close()

	fabrics, err := decodeFabrics(body)
	if err != nil {
		return nil, &LoadError{Source: src.String(), Err: err}
	}
	if len(fabrics) == 0 {
		return nil, &LoadError{Source: src.String(), Err: ErrEmptyCatalog}
	}
	return New(fabrics), nil
}

// LoadAsync runs Load in the background. The returned channel yields exactly
// one Result and is then closed.
func (l *Loader) LoadAsync(ctx context.Context, source string) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		cat, err := l.Load(ctx, source)
		out <- Result{Catalog: cat, Err: err}
	}()
	return out
}

func (l *Loader) open(ctx context.Context, src Source) (io.ReadCloser, error) {
	switch src.Kind {
	case SourceHTTP:
		return l.openHTTP(ctx, src.URL)
	case SourceS3:
		return l.openS3(ctx, src)
	default:
		f, err := os.Open(src.Path)
		if err != nil {
			return nil, fmt.Errorf("opening file: %w", err)
		}
		return f, nil
	}
}

func (l *Loader) openHTTP(ctx context.Context, reqURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, reqURL)
	}
	return resp.Body, nil
}

func (l *Loader) openS3(ctx context.Context, src Source) (io.ReadCloser, error) {
	if l.s3.Endpoint == "" {
		return nil, errors.New("s3 endpoint is not configured")
	}
	client, err := minio.New(l.s3.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(l.s3.AccessKey, l.s3.SecretKey, ""),
		Secure: l.s3.UseSSL,
		Region: l.s3.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("creating s3 client: %w", err)
	}

	obj, err := client.GetObject(ctx, src.Bucket, src.Key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("fetching object %s: %w", src.Key, err)
	}
	return obj, nil
}

func decodeFabrics(r io.Reader) ([]Fabric, error) {
	var fabrics []Fabric
	dec := json.NewDecoder(r)
	if err := dec.Decode(&fabrics); err != nil {
		return nil, fmt.Errorf("decoding dataset: %w", err)
	}
	if err := dec.Decode(new(struct{})); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding dataset: trailing JSON content")
	}
	return fabrics, nil
}
