package catalog

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultSource is the dataset path used when none is configured.
const DefaultSource = "fabrics.json"

// SourceKind identifies how a dataset source is opened.
type SourceKind int

const (
	SourceFile SourceKind = iota
	SourceHTTP
	SourceS3
)

// Source is a parsed dataset location.
type Source struct {
	Kind   SourceKind
	Path   string // SourceFile
	URL    string // SourceHTTP
	Bucket string // SourceS3
	Key    string // SourceS3
}

func (s Source) String() string {
	switch s.Kind {
	case SourceHTTP:
		return s.URL
	case SourceS3:
		return "s3://" + s.Bucket + "/" + s.Key
	default:
		return s.Path
	}
}

// ParseSource classifies raw as a local path, an http(s) URL or an
// s3://bucket/key object. An empty value selects DefaultSource.
func ParseSource(raw string) (Source, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		value = DefaultSource
	}
	if !strings.Contains(value, "://") {
		return Source{Kind: SourceFile, Path: value}, nil
	}

	u, err := url.Parse(value)
	if err != nil {
		return Source{}, fmt.Errorf("%w: %v", ErrUnsupportedSource, err)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return Source{Kind: SourceHTTP, URL: value}, nil
	case "file":
		if u.Path == "" {
			return Source{}, fmt.Errorf("%w: empty file path in %q", ErrUnsupportedSource, value)
		}
		return Source{Kind: SourceFile, Path: u.Path}, nil
	case "s3":
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return Source{}, fmt.Errorf("%w: s3 source needs s3://bucket/key, got %q", ErrUnsupportedSource, value)
		}
		return Source{Kind: SourceS3, Bucket: u.Host, Key: key}, nil
	default:
		return Source{}, fmt.Errorf("%w: scheme %q", ErrUnsupportedSource, u.Scheme)
	}
}
