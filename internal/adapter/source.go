package adapter

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"strings"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	m "github.com/mouse-blink/undefender/internal/model"
)

// StdinLocation selects standard input as the artifact source.
const StdinLocation = "-"

// ArtifactSource loads the text of a protected script.
type ArtifactSource interface {
	Read(ctx context.Context) (m.Artifact, error)
	Location() m.Path
}

// NewArtifactSource picks a source for location: "-" reads stdin, http and
// https URLs are fetched, anything else is a local file.
func NewArtifactSource(location m.Path, stdin io.Reader) ArtifactSource {
	loc := string(location)

	switch {
	case loc == StdinLocation:
		return NewReaderSource(location, stdin)
	case strings.HasPrefix(loc, "http://"), strings.HasPrefix(loc, "https://"):
		return NewHTTPSource(loc, nil)
	default:
		return NewFileSource(location)
	}
}

// FileSource reads an artifact from disk. Files ending in .gz, .zst or .lz4
// are decompressed transparently.
type FileSource struct {
	path m.Path
}

// NewFileSource constructs a FileSource.
func NewFileSource(path m.Path) *FileSource {
	return &FileSource{path: path}
}

// Location returns the file path.
func (s *FileSource) Location() m.Path {
	return s.path
}

// Read loads and decompresses the file.
func (s *FileSource) Read(_ context.Context) (m.Artifact, error) {
	f, err := os.Open(string(s.path))
	if err != nil {
		return "", fmt.Errorf("open artifact: %w", err)
	}
	defer f.Close()

	return readArtifact(string(s.path), f)
}

// ReaderSource reads an artifact from an arbitrary stream.
type ReaderSource struct {
	name m.Path
	r    io.Reader
}

// NewReaderSource constructs a ReaderSource.
func NewReaderSource(name m.Path, r io.Reader) *ReaderSource {
	return &ReaderSource{name: name, r: r}
}

// Location returns the name the stream was opened under.
func (s *ReaderSource) Location() m.Path {
	return s.name
}

// Read drains the stream.
func (s *ReaderSource) Read(_ context.Context) (m.Artifact, error) {
	if s.r == nil {
		return "", fmt.Errorf("read artifact %s: no input stream", s.name)
	}

	return readArtifact(string(s.name), s.r)
}

// HTTPSource fetches an artifact with a browser-like TLS fingerprint, since
// protected scripts are commonly served behind bot filters.
type HTTPSource struct {
	url    string
	client tls_client.HttpClient
}

// NewHTTPSource constructs an HTTPSource. A nil client gets a Chrome profile.
func NewHTTPSource(rawURL string, client tls_client.HttpClient) *HTTPSource {
	return &HTTPSource{url: rawURL, client: client}
}

// Location returns the URL.
func (s *HTTPSource) Location() m.Path {
	return m.Path(s.url)
}

// Read downloads the artifact.
func (s *HTTPSource) Read(ctx context.Context) (m.Artifact, error) {
	client := s.client
	if client == nil {
		var err error

		client, err = tls_client.NewHttpClient(tls_client.NewNoopLogger(),
			tls_client.WithTimeoutSeconds(30),
			tls_client.WithClientProfile(profiles.Chrome_133),
			tls_client.WithCookieJar(tls_client.NewCookieJar()),
		)
		if err != nil {
			return "", fmt.Errorf("create http client: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("accept", "*/*")
	req.Header.Set("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/133.0.0.0 Safari/537.36")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", s.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: unexpected status %d", s.url, resp.StatusCode)
	}

	name := s.url
	if parsed, err := url.Parse(s.url); err == nil {
		name = parsed.Path
	}

	return readArtifact(name, resp.Body)
}

func readArtifact(name string, r io.Reader) (m.Artifact, error) {
	rc, err := decompress(name, r)
	if err != nil {
		return "", fmt.Errorf("decompress %s: %w", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}

	return m.Artifact(data), nil
}

func decompress(name string, r io.Reader) (io.ReadCloser, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".gz":
		return gzip.NewReader(r)
	case ".zst":
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}

		return dec.IOReadCloser(), nil
	case ".lz4":
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return io.NopCloser(r), nil
	}
}
