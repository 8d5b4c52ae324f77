package transcribe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Source yields the raw bytes of one audio file.
type Source interface {
	// Fetch returns the audio bytes. A positive limit caps the size; bigger
	// inputs fail with ErrTooLarge.
	Fetch(ctx context.Context, limit int64) ([]byte, error)

	// Describe names the source for logs.
	Describe() string
}

type uploadSource struct {
	name string
	size int64
	open func() (io.ReadCloser, error)
}

// Upload wraps a file the client sent in the request body.
func Upload(name string, size int64, open func() (io.ReadCloser, error)) Source {
	return &uploadSource{name: name, size: size, open: open}
}

func (s *uploadSource) Fetch(ctx context.Context, limit int64) ([]byte, error) {
	if limit > 0 && s.size > limit {
		return nil, fmt.Errorf("%w: upload is %d bytes, limit %d", ErrTooLarge, s.size, limit)
	}
	rc, err := s.open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer rc.Close()
	return readLimited(rc, limit)
}

func (s *uploadSource) Describe() string {
	return "upload:" + s.name
}

type urlSource struct {
	client *http.Client
	url    string
}

// URL downloads the audio with a GET request. Anything but 200 is ErrFetch.
func URL(client *http.Client, url string) Source {
	if client == nil {
		client = http.DefaultClient
	}
	return &urlSource{client: client, url: url}
}

func (s *urlSource) Fetch(ctx context.Context, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrFetch, resp.StatusCode)
	}
	if limit > 0 && resp.ContentLength > limit {
		return nil, fmt.Errorf("%w: remote file is %d bytes, limit %d", ErrTooLarge, resp.ContentLength, limit)
	}

	data, err := readLimited(resp.Body, limit)
	if err != nil {
		if errors.Is(err, ErrTooLarge) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	return data, nil
}

func (s *urlSource) Describe() string {
	return "url:" + s.url
}

// readLimited reads r to the end, failing once more than limit bytes arrive.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, limit)
	}
	return data, nil
}
