package config

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/pefolio/date"
)

// diskCache caches successful HTTP responses on disk for the day, so that a
// rates service is called at most once a day.
type diskCache struct {
	dir  string
	base http.RoundTripper
}

func (c *diskCache) RoundTrip(req *http.Request) (*http.Response, error) {
	// the key changes every day, so the cache expires daily.
	key := fmt.Sprintf("%s %s %s", date.Today(), req.Method, req.URL)
	key = fmt.Sprintf("pec-%x", sha1.Sum([]byte(key)))

	if cached, err := c.get(key, req); err == nil {
		return cached, nil
	}

	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	slog.Debug("http", "method", req.Method, "host", req.URL.Host, "path", req.URL.Path, "status", resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	if err := c.put(key, resp); err != nil {
		slog.Warn("cache write failed", "error", err)
	}
	return resp, nil
}

func (c *diskCache) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filepath.Join(c.dir, key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req)
}

func (c *diskCache) put(key string, resp *http.Response) error {
	// DumpResponse reads the body and restores it.
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, key), content, 0600)
}

// daily returns a client caching responses in dir for the day.
func daily(dir string) *http.Client {
	return &http.Client{Transport: &diskCache{dir: dir, base: http.DefaultTransport}}
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// get returns the body of a successful GET on addr.
func get(client *http.Client, addr string) ([]byte, error) {
	resp, err := client.Get(addr)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	return io.ReadAll(resp.Body)
}
