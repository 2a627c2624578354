// Package update performs the one-shot "is there a newer release" check.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/mod/semver"

	"github.com/dori/habitpet/internal/store"
)

// KeyLastSeen stores the last acknowledged version
const KeyLastSeen = "habit_last_seen_version"

// Descriptor is the document served at the update URL
type Descriptor struct {
	LatestVersion string `json:"latestVersion"`
	Message       string `json:"message"`
}

// Notice is shown to the user when a newer version exists
type Notice struct {
	Version string
	Message string
}

// Checker compares the remote descriptor with the running build
type Checker struct {
	URL     string
	Current string
	Client  *http.Client
	KV      store.KV
	Log     *log.Logger
}

// NewChecker builds a checker with a bounded HTTP client
func NewChecker(url, current string, kv store.KV, timeout time.Duration, logger *log.Logger) *Checker {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Checker{
		URL:     url,
		Current: current,
		Client:  &http.Client{Timeout: timeout},
		KV:      kv,
		Log:     logger,
	}
}

// Check fetches the descriptor once. Any failure is logged and reported as
// "no notice"; the caller never has to handle it.
func (c *Checker) Check(ctx context.Context) (Notice, bool) {
	if c.URL == "" {
		return Notice{}, false
	}
	desc, err := c.Fetch(ctx)
	if err != nil {
		c.Log.Printf("update check: %v", err)
		return Notice{}, false
	}
	return c.Evaluate(desc)
}

// Evaluate decides whether desc deserves a notice: it must be newer than the
// running build and not already acknowledged.
func (c *Checker) Evaluate(desc Descriptor) (Notice, bool) {
	latest := strings.TrimSpace(desc.LatestVersion)
	if latest == "" || !Newer(latest, c.Current) {
		return Notice{}, false
	}
	if seen, err := c.KV.Get(KeyLastSeen); err == nil && seen == latest {
		return Notice{}, false
	} else if err != nil && !errors.Is(err, store.ErrMissing) {
		c.Log.Printf("read last seen version: %v", err)
	}
	return Notice{Version: latest, Message: desc.Message}, true
}

// Fetch downloads the descriptor. It touches nothing but the network, so
// it may run off the UI goroutine.
func (c *Checker) Fetch(ctx context.Context) (Descriptor, error) {
	if c.URL == "" {
		return Descriptor{}, errors.New("no update url configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return Descriptor{}, err
	}
	req.Header.Set("Accept", "application/json")

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return Descriptor{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Descriptor{}, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var desc Descriptor
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&desc); err != nil {
		return Descriptor{}, fmt.Errorf("decode descriptor: %w", err)
	}
	return desc, nil
}

// Acknowledge records version as seen. Later checks stay quiet for it but
// still report anything newer.
func (c *Checker) Acknowledge(version string) error {
	if err := c.KV.Set(KeyLastSeen, version); err != nil {
		return fmt.Errorf("acknowledge %s: %w", version, err)
	}
	return nil
}

// Newer reports whether latest sorts after current. Versions are ordered
// semantically ("1.10.0" > "1.9.0"); plain string comparison is used only
// when either side is not a semantic version.
func Newer(latest, current string) bool {
	l, c := canonical(latest), canonical(current)
	if semver.IsValid(l) && semver.IsValid(c) {
		return semver.Compare(l, c) > 0
	}
	return latest > current
}

func canonical(v string) string {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
