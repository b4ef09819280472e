// Package castore provides content-addressed storage for captured media: an
// IPFS pinning service client and an S3-compatible object store. Uploads
// return a content identifier; Resolve turns an identifier into a fetchable
// URL for the verifier side.
package castore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/veilcam/veilcam/internal/common"
)

// Store is the storage contract the capture flow depends on.
type Store interface {
	// Upload pushes content and returns its content identifier.
	Upload(ctx context.Context, data []byte) (string, error)
	// Resolve turns a content identifier into a fetchable URL.
	Resolve(cid string) string
}

// FetchTimeout bounds a single capsule or media dereference.
const FetchTimeout = 15 * time.Second

// Fetch dereferences a URL and returns the body. Any transport or non-2xx
// failure wraps common.ErrorFetch so callers can distinguish "could not get
// the bytes" from "the bytes are not a capsule".
func Fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = &http.Client{Timeout: FetchTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorFetch, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d from %s", common.ErrorFetch, resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorFetch, err)
	}
	return body, nil
}
