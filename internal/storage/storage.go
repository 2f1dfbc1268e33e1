// Package storage defines the object storage abstraction used by the HTTP
// handlers. Swap backends by changing the concrete Bucket injected at startup:
// S3Bucket talks to AWS S3, MinioBucket to any S3-compatible provider and
// MemoryBucket keeps everything in process for tests and local runs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrNotFound is returned when an object does not exist in a bucket.
var ErrNotFound = errors.New("object not found")

// Location names one of the two storage locations the service writes to.
type Location string

const (
	Public  Location = "public"
	Private Location = "private"
)

// DeleteProbeOrder is the order in which locations are checked when a key is
// deleted. The first location that holds the key wins.
var DeleteProbeOrder = []Location{Private, Public}

// GetProbeOrder is the order in which locations are checked on retrieval.
// Public objects are served by their direct URL, so only private is proxied.
var GetProbeOrder = []Location{Private}

// ACLPublicRead is the canned ACL applied to uploaded objects.
const ACLPublicRead = "public-read"

// ObjectInfo describes a stored object without its payload.
type ObjectInfo struct {
	Key         string
	Size        int64
	ContentType string
	ETag        string
}

// Object is a readable object payload. The caller must close Body.
type Object struct {
	ObjectInfo
	Body io.ReadCloser
}

// PutInput carries everything needed to store one object.
type PutInput struct {
	Key         string
	Body        io.Reader
	Size        int64
	ContentType string
	ACL         string // canned ACL, empty for the bucket default
}

// PutResult is returned after a successful put.
type PutResult struct {
	ETag string
	URL  string // direct backend URL of the object
}

// Page is one response of a marker-based list call.
type Page struct {
	Keys        []string
	IsTruncated bool
}

// Bucket is the interface a single bucket backend implements.
type Bucket interface {
	// Name returns the backend bucket name.
	Name() string
	// Put stores the object and returns its ETag and direct URL.
	Put(ctx context.Context, in PutInput) (*PutResult, error)
	// Head returns object metadata, or ErrNotFound.
	Head(ctx context.Context, key string) (*ObjectInfo, error)
	// Get opens the object for streaming, or returns ErrNotFound.
	Get(ctx context.Context, key string) (*Object, error)
	// Delete removes the object.
	Delete(ctx context.Context, key string) error
	// ListPage returns keys under prefix that sort after marker. An empty
	// marker starts from the beginning.
	ListPage(ctx context.Context, prefix, marker string) (*Page, error)
}

// OpError records a failed backend call.
type OpError struct {
	Op       string
	Location Location
	Key      string
	Err      error
}

func (e *OpError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Location, e.Err)
	}
	return fmt.Sprintf("%s %s %q: %v", e.Op, e.Location, e.Key, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// IsNotFound returns true when err indicates a missing object.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
