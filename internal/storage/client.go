package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
)

// errTruncatedEmptyPage guards the list loop against a backend that reports
// more results without returning any key to continue from.
var errTruncatedEmptyPage = errors.New("listing truncated but page is empty")

// Binding ties a Location to the bucket and key prefix that back it.
type Binding struct {
	Bucket Bucket
	Prefix string
}

// Client addresses objects by Location and name instead of bucket and key.
// It is safe for concurrent use and holds no per-request state.
type Client struct {
	locations map[Location]Binding
}

// NewClient returns a Client for the public and private bindings.
func NewClient(public, private Binding) *Client {
	return &Client{locations: map[Location]Binding{
		Public:  public,
		Private: private,
	}}
}

func (c *Client) binding(loc Location) (Binding, error) {
	b, ok := c.locations[loc]
	if !ok || b.Bucket == nil {
		return Binding{}, fmt.Errorf("unknown storage location %q", loc)
	}
	return b, nil
}

// Key returns the backend key of name in loc.
func (c *Client) Key(loc Location, name string) string {
	return c.locations[loc].Prefix + name
}

// Put stores body under name in loc.
func (c *Client) Put(ctx context.Context, loc Location, name string, body io.Reader, size int64, contentType, acl string) (*PutResult, error) {
	b, err := c.binding(loc)
	if err != nil {
		return nil, err
	}
	key := b.Prefix + name
	res, err := b.Bucket.Put(ctx, PutInput{
		Key:         key,
		Body:        body,
		Size:        size,
		ContentType: contentType,
		ACL:         acl,
	})
	if err != nil {
		return nil, &OpError{Op: "put", Location: loc, Key: key, Err: err}
	}
	return res, nil
}

// Head returns metadata for name in loc, or an error wrapping ErrNotFound.
func (c *Client) Head(ctx context.Context, loc Location, name string) (*ObjectInfo, error) {
	b, err := c.binding(loc)
	if err != nil {
		return nil, err
	}
	info, err := b.Bucket.Head(ctx, b.Prefix+name)
	if err != nil {
		return nil, &OpError{Op: "head", Location: loc, Key: b.Prefix + name, Err: err}
	}
	return info, nil
}

// Get opens name in loc for streaming. The caller must close the body.
func (c *Client) Get(ctx context.Context, loc Location, name string) (*Object, error) {
	b, err := c.binding(loc)
	if err != nil {
		return nil, err
	}
	obj, err := b.Bucket.Get(ctx, b.Prefix+name)
	if err != nil {
		return nil, &OpError{Op: "get", Location: loc, Key: b.Prefix + name, Err: err}
	}
	return obj, nil
}

// Delete removes name from loc.
func (c *Client) Delete(ctx context.Context, loc Location, name string) error {
	b, err := c.binding(loc)
	if err != nil {
		return err
	}
	if err := b.Bucket.Delete(ctx, b.Prefix+name); err != nil {
		return &OpError{Op: "delete", Location: loc, Key: b.Prefix + name, Err: err}
	}
	return nil
}

// List returns every key stored in loc.
func (c *Client) List(ctx context.Context, loc Location) ([]string, error) {
	b, err := c.binding(loc)
	if err != nil {
		return nil, err
	}
	keys, err := ListAll(ctx, b.Bucket, b.Prefix)
	if err != nil {
		return nil, &OpError{Op: "list", Location: loc, Err: err}
	}
	return keys, nil
}

// Resolve probes the locations in order and returns the first one holding
// name. A probe failure other than not-found is logged and treated as absent.
// If no location holds name, Resolve returns ErrNotFound.
func (c *Client) Resolve(ctx context.Context, name string, order []Location) (Location, *ObjectInfo, error) {
	for _, loc := range order {
		info, err := c.Head(ctx, loc, name)
		if err == nil {
			return loc, info, nil
		}
		if !IsNotFound(err) {
			log.WithError(err).WithField("location", loc).Warn("storage: existence probe failed, treating as absent")
		}
	}
	return "", nil, ErrNotFound
}

// ListAll collects every key under prefix by walking the bucket's listing
// one page at a time. The last key of each truncated page becomes the marker
// for the next call.
func ListAll(ctx context.Context, b Bucket, prefix string) ([]string, error) {
	keys := []string{}
	marker := ""
	for truncated := true; truncated; {
		page, err := b.ListPage(ctx, prefix, marker)
		if err != nil {
			return nil, err
		}
		keys = append(keys, page.Keys...)

		truncated = page.IsTruncated
		if truncated {
			if len(page.Keys) == 0 {
				return nil, errTruncatedEmptyPage
			}
			marker = page.Keys[len(page.Keys)-1]
		}
	}
	return keys, nil
}
