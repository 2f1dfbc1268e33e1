package storage

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

type memoryObject struct {
	data        []byte
	contentType string
	etag        string
	acl         string
}

// MemoryBucket is an in-process Bucket. Listing follows S3 semantics:
// lexicographic key order, at most pageSize keys per page.
type MemoryBucket struct {
	name     string
	baseURL  string
	pageSize int

	mu      sync.RWMutex
	objects map[string]*memoryObject
}

// NewMemoryBucket returns an empty bucket. pageSize <= 0 defaults to 1000.
func NewMemoryBucket(name, baseURL string, pageSize int) *MemoryBucket {
	if pageSize <= 0 {
		pageSize = 1000
	}
	if baseURL == "" {
		baseURL = "memory://" + name
	}
	return &MemoryBucket{
		name:     name,
		baseURL:  strings.TrimRight(baseURL, "/"),
		pageSize: pageSize,
		objects:  make(map[string]*memoryObject),
	}
}

func (m *MemoryBucket) Name() string { return m.name }

func (m *MemoryBucket) Put(ctx context.Context, in PutInput) (*PutResult, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if in.Size >= 0 && int64(len(data)) != in.Size {
		return nil, fmt.Errorf("size mismatch: declared %d, read %d", in.Size, len(data))
	}
	sum := md5.Sum(data)
	obj := &memoryObject{
		data:        data,
		contentType: in.ContentType,
		etag:        `"` + hex.EncodeToString(sum[:]) + `"`,
		acl:         in.ACL,
	}

	m.mu.Lock()
	m.objects[in.Key] = obj
	m.mu.Unlock()

	return &PutResult{ETag: obj.etag, URL: m.baseURL + "/" + in.Key}, nil
}

func (m *MemoryBucket) Head(ctx context.Context, key string) (*ObjectInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	if !ok {
		return nil, ErrNotFound
	}
	return obj.info(key), nil
}

func (m *MemoryBucket) Get(ctx context.Context, key string) (*Object, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	if !ok {
		return nil, ErrNotFound
	}
	return &Object{
		ObjectInfo: *obj.info(key),
		Body:       io.NopCloser(bytes.NewReader(obj.data)),
	}, nil
}

func (m *MemoryBucket) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.objects, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryBucket) ListPage(ctx context.Context, prefix, marker string) (*Page, error) {
	m.mu.RLock()
	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		if strings.HasPrefix(k, prefix) && k > marker {
			keys = append(keys, k)
		}
	}
	m.mu.RUnlock()

	sort.Strings(keys)
	page := &Page{Keys: keys}
	if len(keys) > m.pageSize {
		page.Keys = keys[:m.pageSize]
		page.IsTruncated = true
	}
	return page, nil
}

// ACL returns the canned ACL key was stored with.
func (m *MemoryBucket) ACL(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	if !ok {
		return "", false
	}
	return obj.acl, true
}

func (o *memoryObject) info(key string) *ObjectInfo {
	return &ObjectInfo{
		Key:         key,
		Size:        int64(len(o.data)),
		ContentType: o.contentType,
		ETag:        o.etag,
	}
}
