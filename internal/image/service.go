package image

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/imagehost/service/internal/storage"
)

// ErrNoFile is returned when a request carries no file to store.
var ErrNoFile = errors.New("no file uploaded")

// MessageNoFile is the client-facing text for ErrNoFile.
const MessageNoFile = "No file uploaded"

// UploadInput is a file received from a client.
type UploadInput struct {
	Filename string
	Data     []byte
	Location storage.Location
}

// UploadResult is the payload returned for a stored upload.
type UploadResult struct {
	Status            string `json:"status"             example:"success"`
	Message           string `json:"message"            example:"File is uploaded"`
	URL               string `json:"url"                example:"/poc_api/image/V1StGXR8_Z5jdHi6B-myT.png"`
	ETag              string `json:"etag"               example:"\"9b2cf535f27731c974343645a3985328\""`
	Bytes             int64  `json:"bytes"              example:"48213"`
	Format            string `json:"format"             example:"png"`
	MIME              string `json:"mime"               example:"image/png"`
	OriginalFilename  string `json:"original_filename"  example:"holiday"`
	PublicID          string `json:"public_id"          example:"V1StGXR8_Z5jdHi6B-myT"`
	OriginalExtension string `json:"original_extension" example:"png"`
}

// Service stores uploads and builds their result payloads.
type Service struct {
	store     *storage.Client
	apiPrefix string
	acl       string
	newID     func() string
}

// NewService creates a new image Service. acl is sent with every put
// regardless of location; apiPrefix is the path segment of private URLs.
func NewService(store *storage.Client, apiPrefix, acl string) *Service {
	return &Service{
		store:     store,
		apiPrefix: apiPrefix,
		acl:       acl,
		newID:     NewID,
	}
}

// Upload resolves the file's type, stores it under a fresh identifier and
// returns the result payload. Resolution failures wrap ErrInvalidFilename;
// backend failures are returned as *storage.OpError.
func (s *Service) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	if in.Filename == "" && len(in.Data) == 0 {
		return nil, ErrNoFile
	}

	ct, err := ResolveContentType(in.Data, in.Filename)
	if err != nil {
		return nil, err
	}

	id := s.newID()
	name := id + "." + ct.Extension
	size := int64(len(in.Data))

	res, err := s.store.Put(ctx, in.Location, name, bytes.NewReader(in.Data), size, ct.MIME, s.acl)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", name, err)
	}

	url := res.URL
	if in.Location == storage.Private {
		url = s.PrivateURL(name)
	}
	return &UploadResult{
		Status:            "success",
		Message:           "File is uploaded",
		URL:               url,
		ETag:              res.ETag,
		Bytes:             size,
		Format:            ct.Extension,
		MIME:              ct.MIME,
		OriginalFilename:  ct.OriginalFilename,
		PublicID:          id,
		OriginalExtension: ct.Extension,
	}, nil
}

// PrivateURL returns the service-relative path that proxies name.
func (s *Service) PrivateURL(name string) string {
	return "/" + path.Join(s.apiPrefix, "image", name)
}

// LocationFor maps the upload type query value to a storage location.
// Anything but an explicit "private" is public.
func LocationFor(kind string) storage.Location {
	if kind == string(storage.Private) {
		return storage.Private
	}
	return storage.Public
}
