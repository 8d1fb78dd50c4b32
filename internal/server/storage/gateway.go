// Package storage issues presigned upload URLs for the image bucket and
// deletes objects from it.
package storage

import (
	"context"
	"strings"
	"time"
)

// UploadExpiry is how long a presigned upload URL stays valid.
const UploadExpiry = 60 * time.Second

// UploadURL is returned to clients: they PUT the file to SignedRequest and
// then store URL as their image reference.
type UploadURL struct {
	SignedRequest string `json:"signedRequest"`
	URL           string `json:"url"`
}

// Gateway is the object storage surface the services rely on.
type Gateway interface {
	PresignUpload(ctx context.Context, key, contentType string) (*UploadURL, error)
	DeleteObject(ctx context.Context, key string) error
	// KeyFromURL maps a public object URL back to its key.
	KeyFromURL(url string) string
}

// Settings carries what the gateway needs from the server configuration.
type Settings struct {
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	Region          string
	// BaseEndpoint points at an S3-compatible server (e.g. MinIO). Empty
	// means AWS.
	BaseEndpoint string
}

// PublicURL returns the address under which an uploaded object is readable.
func (s Settings) PublicURL(key string) string {
	return s.publicPrefix() + key
}

func (s Settings) publicPrefix() string {
	if s.BaseEndpoint == "" {
		return "https://" + s.Bucket + ".s3.amazonaws.com/"
	}
	return strings.TrimRight(s.BaseEndpoint, "/") + "/" + s.Bucket + "/"
}

func keyFromURL(s Settings, url string) string {
	return strings.TrimPrefix(url, s.publicPrefix())
}
