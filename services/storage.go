package services

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	BucketCabinImages = "cabin-images"
	BucketAvatars     = "avatars"
)

// ObjectStore is the binary half of the data layer: named buckets of blobs,
// each addressable by a public URL once uploaded.
type ObjectStore interface {
	Upload(bucket, name string, data []byte) error
	Remove(bucket, name string) error
	PublicURL(bucket, name string) string
	BaseURL() string
}

// DiskObjectStore keeps buckets under uploads/ and serves them through the
// router's static mount at /storage/v1/object/public.
type DiskObjectStore struct {
	baseURL string
	root    string
}

func NewDiskObjectStore(baseURL string) *DiskObjectStore {
	return &DiskObjectStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		root:    "uploads",
	}
}

func (s *DiskObjectStore) Upload(bucket, name string, data []byte) error {
	dir := filepath.Join(s.root, bucket)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("mkdir bucket dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
		return fmt.Errorf("write object: %w", err)
	}
	return nil
}

func (s *DiskObjectStore) Remove(bucket, name string) error {
	return os.Remove(filepath.Join(s.root, bucket, name))
}

func (s *DiskObjectStore) PublicURL(bucket, name string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, bucket, name)
}

func (s *DiskObjectStore) BaseURL() string {
	return s.baseURL
}

// DecodeImagePayload accepts a base64 body, optionally carrying a
// "data:image/...;base64," prefix.
func DecodeImagePayload(b64 string) ([]byte, error) {
	if idx := strings.Index(b64, "base64,"); idx >= 0 {
		b64 = b64[idx+7:]
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(b64))
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	return data, nil
}

// RandomObjectName prefixes the client filename with a random id and strips
// path separators so the result is a single flat storage key.
func RandomObjectName(filename string) string {
	return strings.ReplaceAll(uuid.NewString()+"-"+filename, "/", "")
}
