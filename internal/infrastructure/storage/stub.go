package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"sync"

	listingapp "github.com/homefinder/backend/internal/application/listing"
	"github.com/homefinder/backend/internal/domain/listing"
	"github.com/google/uuid"
)

// Ensure StubImageHost implements ImageHost
var _ listingapp.ImageHost = (*StubImageHost)(nil)

// StubImageHost keeps uploaded images in memory.
// Use this for development and tests where no bucket is available.
type StubImageHost struct {
	// BaseURL is the prefix of the generated image URLs
	BaseURL string

	mu      sync.RWMutex
	objects map[string][]byte
}

// NewStubImageHost creates a new StubImageHost
func NewStubImageHost(baseURL string) *StubImageHost {
	if baseURL == "" {
		baseURL = "https://images.example.com"
	}
	return &StubImageHost{
		BaseURL: strings.TrimRight(baseURL, "/"),
		objects: make(map[string][]byte),
	}
}

// Upload stores the file in memory under a fresh key
func (s *StubImageHost) Upload(ctx context.Context, file listingapp.ImageFile) (listing.ImageRef, error) {
	if file.Content == nil {
		return listing.ImageRef{}, errors.New("image content is required")
	}
	data, err := io.ReadAll(file.Content)
	if err != nil {
		return listing.ImageRef{}, err
	}

	key := path.Join(DefaultKeyPrefix, uuid.New().String()+extensionFor(file))

	s.mu.Lock()
	s.objects[key] = data
	s.mu.Unlock()

	return listing.ImageRef{URL: s.BaseURL + "/" + key, PublicID: key}, nil
}

// Delete removes the object; missing keys are ignored
func (s *StubImageHost) Delete(ctx context.Context, publicID string) error {
	if publicID == "" {
		return errors.New("public id is required")
	}
	s.mu.Lock()
	delete(s.objects, publicID)
	s.mu.Unlock()
	return nil
}

// Get returns the stored bytes of an object
func (s *StubImageHost) Get(publicID string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[publicID]
	return data, ok
}

// Len returns the number of stored objects
func (s *StubImageHost) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
