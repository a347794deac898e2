package listing

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/homefinder/backend/internal/domain/listing"
	"github.com/homefinder/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestImageManager(host *MockImageHost, images *MockImageRepository) *ImageManager {
	return NewImageManager(host, images, listing.DefaultImagePolicy(), 0, nil, zap.NewNop())
}

func TestImageManager_CheckFiles(t *testing.T) {
	m := newTestImageManager(new(MockImageHost), new(MockImageRepository))

	tests := []struct {
		name     string
		retained int
		files    []ImageFile
		wantErr  string
	}{
		{name: "one new image", retained: 0, files: testImageFiles(1)},
		{name: "fills up to the maximum", retained: 1, files: testImageFiles(2)},
		{name: "keeps existing images only", retained: 2, files: nil},
		{name: "no images at all", retained: 0, files: nil, wantErr: "at least one image"},
		{name: "too many new images", retained: 0, files: testImageFiles(4), wantErr: "at most 3"},
		{name: "too many in total", retained: 2, files: testImageFiles(2), wantErr: "at most 3"},
		{
			name:    "unsupported content type",
			files:   []ImageFile{{Filename: "x.gif", ContentType: "image/gif", Size: 1, Content: strings.NewReader("x")}},
			wantErr: "Unsupported image type",
		},
		{
			name:  "eight megabytes fit the default limit",
			files: []ImageFile{{Filename: "big.jpg", ContentType: "image/jpeg", Size: 8 << 20, Content: strings.NewReader("x")}},
		},
		{
			name:    "file too large",
			files:   []ImageFile{{Filename: "big.png", ContentType: "image/png", Size: MaxImageSize + 1, Content: strings.NewReader("x")}},
			wantErr: "maximum file size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.CheckFiles(tt.retained, tt.files)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, shared.ErrInvalidInput))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestImageManager_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("uploads every file in order", func(t *testing.T) {
		host := new(MockImageHost)
		m := newTestImageManager(host, new(MockImageRepository))
		files := testImageFiles(2)

		host.On("Upload", ctx, files[0]).Return(refFor("a.jpg"), nil).Once()
		host.On("Upload", ctx, files[1]).Return(refFor("b.jpg"), nil).Once()

		refs, comp, err := m.Upload(ctx, 0, files)
		require.NoError(t, err)
		require.NotNil(t, comp)
		assert.Equal(t, []listing.ImageRef{refFor("a.jpg"), refFor("b.jpg")}, refs)
		assert.Equal(t, []string{"a.jpg", "b.jpg"}, comp.Pending())
		host.AssertExpectations(t)
	})

	t.Run("rejects the count before any upload", func(t *testing.T) {
		host := new(MockImageHost)
		m := newTestImageManager(host, new(MockImageRepository))

		_, _, err := m.Upload(ctx, 0, testImageFiles(4))
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
		host.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
	})

	t.Run("deletes earlier uploads when one fails", func(t *testing.T) {
		host := new(MockImageHost)
		m := newTestImageManager(host, new(MockImageRepository))
		files := testImageFiles(3)

		host.On("Upload", ctx, files[0]).Return(refFor("a.jpg"), nil).Once()
		host.On("Upload", ctx, files[1]).Return(refFor("b.jpg"), nil).Once()
		host.On("Upload", ctx, files[2]).Return(listing.ImageRef{}, errors.New("host unavailable")).Once()

		var deleted []string
		host.On("Delete", ctx, mock.Anything).Run(func(args mock.Arguments) {
			deleted = append(deleted, args.String(1))
		}).Return(nil)

		refs, comp, err := m.Upload(ctx, 0, files)
		require.Error(t, err)
		assert.Nil(t, refs)
		assert.Nil(t, comp)
		assert.True(t, errors.Is(err, shared.ErrExternalService))
		assert.Equal(t, []string{"b.jpg", "a.jpg"}, deleted)
	})
}

func TestImageManager_Attach(t *testing.T) {
	ctx := context.Background()
	houseID := uuid.New()

	t.Run("persists one row per ref", func(t *testing.T) {
		images := new(MockImageRepository)
		m := newTestImageManager(new(MockImageHost), images)

		images.On("Attach", ctx, houseID, mock.MatchedBy(func(rows []listing.Image) bool {
			return len(rows) == 2 && rows[0].HouseID == houseID && rows[1].PublicID == "b.jpg"
		})).Return(nil)

		rows, err := m.Attach(ctx, houseID, []listing.ImageRef{refFor("a.jpg"), refFor("b.jpg")})
		require.NoError(t, err)
		assert.Len(t, rows, 2)
		images.AssertExpectations(t)
	})

	t.Run("no refs is a no-op", func(t *testing.T) {
		images := new(MockImageRepository)
		m := newTestImageManager(new(MockImageHost), images)

		rows, err := m.Attach(ctx, houseID, nil)
		require.NoError(t, err)
		assert.Empty(t, rows)
		images.AssertNotCalled(t, "Attach", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestImageManager_EnsureCount(t *testing.T) {
	ctx := context.Background()
	houseID := uuid.New()

	tests := []struct {
		name    string
		stored  int64
		wantErr string
	}{
		{name: "within bounds", stored: 2},
		{name: "last image removed", stored: 0, wantErr: "at least one image"},
		{name: "above the maximum", stored: 4, wantErr: "at most 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			images := new(MockImageRepository)
			images.On("CountByHouse", mock.Anything, houseID).Return(tt.stored, nil)
			m := newTestImageManager(new(MockImageHost), images)

			err := m.EnsureCount(ctx, houseID)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, shared.ErrInvalidInput))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("count failure is returned", func(t *testing.T) {
		images := new(MockImageRepository)
		images.On("CountByHouse", mock.Anything, houseID).Return(int64(0), errors.New("connection reset"))
		m := newTestImageManager(new(MockImageHost), images)

		assert.EqualError(t, m.EnsureCount(ctx, houseID), "connection reset")
	})
}

func TestImageManager_Detach(t *testing.T) {
	ctx := context.Background()
	houseID := uuid.New()
	images := new(MockImageRepository)
	m := newTestImageManager(new(MockImageHost), images)

	images.On("Detach", ctx, houseID, []string{"a.jpg"}).Return(int64(1), nil)

	n, err := m.Detach(ctx, houseID, []string{"a.jpg"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = m.Detach(ctx, houseID, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	images.AssertNumberOfCalls(t, "Detach", 1)
}

func TestImageManager_RemoveRemote(t *testing.T) {
	ctx := context.Background()
	host := new(MockImageHost)
	m := newTestImageManager(host, new(MockImageRepository))

	host.On("Delete", ctx, "a.jpg").Return(errors.New("timeout"))
	host.On("Delete", ctx, "b.jpg").Return(nil)

	assert.NotPanics(t, func() {
		m.RemoveRemote(ctx, []string{"a.jpg", "b.jpg"})
	})
	host.AssertExpectations(t)
}

func TestCompensation(t *testing.T) {
	ctx := context.Background()

	t.Run("runs steps in reverse and keeps going after a failure", func(t *testing.T) {
		host := new(MockImageHost)
		comp := newCompensation(host, nil, zap.NewNop())
		comp.add("a")
		comp.add("b")
		comp.add("c")

		var order []string
		record := func(args mock.Arguments) { order = append(order, args.String(1)) }
		host.On("Delete", ctx, "c").Run(record).Return(nil)
		host.On("Delete", ctx, "b").Run(record).Return(errors.New("boom"))
		host.On("Delete", ctx, "a").Run(record).Return(nil)

		comp.Run(ctx)
		assert.Equal(t, []string{"c", "b", "a"}, order)
		assert.Empty(t, comp.Pending())
	})

	t.Run("discard forgets pending deletes", func(t *testing.T) {
		host := new(MockImageHost)
		comp := newCompensation(host, nil, zap.NewNop())
		comp.add("a")

		comp.Discard()
		comp.Run(ctx)
		host.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("nil compensation is safe", func(t *testing.T) {
		var comp *Compensation
		assert.NotPanics(t, func() {
			comp.Run(ctx)
			comp.Discard()
		})
		assert.Nil(t, comp.Pending())
	})
}
