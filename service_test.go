package assetserve_test

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/sagarc03/assetserve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type SpyFileStorage struct {
	mock.Mock
}

func (s *SpyFileStorage) Stat(ctx context.Context, path string) (fs.FileInfo, error) {
	args := s.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(fs.FileInfo), args.Error(1)
}

func (s *SpyFileStorage) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	args := s.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (s *SpyFileStorage) List(ctx context.Context) ([]assetserve.AssetEntry, error) {
	args := s.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]assetserve.AssetEntry), args.Error(1)
}

type fakeFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

func (f fakeFileInfo) Name() string       { return f.name }
func (f fakeFileInfo) Size() int64        { return f.size }
func (f fakeFileInfo) Mode() fs.FileMode  { return f.mode }
func (f fakeFileInfo) ModTime() time.Time { return f.modTime }
func (f fakeFileInfo) IsDir() bool        { return f.mode.IsDir() }
func (f fakeFileInfo) Sys() any           { return nil }

func NewAssetService(t *testing.T) (*assetserve.AssetService, *SpyFileStorage) {
	t.Helper()
	spyStorage := new(SpyFileStorage)
	s, err := assetserve.NewAssetService(spyStorage)
	require.NoError(t, err, "new asset service")
	return s, spyStorage
}

func TestNewAssetService_NilStorage(t *testing.T) {
	s, err := assetserve.NewAssetService(nil)
	assert.Error(t, err)
	assert.Nil(t, s)
}

func TestAssetService_Serve(t *testing.T) {
	mtime := time.UnixMilli(1718000000000)
	info := fakeFileInfo{name: "long_dark.png", size: 12345, modTime: mtime}
	etag := `"12345-1718000000000"`

	t.Run("happy path", func(t *testing.T) {
		service, storage := NewAssetService(t)
		ctx := context.Background()

		storage.On("Stat", ctx, "logos/long_dark.png").Return(info, nil)
		storage.On("Open", ctx, "logos/long_dark.png").Return(io.NopCloser(strings.NewReader("png")), nil)

		resp, err := service.Serve(ctx, "/logos/long_dark.png", "")
		require.NoError(t, err)
		require.NotNil(t, resp.Body)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusOK, resp.Status)
		assert.Equal(t, assetserve.OutcomeServed, resp.Outcome)
		assert.Equal(t, int64(12345), resp.Size)
		assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
		assert.Equal(t, etag, resp.Header.Get("ETag"))
		assert.Equal(t, "12345", resp.Header.Get("Content-Length"))
		assert.Equal(t, "public, max-age=31536000, immutable", resp.Header.Get("Cache-Control"))

		storage.AssertExpectations(t)
	})

	t.Run("invalid path never touches storage", func(t *testing.T) {
		service, storage := NewAssetService(t)

		resp, err := service.Serve(context.Background(), "/../../etc/passwd", "")
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.Status)
		assert.Equal(t, assetserve.OutcomeRejected, resp.Outcome)
		assert.Equal(t, assetserve.ReasonTraversal, resp.Reason)
		assert.Equal(t, "no-cache", resp.Header.Get("Cache-Control"))
		assert.Nil(t, resp.Body)

		storage.AssertNotCalled(t, "Stat", mock.Anything, mock.Anything)
		storage.AssertNotCalled(t, "Open", mock.Anything, mock.Anything)
	})

	t.Run("unsupported type", func(t *testing.T) {
		service, _ := NewAssetService(t)

		resp, err := service.Serve(context.Background(), "/logos/readme.txt", "")
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.Status)
		assert.Equal(t, assetserve.ReasonUnsupportedType, resp.Reason)
	})

	t.Run("outside root is forbidden", func(t *testing.T) {
		service, storage := NewAssetService(t)
		ctx := context.Background()

		storage.On("Stat", ctx, "logos/link.png").Return(nil, assetserve.ErrOutsideRoot)

		resp, err := service.Serve(ctx, "logos/link.png", "")
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.Status)
		assert.Equal(t, assetserve.OutcomeForbidden, resp.Outcome)
		assert.Equal(t, "no-cache", resp.Header.Get("Cache-Control"))
		storage.AssertNotCalled(t, "Open", mock.Anything, mock.Anything)
	})

	t.Run("missing file", func(t *testing.T) {
		service, storage := NewAssetService(t)
		ctx := context.Background()

		storage.On("Stat", ctx, "logos/missing.png").Return(nil, assetserve.ErrNotFound)

		resp, err := service.Serve(ctx, "/logos/missing.png", "")
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.Status)
		assert.Equal(t, assetserve.OutcomeNotFound, resp.Outcome)
		assert.Equal(t, "no-cache", resp.Header.Get("Cache-Control"))
	})

	t.Run("directory is not served", func(t *testing.T) {
		service, storage := NewAssetService(t)
		ctx := context.Background()

		dir := fakeFileInfo{name: "dir.png", mode: fs.ModeDir | 0o755, modTime: mtime}
		storage.On("Stat", ctx, "logos/dir.png").Return(dir, nil)

		resp, err := service.Serve(ctx, "/logos/dir.png", "")
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.Status)
		assert.Equal(t, assetserve.OutcomeNotAFile, resp.Outcome)
		storage.AssertNotCalled(t, "Open", mock.Anything, mock.Anything)
	})

	t.Run("matching etag is not modified", func(t *testing.T) {
		service, storage := NewAssetService(t)
		ctx := context.Background()

		storage.On("Stat", ctx, "logos/long_dark.png").Return(info, nil)

		resp, err := service.Serve(ctx, "/logos/long_dark.png", etag)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotModified, resp.Status)
		assert.Equal(t, assetserve.OutcomeNotModified, resp.Outcome)
		assert.Nil(t, resp.Body)
		assert.Equal(t, etag, resp.Header.Get("ETag"))
		assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
		assert.Equal(t, "public, max-age=31536000, immutable", resp.Header.Get("Cache-Control"))
		assert.Empty(t, resp.Header.Get("Content-Length"))
		storage.AssertNotCalled(t, "Open", mock.Anything, mock.Anything)
	})

	t.Run("weak or different etag is served", func(t *testing.T) {
		for _, inm := range []string{"W/" + etag, `"12345-0"`, "*", strings.Trim(etag, `"`)} {
			service, storage := NewAssetService(t)
			ctx := context.Background()

			storage.On("Stat", ctx, "logos/long_dark.png").Return(info, nil)
			storage.On("Open", ctx, "logos/long_dark.png").Return(io.NopCloser(strings.NewReader("")), nil)

			resp, err := service.Serve(ctx, "/logos/long_dark.png", inm)
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.Status, "If-None-Match %q", inm)
			_ = resp.Body.Close()
		}
	})

	t.Run("stat failure is returned as error", func(t *testing.T) {
		service, storage := NewAssetService(t)
		ctx := context.Background()

		storage.On("Stat", ctx, "logos/a.png").Return(nil, fs.ErrPermission)

		_, err := service.Serve(ctx, "/logos/a.png", "")
		assert.Error(t, err)
		assert.ErrorIs(t, err, fs.ErrPermission)
	})

	t.Run("open failure is returned as error", func(t *testing.T) {
		service, storage := NewAssetService(t)
		ctx := context.Background()

		storage.On("Stat", ctx, "logos/a.png").Return(info, nil)
		storage.On("Open", ctx, "logos/a.png").Return(nil, errors.New("disk on fire"))

		_, err := service.Serve(ctx, "/logos/a.png", "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "disk on fire")
	})

	t.Run("file removed between stat and open", func(t *testing.T) {
		service, storage := NewAssetService(t)
		ctx := context.Background()

		storage.On("Stat", ctx, "logos/a.png").Return(info, nil)
		storage.On("Open", ctx, "logos/a.png").Return(nil, assetserve.ErrNotFound)

		resp, err := service.Serve(ctx, "/logos/a.png", "")
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.Status)
	})
}

func TestAssetService_List(t *testing.T) {
	t.Run("delegates to storage", func(t *testing.T) {
		service, storage := NewAssetService(t)
		ctx := context.Background()

		entries := []assetserve.AssetEntry{{Path: "logos/a.png", Folder: "logos", Size: 3}}
		storage.On("List", ctx).Return(entries, nil)

		got, err := service.List(ctx)
		assert.NoError(t, err)
		assert.Equal(t, entries, got)
	})

	t.Run("wraps storage error", func(t *testing.T) {
		service, storage := NewAssetService(t)
		ctx := context.Background()

		storage.On("List", ctx).Return(nil, context.Canceled)

		_, err := service.List(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
