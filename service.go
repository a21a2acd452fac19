package assetserve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strconv"
)

// FileStorage defines the file-system operations the asset service needs.
// Implementations must confine every path to a single static root.
//
// All methods accept a context for cancellation. Paths are the normalized,
// slash-separated relative paths produced by CheckAssetPath.
type FileStorage interface {
	// Stat returns file information for the asset at path.
	//
	// Returns:
	//   - fs.FileInfo: information about the resolved target
	//   - error: ErrOutsideRoot if the canonical path escapes the root,
	//     ErrNotFound if nothing exists there, or any other I/O error
	Stat(ctx context.Context, path string) (fs.FileInfo, error)

	// Open opens the asset at path for reading.
	//
	// The caller is responsible for closing the returned ReadCloser.
	// Reads should fail once ctx is canceled so that an abandoned
	// response releases its file handle promptly.
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// List returns every servable asset below the root, sorted by path.
	List(ctx context.Context) ([]AssetEntry, error)
}

// AssetService resolves request paths against a FileStorage and produces
// complete responses. It holds no mutable state.
type AssetService struct {
	storage FileStorage
}

// NewAssetService creates a service backed by storage.
func NewAssetService(storage FileStorage) (*AssetService, error) {
	if storage == nil {
		return nil, errors.New("new asset service: storage cannot be nil")
	}
	return &AssetService{storage: storage}, nil
}

func errorResponse(status int, outcome Outcome, reason Reason) Response {
	return Response{
		Status:  status,
		Header:  BuildHeaders(HeadersError, ""),
		Outcome: outcome,
		Reason:  reason,
	}
}

// Serve runs one request through validation, containment, stat and the
// conditional-GET check. ifNoneMatch is compared to the ETag byte for byte.
//
// Expected failures (bad path, escape, missing file) are returned as
// responses. The error return is reserved for unexpected I/O failures,
// which callers should turn into a generic 500.
func (s *AssetService) Serve(ctx context.Context, rawPath, ifNoneMatch string) (Response, error) {
	req, err := CheckAssetPath(rawPath)
	if err != nil {
		var pe *PathError
		reason := ReasonNone
		if errors.As(err, &pe) {
			reason = pe.Reason
		}
		return errorResponse(http.StatusBadRequest, OutcomeRejected, reason), nil
	}

	info, err := s.storage.Stat(ctx, req.Path)
	if err != nil {
		switch {
		case errors.Is(err, ErrOutsideRoot):
			return errorResponse(http.StatusForbidden, OutcomeForbidden, ReasonNone), nil
		case errors.Is(err, ErrNotFound):
			return errorResponse(http.StatusNotFound, OutcomeNotFound, ReasonNone), nil
		default:
			return Response{}, fmt.Errorf("serve %s: stat: %w", req.Path, err)
		}
	}

	if !info.Mode().IsRegular() {
		return errorResponse(http.StatusNotFound, OutcomeNotAFile, ReasonNone), nil
	}

	etag := FormatETag(info.Size(), info.ModTime())
	header := CacheHeaders(req.Extension)
	header.Set("ETag", etag)

	if ifNoneMatch != "" && ifNoneMatch == etag {
		return Response{
			Status:  http.StatusNotModified,
			Header:  header,
			Outcome: OutcomeNotModified,
		}, nil
	}

	body, err := s.storage.Open(ctx, req.Path)
	if err != nil {
		switch {
		case errors.Is(err, ErrOutsideRoot):
			return errorResponse(http.StatusForbidden, OutcomeForbidden, ReasonNone), nil
		case errors.Is(err, ErrNotFound):
			return errorResponse(http.StatusNotFound, OutcomeNotFound, ReasonNone), nil
		default:
			return Response{}, fmt.Errorf("serve %s: open: %w", req.Path, err)
		}
	}

	header.Set("Content-Length", strconv.FormatInt(info.Size(), 10))

	return Response{
		Status:  http.StatusOK,
		Header:  header,
		Body:    body,
		Size:    info.Size(),
		Outcome: OutcomeServed,
	}, nil
}

// List returns the assets available below the static root.
func (s *AssetService) List(ctx context.Context) ([]AssetEntry, error) {
	entries, err := s.storage.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	return entries, nil
}
