package assetserve

import (
	"fmt"
	"path"
	"strings"
	"unicode"
)

// Reason classifies why a request path was rejected.
type Reason string

const (
	ReasonNone             Reason = ""
	ReasonEmpty            Reason = "empty"
	ReasonTraversal        Reason = "traversal"
	ReasonInvalidCharacter Reason = "invalid_character"
	ReasonMissingExtension Reason = "missing_extension"
	ReasonUnsupportedType  Reason = "unsupported_type"
	ReasonMissingCategory  Reason = "missing_category"
)

// PathError reports a rejected request path. It matches ErrInvalidInput.
type PathError struct {
	Path   string
	Reason Reason
}

func (e *PathError) Error() string {
	return fmt.Sprintf("invalid asset path %q: %s", e.Path, e.Reason)
}

func (e *PathError) Unwrap() error {
	return ErrInvalidInput
}

const forbiddenChars = `<>:"|?*\`

// CheckAssetPath validates an untrusted request path and returns the parsed
// AssetRequest. The path:
//   - is trimmed and has at most one leading "/" removed
//   - must not be empty
//   - is cleaned lexically and must not contain a ".." segment or start with "/"
//   - must not contain control characters or any of < > : " | ? * \
//   - must end in a file with a supported extension
//   - must have at least two segments (category/filename.ext)
//
// Failures return a *PathError; nothing touches the file system.
func CheckAssetPath(raw string) (AssetRequest, error) {
	p := strings.TrimSpace(raw)
	p = strings.TrimPrefix(p, "/")

	reject := func(reason Reason) (AssetRequest, error) {
		return AssetRequest{}, &PathError{Path: raw, Reason: reason}
	}

	if p == "" {
		return reject(ReasonEmpty)
	}

	for _, r := range p {
		if unicode.IsControl(r) || strings.ContainsRune(forbiddenChars, r) {
			return reject(ReasonInvalidCharacter)
		}
	}

	clean := path.Clean(p)
	if clean == "." || strings.HasPrefix(clean, "/") {
		return reject(ReasonTraversal)
	}

	segments := strings.Split(clean, "/")
	for _, seg := range segments {
		if seg == ".." {
			return reject(ReasonTraversal)
		}
	}

	filename := segments[len(segments)-1]
	dot := strings.LastIndexByte(filename, '.')
	if dot < 0 {
		return reject(ReasonMissingExtension)
	}

	ext := strings.ToLower(filename[dot:])
	if !IsSupportedExtension(ext) {
		return reject(ReasonUnsupportedType)
	}

	if len(segments) < 2 {
		return reject(ReasonMissingCategory)
	}

	return AssetRequest{
		Path:      clean,
		Folder:    segments[0],
		Filename:  filename,
		Extension: ext,
	}, nil
}

// ValidateAssetPath reports whether raw is a servable asset path.
func ValidateAssetPath(raw string) bool {
	_, err := CheckAssetPath(raw)
	return err == nil
}

// ParseAssetRequest returns the parsed request and true, or false when the
// path is invalid.
func ParseAssetRequest(raw string) (AssetRequest, bool) {
	req, err := CheckAssetPath(raw)
	if err != nil {
		return AssetRequest{}, false
	}
	return req, true
}
