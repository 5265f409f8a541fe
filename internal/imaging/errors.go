package imaging

import "github.com/pkg/errors"

// Error kinds returned by the pipeline. Callers branch on them with
// errors.Is; the wrapped message carries the detail.
var (
	// ErrDecode means the input bytes are truncated, corrupt, or not a
	// recognized image container.
	ErrDecode = errors.New("decode error")

	// ErrInvalidRegion means a crop rectangle has zero size or its origin
	// lies outside the source image.
	ErrInvalidRegion = errors.New("invalid region")

	// ErrInvalidParameters covers zero target dimensions, a malformed
	// quadrilateral, or an optimize call with no bounding dimension.
	ErrInvalidParameters = errors.New("invalid parameters")

	// ErrEncode means the format writer rejected the pixel data.
	ErrEncode = errors.New("encode error")
)
