// Package imaging implements the pixel-level core of the image pipeline.
//
// Data flows strictly Decode → transform → Encode:
//
//	grid, err := imaging.Decode(data)
//	out, err := imaging.Resize(grid, 640, 480, imaging.FilterLanczos3)
//	buf, err := imaging.Encode(out, imaging.FormatWebP, 80)
//
// Every grid is an *image.NRGBA whose bounds start at (0,0). Transforms never
// modify their input; each returns a newly allocated grid, except FitWithin,
// which hands back its input when no resize is needed.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner,
// X increasing rightward and Y increasing downward. Real-valued coordinates
// used by the sampler address pixel centres, so (0,0) is the centre of the
// first pixel and (W-1,H-1) the centre of the last.
//
// # Permissive Parameters
//
// Structurally valid but out-of-range parameters are clamped or defaulted,
// never rejected:
//   - a crop rectangle overflowing the source is shrunk to fit
//   - quality outside [1,100] is clamped
//   - unknown filter names select Lanczos-3, unknown formats select PNG
//
// # Error Handling
//
// Failures are reported as one of ErrDecode, ErrInvalidRegion,
// ErrInvalidParameters or ErrEncode, wrapped with detail. Use errors.Is to
// test the kind.
//
// # Thread Safety
//
// Every function is stateless. Concurrent calls on different grids need no
// locking, and concurrent reads of the same grid are safe because no
// operation writes to its input.
package imaging
