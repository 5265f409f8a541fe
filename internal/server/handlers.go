package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/ironsheep/image-pipeline-mcp/internal/imaging"
	"github.com/ironsheep/image-pipeline-mcp/internal/pipeline"
)

// defaultQuality applies when a tool call omits quality.
const defaultQuality = 80

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_info", "image_crop").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// ImageResult is the tool result for every operation that produces an image.
type ImageResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Format      string `json:"format"`
	MimeType    string `json:"mime_type"`
	SizeBytes   int    `json:"size_bytes"`
	ImageBase64 string `json:"image_base64"`
}

func newImageResult(r *pipeline.Result) *ImageResult {
	return &ImageResult{
		Width:       r.Width,
		Height:      r.Height,
		Format:      r.Format.String(),
		MimeType:    r.Format.MimeType(),
		SizeBytes:   len(r.Data),
		ImageBase64: base64.StdEncoding.EncodeToString(r.Data),
	}
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000
// whose data is the error message.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	logger := log.With().
		Str("call_id", newCallID()).
		Str("tool", params.Name).
		Logger()
	start := time.Now()

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		logger.Warn().Err(err).Dur("elapsed", time.Since(start)).Msg("tool failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	logger.Debug().Dur("elapsed", time.Since(start)).Msg("tool finished")

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Decodes the base64 image argument
//  4. Calls the matching pipeline operation
//  5. Returns the result or error
//
// A panic inside a handler is recovered and returned as an error.
func (s *Server) executeTool(name string, args json.RawMessage) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("tool", name).Interface("panic", r).Msg("tool panicked")
			result, err = nil, errors.Errorf("internal error: %v", r)
		}
	}()

	switch name {
	// Basic Image Information
	case "image_info":
		return s.handleImageInfo(args)

	// Color Operations
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_sample_colors_multi":
		return s.handleImageSampleColorsMulti(args)

	// Geometric Operations
	case "image_crop":
		return s.handleImageCrop(args)
	case "image_crop_region":
		return s.handleImageCropRegion(args)
	case "image_perspective_crop":
		return s.handleImagePerspectiveCrop(args)
	case "image_resize":
		return s.handleImageResize(args)

	// Encoding Operations
	case "image_compress":
		return s.handleImageCompress(args)
	case "image_optimize":
		return s.handleImageOptimize(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// newCallID returns a correlation id for log lines of one tool call.
func newCallID() string {
	id, err := uuid.NewV4()
	if err != nil {
		return "unknown"
	}
	return id.String()
}

// decodeImageArg turns the image_base64 argument into raw bytes. A data URI
// prefix ("data:image/png;base64,") is stripped.
func decodeImageArg(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "data:") {
		if i := strings.IndexByte(s, ','); i >= 0 {
			s = s[i+1:]
		}
	}
	if s == "" {
		return nil, errors.Wrap(imaging.ErrDecode, "image_base64 is required")
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(imaging.ErrDecode, "invalid base64 image: %v", err)
	}
	return data, nil
}

func qualityOrDefault(q *int) int {
	if q == nil {
		return defaultQuality
	}
	return *q
}

// === Basic Image Information Handlers ===

type imageArgs struct {
	ImageBase64 string `json:"image_base64"`
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a imageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	data, err := decodeImageArg(a.ImageBase64)
	if err != nil {
		return nil, err
	}
	return s.proc.Info(data)
}

// === Color Operation Handlers ===

type imageSampleColorArgs struct {
	ImageBase64 string  `json:"image_base64"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	data, err := decodeImageArg(a.ImageBase64)
	if err != nil {
		return nil, err
	}
	res, err := s.proc.Sample(data, []imaging.LabeledPoint{{X: a.X, Y: a.Y}})
	if err != nil {
		return nil, err
	}
	return &res.Samples[0].Color, nil
}

type imageSampleColorsMultiArgs struct {
	ImageBase64 string `json:"image_base64"`
	Points      []struct {
		X     float64 `json:"x"`
		Y     float64 `json:"y"`
		Label string  `json:"label,omitempty"`
	} `json:"points"`
}

func (s *Server) handleImageSampleColorsMulti(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorsMultiArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	data, err := decodeImageArg(a.ImageBase64)
	if err != nil {
		return nil, err
	}

	points := make([]imaging.LabeledPoint, len(a.Points))
	for i, p := range a.Points {
		points[i] = imaging.LabeledPoint{X: p.X, Y: p.Y, Label: p.Label}
	}
	return s.proc.Sample(data, points)
}

// === Geometric Operation Handlers ===

type imageCropArgs struct {
	ImageBase64 string `json:"image_base64"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	data, err := decodeImageArg(a.ImageBase64)
	if err != nil {
		return nil, err
	}
	res, err := s.proc.Crop(data, a.X, a.Y, a.Width, a.Height)
	if err != nil {
		return nil, err
	}
	return newImageResult(res), nil
}

type imageCropRegionArgs struct {
	ImageBase64 string `json:"image_base64"`
	Region      string `json:"region"`
}

func (s *Server) handleImageCropRegion(args json.RawMessage) (interface{}, error) {
	var a imageCropRegionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	data, err := decodeImageArg(a.ImageBase64)
	if err != nil {
		return nil, err
	}
	res, err := s.proc.CropRegion(data, a.Region)
	if err != nil {
		return nil, err
	}
	return newImageResult(res), nil
}

type imagePerspectiveCropArgs struct {
	ImageBase64 string    `json:"image_base64"`
	Points      []float64 `json:"points"`
	OutWidth    int       `json:"out_width"`
	OutHeight   int       `json:"out_height"`
}

func (s *Server) handleImagePerspectiveCrop(args json.RawMessage) (interface{}, error) {
	var a imagePerspectiveCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	data, err := decodeImageArg(a.ImageBase64)
	if err != nil {
		return nil, err
	}
	res, err := s.proc.PerspectiveCrop(data, a.Points, a.OutWidth, a.OutHeight)
	if err != nil {
		return nil, err
	}
	return newImageResult(res), nil
}

type imageResizeArgs struct {
	ImageBase64 string `json:"image_base64"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Filter      string `json:"filter"`
}

func (s *Server) handleImageResize(args json.RawMessage) (interface{}, error) {
	var a imageResizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	data, err := decodeImageArg(a.ImageBase64)
	if err != nil {
		return nil, err
	}
	res, err := s.proc.Resize(data, a.Width, a.Height, a.Filter)
	if err != nil {
		return nil, err
	}
	return newImageResult(res), nil
}

// === Encoding Operation Handlers ===

type imageCompressArgs struct {
	ImageBase64 string `json:"image_base64"`
	Quality     *int   `json:"quality"`
	Format      string `json:"format"`
}

func (s *Server) handleImageCompress(args json.RawMessage) (interface{}, error) {
	var a imageCompressArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	data, err := decodeImageArg(a.ImageBase64)
	if err != nil {
		return nil, err
	}
	res, err := s.proc.Compress(data, qualityOrDefault(a.Quality), a.Format)
	if err != nil {
		return nil, err
	}
	return newImageResult(res), nil
}

type imageOptimizeArgs struct {
	ImageBase64  string `json:"image_base64"`
	MaxWidth     int    `json:"max_width"`
	MaxHeight    int    `json:"max_height"`
	Quality      *int   `json:"quality"`
	Format       string `json:"format"`
	AllowUpscale bool   `json:"allow_upscale"`
}

func (s *Server) handleImageOptimize(args json.RawMessage) (interface{}, error) {
	var a imageOptimizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	data, err := decodeImageArg(a.ImageBase64)
	if err != nil {
		return nil, err
	}
	res, err := s.proc.Optimize(data, a.MaxWidth, a.MaxHeight, qualityOrDefault(a.Quality), a.Format, a.AllowUpscale)
	if err != nil {
		return nil, err
	}
	return newImageResult(res), nil
}
