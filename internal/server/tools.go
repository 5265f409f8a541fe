package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// imageProperty is the schema of the image_base64 argument shared by every tool.
func imageProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Base64-encoded image bytes (PNG, JPEG, GIF, WebP, BMP or TIFF). A data: URI prefix is accepted.",
	}
}

func qualityProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": "Encoding quality 1-100, clamped. PNG: compression effort only (always lossless). JPEG: quantization quality. WebP: colour bit depth. Default 80",
		"default":     80,
	}
}

func formatProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Output format: png, jpeg (jpg) or webp. Empty or unknown values mean png. Default png",
		"default":     "png",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_info",
			Description: "Decode an image and return its dimensions, detected format, bit depth and whether it has any transparent pixels.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_base64": imageProperty(),
				},
				"required": []string{"image_base64"},
			},
		},

		// Color Operations
		{
			Name:        "image_sample_color",
			Description: "Get the colour at a pixel coordinate. Fractional coordinates are bilinearly interpolated from the four neighbouring pixels.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_base64": imageProperty(),
					"x": map[string]interface{}{
						"type":        "number",
						"description": "X coordinate (0-based, from left, may be fractional)",
					},
					"y": map[string]interface{}{
						"type":        "number",
						"description": "Y coordinate (0-based, from top, may be fractional)",
					},
				},
				"required": []string{"image_base64", "x", "y"},
			},
		},
		{
			Name:        "image_sample_colors_multi",
			Description: "Sample colours at multiple points in one call. Returns colours in the same order as the input points.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_base64": imageProperty(),
					"points": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x":     map[string]interface{}{"type": "number"},
								"y":     map[string]interface{}{"type": "number"},
								"label": map[string]interface{}{"type": "string"},
							},
							"required": []string{"x", "y"},
						},
						"description": "Points to sample, each with optional label",
					},
				},
				"required": []string{"image_base64", "points"},
			},
		},

		// Geometric Operations
		{
			Name:        "image_crop",
			Description: "Crop a rectangular region from an image and return it as base64-encoded PNG. A rectangle overflowing the image is shrunk to fit; the origin must lie inside the image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_base64": imageProperty(),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "Left edge X coordinate (0-based)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Top edge Y coordinate (0-based)",
					},
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Region width in pixels (must be positive)",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Region height in pixels (must be positive)",
					},
				},
				"required": []string{"image_base64", "x", "y", "width", "height"},
			},
		},
		{
			Name:        "image_crop_region",
			Description: "Crop a named region of the image (top-left, top-right, bottom-left, bottom-right, top-half, bottom-half, left-half, right-half, center) and return it as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_base64": imageProperty(),
					"region": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"top-left", "top-right", "bottom-left", "bottom-right", "top-half", "bottom-half", "left-half", "right-half", "center"},
						"description": "Named region to extract",
					},
				},
				"required": []string{"image_base64", "region"},
			},
		},
		{
			Name:        "image_perspective_crop",
			Description: "Straighten a four-corner region (e.g. a photographed document) into a rectangular image of the given size, returned as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_base64": imageProperty(),
					"points": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "number"},
						"minItems":    8,
						"maxItems":    8,
						"description": "Corners as x0,y0,x1,y1,x2,y2,x3,y3 in order top-left, top-right, bottom-right, bottom-left",
					},
					"out_width": map[string]interface{}{
						"type":        "integer",
						"description": "Output width in pixels",
					},
					"out_height": map[string]interface{}{
						"type":        "integer",
						"description": "Output height in pixels",
					},
				},
				"required": []string{"image_base64", "points", "out_width", "out_height"},
			},
		},
		{
			Name:        "image_resize",
			Description: "Resize an image to exact dimensions (aspect ratio not preserved) and return it as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_base64": imageProperty(),
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Target width in pixels",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Target height in pixels",
					},
					"filter": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"nearest", "triangle", "catmullrom", "gaussian", "lanczos3"},
						"description": "Resampling filter. Unknown values mean lanczos3. Default lanczos3",
						"default":     "lanczos3",
					},
				},
				"required": []string{"image_base64", "width", "height"},
			},
		},

		// Encoding Operations
		{
			Name:        "image_compress",
			Description: "Re-encode an image in another format and/or quality without changing its dimensions.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_base64": imageProperty(),
					"quality":      qualityProperty(),
					"format":       formatProperty(),
				},
				"required": []string{"image_base64"},
			},
		},
		{
			Name:        "image_optimize",
			Description: "Scale an image down (preserving aspect ratio) to fit a bounding box, then re-encode it. At least one of max_width/max_height is required.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_base64": imageProperty(),
					"max_width": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum width in pixels; 0 or omitted means unconstrained",
					},
					"max_height": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum height in pixels; 0 or omitted means unconstrained",
					},
					"quality": qualityProperty(),
					"format":  formatProperty(),
					"allow_upscale": map[string]interface{}{
						"type":        "boolean",
						"description": "Enlarge images smaller than the bounding box. Default false",
						"default":     false,
					},
				},
				"required": []string{"image_base64"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
