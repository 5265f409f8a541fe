// Package server implements the MCP (Model Context Protocol) server for the
// image pipeline.
//
// This package provides a JSON-RPC 2.0 server that exposes crop, perspective
// crop, resize, compress and optimize operations through the MCP protocol.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_info: Dimensions, format, bit depth, transparency
//
// Color Operations:
//   - image_sample_color: Interpolated colour at a point
//   - image_sample_colors_multi: Sample multiple points
//
// Geometric Operations (output PNG):
//   - image_crop: Extract rectangular region
//   - image_crop_region: Extract named region (top-left, center, etc.)
//   - image_perspective_crop: Straighten a four-corner region
//   - image_resize: Resize to exact dimensions with a chosen filter
//
// Encoding Operations:
//   - image_compress: Re-encode as PNG, JPEG or WebP at a quality
//   - image_optimize: Fit inside a bounding box, then re-encode
//
// # Image Transport
//
// Images travel as base64 strings in the image_base64 argument and the
// image_base64 result field. The server never touches the filesystem and
// keeps no state between calls.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The error string
//
// # Usage
//
//	srv := server.New(cfg)
//	if err := srv.Run(); err != nil {
//	    log.Fatal().Err(err).Msg("server error")
//	}
package server
