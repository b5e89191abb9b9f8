// Package server implements the MCP (Model Context Protocol) server for leaf
// condition analysis.
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
// Image Information:
//   - image_load: Load image and get metadata
//
// Classification:
//   - leaf_analyze: Classify a leaf photo, optionally within a region
//   - leaf_advisory: Advisory for a label, optionally for a crop
//   - leaf_diagnose: Classification and advisory in one call
//
// Calibration Aids:
//   - leaf_mask_overlay: Highlight one color mask over the leaf
//   - leaf_sample_color: Pixel color in HSV with matching masks
//   - leaf_conditions: Known labels, crops, masks and regions
//
// # Image Caching
//
// Images are decoded once per path, downscaled if configured, and reused
// across tool calls for the lifetime of the process. Pixel coordinates in
// tool arguments refer to the downscaled image.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// An unknown advisory label is not an error; leaf_advisory reports it with
// found=false.
//
// # Usage
//
//	cfg, err := server.ConfigFromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv, err := server.NewWithConfig(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
