package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"

	log "github.com/sirupsen/logrus"

	"github.com/ironsheep/leaf-doctor-mcp/internal/advisory"
	"github.com/ironsheep/leaf-doctor-mcp/internal/imaging"
	"github.com/ironsheep/leaf-doctor-mcp/internal/leaf"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "leaf_analyze", "leaf_advisory").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// errMissingPath is returned by tools that need an image when none is given.
var errMissingPath = errors.New("path is required")

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		log.WithFields(log.Fields{"tool": params.Name}).WithError(err).Debug("Tool failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	log.WithFields(log.Fields{"tool": name}).Debug("Tool call")

	switch name {
	// Image Information
	case "image_load":
		return s.handleImageLoad(args)

	// Classification
	case "leaf_analyze":
		return s.handleLeafAnalyze(args)
	case "leaf_advisory":
		return s.handleLeafAdvisory(args)
	case "leaf_diagnose":
		return s.handleLeafDiagnose(args)

	// Calibration Aids
	case "leaf_mask_overlay":
		return s.handleLeafMaskOverlay(args)
	case "leaf_sample_color":
		return s.handleLeafSampleColor(args)
	case "leaf_conditions":
		return s.handleLeafConditions(args)

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

// regionArgs selects the part of an image a tool works on. Box wins over
// Region; neither means the whole image.
type regionArgs struct {
	Region string          `json:"region"`
	Box    *imaging.Region `json:"box"`
}

// loadRegion loads path through the cache and crops it to the requested
// region. It returns the image and the region in analysed-image coordinates.
func (s *Server) loadRegion(path string, ra regionArgs) (image.Image, imaging.Region, error) {
	if path == "" {
		return nil, imaging.Region{}, errMissingPath
	}
	img, err := s.cache.Load(path)
	if err != nil {
		return nil, imaging.Region{}, err
	}

	full, _ := imaging.NamedRegion(img, "full")
	r := full
	if ra.Box != nil {
		r = *ra.Box
	} else if ra.Region != "" {
		if r, err = imaging.NamedRegion(img, ra.Region); err != nil {
			return nil, imaging.Region{}, err
		}
	}
	if r == full {
		return img, r, nil
	}

	cropped, err := imaging.Crop(img, r)
	if err != nil {
		return nil, imaging.Region{}, err
	}
	return cropped, r, nil
}

// === Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errMissingPath
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

// === Classification Handlers ===

// AnalysisResult is the leaf_analyze response.
type AnalysisResult struct {
	leaf.Result
	Width  int            `json:"width"`
	Height int            `json:"height"`
	Region imaging.Region `json:"region"`
}

// AdvisoryResult is the leaf_advisory response. Advisory is omitted when
// Found is false.
type AdvisoryResult struct {
	Label    string          `json:"label"`
	Crop     string          `json:"crop,omitempty"`
	Found    bool            `json:"found"`
	Advisory *advisory.Entry `json:"advisory,omitempty"`
}

// DiagnosisResult is the leaf_diagnose response.
type DiagnosisResult struct {
	Analysis AnalysisResult `json:"analysis"`
	Advisory AdvisoryResult `json:"advisory"`
}

type leafAnalyzeArgs struct {
	Path string `json:"path"`
	regionArgs
}

func (s *Server) analyze(path string, ra regionArgs) (AnalysisResult, error) {
	img, r, err := s.loadRegion(path, ra)
	if err != nil {
		return AnalysisResult{}, err
	}

	buf := imaging.ToBuffer(img)
	if err := buf.Validate(); err != nil {
		return AnalysisResult{}, fmt.Errorf("cannot analyse %s: %w", path, err)
	}
	res := s.analyzer.Analyze(buf)

	log.WithFields(log.Fields{
		"path":       path,
		"label":      res.Label,
		"confidence": res.Confidence,
	}).Debug("Leaf analysed")

	return AnalysisResult{
		Result: res,
		Width:  buf.Width,
		Height: buf.Height,
		Region: r,
	}, nil
}

func (s *Server) advise(label, crop string) AdvisoryResult {
	res := AdvisoryResult{Label: label, Crop: crop}
	if entry, ok := s.catalog.Lookup(label, crop); ok {
		res.Found = true
		res.Advisory = &entry
	}
	return res
}

func (s *Server) handleLeafAnalyze(args json.RawMessage) (interface{}, error) {
	var a leafAnalyzeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.analyze(a.Path, a.regionArgs)
}

type leafAdvisoryArgs struct {
	Label string `json:"label"`
	Crop  string `json:"crop"`
}

func (s *Server) handleLeafAdvisory(args json.RawMessage) (interface{}, error) {
	var a leafAdvisoryArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.advise(a.Label, a.Crop), nil
}

type leafDiagnoseArgs struct {
	Path string `json:"path"`
	Crop string `json:"crop"`
	regionArgs
}

func (s *Server) handleLeafDiagnose(args json.RawMessage) (interface{}, error) {
	var a leafDiagnoseArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	analysis, err := s.analyze(a.Path, a.regionArgs)
	if err != nil {
		return nil, err
	}
	return DiagnosisResult{
		Analysis: analysis,
		Advisory: s.advise(string(analysis.Label), a.Crop),
	}, nil
}

// === Calibration Aid Handlers ===

type leafMaskOverlayArgs struct {
	Path  string `json:"path"`
	Mask  string `json:"mask"`
	Color string `json:"color"`
	regionArgs
}

func (s *Server) handleLeafMaskOverlay(args json.RawMessage) (interface{}, error) {
	var a leafMaskOverlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Color == "" {
		a.Color = imaging.DefaultHighlight
	}

	img, _, err := s.loadRegion(a.Path, a.regionArgs)
	if err != nil {
		return nil, err
	}
	masks, err := s.analyzer.Masks(imaging.ToBuffer(img))
	if err != nil {
		return nil, err
	}
	m, err := masks.ByName(a.Mask)
	if err != nil {
		return nil, err
	}
	return imaging.MaskOverlay(img, a.Mask, m, a.Color)
}

type leafSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleLeafSampleColor(args json.RawMessage) (interface{}, error) {
	var a leafSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errMissingPath
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y, s.analyzer.Calibration().Thresholds)
}

// ConditionsResult is the leaf_conditions response.
type ConditionsResult struct {
	Labels         []leaf.Label        `json:"labels"`
	AdvisoryLabels []string            `json:"advisory_labels"`
	Crops          []string            `json:"crops"`
	CropsByLabel   map[string][]string `json:"crops_by_label"`
	Masks          []string            `json:"masks"`
	Regions        []string            `json:"regions"`
}

func (s *Server) handleLeafConditions(_ json.RawMessage) (interface{}, error) {
	labels := s.catalog.Labels()
	crops := make(map[string][]string, len(labels))
	for _, l := range labels {
		crops[l] = s.catalog.Crops(l)
	}
	return ConditionsResult{
		Labels:         leaf.Labels(),
		AdvisoryLabels: labels,
		Crops:          s.catalog.AllCrops(),
		CropsByLabel:   crops,
		Masks:          leaf.MaskNames,
		Regions:        imaging.RegionNames,
	}, nil
}
