package server

import (
	"github.com/ironsheep/leaf-doctor-mcp/internal/imaging"
	"github.com/ironsheep/leaf-doctor-mcp/internal/leaf"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the leaf image file",
	}
}

func regionProperties() (name, box map[string]interface{}) {
	name = map[string]interface{}{
		"type":        "string",
		"description": "Named region to analyse instead of the whole image",
		"enum":        imaging.RegionNames,
		"default":     "full",
	}
	box = map[string]interface{}{
		"type":        "object",
		"description": "Explicit rectangle to analyse; takes precedence over region",
		"properties": map[string]interface{}{
			"x1": map[string]interface{}{"type": "integer"},
			"y1": map[string]interface{}{"type": "integer"},
			"x2": map[string]interface{}{"type": "integer"},
			"y2": map[string]interface{}{"type": "integer"},
		},
		"required": []string{"x1", "y1", "x2", "y2"},
	}
	return name, box
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	region, box := regionProperties()

	return []Tool{
		// Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format, including the size it is analysed at after downscaling.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Classification
		{
			Name:        "leaf_analyze",
			Description: "Classify a leaf photo as Healthy, Powdery Mildew, Leaf Spot or Nutrient Deficiency from color coverage. Returns the label, a confidence in [0,1] and the green, spot, powdery and yellow coverage fractions.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty(),
					"region": region,
					"box":    box,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "leaf_advisory",
			Description: "Look up the advisory for a condition label, optionally specialised for a crop. Returns found=false when the label is unknown.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"label": map[string]interface{}{
						"type":        "string",
						"description": "Condition label, e.g. \"Leaf Spot\"",
					},
					"crop": map[string]interface{}{
						"type":        "string",
						"description": "Crop name, e.g. \"Tomato\". Unknown crops fall back to the general advisory.",
					},
				},
				"required": []string{"label"},
			},
		},
		{
			Name:        "leaf_diagnose",
			Description: "Analyse a leaf photo and return the classification together with the matching advisory in one call.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"crop": map[string]interface{}{
						"type":        "string",
						"description": "Crop name used to specialise the advisory",
					},
					"region": region,
					"box":    box,
				},
				"required": []string{"path"},
			},
		},

		// Calibration Aids
		{
			Name:        "leaf_mask_overlay",
			Description: "Render one filtered color mask (green, brown, powdery or yellow) over a grayscale copy of the leaf and return it as base64-encoded PNG. Use this to see which pixels drive a classification.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"mask": map[string]interface{}{
						"type":        "string",
						"description": "Mask to highlight",
						"enum":        leaf.MaskNames,
					},
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Highlight color as hex (#RRGGBB or #RRGGBBAA); alpha sets the blend",
						"default":     "#FF00FFB4",
					},
					"region": region,
					"box":    box,
				},
				"required": []string{"path", "mask"},
			},
		},
		{
			Name:        "leaf_sample_color",
			Description: "Get the color of a pixel as RGB, hex and HSV (hue 0-179, saturation and value 0-255) and list the masks whose color thresholds it satisfies.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate in the analysed image",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate in the analysed image",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "leaf_conditions",
			Description: "List the condition labels, the crops with specialised advisories, the mask names and the region names this server understands.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
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
