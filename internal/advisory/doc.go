// Package advisory provides the text advisories shown next to a leaf
// classification.
//
// The advisory table maps a condition label to an Entry and may carry
// crop-specific overrides:
//
//	{
//	  "Leaf Spot": {
//	    "name": "Leaf spot",
//	    "symptoms": ["..."],
//	    "per_crop": {
//	      "Tomato": {"name": "Early blight / Septoria leaf spot"}
//	    }
//	  }
//	}
//
// A crop override replaces each field it names; fields it does not name keep
// the base value. Lists are replaced, never appended.
//
// A Catalog is immutable once parsed and safe for concurrent reads. Default
// returns the table embedded in the binary, parsed once per process.
package advisory
