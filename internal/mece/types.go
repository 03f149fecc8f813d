package mece

// ViolationType classifies an analysis from its overlap and gap findings.
type ViolationType string

const (
	ViolationNone    ViolationType = "none"
	ViolationOverlap ViolationType = "overlap"
	ViolationGap     ViolationType = "gap"
	ViolationBoth    ViolationType = "both"
)

// Classify maps the presence of overlaps and gaps to a ViolationType.
func Classify(hasOverlap, hasGap bool) ViolationType {
	switch {
	case hasOverlap && hasGap:
		return ViolationBoth
	case hasOverlap:
		return ViolationOverlap
	case hasGap:
		return ViolationGap
	default:
		return ViolationNone
	}
}

// OverlapReason says how two categories were found to overlap.
type OverlapReason string

const (
	ReasonSharedToken OverlapReason = "shared_token"
	ReasonSubstring   OverlapReason = "substring"
)

// Category is an input label after normalization.
type Category struct {
	Label      string   `json:"label"`
	Normalized string   `json:"normalized"`
	Tokens     []string `json:"tokens"`
}

// Overlap records one overlapping pair, in input order.
type Overlap struct {
	First       string        `json:"first"`
	Second      string        `json:"second"`
	Reason      OverlapReason `json:"reason"`
	SharedToken string        `json:"shared_token,omitempty"`
}

// Analysis is the outcome of AnalyzeCategories.
type Analysis struct {
	Topic              string        `json:"topic"`
	OriginalCategories []string      `json:"original_categories"`
	MECECategories     []Category    `json:"mece_categories"`
	ViolationType      ViolationType `json:"violation_type"`
	IsMECECompliant    bool          `json:"is_mece_compliant"`
	Overlaps           []Overlap     `json:"overlaps"`
	Gaps               []string      `json:"gaps"`
	ComparedFramework  Framework     `json:"compared_framework,omitempty"`
	FrameworkCoverage  float64       `json:"framework_coverage"`
	Suggestions        []string      `json:"suggestions"`
	AnalysisNotes      []string      `json:"analysis_notes"`
}

// ProposedCategory is one category of a generated structure.
type ProposedCategory struct {
	Label       string `json:"category"`
	Description string `json:"description"`
}

// Characteristics describes how a structure satisfies both MECE properties.
type Characteristics struct {
	MutuallyExclusive      string `json:"mutually_exclusive"`
	CollectivelyExhaustive string `json:"collectively_exhaustive"`
}

// Structure is the outcome of CreateStructure.
type Structure struct {
	Topic           string             `json:"topic"`
	Framework       Framework          `json:"framework_used"`
	AutoSelected    bool               `json:"auto_selected"`
	Categories      []ProposedCategory `json:"mece_structure"`
	Characteristics Characteristics    `json:"mece_characteristics"`
	UsageTips       []string           `json:"usage_tips"`
}
