package ipc

// Loss classes for format conversions.
//   - L0: Byte-for-byte round-trip (lossless)
//   - L1: Semantically lossless (formatting may differ)
//   - L2: Minor loss (some metadata/structure)
//   - L3: Significant loss (text preserved, annotation lost)
//   - L4: Text-only (minimal preservation)
const (
	LossL0 = "L0"
	LossL1 = "L1"
	LossL2 = "L2"
	LossL3 = "L3"
	LossL4 = "L4"
)

// ExtractIRResult is the result of an extract-ir command.
type ExtractIRResult struct {
	IRPath     string      `json:"ir_path,omitempty"`
	IR         interface{} `json:"ir,omitempty"`
	LossClass  string      `json:"loss_class"`
	LossReport *LossReport `json:"loss_report,omitempty"`
}

// EmitNativeResult is the result of an emit-native command.
type EmitNativeResult struct {
	OutputPath string      `json:"output_path"`
	Format     string      `json:"format"`
	LossClass  string      `json:"loss_class"`
	LossReport *LossReport `json:"loss_report,omitempty"`
}

// LossReport describes any data loss during conversion.
type LossReport struct {
	SourceFormat string        `json:"source_format"`
	TargetFormat string        `json:"target_format"`
	LossClass    string        `json:"loss_class"`
	LostElements []LostElement `json:"lost_elements,omitempty"`
	Warnings     []string      `json:"warnings,omitempty"`
}

// LostElement describes a specific element that was lost during conversion.
type LostElement struct {
	Path          string      `json:"path"`
	ElementType   string      `json:"element_type"`
	Reason        string      `json:"reason"`
	OriginalValue interface{} `json:"original_value,omitempty"`
}

// LintResult is the result of a lint command.
type LintResult struct {
	Valid       bool          `json:"valid"`
	Errors      int           `json:"errors"`
	Warnings    int           `json:"warnings"`
	Sentences   int           `json:"sentences"`
	Tokens      int           `json:"tokens"`
	Diagnostics []LintFinding `json:"diagnostics,omitempty"`
}

// LintFinding is one validator diagnostic.
type LintFinding struct {
	Rule     string `json:"rule"`
	Name     string `json:"name"`
	Severity string `json:"severity"`
	Line     int    `json:"line"`
	Field    int    `json:"field,omitempty"`
	Message  string `json:"message"`
}
