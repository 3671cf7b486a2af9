package svrl

// NamespaceSVRL is the SVRL namespace URI.
const NamespaceSVRL = "http://purl.oclc.org/dsdl/svrl"

// nsPrefix is the prefix used when writing report elements.
const nsPrefix = "svrl"

// Element and attribute names of the report grammar.
const (
	elementSchematronOutput    = "schematron-output"
	elementText                = "text"
	elementNSPrefix            = "ns-prefix-in-attribute-values"
	elementActivePattern       = "active-pattern"
	elementFiredRule           = "fired-rule"
	elementFailedAssert        = "failed-assert"
	elementSuccessfulReport    = "successful-report"
	elementDiagnosticReference = "diagnostic-reference"

	attrTitle         = "title"
	attrPhase         = "phase"
	attrSchemaVersion = "schemaVersion"
	attrPrefix        = "prefix"
	attrURI           = "uri"
	attrID            = "id"
	attrName          = "name"
	attrRole          = "role"
	attrDocument      = "document"
	attrContext       = "context"
	attrFlag          = "flag"
	attrLocation      = "location"
	attrTest          = "test"
	attrDiagnostic    = "diagnostic"
)

// SchematronOutput is the root of a structured validation report.
type SchematronOutput struct {
	Title         string           `json:"title,omitempty"`
	Phase         string           `json:"phase,omitempty"`
	SchemaVersion string           `json:"schemaVersion,omitempty"`
	Texts         []string         `json:"texts,omitempty"`
	NSPrefixes    []NSPrefix       `json:"nsPrefixes,omitempty"`
	Patterns      []*ActivePattern `json:"activePatterns"`
}

// NSPrefix echoes a namespace declaration used in attribute values.
type NSPrefix struct {
	Prefix string `json:"prefix"`
	URI    string `json:"uri"`
}

// ActivePattern records one pattern that was activated during validation.
type ActivePattern struct {
	ID         string       `json:"id,omitempty"`
	Name       string       `json:"name,omitempty"`
	Role       string       `json:"role,omitempty"`
	Document   string       `json:"document,omitempty"`
	FiredRules []*FiredRule `json:"firedRules"`
}

// FiredRule records one rule whose context matched at least one node.
type FiredRule struct {
	ID      string          `json:"id,omitempty"`
	Context string          `json:"context"`
	Role    string          `json:"role,omitempty"`
	Flag    string          `json:"flag,omitempty"`
	Results []*AssertResult `json:"results"`
}

// ResultType discriminates failed-assert from successful-report entries.
type ResultType int

const (
	// FailedAssert is an assert whose test evaluated to false.
	FailedAssert ResultType = iota
	// SuccessfulReport is a report whose test evaluated to true.
	SuccessfulReport
)

// String returns the grammar element name of the result type.
func (t ResultType) String() string {
	if t == SuccessfulReport {
		return elementSuccessfulReport
	}
	return elementFailedAssert
}

// MarshalJSON encodes the type as its grammar element name.
func (t ResultType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// AssertResult is one failed-assert or successful-report entry, owned by the
// immediately preceding fired-rule.
type AssertResult struct {
	Type        ResultType            `json:"type"`
	ID          string                `json:"id,omitempty"`
	Location    string                `json:"location"`
	Test        string                `json:"test"`
	Role        string                `json:"role,omitempty"`
	Flag        string                `json:"flag,omitempty"`
	Diagnostics []DiagnosticReference `json:"diagnosticReferences,omitempty"`
	Text        string                `json:"text"`
}

// DiagnosticReference binds a diagnostic id to its explanatory text.
type DiagnosticReference struct {
	Diagnostic string `json:"diagnostic"`
	Text       string `json:"text"`
}

// FailedAssertCount counts failed-assert entries anywhere in the report.
func (o *SchematronOutput) FailedAssertCount() int {
	return len(o.AllFailedAsserts())
}

// AllFailedAsserts returns every failed-assert entry in document order.
func (o *SchematronOutput) AllFailedAsserts() []*AssertResult {
	return o.collect(FailedAssert)
}

// AllSuccessfulReports returns every successful-report entry in document order.
func (o *SchematronOutput) AllSuccessfulReports() []*AssertResult {
	return o.collect(SuccessfulReport)
}

func (o *SchematronOutput) collect(t ResultType) []*AssertResult {
	var out []*AssertResult
	for _, p := range o.Patterns {
		for _, r := range p.FiredRules {
			for _, res := range r.Results {
				if res.Type == t {
					out = append(out, res)
				}
			}
		}
	}
	return out
}
