package svrl

import (
	"io"

	json "github.com/goccy/go-json"
)

// ToJSON serializes the report for downstream consumers that prefer JSON over
// the XML grammar.
func (o *SchematronOutput) ToJSON() ([]byte, error) {
	return json.MarshalIndent(o, "", "  ")
}

// WriteJSON streams the JSON form of the report to w.
func WriteJSON(w io.Writer, o *SchematronOutput) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(o)
}
