package output

import (
	"encoding/json"
	"fmt"
)

// JSONFormatter serializes the full report as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *Report) ([]byte, error) {
	if report == nil || report.Result == nil {
		return nil, fmt.Errorf("json formatter: no plan result to format")
	}
	return json.MarshalIndent(report, "", "  ")
}
