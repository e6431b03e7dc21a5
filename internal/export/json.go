package export

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/san-kum/nuckage/internal/analysis"
)

type ReportData struct {
	Generated time.Time              `json:"generated"`
	Output    string                 `json:"output"`
	Samples   uint64                 `json:"samples"`
	Chains    []analysis.ChainReport `json:"chains"`
}

// WriteJSON writes data as indented JSON.
func WriteJSON(w io.Writer, data ReportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ReportJSON writes data to path, or to stdout when path is "-".
func ReportJSON(path string, data ReportData) error {
	if path == "-" {
		return WriteJSON(os.Stdout, data)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, data)
}
