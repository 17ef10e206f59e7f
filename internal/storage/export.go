package storage

import (
	"encoding/json"
	"io"
	"os"
)

// ExportData is the JSON form of a stored run. Bounds are decimal strings
// that contain the stored hex bounds.
type ExportData struct {
	RunMetadata
	Records []ExportRecord `json:"records"`
}

type ExportRecord struct {
	Part  int      `json:"part"`
	Time  string   `json:"time"`
	Step  float64  `json:"step"`
	Width float64  `json:"width"`
	Box   []string `json:"box"`
}

func exportData(meta *RunMetadata, records []Record) ExportData {
	data := ExportData{
		RunMetadata: *meta,
		Records:     make([]ExportRecord, len(records)),
	}
	for i, r := range records {
		box := make([]string, len(r.Box))
		for j, x := range r.Box {
			box[j] = x.String()
		}
		data.Records[i] = ExportRecord{Part: r.Part, Time: r.Time.String(), Step: r.Step, Width: r.Width, Box: box}
	}
	return data
}

// ExportJSON writes a stored run as indented JSON.
func ExportJSON(w io.Writer, meta *RunMetadata, records []Record) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exportData(meta, records))
}

// ExportJSONFile writes a stored run to path.
func ExportJSONFile(path string, meta *RunMetadata, records []Record) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := ExportJSON(file, meta, records); err != nil {
		return err
	}
	return file.Close()
}
