package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/rigsim/internal/config"
	"github.com/san-kum/rigsim/internal/dynamo"
	"github.com/san-kum/rigsim/internal/interval"
)

const (
	metadataFile   = "metadata.json"
	enclosuresFile = "enclosures.csv"
)

var ErrCorrupt = errors.New("storage: corrupt run")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string              `json:"id"`
	Model      string              `json:"model"`
	Timestamp  time.Time           `json:"timestamp"`
	Start      float64             `json:"start"`
	Duration   float64             `json:"duration"`
	Radius     float64             `json:"radius"`
	Parts      int                 `json:"parts"`
	Policy     string              `json:"policy"`
	Params     map[string]float64  `json:"params,omitempty"`
	Solver     config.SolverConfig `json:"solver"`
	Steps      int                 `json:"steps"`
	Rejections int                 `json:"rejections"`
	// Final holds the hex bounds of the hull of the final sets.
	Final   []string           `json:"final"`
	Metrics map[string]float64 `json:"metrics"`
	// Error is the failure that stopped the run, if any.
	Error string `json:"error,omitempty"`
}

// FinalBox parses the stored final enclosure.
func (m *RunMetadata) FinalBox() (interval.Vector, error) {
	v := make(interval.Vector, len(m.Final))
	for i, s := range m.Final {
		x, err := interval.ParseHex(s)
		if err != nil {
			return nil, fmt.Errorf("%w: final[%d]: %v", ErrCorrupt, i, err)
		}
		v[i] = x
	}
	return v, nil
}

// Record is one stored step of one part of a run.
type Record struct {
	Part int
	dynamo.Record
}

// Save writes the results of a run, one per part, and the error that
// stopped it. Bounds are stored in hexadecimal so they reload exactly.
func (s *Store) Save(cfg *config.Config, parts []*dynamo.Result, runErr error) (string, error) {
	if len(parts) == 0 {
		return "", fmt.Errorf("storage: no results to save")
	}
	runID := fmt.Sprintf("%s_%s", cfg.Model, uuid.NewString())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Model:     cfg.Model,
		Timestamp: time.Now(),
		Start:     cfg.Start,
		Duration:  cfg.Duration,
		Radius:    cfg.Radius,
		Parts:     len(parts),
		Policy:    cfg.Policy,
		Params:    cfg.Params,
		Solver:    cfg.Solver,
		Metrics:   make(map[string]float64),
	}
	var hull interval.Vector
	for i, p := range parts {
		meta.Steps += p.StepsTaken
		meta.Rejections += p.Rejections
		box := p.FinalBox()
		if i == 0 {
			hull = box
		} else if box != nil {
			hull = interval.HullVector(hull, box)
		}
	}
	for _, x := range hull {
		meta.Final = append(meta.Final, x.HexString())
	}
	if len(parts) == 1 {
		for k, v := range parts[0].Metrics {
			meta.Metrics[k] = v
		}
	}
	if runErr != nil {
		meta.Error = runErr.Error()
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, enclosuresFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()
	if err := writeRecords(csvFile, parts); err != nil {
		return "", err
	}
	return runID, csvFile.Close()
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return f.Close()
}

func writeRecords(out io.Writer, parts []*dynamo.Result) error {
	w := csv.NewWriter(out)

	n := 0
	if len(parts[0].Records) > 0 {
		n = len(parts[0].Records[0].Box)
	}
	header := []string{"part", "time", "step", "width"}
	for i := 0; i < n; i++ {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for p, res := range parts {
		for _, rec := range res.Records {
			row := []string{
				strconv.Itoa(p),
				rec.Time.HexString(),
				strconv.FormatFloat(rec.Step, 'x', -1, 64),
				strconv.FormatFloat(rec.Width, 'x', -1, 64),
			}
			for _, x := range rec.Box {
				row = append(row, x.HexString())
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

// List returns the stored runs, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}

		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, runID, err)
	}

	return &meta, nil
}

// LoadRecords reads the stored enclosures of a run.
func (s *Store) LoadRecords(runID string) ([]Record, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, enclosuresFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, runID, err)
	}
	if len(rows) < 2 {
		return []Record{}, nil
	}

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := parseRecord(row)
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %v", ErrCorrupt, runID, i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRecord(row []string) (Record, error) {
	var rec Record
	if len(row) < 4 {
		return rec, fmt.Errorf("%d fields", len(row))
	}
	part, err := strconv.Atoi(row[0])
	if err != nil {
		return rec, err
	}
	rec.Part = part
	if rec.Time, err = interval.ParseHex(row[1]); err != nil {
		return rec, err
	}
	if rec.Step, err = strconv.ParseFloat(row[2], 64); err != nil {
		return rec, err
	}
	if rec.Width, err = strconv.ParseFloat(row[3], 64); err != nil {
		return rec, err
	}
	rec.Box = make(interval.Vector, len(row)-4)
	for i, s := range row[4:] {
		if rec.Box[i], err = interval.ParseHex(s); err != nil {
			return rec, err
		}
	}
	return rec, nil
}
