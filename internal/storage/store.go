package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/pairpot/internal/forcefield"
)

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
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Family    string     `json:"family"`
	Timestamp time.Time  `json:"timestamp"`
	Particles int        `json:"particles"`
	Cutoff    float64    `json:"cutoff"`
	Smooth    bool       `json:"smooth"`
	Energy    float64    `json:"energy"`
	Virial    [9]float64 `json:"virial"`
	Pressure  *float64   `json:"pressure,omitempty"`
}

// Save writes metadata.json and gradient.csv into a new run directory.
func (s *Store) Save(meta RunMetadata, result *forcefield.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%s_%d", meta.Family, meta.Name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Particles = len(result.Gradient) / 3
	meta.Energy = result.Energy
	meta.Virial = result.Virial

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "gradient.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"particle", "gx", "gy", "gz"}); err != nil {
		return "", err
	}
	for i := 0; i < meta.Particles; i++ {
		row := []string{strconv.Itoa(i)}
		for k := 0; k < 3; k++ {
			row = append(row, strconv.FormatFloat(result.Gradient[3*i+k], 'g', 17, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns all runs, oldest first.
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
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadGradient reads gradient.csv back into the flat 3-per-particle layout.
func (s *Store) LoadGradient(runID string) ([]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "gradient.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []float64{}, nil
	}

	grad := make([]float64, 0, 3*(len(records)-1))
	for _, record := range records[1:] {
		if len(record) != 4 {
			return nil, fmt.Errorf("storage: malformed gradient row %v", record)
		}
		for _, field := range record[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("storage: %w", err)
			}
			grad = append(grad, v)
		}
	}
	return grad, nil
}
