package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/nuckage/internal/analysis"
)

const (
	metadataFile = "metadata.json"
	stepsFile    = "steps.csv"
	roleFile     = "run.role"
)

// Store archives every role file written, together with the kinematics of
// its chains, one directory per record.
type Store struct {
	baseDir string
	log     *slog.Logger
}

func New(baseDir string, log *slog.Logger) *Store {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Store{baseDir: baseDir, log: log}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RecordMetadata struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	RolePath  string    `json:"role_path"`
	Output    string    `json:"output"`
	Samples   uint64    `json:"samples"`
	Chains    []string  `json:"chains"`
	Targets   []string  `json:"targets"`
	Detectors []string  `json:"detectors"`
}

// Record is what gets archived for one written role file.
type Record struct {
	RolePath  string
	Output    string
	Samples   uint64
	Detectors []string
	Reports   []analysis.ChainReport
	Role      []byte
}

func (s *Store) Save(rec Record) (string, error) {
	id := uuid.NewString()
	dir := filepath.Join(s.baseDir, id)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	meta := RecordMetadata{
		ID:        id,
		Timestamp: time.Now(),
		RolePath:  rec.RolePath,
		Output:    rec.Output,
		Samples:   rec.Samples,
		Detectors: rec.Detectors,
	}
	for _, c := range rec.Reports {
		meta.Chains = append(meta.Chains, c.Equation)
		meta.Targets = append(meta.Targets, c.Target)
	}

	metaFile, err := os.Create(filepath.Join(dir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := writeSteps(filepath.Join(dir, stepsFile), rec.Reports); err != nil {
		return "", err
	}

	if err := os.WriteFile(filepath.Join(dir, roleFile), rec.Role, 0644); err != nil {
		return "", err
	}

	s.log.Info("archived role", "id", id, "chains", len(rec.Reports), "dir", dir)
	return id, nil
}

var stepsHeader = []string{"chain", "step", "equation", "kind", "incoming_ex", "ex_mean", "ex_sigma", "beam_mean", "beam_sigma", "q_value", "threshold", "allowed"}

func writeSteps(path string, reports []analysis.ChainReport) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(stepsHeader); err != nil {
		return err
	}

	for ci, c := range reports {
		for _, st := range c.Steps {
			row := []string{
				strconv.Itoa(ci),
				strconv.Itoa(st.Index),
				st.Equation,
				st.Kind,
				formatFloat(st.IncomingEx),
				formatFloat(st.ExMean),
				formatFloat(st.ExSigma),
				formatFloat(st.BeamMean),
				formatFloat(st.BeamSigma),
				formatOptional(st.QValue),
				formatOptional(st.Threshold),
				strconv.FormatBool(st.Allowed),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

// List returns every readable record, oldest first.
func (s *Store) List() ([]RecordMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RecordMetadata{}, nil
		}
		return nil, err
	}

	records := make([]RecordMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			s.log.Warn("skipping unreadable record", "dir", entry.Name(), "err", err)
			continue
		}
		records = append(records, *meta)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})
	return records, nil
}

func (s *Store) Load(id string) (*RecordMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RecordMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("record %s: %w", id, err)
	}

	return &meta, nil
}

// LoadRole returns the archived copy of the role file.
func (s *Store) LoadRole(id string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.baseDir, id, roleFile))
}

// LoadSteps returns the archived step table, header row excluded.
func (s *Store) LoadSteps(id string) ([][]string, error) {
	f, err := os.Open(filepath.Join(s.baseDir, id, stepsFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return [][]string{}, nil
	}
	return records[1:], nil
}
