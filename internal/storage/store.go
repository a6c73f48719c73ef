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

	"github.com/san-kum/beakersim/internal/sim"
)

// Store persists simulation runs under a base directory, one subdirectory per
// run holding metadata.json and frames.csv.
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
	ID        string             `json:"id"`
	Scenario  string             `json:"scenario"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	FPS       int                `json:"fps"`
	Duration  float64            `json:"duration"`
	Metrics   map[string]float64 `json:"metrics"`
}

var frameHeader = []string{
	"frame", "time_s", "protons", "free_protons", "bonded_pairs", "strong_bases", "weak_bases",
}

// Save writes one run to disk and returns its generated ID.
func (s *Store) Save(scenario string, fps int, duration float64, seed int64, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Scenario:  scenario,
		Timestamp: time.Now(),
		Seed:      seed,
		FPS:       fps,
		Duration:  duration,
		Metrics:   result.Metrics,
	}

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

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(frameHeader); err != nil {
		return "", err
	}
	for _, f := range result.Frames {
		row := []string{
			strconv.Itoa(f.Index),
			strconv.FormatFloat(f.Elapsed.Seconds(), 'f', 6, 64),
			strconv.Itoa(f.Protons),
			strconv.Itoa(f.FreeProtons),
			strconv.Itoa(f.BondedPairs),
			strconv.Itoa(f.StrongBases),
			strconv.Itoa(f.WeakBases),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// List returns the metadata of every saved run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue // skip malformed runs
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

// Load reads one run's metadata.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadFrames reads one run's per-frame samples back.
func (s *Store) LoadFrames(runID string) ([]sim.Frame, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	if len(records) < 1 {
		return nil, nil
	}

	frames := make([]sim.Frame, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) != len(frameHeader) {
			return nil, fmt.Errorf("run %s: malformed frame row", runID)
		}
		var convErr error
		atoi := func(s string) int {
			v, err := strconv.Atoi(s)
			if err != nil && convErr == nil {
				convErr = err
			}
			return v
		}
		elapsed, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			convErr = err
		}
		f := sim.Frame{
			Index:       atoi(rec[0]),
			Elapsed:     time.Duration(elapsed * float64(time.Second)),
			Protons:     atoi(rec[2]),
			FreeProtons: atoi(rec[3]),
			BondedPairs: atoi(rec[4]),
			StrongBases: atoi(rec[5]),
			WeakBases:   atoi(rec[6]),
		}
		if convErr != nil {
			return nil, fmt.Errorf("run %s: malformed frame row: %w", runID, convErr)
		}
		frames = append(frames, f)
	}
	return frames, nil
}
