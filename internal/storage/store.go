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

	"github.com/san-kum/cartsim/internal/sim"
	"github.com/san-kum/cartsim/internal/track"
)

const (
	metadataFile   = "metadata.json"
	ticksFile      = "ticks.csv"
	collisionsFile = "collisions.csv"
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
	ID         string             `json:"id"`
	Map        string             `json:"map"`
	Timestamp  time.Time          `json:"timestamp"`
	MaxTicks   int                `json:"max_ticks"`
	Carts      int                `json:"carts"`
	Ticks      int                `json:"ticks"`
	FirstCrash *track.Coord       `json:"first_crash,omitempty"`
	LastCart   *track.Coord       `json:"last_cart,omitempty"`
	Outcome    string             `json:"outcome"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Run is everything needed to persist one finished simulation.
type Run struct {
	Map      string
	MaxTicks int
	Result   *sim.Result
	History  *sim.History
	Err      error
}

func (s *Store) Save(run Run) (string, error) {
	history := run.History
	if history == nil {
		history = sim.NewHistory(0)
	}

	name := "run"
	if run.Map != "" {
		name = filepath.Base(run.Map)
	}

	now := time.Now()
	runID := fmt.Sprintf("%s_%d", name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Map:       run.Map,
		Timestamp: now,
		MaxTicks:  run.MaxTicks,
		Carts:     history.Initial,
		Outcome:   "ok",
	}
	if run.Err != nil {
		meta.Outcome = run.Err.Error()
	}
	if res := run.Result; res != nil {
		meta.Ticks = res.Ticks
		meta.Metrics = res.Metrics
		if res.FirstCollision != nil {
			pos := res.FirstCollision.Pos
			meta.FirstCrash = &pos
		}
		if res.Survivor != nil {
			pos := res.Survivor.Pos
			meta.LastCart = &pos
		}
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	ticks := [][]string{{"tick", "active"}}
	for i, n := range history.Active {
		ticks = append(ticks, []string{strconv.Itoa(i + 1), strconv.Itoa(n)})
	}
	if err := writeCSV(filepath.Join(runDir, ticksFile), ticks); err != nil {
		return "", err
	}

	collisions := [][]string{{"tick", "x", "y", "cart_a", "cart_b"}}
	for _, col := range history.Collisions {
		collisions = append(collisions, []string{
			strconv.Itoa(col.Tick),
			strconv.Itoa(col.Pos.X),
			strconv.Itoa(col.Pos.Y),
			strconv.Itoa(col.CartIDs[0]),
			strconv.Itoa(col.CartIDs[1]),
		})
	}
	if err := writeCSV(filepath.Join(runDir, collisionsFile), collisions); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns all stored runs, oldest first.
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

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadHistory rebuilds the tick history of a stored run.
func (s *Store) LoadHistory(runID string) (*sim.History, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	h := sim.NewHistory(meta.Carts)

	ticks, err := readCSV(filepath.Join(s.baseDir, runID, ticksFile))
	if err != nil {
		return nil, err
	}
	for _, record := range ticks {
		if len(record) < 2 {
			continue
		}
		n, err := strconv.Atoi(record[1])
		if err != nil {
			continue
		}
		h.Active = append(h.Active, n)
	}

	collisions, err := readCSV(filepath.Join(s.baseDir, runID, collisionsFile))
	if err != nil {
		return nil, err
	}
	for _, record := range collisions {
		vals, ok := atoiAll(record, 5)
		if !ok {
			continue
		}
		h.Collisions = append(h.Collisions, sim.Collision{
			Tick:    vals[0],
			Pos:     track.C(vals[1], vals[2]),
			CartIDs: [2]int{vals[3], vals[4]},
		})
	}

	return h, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCSV(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		return err
	}
	return f.Sync()
}

// readCSV returns the data rows, without the header.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, nil
	}
	return records[1:], nil
}

func atoiAll(record []string, n int) ([]int, bool) {
	if len(record) < n {
		return nil, false
	}
	out := make([]int, n)
	for i := 0; i < n; i++ {
		v, err := strconv.Atoi(record[i])
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}
