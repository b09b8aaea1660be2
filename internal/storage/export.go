package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/cartsim/internal/sim"
)

type ExportData struct {
	Run        RunMetadata     `json:"run"`
	Active     []int           `json:"active"`
	Collisions []sim.Collision `json:"collisions"`
}

// ExportJSON writes a stored run with its full tick history.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	h, err := s.LoadHistory(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		Run:        *meta,
		Active:     h.Active,
		Collisions: h.Collisions,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
