package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/beakersim/internal/sim"
)

// ExportCSV streams a run's frames as CSV.
func ExportCSV(w io.Writer, frames []sim.Frame) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(frameHeader); err != nil {
		return err
	}
	for _, f := range frames {
		row := []string{
			strconv.Itoa(f.Index),
			strconv.FormatFloat(f.Elapsed.Seconds(), 'f', 6, 64),
			strconv.Itoa(f.Protons),
			strconv.Itoa(f.FreeProtons),
			strconv.Itoa(f.BondedPairs),
			strconv.Itoa(f.StrongBases),
			strconv.Itoa(f.WeakBases),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Error()
}

type jsonExport struct {
	Meta   RunMetadata `json:"meta"`
	Frames []jsonFrame `json:"frames"`
}

type jsonFrame struct {
	Frame       int     `json:"frame"`
	Time        float64 `json:"time_s"`
	Protons     int     `json:"protons"`
	FreeProtons int     `json:"free_protons"`
	BondedPairs int     `json:"bonded_pairs"`
	StrongBases int     `json:"strong_bases"`
	WeakBases   int     `json:"weak_bases"`
}

// ExportJSON streams a run, metadata plus frames, as indented JSON.
func ExportJSON(w io.Writer, meta RunMetadata, frames []sim.Frame) error {
	out := jsonExport{Meta: meta, Frames: make([]jsonFrame, 0, len(frames))}
	for _, f := range frames {
		out.Frames = append(out.Frames, jsonFrame{
			Frame:       f.Index,
			Time:        f.Elapsed.Seconds(),
			Protons:     f.Protons,
			FreeProtons: f.FreeProtons,
			BondedPairs: f.BondedPairs,
			StrongBases: f.StrongBases,
			WeakBases:   f.WeakBases,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
