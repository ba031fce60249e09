package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/pairpot/internal/forcefield"
)

type ExportData struct {
	Name     string       `json:"name"`
	Family   string       `json:"family"`
	Cutoff   float64      `json:"cutoff"`
	Smooth   bool         `json:"smooth"`
	Energy   float64      `json:"energy"`
	Gradient [][3]float64 `json:"gradient"`
	Virial   [9]float64   `json:"virial"`
}

func NewExportData(name, family string, cutoff float64, smooth bool, result *forcefield.Result) ExportData {
	data := ExportData{
		Name:     name,
		Family:   family,
		Cutoff:   cutoff,
		Smooth:   smooth,
		Energy:   result.Energy,
		Gradient: make([][3]float64, len(result.Gradient)/3),
		Virial:   result.Virial,
	}
	for i := range data.Gradient {
		copy(data.Gradient[i][:], result.Gradient[3*i:3*i+3])
	}
	return data
}

func WriteJSON(w io.Writer, data ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSON(path string, data ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, data)
}
