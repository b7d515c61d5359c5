package presentation

import (
	"encoding/json"
	"io"

	"comspect/internal/comscan"
)

// ObjectDTO is the JSON shape of one classified COM object.
type ObjectDTO struct {
	CLSID       string   `json:"clsid"`
	ProgID      string   `json:"prog_id,omitempty"`
	Description string   `json:"description,omitempty"`
	Usability   string   `json:"usability"`
	SourceViews []string `json:"source_views"`
}

// FromObjects maps classified entries to DTOs, preserving order.
func FromObjects(objects []comscan.Classified) []ObjectDTO {
	dtos := make([]ObjectDTO, 0, len(objects))
	for _, o := range objects {
		views := make([]string, 0, 2)
		for _, v := range o.Views.List() {
			views = append(views, v.String())
		}
		dtos = append(dtos, ObjectDTO{
			CLSID:       o.CLSID,
			ProgID:      o.ProgID,
			Description: o.Description,
			Usability:   o.Level.String(),
			SourceViews: views,
		})
	}
	return dtos
}

// Formatter handles machine-readable output formatting.
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter.
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{writer: writer}
}

// FormatObjects writes the DTOs as indented JSON.
func (f *Formatter) FormatObjects(dtos []ObjectDTO) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(dtos)
}
