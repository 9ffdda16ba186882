package qcamapctl

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	qcamap "github.com/qcatools/qcamap.go"
	"github.com/qcatools/qcamap.go/pkg/models"
)

// Dump is the JSON export of a loaded project.
type Dump struct {
	ProjectID          int64           `json:"projectId"`
	ResearchQuestionID int64           `json:"researchQuestionId"`
	Categories         []models.Record `json:"categories"`
	Documents          []DumpDocument  `json:"documents"`
}

type DumpDocument struct {
	Document models.Record   `json:"document"`
	Markers  []models.Record `json:"markers"`
}

func NewDump(project *qcamap.Project) *Dump {
	d := &Dump{
		ProjectID:          project.ProjectID(),
		ResearchQuestionID: project.ResearchQuestionID(),
		Categories:         make([]models.Record, 0, len(project.Categories())),
		Documents:          make([]DumpDocument, 0, len(project.Documents())),
	}
	for _, c := range project.Categories() {
		d.Categories = append(d.Categories, c.Data())
	}
	for _, doc := range project.Documents() {
		markers := doc.Markers()
		dd := DumpDocument{Document: doc.Data(), Markers: make([]models.Record, 0, len(markers))}
		for _, m := range markers {
			dd.Markers = append(dd.Markers, m.Data())
		}
		d.Documents = append(d.Documents, dd)
	}
	return d
}

// dumpTo writes the dump to path, or to out when path is empty
func dumpTo(project *qcamap.Project, path string, out io.Writer) error {
	data, err := json.MarshalIndent(NewDump(project), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode dump: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = out.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write dump: %w", err)
	}
	fmt.Fprintf(out, "wrote %s\n", path)
	return nil
}
