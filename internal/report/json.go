package report

import (
	"encoding/json"
	"io"

	"github.com/san-kum/lorenz/internal/config"
	"github.com/san-kum/lorenz/internal/dynamo"
)

type ExportData struct {
	RunID          string              `json:"run_id"`
	Integrator     string              `json:"integrator"`
	Dt             float64             `json:"dt"`
	Params         config.ParamsConfig `json:"params"`
	Steps          int                 `json:"steps"`
	ElapsedSeconds float64             `json:"elapsed_seconds"`
	Points         []dynamo.Point3     `json:"points,omitempty"`
}

func writeJSON(w io.Writer, run *Run, noPoints bool) error {
	data := ExportData{
		RunID:          run.ID,
		Integrator:     run.Integrator,
		Dt:             run.Dt,
		Params:         run.Params,
		Steps:          len(run.Points),
		ElapsedSeconds: run.Elapsed.Seconds(),
	}
	if !noPoints {
		data.Points = run.Points
	}

	return json.NewEncoder(w).Encode(data)
}
