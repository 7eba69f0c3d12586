package main

import (
	"io"
	"text/template"

	"github.com/google/uuid"
	"github.com/informatter/text-tetris-engine/engine"
)

type Report struct {
	// Configuration
	RunID   uuid.UUID
	Rows    int
	Columns int

	// Results
	Sequences   int
	Heights     []int
	RowsCleared int
	Shifts      int
	Scheduler   *engine.SchedulerStats
	Storage     engine.StorageStats
	Grid        string
}

func (r *Report) record(solver *engine.Solver, height int) {
	r.RunID = solver.RunID()
	r.Sequences++
	r.Heights = append(r.Heights, height)
	r.RowsCleared += solver.RowsCleared()
	r.Shifts += solver.Shifts()
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Tetris Run Report

## Configuration
- **Last Run:** {{.RunID}}
- **Grid:** {{.Rows}} rows x {{.Columns}} columns

## Results
- **Sequences:** {{.Sequences}}
- **Heights:** {{range $i, $h := .Heights}}{{if $i}}, {{end}}{{$h}}{{end}}
- **Rows Cleared:** {{.RowsCleared}}
- **Shapes Shifted:** {{.Shifts}}
- **Live Shapes:** {{.Storage.ShapeCount}} ({{.Storage.SplitCount}} split, {{.Storage.CellCount}} cells)
{{with .Scheduler}}
## Systems
- **Frames:** {{.FrameCount}} ({{.FailedFrames}} failed)
- **Executions:** {{.TotalExecutions}}
{{range .Systems}}- {{.Name}}: {{.ExecutionCount}} runs, avg {{.AvgDuration}}, min {{.MinDuration}}, max {{.MaxDuration}}
{{end}}{{end}}
## Final Grid
{{.Grid | fence}}
`

	fm := template.FuncMap{
		"fence": func(s string) string {
			return "```\n" + s + "\n```"
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
