package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/nukelab/internal/reactor"
)

type ExportData struct {
	Model        string             `json:"model"`
	Integrator   string             `json:"integrator"`
	Controller   string             `json:"controller"`
	Dt           float64            `json:"dt"`
	Duration     float64            `json:"duration"`
	Steps        int                `json:"steps"`
	Times        []float64          `json:"times"`
	States       [][]float64        `json:"states"`
	Controls     [][]float64        `json:"controls"`
	Metrics      map[string]float64 `json:"metrics"`
	BalanceDrift float64            `json:"balance_drift"`
}

func buildExport(model, integrator, controller string, dt, duration float64, result *reactor.Result) ExportData {
	data := ExportData{
		Model:        model,
		Integrator:   integrator,
		Controller:   controller,
		Dt:           dt,
		Duration:     duration,
		Steps:        len(result.Times),
		Times:        result.Times,
		States:       make([][]float64, len(result.States)),
		Controls:     make([][]float64, len(result.Controls)),
		Metrics:      result.Metrics,
		BalanceDrift: result.BalanceDrift,
	}

	for i, s := range result.States {
		data.States[i] = s
	}
	for i, c := range result.Controls {
		data.Controls[i] = c
	}
	return data
}

func ExportJSON(path string, model, integrator, controller string, dt, duration float64, result *reactor.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return writeExport(file, model, integrator, controller, dt, duration, result)
}

func ExportJSONStdout(model, integrator, controller string, dt, duration float64, result *reactor.Result) error {
	return writeExport(os.Stdout, model, integrator, controller, dt, duration, result)
}

func writeExport(w io.Writer, model, integrator, controller string, dt, duration float64, result *reactor.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildExport(model, integrator, controller, dt, duration, result))
}
