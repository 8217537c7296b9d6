// Package recorder writes simulation output to append-only CSV files:
// per-vehicle sensor samples and hazard events. All writes are
// best-effort: I/O failures are logged and swallowed so the
// simulation never stops because of a broken recorder.
package recorder

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"mumbaisim/element"
)

const (
	dataFileName   = "simulation_data.csv"
	hazardFileName = "hazard_events.csv"
)

var (
	dataHeader = []string{
		"timestamp", "step", "vehicle_id", "type",
		"x", "y", "speed", "acceleration", "angle", "lane_id", "hazard_active",
	}
	hazardHeader = []string{"timestamp", "hazard_name", "metadata"}
)

// SimState exposes the simulation clock to the recorder. All rows of
// one batch share the same timestamp and step.
type SimState interface {
	SimulationTime() float64
	Step() int
}

// Sink receives simulation output rows. Implementations are
// best-effort and must not propagate write failures to the caller.
type Sink interface {
	WriteData(readings []element.SensorReading, state SimState)
	WriteHazardEvent(event element.HazardEvent)
}

var _ Sink = (*CSVWriter)(nil)

// CSVWriter appends sensor samples and hazard events to two CSV files
// in the output directory. Each write opens the destination, appends
// and closes; no file handle is held between calls.
type CSVWriter struct {
	outputDir  string
	dataPath   string
	hazardPath string
	appendMode bool
}

// NewCSVWriter creates a CSV writer for the given output directory.
// With appendMode set, existing files are extended instead of
// truncated on initialization.
func NewCSVWriter(outputDir string, appendMode bool) *CSVWriter {
	return &CSVWriter{
		outputDir:  outputDir,
		dataPath:   filepath.Join(outputDir, dataFileName),
		hazardPath: filepath.Join(outputDir, hazardFileName),
		appendMode: appendMode,
	}
}

// DataPath returns the path of the samples file.
func (w *CSVWriter) DataPath() string {
	return w.dataPath
}

// HazardPath returns the path of the events file.
func (w *CSVWriter) HazardPath() string {
	return w.hazardPath
}

// InitializeFiles creates the output directory and writes the header
// rows. A header is skipped when append mode is on and the
// destination already exists, so re-initializing never duplicates
// headers. Returns false on I/O failure; the caller may keep running
// without a working recorder.
func (w *CSVWriter) InitializeFiles() bool {
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		slog.Error("failed to create output directory", "dir", w.outputDir, "error", err)
		return false
	}

	if !w.appendMode || !fileExists(w.dataPath) {
		if err := createWithHeader(w.dataPath, dataHeader); err != nil {
			slog.Error("failed to initialize samples file", "path", w.dataPath, "error", err)
			return false
		}
	}
	if !w.appendMode || !fileExists(w.hazardPath) {
		if err := createWithHeader(w.hazardPath, hazardHeader); err != nil {
			slog.Error("failed to initialize events file", "path", w.hazardPath, "error", err)
			return false
		}
	}

	return true
}

// WriteData appends one row per reading, all stamped with the shared
// simulation time and step from state. An empty batch is a no-op.
func (w *CSVWriter) WriteData(readings []element.SensorReading, state SimState) {
	if len(readings) == 0 {
		return
	}

	timestamp := formatTimestamp(state.SimulationTime())
	step := strconv.Itoa(state.Step())

	rows := make([][]string, 0, len(readings))
	for _, r := range readings {
		rows = append(rows, []string{
			timestamp,
			step,
			r.VehicleID,
			r.Type,
			fmt.Sprintf("%.2f", r.X),
			fmt.Sprintf("%.2f", r.Y),
			fmt.Sprintf("%.2f", r.Speed),
			fmt.Sprintf("%.2f", r.Acceleration),
			fmt.Sprintf("%.2f", r.Angle),
			r.LaneID,
			strconv.FormatBool(r.HazardActive),
		})
	}

	if err := appendRows(w.dataPath, rows); err != nil {
		slog.Error("error writing sensor data", "path", w.dataPath, "error", err)
	}
}

// WriteHazardEvent appends one row describing a hazard occurrence.
func (w *CSVWriter) WriteHazardEvent(event element.HazardEvent) {
	name := event.Name
	if name == "" {
		name = "unknown"
	}

	row := []string{
		formatTimestamp(event.Timestamp),
		name,
		FormatMetadata(event.Metadata),
	}

	if err := appendRows(w.hazardPath, [][]string{row}); err != nil {
		slog.Error("error writing hazard event", "path", w.hazardPath, "error", err)
	}
}

// formatTimestamp renders a simulation timestamp without trailing
// zeros: 10 stays "10", 12.5 stays "12.5".
func formatTimestamp(ts float64) string {
	return strconv.FormatFloat(ts, 'f', -1, 64)
}
