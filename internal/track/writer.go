package track

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	FormatYAML = "yaml"
	FormatCSV  = "csv"
)

type Writer interface {
	Write(w io.Writer, tracks []Track) error
}

func NewWriter(format string) (Writer, error) {
	switch format {
	case FormatYAML, "yml", "":
		return YAMLWriter{}, nil
	case FormatCSV:
		return CSVWriter{}, nil
	default:
		return nil, errors.Errorf("unknown track format %q", format)
	}
}

// WriteFile writes tracks to path in the given format
func WriteFile(path, format string, tracks []Track) error {
	w, err := NewWriter(format)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer f.Close()

	if err := w.Write(f, tracks); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return f.Close()
}

type YAMLWriter struct{}

func (YAMLWriter) Write(w io.Writer, tracks []Track) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(struct {
		Tracks []Track `yaml:"tracks"`
	}{tracks}); err != nil {
		return errors.Wrap(err, "encode yaml")
	}
	return enc.Close()
}

// ReadYAML decodes tracks written by YAMLWriter
func ReadYAML(r io.Reader) ([]Track, error) {
	var doc struct {
		Tracks []Track `yaml:"tracks"`
	}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "decode yaml")
	}
	return doc.Tracks, nil
}

var csvHeader = []string{
	"run_id", "preset", "width", "height", "frame", "progress",
	"rotation", "zoom", "vertical_offset", "horizontal_offset", "opacity",
	"camera_x", "camera_y", "camera_z",
	"look_at_x", "look_at_y", "look_at_z",
	"subject_rotation", "skipped",
}

// CSVWriter writes one row per frame, all tracks in one table
type CSVWriter struct{}

func (CSVWriter) Write(w io.Writer, tracks []Track) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, t := range tracks {
		for _, f := range t.Frames {
			row := []string{
				t.RunID, t.Preset, strconv.Itoa(t.Width), strconv.Itoa(t.Height),
				strconv.Itoa(f.Index), formatFloat(f.Progress),
				formatFloat(f.Rotation), formatFloat(f.Zoom),
				formatFloat(f.VerticalOffset), formatFloat(f.HorizontalOffset), formatFloat(f.Opacity),
				formatFloat(f.Camera.X), formatFloat(f.Camera.Y), formatFloat(f.Camera.Z),
				formatFloat(f.LookAt.X), formatFloat(f.LookAt.Y), formatFloat(f.LookAt.Z),
				formatFloat(f.SubjectRotation), strconv.FormatBool(f.Skipped),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'f', 6, 32)
}
