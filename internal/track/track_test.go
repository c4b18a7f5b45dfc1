package track

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/ivlev/scrollscene/internal/math"
)

func sampleTracks() []Track {
	runID := NewRunID()
	desktop := New(runID, "desktop", 1440, 900, 2)
	desktop.Append(Frame{Index: 0, Progress: 0, Rotation: 0.35, Zoom: 1, Opacity: 1, Camera: math.NewVec3(0, 0, 5), LookAt: math.NewVec3(0, 0.6, 0)})
	desktop.Append(Frame{Index: 1, Progress: 1, Rotation: 2.2, Zoom: 1.1, Opacity: 0, Camera: math.NewVec3(0.1, 0.2, 4.5), LookAt: math.NewVec3(0, 0.6, 0), SubjectRotation: 0.5})

	mobile := New(runID, "mobile", 390, 844, 1)
	mobile.Append(Frame{Index: 0, Skipped: true})

	return []Track{*desktop, *mobile}
}

func TestNewRunID(t *testing.T) {
	id := NewRunID()
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("run id %q is not a uuid: %v", id, err)
	}
	if id == NewRunID() {
		t.Error("run ids must differ between bakes")
	}
}

func TestYAMLWriterRoundTrip(t *testing.T) {
	tracks := sampleTracks()

	var buf bytes.Buffer
	if err := (YAMLWriter{}).Write(&buf, tracks); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := ReadYAML(&buf)
	if err != nil {
		t.Fatalf("ReadYAML failed: %v", err)
	}
	if len(got) != len(tracks) {
		t.Fatalf("expected %d tracks, got %d", len(tracks), len(got))
	}
	if got[0].RunID != tracks[0].RunID || got[0].Preset != "desktop" || got[0].Width != 1440 {
		t.Errorf("track header lost: %+v", got[0])
	}
	if got[0].Frames[1] != tracks[0].Frames[1] {
		t.Errorf("frame mismatch: expected %+v, got %+v", tracks[0].Frames[1], got[0].Frames[1])
	}
	if !got[1].Frames[0].Skipped {
		t.Error("skipped flag lost")
	}
}

func TestCSVWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := (CSVWriter{}).Write(&buf, sampleTracks()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid csv: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header and 3 rows, got %d", len(rows))
	}
	for i, row := range rows {
		if len(row) != len(csvHeader) {
			t.Errorf("row %d has %d columns, want %d", i, len(row), len(csvHeader))
		}
	}
	if rows[2][1] != "desktop" || rows[2][6] != "2.200000" {
		t.Errorf("unexpected row %v", rows[2])
	}
	if rows[3][len(rows[3])-1] != "true" {
		t.Errorf("expected skipped frame, got %v", rows[3])
	}
}

func TestNewWriter(t *testing.T) {
	for _, format := range []string{"yaml", "yml", "", "csv"} {
		if _, err := NewWriter(format); err != nil {
			t.Errorf("%q: %v", format, err)
		}
	}
	if _, err := NewWriter("mp4"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracks.yaml")
	if err := WriteFile(path, FormatYAML, sampleTracks()); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	got, err := ReadYAML(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 tracks, got %d", len(got))
	}
}
