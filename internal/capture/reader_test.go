package capture

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"aimscope/internal/models"
)

const sampleLog = `time,event,x,y,button,pressed
1755000000.10,move,100,200,,
1755000000.15,move,110,205,,
1755000000.20,click,110,205,Button.left,True
1755000000.35,click,110,205,Button.left,False
1755000000.40,move,120.6,210.4,,
`

func TestReadSessionLog(t *testing.T) {
	samples, skipped, err := Read(strings.NewReader(sampleLog))
	if err != nil {
		t.Fatal(err)
	}
	if skipped != 0 {
		t.Errorf("skipped = %d, want 0", skipped)
	}
	if len(samples) != 5 {
		t.Fatalf("parsed %d samples, want 5", len(samples))
	}

	first := samples[0]
	if first.Kind != models.EventMove || first.X != 100 || first.Y != 200 {
		t.Errorf("first sample = %+v", first)
	}
	if first.Time != 1755000000.10 {
		t.Errorf("Time = %f", first.Time)
	}
	if first.Pressed != nil {
		t.Errorf("move row should have nil Pressed, got %v", *first.Pressed)
	}

	press := samples[2]
	if press.Kind != models.EventClick || press.Button != "Button.left" {
		t.Errorf("click sample = %+v", press)
	}
	if press.Pressed == nil || !*press.Pressed {
		t.Error("press row should parse Pressed=true")
	}
	release := samples[3]
	if release.Pressed == nil || *release.Pressed {
		t.Error("release row should parse Pressed=false")
	}

	// Fractional coordinates round to the nearest pixel.
	if samples[4].X != 121 || samples[4].Y != 210 {
		t.Errorf("rounded coords = (%d, %d), want (121, 210)", samples[4].X, samples[4].Y)
	}
}

func TestReadSkipsMalformedRows(t *testing.T) {
	log := "time,event,x,y,button,pressed\n" +
		"1.0,move,10,20,,\n" +
		"not-a-time,move,10,20,,\n" +
		"2.0,scroll,10,20,,\n" +
		"3.0,move,NaN,20,,\n" +
		"4.0,move,30,40,,\n"

	samples, skipped, err := Read(strings.NewReader(log))
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != 2 {
		t.Fatalf("parsed %d samples, want 2", len(samples))
	}
	if skipped != 3 {
		t.Errorf("skipped = %d, want 3", skipped)
	}
}

func TestReadRejectsWrongHeader(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty file", ""},
		{"wrong columns", "a,b,c\n1,2,3\n"},
		{"renamed column", "time,type,x,y,button,pressed\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := Read(strings.NewReader(tt.data)); err == nil {
				t.Fatal("expected header error")
			}
		})
	}
}

func TestReadHeaderCaseInsensitive(t *testing.T) {
	log := "Time,Event,X,Y,Button,Pressed\n1.0,move,10,20,,\n"
	samples, _, err := Read(strings.NewReader(log))
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != 1 {
		t.Fatalf("parsed %d samples, want 1", len(samples))
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mouse_log.csv")
	if err := os.WriteFile(path, []byte(sampleLog), 0o644); err != nil {
		t.Fatal(err)
	}

	samples, skipped, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != 5 || skipped != 0 {
		t.Fatalf("samples=%d skipped=%d", len(samples), skipped)
	}

	if _, _, err := ReadFile(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
