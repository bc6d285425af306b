package sidecar

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/tsawler/imagetext/modelhash"
)

func TestPath(t *testing.T) {
	tests := []struct {
		image   string
		wantDir string
		want    string
	}{
		{"/book/ch1/p1.png", "/book/ch1/text", "/book/ch1/text/p1.easyocr.json"},
		{"/book/page-01.PNG", "/book/text", "/book/text/page-01.easyocr.json"},
		{"/book/scan.jpg", "/book/text", "/book/text/scan.easyocr.json"},
		{"/book/v1.2.final.jpg", "/book/text", "/book/text/v1.2.final.easyocr.json"},
		{"p1.png", "text", "text/p1.easyocr.json"},
	}

	for _, tt := range tests {
		image := filepath.FromSlash(tt.image)
		if got := Dir(image); got != filepath.FromSlash(tt.wantDir) {
			t.Errorf("Dir(%q) = %q, want %q", tt.image, got, tt.wantDir)
		}
		if got := Path(image); got != filepath.FromSlash(tt.want) {
			t.Errorf("Path(%q) = %q, want %q", tt.image, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	models := modelhash.Manifest{"craft_mlt_25k.pth": "abc"}

	doc, err := New(models, []string{`{"text": "hello"}`, `{"text":"world","confident":0.5}`})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if len(doc.ReadResult) != 2 {
		t.Fatalf("expected 2 records, got %d", len(doc.ReadResult))
	}
	if !reflect.DeepEqual(doc.Models, models) {
		t.Errorf("Models = %v, want %v", doc.Models, models)
	}
}

func TestNewInvalidRecord(t *testing.T) {
	if _, err := New(nil, []string{`{"text":`}); err == nil {
		t.Error("expected error for invalid record JSON")
	}
}

func TestMarshal(t *testing.T) {
	tests := []struct {
		name    string
		models  modelhash.Manifest
		records []string
		want    string
	}{
		{
			name:    "single record",
			models:  modelhash.Manifest{"a.pth": "01"},
			records: []string{`{"text": "hello"}`},
			want:    `{"models":{"a.pth":"01"},"readResult":[{"text":"hello"}]}`,
		},
		{
			name:    "no records",
			models:  modelhash.Manifest{},
			records: nil,
			want:    `{"models":{},"readResult":[]}`,
		},
		{
			name:    "non-ASCII and HTML characters kept literally",
			models:  modelhash.Manifest{},
			records: []string{`{"text":"日本語 <b>&</b>"}`},
			want:    `{"models":{},"readResult":[{"text":"日本語 <b>&</b>"}]}`,
		},
		{
			name:    "record key order preserved",
			models:  modelhash.Manifest{},
			records: []string{`{"text":"x","boxes":[[1,2]],"confident":0.25}`},
			want:    `{"models":{},"readResult":[{"text":"x","boxes":[[1,2]],"confident":0.25}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := New(tt.models, tt.records)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			got, err := Marshal(doc)
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal() = %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestWriteAndRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "p1.easyocr.json")

	doc, err := New(modelhash.Manifest{"a.pth": "01"}, []string{`{"text":"hello"}`})
	if err != nil {
		t.Fatal(err)
	}
	if err := Write(path, doc); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		t.Fatalf("sidecar is not valid JSON: %v", err)
	}
	if len(top) != 2 || top["models"] == nil || top["readResult"] == nil {
		t.Errorf("expected exactly models and readResult keys, got %s", raw)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got.Models["a.pth"] != "01" || len(got.ReadResult) != 1 {
		t.Errorf("Read() = %+v", got)
	}
}

func TestWriteMissingDir(t *testing.T) {
	doc, _ := New(nil, nil)
	if err := Write(filepath.Join(t.TempDir(), DirName, "p1.easyocr.json"), doc); err == nil {
		t.Error("expected error when sidecar directory is missing")
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "p1.easyocr.json")

	ok, err := Exists(path)
	if err != nil || ok {
		t.Fatalf("Exists(missing) = %v, %v", ok, err)
	}

	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	ok, err = Exists(path)
	if err != nil || !ok {
		t.Errorf("Exists(present) = %v, %v", ok, err)
	}
}

func TestLines(t *testing.T) {
	doc, err := New(nil, []string{
		`{"boxes":[[0,0],[10,0],[10,5],[0,5]],"text":"hello","confident":0.9}`,
		`{"text":"   ","confident":0.1}`,
		`{"text":"world"}`,
	})
	if err != nil {
		t.Fatal(err)
	}

	lines, err := doc.Lines()
	if err != nil {
		t.Fatalf("Lines failed: %v", err)
	}
	want := []Line{{Text: "hello", Confidence: 0.9}, {Text: "world"}}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("Lines() = %+v, want %+v", lines, want)
	}
}

func TestLinesNonObjectRecord(t *testing.T) {
	doc, err := New(nil, []string{`"just a string"`})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := doc.Lines(); err == nil {
		t.Error("expected error for non-object record")
	}
}
