package ingest

import (
	"archive/zip"
	"bytes"
	"testing"
)

func buildZip(t *testing.T, entries map[string][]byte, order []string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, name := range order {
		f, err := w.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := f.Write(entries[name]); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func TestExpandUpload(t *testing.T) {
	t.Run("single pdf passes through", func(t *testing.T) {
		files, err := ExpandUpload("UC_760064611_abril.pdf", []byte("%PDF-1.4"))
		if err != nil {
			t.Fatalf("ExpandUpload() error = %v", err)
		}
		if len(files) != 1 || files[0].Name != "UC_760064611_abril.pdf" || string(files[0].Data) != "%PDF-1.4" {
			t.Errorf("files = %+v, want the original blob untouched", files)
		}
	})

	t.Run("zip keeps pdf entries in listing order", func(t *testing.T) {
		data := buildZip(t, map[string][]byte{
			"UC_123456.pdf":    []byte("a"),
			"leiame.txt":       []byte("ignorar"),
			"UC_760064611.PDF": []byte("b"),
			"planilha.xlsx":    []byte("ignorar"),
		}, []string{"UC_123456.pdf", "leiame.txt", "UC_760064611.PDF", "planilha.xlsx"})

		files, err := ExpandUpload("contas.zip", data)
		if err != nil {
			t.Fatalf("ExpandUpload() error = %v", err)
		}
		if len(files) != 2 {
			t.Fatalf("len(files) = %d, want 2", len(files))
		}
		if files[0].Name != "UC_123456.pdf" || files[1].Name != "UC_760064611.PDF" {
			t.Errorf("names = [%s %s], want listing order with case-insensitive .pdf match", files[0].Name, files[1].Name)
		}
		if string(files[0].Data) != "a" || string(files[1].Data) != "b" {
			t.Errorf("entry contents were not preserved")
		}
	})

	t.Run("unsupported extension", func(t *testing.T) {
		if _, err := ExpandUpload("fatura.docx", nil); err == nil {
			t.Error("ExpandUpload() should reject unsupported extensions")
		}
	})

	t.Run("corrupt zip", func(t *testing.T) {
		if _, err := ExpandUpload("contas.zip", []byte("não é zip")); err == nil {
			t.Error("ExpandUpload() should fail on unreadable archives")
		}
	})
}
