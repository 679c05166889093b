package report

import (
	"bytes"
	"reflect"
	"testing"

	"energy-extractor-service/internal/core/extractor"
	"energy-extractor-service/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func decimalPtr(s string) *decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return &d
}

func TestBuildWorkbook(t *testing.T) {
	agg := extractor.NewAggregate()
	agg.Put("760064611", domain.DocumentRecord{
		InvoiceNumber: "142599856",
		EmissionDate:  "15/04/2025",
		TaxpayerID:    "03.465.317/0001-91",
		HolderName:    "ROMA EMPREENDIMENTOS E TURISMO LTDA",
		TotalAmount:   decimalPtr("78432.55"),
	})
	agg.Put("10029306637", domain.DocumentRecord{
		InvoiceNumber: "142599507",
		EmissionDate:  "15/04/2025",
	})
	// unidade sem nenhum campo extraído ainda gera aba com linha vazia
	agg.Put("10038540701", domain.DocumentRecord{})

	output, err := BuildWorkbook(agg)
	if err != nil {
		t.Fatalf("BuildWorkbook() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(output))
	if err != nil {
		t.Fatalf("workbook is not readable: %v", err)
	}
	defer f.Close()

	wantSheets := []string{"760064611", "10029306637", "10038540701"}
	if got := f.GetSheetList(); !reflect.DeepEqual(got, wantSheets) {
		t.Fatalf("GetSheetList() = %v, want %v (aggregate order, no default sheet)", got, wantSheets)
	}

	wantHeader := []string{"Número da Nota Fiscal", "Data de Emissão", "CNPJ/CPF", "Nome do Titular", "Valor Total NF"}
	for col, want := range wantHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		got, err := f.GetCellValue("760064611", cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s) error = %v", cell, err)
		}
		if got != want {
			t.Errorf("header %s = %q, want %q", cell, got, want)
		}
	}

	tests := []struct {
		sheet string
		cell  string
		want  string
	}{
		{"760064611", "A2", "142599856"},
		{"760064611", "B2", "15/04/2025"},
		{"760064611", "C2", "03.465.317/0001-91"},
		{"760064611", "D2", "ROMA EMPREENDIMENTOS E TURISMO LTDA"},
		{"10029306637", "A2", "142599507"},
		{"10029306637", "C2", ""}, // campo ausente rende célula vazia
		{"10038540701", "A2", ""},
		{"10038540701", "E2", ""},
	}
	for _, tt := range tests {
		got, err := f.GetCellValue(tt.sheet, tt.cell, excelize.Options{RawCellValue: true})
		if err != nil {
			t.Fatalf("GetCellValue(%s!%s) error = %v", tt.sheet, tt.cell, err)
		}
		if got != tt.want {
			t.Errorf("%s!%s = %q, want %q", tt.sheet, tt.cell, got, tt.want)
		}
	}

	total, err := f.GetCellValue("760064611", "E2", excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatalf("GetCellValue(E2) error = %v", err)
	}
	if total != "78432.55" {
		t.Errorf("E2 raw value = %q, want 78432.55", total)
	}

	// largura da coluna do titular acompanha o valor mais longo + folga
	width, err := f.GetColWidth("760064611", "D")
	if err != nil {
		t.Fatalf("GetColWidth() error = %v", err)
	}
	if want := float64(len("ROMA EMPREENDIMENTOS E TURISMO LTDA") + 2); width != want {
		t.Errorf("column D width = %v, want %v", width, want)
	}
}

func TestBuildWorkbookEmptyAggregate(t *testing.T) {
	if _, err := BuildWorkbook(extractor.NewAggregate()); err == nil {
		t.Error("BuildWorkbook() with empty aggregate should fail instead of emitting a stray default sheet")
	}
}
