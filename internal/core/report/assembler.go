package report

import (
	"fmt"

	"energy-extractor-service/internal/core/extractor"
	"energy-extractor-service/internal/domain"

	"github.com/xuri/excelize/v2"
)

// Cabeçalho fixo das cinco colunas de cada planilha.
var headers = []string{
	"Número da Nota Fiscal",
	"Data de Emissão",
	"CNPJ/CPF",
	"Nome do Titular",
	"Valor Total NF",
}

const (
	headerFillColor = "404040"
	columnPadding   = 2
	currencyFormat  = `"R$" #,##0.00`
)

// BuildWorkbook monta o relatório .xlsx: uma planilha por unidade
// consumidora, na ordem do agregado, com linha de cabeçalho destacada e
// uma linha de dados. Campos ausentes viram célula vazia.
func BuildWorkbook(agg *extractor.Aggregate) ([]byte, error) {
	if agg.Len() == 0 {
		return nil, fmt.Errorf("nenhuma unidade consumidora para gerar o relatório")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFillColor}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("falha ao criar estilo de cabeçalho: %w", err)
	}

	currencyFmt := currencyFormat
	currencyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &currencyFmt})
	if err != nil {
		return nil, fmt.Errorf("falha ao criar formato monetário: %w", err)
	}

	for _, key := range agg.Keys() {
		record, _ := agg.Get(key)
		if err := writeSheet(f, key, record, headerStyle, currencyStyle); err != nil {
			return nil, err
		}
	}

	// remover a aba padrão criada pelo excelize
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("falha ao remover aba padrão: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("falha ao serializar planilha: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, key string, record domain.DocumentRecord, headerStyle, currencyStyle int) error {
	if _, err := f.NewSheet(key); err != nil {
		return fmt.Errorf("falha ao criar planilha %s: %w", key, err)
	}

	values := []interface{}{
		cellValue(record.InvoiceNumber),
		cellValue(record.EmissionDate),
		cellValue(record.TaxpayerID),
		cellValue(record.HolderName),
		nil,
	}
	if record.TotalAmount != nil {
		values[4] = record.TotalAmount.InexactFloat64()
	}

	for col := range headers {
		headerCell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(key, headerCell, headers[col]); err != nil {
			return err
		}
		dataCell, _ := excelize.CoordinatesToCellName(col+1, 2)
		if values[col] != nil {
			if err := f.SetCellValue(key, dataCell, values[col]); err != nil {
				return err
			}
		}

		// largura = maior valor textual da coluna + folga fixa
		width := columnWidth(headers[col], record, col)
		colName, _ := excelize.ColumnNumberToName(col + 1)
		if err := f.SetColWidth(key, colName, colName, width); err != nil {
			return err
		}
	}

	if err := f.SetCellStyle(key, "A1", "E1", headerStyle); err != nil {
		return err
	}
	if record.TotalAmount != nil {
		if err := f.SetCellStyle(key, "E2", "E2", currencyStyle); err != nil {
			return err
		}
	}

	showGridLines := false
	return f.SetSheetView(key, -1, &excelize.ViewOptions{ShowGridLines: &showGridLines})
}

func cellValue(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func columnWidth(header string, record domain.DocumentRecord, col int) float64 {
	value := ""
	switch col {
	case 0:
		value = record.InvoiceNumber
	case 1:
		value = record.EmissionDate
	case 2:
		value = record.TaxpayerID
	case 3:
		value = record.HolderName
	case 4:
		if record.TotalAmount != nil {
			value = record.TotalAmount.String()
		}
	}
	width := len([]rune(header))
	if n := len([]rune(value)); n > width {
		width = n
	}
	return float64(width + columnPadding)
}
