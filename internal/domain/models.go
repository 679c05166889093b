// package domain/models.go
package domain

import "github.com/shopspring/decimal"

// BillFile é um documento de entrada já expandido pela camada de ingestão:
// o nome original do arquivo e os bytes do PDF.
type BillFile struct {
	Name string
	Data []byte
}

// DocumentRecord contém os campos extraídos de uma conta de energia.
// Cada campo é independente: a ausência de um nunca impede a extração
// dos demais. String vazia e ponteiro nil representam campo ausente.
type DocumentRecord struct {
	// InvoiceNumber é o número da nota fiscal.
	InvoiceNumber string
	// EmissionDate é mantida como texto literal DD/MM/AAAA, sem
	// validação de calendário.
	EmissionDate string
	// TaxpayerID só é preenchido quando casa exatamente com o padrão
	// NN.NNN.NNN/NNNN-NN.
	TaxpayerID string
	// HolderName é o nome do titular, uma linha, sem espaços nas bordas.
	HolderName string
	// TotalAmount é o maior valor monetário encontrado no texto do
	// documento.
	TotalAmount *decimal.Decimal
}
