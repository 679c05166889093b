package extractor

import (
	"context"
	"regexp"
	"strings"

	"energy-extractor-service/internal/domain"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Service define a interface para a extração de campos de contas de
// energia elétrica.
type Service interface {
	ProcessBills(ctx context.Context, files []domain.BillFile) (*BatchResult, error)
	ExtractRecord(text string) domain.DocumentRecord
}

// BatchResult é o resultado de um lote: o agregado por unidade
// consumidora e os nomes de arquivo descartados por não terem chave
// resolvível.
type BatchResult struct {
	Aggregate *Aggregate
	Skipped   []string
}

type service struct {
	// workers limita a extração concorrente por documento.
	workers int
}

// NewService cria uma nova instância do serviço de extração.
func NewService() Service {
	return &service{workers: 4}
}

// ---------------------- padrões de captura ----------------------

var (
	consumerUnitRegex  = regexp.MustCompile(`\d{6,}`)
	invoiceNumberRegex = regexp.MustCompile(`(?i)NOTA\s+FISCAL\s*(?:N[ºo°]?\.?|#)?\s*:?\s*(\d+)`)
	emissionDateRegex  = regexp.MustCompile(`(?i)DATA\s+DE\s+EMISS[ÃA]O\s*:?\s*(\d{2}/\d{2}/\d{4})`)
	taxpayerIDRegex    = regexp.MustCompile(`\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2}`)
	amountRegex        = regexp.MustCompile(`R\$[\sR$]*-?[\d.]*\d,\d{2}`)
	nonAmountCharRegex = regexp.MustCompile(`[^\d,]`)
)

const taxpayerMarker = "CNPJ/CPF:"

// ---------------------- chave da unidade consumidora ----------------------

// ConsumerUnitKey retorna a primeira sequência de 6 ou mais dígitos
// consecutivos do nome do arquivo, usada como chave da unidade
// consumidora. Retorna false quando o nome não contém chave.
func ConsumerUnitKey(filename string) (string, bool) {
	key := consumerUnitRegex.FindString(filename)
	return key, key != ""
}

// ---------------------- motor de extração ----------------------

// ExtractRecord extrai os cinco campos do texto completo do documento.
// Cada campo é calculado de forma independente; qualquer padrão que não
// casar degrada para ausente, nunca para erro.
func (svc *service) ExtractRecord(text string) domain.DocumentRecord {
	record := domain.DocumentRecord{
		InvoiceNumber: extractInvoiceNumber(text),
		EmissionDate:  extractEmissionDate(text),
		TotalAmount:   extractTotalAmount(text),
	}
	record.TaxpayerID, record.HolderName = extractTaxpayerAndHolder(text)
	return record
}

func extractInvoiceNumber(text string) string {
	match := invoiceNumberRegex.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	return match[1]
}

func extractEmissionDate(text string) string {
	match := emissionDateRegex.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	return match[1]
}

// extractTaxpayerAndHolder localiza a primeira linha com o marcador
// "CNPJ/CPF:" e captura o documento pontuado nela; o titular é a linha
// imediatamente anterior, sem espaços nas bordas. A varredura termina na
// primeira linha com marcador, mesmo que o padrão não case nela.
func extractTaxpayerAndHolder(text string) (taxpayerID, holderName string) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if !strings.Contains(line, taxpayerMarker) {
			continue
		}
		taxpayerID = taxpayerIDRegex.FindString(line)
		if i > 0 {
			holderName = strings.TrimSpace(lines[i-1])
		}
		return taxpayerID, holderName
	}
	return "", ""
}

// extractTotalAmount coleta toda ocorrência de valor monetário no texto
// e devolve a maior delas. Heurística: o total da fatura é tipicamente o
// maior valor impresso no documento.
func extractTotalAmount(text string) *decimal.Decimal {
	var max *decimal.Decimal
	for _, raw := range amountRegex.FindAllString(text, -1) {
		value, ok := parseBRLAmount(raw)
		if !ok {
			continue
		}
		if max == nil || value.GreaterThan(*max) {
			v := value
			max = &v
		}
	}
	return max
}

// parseBRLAmount converte um token monetário brasileiro ("R$ 4.551,38")
// em decimal: remove tudo que não for dígito ou vírgula (o que também
// descarta sinal e separador de milhar) e troca a vírgula decimal por
// ponto.
func parseBRLAmount(raw string) (decimal.Decimal, bool) {
	s := nonAmountCharRegex.ReplaceAllString(raw, "")
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" || s == "." {
		return decimal.Decimal{}, false
	}
	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return value, true
}

// ---------------------- pipeline de lote ----------------------

type documentResult struct {
	key    string
	hasKey bool
	record domain.DocumentRecord
}

// ProcessBills processa um lote de documentos: adquire o texto e extrai
// os campos de cada um em paralelo, depois agrega sequencialmente na
// ordem de entrada para preservar a semântica de sobrescrita pelo último
// processado. Documentos sem chave resolvível são descartados do
// agregado e reportados em Skipped.
func (svc *service) ProcessBills(ctx context.Context, files []domain.BillFile) (*BatchResult, error) {
	results := make([]documentResult, len(files))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(svc.workers)

	for i, file := range files {
		i, file := i, file
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			key, hasKey := ConsumerUnitKey(file.Name)
			result := documentResult{key: key, hasKey: hasKey}
			if hasKey {
				// falha de aquisição vale como texto vazio: o registro
				// sai com todos os campos ausentes, o lote continua
				text, err := AcquireText(file.Data)
				if err != nil {
					text = ""
				}
				result.record = svc.ExtractRecord(text)
			}
			results[i] = result
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	batch := &BatchResult{Aggregate: NewAggregate()}
	for i, result := range results {
		if !result.hasKey {
			batch.Skipped = append(batch.Skipped, files[i].Name)
			continue
		}
		batch.Aggregate.Put(result.key, result.record)
	}
	return batch, nil
}
