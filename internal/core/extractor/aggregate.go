package extractor

import (
	"sync"

	"energy-extractor-service/internal/domain"
)

// Aggregate mapeia chave de unidade consumidora -> registro extraído,
// preservando a ordem de primeira inserção das chaves. Colisão de chave
// sobrescreve o registro anterior em silêncio, sem merge e sem reordenar.
// O valor pertence ao chamador: descartar a referência é o "clear".
type Aggregate struct {
	mu      sync.Mutex
	order   []string
	records map[string]domain.DocumentRecord
}

// NewAggregate cria um agregado vazio.
func NewAggregate() *Aggregate {
	return &Aggregate{records: make(map[string]domain.DocumentRecord)}
}

// Put insere ou sobrescreve o registro da chave. Seguro para chamadas
// concorrentes; a ordem determinística do lote é responsabilidade de
// quem chama em sequência.
func (a *Aggregate) Put(key string, record domain.DocumentRecord) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, exists := a.records[key]; !exists {
		a.order = append(a.order, key)
	}
	a.records[key] = record
}

// Get retorna o registro da chave.
func (a *Aggregate) Get(key string) (domain.DocumentRecord, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	record, ok := a.records[key]
	return record, ok
}

// Keys retorna as chaves na ordem de primeira inserção.
func (a *Aggregate) Keys() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	keys := make([]string, len(a.order))
	copy(keys, a.order)
	return keys
}

// Len retorna o número de unidades consumidoras agregadas.
func (a *Aggregate) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.order)
}
