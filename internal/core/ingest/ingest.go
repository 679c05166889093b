package ingest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"energy-extractor-service/internal/domain"
)

// ExpandUpload transforma um arquivo enviado em uma lista de documentos
// PDF nomeados. Um .pdf passa direto; um .zip é expandido e cada entrada
// cujo nome termina em .pdf (sem diferenciar maiúsculas) vira um
// documento independente, na ordem de listagem do arquivo; entradas que
// não são PDF são ignoradas.
func ExpandUpload(name string, data []byte) ([]domain.BillFile, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return []domain.BillFile{{Name: name, Data: data}}, nil
	case ".zip":
		return expandZip(data)
	default:
		return nil, fmt.Errorf("extensão de arquivo não suportada: %s", filepath.Ext(name))
	}
}

func expandZip(data []byte) ([]domain.BillFile, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir arquivo ZIP: %w", err)
	}

	var files []domain.BillFile
	for _, entry := range reader.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(entry.Name), ".pdf") {
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			return nil, fmt.Errorf("falha ao abrir entrada %s do ZIP: %w", entry.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("falha ao ler entrada %s do ZIP: %w", entry.Name, err)
		}
		files = append(files, domain.BillFile{Name: entry.Name, Data: content})
	}
	return files, nil
}
