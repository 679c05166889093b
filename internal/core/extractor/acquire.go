package extractor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"
)

// AcquireText extrai o texto plano de todas as páginas de um PDF, na
// ordem de leitura. Páginas vazias ou que falham na decodificação são
// tratadas como texto vazio; só retorna erro quando o blob não é um PDF
// legível.
func AcquireText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("falha ao abrir PDF: %w", err)
	}

	var builder strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		text, ok := pageText(reader, pageNum)
		if !ok {
			// página sem texto recuperável não aborta o documento
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}

	// PDFs costumam emitir acentos decompostos (NFD); normalizar para NFC
	// para que os marcadores literais ("DATA DE EMISSÃO") casem.
	return norm.NFC.String(builder.String()), nil
}

// pageText decodifica o texto plano de uma página. A biblioteca de PDF
// entra em pânico com alguns streams malformados; aqui isso conta como
// página sem texto.
func pageText(reader *pdf.Reader, pageNum int) (text string, ok bool) {
	defer func() {
		if recover() != nil {
			text, ok = "", false
		}
	}()

	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return "", false
	}
	content, err := page.GetPlainText(nil)
	if err != nil {
		return "", false
	}
	return content, true
}
