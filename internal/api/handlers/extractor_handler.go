package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"energy-extractor-service/internal/api/responses"
	"energy-extractor-service/internal/core/extractor"
	"energy-extractor-service/internal/core/ingest"
	"energy-extractor-service/internal/core/report"
	"energy-extractor-service/internal/domain"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExtractorHandler lida com as requisições da API de extração de contas
// de energia.
type ExtractorHandler struct {
	service extractor.Service
}

// NewExtractorHandler cria um novo handler de extração.
func NewExtractorHandler(service extractor.Service) *ExtractorHandler {
	return &ExtractorHandler{
		service: service,
	}
}

// HandleEnergyExtraction recebe arquivos PDF ou ZIP via multipart e
// responde com a planilha .xlsx consolidada por unidade consumidora.
func (h *ExtractorHandler) HandleEnergyExtraction(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Formulário multipart inválido")
		return
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		responses.Error(c, http.StatusBadRequest, "Nenhum arquivo PDF ou ZIP enviado no campo 'files'")
		return
	}

	var bills []domain.BillFile
	for _, fileHeader := range fileHeaders {
		ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
		if ext != ".pdf" && ext != ".zip" {
			responses.Error(c, http.StatusBadRequest, fmt.Sprintf("Extensão de arquivo não suportada: %s", ext))
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			responses.Error(c, http.StatusInternalServerError, fmt.Sprintf("Não foi possível abrir o arquivo %s", fileHeader.Filename))
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			responses.Error(c, http.StatusInternalServerError, fmt.Sprintf("Não foi possível ler o arquivo %s", fileHeader.Filename))
			return
		}

		expanded, err := ingest.ExpandUpload(fileHeader.Filename, data)
		if err != nil {
			responses.Error(c, http.StatusBadRequest, fmt.Sprintf("Erro ao expandir o arquivo %s", fileHeader.Filename), err.Error())
			return
		}
		bills = append(bills, expanded...)
	}

	if len(bills) == 0 {
		responses.Error(c, http.StatusBadRequest, "Nenhum PDF encontrado nos arquivos enviados")
		return
	}

	batch, err := h.service.ProcessBills(c.Request.Context(), bills)
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Erro ao processar os documentos", err.Error())
		return
	}

	if batch.Aggregate.Len() == 0 {
		responses.Error(c, http.StatusUnprocessableEntity, "Nenhum arquivo com chave de unidade consumidora no nome", batch.Skipped...)
		return
	}

	output, err := report.BuildWorkbook(batch.Aggregate)
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Erro ao gerar a planilha", err.Error())
		return
	}

	if len(batch.Skipped) > 0 {
		c.Header("X-Skipped-Files", strings.Join(batch.Skipped, "; "))
	}
	fileName := fmt.Sprintf("Extrato_Contas_Energia_%s.xlsx", time.Now().Format("20060102_150405"))
	responses.Attachment(c, fileName, xlsxContentType, output)
}
