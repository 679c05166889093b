// cmd/extractor/main.go
package main

import (
	"log"

	"energy-extractor-service/internal/api/handlers"
	"energy-extractor-service/internal/api/responses"
	"energy-extractor-service/internal/core/extractor"

	"github.com/gin-gonic/gin"
)

func main() {
	responses.InitLogger()

	extractorService := extractor.NewService()
	extractorHandler := handlers.NewExtractorHandler(extractorService)

	router := gin.Default()

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/extract/energia", extractorHandler.HandleEnergyExtraction)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP", "service": "energy-extractor-service"})
	})

	const port = "8084"
	log.Printf("🚀 Energy Extractor Service (Go) iniciado e escutando na porta %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Falha ao iniciar o servidor de extração: ", err)
	}
}
