package main

import (
	"fmt"
	"os"

	"github.com/jhoicas/storefront-api/docs"
)

const swaggerFile = "./docs/swagger.json"

// swaggerSpecFile devuelve la ruta del swagger.json. Fuera del repo (imagen sin ./docs)
// lo vuelca desde el paquete docs generado por swag a un archivo temporal.
func swaggerSpecFile() (string, error) {
	if _, err := os.Stat(swaggerFile); err == nil {
		return swaggerFile, nil
	}
	f, err := os.CreateTemp("", "storefront-swagger-*.json")
	if err != nil {
		return "", fmt.Errorf("crear swagger temporal: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(docs.SwaggerInfo.ReadDoc()); err != nil {
		return "", fmt.Errorf("escribir swagger temporal: %w", err)
	}
	return f.Name(), nil
}
