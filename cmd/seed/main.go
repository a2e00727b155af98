// seed importa un CSV de inventario (exportes legados en Latin-1) al almacén
// de documento único: crea la categoría, deriva un campo string por columna y
// da de alta un item por fila.
//
// Uso: go run ./cmd/seed <nombre-categoría> [ruta/archivo.csv]
// Por defecto busca inventario.csv en el directorio actual. El almacén se
// resuelve con la misma configuración que la API (STORE_DRIVER, STORE_PATH).
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/patrimonio-api/internal/application/usecase"
	"github.com/jhoicas/patrimonio-api/internal/domain/entity"
	"github.com/jhoicas/patrimonio-api/internal/domain/repository"
	"github.com/jhoicas/patrimonio-api/internal/infrastructure/docstore"
	"github.com/jhoicas/patrimonio-api/pkg/config"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Uso: seed <nombre-categoría> [archivo.csv]")
		os.Exit(1)
	}
	categoryName := os.Args[1]
	csvPath := "inventario.csv"
	if len(os.Args) > 2 {
		csvPath = os.Args[2]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	var store repository.DocumentStore
	switch cfg.Store.Driver {
	case "sqlite":
		s, err := docstore.NewSQLiteStore(cfg.Store.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Abrir almacén: %v\n", err)
			os.Exit(1)
		}
		defer s.Close()
		store = s
	default:
		s, err := docstore.NewFileStore(cfg.Store.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Abrir almacén: %v\n", err)
			os.Exit(1)
		}
		store = s
	}

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	// Los exportes legados vienen en ISO-8859-1
	r := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	if len(records) < 2 {
		fmt.Fprintln(os.Stderr, "CSV sin filas de datos")
		os.Exit(1)
	}

	headers := records[0]
	keys := make([]string, len(headers))
	for i, h := range headers {
		keys[i] = usecase.DeriveKey(h)
	}

	imported := 0
	err = store.Run(context.Background(), func(doc *entity.Document) error {
		cat := entity.Category{ID: uuid.New().String(), Name: categoryName}
		doc.Categories = append(doc.Categories, cat)
		for i, h := range headers {
			if keys[i] == "" || entity.IsReservedItemKey(keys[i]) {
				continue
			}
			doc.Fields = append(doc.Fields, entity.Field{
				ID:         uuid.New().String(),
				CategoryID: cat.ID,
				Name:       strings.TrimSpace(h),
				Key:        keys[i],
				Type:       entity.FieldTypeString,
			})
		}
		for _, row := range records[1:] {
			item := entity.Item{
				ID:         uuid.New().String(),
				CategoryID: cat.ID,
				Values:     map[string]any{},
			}
			for i, cell := range row {
				if i >= len(keys) || keys[i] == "" || entity.IsReservedItemKey(keys[i]) {
					continue
				}
				if v := strings.TrimSpace(cell); v != "" {
					item.Values[keys[i]] = v
				}
			}
			if len(item.Values) == 0 {
				continue
			}
			doc.Items = append(doc.Items, item)
			imported++
		}
		doc.PushActivity(entity.Activity{
			ID:           uuid.New().String(),
			Type:         entity.ActivityImport,
			Title:        "Importação de CSV",
			Time:         time.Now(),
			Description:  fmt.Sprintf("%d item(ns) importado(s) de %s", imported, csvPath),
			CategoryID:   cat.ID,
			CategoryName: cat.Name,
		})
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Importar: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Importados %d items en la categoría %q desde %s\n", imported, categoryName, csvPath)
}
