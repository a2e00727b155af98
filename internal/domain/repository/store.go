package repository

import (
	"context"

	"github.com/jhoicas/patrimonio-api/internal/domain/entity"
)

// DocumentStore define el puerto de persistencia del documento único (DIP).
// Load y Save se tratan como atómicos; Run es la unidad de trabajo
// leer-modificar-escribir: carga un snapshot fresco, aplica fn y, si fn no
// falla, persiste el documento entero en una sola escritura. El almacén
// serializa los Run: el modelo asume exactamente un escritor activo.
type DocumentStore interface {
	Load(ctx context.Context) (*entity.Document, error)
	Save(ctx context.Context, doc *entity.Document) error
	Run(ctx context.Context, fn func(doc *entity.Document) error) error
}
