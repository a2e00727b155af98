package returns

import "github.com/jhoicas/patrimonio-api/internal/domain/entity"

// NotePDFGenerator genera el documento imprimible de una nota de devolución.
type NotePDFGenerator interface {
	GenerateNotePDF(note *entity.ReturnNote) ([]byte, error)
}
