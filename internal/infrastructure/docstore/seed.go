// Package docstore implementa los backends del almacén de documento único:
// un archivo JSON en disco (escritura atómica vía rename) y una tabla de una
// sola fila en SQLite. Ambos serializan las unidades de trabajo con un mutex:
// el sistema asume un único escritor activo y el último escritor gana.
package docstore

import (
	"github.com/jhoicas/patrimonio-api/internal/domain/entity"
	"golang.org/x/crypto/bcrypt"
)

// seedDocument construye el documento inicial de un almacén vacío: las
// colecciones vacías y los dos usuarios por defecto (admin/usuario). Las
// contraseñas iniciales coinciden con el username y deben cambiarse.
func seedDocument() *entity.Document {
	doc := entity.NewDocument()
	for _, u := range []struct {
		name string
		role string
	}{
		{"admin", entity.RoleAdmin},
		{"usuario", entity.RoleUser},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.name), bcrypt.DefaultCost)
		if err != nil {
			continue
		}
		doc.Users = append(doc.Users, entity.User{
			Username:     u.name,
			Role:         u.role,
			PasswordHash: string(hash),
		})
	}
	return doc
}
