package entity

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User representa un operador del sistema. El modelo de autorización es un
// flag de dos roles: admin gestiona categorías, campos y configuración de
// duplicados; user opera sobre items.
type User struct {
	Username     string `json:"username"`
	Role         string `json:"role"`
	PasswordHash string `json:"passwordHash,omitempty"` // bcrypt, nunca plano
}
