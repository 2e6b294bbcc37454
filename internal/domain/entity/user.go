package entity

// Roles válidos.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleVendedor  = "vendedor"
)

// Actor identidad ya autenticada que ejecuta una operación.
// La resuelve el middleware JWT; el núcleo confía en ella.
type Actor struct {
	UserID   string
	Username string
	Role     string
}
