package core

// Client es el contacto principal. Phones solo se completa en lecturas
// que agregan los teléfonos (GetClient).
type Client struct {
	ID        int64    `json:"id"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Email     string   `json:"email"`
	Phones    []string `json:"phones,omitempty"`
}

type Phone struct {
	ID       int64  `json:"id"`
	Number   string `json:"phone_num"`
	ClientID int64  `json:"user_id"`
}

// ClientRow es una fila del LEFT JOIN client/phone.
// Phone es nil cuando el client no tiene teléfonos.
type ClientRow struct {
	ClientID  int64   `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone_num"`
}

// PhoneNum devuelve el teléfono o "" si la fila no tiene.
func (r ClientRow) PhoneNum() string {
	if r.Phone == nil {
		return ""
	}
	return *r.Phone
}

// MatchMode define cómo FindClients combina los filtros.
type MatchMode string

const (
	// MatchLast ejecuta un SELECT por filtro no vacío y devuelve solo el
	// resultado del último (first_name, last_name, email, phone_num).
	MatchLast MatchMode = "last"
	// MatchAll combina todos los filtros no vacíos con AND en un único SELECT.
	MatchAll MatchMode = "all"
)

// ClientFilter: predicados de igualdad opcionales. Vacío = ignorado.
type ClientFilter struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Mode      MatchMode // "" equivale a MatchLast
}

// Empty indica si no hay ningún predicado.
func (f ClientFilter) Empty() bool {
	return f.FirstName == "" && f.LastName == "" && f.Email == "" && f.Phone == ""
}

// ClientUpdate: campos vacíos no se tocan. El teléfono se renumera solo si
// vienen OldPhone y NewPhone.
type ClientUpdate struct {
	FirstName string
	LastName  string
	Email     string
	OldPhone  string
	NewPhone  string
}
