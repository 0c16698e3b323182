package models

// SessionContext nosi identitet prijavljenog korisnika. Prosleđuje se eksplicitno
// u servise umesto čitanja iz globalnog stanja.
type SessionContext struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// SystemAccountEmail je jedini nalog koji preživljava proveru statusa zaposlenog
// čak i kada nema svoj zapis u kolekciji employees.
const SystemAccountEmail = "superadmin@digi-agency.local"
