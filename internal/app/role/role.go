package role

// Роль пользователя, кладётся в JWT claims
type Role int

const (
	Unknown Role = iota
	User
	Moderator
	Admin
)

func (r Role) String() string {
	switch r {
	case User:
		return "user"
	case Moderator:
		return "moderator"
	case Admin:
		return "admin"
	default:
		return "unknown"
	}
}

// FromString парсит роль из БД, неизвестные значения считаются обычным пользователем
func FromString(s string) Role {
	switch s {
	case "moderator":
		return Moderator
	case "admin":
		return Admin
	default:
		return User
	}
}
