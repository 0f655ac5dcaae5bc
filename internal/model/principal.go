package model

type Principal struct {
	UserID string
	Email  string
	Roles  []string
}

const RoleAdmin = "admin"

func (p Principal) IsAdmin() bool {
	for _, role := range p.Roles {
		if role == RoleAdmin {
			return true
		}
	}
	return false
}

// Owns reports whether the principal may act on a resource owned by userID.
func (p Principal) Owns(userID string) bool {
	return p.UserID != "" && p.UserID == userID
}
