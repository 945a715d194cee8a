package domain

// History is the container owning datasets and collection associations
type History struct {
	ID         int64
	UserID     *int64
	Name       string
	Published  bool
	Importable bool
	Deleted    bool
}

// IsOwnedBy reports whether user owns the history
func (h *History) IsOwnedBy(user *User) bool {
	return user != nil && h.UserID != nil && *h.UserID == user.ID
}

// User is the authenticated caller
type User struct {
	ID    int64
	Email string
	Admin bool
}
