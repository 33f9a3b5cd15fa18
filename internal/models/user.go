package models

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserPatch carries a partial profile update. A nil field leaves the
// stored value untouched.
type UserPatch struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}
