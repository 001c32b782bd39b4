package domain

import "time"

// StaffMember models an employee record attached to a store. It is an HR-style
// roster entry; the optional UserID links it to a login account.
type StaffMember struct {
	ID        string    `json:"id"`
	StoreID   string    `json:"store_id"`
	UserID    *string   `json:"user_id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
