package auth

// User is a restaurant owner account. Every self-registered account
// gets the OWNER role; the restaurant row itself is created separately
// and linked back through its owner_id.
type User struct {
	ID       string
	Name     string
	Email    string
	Password string // bcrypt hash, never the plaintext
	Role     string
}
