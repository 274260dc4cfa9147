package domain

// User is a registered player. PasswordHash never leaves the server.
type User struct {
	ID           int64  `db:"id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password"` // bcrypt hashed
	Score        int64  `db:"puntos"`
}

