package model

// User holds the local user data relevant to the application (outside of firebase)
type User struct {
	Id       string `db:"firebase_id" json:"id"`
	Username string `db:"username" json:"username"`
}
