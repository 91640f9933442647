package models

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"` // user or admin
}

var DummyUsers = []User{
	{"1", "user1", "pass1", RoleUser},
	{"2", "user2", "pass2", RoleUser},
	{"3", "user3", "pass3", RoleUser},
	{"10", "admin", "admin123", RoleAdmin},
}

// FindUser returns the user matching the given credentials.
func FindUser(username, password string) (User, bool) {
	for _, u := range DummyUsers { //update later
		if u.Username == username && u.Password == password {
			return u, true
		}
	}
	return User{}, false
}
