package devusers

// SampleUsers returns the two well-known development accounts. Every
// process start assigns them fresh random IDs, matching how an identity
// provider would issue opaque subjects.
func SampleUsers(password string) ([]*User, error) {
	admin, err := NewUser(UserConfig{
		Username:  "admin",
		FirstName: "Alice",
		LastName:  "Administrator",
		Email:     "admin@example.com",
		Password:  password,
		Roles:     []string{"admin"},
	})
	if err != nil {
		return nil, err
	}

	user, err := NewUser(UserConfig{
		Username:  "user",
		FirstName: "Ursula",
		LastName:  "User",
		Email:     "user@example.com",
		Password:  password,
		Roles:     []string{"user"},
	})
	if err != nil {
		return nil, err
	}

	return []*User{admin, user}, nil
}
