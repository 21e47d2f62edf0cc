package domain

// User is a stored user record. Email carries no uniqueness or format rule.
type User struct {
	ID    int64
	Name  string
	Email string
}

// UserInput holds the client-supplied columns of a user.
type UserInput struct {
	Name  string
	Email string
}
