package handler

const (
	errInternalServer     = "Internal server error"
	errProductNotFound    = "Product not found"
	errUserExists         = "User already exists"
	errInvalidCredentials = "Incorrect username or password"
)
