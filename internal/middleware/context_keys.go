package middleware

// contextKey is the key type used for values this package stores in a
// context. Using a custom type prevents collisions.
type contextKey string

const loggerKey = contextKey("logger")
