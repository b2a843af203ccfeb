package domain

// Principal is the caller identity attached to a request once its credential
// has been verified. Role is only meaningful after an administrator check has
// refreshed it from the user record.
type Principal struct {
	ID   string
	Role Role
}
