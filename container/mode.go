package container

//go:generate go tool go-enum --marshal --names

// Mode selects how Add treats an existing key.
// ENUM(create, update, createOrUpdate)
type Mode int
