package model

// User represents a dashboard operator as stored in the `users`
// table.  Users are created by seeding or administration only; the
// application reads them to authenticate and never mutates them.
//
// Fields:
//  ID           – primary key identifier (UUID text).
//  Name         – display name.
//  Email        – unique email address used as the login name.
//  PasswordHash – bcrypt hash of the password (users.password).
type User struct {
    ID           string // users.id
    Name         string // users.name
    Email        string // users.email
    PasswordHash string // users.password
}
