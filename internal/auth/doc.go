// Package auth issues and checks credentials for pulselink users.
//
// It provides:
//   - Argon2id password hashing in PHC string format, with verification
//     of legacy bcrypt hashes so accounts created before the switch keep
//     working (they are rehashed on the next successful login)
//   - HS256 bearer tokens carrying the user id and username, valid for
//     a fixed lifetime (one hour by default)
//   - Registration and login flows on top of the user repository
//
// Login never reveals whether the username exists: every failure is
// ErrInvalidCredentials.
package auth
