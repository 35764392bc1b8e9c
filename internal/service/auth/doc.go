// Package auth handles credentials and session tokens: bcrypt password
// hashing, HS256 JWT issuing and verification, and resolving a bearer token
// to the user it was issued for.
package auth
