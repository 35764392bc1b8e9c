// Package domain contains the core business entities, value objects, and
// domain logic of the application: users, the blogs they own, and the
// statistics computed over a list of blogs. It is independent of any specific
// infrastructure or delivery mechanism.
package domain
