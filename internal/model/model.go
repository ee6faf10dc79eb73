// Package model holds the domain types shared by handlers, services and
// repositories, together with the pure normalization rules applied to
// caller input before it reaches the store.
package model
