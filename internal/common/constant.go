// Package common contains shared constants and sentinel errors used across
// matcheat components.
package common

// TokenHeaderName is the HTTP header that carries the identity token on
// protected requests.
const TokenHeaderName = "token"
