// Package auth implements credential hashing and verification and the
// ownership rule that gates course mutations.
package auth
