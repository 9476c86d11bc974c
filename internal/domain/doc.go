// Package domain contains the core business entities of the courses API:
// accounts, the public owner projection of an account, and courses. It also
// defines the validation messages and error types shared by every layer,
// independent of any specific infrastructure or delivery mechanism.
package domain
