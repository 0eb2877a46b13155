// Package types contains common types used across the countdown package.
package types

type ContextKey string
