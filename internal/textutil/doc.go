// Package textutil turns free-form names into filesystem-safe tokens.
package textutil
