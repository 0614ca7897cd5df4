// Package catalog holds the fixed stitch and cast-on tables every other
// package consults for consume/generate arity.
//
// The tables are read-only. Lookups on unknown identifiers report ok=false
// rather than failing so pattern trees under construction stay computable.
package catalog
