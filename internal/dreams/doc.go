// Package dreams defines the Dream record and the helpers that keep its
// invariants: one category flag at a time, stable hashtag identifiers and
// process-unique record identifiers.
package dreams
