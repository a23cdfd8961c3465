// Package models defines the resources exchanged with the learnkit backend.
//
// Map, Course and Progress keep the exact JSON they were decoded from and
// emit it again when marshaled, so a value read from the backend can be
// stored or printed without losing fields this package does not model.
// Once a field is changed the value is encoded from its fields instead, and
// the unknown fields are dropped.
package models
