// Package gnlineage annotates tables of biological records with their
// six-rank classification taken from an NCBI-style taxonomy dump.
package gnlineage

var (
	// Version of gnlineage, set by build flags.
	Version = "v0.1.0"
	// Build timestamp, set by build flags.
	Build = "n/a"
)
