// Package main provides the gnlineage CLI application.
// gnlineage annotates tables of biological records with taxonomic lineages.
package main

import "github.com/gnames/gnlineage/cmd"

func main() {
	cmd.Execute()
}
