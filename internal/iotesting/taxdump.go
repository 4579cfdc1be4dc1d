// Package iotesting provides shared test utilities for packages that read
// taxonomy dumps and tables from the file system.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/gnlineage/pkg/config"
)

// NamesDump is a small names.dmp in NCBI format.
// It has a synonym colliding with a scientific name, a homonym,
// a malformed line and a name class that is not indexed.
var NamesDump = strings.Join([]string{
	"1\t|\troot\t|\t\t|\tscientific name\t|",
	"2\t|\tBacteria\t|\tBacteria <bacteria>\t|\tscientific name\t|",
	"2\t|\teubacteria\t|\t\t|\tgenbank common name\t|",
	"3\t|\tEscherichia\t|\t\t|\tscientific name\t|",
	"4\t|\tEscherichia coli\t|\t\t|\tscientific name\t|",
	"4\t|\tBacillus coli\t|\t\t|\tsynonym\t|",
	"4\t|\tE. coli\t|\t\t|\tcommon name\t|",
	"5\t|\tPseudomonadota\t|\t\t|\tscientific name\t|",
	"6\t|\tGammaproteobacteria\t|\t\t|\tscientific name\t|",
	"7\t|\tEnterobacterales\t|\t\t|\tscientific name\t|",
	"8\t|\tEnterobacteriaceae\t|\t\t|\tscientific name\t|",
	"9\t|\tSalmonella\t|\t\t|\tscientific name\t|",
	"10\t|\tSalmonella enterica\t|\t\t|\tscientific name\t|",
	"10\t|\tEscherichia coli\t|\t\t|\tsynonym\t|",
	"11\t|\tLoopus\t|\t\t|\tscientific name\t|",
	"12\t|\tLoopidae\t|\t\t|\tscientific name\t|",
	"13\t|\tSalmonella\t|\tSalmonella <plant>\t|\tscientific name\t|",
	"14\t|\tEukaryota\t|\t\t|\tscientific name\t|",
	"15\t|\tHomo sapiens\t|\t\t|\tequivalent name\t|",
	"broken line without pipes",
	"",
}, "\n")

// NodesDump is a small nodes.dmp in NCBI format.
// Taxa 11 and 12 are parents of each other.
var NodesDump = strings.Join([]string{
	"1\t|\t1\t|\tno rank\t|\t\t|\t8\t|",
	"2\t|\t1\t|\tsuperkingdom\t|\t\t|\t0\t|",
	"5\t|\t2\t|\tphylum\t|\t\t|\t0\t|",
	"6\t|\t5\t|\tclass\t|\t\t|\t0\t|",
	"7\t|\t6\t|\torder\t|\t\t|\t0\t|",
	"8\t|\t7\t|\tfamily\t|\t\t|\t0\t|",
	"3\t|\t8\t|\tgenus\t|\t\t|\t0\t|",
	"4\t|\t3\t|\tspecies\t|\t\t|\t0\t|",
	"9\t|\t8\t|\tgenus\t|\t\t|\t0\t|",
	"10\t|\t9\t|\tspecies\t|\t\t|\t0\t|",
	"11\t|\t12\t|\tgenus\t|\t\t|\t0\t|",
	"12\t|\t11\t|\tfamily\t|\t\t|\t0\t|",
	"13\t|\t14\t|\tgenus\t|\t\t|\t0\t|",
	"14\t|\t1\t|\tsuperkingdom\t|\t\t|\t0\t|",
	"15\t|\t99\t|\tspecies\t|\t\t|\t0\t|",
	"16\t|\tno-rank",
	"",
}, "\n")

// WriteTaxdump writes NamesDump and NodesDump to a temporary directory
// and returns the path to the directory.
func WriteTaxdump(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	WriteFile(t, filepath.Join(dir, "names.dmp"), NamesDump)
	WriteFile(t, filepath.Join(dir, "nodes.dmp"), NodesDump)
	return dir
}

// WriteFile writes content to path, failing the test on error.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	err := os.WriteFile(path, []byte(content), 0644)
	if err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

// GetTestConfig returns a configuration that points to the taxonomy
// in dir and keeps the rest of default settings.
func GetTestConfig(dir string) *config.Config {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptTaxonomyDir(dir),
		config.OptTaxonomyMaxHops(50),
	})
	return cfg
}
