package ioannotate_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnlineage/internal/ioannotate"
	"github.com/gnames/gnlineage/internal/iotable"
	"github.com/gnames/gnlineage/internal/iotesting"
	"github.com/gnames/gnlineage/pkg/annotator"
	"github.com/gnames/gnlineage/pkg/config"
	"github.com/gnames/gnlineage/pkg/errcode"
	"github.com/gnames/gnlineage/pkg/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const records = `id,species,site
1,Escherichia coli,gut
2,salmonella ENTERICA,soil
3,Homo sapiens,lab
4,,river
5,Unknownus incognitus,lake
`

var ecoli = []string{
	"Bacteria", "Pseudomonadota", "Gammaproteobacteria",
	"Enterobacterales", "Enterobacteriaceae", "Escherichia",
}

func setup(t *testing.T, outName string) *config.Config {
	t.Helper()
	dir := iotesting.WriteTaxdump(t)
	in := filepath.Join(dir, "records.csv")
	iotesting.WriteFile(t, in, records)

	cfg := iotesting.GetTestConfig(dir)
	cfg.Update([]config.Option{
		config.OptAnnotateInputPath(in),
		config.OptAnnotateOutputPath(filepath.Join(dir, outName)),
	})
	return cfg
}

func readTable(t *testing.T, path string) (header []string, rows [][]string) {
	t.Helper()
	f, err := iotable.DetectFormat(path, "")
	require.NoError(t, err)
	r, err := iotable.NewReader(path, f)
	require.NoError(t, err)
	defer r.Close()

	header = r.Header()
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		rows = append(rows, row)
	}
	return header, rows
}

func TestAnnotate(t *testing.T) {
	for _, out := range []string{"out.csv", "out.tsv", "out.xlsx"} {
		t.Run(out, func(t *testing.T) {
			assert := assert.New(t)
			cfg := setup(t, out)

			sum, err := ioannotate.New(cfg).Annotate(context.Background())
			require.NoError(t, err)

			assert.Equal(5, sum.TotalRows)
			assert.Equal(4, sum.NonEmptySpecies)
			assert.Equal(3, sum.Matched)
			assert.Equal(1, sum.Unmatched)
			assert.Equal(1, sum.Kingdoms)
			assert.Equal(2, sum.Genera)
			assert.Equal(4, sum.Species)
			assert.Greater(sum.Elapsed, 0.0)

			header, rows := readTable(t, cfg.Annotate.OutputPath)
			assert.Equal([]string{
				"id", "species", "site",
				"Kingdom", "Phylum", "Class", "Order", "Family", "Genus",
			}, header)
			require.Len(t, rows, 5)

			assert.Equal(ecoli, rows[0][3:])
			assert.Equal("Salmonella", rows[1][8])
			assert.Equal("Enterobacteriaceae", rows[1][7])
			assert.Equal("river", rows[3][2])
			for _, i := range []int{2, 3, 4} {
				// spreadsheets drop trailing empty cells
				for _, v := range rows[i][min(3, len(rows[i])):] {
					assert.Empty(v)
				}
			}
		})
	}
}

func TestAnnotateSQLite(t *testing.T) {
	cfg := setup(t, "out.sqlite")
	sum, err := ioannotate.New(cfg).Annotate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, sum.TotalRows)

	info, err := os.Stat(cfg.Annotate.OutputPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestAnnotateStatsFile(t *testing.T) {
	cfg := setup(t, "out.csv")
	statsPath := filepath.Join(t.TempDir(), "stats.json")
	cfg.Update([]config.Option{
		config.OptAnnotateStatsFile(statsPath),
		config.OptAnnotateStatsFormat("json"),
	})

	_, err := ioannotate.New(cfg).Annotate(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(statsPath)
	require.NoError(t, err)
	var sum annotator.Summary
	require.NoError(t, json.Unmarshal(data, &sum))
	assert.Equal(t, 3, sum.Matched)
	assert.Equal(t, 1, sum.Unmatched)
	assert.Equal(t, 1, sum.Kingdoms)
}

func TestAnnotateMissingColumn(t *testing.T) {
	cfg := setup(t, "out.csv")
	cfg.Update([]config.Option{config.OptAnnotateSpeciesColumn("taxon")})

	_, err := ioannotate.New(cfg).Annotate(context.Background())
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.SpeciesColumnError, gnErr.Code)

	_, statErr := os.Stat(cfg.Annotate.OutputPath)
	assert.True(t, os.IsNotExist(statErr), "incomplete output is removed")
}

func TestAnnotatePathErrors(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.csv")
	iotesting.WriteFile(t, in, records)
	out := filepath.Join(dir, "out.csv")

	tests := []struct {
		name    string
		in, out string
		code    gn.ErrorCode
	}{
		{"no input", "", out, errcode.AnnotatePathError},
		{"no output", in, "", errcode.AnnotatePathError},
		{"same path", in, dir + "/./in.csv", errcode.AnnotatePathError},
		{"unknown output", in, filepath.Join(dir, "out.json"),
			errcode.TableFormatError},
		{"sqlite input", filepath.Join(dir, "in.sqlite"), out,
			errcode.TableFormatError},
		{"missing input", filepath.Join(dir, "none.csv"), out,
			errcode.TableOpenError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := iotesting.GetTestConfig(dir)
			cfg.Update([]config.Option{
				config.OptAnnotateInputPath(tt.in),
				config.OptAnnotateOutputPath(tt.out),
			})

			_, err := ioannotate.New(cfg).Annotate(context.Background())
			var gnErr *gn.Error
			require.ErrorAs(t, err, &gnErr)
			assert.Equal(t, tt.code, gnErr.Code)
		})
	}
}

func TestAnnotateMissingTaxonomy(t *testing.T) {
	cfg := setup(t, "out.csv")
	cfg.Update([]config.Option{config.OptTaxonomyDir(t.TempDir())})

	_, err := ioannotate.New(cfg).Annotate(context.Background())
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.TaxonomyFileError, gnErr.Code)
}

func TestLookup(t *testing.T) {
	assert := assert.New(t)
	cfg := iotesting.GetTestConfig(iotesting.WriteTaxdump(t))

	res, err := ioannotate.New(cfg).Lookup(
		context.Background(),
		[]string{"Bacillus coli", "Loopus", "nothing"},
	)
	require.NoError(t, err)
	require.Len(t, res, 3)

	assert.Equal(taxonomy.Matched, res[0].Status)
	assert.Equal("4", res[0].TaxonID)
	assert.Equal(ecoli, res[0].Lineage.Values())

	assert.Equal(taxonomy.Matched, res[1].Status)
	assert.Equal("Loopus", res[1].Lineage.Get(taxonomy.Genus))
	assert.Equal("Loopidae", res[1].Lineage.Get(taxonomy.Family))

	assert.Equal(taxonomy.Unmatched, res[2].Status)
}

func TestEncodeReport(t *testing.T) {
	sum := annotator.Summary{
		TotalRows: 1200, NonEmptySpecies: 1100, Matched: 1000,
		Unmatched: 100, Genera: 42, Elapsed: 3.5,
	}

	var buf bytes.Buffer
	require.NoError(t, ioannotate.EncodeReport(&buf, sum, "text"))
	out := buf.String()
	assert.Contains(t, out, "Total rows")
	assert.Contains(t, out, "1,200")
	assert.Contains(t, out, "Distinct Genus")

	buf.Reset()
	require.NoError(t, ioannotate.EncodeReport(&buf, sum, "json"))
	var res annotator.Summary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &res))
	assert.Equal(t, sum, res)
}

func TestAnnotateCreatesDirs(t *testing.T) {
	cfg := setup(t, "out.csv")
	dir := t.TempDir()
	out := filepath.Join(dir, "results", "out.csv")
	stats := filepath.Join(dir, "reports", "2024", "stats.txt")
	cfg.Update([]config.Option{
		config.OptAnnotateOutputPath(out),
		config.OptAnnotateStatsFile(stats),
	})

	_, err := ioannotate.New(cfg).Annotate(context.Background())
	require.NoError(t, err)

	header, rows := readTable(t, out)
	assert.Len(t, header, 9)
	assert.Len(t, rows, 5)
	data, err := os.ReadFile(stats)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Total rows")
}

func TestWriteStatsBadPath(t *testing.T) {
	dir := t.TempDir()
	notDir := filepath.Join(dir, "file")
	iotesting.WriteFile(t, notDir, "data")
	path := filepath.Join(notDir, "stats.txt")
	err := ioannotate.WriteStats(path, annotator.Summary{}, "text")

	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.StatsWriteError, gnErr.Code)
}
