// subset-taxdump extracts a small taxonomy dump from a full one.
//
// The subset keeps complete lineages of the given names: every node on
// the way to the root is included together with all its names, so
// annotation results on the subset match results on the full dump.
//
// Usage:
//
//	go run . <taxdump-dir> <output-dir> <name> [name...]
//
// Examples:
//
//	go run . ~/data/taxdump ../../testdata "Escherichia coli" "Homo sapiens"
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gnames/gnlineage/internal/iotaxdump"
	"github.com/gnames/gnlineage/pkg/config"
	"github.com/gnames/gnlineage/pkg/taxonomy"
)

func main() {
	if len(os.Args) < 4 {
		fmt.Fprintf(os.Stderr, "Usage: %s <taxdump-dir> <output-dir> <name> [name...]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  taxdump-dir  directory with names.dmp and nodes.dmp\n")
		fmt.Fprintf(os.Stderr, "  output-dir   directory for the subset dump files\n")
		fmt.Fprintf(os.Stderr, "  name         names whose lineages are kept\n")
		os.Exit(1)
	}

	srcDir, outDir, names := os.Args[1], os.Args[2], os.Args[3:]

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	logger.Info("starting taxdump subset extraction",
		"source", srcDir,
		"names", len(names),
		"output", outDir,
	)

	if err := createSubset(context.Background(), logger, srcDir, outDir, names); err != nil {
		logger.Error("subset extraction failed", "error", err)
		os.Exit(1)
	}

	logger.Info("subset extraction complete", "output", outDir)
}

func createSubset(
	ctx context.Context,
	logger *slog.Logger,
	srcDir, outDir string,
	names []string,
) error {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptTaxonomyDir(srcDir),
		config.OptWithProgress(true),
	})

	store, err := iotaxdump.New(cfg).Load(ctx)
	if err != nil {
		return err
	}

	ids := lineageIDs(store, taxonomy.NewResolver(store), names, logger)
	ids[cfg.Taxonomy.RootID] = struct{}{}
	logger.Info("collected lineage nodes", "nodes", len(ids))

	if err = os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	for _, file := range []string{cfg.Taxonomy.NamesFile, cfg.Taxonomy.NodesFile} {
		src := filepath.Join(srcDir, file)
		dst := filepath.Join(outDir, file)
		n, err := filterDump(src, dst, ids)
		if err != nil {
			return err
		}
		logger.Info("dump file written", "path", dst, "lines", n)
	}
	return nil
}

// lineageIDs returns IDs of matched taxa and all their ancestors.
func lineageIDs(
	store *taxonomy.Store,
	res *taxonomy.Resolver,
	names []string,
	logger *slog.Logger,
) map[string]struct{} {
	ids := make(map[string]struct{})
	for _, name := range names {
		id, status := store.Match(name)
		if status != taxonomy.Matched {
			logger.Warn("name not found", "name", name)
			continue
		}
		for _, n := range res.Path(id) {
			ids[n.ID] = struct{}{}
		}
	}
	return ids
}

// filterDump copies lines whose taxon ID is in ids.
func filterDump(src, dst string, ids map[string]struct{}) (int, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return 0, err
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var count int
	for sc.Scan() {
		line := sc.Text()
		id, _, ok := strings.Cut(line, "|")
		if !ok {
			continue
		}
		if _, keep := ids[strings.TrimSpace(id)]; !keep {
			continue
		}
		if _, err = w.WriteString(line + "\n"); err != nil {
			return count, err
		}
		count++
	}
	if err = sc.Err(); err != nil {
		return count, err
	}
	return count, w.Flush()
}
