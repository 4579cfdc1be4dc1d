// Package ioannotate implements gnlineage.Runner. It connects the taxonomy
// dump loader, table readers and writers and the annotator.
// This is an impure I/O package that creates output and statistics files.
package ioannotate

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnlineage/internal/iofs"
	"github.com/gnames/gnlineage/internal/iotable"
	"github.com/gnames/gnlineage/internal/iotaxdump"
	"github.com/gnames/gnlineage/pkg/annotator"
	"github.com/gnames/gnlineage/pkg/config"
	"github.com/gnames/gnlineage/pkg/gnlineage"
	"github.com/gnames/gnlineage/pkg/taxonomy"
	"github.com/google/uuid"
)

type runner struct {
	cfg    *config.Config
	loader taxonomy.Loader
}

// New creates a Runner that reads taxonomy dump files from the
// directory given in cfg.Taxonomy.
func New(cfg *config.Config) gnlineage.Runner {
	return &runner{cfg: cfg, loader: iotaxdump.New(cfg)}
}

// Annotate runs the whole annotation pipeline. Formats and paths are
// checked before the taxonomy is loaded, because loading a full dump
// takes a while.
func (r *runner) Annotate(ctx context.Context) (annotator.Summary, error) {
	var sum annotator.Summary
	startTime := time.Now()
	acfg := r.cfg.Annotate
	log := slog.With("run_id", uuid.NewString())

	inFmt, outFmt, err := r.checkPaths()
	if err != nil {
		return sum, err
	}

	log.Info("Starting annotation",
		"input", acfg.InputPath,
		"output", acfg.OutputPath,
		"species_column", acfg.SpeciesColumn,
	)

	store, res, err := r.load(ctx)
	if err != nil {
		return sum, err
	}

	rd, err := iotable.NewReader(acfg.InputPath, inFmt)
	if err != nil {
		return sum, err
	}
	defer rd.Close()

	if err = iofs.EnsureParentDir(acfg.OutputPath); err != nil {
		return sum, err
	}
	wr, err := iotable.NewWriter(acfg.OutputPath, outFmt)
	if err != nil {
		return sum, err
	}

	ann := annotator.New(store, res,
		annotator.OptSpeciesColumn(acfg.SpeciesColumn),
	)
	sum, err = ann.Annotate(ctx, rd, wr)
	if cerr := wr.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		removeOutput(acfg.OutputPath)
		log.Error("Annotation failed", "error", err)
		return sum, err
	}

	sum.Elapsed = time.Since(startTime).Seconds()
	missing, circular := res.BrokenNodes()
	log.Info("Annotation saved",
		"output", acfg.OutputPath,
		"rows", sum.TotalRows,
		"matched", sum.Matched,
		"missing_nodes", missing,
		"circular_taxa", circular,
		"duration", gnfmt.TimeString(sum.Elapsed),
	)
	if circular > 0 {
		gn.Warn("Lineages of <em>%s</em> taxa hit the hops limit",
			humanize.Comma(int64(circular)))
	}
	gn.Info("Annotated <em>%s</em> rows in %s",
		humanize.Comma(int64(sum.TotalRows)), gnfmt.TimeString(sum.Elapsed))

	if acfg.StatsFile != "" {
		if err = WriteStats(acfg.StatsFile, sum, acfg.StatsFormat); err != nil {
			return sum, err
		}
		log.Info("Statistics saved", "path", acfg.StatsFile)
	}
	return sum, nil
}

// Lookup resolves names one by one against the loaded taxonomy.
func (r *runner) Lookup(
	ctx context.Context,
	names []string,
) ([]taxonomy.LookupResult, error) {
	_, res, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]taxonomy.LookupResult, len(names))
	for i, name := range names {
		out[i] = res.Lookup(name)
	}
	return out, nil
}

func (r *runner) load(
	ctx context.Context,
) (*taxonomy.Store, *taxonomy.Resolver, error) {
	store, err := r.loader.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	res := taxonomy.NewResolver(store,
		taxonomy.OptRootID(r.cfg.Taxonomy.RootID),
		taxonomy.OptMaxHops(r.cfg.Taxonomy.MaxHops),
	)
	return store, res, nil
}

// checkPaths validates input and output locations and returns
// their formats.
func (r *runner) checkPaths() (iotable.Format, iotable.Format, error) {
	acfg := r.cfg.Annotate
	if acfg.InputPath == "" {
		return "", "", NoInputError()
	}
	if acfg.OutputPath == "" {
		return "", "", NoOutputError()
	}
	if samePath(acfg.InputPath, acfg.OutputPath) {
		return "", "", SamePathError(acfg.InputPath)
	}

	inFmt, err := iotable.DetectFormat(acfg.InputPath, acfg.InputFormat)
	if err != nil {
		return "", "", err
	}
	if inFmt == iotable.SQLite {
		return "", "", iotable.FormatError(acfg.InputPath, string(inFmt))
	}

	outFmt, err := iotable.DetectFormat(acfg.OutputPath, acfg.OutputFormat)
	if err != nil {
		return "", "", err
	}

	if _, err = os.Stat(acfg.InputPath); err != nil {
		return "", "", iotable.OpenError(acfg.InputPath, err)
	}
	return inFmt, outFmt, nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// removeOutput deletes a partially written output file.
func removeOutput(path string) {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Cannot remove incomplete output", "path", path, "error", err)
	}
}
