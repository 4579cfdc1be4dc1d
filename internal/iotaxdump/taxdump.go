// Package iotaxdump implements taxonomy.Loader for NCBI-style taxonomy
// dumps (names.dmp and nodes.dmp).
// This is an impure I/O package that reads pipe-delimited dump files.
package iotaxdump

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnlineage/pkg/config"
	"github.com/gnames/gnlineage/pkg/taxonomy"
	"golang.org/x/sync/errgroup"
)

const (
	namesMinFields = 4
	nodesMinFields = 3

	// maxLineSize limits the length of a dump line. Longer lines are
	// skipped as malformed.
	maxLineSize = 1024 * 1024
)

type taxdump struct {
	cfg *config.Config
}

// New creates a Loader for dump files located according to cfg.Taxonomy.
func New(cfg *config.Config) taxonomy.Loader {
	return &taxdump{cfg: cfg}
}

// dumpStat counts lines of one dump file.
type dumpStat struct {
	lines   int
	skipped int
}

// Load reads names and nodes dumps concurrently and returns the Store
// when both files are read completely.
func (td *taxdump) Load(ctx context.Context) (*taxonomy.Store, error) {
	startTime := time.Now()
	namesPath := td.cfg.NamesPath()
	nodesPath := td.cfg.NodesPath()

	// Both files are opened before parsing, so a missing file is reported
	// without wasting time on the other one.
	namesFile, err := openDump(namesPath)
	if err != nil {
		return nil, err
	}
	defer namesFile.Close()

	nodesFile, err := openDump(nodesPath)
	if err != nil {
		return nil, err
	}
	defer nodesFile.Close()

	var namesR, nodesR io.Reader = namesFile, nodesFile
	if td.cfg.WithProgress {
		stop, nr, dr := startProgress(namesFile, nodesFile)
		defer stop()
		namesR, nodesR = nr, dr
	}

	store := taxonomy.NewStore()
	var namesStat, nodesStat dumpStat

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		namesStat, err = readNames(ctx, namesR, store)
		if err != nil {
			return TaxonomyReadError(namesPath, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		nodesStat, err = readNodes(ctx, nodesR, store)
		if err != nil {
			return TaxonomyReadError(nodesPath, err)
		}
		return nil
	})

	if err = g.Wait(); err != nil {
		return nil, err
	}

	duration := time.Since(startTime)
	slog.Info("Taxonomy dump loaded",
		"names_lines", namesStat.lines,
		"names_skipped", namesStat.skipped,
		"nodes_lines", nodesStat.lines,
		"nodes_skipped", nodesStat.skipped,
		"indexed_names", store.NamesNum(),
		"nodes", store.NodesNum(),
		"homonyms", store.Homonyms(),
		"duration", gnfmt.TimeString(duration.Seconds()),
	)
	gn.Info(
		"Loaded <em>%s</em> nodes and <em>%s</em> names in %s",
		humanize.Comma(int64(store.NodesNum())),
		humanize.Comma(int64(store.NamesNum())),
		gnfmt.TimeString(duration.Seconds()),
	)

	if skipped := namesStat.skipped + nodesStat.skipped; skipped > 0 {
		slog.Warn("Malformed dump lines skipped", "count", skipped)
	}
	if h := store.Homonyms(); h > 0 {
		slog.Warn("Homonym scientific names found, first taxon is used",
			"count", h,
		)
		gn.Warn(
			"<em>%s</em> scientific names belong to more than one taxon, "+
				"the first taxon is used for each of them",
			humanize.Comma(int64(h)),
		)
	}

	return store, nil
}

func openDump(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, TaxonomyFileError(path, err)
	}
	return f, nil
}

// readNames parses a names dump:
// tax_id | name_txt | unique_name | name_class |
func readNames(
	ctx context.Context,
	r io.Reader,
	store *taxonomy.Store,
) (dumpStat, error) {
	return readDump(ctx, r, namesMinFields, func(fields []string) {
		class := taxonomy.NewNameClass(fields[3])
		if class == taxonomy.OtherName {
			return
		}
		store.AddName(taxonomy.NameRecord{
			TaxonID: fields[0],
			Name:    fields[1],
			Class:   class,
		})
	})
}

// readNodes parses a nodes dump:
// tax_id | parent tax_id | rank | ...
func readNodes(
	ctx context.Context,
	r io.Reader,
	store *taxonomy.Store,
) (dumpStat, error) {
	return readDump(ctx, r, nodesMinFields, func(fields []string) {
		store.AddNode(taxonomy.Node{
			ID:       fields[0],
			ParentID: fields[1],
			Rank:     fields[2],
		})
	})
}

// readDump calls fn for every line that has at least minFields fields.
// Shorter and overlong lines are skipped.
func readDump(
	ctx context.Context,
	r io.Reader,
	minFields int,
	fn func([]string),
) (dumpStat, error) {
	var res dumpStat
	br := bufio.NewReaderSize(r, 64*1024)

	for {
		line, tooLong, err := readLine(br)
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		if err != nil {
			return res, err
		}

		res.lines++
		if res.lines%100_000 == 0 {
			select {
			case <-ctx.Done():
				return res, ctx.Err()
			default:
			}
		}

		if tooLong {
			res.skipped++
			slog.Warn("Skipping overlong dump line",
				"line", res.lines,
				"max_size", maxLineSize,
			)
			continue
		}

		fields := splitLine(line)
		if len(fields) < minFields {
			res.skipped++
			slog.Debug("Skipping malformed dump line", "line", res.lines)
			continue
		}
		fn(fields)
	}
}

// readLine returns the next line without its line break. A line longer
// than maxLineSize is consumed to its end and reported as too long,
// its content is not kept. io.EOF is returned only when no data is left.
func readLine(br *bufio.Reader) (string, bool, error) {
	var buf []byte
	var size int
	for {
		chunk, err := br.ReadSlice('\n')
		size += len(chunk)
		if size <= maxLineSize {
			buf = append(buf, chunk...)
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err != nil && (!errors.Is(err, io.EOF) || size == 0) {
			return "", false, err
		}
		break
	}

	if size > maxLineSize {
		return "", true, nil
	}
	return strings.TrimRight(string(buf), "\r\n"), false, nil
}

// splitLine splits a dump line by pipes and trims every field.
func splitLine(line string) []string {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	res := strings.Split(line, "|")
	for i := range res {
		res[i] = strings.TrimSpace(res[i])
	}
	return res
}

// startProgress creates byte-counting progress bars for both dumps.
// The returned function stops the bars.
func startProgress(namesFile, nodesFile *os.File) (
	func(),
	io.Reader,
	io.Reader,
) {
	namesBar := newProgressBar(namesFile)
	nodesBar := newProgressBar(nodesFile)

	pool, err := pb.StartPool(namesBar, nodesBar)
	if err != nil {
		slog.Warn("Cannot start progress bars", "error", err)
		return func() {}, namesFile, nodesFile
	}

	stop := func() {
		namesBar.Finish()
		nodesBar.Finish()
		if err := pool.Stop(); err != nil {
			slog.Warn("Cannot stop progress bars", "error", err)
		}
	}
	return stop, namesBar.NewProxyReader(namesFile),
		nodesBar.NewProxyReader(nodesFile)
}

func newProgressBar(f *os.File) *pb.ProgressBar {
	var size int64
	if info, err := f.Stat(); err == nil {
		size = info.Size()
	}
	bar := pb.New64(size)
	bar.SetTemplate(pb.Full)
	bar.Set(pb.Bytes, true)
	bar.Set("prefix", filepath.Base(f.Name())+" ")
	bar.Set(pb.CleanOnFinish, true)
	return bar
}
