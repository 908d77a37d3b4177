package driver

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"aster/internal/ast"
	"aster/internal/astcodec"
	"aster/internal/astfmt"
	"aster/internal/manifest"
	"aster/internal/observ"
	"aster/internal/project"
	"aster/internal/source"
	"aster/internal/trace"
)

// ErrOutputClash means two manifests would write the same output file.
var ErrOutputClash = errors.New("output file clash")

// Result is the outcome for one manifest.
type Result struct {
	Path    string
	File    source.FileID
	Items   []*ast.Item // nil when served from the cache
	Output  []byte
	OutPath string // set when the output was written to Options.OutDir
	Structs int    // struct items, counted for cached results too
	Nodes   int    // node ids handed out
	Cached  bool
	Timings observ.Report
	Err     error
}

// Generate loads, lowers and emits every manifest in paths, up to
// Options.Jobs at a time. Results follow the order of paths.
//
// A failing manifest records its error in Result.Err and does not stop the
// others; the returned error joins those failures. Once ctx is done,
// manifests that have not started are skipped and ctx.Err() is returned.
func Generate(ctx context.Context, paths []string, opt Options) ([]Result, error) {
	if opt.Files == nil {
		opt.Files = source.NewFileSet()
	}
	outPaths, err := outputPaths(paths, opt)
	if err != nil {
		return nil, err
	}

	ctx, root := trace.Start(ctx, trace.ScopeDriver, "gen")
	root.WithExtra("manifests", strconv.Itoa(len(paths))).WithExtra("emit", opt.Emit.String())

	if opt.Progress != nil {
		for _, p := range paths {
			opt.Progress.OnEvent(Event{Path: p, Status: StatusQueued})
		}
	}

	jobs := opt.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]Result, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(paths))))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = Result{Path: path, Err: err}
				progress{sink: opt.Progress, path: path}.finish(&results[i])
				return err
			}
			results[i] = generateOne(gctx, path, outPaths[i], opt)
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // only ctx errors reach here, checked below
	if err := ctx.Err(); err != nil {
		root.End("canceled")
		return results, err
	}

	var errs []error
	for i := range results {
		if results[i].Err != nil {
			errs = append(errs, results[i].Err)
		}
	}
	root.End(fmt.Sprintf("%d/%d ok", len(paths)-len(errs), len(paths)))
	return results, errors.Join(errs...)
}

func outputPaths(paths []string, opt Options) ([]string, error) {
	out := make([]string, len(paths))
	if opt.OutDir == "" {
		return out, nil
	}
	seen := make(map[string]string, len(paths))
	for i, p := range paths {
		name := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p)) + opt.Emit.Ext()
		if prev, ok := seen[name]; ok {
			return nil, fmt.Errorf("%w: %s and %s both produce %s", ErrOutputClash, prev, p, name)
		}
		seen[name] = p
		out[i] = filepath.Join(opt.OutDir, name)
	}
	return out, nil
}

func generateOne(ctx context.Context, path, outPath string, opt Options) (res Result) {
	res.Path = path
	ctx, span := trace.Start(ctx, trace.ScopeManifest, "manifest:"+filepath.Base(path))
	timer := observ.NewTimer()
	prog := progress{sink: opt.Progress, path: path, start: time.Now()}
	defer func() {
		res.Timings = timer.Report()
		prog.finish(&res)
		switch {
		case res.Err != nil:
			span.End(res.Err.Error())
		case res.Cached:
			span.End("cached")
		default:
			span.End("ok")
		}
	}()

	prog.stage(StageLoad)
	_, load := trace.Start(ctx, trace.ScopeStage, "load")
	tLoad := timer.Begin("load")
	m, err := manifest.Load(opt.Files, path)
	if err != nil {
		timer.End(tLoad, "failed")
		load.End("failed")
		res.Err = err
		return res
	}
	timer.End(tLoad, fmt.Sprintf("%d structs", len(m.Structs)))
	load.WithExtra("structs", strconv.Itoa(len(m.Structs))).End("")
	res.File = m.File

	var key project.Digest
	if opt.Cache != nil {
		key = cacheKey(opt.Files.Get(m.File), opt)
		var p DiskPayload
		tCache := timer.Begin("cache")
		if ok, err := opt.Cache.Get(key, &p); err == nil && ok && p.Emit == uint8(opt.Emit) {
			timer.End(tCache, "hit")
			res.Output, res.Structs, res.Nodes, res.Cached = p.Output, p.Items, p.Nodes, true
			res.OutPath, res.Err = writeOutput(outPath, p.Output)
			return res
		}
		timer.End(tCache, "miss")
	}

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}
	prog.stage(StageLower)
	_, lower := trace.Start(ctx, trace.ScopeStage, "lower")
	tLower := timer.Begin("lower")
	items, err := manifest.Lower(opt.Files, m)
	timer.End(tLower, "")
	if err != nil {
		lower.End("failed")
		res.Err = err
		return res
	}
	lower.WithExtra("items", strconv.Itoa(len(items))).End("")

	prog.stage(StageAssign)
	_, assign := trace.Start(ctx, trace.ScopeStage, "assign")
	tAssign := timer.Begin("assign")
	ids := ast.NewIDAssigner()
	for _, it := range items {
		ids.AssignItem(it)
		assign.Point("item:"+it.Ident.String(), fmt.Sprintf("%d fields", len(it.Data.Fields)))
	}
	res.Items = items
	res.Structs = len(items)
	res.Nodes = ids.Count()
	timer.End(tAssign, fmt.Sprintf("%d nodes", res.Nodes))
	assign.WithExtra("nodes", strconv.Itoa(res.Nodes)).End("")

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}
	prog.stage(StageEmit)
	_, emit := trace.Start(ctx, trace.ScopeStage, "emit")
	tEmit := timer.Begin("emit")
	defer timer.End(tEmit, opt.Emit.String())
	out, err := render(items, opt)
	if err != nil {
		emit.End("failed")
		res.Err = fmt.Errorf("%s: %w", path, err)
		return res
	}
	res.Output = out
	if res.OutPath, err = writeOutput(outPath, out); err != nil {
		emit.End("failed")
		res.Err = err
		return res
	}
	emit.WithExtra("bytes", strconv.Itoa(len(out))).End("")

	if opt.Cache != nil {
		payload := &DiskPayload{Path: path, Emit: uint8(opt.Emit), Output: out, Items: len(items), Nodes: res.Nodes}
		if err := opt.Cache.Put(key, payload); err != nil {
			// кэш необязателен, сбой записи не ломает генерацию
			span.WithExtra("cache_error", err.Error())
		}
	}
	return res
}

func render(items []*ast.Item, opt Options) ([]byte, error) {
	switch opt.Emit {
	case EmitMsgpack:
		return astcodec.Marshal(items)
	case EmitJSON:
		return astcodec.MarshalJSON(items)
	default:
		return astfmt.FormatItems(items, opt.Format), nil
	}
}

func writeOutput(outPath string, data []byte) (string, error) {
	if outPath == "" {
		return "", nil
	}
	if err := writeFileAtomic(outPath, data); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	return outPath, nil
}

func cacheKey(file *source.File, opt Options) project.Digest {
	return project.Combine(project.Digest(file.Hash), opt.fingerprint())
}
