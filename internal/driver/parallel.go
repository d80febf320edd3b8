package driver

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"calclex/internal/diag"
	"calclex/internal/lexer"
	"calclex/internal/source"
	"calclex/internal/token"
)

// DefaultExtension is the file extension TokenizeDir looks for by default.
const DefaultExtension = ".calc"

// DirOptions configures TokenizeDir.
type DirOptions struct {
	Options
	// Ext selects files by extension; empty means DefaultExtension.
	Ext string
	// Jobs bounds the number of concurrent workers; <= 0 means GOMAXPROCS.
	Jobs int
	// Progress receives per-file events. May be nil.
	Progress ProgressSink
}

// TokenizeDirResult содержит результат токенизации одного файла
type TokenizeDirResult struct {
	Path   string        // Путь к файлу
	FileID source.FileID // ID файла в FileSet; пустая заглушка, если файл не загрузился
	Loaded bool
	Tokens []token.Token // nil при ошибке
	Bag    *diag.Bag     // Диагностики
}

// ListFiles возвращает отсортированный список файлов с расширением ext в директории
func ListFiles(dir, ext string) ([]string, error) {
	if ext == "" {
		ext = DefaultExtension
	}
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// TokenizeDir lexes every matching file under dir in parallel. Results come
// back in path order, one per file; load and lex failures are reported as
// diagnostics in each result's Bag, never as the returned error. The error is
// non-nil only when dir cannot be walked or ctx is cancelled.
func TokenizeDir(ctx context.Context, dir string, opts DirOptions) (*source.FileSet, []TokenizeDirResult, error) {
	files, err := ListFiles(dir, opts.Ext)
	if err != nil {
		return nil, nil, fmt.Errorf("list %s: %w", dir, err)
	}
	return TokenizeFiles(ctx, dir, files, opts)
}

// TokenizeFiles is TokenizeDir over an explicit file list.
func TokenizeFiles(ctx context.Context, baseDir string, files []string, opts DirOptions) (*source.FileSet, []TokenizeDirResult, error) {
	if abs, err := filepath.Abs(baseDir); err == nil {
		baseDir = abs
	}
	fileSet := source.NewFileSetWithBase(baseDir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}
	log := opts.logger()

	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	// Предзагружаем все файлы: FileSet не потокобезопасен на запись
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			// пустой файл-заглушка, чтобы диагностика указывала на путь
			loadErrors[path] = err
			fileID = fileSet.Add(path, nil, 0)
		}
		fileIDs[path] = fileID
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	log.Debug("tokenize files",
		slog.String("dir", baseDir),
		slog.Int("files", len(files)),
		slog.Int("jobs", jobs),
	)

	// Индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]TokenizeDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			started := time.Now()
			bag := diag.NewBag(opts.MaxDiagnostics)

			fileID := fileIDs[path]
			if loadErr, failed := loadErrors[path]; failed {
				results[i] = TokenizeDirResult{Path: path, FileID: fileID, Bag: bag}
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOLoadFileError,
					Message:  "failed to load file: " + loadErr.Error(),
					File:     fileID,
				})
				log.Debug("load failed", slog.String("path", path), slog.String("error", loadErr.Error()))
				emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr, Elapsed: time.Since(started)})
				return nil
			}

			emit(opts.Progress, Event{File: path, Stage: StageLex, Status: StatusWorking})

			lx := lexer.New(fileSet.Get(fileID), lexer.Options{
				Reporter: diag.BagReporter{Bag: bag},
				Logger:   opts.Logger,
			})
			tokens, lexErr := lx.Tokenize()

			results[i] = TokenizeDirResult{
				Path:   path,
				FileID: fileID,
				Loaded: true,
				Tokens: tokens,
				Bag:    bag,
			}

			status := StatusDone
			if lexErr != nil {
				status = StatusError
			}
			emit(opts.Progress, Event{File: path, Stage: StageLex, Status: status, Err: lexErr, Elapsed: time.Since(started)})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
