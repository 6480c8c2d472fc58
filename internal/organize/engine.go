package organize

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"comicsort/internal/config"
	"comicsort/internal/errors"
	"comicsort/internal/fileutil"
	"comicsort/internal/log"
	"comicsort/internal/resolve"
	"comicsort/internal/runlock"
	"comicsort/internal/transform"
	"comicsort/pkg/types"

	"github.com/gobwas/glob"
	"golang.org/x/text/unicode/norm"
)

// Engine sorts files by the first mapping whose pattern matches them.
type Engine struct {
	mappings        []types.Mapping
	ignore          []glob.Glob
	dryRun          bool
	collision       types.CollisionPolicy
	reportUnmatched bool
	normalize       bool
}

// New creates an engine over mappings, kept in the given order. It
// overwrites on collision and normalises filenames until told otherwise.
func New(mappings []types.Mapping) *Engine {
	return &Engine{
		mappings:  mappings,
		collision: types.CollisionOverwrite,
		normalize: true,
	}
}

// NewWithConfig compiles the configured mappings and applies the settings.
func NewWithConfig(cfg *config.Config) (*Engine, error) {
	mappings, err := cfg.Mappings()
	if err != nil {
		return nil, err
	}

	e := New(mappings)
	e.dryRun = cfg.Settings.DryRun
	e.collision = cfg.Settings.Collision
	e.reportUnmatched = cfg.Settings.ReportUnmatched
	e.normalize = cfg.Settings.Normalize()
	if err := e.SetIgnore(cfg.Settings.Ignore); err != nil {
		return nil, err
	}
	return e, nil
}

// SetDryRun sets whether moves are performed or only logged.
func (e *Engine) SetDryRun(dryRun bool) {
	e.dryRun = dryRun
}

// IsDryRun returns the current dry run setting.
func (e *Engine) IsDryRun() bool {
	return e.dryRun
}

// SetCollision sets the policy for destinations that already exist.
func (e *Engine) SetCollision(policy types.CollisionPolicy) error {
	if !policy.Valid() {
		return errors.NewConfigError(fmt.Sprintf("unknown collision strategy %q", policy), "settings.collision", errors.InvalidConfig, nil)
	}
	e.collision = policy
	return nil
}

// SetReportUnmatched logs unmatched files at info instead of debug level.
func (e *Engine) SetReportUnmatched(report bool) {
	e.reportUnmatched = report
}

// SetNormalize toggles NFC normalisation of filenames before matching.
func (e *Engine) SetNormalize(normalize bool) {
	e.normalize = normalize
}

// SetIgnore replaces the globs of filenames the engine never touches.
func (e *Engine) SetIgnore(patterns []string) error {
	globs := make([]glob.Glob, 0, len(patterns))
	for i, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return errors.NewConfigError("invalid ignore glob", fmt.Sprintf("settings.ignore[%d]", i), errors.InvalidConfig, err)
		}
		globs = append(globs, g)
	}
	e.ignore = globs
	return nil
}

// Mappings returns the engine's mappings in match order.
func (e *Engine) Mappings() []types.Mapping {
	return e.mappings
}

// Match returns the first mapping whose pattern matches the start of name.
func (e *Engine) Match(name string) (*types.Mapping, bool) {
	for i := range e.mappings {
		if e.mappings[i].Matches(name) {
			return &e.mappings[i], true
		}
	}
	return nil, false
}

// Ignored reports whether name is skipped before any mapping is tried.
func (e *Engine) Ignored(name string) bool {
	if name == runlock.FileName {
		return true
	}
	for _, g := range e.ignore {
		if g.Match(name) {
			return true
		}
	}
	return false
}

func (e *Engine) normalizeName(name string) string {
	if e.normalize {
		return norm.NFC.String(name)
	}
	return name
}

// Resolve computes where filename would go without moving anything or
// creating directories. The bool is false when no mapping matches.
func (e *Engine) Resolve(filename string) (types.ResolvedMove, bool, error) {
	name := e.normalizeName(filepath.Base(filename))
	m, ok := e.Match(name)
	if !ok {
		return types.ResolvedMove{}, false, nil
	}

	move, err := resolveMove(types.FileCandidate{Name: name, Path: filename}, m, true)
	if err != nil {
		return move, true, wrap(m, name, err)
	}
	return move, true, nil
}

// resolveMove runs the directory resolver and the naming chain for a file
// already matched to m.
func resolveMove(file types.FileCandidate, m *types.Mapping, dryRun bool) (types.ResolvedMove, error) {
	move := types.ResolvedMove{SourcePath: file.Path, Mapping: m.Title, Copy: m.Copy}

	dir, err := resolve.Directory(m.Directory, file.Name, dryRun)
	if err != nil {
		return move, err
	}
	if m.Selector != nil {
		if dir, err = resolve.SelectFolder(dir, m.Selector); err != nil {
			return move, err
		}
	}

	var name string
	if m.Function != nil {
		name, err = transform.Apply(m.Function, dir, file.Name)
	} else {
		name, err = transform.DeriveName(file.Name, m.Source, m.Chain)
	}
	if err == nil {
		err = transform.CheckName(name)
	}
	if err != nil {
		return move, err
	}

	move.DestinationPath = filepath.Join(dir, name)
	return move, nil
}

func wrap(m *types.Mapping, file string, err error) error {
	var merr *errors.MappingError
	if errors.As(err, &merr) && merr.Mapping() != "" {
		return err
	}
	return errors.NewMappingError("cannot sort file", m.Title, file, errors.KindOf(err), err)
}

// ProcessAll sorts files one after another in the given order. Only files
// matched by a mapping produce a result; a failure on one file is recorded
// in its result and the rest are still processed.
func (e *Engine) ProcessAll(files []types.FileCandidate) []types.OrganizeResult {
	var results []types.OrganizeResult
	for _, file := range files {
		if result, matched := e.process(file); matched {
			results = append(results, result)
		}
	}
	return results
}

// ProcessFile sorts a single file by path. The bool is false when the file
// was ignored, unmatched or is not a regular file.
func (e *Engine) ProcessFile(path string) (types.OrganizeResult, bool) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		log.LogWithFields(log.F("path", path)).Debug("Not a regular file, skipping")
		return types.OrganizeResult{}, false
	}
	return e.process(types.NewFileCandidate(path))
}

// ProcessDirectory sorts the regular files directly inside directory.
func (e *Engine) ProcessDirectory(directory string) ([]types.OrganizeResult, error) {
	dirInfo, err := os.Stat(directory)
	if err != nil {
		return nil, errors.NewFileError("error accessing directory", directory, errors.DirectoryNotFound, err)
	}
	if !dirInfo.IsDir() {
		return nil, errors.NewFileError("path is not a directory", directory, errors.DirectoryNotFound, nil)
	}

	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil, errors.NewFileError("error reading directory", directory, errors.DirectoryNotFound, err)
	}

	files := make([]types.FileCandidate, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		files = append(files, types.FileCandidate{
			Name: entry.Name(),
			Path: filepath.Join(directory, entry.Name()),
		})
	}

	log.LogWithFields(log.F("directory", directory), log.F("files", len(files))).Debug("Scanning download directory")
	return e.ProcessAll(files), nil
}

func (e *Engine) process(file types.FileCandidate) (types.OrganizeResult, bool) {
	if e.Ignored(file.Name) {
		log.LogWithFields(log.F("file", file.Name)).Debug("Ignoring file")
		return types.OrganizeResult{}, false
	}

	name := e.normalizeName(file.Name)
	m, ok := e.Match(name)
	if !ok {
		l := log.LogWithFields(log.F("file", file.Name))
		if e.reportUnmatched {
			l.Info("No mapping matches file")
		} else {
			l.Debug("No mapping matches file")
		}
		return types.OrganizeResult{}, false
	}

	log.LogWithFields(log.F("mapping", m.Title), log.F("file", file.Name)).Info("Applying setup for " + m.Title)

	move, err := resolveMove(types.FileCandidate{Name: name, Path: file.Path}, m, e.dryRun)
	if err != nil {
		return e.fail(types.OrganizeResult{ResolvedMove: move}, m, name, err), true
	}

	if newName := filepath.Base(move.DestinationPath); newName != file.Name {
		log.LogWithFields(log.F("mapping", m.Title)).Info("New filename: " + newName)
	}

	result := e.MoveFile(move)
	if result.Error != nil {
		return e.fail(result, m, name, result.Error), true
	}
	return result, true
}

func (e *Engine) fail(result types.OrganizeResult, m *types.Mapping, file string, err error) types.OrganizeResult {
	result.Error = wrap(m, file, err)
	result.Moved = false
	log.LogWithError(result.Error).Error("Failed to sort file")
	return result
}

// MoveFile carries out a resolved move, or a copy when the move asks for
// one, applying the collision policy. In dry run mode the outcome is only
// logged.
func (e *Engine) MoveFile(move types.ResolvedMove) types.OrganizeResult {
	result := types.OrganizeResult{ResolvedMove: move}

	cleanSrc := filepath.Clean(move.SourcePath)
	cleanDest := filepath.Clean(move.DestinationPath)

	if cleanSrc == cleanDest {
		log.LogWithFields(log.F("path", cleanSrc)).Debug("Source and destination are the same, skipping")
		result.Skipped = true
		return result
	}

	srcInfo, err := os.Stat(cleanSrc)
	if err != nil {
		result.Error = errors.NewFileError("source file error", cleanSrc, errors.MoveFailed, err)
		return result
	}
	if srcInfo.IsDir() {
		result.Error = errors.NewFileError("cannot move directory as file", cleanSrc, errors.MoveFailed, nil)
		return result
	}

	finalDest, err := e.handleCollision(cleanSrc, cleanDest)
	if err != nil {
		result.Error = err
		return result
	}
	if finalDest == "" {
		result.Skipped = true
		return result
	}
	result.DestinationPath = finalDest

	verb := "move"
	if move.Copy {
		verb = "copy"
	}
	fields := []log.Field{log.F("from", cleanSrc), log.F("to", finalDest)}

	if e.dryRun {
		log.LogWithFields(fields...).Info("Would " + verb)
		return result
	}

	if move.Copy {
		err = fileutil.CopyFile(cleanSrc, finalDest)
	} else {
		err = fileutil.MoveFile(cleanSrc, finalDest)
	}
	if err != nil {
		log.LogWithFields(append(fields,
			log.F("source_exists", exists(cleanSrc)),
			log.F("destination_exists", exists(finalDest)))...).
			WithError(err).Debug("State after failed " + verb)
		result.Error = errors.NewFileError("failed to "+verb+" file", cleanSrc, errors.MoveFailed, err)
		return result
	}

	result.Moved = true
	if move.Copy {
		log.LogWithFields(fields...).Info("Copied")
	} else {
		log.LogWithFields(fields...).Info("Moved")
	}
	return result
}

// handleCollision implements collision resolution strategies.
// It returns the final destination path, or an empty string when the file
// should be skipped.
func (e *Engine) handleCollision(src, dest string) (string, error) {
	_, err := os.Stat(dest)
	if os.IsNotExist(err) {
		return dest, nil
	}
	if err != nil {
		return "", errors.NewFileError("error checking destination", dest, errors.MoveFailed, err)
	}

	l := log.LogWithFields(log.F("destination", dest), log.F("strategy", string(e.collision)))
	switch e.collision {
	case types.CollisionSkip:
		l.Info("Destination exists, skipping " + filepath.Base(src))
		return "", nil

	case types.CollisionRename:
		return findUniqueDestName(dest)

	default:
		l.Warn("Destination exists, overwriting")
		return dest, nil
	}
}

// findUniqueDestName finds a unique filename by adding counter to the basename
func findUniqueDestName(originalPath string) (string, error) {
	ext := filepath.Ext(originalPath)
	base := strings.TrimSuffix(originalPath, ext)

	for counter := 1; counter <= 1000; counter++ {
		newName := fmt.Sprintf("%s_(%d)%s", base, counter, ext)
		if _, err := os.Stat(newName); os.IsNotExist(err) {
			log.LogWithFields(log.F("destination", newName)).Info("Destination exists, renaming")
			return newName, nil
		}
	}

	return "", errors.NewFileError("no free name after 1000 attempts", originalPath, errors.MoveFailed, nil)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Summary counts the outcomes of a run.
type Summary struct {
	Matched int
	Moved   int
	Skipped int
	Failed  int
}

// Summarize tallies results.
func Summarize(results []types.OrganizeResult) Summary {
	s := Summary{Matched: len(results)}
	for _, r := range results {
		switch {
		case r.Error != nil:
			s.Failed++
		case r.Skipped:
			s.Skipped++
		case r.Moved:
			s.Moved++
		}
	}
	return s
}
