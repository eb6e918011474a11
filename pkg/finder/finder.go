package finder

import (
	"bytes"
	"context"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/editorconfig/editorconfig-core-go/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// EditorconfigName is read from the root of the searched filesystem.
const EditorconfigName = ".editorconfig"

// TextFinder is responsible for finding the text files to check
type TextFinder interface {
	// FindText returns the files under the root that match any of the globs
	FindText(ctx context.Context, patterns []string) ([]string, error)
}

// GlobFinder matches doublestar globs against an afero filesystem. Paths are
// slash separated and relative to the filesystem root.
type GlobFinder struct {
	fs           afero.Fs
	editorconfig bool
}

var _ TextFinder = (*GlobFinder)(nil)

// NewGlobFinder creates a GlobFinder rooted at fsys. When editorconfig is
// set, files whose .editorconfig charset is not UTF-8 are left out.
func NewGlobFinder(fsys afero.Fs, editorconfig bool) *GlobFinder {
	return &GlobFinder{fs: fsys, editorconfig: editorconfig}
}

// FindText implements TextFinder. Matches are deduplicated and sorted;
// directories and the .editorconfig file itself are never returned.
func (f *GlobFinder) FindText(ctx context.Context, patterns []string) ([]string, error) {
	iofs := afero.NewIOFS(f.fs)
	seen := map[string]bool{}
	var files []string

	for _, pattern := range patterns {
		if err := ctx.Err(); err != nil {
			return nil, errors.WithStack(err)
		}

		pattern = strings.TrimPrefix(pattern, "./")
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid glob %q", pattern)
		}

		matches, err := doublestar.Glob(iofs, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("globbing %q: %w", pattern, err)
		}

		for _, m := range matches {
			if seen[m] || path.Base(m) == EditorconfigName {
				continue
			}
			seen[m] = true
			files = append(files, m)
		}
	}

	sort.Strings(files)

	if !f.editorconfig {
		return files, nil
	}

	ec, err := f.loadEditorconfig()
	if err != nil {
		return nil, err
	}
	if ec == nil {
		return files, nil
	}

	kept := files[:0]
	for _, file := range files {
		def, err := ec.GetDefinitionForFilename(file)
		if err != nil {
			return nil, errors.Errorf("matching %s against %s: %w", file, EditorconfigName, err)
		}
		if !IsUTF8Charset(def.Charset) {
			zerolog.Ctx(ctx).Debug().Str("file", file).Str("charset", def.Charset).Msg("skipping non utf-8 file")
			continue
		}
		kept = append(kept, file)
	}

	return kept, nil
}

func (f *GlobFinder) loadEditorconfig() (*editorconfig.Editorconfig, error) {
	ok, err := afero.Exists(f.fs, EditorconfigName)
	if err != nil {
		return nil, errors.Errorf("checking for %s: %w", EditorconfigName, err)
	}
	if !ok {
		return nil, nil
	}

	data, err := afero.ReadFile(f.fs, EditorconfigName)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", EditorconfigName, err)
	}

	ec, err := editorconfig.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Errorf("parsing %s: %w", EditorconfigName, err)
	}
	return ec, nil
}

// IsUTF8Charset reports whether an editorconfig charset value declares UTF-8.
// An unset charset counts as UTF-8.
func IsUTF8Charset(charset string) bool {
	switch strings.ToLower(charset) {
	case "", "utf-8", "utf-8-bom":
		return true
	}
	return false
}
