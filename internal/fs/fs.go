// Package fs is the CLI's file-system boundary: it captures snapshots of
// referenced files before a session starts and writes committed contents
// back afterwards. The engine itself never touches disk.
package fs

import (
	"fmt"
	"os"
	"path/filepath"

	"editflow/model"
	"editflow/session"
)

// PathResolver finds absolute paths for files named in AI output.
type PathResolver struct {
	lookupDirs []string
}

// NewPathResolver creates a resolver over the given directories, defaulting
// to the current working directory.
func NewPathResolver(lookupDirs []string) (*PathResolver, error) {
	if len(lookupDirs) == 0 {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("could not get current working directory: %w", err)
		}
		return &PathResolver{lookupDirs: []string{wd}}, nil
	}

	absDirs := make([]string, 0, len(lookupDirs))
	for _, dir := range lookupDirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("invalid lookup directory %q: %w", dir, err)
		}
		absDirs = append(absDirs, abs)
	}
	return &PathResolver{lookupDirs: absDirs}, nil
}

// ResolveExisting returns the absolute path of a referenced file, or ""
// when it exists in none of the lookup directories.
func (r *PathResolver) ResolveExisting(relativePath string) string {
	for _, dir := range r.lookupDirs {
		absPath := filepath.Join(dir, relativePath)
		if _, err := os.Stat(absPath); err == nil {
			return absPath
		}
	}
	return ""
}

// LoadSnapshots reads every referenced file that exists and captures it as
// a session snapshot, keyed by the path as it appeared in the AI output.
// Missing files are skipped; the parser will report them per edit.
func (r *PathResolver) LoadSnapshots(paths []string) ([]model.FileSnapshot, error) {
	var snapshots []model.FileSnapshot
	for _, p := range paths {
		abs := r.ResolveExisting(p)
		if abs == "" {
			continue
		}
		data, err := os.ReadFile(abs)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", abs, err)
		}
		snapshots = append(snapshots, model.FileSnapshot{
			Path:     p,
			Content:  string(data),
			Language: languageForPath(p),
		})
	}
	return snapshots, nil
}

// WriteChanges writes committed contents back to disk and reports which
// paths succeeded and which failed.
func (r *PathResolver) WriteChanges(changes []session.AppliedChange) (written, failed []string) {
	for _, c := range changes {
		abs := r.ResolveExisting(c.FilePath)
		if abs == "" {
			failed = append(failed, c.FilePath)
			continue
		}
		if err := os.WriteFile(abs, []byte(c.NewContent), 0644); err != nil {
			failed = append(failed, c.FilePath)
			continue
		}
		written = append(written, c.FilePath)
	}
	return written, failed
}

// WriteContents writes restored undo/redo contents back to disk.
func (r *PathResolver) WriteContents(contents map[string]string) (written, failed []string) {
	changes := make([]session.AppliedChange, 0, len(contents))
	for path, content := range contents {
		changes = append(changes, session.AppliedChange{FilePath: path, NewContent: content})
	}
	return r.WriteChanges(changes)
}

// languageForPath guesses a language tag from the file extension, for
// display purposes only.
func languageForPath(path string) string {
	switch filepath.Ext(path) {
	case ".go":
		return "go"
	case ".py":
		return "python"
	case ".js", ".mjs":
		return "javascript"
	case ".ts", ".tsx":
		return "typescript"
	case ".rs":
		return "rust"
	case ".rb":
		return "ruby"
	case ".java":
		return "java"
	case ".c", ".h":
		return "c"
	case ".cc", ".cpp", ".hpp":
		return "cpp"
	case ".sh":
		return "shell"
	case ".md":
		return "markdown"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}
