// Package knowledge builds the package mapping table from the embedded
// library, enterprise overlays and the user knowledge layer.
package knowledge

import (
	_ "embed"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/lcr/internal/adapters/atomicfile"
	"go.trai.ch/lcr/internal/core/domain"
	"go.trai.ch/lcr/internal/core/ports"
	"go.trai.ch/zerr"
)

//go:embed library.json
var libraryJSON []byte

// Base implements ports.KnowledgeBase.
type Base struct {
	logger   ports.Logger
	userPath string

	mu    sync.RWMutex
	tree  map[string]any
	table domain.MappingTable
}

// Options locate the layers merged over the embedded library, lowest
// priority first.
type Options struct {
	// Overlays are enterprise.json candidates; missing files are skipped.
	Overlays []string

	// UserPath is the user knowledge file, read last and written by
	// SaveUserKnowledge.
	UserPath string
}

// OverlayPaths returns the enterprise overlay candidates: the one in the
// user's home directory, then the one in the working directory.
func OverlayPaths(home, cwd string) []string {
	var paths []string
	if home != "" {
		paths = append(paths, filepath.Join(home, domain.LcrDirName, domain.OverlayFileName))
	}
	if cwd != "" {
		paths = append(paths, filepath.Join(cwd, domain.OverlayFileName))
	}
	return paths
}

// New loads every layer and returns the merged knowledge base. Unreadable or
// invalid overlays are skipped with a warning; only a broken embedded library
// is an error.
func New(logger ports.Logger, opts Options) (*Base, error) {
	var tree map[string]any
	if err := json.Unmarshal(libraryJSON, &tree); err != nil {
		return nil, zerr.Wrap(err, domain.ErrMappingTableInvalid.Error())
	}

	b := &Base{logger: logger, userPath: opts.UserPath}

	table, err := decodeTable(tree)
	if err != nil {
		return nil, err
	}

	for _, path := range opts.Overlays {
		overlay, ok := b.readLayer(path)
		if !ok {
			continue
		}
		merged, _ := DeepMerge(tree, overlay).(map[string]any)
		tree, table = b.accept(path, tree, table, merged)
	}

	if opts.UserPath != "" {
		if user, ok := b.readLayer(opts.UserPath); ok {
			tree, table = b.accept(opts.UserPath, tree, table, mergeUser(tree, user))
		}
	}

	b.tree = tree
	b.table = table
	return b, nil
}

// accept returns the candidate tree when it decodes into a mapping table.
// Otherwise the layer at path is skipped with a warning and the previous
// tree is kept.
func (b *Base) accept(
	path string,
	prev map[string]any,
	prevTable domain.MappingTable,
	candidate map[string]any,
) (map[string]any, domain.MappingTable) {
	table, err := decodeTable(candidate)
	if err != nil {
		b.logger.Warn("invalid mapping table in knowledge layer " + path + "; skipped: " + err.Error())
		return prev, prevTable
	}
	return candidate, table
}

// Table returns the merged mapping table. The returned table is never
// modified by the knowledge base.
func (b *Base) Table() domain.MappingTable {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.table
}

// SaveUserKnowledge stores mapping under the normalized form of name in the
// user layer and merges it into the live table.
func (b *Base) SaveUserKnowledge(name string, mapping domain.PackageMapping) error {
	key := domain.NormalizeName(name)
	if key == "" || b.userPath == "" {
		return zerr.With(domain.ErrKnowledgeWriteFailed, "name", name)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	user, ok := b.readLayer(b.userPath)
	if !ok {
		user = map[string]any{}
	}

	entry := map[string]any{
		"pip": stringsToAny(mapping.Pip),
		"apt": stringsToAny(mapping.Apt),
	}
	user[key] = entry

	data, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrKnowledgeWriteFailed.Error())
	}
	if err := atomicfile.Write(b.userPath, append(data, '\n'), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrKnowledgeWriteFailed.Error()), "path", b.userPath)
	}

	return b.replaceLocked(mergeUser(b.tree, map[string]any{key: entry}))
}

// readLayer decodes a JSON object file. It reports false when the file is
// missing or unusable; the latter is logged.
func (b *Base) readLayer(path string) (map[string]any, bool) {
	//nolint:gosec // path comes from configuration
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			b.logger.Warn("cannot read knowledge layer " + path + ": " + err.Error())
		}
		return nil, false
	}

	var layer map[string]any
	if err := json.Unmarshal(data, &layer); err != nil || layer == nil {
		b.logger.Warn("invalid JSON in knowledge layer " + path + "; skipped")
		return nil, false
	}
	return layer, true
}

// replaceLocked must be called with mu held.
func (b *Base) replaceLocked(tree map[string]any) error {
	table, err := decodeTable(tree)
	if err != nil {
		return err
	}
	b.tree = tree
	b.table = table
	return nil
}

func decodeTable(tree map[string]any) (domain.MappingTable, error) {
	data, err := json.Marshal(tree)
	if err != nil {
		return domain.MappingTable{}, zerr.Wrap(err, domain.ErrMappingTableInvalid.Error())
	}

	var table domain.MappingTable
	if err := json.Unmarshal(data, &table); err != nil {
		return domain.MappingTable{}, zerr.Wrap(err, domain.ErrMappingTableInvalid.Error())
	}
	return table, nil
}

// mergeUser merges the user layer, tagging each package entry with its source.
// The user layer's metadata is merged untagged.
func mergeUser(tree, user map[string]any) map[string]any {
	tagged := make(map[string]any, len(user))
	for k, v := range user {
		entry, ok := v.(map[string]any)
		if !ok || k == domain.MetaKey {
			tagged[k] = v
			continue
		}
		withSource := make(map[string]any, len(entry)+1)
		for ek, ev := range entry {
			withSource[ek] = ev
		}
		withSource["_source"] = domain.UserKnowledgeSource
		tagged[k] = withSource
	}

	merged, _ := DeepMerge(tree, tagged).(map[string]any)
	return merged
}

func stringsToAny(items []string) []any {
	out := make([]any, len(items))
	for i, s := range items {
		out[i] = s
	}
	return out
}
