package decoders

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Aleph-Alpha/brokerlens/v1/codec"
	"github.com/Aleph-Alpha/brokerlens/v1/observability"
	"golang.org/x/sync/singleflight"
)

// Registry discovers schema files under <PrefsRoot>/decoders/<topic>/,
// compiles each one at most once per process and serves the cached
// entries. It is safe for concurrent use.
//
// Entries are write-once: a file edited after its first compilation keeps
// its original entry, including the original LastModified, until the
// process restarts.
type Registry struct {
	root     string
	resolver DecoderResolver
	compiler codec.SchemaCompiler
	logger   Logger
	observer observability.Observer

	// entries maps canonical path to *Entry. Reads of installed entries
	// take no lock.
	entries sync.Map
	flights singleflight.Group

	// descriptorMu is held by the outermost compilation of a descriptor
	// file. Descriptors can reach back into the registry through
	// decoder:<name>, so all of them are compiled by one chain at a time.
	descriptorMu sync.Mutex
}

// chain tracks the files being compiled by one descriptor resolution so a
// descriptor that refers to itself, directly or indirectly, is a miss.
type chain struct {
	visiting map[string]struct{}
}

// NewRegistry returns a registry rooted at <cfg.PrefsRoot>/decoders.
// Nothing is read from disk until the first lookup.
//
// Parameters:
//   - cfg: PrefsRoot is required
//   - resolver: resolves the type URLs of .js descriptor files; nil records
//     every descriptor as a failure
//   - compiler: compiles .avsc and .avdl files; nil records those files as
//     failures with ErrNoSchemaCompiler
//
// Returns:
//   - *Registry: ready for concurrent use
//   - error: when cfg.PrefsRoot is empty
//
// Example:
//
//	resolver, _ := codec.NewResolver(codec.Config{}, schema.NewGoAvroCompiler())
//	registry, err := decoders.NewRegistry(decoders.Config{PrefsRoot: root}, resolver, schema.NewGoAvroCompiler())
//	if err != nil {
//	    return err
//	}
//	for _, e := range registry.DecodersForTopic("orders") {
//	    fmt.Println(e.Name, e.Schema.OK())
//	}
func NewRegistry(cfg Config, resolver DecoderResolver, compiler codec.SchemaCompiler) (*Registry, error) {
	if cfg.PrefsRoot == "" {
		return nil, fmt.Errorf("decoders: prefs root is required")
	}
	root, err := filepath.Abs(filepath.Join(cfg.PrefsRoot, DecodersDir))
	if err != nil {
		return nil, fmt.Errorf("decoders: resolve root: %w", err)
	}
	return &Registry{
		root:     root,
		resolver: resolver,
		compiler: compiler,
		logger:   nopLogger{},
	}, nil
}

// WithLogger sets the logger and returns r for chaining.
func (r *Registry) WithLogger(l Logger) *Registry {
	if l != nil {
		r.logger = l
	}
	return r
}

// WithObserver sets the observer and returns r for chaining.
func (r *Registry) WithObserver(o observability.Observer) *Registry {
	r.observer = o
	return r
}

// Root returns the absolute decoder root directory.
func (r *Registry) Root() string {
	return r.root
}

// GetOrCompile returns the entry for file, compiling it first if no entry
// exists yet. Concurrent callers for the same uncompiled file share a
// single compilation. Compilation failures are recorded in the entry and
// never returned as errors.
func (r *Registry) GetOrCompile(topic, file string) *Entry {
	return r.getOrCompile(topic, file, nil)
}

func (r *Registry) getOrCompile(topic, file string, c *chain) *Entry {
	path := canonicalPath(file)
	if e, ok := r.entries.Load(path); ok {
		r.observe("cache_hit", path, topic, 0, nil, 0, nil)
		return e.(*Entry)
	}

	if isDescriptor(path) && c == nil {
		r.descriptorMu.Lock()
		defer r.descriptorMu.Unlock()
		c = &chain{visiting: make(map[string]struct{})}
	}

	v, _, _ := r.flights.Do(path, func() (interface{}, error) {
		if e, ok := r.entries.Load(path); ok {
			return e, nil
		}
		e, _ := r.entries.LoadOrStore(path, r.compile(topic, path, c))
		return e, nil
	})
	return v.(*Entry)
}

// DecodersForTopic returns the entries for every file directly under the
// topic directory, most recently modified first. Files with equal
// modification times keep directory order. The topic directory is created
// when missing.
func (r *Registry) DecodersForTopic(topic string) []*Entry {
	files := r.topicFiles(topic)
	entries := make([]*Entry, 0, len(files))
	for _, f := range files {
		entries = append(entries, r.getOrCompile(topic, f, nil))
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].LastModified.After(entries[j].LastModified)
	})
	return entries
}

// AllDecoders concatenates DecodersForTopic for every topic directory, in
// directory order.
func (r *Registry) AllDecoders() []*Entry {
	var all []*Entry
	for _, topic := range r.Topics() {
		all = append(all, r.DecodersForTopic(topic)...)
	}
	return all
}

// Topics lists the topic directories under the root.
func (r *Registry) Topics() []string {
	if !r.ensureDir(r.root) {
		return nil
	}
	dirents, err := os.ReadDir(r.root)
	if err != nil {
		r.logger.Warn("failed to list decoder root", err, map[string]interface{}{"root": r.root})
		return nil
	}
	var topics []string
	for _, d := range dirents {
		if d.IsDir() && !strings.HasPrefix(d.Name(), ".") {
			topics = append(topics, d.Name())
		}
	}
	return topics
}

// LookupDecoder finds the decoder named name across all topics, in
// AllDecoders order, compiling only the file that matches. It implements
// codec.DecoderLookup.
func (r *Registry) LookupDecoder(name string) (codec.Decoder, bool, error) {
	return r.lookup(name, nil)
}

type chainLookup struct {
	r *Registry
	c *chain
}

func (l chainLookup) LookupDecoder(name string) (codec.Decoder, bool, error) {
	return l.r.lookup(name, l.c)
}

func (r *Registry) lookup(name string, c *chain) (codec.Decoder, bool, error) {
	for _, topic := range r.Topics() {
		for _, cand := range r.namedFiles(topic) {
			if cand.name != name {
				continue
			}
			if c != nil {
				if _, busy := c.visiting[cand.path]; busy {
					continue
				}
			}
			e := r.getOrCompile(topic, cand.path, c)
			if !e.Schema.OK() {
				return nil, true, e.Schema.Err
			}
			return e.Schema.Decoder, true, nil
		}
	}
	return nil, false, nil
}

type namedFile struct {
	path    string
	name    string
	modTime time.Time
}

// namedFiles lists a topic's files with their registry names, newest first,
// without compiling anything. Installed entries report their stored name
// and modification time.
func (r *Registry) namedFiles(topic string) []namedFile {
	files := r.topicFiles(topic)
	out := make([]namedFile, 0, len(files))
	for _, f := range files {
		path := canonicalPath(f)
		if e, ok := r.entries.Load(path); ok {
			entry := e.(*Entry)
			out = append(out, namedFile{path: path, name: entry.Name, modTime: entry.LastModified})
			continue
		}
		var modTime time.Time
		if info, err := os.Stat(path); err == nil {
			modTime = info.ModTime()
		}
		var raw []byte
		if isDescriptor(path) {
			raw, _ = os.ReadFile(path)
		}
		out = append(out, namedFile{path: path, name: entryName(path, raw), modTime: modTime})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].modTime.After(out[j].modTime)
	})
	return out
}

// topicFiles returns the paths of regular, non-hidden files in the topic
// directory, creating the directory if needed.
func (r *Registry) topicFiles(topic string) []string {
	if !validTopic(topic) {
		r.logger.Warn("ignoring invalid topic name", nil, map[string]interface{}{"topic": topic})
		return nil
	}
	dir := filepath.Join(r.root, topic)
	if !r.ensureDir(dir) {
		return nil
	}
	dirents, err := os.ReadDir(dir)
	if err != nil {
		r.logger.Warn("failed to list topic directory", err, map[string]interface{}{"dir": dir})
		return nil
	}
	files := make([]string, 0, len(dirents))
	for _, d := range dirents {
		if d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			continue
		}
		files = append(files, filepath.Join(dir, d.Name()))
	}
	return files
}

func (r *Registry) ensureDir(dir string) bool {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		r.logger.Warn("failed to create decoder directory", err, map[string]interface{}{"dir": dir})
		return false
	}
	return true
}

func validTopic(topic string) bool {
	return topic != "" && topic != "." && topic != ".." &&
		!strings.ContainsAny(topic, `/\`)
}

// canonicalPath resolves file to an absolute path with symlinks evaluated,
// falling back to the cleaned absolute path when that fails.
func canonicalPath(file string) string {
	abs, err := filepath.Abs(file)
	if err != nil {
		return filepath.Clean(file)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
