package decoders

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Aleph-Alpha/brokerlens/v1/codec"
)

// compile builds the entry for path. It never fails: every problem ends up
// in the entry's CompiledSchema.
func (r *Registry) compile(topic, path string, c *chain) *Entry {
	start := time.Now()

	var modTime time.Time
	if info, err := os.Stat(path); err == nil {
		modTime = info.ModTime()
	}

	raw, readErr := os.ReadFile(path)
	var schema CompiledSchema
	if readErr != nil {
		schema = Failed(filepath.Base(path), fmt.Errorf("read %s: %w", path, readErr), "")
	} else {
		schema = r.compileSchema(path, raw, c)
	}

	entry := &Entry{
		Topic:        topic,
		Name:         entryName(path, raw),
		Path:         path,
		LastModified: modTime,
		Schema:       schema,
	}

	fields := map[string]interface{}{
		"topic": topic,
		"path":  path,
		"name":  entry.Name,
	}
	outcome := "success"
	if schema.OK() {
		fields["scheme"] = codec.SchemeNameOf(schema.Decoder)
		r.logger.Debug("compiled decoder", nil, fields)
	} else {
		outcome = "failure"
		r.logger.Warn("decoder failed to compile", schema.Err, fields)
	}
	r.observe("compile", path, topic, time.Since(start), schema.Err, int64(len(raw)),
		map[string]interface{}{"outcome": outcome})

	return entry
}

// compileSchema dispatches on the file extension and turns any error or
// panic into a failed CompiledSchema.
func (r *Registry) compileSchema(path string, raw []byte, c *chain) (cs CompiledSchema) {
	label := filepath.Base(path)
	text := string(raw)

	defer func() {
		if p := recover(); p != nil {
			cs = Failed(label, fmt.Errorf("%w: %v", ErrCompilePanic, p), text)
		}
	}()

	if kind, ok := codec.SchemaKindForFile(path); ok {
		if r.compiler == nil {
			return Failed(label, ErrNoSchemaCompiler, text)
		}
		dec, err := r.compiler.Compile(kind, text)
		if err != nil {
			return Failed(label, err, text)
		}
		return Succeeded(label, dec, text)
	}

	if isDescriptor(path) {
		return r.compileDescriptor(label, path, raw, c)
	}

	return Failed(label, ErrFileNotSupported, text)
}

func (r *Registry) compileDescriptor(label, path string, raw []byte, c *chain) CompiledSchema {
	text := string(raw)
	if r.resolver == nil {
		return Failed(label, ErrNoResolver, text)
	}
	desc, err := ParseDescriptor(raw)
	if err != nil {
		return Failed(label, err, text)
	}

	if c == nil {
		c = &chain{visiting: make(map[string]struct{})}
	}
	c.visiting[path] = struct{}{}
	defer delete(c.visiting, path)

	dec, err := r.resolver.ResolveDecoder(desc.Type, chainLookup{r: r, c: c})
	if err != nil {
		return Failed(label, err, text)
	}
	if dec == nil {
		return Failed(label, ErrFileNotSupported, text)
	}
	return Succeeded(label, dec, text)
}
