package decoders

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Aleph-Alpha/brokerlens/v1/codec"
	"github.com/Aleph-Alpha/brokerlens/v1/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeDecoder struct{ schema string }

func (fakeDecoder) Scheme() codec.Scheme               { return codec.SchemeAvro }
func (fakeDecoder) Decode(payload []byte) (any, error) { return payload, nil }

// countingCompiler compiles anything that does not contain "broken" and
// counts its calls. delay widens the window for concurrent callers.
type countingCompiler struct {
	calls atomic.Int32
	delay time.Duration
	panic bool
}

func (c *countingCompiler) Compile(kind codec.SchemaKind, schema string) (codec.Decoder, error) {
	c.calls.Add(1)
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	if c.panic {
		panic("boom")
	}
	if strings.Contains(schema, "broken") {
		return nil, errors.New("unexpected token near 'broken'")
	}
	return fakeDecoder{schema: schema}, nil
}

type fixture struct {
	prefs    string
	compiler *countingCompiler
	registry *Registry
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	prefs := t.TempDir()
	compiler := &countingCompiler{}
	resolver, err := codec.NewResolver(codec.Config{}, compiler)
	require.NoError(t, err)
	r, err := NewRegistry(Config{PrefsRoot: prefs}, resolver, compiler)
	require.NoError(t, err)
	return &fixture{prefs: prefs, compiler: compiler, registry: r}
}

// write creates decoders/<topic>/<name> with body and, when mtime is
// non-zero, sets its modification time to that many Unix seconds.
func (f *fixture) write(t *testing.T, topic, name, body string, mtime int64) string {
	t.Helper()
	dir := filepath.Join(f.prefs, DecodersDir, topic)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	if mtime != 0 {
		ts := time.Unix(mtime, 0)
		require.NoError(t, os.Chtimes(path, ts, ts))
	}
	return path
}

func labels(entries []*Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Schema.Label
	}
	return out
}

const recordSchema = `{"type":"record","name":"Order","fields":[{"name":"id","type":"long"}]}`

func TestNewRegistryRequiresPrefsRoot(t *testing.T) {
	_, err := NewRegistry(Config{}, nil, nil)
	assert.Error(t, err)
}

func TestDecodersForTopicNewestFirst(t *testing.T) {
	f := newFixture(t)
	f.write(t, "orders", "a.avsc", recordSchema, 100)
	f.write(t, "orders", "b.avsc", recordSchema, 300)
	f.write(t, "orders", "c.avsc", recordSchema, 200)

	entries := f.registry.DecodersForTopic("orders")

	require.Len(t, entries, 3)
	assert.Equal(t, []string{"b.avsc", "c.avsc", "a.avsc"}, labels(entries))
	assert.Equal(t, int64(300), entries[0].LastModified.Unix())
	assert.Equal(t, int64(200), entries[1].LastModified.Unix())
	assert.Equal(t, int64(100), entries[2].LastModified.Unix())
	for _, e := range entries {
		assert.Equal(t, "orders", e.Topic)
		assert.True(t, e.Schema.OK())
	}
}

func TestDecodersForTopicCreatesDirectories(t *testing.T) {
	f := newFixture(t)

	entries := f.registry.DecodersForTopic("fresh")

	assert.Empty(t, entries)
	info, err := os.Stat(filepath.Join(f.prefs, DecodersDir, "fresh"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestDecodersForTopicSkipsDirectoriesAndHiddenFiles(t *testing.T) {
	f := newFixture(t)
	f.write(t, "orders", "a.avsc", recordSchema, 100)
	f.write(t, "orders", ".swap.avsc", recordSchema, 100)
	require.NoError(t, os.MkdirAll(filepath.Join(f.prefs, DecodersDir, "orders", "nested"), 0o755))

	entries := f.registry.DecodersForTopic("orders")

	assert.Equal(t, []string{"a.avsc"}, labels(entries))
}

func TestDecodersForTopicRejectsInvalidTopic(t *testing.T) {
	f := newFixture(t)

	assert.Empty(t, f.registry.DecodersForTopic("../outside"))
	assert.Empty(t, f.registry.DecodersForTopic(""))
}

func TestCacheIsNotInvalidatedByEdits(t *testing.T) {
	f := newFixture(t)
	path := f.write(t, "orders", "a.avsc", recordSchema, 100)

	first := f.registry.GetOrCompile("orders", path)
	require.True(t, first.Schema.OK())

	f.write(t, "orders", "a.avsc", `{"type":"string"}`, 500)
	second := f.registry.GetOrCompile("orders", path)

	assert.Same(t, first, second)
	assert.Equal(t, recordSchema, second.Schema.SchemaString)
	assert.Equal(t, int64(100), second.LastModified.Unix())
	assert.EqualValues(t, 1, f.compiler.calls.Load())

	listed := f.registry.DecodersForTopic("orders")
	require.Len(t, listed, 1)
	assert.Same(t, first, listed[0])
}

func TestConcurrentCallersCompileOnce(t *testing.T) {
	f := newFixture(t)
	f.compiler.delay = 50 * time.Millisecond
	path := f.write(t, "orders", "a.avsc", recordSchema, 100)

	const callers = 32
	results := make([]*Entry, callers)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			results[i] = f.registry.GetOrCompile("orders", path)
		}(i)
	}
	close(start)
	wg.Wait()

	assert.EqualValues(t, 1, f.compiler.calls.Load())
	for _, e := range results {
		assert.Same(t, results[0], e)
	}
}

func TestConcurrentDescriptorCallersCompileOnce(t *testing.T) {
	f := newFixture(t)
	f.compiler.delay = 50 * time.Millisecond
	path := f.write(t, "events", "inline.js", `{"name":"inline","type":"avro:{\"type\":\"string\"}"}`, 100)

	const callers = 32
	results := make([]*Entry, callers)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			results[i] = f.registry.GetOrCompile("events", path)
		}(i)
	}
	close(start)
	wg.Wait()

	assert.EqualValues(t, 1, f.compiler.calls.Load())
	require.True(t, results[0].Schema.OK(), "%v", results[0].Schema.Err)
	for _, e := range results {
		assert.Same(t, results[0], e)
	}
}

func TestConcurrentNamedDescriptorLookupsCompileOnce(t *testing.T) {
	f := newFixture(t)
	f.compiler.delay = 20 * time.Millisecond
	f.write(t, "orders", "orders.avsc", recordSchema, 100)
	alias := f.write(t, "audit", "alias.js", `{"name":"alias","type":"decoder:orders"}`, 100)

	const callers = 32
	var wg sync.WaitGroup
	start := make(chan struct{})
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			switch i % 3 {
			case 0:
				_, _, errs[i] = f.registry.LookupDecoder("alias")
			case 1:
				if e := f.registry.GetOrCompile("audit", alias); !e.Schema.OK() {
					errs[i] = e.Schema.Err
				}
			default:
				f.registry.DecodersForTopic("orders")
			}
		}(i)
	}
	close(start)
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	// orders.avsc is the only schema text that reaches the compiler.
	assert.EqualValues(t, 1, f.compiler.calls.Load())
}

func TestMalformedSchemaIsRecordedAsFailure(t *testing.T) {
	f := newFixture(t)
	f.write(t, "orders", "good.avsc", recordSchema, 200)
	f.write(t, "orders", "bad.avsc", `{"type": broken`, 100)

	entries := f.registry.DecodersForTopic("orders")

	require.Len(t, entries, 2)
	assert.True(t, entries[0].Schema.OK())

	bad := entries[1]
	assert.Equal(t, "bad.avsc", bad.Schema.Label)
	assert.False(t, bad.Schema.OK())
	assert.Nil(t, bad.Schema.Decoder)
	assert.Equal(t, `{"type": broken`, bad.Schema.SchemaString)
	assert.NotEmpty(t, bad.Schema.Err.Error())
}

func TestCompilePanicIsRecordedAsFailure(t *testing.T) {
	f := newFixture(t)
	f.compiler.panic = true
	path := f.write(t, "orders", "a.avsc", recordSchema, 100)

	e := f.registry.GetOrCompile("orders", path)

	assert.False(t, e.Schema.OK())
	assert.ErrorIs(t, e.Schema.Err, ErrCompilePanic)
	assert.Equal(t, recordSchema, e.Schema.SchemaString)
}

func TestUnsupportedExtension(t *testing.T) {
	f := newFixture(t)
	path := f.write(t, "orders", "notes.txt", "hello", 100)

	e := f.registry.GetOrCompile("orders", path)

	assert.False(t, e.Schema.OK())
	assert.True(t, IsFileNotSupportedError(e.Schema.Err))
	assert.Equal(t, "file is not supported", e.Schema.Err.Error())
	assert.Equal(t, "hello", e.Schema.SchemaString)
	assert.EqualValues(t, 0, f.compiler.calls.Load())
}

func TestMissingSchemaCompiler(t *testing.T) {
	prefs := t.TempDir()
	r, err := NewRegistry(Config{PrefsRoot: prefs}, nil, nil)
	require.NoError(t, err)
	dir := filepath.Join(prefs, DecodersDir, "orders")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.avsc"), []byte(recordSchema), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.js"), []byte(`{"type":"json"}`), 0o644))

	entries := r.DecodersForTopic("orders")

	require.Len(t, entries, 2)
	errs := map[string]error{}
	for _, e := range entries {
		errs[e.Schema.Label] = e.Schema.Err
	}
	assert.ErrorIs(t, errs["a.avsc"], ErrNoSchemaCompiler)
	assert.ErrorIs(t, errs["b.js"], ErrNoResolver)
}

func TestDescriptorDelegatesToCodecURL(t *testing.T) {
	f := newFixture(t)
	path := f.write(t, "events", "payload.js", `{"name":"events-json","type":"json"}`, 100)

	e := f.registry.GetOrCompile("events", path)

	require.True(t, e.Schema.OK(), "%v", e.Schema.Err)
	assert.Equal(t, "events-json", e.Name)
	assert.Equal(t, codec.SchemeJSON, e.Schema.Decoder.Scheme())
}

func TestDescriptorWithInlineAvro(t *testing.T) {
	f := newFixture(t)
	path := f.write(t, "events", "inline.js", `{"name":"inline","type":"avro:{\"type\":\"string\"}"}`, 100)

	e := f.registry.GetOrCompile("events", path)

	require.True(t, e.Schema.OK(), "%v", e.Schema.Err)
	assert.Equal(t, codec.SchemeAvro, e.Schema.Decoder.Scheme())
	assert.EqualValues(t, 1, f.compiler.calls.Load())
}

func TestDescriptorWithUnknownType(t *testing.T) {
	f := newFixture(t)
	path := f.write(t, "events", "odd.js", `{"name":"odd","type":"protobuf"}`, 100)

	e := f.registry.GetOrCompile("events", path)

	assert.False(t, e.Schema.OK())
	assert.True(t, IsFileNotSupportedError(e.Schema.Err))
}

func TestInvalidDescriptor(t *testing.T) {
	f := newFixture(t)
	notJSON := f.write(t, "events", "bad.js", `var x = 1;`, 100)
	noType := f.write(t, "events", "empty.js", `{"name":"empty"}`, 100)

	for _, path := range []string{notJSON, noType} {
		e := f.registry.GetOrCompile("events", path)
		assert.False(t, e.Schema.OK(), path)
		assert.ErrorIs(t, e.Schema.Err, ErrInvalidDescriptor, path)
	}
}

func TestDescriptorReferencingNamedDecoder(t *testing.T) {
	f := newFixture(t)
	f.write(t, "orders", "orders.avsc", recordSchema, 100)
	path := f.write(t, "audit", "alias.js", `{"name":"alias","type":"decoder:orders"}`, 100)

	e := f.registry.GetOrCompile("audit", path)

	require.True(t, e.Schema.OK(), "%v", e.Schema.Err)
	assert.Equal(t, codec.SchemeAvro, e.Schema.Decoder.Scheme())
}

func TestSelfReferencingDescriptorDoesNotDeadlock(t *testing.T) {
	f := newFixture(t)
	f.write(t, "loops", "self.js", `{"name":"self","type":"decoder:self"}`, 300)
	f.write(t, "loops", "a.js", `{"name":"a","type":"decoder:b"}`, 200)
	f.write(t, "loops", "b.js", `{"name":"b","type":"decoder:a"}`, 100)

	done := make(chan []*Entry)
	go func() { done <- f.registry.DecodersForTopic("loops") }()

	select {
	case entries := <-done:
		require.Len(t, entries, 3)
		for _, e := range entries {
			assert.False(t, e.Schema.OK(), e.Schema.Label)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("resolving self-referencing descriptors did not finish")
	}
}

func TestLookupDecoder(t *testing.T) {
	f := newFixture(t)
	f.write(t, "orders", "orders.avsc", recordSchema, 100)
	f.write(t, "orders", "broken.avsc", `broken`, 100)
	f.write(t, "payments", "named.js", `{"name":"payments-v2","type":"text"}`, 100)

	dec, found, err := f.registry.LookupDecoder("orders")
	require.NoError(t, err)
	assert.True(t, found)
	assert.NotNil(t, dec)

	dec, found, err = f.registry.LookupDecoder("payments-v2")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, codec.SchemeText, dec.Scheme())

	_, found, err = f.registry.LookupDecoder("broken")
	assert.True(t, found)
	assert.Error(t, err)

	_, found, err = f.registry.LookupDecoder("missing")
	assert.False(t, found)
	assert.NoError(t, err)

	// Only the two matching schema files were compiled.
	assert.EqualValues(t, 2, f.compiler.calls.Load())
}

func TestResolverSurfacesNamedDecoderFailure(t *testing.T) {
	f := newFixture(t)
	f.write(t, "orders", "broken.avsc", `broken`, 100)
	resolver, err := codec.NewResolver(codec.Config{}, f.compiler)
	require.NoError(t, err)

	dec, err := resolver.ResolveDecoder("decoder:broken", f.registry)
	assert.Nil(t, dec)
	assert.True(t, codec.IsNamedDecoderError(err))

	dec, err = resolver.ResolveDecoder("decoder:missing", f.registry)
	assert.Nil(t, dec)
	assert.NoError(t, err)
}

func TestTopicsAndAllDecoders(t *testing.T) {
	f := newFixture(t)
	f.write(t, "alpha", "a1.avsc", recordSchema, 100)
	f.write(t, "alpha", "a2.avsc", recordSchema, 200)
	f.write(t, "beta", "b1.avsc", recordSchema, 500)
	f.write(t, "beta", "b0.avsc", recordSchema, 50)
	require.NoError(t, os.MkdirAll(filepath.Join(f.prefs, DecodersDir, ".cache"), 0o755))

	assert.Equal(t, []string{"alpha", "beta"}, f.registry.Topics())
	// grouped by topic, newest first within each topic
	assert.Equal(t, []string{"a2.avsc", "a1.avsc", "b1.avsc", "b0.avsc"}, labels(f.registry.AllDecoders()))
}

func TestRegistryObserver(t *testing.T) {
	f := newFixture(t)
	path := f.write(t, "orders", "a.avsc", recordSchema, 100)

	var mu sync.Mutex
	var ops []observability.OperationContext
	f.registry.WithObserver(observability.ObserverFunc(func(ctx observability.OperationContext) {
		mu.Lock()
		defer mu.Unlock()
		ops = append(ops, ctx)
	}))

	f.registry.GetOrCompile("orders", path)
	f.registry.GetOrCompile("orders", path)

	require.Len(t, ops, 2)
	assert.Equal(t, "decoders", ops[0].Component)
	assert.Equal(t, "compile", ops[0].Operation)
	assert.Equal(t, "orders", ops[0].SubResource)
	assert.Equal(t, "success", ops[0].Metadata["outcome"])
	assert.EqualValues(t, len(recordSchema), ops[0].Size)
	assert.Equal(t, "cache_hit", ops[1].Operation)
}

func TestRegistryLogsCompileOutcome(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := NewMockLogger(ctrl)

	f := newFixture(t)
	f.registry.WithLogger(log)
	good := f.write(t, "orders", "good.avsc", recordSchema, 100)
	bad := f.write(t, "orders", "bad.avsc", `broken`, 100)

	log.EXPECT().Debug("compiled decoder", nil, gomock.Any()).Times(1)
	log.EXPECT().Warn("decoder failed to compile", gomock.Not(gomock.Nil()), gomock.Any()).Times(1)

	f.registry.GetOrCompile("orders", good)
	f.registry.GetOrCompile("orders", bad)
}
