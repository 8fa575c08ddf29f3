package codec

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Aleph-Alpha/brokerlens/v1/observability"
	"github.com/Aleph-Alpha/brokerlens/v1/scalar"
)

// Resolver maps codec URLs to decoders and encoders. It keeps no state
// beyond its injected collaborators and is safe for concurrent use.
type Resolver struct {
	compiler SchemaCompiler
	text     TextCodec
	observer observability.Observer
}

// NewResolver builds a Resolver for the built-in codec URLs.
//
// Parameters:
//   - cfg: Charset selects the character set of the text codec
//   - compiler: compiles avro:<schema> URLs; nil makes them fail with
//     ErrNoSchemaCompiler
//
// Returns an error when cfg.Charset is not a known IANA name.
//
// Example:
//
//	r, err := codec.NewResolver(codec.Config{Charset: "ISO-8859-1"}, nil)
//	if err != nil {
//	    return err
//	}
//	dec, err := r.ResolveDecoder("gzip", nil)
func NewResolver(cfg Config, compiler SchemaCompiler) (*Resolver, error) {
	sc, err := scalar.New(cfg.Charset)
	if err != nil {
		return nil, fmt.Errorf("codec: %w", err)
	}
	return &Resolver{
		compiler: compiler,
		text:     NewTextCodec(sc),
	}, nil
}

// WithObserver attaches an observer notified of every resolution and
// returns r for chaining.
func (r *Resolver) WithObserver(observer observability.Observer) *Resolver {
	r.observer = observer
	return r
}

// ResolveDecoder returns the decoder named by url. A URL outside the
// vocabulary, or a decoder:<name> that lookup does not know, is a miss and
// returns (nil, nil). lookup may be nil.
//
// Errors are reserved for URLs that were recognized but could not be turned
// into a decoder: a named decoder whose schema failed, or an avro:<spec>
// that does not compile.
func (r *Resolver) ResolveDecoder(url string, lookup DecoderLookup) (Decoder, error) {
	start := time.Now()
	dec, err := r.resolveDecoder(url, lookup)
	r.observeResolution("resolve_decoder", url, start, dec != nil, err)
	return dec, err
}

func (r *Resolver) resolveDecoder(url string, lookup DecoderLookup) (Decoder, error) {
	switch {
	case url == URLApacheLog:
		return ApacheLogCodec{}, nil
	case strings.HasPrefix(url, AvroPrefix):
		return r.compileAvro(strings.TrimPrefix(url, AvroPrefix))
	case url == URLBytes:
		return BytesCodec{}, nil
	case strings.HasPrefix(url, DecoderPrefix):
		return resolveNamed(strings.TrimPrefix(url, DecoderPrefix), lookup)
	case url == URLGzip:
		return GzipCodec{}, nil
	case url == URLJSON:
		return JSONCodec{}, nil
	case url == URLLogRaw:
		return LogRawCodec{}, nil
	case url == URLText:
		return r.text, nil
	}
	return nil, nil
}

// ResolveEncoder returns the encoder named by url. Only bytes, gzip and text
// encode; every other scheme is decode-only and reports false.
func (r *Resolver) ResolveEncoder(url string) (Encoder, bool) {
	start := time.Now()
	var enc Encoder
	switch url {
	case URLBytes:
		enc = BytesCodec{}
	case URLGzip:
		enc = GzipCodec{}
	case URLText:
		enc = r.text
	}
	r.observeResolution("resolve_encoder", url, start, enc != nil, nil)
	return enc, enc != nil
}

func resolveNamed(name string, lookup DecoderLookup) (Decoder, error) {
	if lookup == nil {
		return nil, nil
	}
	dec, found, err := lookup.LookupDecoder(name)
	if !found {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrNamedDecoderFailed, name, err)
	}
	return dec, nil
}

// compileAvro treats spec as inline schema text when it looks like JSON and
// as a path to a schema file otherwise.
func (r *Resolver) compileAvro(spec string) (Decoder, error) {
	if r.compiler == nil {
		return nil, ErrNoSchemaCompiler
	}

	kind := SchemaKindAvro
	text := spec
	if !isInlineSchema(spec) {
		if k, ok := SchemaKindForFile(spec); ok {
			kind = k
		}
		raw, err := os.ReadFile(spec)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrSchemaCompile, spec, err)
		}
		text = string(raw)
	}

	dec, err := r.compiler.Compile(kind, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaCompile, err)
	}
	return dec, nil
}

func isInlineSchema(spec string) bool {
	s := strings.TrimSpace(spec)
	return strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[") || strings.HasPrefix(s, `"`)
}
