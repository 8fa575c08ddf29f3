package main

import (
	"context"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	json "github.com/goccy/go-json"
	"github.com/segmentio/kafka-go"

	"github.com/Aleph-Alpha/brokerlens/v1/codec"
	"github.com/Aleph-Alpha/brokerlens/v1/decoders"
	"github.com/Aleph-Alpha/brokerlens/v1/scalar"
)

var errUsage = errors.New("usage")

// env carries what a command needs from the process.
type env struct {
	ctx    context.Context
	cfg    *Config
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

type command struct {
	summary string
	run     func(e *env, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"decoders":      {"list decoders, optionally for one topic", runDecoders},
		"decode":        {"decode a payload with a codec URL", runDecode},
		"encode":        {"encode stdin or a file with a codec URL", runEncode},
		"scalar-encode": {"encode a typed value as dotted hex", runScalarEncode},
		"scalar-decode": {"decode dotted hex as a typed value", runScalarDecode},
		"inspect":       {"decode a message as it would arrive on a topic", runInspect},
	}
}

func runDecoders(e *env, args []string) error {
	fs := newCommandFlags("decoders", "[topic]", e.stderr)
	if err := fs.Parse(args); err != nil {
		return usageErr(err)
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return errUsage
	}

	return withApp(e.ctx, e.cfg, func(c *components) error {
		var entries []*decoders.Entry
		if fs.NArg() == 1 {
			entries = c.Registry.DecodersForTopic(fs.Arg(0))
		} else {
			entries = c.Registry.AllDecoders()
		}
		return printEntries(e.stdout, entries)
	})
}

func printEntries(w io.Writer, entries []*decoders.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TOPIC\tNAME\tFILE\tMODIFIED\tSCHEME")
	var failed []*decoders.Entry
	for _, en := range entries {
		scheme := "FAILED"
		if en.Schema.OK() {
			scheme = codec.SchemeNameOf(en.Schema.Decoder)
		} else {
			failed = append(failed, en)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			en.Topic, en.Name, en.Schema.Label, en.LastModified.Format(time.RFC3339), scheme)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, en := range failed {
		fmt.Fprintf(w, "\n%s/%s: %v\n", en.Topic, en.Schema.Label, en.Schema.Err)
		for _, line := range strings.Split(strings.TrimRight(en.Schema.SchemaString, "\n"), "\n") {
			fmt.Fprintf(w, "    %s\n", line)
		}
	}
	return nil
}

func runDecode(e *env, args []string) error {
	fs := newCommandFlags("decode", "", e.stderr)
	url := fs.String("codec", codec.URLText, "codec URL, e.g. json, gzip, avro:schema.avsc, decoder:orders")
	file := fs.String("file", "", "payload file (default stdin)")
	if err := fs.Parse(args); err != nil {
		return usageErr(err)
	}

	payload, err := readInput(e.stdin, *file)
	if err != nil {
		return err
	}

	return withApp(e.ctx, e.cfg, func(c *components) error {
		dec, err := c.Resolver.ResolveDecoder(*url, c.Registry)
		if err != nil {
			return err
		}
		if dec == nil {
			return fmt.Errorf("codec %q does not resolve to a decoder", *url)
		}
		v, err := dec.Decode(payload)
		if err != nil {
			return err
		}
		return printValue(e.stdout, v)
	})
}

func runEncode(e *env, args []string) error {
	fs := newCommandFlags("encode", "", e.stderr)
	url := fs.String("codec", codec.URLText, "codec URL: bytes, gzip or text")
	file := fs.String("file", "", "input file (default stdin)")
	if err := fs.Parse(args); err != nil {
		return usageErr(err)
	}

	input, err := readInput(e.stdin, *file)
	if err != nil {
		return err
	}

	return withApp(e.ctx, e.cfg, func(c *components) error {
		enc, ok := c.Resolver.ResolveEncoder(*url)
		if !ok {
			return fmt.Errorf("codec %q cannot encode", *url)
		}
		out, err := enc.Encode(input)
		if err != nil {
			return err
		}
		_, err = e.stdout.Write(out)
		return err
	})
}

func runScalarEncode(e *env, args []string) error {
	fs := newCommandFlags("scalar-encode", "value", e.stderr)
	typeName := fs.String("type", scalar.TypeString, "value type: "+strings.Join(scalar.SupportedTypes(), ", "))
	if err := fs.Parse(args); err != nil {
		return usageErr(err)
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errUsage
	}

	sc, err := scalar.New(e.cfg.Charset)
	if err != nil {
		return err
	}
	b, err := sc.Encode(fs.Arg(0), *typeName)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(e.stdout, scalar.FormatDottedHex(b))
	return err
}

func runScalarDecode(e *env, args []string) error {
	fs := newCommandFlags("scalar-decode", "hex", e.stderr)
	typeName := fs.String("type", scalar.TypeString, "value type: "+strings.Join(scalar.SupportedTypes(), ", "))
	if err := fs.Parse(args); err != nil {
		return usageErr(err)
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errUsage
	}

	b, err := scalar.ParseDottedHex(fs.Arg(0))
	if err != nil {
		return err
	}
	sc, err := scalar.New(e.cfg.Charset)
	if err != nil {
		return err
	}
	v, err := sc.Decode(b, *typeName)
	if err != nil {
		return err
	}
	if r, ok := v.(rune); ok && *typeName == scalar.TypeChar {
		v = string(r)
	}
	return printValue(e.stdout, v)
}

func runInspect(e *env, args []string) error {
	fs := newCommandFlags("inspect", "", e.stderr)
	topic := fs.String("topic", "", "topic the message belongs to")
	key := fs.String("key", "", "message key")
	partition := fs.Int("partition", 0, "partition")
	offset := fs.Int64("offset", 0, "offset")
	file := fs.String("file", "", "value file (default stdin)")
	var headers headerFlags
	fs.Var(&headers, "header", "message header as key=value, repeatable (traceparent continues a trace)")
	if err := fs.Parse(args); err != nil {
		return usageErr(err)
	}
	if *topic == "" {
		fs.Usage()
		return errUsage
	}

	value, err := readInput(e.stdin, *file)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Topic:     *topic,
		Partition: *partition,
		Offset:    *offset,
		Value:     value,
		Time:      time.Now(),
		Headers:   headers,
	}
	if *key != "" {
		msg.Key = []byte(*key)
	}

	return withApp(e.ctx, e.cfg, func(c *components) error {
		rec, err := c.Inspector.Inspect(e.ctx, msg)
		if err != nil {
			return err
		}
		return printValue(e.stdout, rec)
	})
}

// headerFlags collects repeated -header key=value flags.
type headerFlags []kafka.Header

func (h *headerFlags) String() string {
	parts := make([]string, 0, len(*h))
	for _, hd := range *h {
		parts = append(parts, hd.Key+"="+string(hd.Value))
	}
	return strings.Join(parts, ",")
}

func (h *headerFlags) Set(s string) error {
	key, value, ok := strings.Cut(s, "=")
	if !ok || key == "" {
		return fmt.Errorf("header %q is not key=value", s)
	}
	*h = append(*h, kafka.Header{Key: key, Value: []byte(value)})
	return nil
}

func readInput(stdin io.Reader, file string) ([]byte, error) {
	if file == "" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(file)
}

// printValue writes strings as they are, raw bytes as a hex dump and
// everything else as indented JSON.
func printValue(w io.Writer, v any) error {
	switch val := v.(type) {
	case string:
		_, err := fmt.Fprintln(w, val)
		return err
	case []byte:
		_, err := io.WriteString(w, hex.Dump(val))
		return err
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		_, err = fmt.Fprintf(w, "%v\n", v)
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func usageErr(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return errUsage
}
