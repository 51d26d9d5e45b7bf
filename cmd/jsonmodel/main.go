package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	j "github.com/goccy/go-json"

	jm "github.com/reoring/jsonmodel"
	"github.com/reoring/jsonmodel/internal/ctxlog"
	"github.com/reoring/jsonmodel/manifest"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}
	switch args[0] {
	case "schema":
		return schemaCmd(ctx, args[1:], stdout, stderr)
	case "validate":
		return validateCmd(ctx, args[1:], stdout, stderr)
	case "normalize":
		return normalizeCmd(ctx, args[1:], stdout, stderr)
	default:
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "jsonmodel CLI\n\nUsage:\n  jsonmodel schema -f models.yaml -model Person [-indent]\n  jsonmodel validate -f models.hcl -model Person -data person.json [-strip]\n  jsonmodel normalize -f models.yaml -model Person -data person.json [-strip]\n\nNotes:\n  - Manifests are YAML (.yaml, .yml) or HCL (.hcl).\n  - -v enables debug logs on stderr.")
}

// common holds the flags shared by every subcommand.
type common struct {
	file    string
	model   string
	verbose bool
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.file, "f", "", "manifest file (.yaml, .yml or .hcl)")
	fs.StringVar(&c.model, "model", "", "name of the model to use")
	fs.BoolVar(&c.verbose, "v", false, "enable verbose logs")
}

// load parses the manifest and returns the selected model together with a
// context carrying the configured logger.
func (c *common) load(ctx context.Context, stderr io.Writer) (context.Context, *jm.Model, error) {
	level := "info"
	if c.verbose {
		level = "debug"
	}
	logger := ctxlog.New(level, "text", stderr)
	ctx = ctxlog.WithLogger(ctx, logger)

	m, err := manifest.Load(ctx, c.file)
	if err != nil {
		return ctx, nil, err
	}
	models, err := m.Build()
	if err != nil {
		return ctx, nil, err
	}
	model, ok := models[c.model]
	if !ok {
		return ctx, nil, fmt.Errorf("model %q not found in %s", c.model, c.file)
	}
	logger.Debug("Model selected.", "model", c.model, "fields", len(model.Fields()))
	return ctx, model, nil
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func schemaCmd(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("schema", stderr)
	var c common
	var indent bool
	c.register(fs)
	fs.BoolVar(&indent, "indent", false, "indent the output")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if c.file == "" || c.model == "" {
		fs.Usage()
		return 2
	}
	_, model, err := c.load(ctx, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "schema: %v\n", err)
		return 1
	}
	s, err := model.JSONSchema()
	if err != nil {
		fmt.Fprintf(stderr, "schema: %v\n", err)
		return 1
	}
	if err := writeJSON(stdout, s.Map(), indent); err != nil {
		fmt.Fprintf(stderr, "schema: %v\n", err)
		return 1
	}
	return 0
}

// record loads -data into an instance of model.
func record(ctx context.Context, model *jm.Model, path string, strip bool) (*jm.Instance, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	dec := j.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	opt := jm.DecodeOpt{Unknown: jm.UnknownStrict}
	if strip {
		opt.Unknown = jm.UnknownStrip
	}
	ctxlog.FromContext(ctx).Debug("Reconstructing record.", "path", path, "keys", len(doc), "strip", strip)
	return jm.FromStruct(model, doc, opt)
}

func validateCmd(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("validate", stderr)
	var c common
	var data string
	var strip bool
	c.register(fs)
	fs.StringVar(&data, "data", "", "JSON record to validate")
	fs.BoolVar(&strip, "strip", false, "drop keys naming no field instead of failing")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if c.file == "" || c.model == "" || data == "" {
		fs.Usage()
		return 2
	}
	ctx, model, err := c.load(ctx, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "validate: %v\n", err)
		return 1
	}
	in, err := record(ctx, model, data, strip)
	if err == nil {
		err = in.Validate()
	}
	if err != nil {
		fmt.Fprintf(stderr, "validate: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, "ok")
	return 0
}

func normalizeCmd(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("normalize", stderr)
	var c common
	var data string
	var strip, indent bool
	c.register(fs)
	fs.StringVar(&data, "data", "", "JSON record to normalize")
	fs.BoolVar(&strip, "strip", false, "drop keys naming no field instead of failing")
	fs.BoolVar(&indent, "indent", false, "indent the output")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if c.file == "" || c.model == "" || data == "" {
		fs.Usage()
		return 2
	}
	ctx, model, err := c.load(ctx, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "normalize: %v\n", err)
		return 1
	}
	in, err := record(ctx, model, data, strip)
	if err != nil {
		fmt.Fprintf(stderr, "normalize: %v\n", err)
		return 1
	}
	if err := writeJSON(stdout, in.ToStruct(), indent); err != nil {
		fmt.Fprintf(stderr, "normalize: %v\n", err)
		return 1
	}
	return 0
}

func writeJSON(w io.Writer, v any, indent bool) error {
	var (
		out []byte
		err error
	)
	if indent {
		out, err = j.MarshalIndent(v, "", "  ")
	} else {
		out, err = j.Marshal(v)
	}
	if err != nil {
		return err
	}
	out = append(out, '\n')
	_, err = w.Write(out)
	return err
}
