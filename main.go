package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	json "github.com/goccy/go-json"
	"github.com/joho/godotenv"

	"jsonspect/internal/ai"
	"jsonspect/internal/config"
	"jsonspect/internal/emitter"
	"jsonspect/internal/errors"
	"jsonspect/internal/export"
	"jsonspect/internal/inspector"
	"jsonspect/internal/mock"
	"jsonspect/internal/models"
	"jsonspect/internal/parser"
	"jsonspect/internal/server"
)

// Version information
const Version = "0.1.0"

// CLI defines the command-line interface
var CLI struct {
	Config  string           `help:"Path to a jsonspect config file." type:"path"`
	Version kong.VersionFlag `help:"Show version information." short:"v"`

	Fmt    FmtCmd    `cmd:"" help:"Validate and pretty-print a JSON document."`
	Diff   DiffCmd   `cmd:"" help:"Compare two JSON documents."`
	Mock   MockCmd   `cmd:"" help:"Generate mock records from an example JSON document."`
	Schema SchemaCmd `cmd:"" help:"Show the semantic schema inferred from an example document."`
	Types  TypesCmd  `cmd:"" help:"Emit type definitions for the inferred schema."`
	Ask    AskCmd    `cmd:"" help:"Ask the AI a question about a JSON document."`
	Serve  ServeCmd  `cmd:"" help:"Run the HTTP API."`
}

// Context carries the resolved configuration into command Run methods
type Context struct {
	cfg *config.Config
}

func main() {
	// Pick up GROQ_API_KEY and friends from a local .env if present.
	_ = godotenv.Load()

	parser := kong.Must(&CLI,
		kong.Name("jsonspect"),
		kong.Description("A JSON inspection toolkit: format, diff, mock data, type definitions, AI analysis."),
		kong.UsageOnError(),
		kong.Vars{"version": fmt.Sprintf("jsonspect version %s", Version)},
	)

	ctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		parser.FatalIfErrorf(err)
	}

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}

	if err := ctx.Run(&Context{cfg: cfg}); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: jsonspect --help\n")
		os.Exit(1)
	}
}

// readRaw reads a document from a file, or from stdin when no path is given
func readRaw(path string) (string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return "", errors.NewInputError(fmt.Sprintf("file '%s' not found", path), errors.ErrFileNotFound)
			}
			return "", errors.NewInputError(fmt.Sprintf("failed to read file '%s'", path), err)
		}
		return string(data), nil
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return "", errors.NewInputError("failed to access stdin", err)
	}
	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		return "", errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", errors.NewInputError("failed to read from stdin", err)
	}
	if len(data) == 0 {
		return "", errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}
	return string(data), nil
}

// renderJSON pretty-prints a value without HTML escaping, keeping type
// tokens like "array<string>" readable.
func renderJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return "", errors.NewOutputError("failed to render JSON", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// writeOutput writes text to a file or stdout
func writeOutput(output, text string) error {
	if output != "" {
		if err := os.WriteFile(output, []byte(text), 0644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", output), err)
		}
		fmt.Fprintf(os.Stderr, "Output written to %s\n", output)
		return nil
	}
	_, err := fmt.Println(strings.TrimSpace(text))
	if err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// FmtCmd validates and pretty-prints a document
type FmtCmd struct {
	Input  string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
}

func (c *FmtCmd) Run(ctx *Context) error {
	raw, err := readRaw(c.Input)
	if err != nil {
		return err
	}
	formatted, _, err := inspector.Format(raw)
	if err != nil {
		return err
	}
	return writeOutput(c.Output, formatted)
}

// DiffCmd compares two documents
type DiffCmd struct {
	A string `arg:"" help:"Path to the first JSON file." type:"path"`
	B string `arg:"" help:"Path to the second JSON file." type:"path"`
}

func (c *DiffCmd) Run(ctx *Context) error {
	rawA, err := readRaw(c.A)
	if err != nil {
		return err
	}
	rawB, err := readRaw(c.B)
	if err != nil {
		return err
	}

	result, err := inspector.Compare(rawA, rawB)
	if err != nil {
		return err
	}
	if result.Empty() {
		fmt.Println("The JSON documents are identical.")
		return nil
	}

	out, err := renderJSON(result)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

// MockCmd generates synthetic records
type MockCmd struct {
	Input  string `help:"Path to the example JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Count  int    `help:"Number of records to generate." short:"n" default:"1"`
	CSV    bool   `help:"Export the batch as CSV instead of JSON."`
	Seed   int64  `help:"Seed for the random source (0 uses the clock)."`
}

func (c *MockCmd) Run(ctx *Context) error {
	raw, err := readRaw(c.Input)
	if err != nil {
		return err
	}
	example, err := parser.ParseString(raw)
	if err != nil {
		return err
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	records, err := mock.Generate(example, c.Count, rand.New(rand.NewSource(seed)), ctx.cfg.Mock)
	if err != nil {
		return err
	}

	if c.CSV {
		var b strings.Builder
		if err := export.WriteCSV(&b, records); err != nil {
			return err
		}
		return writeOutput(c.Output, b.String())
	}

	out, err := renderJSON(models.Array(records))
	if err != nil {
		return err
	}
	return writeOutput(c.Output, out)
}

// SchemaCmd prints the inferred semantic schema
type SchemaCmd struct {
	Input  string `help:"Path to the example JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
}

func (c *SchemaCmd) Run(ctx *Context) error {
	raw, err := readRaw(c.Input)
	if err != nil {
		return err
	}
	example, err := parser.ParseString(raw)
	if err != nil {
		return err
	}

	out, err := renderJSON(mock.Describe(mock.BuildSchema(example)))
	if err != nil {
		return err
	}
	return writeOutput(c.Output, out)
}

// TypesCmd emits type definitions
type TypesCmd struct {
	Input    string `help:"Path to the example JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output   string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Language string `help:"Target language: python, go, or typescript." short:"l" default:"go"`
	RootName string `help:"Name for the root type." short:"r"`
	Package  string `help:"Package name for generated Go code." short:"p"`
}

func (c *TypesCmd) Run(ctx *Context) error {
	lang, err := emitter.ParseLanguage(c.Language)
	if err != nil {
		return err
	}

	raw, err := readRaw(c.Input)
	if err != nil {
		return err
	}
	example, err := parser.ParseString(raw)
	if err != nil {
		return err
	}

	rootName := c.RootName
	if rootName == "" {
		rootName = ctx.cfg.RootName
	}

	em := emitter.New()
	em.Package = ctx.cfg.Package
	if c.Package != "" {
		em.Package = c.Package
	}

	code, err := em.Emit(mock.BuildSchema(example), lang, rootName)
	if err != nil {
		return err
	}
	return writeOutput(c.Output, code)
}

// AskCmd forwards a question about a document to the AI
type AskCmd struct {
	Question string `arg:"" help:"Question about the JSON document."`
	Input    string `help:"Path to the JSON file. If not specified, reads from stdin." short:"i" type:"path"`
}

func (c *AskCmd) Run(ctx *Context) error {
	if !inspector.IsJSONRelated(c.Question) {
		return errors.NewAIError("the question does not seem to be about the JSON document", errors.ErrOffTopicQuestion)
	}

	raw, err := readRaw(c.Input)
	if err != nil {
		return err
	}
	doc, err := parser.ParseString(raw)
	if err != nil {
		return err
	}

	client, err := ai.NewClient(ctx.cfg.AI)
	if err != nil {
		return err
	}
	answer, err := client.Ask(context.Background(), c.Question, doc)
	if err != nil {
		return err
	}
	fmt.Println(answer)
	return nil
}

// ServeCmd runs the HTTP API
type ServeCmd struct {
	Addr string `help:"Listen address." default:""`
}

func (c *ServeCmd) Run(ctx *Context) error {
	if c.Addr != "" {
		ctx.cfg.Server.Addr = c.Addr
	}
	srv, err := server.NewServer(ctx.cfg)
	if err != nil {
		return err
	}
	return srv.Run()
}
