package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/arreyder/forms-mcp/internal/config"
	"github.com/arreyder/forms-mcp/internal/forms"
	"github.com/arreyder/forms-mcp/internal/formtools"
	"github.com/arreyder/forms-mcp/internal/logging"
)

type jsonOutput map[string]any

// dialAPI builds the Forms client for "call". Tests replace it.
var dialAPI = func(ctx context.Context) (forms.API, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	client, err := forms.Dial(ctx, cfg.ClientSettings())
	if err != nil {
		return nil, nil, err
	}
	return client, logging.New(os.Stderr, level, cfg.Log.Format), nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) < 2 {
		return errors.New("usage: formctl <tools|schema|call>")
	}

	switch args[1] {
	case "tools":
		return runTools(args[2:], out)
	case "schema":
		return runSchema(args[2:], out)
	case "call":
		return runCall(ctx, args[2:], out)
	default:
		return fmt.Errorf("unknown command: %s", args[1])
	}
}

func runTools(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("tools", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	namesOnly := fs.Bool("names", false, "print tool names only, one per line")
	if err := fs.Parse(args); err != nil {
		return err
	}

	defs := formtools.ToolSchemas(nil)
	if *namesOnly {
		for _, def := range defs {
			if _, err := fmt.Fprintln(out, def.Tool.Name); err != nil {
				return err
			}
		}
		return nil
	}
	tools := make([]jsonOutput, 0, len(defs))
	for _, def := range defs {
		tools = append(tools, jsonOutput{
			"name":        def.Tool.Name,
			"description": def.Tool.Description,
		})
	}
	return writeJSON(out, jsonOutput{"tools": tools})
}

func runSchema(args []string, out io.Writer) error {
	if len(args) < 1 {
		return errors.New("usage: formctl schema <tool>")
	}
	for _, def := range formtools.ToolSchemas(nil) {
		if def.Tool.Name == args[0] {
			return writeJSON(out, def.Tool.InputSchema)
		}
	}
	return &formtools.UnknownToolError{Name: args[0]}
}

func runCall(ctx context.Context, args []string, out io.Writer) error {
	if len(args) < 1 || strings.HasPrefix(args[0], "-") {
		return errors.New("usage: formctl call <tool> [--args JSON | --args_file path]")
	}
	name := args[0]

	fs := flag.NewFlagSet("call", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	rawArgs := fs.String("args", "", "tool arguments as a JSON object")
	argsFile := fs.String("args_file", "", "path to a JSON file with the tool arguments ('-' for stdin)")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if *rawArgs != "" && *argsFile != "" {
		return errors.New("call accepts only one of --args and --args_file")
	}

	data := []byte(*rawArgs)
	if *argsFile != "" {
		var err error
		data, err = readArgsFile(*argsFile)
		if err != nil {
			return err
		}
	}
	toolArgs, err := parseArgs(data)
	if err != nil {
		return err
	}

	api, logger, err := dialAPI(ctx)
	if err != nil {
		return err
	}
	dispatcher, err := formtools.NewDispatcher(api, logger)
	if err != nil {
		return err
	}
	res, err := dispatcher.Call(ctx, name, toolArgs)
	if err != nil {
		return err
	}
	text := formtools.ResultText(res)
	if res.IsError {
		return errors.New(text)
	}
	_, err = fmt.Fprintln(out, text)
	return err
}

func readArgsFile(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading args file: %w", err)
	}
	return data, nil
}

// parseArgs decodes a JSON object, keeping numbers exact.
func parseArgs(data []byte) (map[string]any, error) {
	args := map[string]any{}
	if len(bytes.TrimSpace(data)) == 0 {
		return args, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&args); err != nil {
		return nil, fmt.Errorf("invalid tool arguments: %w", err)
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}

func writeJSON(out io.Writer, payload any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
