package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"textcorrector/internal/app"
	"textcorrector/internal/config"
	"textcorrector/internal/errors"
	"textcorrector/internal/observe"
)

// newCLIApp creates the CLI application. opts are passed to app.Build.
func newCLIApp(opts ...app.Option) *cli.App {
	var a *app.App
	current := func() *app.App { return a }

	cliApp := &cli.App{
		Name:    "textfix",
		Usage:   "Correct informal English text",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "Path to YAML config", EnvVars: []string{"TEXTFIX_CONFIG"}},
		},
		Before: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			logger := observe.NewLogger(c.App.ErrWriter, cfg.Server.LogLevel)
			a, err = app.Build(c.Context, cfg, logger, opts...)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			return nil
		},
		After: func(*cli.Context) error {
			if a == nil {
				return nil
			}
			return a.Close()
		},
		Commands: []*cli.Command{
			correctCmd(current),
			addWordCmd(current),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	cliApp.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return cliApp
}

// correctCmd creates the correct command.
func correctCmd(current func() *app.App) *cli.Command {
	return &cli.Command{
		Name:      "correct",
		Usage:     "Correct text from FILE, or stdin when FILE is - or absent",
		ArgsUsage: "[FILE|-]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "Print the full result as JSON"},
		},
		Action: func(c *cli.Context) error {
			text, err := readInput(c)
			if err != nil {
				return outputError(errors.NewInvalidRequest(err.Error()))
			}
			res := current().Pipeline.Run(c.Context, text)
			if c.Bool("json") {
				return outputJSON(c.App.Writer, res)
			}
			_, err = fmt.Fprintln(c.App.Writer, res.Corrected)
			return err
		},
	}
}

// addWordCmd creates the add-word command.
func addWordCmd(current func() *app.App) *cli.Command {
	return &cli.Command{
		Name:      "add-word",
		Usage:     "Add a word to the custom dictionary",
		ArgsUsage: "WORD",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return outputError(errors.NewInvalidRequest("exactly one WORD is required"))
			}
			a := current()
			lw, err := a.Pipeline.AddCustomWord(c.Context, c.Args().First())
			if err != nil {
				return outputError(err)
			}
			if !a.Persistent() {
				a.Logger.Warn("custom word is kept in memory only; set custom_dict.backend to redis to persist it", "word", lw)
			}
			return outputJSON(c.App.Writer, map[string]any{"success": true, "word": lw})
		},
	}
}

// readInput reads the file named by the first argument, or the app's reader.
// Invalid UTF-8 is dropped.
func readInput(c *cli.Context) (string, error) {
	var (
		data []byte
		err  error
	)
	path := c.Args().First()
	if path == "" || path == "-" {
		data, err = io.ReadAll(c.App.Reader)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(data), ""), nil
}

// outputJSON writes v to w as indented JSON.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats err for the CLI.
func outputError(err error) error {
	if cErr, ok := err.(*errors.CorrectorError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", cErr.Code, cErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
