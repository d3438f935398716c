package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/dskvich/poml-examples/pkg/chatgpt"
	"github.com/dskvich/poml-examples/pkg/config"
	"github.com/dskvich/poml-examples/pkg/logger"
	"github.com/dskvich/poml-examples/pkg/poml"
	"github.com/dskvich/poml-examples/pkg/report"
	"github.com/dskvich/poml-examples/pkg/services"
	"github.com/dskvich/poml-examples/pkg/walkthrough"
)

func main() {
	// A missing .env is fine, the environment may already be populated.
	_ = godotenv.Load()

	slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, logger.DefaultOptions)))

	err := runMain(os.Args, os.Stdout)
	if err != nil {
		slog.Error("shutting down due to error", logger.Err(err))
	}
	os.Exit(exitCode(err))
}

func runMain(args []string, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	opts := *logger.DefaultOptions
	opts.Level = cfg.LogLevel
	slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, &opts)))

	ctx, cancelFn := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancelFn()

	return newApp(cfg, stdout).RunContext(logger.ContextWithRunID(ctx), args)
}

func exitCode(err error) int {
	if err != nil {
		return 1
	}
	return 0
}

func newApp(cfg *config.Config, stdout io.Writer) *cli.App {
	return &cli.App{
		Name:           "poml",
		Usage:          "POML prompt examples: vision test, file validation and SDK walkthrough",
		Writer:         stdout,
		ErrWriter:      os.Stderr,
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			{
				Name:  "vision",
				Usage: "send the image referenced by a POML file to the vision API",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "poml", Value: "examples/image-analysis.poml", Usage: "POML file with an img tag"},
					&cli.StringFlag{Name: "base-dir", Value: ".", Usage: "directory relative image sources are resolved against"},
				},
				Action: visionAction(cfg, stdout),
			},
			{
				Name:  "validate",
				Usage: "check that the example POML and data files exist",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "root", Value: ".", Usage: "directory the manifest paths are relative to"},
					&cli.StringFlag{Name: "manifest", Usage: "YAML manifest overriding the built-in file list"},
				},
				Action: validateAction(stdout),
			},
			{
				Name:      "process",
				Usage:     "run a placeholder SDK example",
				ArgsUsage: "[" + strings.Join(walkthrough.Names(), "|") + "]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "list", Usage: "list the available examples and exit"},
				},
				Action: processAction(stdout),
			},
		},
	}
}

func visionAction(cfg *config.Config, stdout io.Writer) cli.ActionFunc {
	return func(c *cli.Context) error {
		client, err := chatgpt.NewVisionClient(cfg.OpenAI, nil)
		if err != nil {
			return fmt.Errorf("creating vision client: %w", err)
		}

		fmt.Fprint(stdout, "Testing GPT Vision API with POML image analysis example...\n\n")

		svc := services.NewVisionService(
			client,
			report.NewReporter(stdout),
			c.String("base-dir"),
			stdout,
		)

		return svc.AnalyzeFile(c.Context, c.String("poml"))
	}
}

func validateAction(stdout io.Writer) cli.ActionFunc {
	return func(c *cli.Context) error {
		manifest := poml.DefaultManifest()
		if path := c.String("manifest"); path != "" {
			var err error
			if manifest, err = poml.LoadManifest(path); err != nil {
				return err
			}
		}

		if err := poml.Validate(c.String("root"), manifest, stdout); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		return nil
	}
}

func processAction(stdout io.Writer) cli.ActionFunc {
	return func(c *cli.Context) error {
		if c.Bool("list") {
			for _, p := range walkthrough.Processors() {
				fmt.Fprintf(stdout, "%-18s %s\n", p.Name, p.File)
			}
			return nil
		}

		name := walkthrough.DefaultProcessor
		if c.Args().Present() {
			name = c.Args().First()
		}

		p, err := walkthrough.Lookup(name)
		if err != nil {
			return err
		}

		result, err := p.Run(c.Context)
		if err != nil {
			return fmt.Errorf("running %s: %w", p.Name, err)
		}

		fmt.Fprintln(stdout, result)
		return nil
	}
}
