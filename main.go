package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/kotobalab/aozoracb/internal/build"
	"github.com/kotobalab/aozoracb/internal/report"
)

func main() {
	app := &cli.App{
		Name:  "aozoracb",
		Usage: "Build a tokenized plain-text corpus from an Aozora Bunko HTML mirror",
		Commands: []*cli.Command{
			{
				Name:   "build",
				Usage:  "Process the catalog: extract, tokenize, and write the augmented catalog",
				Action: build.BuildAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Usage: "YAML config file",
						Value: "config.yaml",
					},
					&cli.StringFlag{
						Name:  "catalog",
						Usage: "source catalog CSV",
					},
					&cli.StringFlag{
						Name:  "origin-column",
						Usage: "catalog column holding each work's origin URL",
					},
					&cli.StringFlag{
						Name:  "source-prefix",
						Usage: "origin-URL prefix identifying in-scope works",
					},
					&cli.StringFlag{
						Name:  "root",
						Usage: "local HTML mirror root",
					},
					&cli.StringFlag{
						Name:  "output-dir",
						Usage: "directory for tokenized text files",
					},
					&cli.StringFlag{
						Name:  "output-catalog",
						Usage: "augmented catalog CSV path",
					},
					&cli.StringFlag{
						Name:  "database",
						Usage: "run-report SQLite file",
					},
					&cli.BoolFlag{
						Name:  "detect-language",
						Usage: "record each work's detected language in the run report",
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "log errors only",
					},
				},
			},
			{
				Name:  "report",
				Usage: "Inspect past runs",
				Subcommands: []*cli.Command{
					{
						Name:   "runs",
						Usage:  "List recent runs",
						Action: report.RunsAction,
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "database",
								Usage: "run-report SQLite file",
								Value: "aozoracb.db",
							},
							&cli.IntFlag{
								Name:  "limit",
								Usage: "maximum runs to list",
								Value: 20,
							},
						},
					},
					{
						Name:      "run",
						Usage:     "Show per-file outcomes of one run",
						ArgsUsage: "<run-id>",
						Action:    report.RunAction,
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "database",
								Usage: "run-report SQLite file",
								Value: "aozoracb.db",
							},
							&cli.StringFlag{
								Name:  "status",
								Usage: "filter by status (tokenized, missing, unextractable, failed)",
							},
						},
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
