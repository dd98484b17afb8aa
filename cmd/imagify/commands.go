package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	goruntime "runtime"
	"strings"

	"github.com/ideamans/go-l10n"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/user/imagify/pkg/summarizer"
)

// stdinName is the argument that reads a message from standard input.
const stdinName = "-"

func summaryFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "summary",
		Usage:    l10n.T("Write a YAML or Markdown summary of the batch here"),
		Category: l10n.T("Output"),
	}
}

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     l10n.T("Render message files as PNG images"),
		ArgsUsage: "[FILE...]",
		Description: l10n.T("Each FILE holds one message in markup form. Messages over a threshold " +
			"are written as PNG; others are reported as sent as text. Without FILE the message is read from stdin."),
		Flags: append([]cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:     "out",
				Aliases:  []string{"o"},
				Usage:    l10n.T("Output PNG path for a single message (- for stdout)"),
				Category: l10n.T("Output"),
			},
			&cli.StringFlag{
				Name:     "out-dir",
				Usage:    l10n.T("Directory for output PNG files"),
				Category: l10n.T("Output"),
			},
			&cli.BoolFlag{
				Name:     "force",
				Aliases:  []string{"f"},
				Usage:    l10n.T("Render every message regardless of thresholds"),
				Category: l10n.T("Rendering"),
			},
			&cli.IntFlag{
				Name:     "jobs",
				Aliases:  []string{"j"},
				Value:    goruntime.NumCPU(),
				Usage:    l10n.T("Number of messages rendered concurrently"),
				Category: l10n.T("Rendering"),
			},
			summaryFlag(),
		}, debugFlags()...),
		Action: renderAction,
	}
}

func renderAction(c *cli.Context) error {
	inputs := c.Args().Slice()
	if len(inputs) == 0 {
		inputs = []string{stdinName}
	}
	out, outDir := c.String("out"), c.String("out-dir")
	if out != "" && len(inputs) > 1 {
		return errors.New(l10n.T("--out accepts a single input; use --out-dir for several"))
	}

	toStdout := out == stdinName || (out == "" && outDir == "" && inputs[0] == stdinName)
	if toStdout && isatty.IsTerminal(os.Stdout.Fd()) {
		return errors.New(l10n.T("Refusing to write PNG data to a terminal; use --out or --out-dir"))
	}

	rt, err := setup(c, setupOptions{force: c.Bool("force"), stdoutIsData: toStdout})
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(c.Context, rt.log)
	defer cancel()

	results := make([]summarizer.MessageInfo, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(c.Int("jobs"), 1))

	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			content, err := rt.readInput(input)
			if err != nil {
				return err
			}

			res, err := rt.process(gctx, messageID(input), content)
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			results[i] = res.info

			if res.png == nil {
				rt.log.Info("Message %s sent as text", res.info.ID)
				return nil
			}
			return rt.writeImage(renderTarget(input, out, outDir), res.png)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	builder := summarizer.NewBuilder().WithSettings(rt.summarySettings())
	for _, info := range results {
		builder.AddMessage(info)
	}
	summary := builder.Build()
	rt.logTotals(summary)
	rt.writeSummary(c.String("summary"), summary)
	return nil
}

func (rt *runtime) readInput(input string) (string, error) {
	if input == stdinName {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := rt.fs.ReadFile(input)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (rt *runtime) writeImage(target string, data []byte) error {
	if target == stdinName {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := rt.fs.WriteFile(target, data); err != nil {
		return err
	}
	rt.log.Info("Output saved to %s", target)
	return nil
}

// messageID names a message after its input file.
func messageID(input string) string {
	if input == stdinName {
		return "stdin"
	}
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// renderTarget returns where the PNG for input is written: the explicit
// output, a file in outDir, stdout for stdin, or next to the input.
func renderTarget(input, out, outDir string) string {
	switch {
	case out != "":
		return out
	case outDir != "":
		return filepath.Join(outDir, messageID(input)+".png")
	case input == stdinName:
		return stdinName
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".png"
}

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:   "check",
		Usage:  l10n.T("Validate a configuration file and print the resolved settings"),
		Flags:  []cli.Flag{configFlag()},
		Action: checkAction,
	}
}

func checkAction(c *cli.Context) error {
	rt, err := setup(c, setupOptions{stdoutIsData: true})
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(rt.cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if _, err := os.Stdout.Write(data); err != nil {
		return err
	}

	s := rt.summarySettings()
	rt.log.Info("Configuration is valid: font %s, background %s, foreground %s", s.Font, s.Background, s.Foreground)
	return nil
}

func pipeCommand() *cli.Command {
	return &cli.Command{
		Name:  "pipe",
		Usage: l10n.T("Process a stream of messages from stdin"),
		Description: l10n.T("Messages are separated by a line containing only the separator. " +
			"The configuration file is reloaded when it changes."),
		Flags: append([]cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:     "out-dir",
				Aliases:  []string{"o"},
				Required: true,
				Usage:    l10n.T("Directory for message-NNNN.png and message-NNNN.txt files"),
				Category: l10n.T("Output"),
			},
			&cli.StringFlag{
				Name:     "separator",
				Value:    "---",
				Usage:    l10n.T("Line that separates messages"),
				Category: l10n.T("Input"),
			},
			summaryFlag(),
		}, debugFlags()...),
		Action: pipeAction,
	}
}

func pipeAction(c *cli.Context) error {
	rt, err := setup(c, setupOptions{watch: true})
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(c.Context, rt.log)
	defer cancel()

	outDir := c.String("out-dir")
	if err := rt.fs.MkdirAll(outDir); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	builder := summarizer.NewBuilder()
	watchCtx, stopWatch := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(watchCtx)

	if rt.watcher != nil {
		g.Go(func() error { return rt.watcher.Run(gctx) })
	}
	g.Go(func() error {
		defer stopWatch()
		return rt.pipe(gctx, os.Stdin, c.String("separator"), outDir, builder)
	})
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	summary := builder.WithSettings(rt.summarySettings()).Build()
	rt.logTotals(summary)
	rt.writeSummary(c.String("summary"), summary)
	return nil
}

// pipe splits r into messages and writes one output file per message.
func (rt *runtime) pipe(ctx context.Context, r io.Reader, separator, outDir string, builder *summarizer.Builder) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	n := 0
	var lines []string
	flush := func() error {
		if len(lines) == 0 {
			return nil
		}
		n++
		content := strings.Join(lines, "\n")
		lines = lines[:0]
		return rt.pipeMessage(ctx, n, content, outDir, builder)
	}

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Text()
		if strings.TrimRight(line, "\r") == separator {
			if err := flush(); err != nil {
				return err
			}
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	return flush()
}

func (rt *runtime) pipeMessage(ctx context.Context, n int, content, outDir string, builder *summarizer.Builder) error {
	id := fmt.Sprintf("message-%04d", n)
	res, err := rt.process(ctx, id, content)
	if err != nil {
		return fmt.Errorf("%s: %w", id, err)
	}
	builder.AddMessage(res.info)

	if res.png != nil {
		return rt.writeImage(filepath.Join(outDir, id+".png"), res.png)
	}
	path := filepath.Join(outDir, id+".txt")
	if err := rt.fs.WriteFile(path, []byte(res.session.Markup())); err != nil {
		return err
	}
	rt.log.Info("Message %s sent as text", id)
	return nil
}
