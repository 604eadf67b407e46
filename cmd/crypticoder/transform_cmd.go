package main

import (
	"fmt"
	"io"

	"crypticoder-go/pkg/coder"
	"crypticoder-go/pkg/log"

	"github.com/urfave/cli/v2"
)

func transformFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "key",
			Aliases: []string{"k"},
			Usage:   "Obfuscation key `KEY` (defaults to CRYPTICODER_KEY)",
		},
		&cli.StringFlag{
			Name:    "text",
			Aliases: []string{"t"},
			Usage:   "Text `TEXT` to process instead of reading stdin",
		},
		&cli.StringFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "Process the file at `PATH` and write the result next to it",
		},
		&cli.StringFlag{
			Name:  "compress",
			Usage: "Compression for file mode: none, gzip or zstd `ALGO`",
		},
	}
}

var (
	encodeCommand = &cli.Command{
		Name:      "encode",
		Usage:     "Obfuscate text (printed as base64) or a file (written as <name>.enc)",
		UsageText: "crypticoder encode -k KEY [-t TEXT | -f PATH]",
		Flags:     transformFlags(),
		Action: func(c *cli.Context) error {
			return runTransform(c, coder.OpEncoding)
		},
	}
	decodeCommand = &cli.Command{
		Name:      "decode",
		Usage:     "Reverse encode: base64 text back to text, or <name>.enc to <name>.dec",
		UsageText: "crypticoder decode -k KEY [-t BASE64 | -f PATH]",
		Flags:     transformFlags(),
		Action: func(c *cli.Context) error {
			return runTransform(c, coder.OpDecoding)
		},
	}
)

func runTransform(c *cli.Context, op string) error {
	opts := *cfg
	if c.IsSet("compress") {
		opts.Compression = c.String("compress")
	}
	svc, err := coder.NewService(&opts)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}
	if c.Bool("verbose") {
		svc.Progress = func(p int) {
			log.Debug().Int("percent", p).Msg("progress")
		}
	}

	key := c.String("key")
	if key == "" {
		key = opts.Key
	}

	if path := c.String("file"); path != "" {
		if c.IsSet("text") {
			return cli.Exit("Error: --text and --file cannot be combined.", 1)
		}
		var out string
		if op == coder.OpEncoding {
			out, err = svc.EncodeFile(key, path)
		} else {
			out, err = svc.DecodeFile(key, path)
		}
		if err != nil {
			log.Error().Err(err).Str("op", op).Str("path", path).Msg("file transform failed")
			return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
		}
		verb := "encoded"
		if op == coder.OpDecoding {
			verb = "decoded"
		}
		fmt.Fprintf(c.App.Writer, "File %s successfully: %s\n", verb, out)
		return nil
	}

	text := c.String("text")
	if !c.IsSet("text") {
		b, err := io.ReadAll(c.App.Reader)
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error reading stdin: %v", err), 1)
		}
		text = string(b)
	}

	var out string
	if op == coder.OpEncoding {
		out, err = svc.EncodeText(key, text)
	} else {
		out, err = svc.DecodeText(key, text)
	}
	if err != nil {
		log.Error().Err(err).Str("op", op).Msg("text transform failed")
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}
	if op == coder.OpDecoding {
		// Decoded text is written as is; any trailing newline belongs to it.
		fmt.Fprint(c.App.Writer, out)
		return nil
	}
	fmt.Fprintln(c.App.Writer, out)
	return nil
}

