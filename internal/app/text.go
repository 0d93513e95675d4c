package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"horse.fit/translate/internal/cli"
	"horse.fit/translate/internal/translation"
)

type textOptions struct {
	envLoader *cli.EnvLoader
	timeout   time.Duration
	from      string
	to        string
	provider  string
	format    string
}

// parseTextArgs accepts flags before, between or after the text arguments.
func parseTextArgs(args []string, output io.Writer) (*textOptions, []string, error) {
	fs := flag.NewFlagSet("text", flag.ContinueOnError)
	fs.SetOutput(output)

	opts := &textOptions{}
	opts.envLoader = cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	fs.DurationVar(&opts.timeout, "timeout", 2*time.Minute, "Command timeout")
	fs.StringVar(&opts.from, "from", "", "Source language (ISO 639-1, or auto; default: auto)")
	fs.StringVar(&opts.to, "to", "", "Target language (ISO 639-1; default: locale language)")
	fs.StringVar(&opts.provider, "provider", "", "Translator id (for example: local, google)")
	fs.StringVar(&opts.format, "format", outputFormatText, "Output format: text or json")

	positionals, err := cli.ParseInterspersed(fs, args)
	if err != nil {
		return nil, nil, err
	}
	return opts, positionals, nil
}

func runText(args []string) int {
	opts, positionals, err := parseTextArgs(args, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	outputFormat, err := parseOutputFormat(opts.format, outputFormatText, outputFormatText, outputFormatJSON)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	text, err := readInputText(positionals, os.Stdin)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		printTextUsage()
		return 2
	}

	source, err := translation.ResolveLanguage(opts.from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "--from: %v\n", err)
		return 2
	}
	target, err := translation.ResolveLanguage(opts.to)
	if err != nil || target.IsAuto() {
		fmt.Fprintf(os.Stderr, "--to must be a supported language code\n")
		return 2
	}

	rt, err := loadRuntime(opts.envLoader, true)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer rt.Close()

	translator, err := rt.registry.Translator(opts.provider)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()

	req := translation.TranslateRequest{Text: text, Source: source, Target: target}
	result, err := translator.Translate(ctx, req)
	if err != nil {
		rt.recorder.Record(context.WithoutCancel(ctx), translator, req, err, "")
		fmt.Fprintln(os.Stderr, describeTranslateFailure(err))
		return 1
	}

	if outputFormat == outputFormatJSON {
		if err := printJSON(result); err != nil {
			fmt.Fprintf(os.Stderr, "write output: %v\n", err)
			return 1
		}
		return 0
	}
	fmt.Println(result.Translated)
	return 0
}

// readInputText joins positional arguments, or reads stdin when the only argument is "-".
func readInputText(args []string, stdin io.Reader) (string, error) {
	if len(args) == 1 && args[0] == "-" {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		args = []string{string(raw)}
	}

	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return "", fmt.Errorf("text to translate is required")
	}
	return text, nil
}

// describeTranslateFailure shows the display message for classified faults and
// a generic message plus the raw error otherwise.
func describeTranslateFailure(err error) string {
	var translateErr *translation.TranslateError
	if errors.As(err, &translateErr) {
		return fmt.Sprintf("Translation failed (%s): %s", translateErr.TranslatorName, translateErr.Info.Message)
	}
	return fmt.Sprintf("Translation failed unexpectedly: %v", err)
}

func printTextUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  translate text <text...> [--to <lang>] [--from <lang>] [--provider local] [--format text|json] [--env .env] [--timeout 2m]")
	fmt.Fprintln(os.Stderr, "  echo 'hello' | translate text - --to zh")
}
