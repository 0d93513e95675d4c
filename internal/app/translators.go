package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"horse.fit/translate/internal/cli"
	"horse.fit/translate/internal/translation"
)

type translatorSummary struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	ContentLengthLimit int    `json:"content_length_limit"`
	DefaultTarget      string `json:"default_target"`
	Default            bool   `json:"default"`
}

func runTranslators(args []string) int {
	fs := flag.NewFlagSet("translators", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	format := fs.String("format", outputFormatTable, "Output format: table or json")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	outputFormat, err := parseOutputFormat(*format, outputFormatTable, outputFormatTable, outputFormatJSON)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	rt, err := loadRuntime(envLoader, false)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer rt.Close()

	summaries, err := summarizeTranslators(rt.registry)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if outputFormat == outputFormatJSON {
		if err := printJSON(summaries); err != nil {
			fmt.Fprintf(os.Stderr, "write output: %v\n", err)
			return 1
		}
		return 0
	}

	rows := make([][]string, 0, len(summaries))
	for _, summary := range summaries {
		marker := ""
		if summary.Default {
			marker = "*"
		}
		rows = append(rows, []string{
			summary.ID,
			summary.Name,
			strconv.Itoa(summary.ContentLengthLimit),
			summary.DefaultTarget,
			marker,
		})
	}
	if err := writeTable([]string{"ID", "NAME", "LIMIT", "DEFAULT_TARGET", "DEFAULT"}, rows); err != nil {
		fmt.Fprintf(os.Stderr, "write output: %v\n", err)
		return 1
	}
	return 0
}

func summarizeTranslators(registry *translation.Registry) ([]translatorSummary, error) {
	ids := registry.TranslatorIDs()
	summaries := make([]translatorSummary, 0, len(ids))
	for _, id := range ids {
		translator, err := registry.Translator(id)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, translatorSummary{
			ID:                 translator.ID(),
			Name:               translator.Name(),
			ContentLengthLimit: translator.ContentLengthLimit(),
			DefaultTarget:      translator.DefaultLanguageForLocale().Code,
			Default:            translator.ID() == registry.DefaultTranslator(),
		})
	}
	return summaries, nil
}
