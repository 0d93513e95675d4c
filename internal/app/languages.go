package app

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"horse.fit/translate/internal/cli"
	"horse.fit/translate/internal/translation"
)

type languagesOutput struct {
	TranslatorID string                       `json:"translator_id"`
	Source       []translation.LanguageOption `json:"source"`
	Target       []translation.LanguageOption `json:"target"`
}

func runLanguages(args []string) int {
	fs := flag.NewFlagSet("languages", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	provider := fs.String("provider", "", "Translator id (default: TRANSLATION_PROVIDER)")
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

	translator, err := rt.registry.Translator(*provider)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	out := languagesOutput{
		TranslatorID: translator.ID(),
		Source:       translation.SourceLanguageOptions(translator),
		Target:       translation.TargetLanguageOptions(translator),
	}

	if outputFormat == outputFormatJSON {
		if err := printJSON(out); err != nil {
			fmt.Fprintf(os.Stderr, "write output: %v\n", err)
			return 1
		}
		return 0
	}

	if err := writeTable([]string{"DIRECTION", "CODE", "LANGUAGE", "CHINESE", "DEFAULT"}, languageRows(out)); err != nil {
		fmt.Fprintf(os.Stderr, "write output: %v\n", err)
		return 1
	}
	return 0
}

func languageRows(out languagesOutput) [][]string {
	rows := make([][]string, 0, len(out.Source)+len(out.Target))
	appendRows := func(direction string, options []translation.LanguageOption) {
		for _, option := range options {
			marker := ""
			if option.Default {
				marker = "*"
			}
			rows = append(rows, []string{direction, option.Code, option.Label, option.Chinese, marker})
		}
	}
	appendRows("source", out.Source)
	appendRows("target", out.Target)
	return rows
}
