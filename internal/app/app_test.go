package app

import (
	"errors"
	"io"
	"strings"
	"testing"

	"horse.fit/translate/internal/config"
	"horse.fit/translate/internal/language"
	"horse.fit/translate/internal/messages"
	"horse.fit/translate/internal/translation"
)

func TestReadInputTextJoinsArgs(t *testing.T) {
	t.Parallel()

	text, err := readInputText([]string{"hello", " world "}, strings.NewReader("ignored"))
	if err != nil {
		t.Fatalf("readInputText failed: %v", err)
	}
	if text != "hello  world" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestReadInputTextFromStdin(t *testing.T) {
	t.Parallel()

	text, err := readInputText([]string{"-"}, strings.NewReader("  from stdin\n"))
	if err != nil {
		t.Fatalf("readInputText failed: %v", err)
	}
	if text != "from stdin" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestReadInputTextRejectsBlank(t *testing.T) {
	t.Parallel()

	if _, err := readInputText(nil, strings.NewReader("")); err == nil {
		t.Fatalf("expected error for missing text")
	}
	if _, err := readInputText([]string{"-"}, strings.NewReader(" \n")); err == nil {
		t.Fatalf("expected error for blank stdin")
	}
}

func TestParseTextArgs_FlagsAfterText(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		args     []string
		wantText string
	}{
		{"flags after text", []string{"hello", "--to", "zh"}, "hello"},
		{"flags before text", []string{"--to", "zh", "hello"}, "hello"},
		{"flags around text", []string{"good", "--to", "zh", "morning"}, "good morning"},
	}
	for _, tc := range cases {
		opts, positionals, err := parseTextArgs(tc.args, io.Discard)
		if err != nil {
			t.Fatalf("%s: parse failed: %v", tc.name, err)
		}
		if opts.to != "zh" {
			t.Fatalf("%s: expected --to zh, got %q", tc.name, opts.to)
		}
		text, err := readInputText(positionals, strings.NewReader(""))
		if err != nil {
			t.Fatalf("%s: readInputText failed: %v", tc.name, err)
		}
		if text != tc.wantText {
			t.Fatalf("%s: unexpected text %q", tc.name, text)
		}
	}
}

func TestParseTextArgs_StdinMarkerWithTrailingFlags(t *testing.T) {
	t.Parallel()

	opts, positionals, err := parseTextArgs([]string{"-", "--to", "zh", "--provider", "google"}, io.Discard)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if opts.to != "zh" || opts.provider != "google" {
		t.Fatalf("unexpected options: %+v", opts)
	}
	text, err := readInputText(positionals, strings.NewReader("piped text\n"))
	if err != nil {
		t.Fatalf("readInputText failed: %v", err)
	}
	if text != "piped text" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestDescribeTranslateFailure(t *testing.T) {
	t.Parallel()

	classified := &translation.TranslateError{
		TranslatorID:   "local",
		TranslatorName: "Local HY-MT",
		Info:           translation.ErrorInfo{Message: "Too many requests"},
		Cause:          &translation.HTTPStatusError{StatusCode: 429},
	}
	if got := describeTranslateFailure(classified); got != "Translation failed (Local HY-MT): Too many requests" {
		t.Fatalf("unexpected classified output: %q", got)
	}

	raw := errors.New("boom")
	got := describeTranslateFailure(raw)
	if !strings.Contains(got, "boom") || !strings.HasPrefix(got, "Translation failed unexpectedly") {
		t.Fatalf("unexpected unclassified output: %q", got)
	}
}

func TestParseOutputFormat(t *testing.T) {
	t.Parallel()

	got, err := parseOutputFormat(" JSON ", outputFormatTable, outputFormatTable, outputFormatJSON)
	if err != nil || got != outputFormatJSON {
		t.Fatalf("expected json, got %q (err=%v)", got, err)
	}
	got, err = parseOutputFormat("", outputFormatTable, outputFormatTable, outputFormatJSON)
	if err != nil || got != outputFormatTable {
		t.Fatalf("expected default table, got %q (err=%v)", got, err)
	}
	if _, err := parseOutputFormat("yaml", outputFormatTable, outputFormatTable, outputFormatJSON); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestParseClassifiedFilter(t *testing.T) {
	t.Parallel()

	value, err := parseClassifiedFilter("")
	if err != nil || value != nil {
		t.Fatalf("expected nil filter, got %v (err=%v)", value, err)
	}
	value, err = parseClassifiedFilter("false")
	if err != nil || value == nil || *value {
		t.Fatalf("expected false filter, got %v (err=%v)", value, err)
	}
	if _, err := parseClassifiedFilter("maybe"); err == nil {
		t.Fatalf("expected error for invalid filter")
	}
}

func TestTruncateForTable(t *testing.T) {
	t.Parallel()

	if got := truncateForTable("  short ", 10); got != "short" {
		t.Fatalf("unexpected short value: %q", got)
	}
	if got := truncateForTable("网络连接失败请重试", 6); got != "网络连..." {
		t.Fatalf("unexpected truncated value: %q", got)
	}
}

func TestSummarizeTranslatorsMarksDefault(t *testing.T) {
	t.Parallel()

	registry := translation.NewRegistryFromConfig(
		&config.Config{TranslationProvider: "google"},
		messages.New("en"),
		language.NewCatalog("de"),
	)

	summaries, err := summarizeTranslators(registry)
	if err != nil {
		t.Fatalf("summarizeTranslators failed: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 translators, got %d", len(summaries))
	}

	byID := map[string]translatorSummary{}
	for _, summary := range summaries {
		byID[summary.ID] = summary
	}
	if !byID["google"].Default || byID["local"].Default {
		t.Fatalf("expected google to be the default translator: %+v", summaries)
	}
	if byID["local"].ContentLengthLimit != translation.DefaultLocalContentLimit {
		t.Fatalf("unexpected local limit: %d", byID["local"].ContentLengthLimit)
	}
	if byID["google"].DefaultTarget != "de" {
		t.Fatalf("expected default target de, got %q", byID["google"].DefaultTarget)
	}
}

func TestLanguageRowsMarksDefaults(t *testing.T) {
	t.Parallel()

	rows := languageRows(languagesOutput{
		Source: []translation.LanguageOption{{Code: "auto", Label: "Auto", Default: true}},
		Target: []translation.LanguageOption{{Code: "en", Label: "English"}, {Code: "zh", Label: "Chinese", Default: true}},
	})
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "source" || rows[0][4] != "*" {
		t.Fatalf("unexpected source row: %v", rows[0])
	}
	if rows[1][4] != "" || rows[2][4] != "*" {
		t.Fatalf("unexpected default markers: %v", rows)
	}
}
