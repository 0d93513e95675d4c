package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"horse.fit/translate/internal/cli"
	"horse.fit/translate/internal/db"
)

func runFaults(args []string) int {
	fs := flag.NewFlagSet("faults", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 30*time.Second, "Command timeout")
	provider := fs.String("provider", "", "Only faults of this translator id")
	classified := fs.String("classified", "", "Filter by classification: true or false")
	limit := fs.Int("limit", 50, "Maximum rows to return")
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

	classifiedFilter, err := parseClassifiedFilter(*classified)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if *limit <= 0 {
		fmt.Fprintln(os.Stderr, "--limit must be > 0")
		return 2
	}

	rt, err := loadRuntime(envLoader, true)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer rt.Close()

	if rt.pool == nil {
		fmt.Fprintln(os.Stderr, "fault ledger is disabled: set DATABASE_URL")
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	rows, err := rt.pool.ListRecentFaults(ctx, db.FaultFilter{
		TranslatorID: strings.TrimSpace(*provider),
		Classified:   classifiedFilter,
		Limit:        *limit,
	})
	if err != nil {
		rt.logger.Error().Err(err).Msg("list faults failed")
		fmt.Fprintf(os.Stderr, "List faults failed: %v\n", err)
		return 1
	}

	if outputFormat == outputFormatJSON {
		if err := printJSON(rows); err != nil {
			fmt.Fprintf(os.Stderr, "write output: %v\n", err)
			return 1
		}
		return 0
	}

	if err := writeTable([]string{"ID", "CREATED_AT", "TRANSLATOR", "CLASSIFIED", "MESSAGE", "ERROR_TYPE", "ERROR"}, faultRows(rows)); err != nil {
		fmt.Fprintf(os.Stderr, "write output: %v\n", err)
		return 1
	}
	return 0
}

func parseClassifiedFilter(raw string) (*bool, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(trimmed)
	if err != nil {
		return nil, fmt.Errorf("--classified must be true or false")
	}
	return &value, nil
}

func faultRows(rows []db.TranslationFault) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, []string{
			strconv.FormatInt(row.FaultID, 10),
			formatUTCTimestamp(row.CreatedAt),
			row.TranslatorID,
			strconv.FormatBool(row.Classified),
			truncateForTable(pointerStringOrEmpty(row.DisplayMessage), 48),
			row.ErrorType,
			truncateForTable(row.ErrorText, 64),
		})
	}
	return out
}
