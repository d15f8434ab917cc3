package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// titleCase renders ledger statuses and vendor names for table display.
func titleCase(value string) string {
	return titleCaser.String(strings.ReplaceAll(strings.TrimSpace(value), "_", " "))
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

func printJSON(out io.Writer, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	fmt.Fprintln(out, string(data))
	return nil
}

func formatMiB(mib int) string {
	if mib <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d MiB", mib)
}
