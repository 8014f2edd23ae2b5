package types

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
)

func formatDetailsSection(details EmailDetails) (string, error) {
	detailsJSON, err := sonic.Marshal(details)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("# Collected email details JSON:\n```json\n%s\n```", string(detailsJSON)), nil
}

func formatMissingFieldsSection(fields []string) string {
	if len(fields) == 0 {
		return ""
	}
	var buf strings.Builder
	buf.WriteString("# Missing required fields:\n")
	table := tablewriter.NewTable(&buf, tablewriter.WithRenderer(renderer.NewMarkdown()))
	table.Header("Field", "Status")
	for _, field := range fields {
		_ = table.Append(field, "missing")
	}
	_ = table.Render()
	return buf.String()
}

// FormatDetailsPrompt renders the collected details plus the still-missing
// field list as the user-message body handed to a collaborator.
func FormatDetailsPrompt(details EmailDetails, missing []string) (string, error) {
	detailsSection, err := formatDetailsSection(details)
	if err != nil {
		return "", err
	}
	sections := []string{detailsSection}
	if s := formatMissingFieldsSection(missing); s != "" {
		sections = append(sections, s)
	}
	return strings.Join(sections, "\n\n"), nil
}

// FormatDocumentPrompt renders a generated email plus user feedback for the
// revision collaborator.
func FormatDocumentPrompt(doc EmailDocument, feedback string) (string, error) {
	docJSON, err := sonic.Marshal(doc)
	if err != nil {
		return "", err
	}
	sections := []string{
		fmt.Sprintf("# Current email JSON:\n```json\n%s\n```", string(docJSON)),
		fmt.Sprintf("# User feedback:\n%s", feedback),
	}
	return strings.Join(sections, "\n\n"), nil
}
