package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/status"

	notesv1 "notes-backend/pkg/api/notes/v1"
)

const maxContentWidth = 40

func printNotes(w io.Writer, notes []*notesv1.Note) error {
	if asJSON {
		return printJSON(w, notes)
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Title", "Content", "Tags", "Updated"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, note := range notes {
		table.Append([]string{
			note.Id,
			note.Title,
			shorten(note.Content),
			strings.Join(note.Tags, ", "),
			note.UpdatedAt.Local().Format(time.DateTime),
		})
	}
	table.SetFooter([]string{"", "", "", "Total", fmt.Sprint(len(notes))})
	table.Render()
	return nil
}

func printNote(w io.Writer, note *notesv1.Note) error {
	if asJSON {
		return printJSON(w, note)
	}

	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk([][]string{
		{"ID", note.Id},
		{"Title", note.Title},
		{"Content", note.Content},
		{"Tags", strings.Join(note.Tags, ", ")},
		{"Created", note.CreatedAt.Local().Format(time.RFC3339)},
		{"Updated", note.UpdatedAt.Local().Format(time.RFC3339)},
	})
	table.Render()
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printError выводит gRPC статус вместе с ErrorInfo и BadRequest деталями
func printError(w io.Writer, err error) {
	st, ok := status.FromError(err)
	if !ok {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}

	fmt.Fprintf(w, "Error: %s: %s\n", st.Code(), st.Message())
	for _, detail := range st.Details() {
		switch d := detail.(type) {
		case *errdetails.ErrorInfo:
			fmt.Fprintf(w, "  reason: %s (%s)\n", d.GetReason(), d.GetDomain())
			for k, v := range d.GetMetadata() {
				fmt.Fprintf(w, "  %s: %s\n", k, v)
			}
		case *errdetails.BadRequest:
			for _, v := range d.GetFieldViolations() {
				fmt.Fprintf(w, "  field %s: %s\n", v.GetField(), v.GetDescription())
			}
		}
	}
}

func shorten(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if r := []rune(s); len(r) > maxContentWidth {
		return string(r[:maxContentWidth-3]) + "..."
	}
	return s
}
