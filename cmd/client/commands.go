package main

import (
	"context"

	"github.com/spf13/cobra"

	notesv1 "notes-backend/pkg/api/notes/v1"
)

var (
	noteTitle   string
	noteContent string
	noteTags    []string
)

func noteFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&noteTitle, "title", "t", "", "note title")
	cmd.Flags().StringVarP(&noteContent, "content", "c", "", "note content")
	cmd.Flags().StringSliceVar(&noteTags, "tag", nil, "note tag, may be repeated")
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all notes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return unary(cmd, func(ctx context.Context, client notesv1.NotesServiceClient) error {
			resp, err := client.ListNotes(ctx, &notesv1.ListNotesRequest{})
			if err != nil {
				return err
			}
			return printNotes(cmd.OutOrStdout(), resp.Notes)
		})
	},
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a note",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return unary(cmd, func(ctx context.Context, client notesv1.NotesServiceClient) error {
			resp, err := client.CreateNote(ctx, &notesv1.CreateNoteRequest{
				Title:   noteTitle,
				Content: noteContent,
				Tags:    noteTags,
			})
			if err != nil {
				return err
			}
			return printNote(cmd.OutOrStdout(), resp.Note)
		})
	},
}

var getCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Show a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return unary(cmd, func(ctx context.Context, client notesv1.NotesServiceClient) error {
			resp, err := client.GetNote(ctx, &notesv1.GetNoteRequest{Id: args[0]})
			if err != nil {
				return err
			}
			return printNote(cmd.OutOrStdout(), resp.Note)
		})
	},
}

var updateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Replace title, content and tags of a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return unary(cmd, func(ctx context.Context, client notesv1.NotesServiceClient) error {
			resp, err := client.UpdateNote(ctx, &notesv1.UpdateNoteRequest{
				Id:      args[0],
				Title:   noteTitle,
				Content: noteContent,
				Tags:    noteTags,
			})
			if err != nil {
				return err
			}
			return printNote(cmd.OutOrStdout(), resp.Note)
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return unary(cmd, func(ctx context.Context, client notesv1.NotesServiceClient) error {
			if _, err := client.DeleteNote(ctx, &notesv1.DeleteNoteRequest{Id: args[0]}); err != nil {
				return err
			}
			cmd.Printf("note %s deleted\n", args[0])
			return nil
		})
	},
}

func init() {
	noteFlags(createCmd)
	_ = createCmd.MarkFlagRequired("title")

	noteFlags(updateCmd)
	_ = updateCmd.MarkFlagRequired("title")
}
