package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/runoshun/ironjira/internal/app"
	"github.com/runoshun/ironjira/internal/domain"
	"github.com/runoshun/ironjira/internal/tui"
	"github.com/runoshun/ironjira/internal/usecase"
)

// newCreateCommand creates the create command for adding a ticket.
func newCreateCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title       string
		Description string
		Editor      bool
	}

	cmd := &cobra.Command{
		Use:     "create",
		Aliases: []string{"new"},
		Short:   "Create a new ticket",
		Long: `Create a new ticket in the To Do column.

The title is required and limited to 50 characters. The description is
optional and limited to 3000 characters.

Examples:
  jira create --title "Fix login"
  jira create -t "Fix login" -d "Users with long emails cannot sign in"
  jira create -t "Fix login" --editor`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.Editor {
				text, err := editTextFunc(opts.Description)
				if err != nil {
					return err
				}
				opts.Description = text
			}

			uc := c.CreateTicketUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.CreateTicketInput{
				Title:       opts.Title,
				Description: opts.Description,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created ticket #%d: %s\n", out.Ticket.ID(), out.Ticket.Title())
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Title, "title", "t", "", "Ticket title (required)")
	cmd.Flags().StringVarP(&opts.Description, "description", "d", "", "Ticket description")
	cmd.Flags().BoolVarP(&opts.Editor, "editor", "e", false, "Write the description in $EDITOR")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

// newListCommand creates the list command for listing tickets.
func newListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Statuses []string
		JSON     bool
	}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tickets",
		Long: `List tickets ordered by id.

Use --status (repeatable) to keep only tickets in the given statuses.

Examples:
  jira list
  jira list --status todo --status inprogress
  jira list --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			statuses := make([]domain.Status, 0, len(opts.Statuses))
			for _, raw := range opts.Statuses {
				s, err := domain.ParseStatus(raw)
				if err != nil {
					return err
				}
				statuses = append(statuses, s)
			}

			uc := c.ListTicketsUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ListTicketsInput{
				Statuses: statuses,
			})
			if err != nil {
				return err
			}

			if opts.JSON {
				return writeJSON(cmd.OutOrStdout(), toJSONTickets(out.Tickets))
			}
			printTicketList(cmd.OutOrStdout(), out.Tickets)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Statuses, "status", "s", nil, "Filter by status (todo, inprogress, blocked, done)")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output in JSON format")

	return cmd
}

// printTicketList prints tickets in a table format.
func printTicketList(w io.Writer, tickets []domain.Ticket) {
	if len(tickets) == 0 {
		_, _ = fmt.Fprintln(w, "No tickets found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tSTATUS\tTITLE\tCOMMENTS\tUPDATED")
	for _, t := range tickets {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n",
			t.ID(),
			t.Status().Display(),
			t.Title(),
			len(t.Comments()),
			t.UpdatedAt().Local().Format(time.DateTime),
		)
	}
	_ = tw.Flush()
}

// newShowCommand creates the show command for displaying ticket details.
func newShowCommand(c *app.Container) *cobra.Command {
	var opts struct {
		JSON bool
	}

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Display ticket details",
		Long: `Display the title, status, description and comments of a ticket.

Examples:
  jira show 1
  jira show #1 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTicketID(args[0])
			if err != nil {
				return err
			}

			uc := c.ShowTicketUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ShowTicketInput{TicketID: id})
			if err != nil {
				return err
			}

			if opts.JSON {
				return writeJSON(cmd.OutOrStdout(), toJSONTicket(out.Ticket))
			}
			printTicketDetails(cmd.OutOrStdout(), out.Ticket)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output in JSON format")

	return cmd
}

// printTicketDetails prints a single ticket.
func printTicketDetails(w io.Writer, t domain.Ticket) {
	_, _ = fmt.Fprintf(w, "#%d %s\n\n", t.ID(), t.Title())
	_, _ = fmt.Fprintf(w, "Status:  %s\n", tui.StatusStyle(t.Status()).Render(tui.StatusBadge(t.Status())))
	_, _ = fmt.Fprintf(w, "Created: %s\n", t.CreatedAt().Local().Format(time.DateTime))
	_, _ = fmt.Fprintf(w, "Updated: %s\n", t.UpdatedAt().Local().Format(time.DateTime))

	if !t.Description().IsEmpty() {
		_, _ = fmt.Fprintf(w, "\nDescription:\n%s\n", t.Description())
	}

	comments := t.Comments()
	if len(comments) > 0 {
		_, _ = fmt.Fprintf(w, "\nComments (%d):\n", len(comments))
		for _, cm := range comments {
			_, _ = fmt.Fprintf(w, "- %s\n", cm)
		}
	}
}

// newEditCommand creates the edit command for changing title or description.
func newEditCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title       string
		Description string
		Editor      bool
	}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit ticket title or description",
		Long: `Edit the title and/or description of an existing ticket.

At least one of --title, --description or --editor must be given. Pass
an empty --description to clear it. --editor opens the current
description in $EDITOR.

Examples:
  jira edit 1 --title "Fix login on Safari"
  jira edit 1 --description ""
  jira edit 1 --editor`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTicketID(args[0])
			if err != nil {
				return err
			}

			in := usecase.EditTicketInput{TicketID: id}
			if cmd.Flags().Changed("title") {
				in.Title = &opts.Title
			}
			if cmd.Flags().Changed("description") {
				in.Description = &opts.Description
			}
			if opts.Editor {
				text, err := editDescription(cmd, c, id, in.Description)
				if err != nil {
					return err
				}
				in.Description = &text
			}

			uc := c.EditTicketUseCase()
			out, err := uc.Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated ticket #%d: %s\n", out.Ticket.ID(), out.Ticket.Title())
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&opts.Description, "description", "d", "", "New description")
	cmd.Flags().BoolVarP(&opts.Editor, "editor", "e", false, "Edit the description in $EDITOR")

	return cmd
}

// editDescription opens the editor on seed, or on the ticket's current
// description when seed is nil.
func editDescription(cmd *cobra.Command, c *app.Container, id domain.TicketID, seed *string) (string, error) {
	if seed != nil {
		return editTextFunc(*seed)
	}
	out, err := c.ShowTicketUseCase().Execute(cmd.Context(), usecase.ShowTicketInput{TicketID: id})
	if err != nil {
		return "", err
	}
	return editTextFunc(out.Ticket.Description().String())
}

// newMoveCommand creates the move command for changing ticket status.
func newMoveCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <id> <status>",
		Short: "Change ticket status",
		Long: `Move a ticket to another status.

Statuses: todo, inprogress, blocked, done (case-insensitive).
Any transition is allowed.

Examples:
  jira move 1 inprogress
  jira move #3 done`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTicketID(args[0])
			if err != nil {
				return err
			}
			status, err := domain.ParseStatus(args[1])
			if err != nil {
				return err
			}

			uc := c.MoveTicketUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.MoveTicketInput{
				TicketID: id,
				Status:   status,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Moved ticket #%d: %s → %s\n",
				out.Ticket.ID(), out.Previous.Display(), out.Ticket.Status().Display())
			return nil
		},
	}

	return cmd
}

// newCommentCommand creates the comment command for appending a comment.
func newCommentCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment <id> <message>...",
		Short: "Add a comment to a ticket",
		Long: `Append a comment to a ticket.

Remaining arguments are joined with spaces, so quoting is optional.

Examples:
  jira comment 1 "Reproduced on staging"
  jira comment 1 waiting for review`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTicketID(args[0])
			if err != nil {
				return err
			}

			uc := c.AddCommentUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.AddCommentInput{
				TicketID: id,
				Message:  strings.Join(args[1:], " "),
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added comment to ticket #%d (%d total)\n",
				out.Ticket.ID(), len(out.Ticket.Comments()))
			return nil
		},
	}

	return cmd
}

// newDeleteCommand creates the delete command for removing a ticket.
func newDeleteCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a ticket",
		Long: `Delete a ticket permanently.

Ids are never reused: the next created ticket still gets a fresh id.

Examples:
  jira delete 1
  jira rm #2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTicketID(args[0])
			if err != nil {
				return err
			}

			uc := c.DeleteTicketUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.DeleteTicketInput{TicketID: id})
			if err != nil {
				return err
			}

			t := out.Deleted.Ticket()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted ticket #%d: %s\n", t.ID(), t.Title())
			return nil
		},
	}

	return cmd
}

// errInvalidTicketID is returned for arguments that are not positive ids.
var errInvalidTicketID = errors.New("invalid ticket ID")

// parseTicketID parses a ticket ID argument, accepting an optional leading #.
func parseTicketID(s string) (domain.TicketID, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "#")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: %q", errInvalidTicketID, s)
	}
	return domain.TicketID(id), nil
}

// jsonTicket is the JSON shape of a ticket for --json output.
type jsonTicket struct {
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Comments    []string  `json:"comments"`
	ID          uint64    `json:"id"`
}

func toJSONTicket(t domain.Ticket) jsonTicket {
	comments := make([]string, 0, len(t.Comments()))
	for _, cm := range t.Comments() {
		comments = append(comments, cm.String())
	}
	return jsonTicket{
		ID:          uint64(t.ID()),
		Title:       t.Title().String(),
		Description: t.Description().String(),
		Status:      string(t.Status()),
		Comments:    comments,
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}
}

func toJSONTickets(tickets []domain.Ticket) []jsonTicket {
	out := make([]jsonTicket, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, toJSONTicket(t))
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
