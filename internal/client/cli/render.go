package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmitrijs2005/taskkeeper/internal/api"
)

func writeTable(out io.Writer, tasks []api.Task) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tDUE\tSTATUS\tPRIORITY")
	for _, t := range tasks {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Title, t.DueDate, t.Status, t.Priority)
	}
	tw.Flush()
}

func renderList(out io.Writer, list *api.TaskList) {
	if len(list.Tasks) == 0 {
		fmt.Fprintf(out, "No tasks on page %d (total %d)\n", list.Page, list.Total)
		return
	}
	writeTable(out, list.Tasks)
	pages := (list.Total + int64(list.Limit) - 1) / int64(max(list.Limit, 1))
	fmt.Fprintf(out, "Page %d of %d, %d tasks total\n", list.Page, pages, list.Total)
}

func renderBoard(out io.Writer, b *api.Board) {
	sections := []struct {
		name  string
		tasks []api.Task
	}{
		{"HIGH", b.High},
		{"MEDIUM", b.Medium},
		{"LOW", b.Low},
	}
	for _, s := range sections {
		fmt.Fprintf(out, "== %s (%d) ==\n", s.name, len(s.tasks))
		if len(s.tasks) > 0 {
			writeTable(out, s.tasks)
		}
	}
}

func renderTask(out io.Writer, t *api.Task) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", t.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", t.Title)
	fmt.Fprintf(tw, "Due:\t%s\n", t.DueDate)
	fmt.Fprintf(tw, "Status:\t%s\n", t.Status)
	fmt.Fprintf(tw, "Priority:\t%s\n", t.Priority)
	fmt.Fprintf(tw, "Owner:\t%s <%s>\n", t.AssignedTo.Name, t.AssignedTo.Email)
	fmt.Fprintf(tw, "Version:\t%d\n", t.Version)
	fmt.Fprintf(tw, "Updated:\t%s\n", t.UpdatedAt.Format("2006-01-02 15:04"))
	tw.Flush()
	fmt.Fprintf(out, "\n%s\n", t.Description)
}
