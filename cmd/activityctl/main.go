// activityctl is a small CLI over the activity API:
//
//	activityctl list
//	activityctl add -title "Run" [-date 2024-01-01] [-notes "5k"]
//	activityctl done <id>
//	activityctl undone <id>
//	activityctl rm <id>
//
// The server address comes from -addr or ACTIVITYTRACK_ADDR.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"example.com/activitytrack/internal/client"
)

func main() {
	addr := flag.String("addr", defaultAddr(), "base URL of the activity API")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	api := client.New(*addr)
	ctx := context.Background()

	var err error
	switch args[0] {
	case "list":
		err = runList(ctx, api)
	case "add":
		err = runAdd(ctx, api, args[1:])
	case "done":
		err = runSetDone(ctx, api, args[1:], true)
	case "undone":
		err = runSetDone(ctx, api, args[1:], false)
	case "rm":
		err = runRemove(ctx, api, args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", args[0])
		usage()
		os.Exit(2)
	}

	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			fmt.Fprintf(os.Stderr, "error: %s\n", apiErr.Message)
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func defaultAddr() string {
	if addr := os.Getenv("ACTIVITYTRACK_ADDR"); addr != "" {
		return addr
	}
	return "http://127.0.0.1:8080"
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: activityctl [-addr URL] <list|add|done|undone|rm> [args]")
	flag.PrintDefaults()
}

func runList(ctx context.Context, api *client.Client) error {
	items, err := api.List(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("no activities")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDONE\tDATE\tTITLE\tNOTES")
	for _, item := range items {
		done := " "
		if item.Done {
			done = "x"
		}
		date := ""
		if item.Date != nil {
			date = *item.Date
		}
		fmt.Fprintf(w, "%s\t[%s]\t%s\t%s\t%s\n", item.ID, done, date, item.Title, item.Notes)
	}
	return w.Flush()
}

func runAdd(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	title := fs.String("title", "", "activity title (required)")
	date := fs.String("date", "", "optional date, YYYY-MM-DD")
	notes := fs.String("notes", "", "optional notes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	input := client.NewActivity{Title: *title, Notes: *notes}
	if *date != "" {
		input.Date = date
	}

	created, err := api.Create(ctx, input)
	if err != nil {
		return err
	}
	fmt.Printf("created %s\n", created.ID)
	return nil
}

func runSetDone(ctx context.Context, api *client.Client, args []string, done bool) error {
	if len(args) != 1 {
		return errors.New("expected exactly one id")
	}
	updated, err := api.Update(ctx, args[0], client.Patch{Done: &done})
	if err != nil {
		return err
	}
	fmt.Printf("%s done=%v\n", updated.ID, updated.Done)
	return nil
}

func runRemove(ctx context.Context, api *client.Client, args []string) error {
	if len(args) != 1 {
		return errors.New("expected exactly one id")
	}
	if err := api.Delete(ctx, args[0]); err != nil {
		return err
	}
	fmt.Println("deleted")
	return nil
}
