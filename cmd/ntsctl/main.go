// Command ntsctl drives the NTS configurator API from the shell.
//
//	ntsctl [-endpoint URL] [-token T] [-lang cs|en|pl] <command> [flags]
//
// Commands: models, recommend, show, set, export.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"

	"github.com/tphummel/nts_configurator/internal/apiclient"
	"github.com/tphummel/nts_configurator/internal/export"
	"github.com/tphummel/nts_configurator/internal/handlers"
	"github.com/tphummel/nts_configurator/internal/models"
)

func main() {
	log.SetFlags(0)
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("load .env: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	global := flag.NewFlagSet("ntsctl", flag.ContinueOnError)
	endpoint := global.String("endpoint", envOr("NTS_ENDPOINT", "http://localhost:8080"), "configurator base URL")
	token := global.String("token", os.Getenv("API_TOKEN"), "API bearer token")
	lang := global.String("lang", "", "display language (cs, en, pl)")
	if err := global.Parse(args); err != nil {
		return err
	}
	if global.NArg() == 0 {
		return errors.New("usage: ntsctl [flags] models|recommend|show|set|export [flags]")
	}

	client := apiclient.NewClient(*endpoint, *token)
	if *lang != "" {
		l := models.Lang(*lang)
		if !models.ValidLangs[l] {
			return fmt.Errorf("unknown language %q", *lang)
		}
		client = client.WithLang(l)
	}

	cmd, rest := global.Arg(0), global.Args()[1:]
	switch cmd {
	case "models":
		return listModels(ctx, client, out)
	case "recommend":
		return recommend(ctx, client, rest, out)
	case "show":
		return show(ctx, client, rest, out)
	case "set":
		return set(ctx, client, rest, out)
	case "export":
		return download(ctx, client, rest, out)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func listModels(ctx context.Context, client *apiclient.Client, out io.Writer) error {
	cards, err := client.Models(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tOSCILLATOR\tLAN\tSFP\tPOWER\tTAG")
	for _, c := range cards {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			c.ID, c.Name, c.Defaults.Oscillator, c.Defaults.LAN, c.Defaults.SFP, c.Defaults.Power, c.Tag)
	}
	return tw.Flush()
}

func recommend(ctx context.Context, client *apiclient.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("recommend", flag.ContinueOnError)
	band := fs.String("band", "", "device band (small, medium, large, xl)")
	accuracy := fs.String("accuracy", "", "accuracy tier (ntp_ms, ptp_ent, ptp_prtc, eprtc)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rec, err := client.Recommend(ctx, models.DevBand(*band), models.Accuracy(*accuracy))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%s\t%s\n", rec.Model.ID, rec.Model.Tag)
	return err
}

func show(ctx context.Context, client *apiclient.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	code := fs.String("c", "", "permalink code")
	if err := fs.Parse(args); err != nil {
		return err
	}
	v, err := client.Configuration(ctx, *code)
	if err != nil {
		return err
	}
	return printView(out, v)
}

// accessoryFlags collects repeated -add/-remove values.
type accessoryFlags []models.AccessoryID

func (a *accessoryFlags) String() string {
	parts := make([]string, len(*a))
	for i, id := range *a {
		parts[i] = string(id)
	}
	return strings.Join(parts, ",")
}

func (a *accessoryFlags) Set(v string) error {
	*a = append(*a, models.AccessoryID(v))
	return nil
}

func set(ctx context.Context, client *apiclient.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("set", flag.ContinueOnError)
	var (
		req    handlers.ChangeRequest
		add    accessoryFlags
		remove accessoryFlags
	)
	fs.StringVar(&req.Code, "c", "", "permalink code to start from")
	fs.BoolVar(&req.Reset, "reset", false, "clear accessories and contact details first")
	band := fs.String("band", "", "device band")
	accuracy := fs.String("accuracy", "", "accuracy tier")
	ports := fs.Int("ptp-ports", 0, "PTP port count (nts-5000)")
	company := fs.String("company", "", "company name")
	contact := fs.String("contact", "", "contact details")
	notes := fs.String("notes", "", "notes")
	fs.Var(&add, "add", "accessory to select (repeatable)")
	fs.Var(&remove, "remove", "accessory to deselect (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Only flags given on the command line become part of the request.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "band":
			req.DevBand = ptr(models.DevBand(*band))
		case "accuracy":
			req.Accuracy = ptr(models.Accuracy(*accuracy))
		case "ptp-ports":
			req.PTPPorts = ptr(*ports)
		case "company":
			req.Company = ptr(*company)
		case "contact":
			req.Contact = ptr(*contact)
		case "notes":
			req.Notes = ptr(*notes)
		}
	})
	if len(add)+len(remove) > 0 {
		req.Accessories = make(map[models.AccessoryID]bool, len(add)+len(remove))
		for _, id := range add {
			req.Accessories[id] = true
		}
		for _, id := range remove {
			req.Accessories[id] = false
		}
	}

	v, err := client.Update(ctx, req)
	if err != nil {
		return err
	}
	return printView(out, v)
}

func download(ctx context.Context, client *apiclient.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	code := fs.String("c", "", "permalink code")
	format := fs.String("format", "json", "json, yaml or xlsx")
	dest := fs.String("o", "", "output file; defaults to the server's filename, - for stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	f, err := export.ParseFormat(*format)
	if err != nil {
		return err
	}
	d, err := client.Export(ctx, *code, f)
	if err != nil {
		return err
	}

	name := *dest
	if name == "-" {
		_, err = out.Write(d.Body)
		return err
	}
	if name == "" {
		name = d.Filename
	}
	if err := os.WriteFile(name, d.Body, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	_, err = fmt.Fprintln(out, name)
	return err
}

func printView(out io.Writer, v *handlers.View) error {
	if _, err := fmt.Fprintf(out, "%s\n\ncode: %s\nlink: %s\n", v.Summary, v.Code, v.Permalink); err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v.Configuration)
}

func ptr[T any](v T) *T { return &v }
