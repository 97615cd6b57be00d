// Command assess-admin manages college records and database schema from the
// terminal. It talks directly to the database; the running service picks up
// changes through its college cache TTL.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/devxconsultancy/assess-ui-api/config"
	"github.com/devxconsultancy/assess-ui-api/internal/bootstrap"
	"github.com/devxconsultancy/assess-ui-api/internal/data"
	"github.com/devxconsultancy/assess-ui-api/internal/domain/model"
	"github.com/devxconsultancy/assess-ui-api/internal/service"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
}

const defaultMigrationTimeout = 5 * time.Minute

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		printUsage(os.Stdout)
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmdName)
		printUsage(os.Stderr)
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	cmdCtx := &commandContext{
		Ctx:    context.Background(),
		Logger: logger,
		Config: cfg,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must signal command failure to shell scripts
	}
}

func commands() map[string]command {
	return map[string]command{
		"college-create": {
			name:        "college-create",
			description: "register a college with its slug and required email domain",
			run:         runCollegeCreate,
		},
		"college-list": {
			name:        "college-list",
			description: "list registered colleges",
			run:         runCollegeList,
		},
		"resource-add": {
			name:        "resource-add",
			description: "assign a named resource to a college",
			run:         runResourceAdd,
		},
		"resource-list": {
			name:        "resource-list",
			description: "list resources assigned to a college",
			run:         runResourceList,
		},
		"migrate": {
			name:        "migrate",
			description: "apply pending database migrations",
			run:         runMigrate,
		},
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "Usage: assess-admin <command> [flags]\n\nCommands:\n")
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(tw, "  %s\t%s\n", name, cmds[name].description)
	}
	_ = tw.Flush()
}

// connectColleges opens the database and builds the college service. The
// returned closer must be called when the command finishes.
func connectColleges(ctx *commandContext) (*service.CollegeService, func(), error) {
	db, err := connectDB(ctx)
	if err != nil {
		return nil, nil, err
	}
	closer := func() {
		if cerr := db.Close(); cerr != nil {
			ctx.Logger.Error("close database failed", "error", cerr)
		}
	}
	return service.NewCollegeService(data.NewCollegeRepo(db)), closer, nil
}

func connectDB(ctx *commandContext) (*sql.DB, error) {
	return bootstrap.ConnectDB(bootstrap.DatabaseConfig{
		DBConfig:    ctx.Config.Postgres,
		RedisConfig: ctx.Config.Redis,
		Logger:      ctx.Logger,
	})
}

func runCollegeCreate(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("college-create", flag.ContinueOnError)
	name := fs.String("name", "", "display name (required)")
	slug := fs.String("slug", "", "URL slug, lowercase (required)")
	domain := fs.String("domain", "", "required email domain, e.g. acme.edu (required)")
	status := fs.String("status", string(model.CollegeStatusActive), "active or inactive")
	if err := fs.Parse(args); err != nil {
		return err
	}

	colleges, closer, err := connectColleges(ctx)
	if err != nil {
		return err
	}
	defer closer()

	parsedStatus, ok := model.ParseCollegeStatus(*status)
	if !ok {
		return fmt.Errorf("invalid status %q", *status)
	}

	college, err := colleges.Create(ctx.Ctx, &model.CreateCollegeRequest{
		Name:        *name,
		Slug:        *slug,
		EmailDomain: *domain,
		Status:      parsedStatus,
	})
	if err != nil {
		return err
	}

	ctx.Logger.InfoContext(ctx.Ctx, "college created",
		"id", college.ID, "slug", college.Slug, "email_domain", college.EmailDomain)
	return nil
}

func runCollegeList(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("college-list", flag.ContinueOnError)
	limit := fs.Int("limit", 50, "maximum rows to print")
	offset := fs.Int("offset", 0, "rows to skip")
	if err := fs.Parse(args); err != nil {
		return err
	}

	colleges, closer, err := connectColleges(ctx)
	if err != nil {
		return err
	}
	defer closer()

	list, err := colleges.List(ctx.Ctx, *limit, *offset)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SLUG\tNAME\tEMAIL DOMAIN\tSTATUS\tCREATED")
	for _, c := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			c.Slug, c.Name, c.EmailDomain, c.Status, c.CreatedAt.Format(time.RFC3339))
	}
	return tw.Flush()
}

func runResourceAdd(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("resource-add", flag.ContinueOnError)
	slug := fs.String("college", "", "college slug (required)")
	name := fs.String("name", "", "resource name (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	colleges, closer, err := connectColleges(ctx)
	if err != nil {
		return err
	}
	defer closer()

	resource, err := colleges.AddResource(ctx.Ctx, *slug, *name)
	if err != nil {
		return err
	}

	ctx.Logger.InfoContext(ctx.Ctx, "resource added",
		"id", resource.ID, "college", *slug, "name", resource.Name)
	return nil
}

func runResourceList(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("resource-list", flag.ContinueOnError)
	slug := fs.String("college", "", "college slug (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	colleges, closer, err := connectColleges(ctx)
	if err != nil {
		return err
	}
	defer closer()

	resources, err := colleges.Resources(ctx.Ctx, *slug)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCREATED")
	for _, r := range resources {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.ID, r.Name, r.CreatedAt.Format(time.RFC3339))
	}
	return tw.Flush()
}

func runMigrate(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	db, err := connectDB(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			ctx.Logger.Error("close database failed", "error", cerr)
		}
	}()

	migrateCtx, cancel := context.WithTimeout(ctx.Ctx, defaultMigrationTimeout)
	defer cancel()
	return bootstrap.RunMigrations(migrateCtx, db, ctx.Logger)
}
