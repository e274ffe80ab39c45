package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"golang.org/x/oauth2"

	"flowlyfe/internal/caldav"
	"flowlyfe/internal/config"
	"flowlyfe/internal/export"
	"flowlyfe/internal/extract"
	"flowlyfe/internal/google"
	"flowlyfe/internal/journal"
	"flowlyfe/internal/models"
	"flowlyfe/internal/store"
	"flowlyfe/internal/triage"
)

func main() {
	// Load .env file first, but don't error if it doesn't exist.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "flowlyfe",
		Usage: "Capture freeform notes, triage them into thoughts, todos, contacts and events, and keep a journal.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "Path to the config file.", EnvVars: []string{"FLOWLYFE_CONFIG"}},
		},
		Commands: []*cli.Command{
			captureCommand(),
			inboxCommand(),
			triageCommand(),
			todoCommand(),
			eventCommand(),
			journalCommand(),
			exportCommand(),
			authCommand(),
			calendarsCommand(),
			pushCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func captureCommand() *cli.Command {
	return &cli.Command{
		Name:      "capture",
		Usage:     "Add a freeform note to the inbox.",
		ArgsUsage: "[text]",
		Action: func(c *cli.Context) error {
			logger := setupLogger()

			content := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			if content == "" {
				// No args: read the capture from stdin so multi-line notes work.
				data, err := readStdin()
				if err != nil {
					return err
				}
				content = strings.TrimSpace(data)
			}
			if content == "" {
				return fmt.Errorf("please enter something to capture")
			}

			st, err := openStore(c, logger)
			if err != nil {
				return err
			}

			item := models.Item{
				ID:        caldav.GenerateUID(),
				Content:   content,
				CreatedAt: time.Now(),
			}
			st.State().AddItem(item)
			if err := st.Save(); err != nil {
				return err
			}

			fmt.Printf("Captured! (%d items in inbox)\n", len(st.State().Inbox))
			return nil
		},
	}
}

func inboxCommand() *cli.Command {
	return &cli.Command{
		Name:  "inbox",
		Usage: "List the inbox, newest first.",
		Subcommands: []*cli.Command{
			{
				Name:      "rm",
				Usage:     "Delete an inbox item without triaging it.",
				ArgsUsage: "<item-id>",
				Action: func(c *cli.Context) error {
					logger := setupLogger()
					st, err := openStore(c, logger)
					if err != nil {
						return err
					}
					if _, err := st.State().RemoveItem(c.Args().First()); err != nil {
						return err
					}
					return st.Save()
				},
			},
		},
		Action: func(c *cli.Context) error {
			logger := setupLogger()
			st, err := openStore(c, logger)
			if err != nil {
				return err
			}

			items := st.State().Inbox
			if len(items) == 0 {
				fmt.Println("Your inbox is empty. Capture your first thought!")
				return nil
			}
			now := time.Now()
			for _, item := range items {
				fmt.Printf("%s  %s  %s\n", item.ID, relativeTime(now, item.CreatedAt), firstLine(item.Content))
			}
			return nil
		},
	}
}

func triageCommand() *cli.Command {
	return &cli.Command{
		Name:      "triage",
		Usage:     "File an inbox item into a typed bucket.",
		ArgsUsage: "<item-id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "as", Required: true, Usage: "Bucket: thought, todo, contact or event."},
			&cli.BoolFlag{Name: "preview", Usage: "Show what extraction would produce without filing the item."},
		},
		Action: func(c *cli.Context) error {
			logger := setupLogger()

			kind, err := triage.ParseKind(c.String("as"))
			if err != nil {
				return err
			}

			st, err := openStore(c, logger)
			if err != nil {
				return err
			}

			if c.Bool("preview") {
				item, err := st.State().FindItem(c.Args().First())
				if err != nil {
					return err
				}
				return printPreview(item.Content, kind)
			}

			return triage.New(logger, st, nil).File(c.Args().First(), kind)
		},
	}
}

func todoCommand() *cli.Command {
	return &cli.Command{
		Name:  "todo",
		Usage: "Manage the todo bucket. Dated todos keep a calendar mirror in sync.",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List todos.",
				Action: func(c *cli.Context) error {
					logger := setupLogger()
					st, err := openStore(c, logger)
					if err != nil {
						return err
					}
					for _, task := range st.State().Todos {
						mark := " "
						if task.Completed {
							mark = "x"
						}
						due := task.DueDate
						if due != "" && task.DueTime != "" {
							due += " " + task.DueTime
						}
						fmt.Printf("[%s] %s  %-10s %s  %s\n", mark, task.ID, task.List, due, task.Text)
					}
					return nil
				},
			},
			{
				Name:      "done",
				Usage:     "Toggle a todo's completed state.",
				ArgsUsage: "<todo-id>",
				Action: func(c *cli.Context) error {
					logger := setupLogger()
					st, err := openStore(c, logger)
					if err != nil {
						return err
					}
					task, err := st.State().FindTask(c.Args().First())
					if err != nil {
						return err
					}
					task.Completed = !task.Completed
					if err := triage.New(logger, st, nil).UpdateTask(task); err != nil {
						return err
					}
					return st.Save()
				},
			},
			{
				Name:      "due",
				Usage:     "Set a todo's due date and optional time, or clear both by passing no date.",
				ArgsUsage: "<todo-id> [YYYY-MM-DD [HH:MM]]",
				Action: func(c *cli.Context) error {
					logger := setupLogger()
					st, err := openStore(c, logger)
					if err != nil {
						return err
					}
					task, err := st.State().FindTask(c.Args().First())
					if err != nil {
						return err
					}

					task.DueDate = ""
					task.DueTime = ""
					if date := c.Args().Get(1); date != "" {
						if _, err := time.Parse("2006-01-02", date); err != nil {
							return fmt.Errorf("invalid due date %q (want YYYY-MM-DD): %w", date, err)
						}
						task.DueDate = date
					}
					if clock := c.Args().Get(2); clock != "" {
						if _, err := time.Parse("15:04", clock); err != nil {
							return fmt.Errorf("invalid due time %q (want HH:MM): %w", clock, err)
						}
						task.DueTime = clock
					}

					if err := triage.New(logger, st, nil).UpdateTask(task); err != nil {
						return err
					}
					return st.Save()
				},
			},
			{
				Name:      "rm",
				Usage:     "Delete a todo and its calendar mirror, if any.",
				ArgsUsage: "<todo-id>",
				Action: func(c *cli.Context) error {
					logger := setupLogger()
					st, err := openStore(c, logger)
					if err != nil {
						return err
					}
					triage.New(logger, st, nil).DeleteTask(c.Args().First())
					return st.Save()
				},
			},
		},
	}
}

func eventCommand() *cli.Command {
	return &cli.Command{
		Name:  "event",
		Usage: "Manage the events bucket.",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List events.",
				Action: func(c *cli.Context) error {
					logger := setupLogger()
					st, err := openStore(c, logger)
					if err != nil {
						return err
					}
					for _, e := range st.State().Events {
						date := ""
						if e.StartDate != nil {
							date = e.StartDate.Format("2006-01-02")
						}
						span := e.StartTime
						if e.EndTime != "" {
							span += "-" + e.EndTime
						}
						fmt.Printf("%s  %-10s %-11s %s\n", e.ID, date, span, e.Title)
					}
					return nil
				},
			},
			{
				Name:      "edit",
				Usage:     "Change an event's fields; edits cascade into a linked todo.",
				ArgsUsage: "<event-id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Usage: "New title."},
					&cli.StringFlag{Name: "date", Usage: "New date, YYYY-MM-DD."},
					&cli.StringFlag{Name: "start", Usage: "New start time, e.g. 3pm or 15:00."},
					&cli.StringFlag{Name: "end", Usage: "New end time."},
					&cli.StringFlag{Name: "location", Usage: "New location."},
				},
				Action: func(c *cli.Context) error {
					logger := setupLogger()
					st, err := openStore(c, logger)
					if err != nil {
						return err
					}
					e, err := st.State().FindEvent(c.Args().First())
					if err != nil {
						return err
					}

					if c.IsSet("title") {
						e.Title = c.String("title")
					}
					if c.IsSet("date") {
						d, err := time.ParseInLocation("2006-01-02", c.String("date"), time.Local)
						if err != nil {
							return fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", c.String("date"), err)
						}
						e.StartDate = &d
					}
					if c.IsSet("start") {
						e.StartTime = c.String("start")
					}
					if c.IsSet("end") {
						e.EndTime = c.String("end")
					}
					if c.IsSet("location") {
						e.Location = c.String("location")
					}

					if err := triage.New(logger, st, nil).UpdateEvent(e); err != nil {
						return err
					}
					return st.Save()
				},
			},
			{
				Name:      "rm",
				Usage:     "Delete an event; a todo it spawned goes with it, a todo it mirrors stays.",
				ArgsUsage: "<event-id>",
				Action: func(c *cli.Context) error {
					logger := setupLogger()
					st, err := openStore(c, logger)
					if err != nil {
						return err
					}
					triage.New(logger, st, nil).DeleteEvent(c.Args().First())
					return st.Save()
				},
			},
		},
	}
}

func journalCommand() *cli.Command {
	return &cli.Command{
		Name:  "journal",
		Usage: "Write and browse journal entries.",
		Subcommands: []*cli.Command{
			{
				Name:      "write",
				Usage:     "Save a freeform entry; the body is read from the arguments or stdin.",
				ArgsUsage: "[text]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Usage: "Entry title; defaults to the date."},
				},
				Action: func(c *cli.Context) error {
					logger := setupLogger()
					st, err := openStore(c, logger)
					if err != nil {
						return err
					}

					content := strings.Join(c.Args().Slice(), " ")
					if strings.TrimSpace(content) == "" {
						content, err = readStdin()
						if err != nil {
							return err
						}
					}

					entry, err := journal.New(logger, st, nil).AddFreeform(c.String("title"), content)
					if err != nil {
						return err
					}
					fmt.Printf("Entry saved to your journal. (%d words)\n", journal.WordCount(entry.Content))
					return nil
				},
			},
			{
				Name:      "reflect",
				Usage:     "Save a daily reflection from field=value arguments (e.g. gratitude=\"the rain stopped\").",
				ArgsUsage: "field=value ...",
				Action: func(c *cli.Context) error {
					logger := setupLogger()
					st, err := openStore(c, logger)
					if err != nil {
						return err
					}

					sections := map[string]string{}
					for _, arg := range c.Args().Slice() {
						field, value, found := strings.Cut(arg, "=")
						if !found {
							return fmt.Errorf("argument %q is not field=value (fields: %s)", arg, strings.Join(journal.RoteformFields, ", "))
						}
						sections[field] = value
					}

					entry, err := journal.New(logger, st, nil).AddRoteform(sections)
					if err != nil {
						return err
					}
					fmt.Printf("Reflection saved. Nice work. (%s)\n", entry.Title)
					return nil
				},
			},
			{
				Name:      "flow",
				Usage:     "Add a quick capture to today's flowform.",
				ArgsUsage: "[text]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "category", Required: true, Usage: "Flowform category (mood, gratitude, event, accomplishment, idea, quote, picture)."},
					&cli.StringFlag{Name: "context", Usage: "Optional context, e.g. a note attached to a mood."},
				},
				Action: func(c *cli.Context) error {
					logger := setupLogger()
					st, err := openStore(c, logger)
					if err != nil {
						return err
					}

					text := strings.Join(c.Args().Slice(), " ")
					_, err = journal.New(logger, st, nil).AddFlowformNote(c.String("category"), text, c.String("context"))
					if err != nil {
						return err
					}
					fmt.Printf("Saved to today's flowform under %s.\n", c.String("category"))
					return nil
				},
			},
			{
				Name:  "list",
				Usage: "List journal entries, newest first.",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "type", Usage: "Filter by entry type (flowform, freeform, roteform)."},
					&cli.StringFlag{Name: "search", Usage: "Case-insensitive search over titles and bodies."},
				},
				Action: func(c *cli.Context) error {
					logger := setupLogger()
					st, err := openStore(c, logger)
					if err != nil {
						return err
					}

					entries := journal.New(logger, st, nil).Entries(models.JournalType(c.String("type")), c.String("search"))
					if len(entries) == 0 {
						fmt.Println("No journal entries found.")
						return nil
					}
					for _, entry := range entries {
						fmt.Printf("%s  %-9s  %s\n", entry.ID, entry.Type, entry.Title)
					}
					return nil
				},
			},
			{
				Name:  "prompt",
				Usage: "Print a random freeform writing prompt.",
				Action: func(c *cli.Context) error {
					fmt.Println(journal.RandomPrompt())
					return nil
				},
			},
		},
	}
}

func exportCommand() *cli.Command {
	outFlag := &cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Write to a file instead of stdout."}
	return &cli.Command{
		Name:  "export",
		Usage: "Serialize triaged records for use elsewhere.",
		Subcommands: []*cli.Command{
			{
				Name:      "vcard",
				Usage:     "Render a triaged contact as a vCard.",
				ArgsUsage: "<contact-id>",
				Flags:     []cli.Flag{outFlag},
				Action: func(c *cli.Context) error {
					logger := setupLogger()
					st, err := openStore(c, logger)
					if err != nil {
						return err
					}

					card, err := st.State().FindCard(c.Args().First())
					if err != nil {
						return err
					}
					return writeOut(c.String("out"), export.VCard(card.Contact))
				},
			},
			{
				Name:      "link",
				Usage:     "Print a prefilled Google Calendar URL for a triaged event.",
				ArgsUsage: "<event-id>",
				Action: func(c *cli.Context) error {
					logger := setupLogger()
					st, err := openStore(c, logger)
					if err != nil {
						return err
					}

					e, err := st.State().FindEvent(c.Args().First())
					if err != nil {
						return err
					}
					fmt.Println(export.GoogleCalendarLink(e, time.Now()))
					return nil
				},
			},
			{
				Name:      "ics",
				Usage:     "Render a triaged event as an iCalendar file.",
				ArgsUsage: "<event-id>",
				Flags:     []cli.Flag{outFlag},
				Action: func(c *cli.Context) error {
					logger := setupLogger()
					st, err := openStore(c, logger)
					if err != nil {
						return err
					}

					e, err := st.State().FindEvent(c.Args().First())
					if err != nil {
						return err
					}
					if e.UID == "" {
						e.UID = caldav.GenerateUID()
						st.State().SetEvent(e)
						if err := st.Save(); err != nil {
							return err
						}
					}
					body, err := export.ICS(e, time.Now())
					if err != nil {
						return err
					}
					return writeOut(c.String("out"), body)
				},
			},
		},
	}
}

func authCommand() *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Authenticate with a Google account so events can be pushed.",
		Action: func(c *cli.Context) error {
			logger := setupLogger()
			logger.Info("Starting Google authentication flow.")

			cfg, err := google.GetOAuthConfigForAuthFlow(os.Getenv("GOOGLE_CLIENT_ID"), os.Getenv("GOOGLE_CLIENT_SECRET"))
			if err != nil {
				return fmt.Errorf("failed to get google oauth config: %w", err)
			}

			authURL := cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
			fmt.Printf("Go to the following link in your browser then type the "+
				"authorization code: \n%v\n", authURL)

			reader := bufio.NewReader(os.Stdin)
			fmt.Print("Enter Authorization Code: ")
			authCode, _ := reader.ReadString('\n')
			authCode = strings.TrimSpace(authCode)

			token, err := google.TokenFromWeb(cfg, authCode)
			if err != nil {
				return fmt.Errorf("unable to retrieve token from web: %w", err)
			}

			fmt.Print("Enter a name for this account (e.g., 'personal', 'work'): ")
			accountName, _ := reader.ReadString('\n')
			accountName = strings.TrimSpace(accountName)
			tokenFile := "token-" + accountName + ".json"

			if err := google.SaveToken(tokenFile, token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			logger.Info("Successfully authenticated and saved token.", "file", tokenFile)
			return nil
		},
	}
}

func calendarsCommand() *cli.Command {
	return &cli.Command{
		Name:  "calendars",
		Usage: "List the Google calendars available as push targets.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "account", Usage: "Account name used during auth; defaults to the only one."},
		},
		Action: func(c *cli.Context) error {
			logger := setupLogger()

			client, err := googleClient(c, logger)
			if err != nil {
				return err
			}
			ids, err := client.ListCalendars()
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Println(id)
			}
			return nil
		},
	}
}

func pushCommand() *cli.Command {
	return &cli.Command{
		Name:      "push",
		Usage:     "Push a triaged event to an external calendar.",
		ArgsUsage: "<event-id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "google", Usage: "Push via the Google Calendar API."},
			&cli.BoolFlag{Name: "caldav", Usage: "Push to the configured CalDAV calendar."},
			&cli.StringFlag{Name: "account", Usage: "Google account name used during auth."},
		},
		Action: func(c *cli.Context) error {
			logger := setupLogger()

			if !c.Bool("google") && !c.Bool("caldav") {
				return fmt.Errorf("pick at least one of --google or --caldav")
			}

			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			st, err := store.Open(logger, cfg.DataFile)
			if err != nil {
				return err
			}

			e, err := st.State().FindEvent(c.Args().First())
			if err != nil {
				return err
			}
			if e.UID == "" {
				e.UID = caldav.GenerateUID()
				st.State().SetEvent(e)
				if err := st.Save(); err != nil {
					return err
				}
			}

			now := time.Now()

			if c.Bool("google") {
				client, err := googleClient(c, logger)
				if err != nil {
					return err
				}
				link, err := client.InsertEvent(cfg.GoogleCalendarID, e, now)
				if err != nil {
					return err
				}
				fmt.Println(link)
			}

			if c.Bool("caldav") {
				client, err := caldav.NewClient(logger, cfg.CalDAVEndpoint,
					os.Getenv("CALDAV_USERNAME"), os.Getenv("CALDAV_PASSWORD"), cfg.CalendarName)
				if err != nil {
					return err
				}
				if err := client.PushEvent(c.Context, e, now); err != nil {
					return err
				}
			}

			return nil
		},
	}
}

// googleClient builds an authenticated Google client for the --account flag,
// defaulting to the sole saved account.
func googleClient(c *cli.Context, logger *slog.Logger) (*google.CalendarClient, error) {
	account := c.String("account")
	if account == "" {
		accounts, err := google.GetTokenAccounts()
		if err != nil || len(accounts) == 0 {
			return nil, fmt.Errorf("no google accounts found. Run the 'auth' command first")
		}
		if len(accounts) > 1 {
			return nil, fmt.Errorf("multiple google accounts found (%s); pass --account", strings.Join(accounts, ", "))
		}
		account = accounts[0]
	}
	return google.NewClient(c.Context, logger, os.Getenv("GOOGLE_CLIENT_ID"), os.Getenv("GOOGLE_CLIENT_SECRET"), account)
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	path := c.String("config")
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config path: %w", err)
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func openStore(c *cli.Context, logger *slog.Logger) (*store.Store, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	return store.Open(logger, cfg.DataFile)
}

func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read from stdin: %w", err)
	}
	return string(data), nil
}

func writeOut(path, body string) error {
	if path == "" {
		fmt.Print(body)
		if !strings.HasSuffix(body, "\n") {
			fmt.Println()
		}
		return nil
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// printPreview shows the record a capture would turn into, mirroring the
// review step the triage flow offers before anything is filed.
func printPreview(content string, kind triage.Kind) error {
	switch kind {
	case triage.KindContact:
		contact := extract.ExtractContact(content)
		fmt.Printf("First name: %s\nLast name:  %s\nPhone:      %s\nEmail:      %s\nNotes:      %s\n",
			contact.FirstName, contact.LastName, contact.Phone, contact.Email, contact.Notes)
	case triage.KindEvent, triage.KindTodo:
		e := extract.ExtractEvent(content, time.Now())
		date := ""
		if e.StartDate != nil {
			date = e.StartDate.Format("2006-01-02")
		}
		fmt.Printf("Title: %s\nDate:  %s\nStart: %s\nEnd:   %s\n", e.Title, date, e.StartTime, e.EndTime)
		if e.Description != "" {
			fmt.Printf("Notes: %s\n", e.Description)
		}
	default:
		fmt.Println(content)
	}
	return nil
}

// firstLine trims a capture down to something listable.
func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

// relativeTime renders timestamps the way the inbox shows them: "Just now",
// minutes, hours, days, then a plain date.
func relativeTime(now, t time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return fmt.Sprintf("%d min ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour")
	case d < 7*24*time.Hour:
		return plural(int(d.Hours()/24), "day")
	default:
		return t.Format("1/2/2006")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

func setupLogger() *slog.Logger {
	var logLevel slog.Level
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}
