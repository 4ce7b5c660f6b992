package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/phuslu/log"
	"github.com/spaghetti-lover/persql/pkg/config"
	"github.com/spaghetti-lover/persql/pkg/database"
	"github.com/spaghetti-lover/persql/pkg/logging"
	"github.com/spaghetti-lover/persql/pkg/sql"
	"github.com/spaghetti-lover/persql/pkg/storage"
)

func main() {
	configPath := flag.String("config", "", "path to a .properties config file")
	flag.Usage = printUsage
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if flag.NArg() > 0 {
		cfg.DBPath = flag.Arg(0)
	}

	logger := logging.NewLogger(cfg.LogLevel, cfg.LogColor, os.Stderr)

	db, err := database.Open(*logger, cfg.DBPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
	}

	if err := newShell(*logger, db, cfg, os.Stdout).run(os.Stdin); err != nil {
		// Cached pages are not flushed: the file or device is in an unknown state
		logger.Fatal().Err(err).Str("path", cfg.DBPath).Msg("storage failure")
	}
}

// loadConfig reads the given config file, or persql.properties when present
func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	if fileExists(config.DefaultFile) {
		return config.Load(config.DefaultFile)
	}
	return config.Default(), nil
}

type styles struct {
	ok    lipgloss.Style
	err   lipgloss.Style
	title lipgloss.Style
	muted lipgloss.Style
}

func newStyles(out io.Writer, color bool) styles {
	r := lipgloss.NewRenderer(out)
	if !color {
		return styles{ok: r.NewStyle(), err: r.NewStyle(), title: r.NewStyle(), muted: r.NewStyle()}
	}

	return styles{
		ok:    r.NewStyle().Foreground(lipgloss.Color("#02BA84")),
		err:   r.NewStyle().Foreground(lipgloss.Color("#FF5F56")).Bold(true),
		title: r.NewStyle().Foreground(lipgloss.Color("#7C3AED")).Bold(true),
		muted: r.NewStyle().Foreground(lipgloss.Color("#9B9B9B")),
	}
}

// shell is the line oriented front end of one open database
type shell struct {
	logger log.Logger
	db     *database.Database
	out    io.Writer
	prompt string
	styles styles
}

func newShell(logger log.Logger, db *database.Database, cfg config.Config, out io.Writer) *shell {
	return &shell{
		logger: logger,
		db:     db,
		out:    out,
		prompt: cfg.Prompt,
		styles: newStyles(out, cfg.Color),
	}
}

// run reads statements until .exit or end of input, then closes the database.
// A non-nil error is a storage failure and the database is left unclosed.
func (s *shell) run(in io.Reader) error {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(s.out, s.prompt)

		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if s.handleMetaCommand(line) {
				return s.db.Close()
			}
			continue
		}

		if err := s.executeLine(line); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		s.logger.Error().Err(err).Msg("failed to read input")
	}

	fmt.Fprintln(s.out)
	return s.db.Close()
}

// executeLine runs one statement. Only unrecoverable errors are returned.
func (s *shell) executeLine(line string) error {
	result, err := s.db.Exec(line)

	switch {
	case err == nil:
	case errors.Is(err, storage.ErrTableFull):
		s.printError("Error: Table is full.")
		return nil
	case errors.Is(err, sql.ErrNegativeID):
		s.printError("ID must be positive.")
		return nil
	case errors.Is(err, sql.ErrStringTooLong):
		s.printError("String is too long.")
		return nil
	case errors.Is(err, sql.ErrSyntax):
		s.printError("Syntax error. Could not parse statement.")
		return nil
	case errors.Is(err, sql.ErrUnrecognizedStatement):
		s.printError(fmt.Sprintf("Unrecognized keyword at start of '%s'.", line))
		return nil
	default:
		return err
	}

	for _, row := range result.Rows {
		fmt.Fprintln(s.out, row.String())
	}
	fmt.Fprintln(s.out, s.styles.ok.Render("Executed."))
	return nil
}

func (s *shell) printError(msg string) {
	fmt.Fprintln(s.out, s.styles.err.Render(msg))
}

// handleMetaCommand handles meta commands (starting with .) and reports whether to exit
func (s *shell) handleMetaCommand(cmd string) bool {
	switch cmd {
	case ".exit":
		return true

	case ".stats":
		s.showStats()

	case ".constants":
		s.showConstants()

	case ".help":
		s.showHelp()

	default:
		s.printError(fmt.Sprintf("Unrecognized command '%s'", cmd))
	}

	return false
}

// showStats displays table and page cache statistics
func (s *shell) showStats() {
	stats := s.db.Stats()

	fmt.Fprintln(s.out, s.styles.title.Render("Table:"))
	fmt.Fprintf(s.out, "   File: %s\n", stats.Path)
	fmt.Fprintf(s.out, "   Rows: %d / %d\n", stats.NumRows, stats.MaxRows)

	fmt.Fprintln(s.out, s.styles.title.Render("Pager:"))
	fmt.Fprintf(s.out, "   Cached Pages: %d / %d\n", stats.Pager.CachedPages, storage.TableMaxPages)
	fmt.Fprintf(s.out, "   Cache Hits: %d\n", stats.Pager.Hits)
	fmt.Fprintf(s.out, "   Disk Loads: %d\n", stats.Pager.DiskLoads)
	fmt.Fprintf(s.out, "   Zero Fills: %d\n", stats.Pager.ZeroFills)
	fmt.Fprintf(s.out, "   File Length At Open: %d bytes\n", stats.Pager.FileLength)
}

// showConstants displays the storage layout
func (s *shell) showConstants() {
	fmt.Fprintln(s.out, s.styles.title.Render("Constants:"))
	fmt.Fprintf(s.out, "ROW_SIZE: %d\n", storage.RowSize)
	fmt.Fprintf(s.out, "PAGE_SIZE: %d\n", storage.PageSize)
	fmt.Fprintf(s.out, "ROWS_PER_PAGE: %d\n", storage.RowsPerPage)
	fmt.Fprintf(s.out, "TABLE_MAX_PAGES: %d\n", storage.TableMaxPages)
	fmt.Fprintf(s.out, "TABLE_MAX_ROWS: %d\n", storage.TableMaxRows)
}

// showHelp displays available commands
func (s *shell) showHelp() {
	fmt.Fprintln(s.out, s.styles.title.Render("Available Commands:"))
	fmt.Fprintln(s.out, "  insert <id> <username> <email>  - Append a row")
	fmt.Fprintln(s.out, "  select                          - Print every row")
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, s.styles.title.Render("Meta Commands:"))
	fmt.Fprintln(s.out, "  .stats      - Show table and pager statistics")
	fmt.Fprintln(s.out, "  .constants  - Show the storage layout")
	fmt.Fprintln(s.out, "  .help       - Show this help")
	fmt.Fprintln(s.out, "  .exit       - Flush pages and exit")
	fmt.Fprintln(s.out, s.styles.muted.Render(fmt.Sprintf("  usernames up to %d bytes, emails up to %d bytes", storage.UsernameSize, storage.EmailSize)))
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "persql - a single table row store shell")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Usage: repl [-config file.properties] [database-file]")
	fmt.Fprintln(os.Stderr)
	flag.PrintDefaults()
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Example:")
	fmt.Fprintln(os.Stderr, "  repl users.db")
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
