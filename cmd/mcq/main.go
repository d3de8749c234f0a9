// Command mcq parses multiple-choice questions out of documents, exports them
// and runs an interactive terminal quiz.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"github.com/mind-engage/mcq-reviewer/internal/export"
	"github.com/mind-engage/mcq-reviewer/internal/extract"
	"github.com/mind-engage/mcq-reviewer/internal/logger"
	"github.com/mind-engage/mcq-reviewer/internal/mcq"
	"github.com/mind-engage/mcq-reviewer/internal/quiz"
	"github.com/mind-engage/mcq-reviewer/internal/storage"
)

// Globals are flags shared by every command.
type Globals struct {
	LogMode   string `name:"log-mode" default:"dev" enum:"dev,prod" help:"Log output mode"`
	Verbose   bool   `short:"v" help:"Log to stderr"`
	Pdftotext string `name:"pdftotext" default:"pdftotext" env:"PDFTOTEXT_BIN" help:"pdftotext binary"`
	MaxPages  int    `name:"max-pages" default:"0" help:"Read at most this many pages (0 = all)"`

	log *logger.Logger
}

// InputFlags choose how a document is read.
type InputFlags struct {
	Path      string `arg:"" help:"PDF, fragments JSON or text file" type:"existingfile"`
	Text      bool   `help:"Treat the input as plain text"`
	Fragments bool   `help:"Treat the input as fragments JSON"`
}

var CLI struct {
	Globals

	Parse  ParseCmd  `cmd:"" help:"Parse a document and print a summary"`
	Export ExportCmd `cmd:"" help:"Parse a document and export its questions"`
	Quiz   QuizCmd   `cmd:"" help:"Run an interactive quiz in the terminal"`
}

type ParseCmd struct {
	InputFlags
	JSON bool `name:"json" help:"Print the parsed questions as JSON"`
}

func (c *ParseCmd) Run(g *Globals) error {
	res, msg, err := load(context.Background(), g, c.InputFlags)
	if err != nil {
		return err
	}
	fmt.Println(msg)
	fmt.Printf("blocks=%d rejected=%d key-entries=%d fingerprint=%s\n",
		res.Blocks, res.Rejected, res.KeyEntries, res.Fingerprint)
	if c.JSON {
		return export.Write(os.Stdout, export.FormatJSON, res.Questions)
	}
	return nil
}

type ExportCmd struct {
	InputFlags
	Format string `short:"f" default:"json" enum:"json,yaml,xlsx,json.xz,qti.zip" help:"Output format"`
	Out    string `short:"o" help:"Output file (default mcq_questions.<format>)" type:"path"`
}

func (c *ExportCmd) Run(g *Globals) error {
	res, msg, err := load(context.Background(), g, c.InputFlags)
	if err != nil {
		return err
	}
	fmt.Println(msg)
	format, err := export.ParseFormat(c.Format)
	if err != nil {
		return err
	}
	out := c.Out
	if out == "" {
		out = format.FileName()
	}
	b, err := export.Encode(format, res.Questions)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, b, 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %d question(s) to %s\n", len(res.Questions), out)
	return nil
}

type QuizCmd struct {
	InputFlags
	ShuffleQuestions bool   `name:"shuffle-questions" help:"Shuffle question order"`
	ShuffleOptions   bool   `name:"shuffle-options" help:"Shuffle options within each question"`
	AutoNext         bool   `name:"auto-next" help:"Move on automatically after a correct answer"`
	SessionDir       string `name:"session-dir" help:"Save and resume the session in this directory" type:"path"`
}

func (c *QuizCmd) Run(g *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var kv storage.KV
	if c.SessionDir != "" {
		fs, err := storage.NewFSStore(c.SessionDir)
		if err != nil {
			return err
		}
		kv = fs
	}

	term := newTerminal(os.Stdout)
	sess := quiz.NewSession(quiz.Options{
		Store:    kv,
		Logger:   g.log,
		OnChange: term.render,
	})
	defer sess.Close()

	if msg, ok := sess.Restore(ctx); ok {
		term.println(msg)
	} else {
		res, msg, err := load(ctx, g, c.InputFlags)
		if err != nil {
			return err
		}
		term.println(msg)
		sess.LoadParsed(ctx, res.Questions)
	}

	set := sess.Settings()
	set.ShuffleQuestions = c.ShuffleQuestions
	set.ShuffleOptions = c.ShuffleOptions
	set.AutoNext = c.AutoNext
	set.SessionSave = c.SessionDir != ""
	sess.UpdateSettings(ctx, set)

	return runQuiz(ctx, sess, os.Stdin, term)
}

// load reads and parses the input document.
func load(ctx context.Context, g *Globals, in InputFlags) (mcq.Result, string, error) {
	kind := extract.DetectKind(in.Path)
	switch {
	case in.Text:
		kind = extract.KindText
	case in.Fragments:
		kind = extract.KindFragments
	}

	if kind == extract.KindText || kind == extract.KindUnknown {
		b, err := os.ReadFile(in.Path)
		if err != nil {
			return mcq.Result{}, "", err
		}
		res := mcq.Parse(string(b))
		return res, quiz.ParsedTextMessage(len(res.Questions)), nil
	}

	src, err := extract.SourceFor(kind, g.Pdftotext, g.MaxPages, g.log)
	if err != nil {
		return mcq.Result{}, "", err
	}
	text, pages, err := extract.Document(ctx, src, in.Path)
	if err != nil {
		return mcq.Result{}, "", fmt.Errorf("%s (%w)", quiz.MsgExtractFailed, err)
	}
	res := mcq.Parse(text)
	g.log.Debug("document parsed", "path", in.Path, "pages", pages, "questions", len(res.Questions))
	return res, quiz.ParsedDocumentMessage(len(res.Questions)), nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("mcq"),
		kong.Description("Review multiple-choice questions extracted from PDFs"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	CLI.Globals.log = logger.Nop()
	if CLI.Verbose {
		l, err := logger.New(CLI.LogMode)
		ctx.FatalIfErrorf(err)
		CLI.Globals.log = l
		defer l.Sync()
	}

	err := ctx.Run(&CLI.Globals)
	ctx.FatalIfErrorf(err)
}
