package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/mind-engage/mcq-reviewer/internal/quiz"
)

// terminal serializes output; auto-advance renders from the timer goroutine.
type terminal struct {
	mu  sync.Mutex
	out io.Writer
}

func newTerminal(out io.Writer) *terminal { return &terminal{out: out} }

func (t *terminal) println(s string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.out, s)
}

func (t *terminal) render(snap quiz.Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()
	w := t.out

	switch snap.Phase {
	case quiz.NotStarted:
		fmt.Fprintln(w, "Upload a PDF and parse it to start.")
	case quiz.Finished:
		renderResult(w, snap.Result)
	case quiz.Answering, quiz.Revealed:
		q := snap.Question
		fmt.Fprintf(w, "\n%s  [%s]  score %d\n", q.Header, snap.Position, snap.Score)
		fmt.Fprintln(w, q.Text)
		for _, o := range q.Options {
			fmt.Fprintf(w, "  %s %s) %s\n", markGlyph(o.Mark), o.Key, o.Text)
		}
		if fb := snap.Feedback; fb != nil {
			fmt.Fprintf(w, "%s. %s\n%s\n", fb.Tag, fb.AnswerLine, fb.Explanation)
			fmt.Fprint(w, "enter = next, r = restart, q = quit: ")
		} else {
			fmt.Fprintf(w, "answer [%s], r = restart, q = quit: ", optionKeys(q.Options))
		}
	}
}

func renderResult(w io.Writer, res *quiz.Result) {
	if res == nil {
		return
	}
	fmt.Fprintf(w, "\nYou scored %d/%d (%d%%).\n", res.Score, res.Total, res.Percentage)
	for _, item := range res.Review {
		verdict := "Wrong"
		if item.IsCorrect {
			verdict = "Correct"
		}
		fmt.Fprintf(w, "\nQ%d: %s\n  %s | Your: %s | Correct: %s\n  Explanation: %s\n",
			item.Position, item.Question.Question, verdict, item.ChosenKey, item.CorrectKey, item.Explanation)
	}
}

func markGlyph(m quiz.Mark) string {
	switch m {
	case quiz.MarkCorrect:
		return "+"
	case quiz.MarkWrong:
		return "x"
	}
	return " "
}

func optionKeys(opts []quiz.OptionView) string {
	keys := make([]string, len(opts))
	for i, o := range opts {
		keys[i] = o.Key
	}
	return strings.Join(keys, "/")
}

// runQuiz drives sess from line-oriented input until the quiz finishes, the
// user quits or input ends.
func runQuiz(ctx context.Context, sess *quiz.Session, in io.Reader, term *terminal) error {
	if sess.Snapshot().Phase == quiz.NotStarted || sess.Snapshot().Phase == quiz.Finished {
		if !sess.Start(ctx) {
			term.println(quiz.MsgNothingParsed)
			return nil
		}
	}
	term.render(sess.Snapshot())

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if sess.Snapshot().Phase == quiz.Finished {
			return nil
		}
		cmd := strings.TrimSpace(sc.Text())
		switch strings.ToLower(cmd) {
		case "q", "quit":
			return nil
		case "r", "restart":
			sess.Restart(ctx)
			term.println(quiz.MsgRestarted)
			term.render(sess.Snapshot())
			continue
		}

		switch sess.Snapshot().Phase {
		case quiz.Answering:
			if cmd == "" {
				continue
			}
			snap, ok := sess.Submit(ctx, cmd)
			if !ok {
				term.println("no answer recorded")
			}
			term.render(snap)
		case quiz.Revealed:
			snap, _ := sess.Next(ctx)
			term.render(snap)
		}
		if sess.Snapshot().Phase == quiz.Finished {
			return nil
		}
	}
	return sc.Err()
}
