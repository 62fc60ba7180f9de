package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/seongmin-dev/OnlineJudgeClient/internal/model"
	"github.com/seongmin-dev/OnlineJudgeClient/internal/tracker"
	"github.com/seongmin-dev/OnlineJudgeClient/internal/wss"
)

func (a *app) cmdProblems(ctx context.Context) error {
	problems, err := a.client.ListProblems(ctx)
	if err != nil {
		return err
	}

	for _, p := range problems {
		fmt.Printf("%-10s %s\n", p.ProblemID, p.Title)
	}
	return nil
}

func (a *app) cmdProblem(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: judgecli problem <id>")
	}

	problem, err := a.client.GetProblem(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s  %s\n", problem.ProblemID, problem.Title)
	fmt.Printf("time limit %d ms, memory limit %d KB\n\n", problem.TimeLimit, problem.MemoryLimit)
	fmt.Println(problem.Description)
	if problem.InputDescription != "" {
		fmt.Printf("\ninput:\n%s\n", problem.InputDescription)
	}
	if problem.OutputDescription != "" {
		fmt.Printf("\noutput:\n%s\n", problem.OutputDescription)
	}
	for i, tc := range problem.TestCases {
		if !tc.Example {
			continue
		}
		fmt.Printf("\nexample %d:\n  in:  %s\n  out: %s\n", i+1, tc.Input, tc.Output)
	}
	return nil
}

func (a *app) cmdSubmit(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("submit", pflag.ContinueOnError)
	lang := fs.String("language", "", "one of C, CPP, PYTHON, JAVA")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) != 2 {
		return fmt.Errorf("usage: judgecli submit <problem-id> <source-file> --language <lang>")
	}

	language := model.Language(strings.ToUpper(*lang))
	if !language.Valid() {
		names := make([]string, len(model.Languages))
		for i, l := range model.Languages {
			names[i] = string(l)
		}
		return fmt.Errorf("unknown language %q, want one of %s", *lang, strings.Join(names, ", "))
	}

	source, err := os.ReadFile(rest[1])
	if err != nil {
		return err
	}

	if err := a.client.Submit(ctx, rest[0], language, string(source)); err != nil {
		return err
	}
	fmt.Println("submitted; run 'judgecli history --watch' to follow grading")
	return nil
}

func (a *app) cmdHistory(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("history", pflag.ContinueOnError)
	watch := fs.Bool("watch", false, "keep the listing live and print result changes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !a.session.IsAuthenticated() {
		return fmt.Errorf("not logged in")
	}

	tr := tracker.NewTracker(a.client)

	if *watch {
		channel := wss.NewChannel(a.cfg.WsURL, time.Duration(a.cfg.WsBackoffMaxSec)*time.Second)
		channel.Start()
		defer channel.Close()
		tr.Attach(channel)
		defer tr.Detach()
	}

	if err := tr.LoadInitial(ctx); err != nil {
		return err
	}
	printRecords(tr.Records())

	if !*watch {
		return nil
	}

	fmt.Println("\nwatching for result updates (ctrl-c to stop)...")
	watchCtx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	last := snapshotResults(tr.Records())

	for {
		select {
		case <-watchCtx.Done():
			return nil
		case <-ticker.C:
			for _, rec := range tr.Records() {
				if prev, ok := last[rec.JudgeID]; !ok || prev != rec.Result {
					fmt.Printf("%s  problem %s  %s\n", rec.JudgeID, rec.ProblemID, formatResult(rec.Result))
					last[rec.JudgeID] = rec.Result
				}
			}
		}
	}
}

func snapshotResults(records []model.SubmissionRecord) map[string]model.ResultStatus {
	out := make(map[string]model.ResultStatus, len(records))
	for _, rec := range records {
		out[rec.JudgeID] = rec.Result
	}
	return out
}

func printRecords(records []model.SubmissionRecord) {
	if len(records) == 0 {
		fmt.Println("no submissions")
		return
	}

	fmt.Printf("%-12s %-10s %-8s %-24s %-17s %9s %10s\n",
		"user", "problem", "lang", "result", "submitted", "time", "memory")
	for _, rec := range records {
		elapsed, memory := "-", "-"
		if rec.Result.HasMetrics() {
			elapsed = fmt.Sprintf("%d ms", rec.Result.Time)
			memory = fmt.Sprintf("%d KB", rec.Result.Memory)
		}
		fmt.Printf("%-12s %-10s %-8s %-24s %-17s %9s %10s\n",
			rec.Username, rec.ProblemID, rec.Language.DisplayName(),
			formatResult(rec.Result),
			rec.SubmittedAt.Local().Format("02 Jan 15:04"),
			elapsed, memory)
	}
}

func formatResult(result model.ResultStatus) string {
	switch result.Type {
	case model.ResultWaiting:
		return "waiting"
	case model.ResultProcessing:
		return fmt.Sprintf("judging (%s)", result.Message)
	case model.ResultCompileError:
		return "compile error"
	case model.ResultRuntimeError:
		return "runtime error"
	case model.ResultTimeLimit:
		return "time limit exceeded"
	case model.ResultMemoryLimit:
		return "memory limit exceeded"
	case model.ResultWrongAnswer:
		return "wrong answer"
	case model.ResultCorrect:
		return "correct"
	}
	return string(result.Type)
}
