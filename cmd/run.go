package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tensebunny/tensebunny/internal/app"
	"github.com/tensebunny/tensebunny/internal/gateway"
	"github.com/tensebunny/tensebunny/internal/llm"
	"github.com/tensebunny/tensebunny/internal/progress"
	"github.com/tensebunny/tensebunny/internal/screen"
	"github.com/tensebunny/tensebunny/internal/selfupdate"
	"github.com/tensebunny/tensebunny/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	svc := buildServices(cmd.Context(), st)
	skip, _ := cmd.Flags().GetBool("skip-welcome")

	return app.Run(app.Options{
		Services:    svc,
		Version:     version,
		Updates:     selfupdate.NewChecker(),
		SkipWelcome: skip,
	})
}

// buildServices wires the learner record, the stores, and the AI
// gateway. An unreadable learner record or missing AI configuration is
// reported and tolerated.
func buildServices(ctx context.Context, st *store.Store) *screen.Services {
	if ctx == nil {
		ctx = context.Background()
	}
	repo := st.ProgressRepo()
	updater, err := progress.NewUpdater(ctx, repo)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Saved progress is unreadable, starting fresh:", err)
	}

	return &screen.Services{
		Progress: updater,
		Themes:   repo,
		Scores:   st.ScoreRepo(),
		Events:   st.EventRepo(),
		AI:       buildGateway(ctx, st.EventRepo()),
	}
}

// buildGateway connects the configured AI backends. Synthesized speech
// is cached under the data directory.
func buildGateway(ctx context.Context, events store.EventRepo) *gateway.Gateway {
	suite, err := llm.NewSuiteFromEnv(ctx, events)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI features will be unavailable.")
		suite = nil
	}

	var opts []gateway.Option
	if dir, err := store.DataDir(); err == nil {
		cache, err := gateway.NewSpeechCache(filepath.Join(dir, "speech"))
		if err != nil {
			fmt.Fprintln(os.Stderr, "Speech cache disabled:", err)
		} else {
			opts = append(opts, gateway.WithSpeechCache(cache))
		}
	}
	return gateway.New(suite, opts...)
}
