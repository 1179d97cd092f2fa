package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/siyan12/csvtranslator/internal/cli"
	"github.com/siyan12/csvtranslator/internal/gui"
	"github.com/siyan12/csvtranslator/internal/job"
	"github.com/siyan12/csvtranslator/internal/memory"
	"github.com/siyan12/csvtranslator/internal/translate"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	apiKey := cli.GetDeepLKey()
	client := translate.NewClient(apiKey, translate.Options{MaxAttempts: flags.MaxAttempts})
	ctx := context.Background()

	// Handle --test-key flag
	if flags.TestKey {
		if err := client.TestKey(ctx); err != nil {
			return fmt.Errorf("API key test failed: %w", err)
		}
		fmt.Println("API key is valid, successfully connected to DeepL.")
		return nil
	}

	// No CLI work requested - launch GUI mode by default
	if flags.GUIMode || (len(args) == 0 && len(flags.TargetLangs) == 0) {
		return runGUIMode(flags)
	}

	store, err := openStore(flags)
	if err != nil {
		return err
	}
	defer store.Close()

	runner := job.NewRunner(client, store)
	req := job.Request{
		SourceLang:       flags.SourceLang,
		TargetLangs:      flags.TargetLangs,
		Credential:       apiKey,
		PreserveExisting: flags.FillEmptyOnly,
		Workers:          flags.Workers,
	}

	if len(args) > 0 {
		// Single-file mode
		req.InputPath = args[0]
		req.OutputPath = flags.OutputPath
		if req.OutputPath == "" {
			req.OutputPath = filepath.Join(flags.OutputDir, filepath.Base(args[0]))
			if err := os.MkdirAll(flags.OutputDir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		sum, err := runner.Run(ctx, req)
		if err != nil {
			return err
		}
		fmt.Printf("\nDone! %s\nOutput written to: %s\n", sum, req.OutputPath)
	} else {
		// Folder mode: translate every CSV in the input directory
		result, err := runner.RunFolder(ctx, flags.InputDir, flags.OutputDir, req, func(format string, a ...any) {
			fmt.Printf(format+"\n", a...)
		})
		if err != nil {
			return err
		}
		if len(result.Errors) > 0 {
			for _, fe := range result.Errors {
				fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", fe.File, fe.Err)
			}
			return fmt.Errorf("%d of the input files failed", len(result.Errors))
		}
		fmt.Printf("\nDone! Translated files saved to: %s\n", flags.OutputDir)
	}

	if err := cli.SaveLastUsedTargets(flags.TargetLangs); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save preferences: %v\n", err)
	}
	return nil
}

func openStore(flags *cli.Flags) (memory.Store, error) {
	if flags.NoCache {
		// Still deduplicate identical cells within the run
		return memory.NewMemStore(), nil
	}
	path := flags.CachePath
	if path == "" {
		path = memory.DefaultPath()
	}
	store, err := memory.OpenSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open translation memory: %w", err)
	}
	return store, nil
}

func runGUIMode(flags *cli.Flags) error {
	app := gui.New(&gui.Config{
		APIKey:        cli.GetDeepLKey(),
		InputDir:      flags.InputDir,
		OutputDir:     flags.OutputDir,
		SourceLang:    flags.SourceLang,
		FillEmptyOnly: flags.FillEmptyOnly,
		Workers:       flags.Workers,
		CachePath:     flags.CachePath,
		NoCache:       flags.NoCache,
	})
	app.Run()
	return nil
}
