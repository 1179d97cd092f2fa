// Package gui implements the desktop interface for batch CSV translation.
package gui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"github.com/siyan12/csvtranslator/internal"
	"github.com/siyan12/csvtranslator/internal/cli"
	"github.com/siyan12/csvtranslator/internal/job"
	"github.com/siyan12/csvtranslator/internal/memory"
	"github.com/siyan12/csvtranslator/internal/translate"
)

// Config holds GUI application configuration
type Config struct {
	APIKey        string
	InputDir      string
	OutputDir     string
	SourceLang    string
	FillEmptyOnly bool
	Workers       int
	CachePath     string
	NoCache       bool
}

// DefaultConfig returns default GUI configuration
func DefaultConfig() *Config {
	return &Config{
		InputDir:   "input",
		OutputDir:  "output",
		SourceLang: translate.DefaultSourceLang,
		Workers:    1,
	}
}

// Application represents the GUI application
type Application struct {
	app    fyne.App
	window fyne.Window
	config *Config

	// UI components
	apiKeyEntry    *widget.Entry
	saveKeyBtn     *ttwidget.Button
	testKeyBtn     *ttwidget.Button
	inputDirEntry  *widget.Entry
	outputDirEntry *widget.Entry
	fillEmptyCheck *widget.Check
	targetChecks   *widget.CheckGroup
	startButton    *ttwidget.Button
	cancelButton   *ttwidget.Button
	progressBar    *widget.ProgressBar
	statusLabel    *widget.Label
	logViewer      *LogViewer

	// Run state
	mu        sync.Mutex
	running   bool
	runCancel context.CancelFunc
	wg        sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a new GUI application
func New(config *Config) *Application {
	if config == nil {
		config = DefaultConfig()
	} else {
		defaults := DefaultConfig()
		if config.InputDir == "" {
			config.InputDir = defaults.InputDir
		}
		if config.OutputDir == "" {
			config.OutputDir = defaults.OutputDir
		}
		if config.SourceLang == "" {
			config.SourceLang = defaults.SourceLang
		}
		if config.Workers < 1 {
			config.Workers = defaults.Workers
		}
	}

	ctx, cancel := context.WithCancel(context.Background())

	myApp := app.NewWithID("io.github.siyan12.csvtranslator")

	a := &Application{
		app:    myApp,
		config: config,
		ctx:    ctx,
		cancel: cancel,
	}

	a.setupUI()

	return a
}

// setupUI creates the main user interface
func (a *Application) setupUI() {
	a.window = a.app.NewWindow(fmt.Sprintf("CSV Translator v%s - DeepL Batch Translation", internal.Version))
	a.window.Resize(fyne.NewSize(720, 640))

	// API key section
	a.apiKeyEntry = widget.NewPasswordEntry()
	a.apiKeyEntry.SetPlaceHolder("DeepL API key...")
	a.apiKeyEntry.SetText(a.config.APIKey)

	a.saveKeyBtn = ttwidget.NewButton("Save", a.onSaveKey)
	a.testKeyBtn = ttwidget.NewButton("Test", a.onTestKey)

	keySection := container.NewBorder(
		nil, nil,
		nil,
		container.NewHBox(a.saveKeyBtn, a.testKeyBtn),
		a.apiKeyEntry,
	)

	// Folder section
	a.inputDirEntry = widget.NewEntry()
	a.inputDirEntry.SetText(a.config.InputDir)
	a.outputDirEntry = widget.NewEntry()
	a.outputDirEntry.SetText(a.config.OutputDir)

	folderSection := widget.NewForm(
		widget.NewFormItem("Input folder", a.inputDirEntry),
		widget.NewFormItem("Output folder", a.outputDirEntry),
	)

	// Options section
	a.fillEmptyCheck = widget.NewCheck("Only fill empty cells (keep existing translations)", nil)
	a.fillEmptyCheck.SetChecked(a.config.FillEmptyOnly)

	a.targetChecks = widget.NewCheckGroup(translate.KnownTargetHeaders(), nil)
	a.targetChecks.Horizontal = true
	a.targetChecks.SetSelected(initialTargets())

	optionsSection := container.NewVBox(
		a.fillEmptyCheck,
		widget.NewLabel("Target languages:"),
		container.NewHScroll(a.targetChecks),
	)

	// Run section
	a.startButton = ttwidget.NewButton("Start Translation", a.onStart)
	a.startButton.Importance = widget.HighImportance
	a.cancelButton = ttwidget.NewButton("Cancel", a.onCancel)
	a.cancelButton.Disable()

	a.progressBar = widget.NewProgressBar()
	a.statusLabel = widget.NewLabel("Ready")
	a.logViewer = NewLogViewer()

	runSection := container.NewVBox(
		container.NewGridWithColumns(2, a.startButton, a.cancelButton),
		a.progressBar,
		a.statusLabel,
	)

	content := container.NewBorder(
		container.NewVBox(
			keySection,
			widget.NewSeparator(),
			folderSection,
			widget.NewSeparator(),
			optionsSection,
			widget.NewSeparator(),
			runSection,
		),
		nil, nil, nil,
		a.logViewer,
	)

	// Add the tooltip layer to enable tooltips
	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas()))

	a.saveKeyBtn.SetToolTip("Store the API key in the config file")
	a.testKeyBtn.SetToolTip("Check the key against the DeepL API")
	a.startButton.SetToolTip("Translate every CSV in the input folder")
	a.cancelButton.SetToolTip("Stop the current run, leaving outputs untouched")

	a.window.SetOnClosed(func() {
		a.cancel()
		a.wg.Wait()
	})
}

// initialTargets preselects the languages from the previous run, falling
// back to all known ones for a fresh config.
func initialTargets() []string {
	known := translate.KnownTargetHeaders()
	last := cli.LastUsedTargets()
	if len(last) == 0 {
		return known
	}
	var selected []string
	for _, lang := range last {
		for _, header := range known {
			if strings.EqualFold(lang, header) || strings.EqualFold(lang, translate.DeepLCode(header)) {
				selected = append(selected, header)
				break
			}
		}
	}
	if len(selected) == 0 {
		return known
	}
	return selected
}

// Run starts the GUI application
func (a *Application) Run() {
	a.window.ShowAndRun()
}

func (a *Application) onSaveKey() {
	key := strings.TrimSpace(a.apiKeyEntry.Text)
	if key == "" {
		dialog.ShowError(fmt.Errorf("enter an API key first"), a.window)
		return
	}
	if err := cli.SaveAPIKey(key); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save API key: %w", err), a.window)
		return
	}
	dialog.ShowInformation("Saved", "API key stored in the config file.", a.window)
}

func (a *Application) onTestKey() {
	key := strings.TrimSpace(a.apiKeyEntry.Text)
	client := translate.NewClient(key, translate.Options{})

	a.testKeyBtn.Disable()
	a.updateStatus("Testing API key...")

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		err := client.TestKey(a.ctx)
		fyne.Do(func() {
			a.testKeyBtn.Enable()
			if err != nil {
				a.updateStatus("API key test failed")
				dialog.ShowError(fmt.Errorf("API key test failed: %w", err), a.window)
				return
			}
			a.updateStatus("API key is valid")
			dialog.ShowInformation("Success", "Successfully connected to DeepL.", a.window)
		})
	}()
}

func (a *Application) onStart() {
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return
	}
	a.mu.Unlock()

	key := strings.TrimSpace(a.apiKeyEntry.Text)
	if key == "" {
		dialog.ShowError(fmt.Errorf("enter a DeepL API key first"), a.window)
		return
	}
	targets := a.targetChecks.Selected
	if len(targets) == 0 {
		dialog.ShowError(fmt.Errorf("select at least one target language"), a.window)
		return
	}

	inputDir := strings.TrimSpace(a.inputDirEntry.Text)
	outputDir := strings.TrimSpace(a.outputDirEntry.Text)
	if inputDir == "" || outputDir == "" {
		dialog.ShowError(fmt.Errorf("input and output folders are required"), a.window)
		return
	}
	if err := job.EnsureDirectories(inputDir, outputDir); err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	files, err := job.ListCSVFiles(inputDir)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	if len(files) == 0 {
		dialog.ShowInformation("Nothing to do",
			fmt.Sprintf("No CSV files found in %q.\nDrop your files there and try again.", inputDir),
			a.window)
		return
	}

	ctx, cancel := context.WithCancel(a.ctx)

	a.mu.Lock()
	a.running = true
	a.runCancel = cancel
	a.mu.Unlock()

	a.startButton.Disable()
	a.cancelButton.Enable()
	a.progressBar.SetValue(0)
	a.logViewer.Clear()
	a.logViewer.Log("Found %d file(s) in %s", len(files), inputDir)

	req := job.Request{
		SourceLang:       a.config.SourceLang,
		TargetLangs:      targets,
		Credential:       key,
		PreserveExisting: a.fillEmptyCheck.Checked,
		Workers:          a.config.Workers,
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer cancel()
		a.runBatch(ctx, req, files, inputDir, outputDir)
	}()
}

func (a *Application) onCancel() {
	a.mu.Lock()
	cancel := a.runCancel
	a.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	a.updateStatus("Cancelling...")
}

// runBatch translates every file in the input folder. It runs off the UI
// goroutine, so all widget updates go through fyne.Do.
func (a *Application) runBatch(ctx context.Context, req job.Request, files []string, inputDir, outputDir string) {
	store, err := a.openStore()
	if err != nil {
		a.finishRun(nil, err, false)
		return
	}
	defer store.Close()

	client := translate.NewClient(req.Credential, translate.Options{})
	runner := job.NewRunner(client, store)

	total := job.NewSummary()
	var fileErrs []string

	for i, name := range files {
		fileReq := req
		fileReq.InputPath = filepath.Join(inputDir, name)
		fileReq.OutputPath = filepath.Join(outputDir, name)

		a.logMessage(fmt.Sprintf("Translating %s (%d/%d)...", name, i+1, len(files)))

		handle, err := runner.Start(ctx, fileReq)
		if err != nil {
			fileErrs = append(fileErrs, fmt.Sprintf("%s: %v", name, err))
			a.logMessage(fmt.Sprintf("Skipping %s: %v", name, err))
			continue
		}

		for ev := range handle.Events() {
			switch ev.Kind {
			case job.EventProgress:
				a.updateProgress(i, len(files), ev.Done, ev.Total, name)
			case job.EventLog:
				a.logMessage(ev.Message)
			}
		}

		sum, err := handle.Wait()
		if err != nil {
			if translate.IsAuth(err) {
				a.finishRun(nil, fmt.Errorf("authentication failed, check your API key: %w", err), false)
				return
			}
			if ctx.Err() != nil {
				a.finishRun(nil, nil, true)
				return
			}
			fileErrs = append(fileErrs, fmt.Sprintf("%s: %v", name, err))
			a.logMessage(fmt.Sprintf("Failed %s: %v", name, err))
			continue
		}
		total.Merge(sum)
		a.logMessage(fmt.Sprintf("Finished %s: %s", name, sum))
	}

	if err := cli.SaveLastUsedTargets(req.TargetLangs); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save preferences: %v\n", err)
	}

	if len(fileErrs) > 0 {
		a.finishRun(total, fmt.Errorf("%d file(s) failed:\n%s", len(fileErrs), strings.Join(fileErrs, "\n")), false)
		return
	}
	a.finishRun(total, nil, false)
}

func (a *Application) openStore() (memory.Store, error) {
	if a.config.NoCache {
		return memory.NewMemStore(), nil
	}
	path := a.config.CachePath
	if path == "" {
		path = memory.DefaultPath()
	}
	store, err := memory.OpenSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open translation memory: %w", err)
	}
	return store, nil
}

// finishRun re-enables the controls and reports the outcome.
func (a *Application) finishRun(sum *job.Summary, err error, cancelled bool) {
	a.mu.Lock()
	a.running = false
	a.runCancel = nil
	a.mu.Unlock()

	fyne.Do(func() {
		a.startButton.Enable()
		a.cancelButton.Disable()

		switch {
		case cancelled:
			a.statusLabel.SetText("Cancelled")
			a.logViewer.AddMessage("Run cancelled, no partial files were written.")
		case err != nil && sum == nil:
			a.statusLabel.SetText("Failed")
			dialog.ShowError(err, a.window)
		case err != nil:
			a.statusLabel.SetText("Completed with errors")
			a.logViewer.AddMessage("Total: " + sum.String())
			dialog.ShowError(err, a.window)
		default:
			a.progressBar.SetValue(1)
			a.statusLabel.SetText("Completed")
			a.logViewer.AddMessage("Total: " + sum.String())
			dialog.ShowInformation("Done",
				fmt.Sprintf("Translation finished.\n%s", sum), a.window)
		}
	})
}

func (a *Application) updateProgress(fileIdx, fileCount, done, totalRows int, name string) {
	fyne.Do(func() {
		if totalRows > 0 {
			fileShare := 1.0 / float64(fileCount)
			a.progressBar.SetValue(float64(fileIdx)*fileShare + fileShare*float64(done)/float64(totalRows))
		}
		a.statusLabel.SetText(fmt.Sprintf("%s: row %d of %d", name, done, totalRows))
	})
}

// logMessage is safe from any goroutine; the log viewer marshals its own
// widget updates onto the UI thread.
func (a *Application) logMessage(message string) {
	a.logViewer.AddMessage(message)
}

func (a *Application) updateStatus(status string) {
	a.statusLabel.SetText(status)
}
