package main

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"

	"pathedit/internal/audit"
	"pathedit/internal/broadcast"
	"pathedit/internal/config"
	"pathedit/internal/elevate"
	"pathedit/internal/errors"
	"pathedit/internal/logging"
	"pathedit/internal/model"
	"pathedit/internal/registry"
	"pathedit/internal/session"
	"pathedit/internal/tui"
	"pathedit/internal/web"
)

func checkUpdate(currentVer string) {
	githubTag := &latest.GithubTag{
		Owner:      model.ReleaseOwner,
		Repository: model.ReleaseRepository,
	}

	res, err := latest.Check(githubTag, currentVer)
	if err != nil {
		log.Debug().Err(err).Msg("Update check failed")
		return
	}

	if res.Outdated {
		fmt.Printf("\n✨ A new version is available: %s (you have %s)\n", res.Current, currentVer)
		fmt.Printf("👉 Download it from https://github.com/%s/%s/releases\n", model.ReleaseOwner, model.ReleaseRepository)
	} else if pflag.Lookup("update").Changed {
		fmt.Printf("✅ You are using the latest version: %s\n", currentVer)
	}
}

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pathedit [options]\n\n")
		fmt.Fprintf(os.Stderr, "pathedit views and edits the Windows User and System PATH stored in the registry.\n")
		fmt.Fprintf(os.Stderr, "Saving the System PATH requires running as Administrator.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  pathedit              # Start the editor\n")
		fmt.Fprintf(os.Stderr, "  pathedit --dry-run    # Edit without writing the registry\n")
		fmt.Fprintf(os.Stderr, "  pathedit --report     # Print a PATH audit to stdout\n")
		fmt.Fprintf(os.Stderr, "  pathedit -r -o r.txt  # Save the audit to a file\n")
		fmt.Fprintf(os.Stderr, "  pathedit --json       # Output the audit as JSON\n")
		fmt.Fprintf(os.Stderr, "  pathedit -r -s system # Audit only the System PATH\n")
		fmt.Fprintf(os.Stderr, "  pathedit --write-config --log-level debug  # Persist settings\n")
	}

	jsonFlag := pflag.BoolP("json", "j", false, "Output the PATH audit as JSON")
	reportFlag := pflag.BoolP("report", "r", false, "Print a PATH audit report (CLI mode)")
	outputFlag := pflag.StringP("output", "o", "", "Save report to the specified file (combined with --report)")
	verboseFlag := pflag.BoolP("verbose", "v", false, "Include raw values, expansions and directory contents in the report")
	scopeFlag := pflag.StringP("scope", "s", "", "Limit --report/--json to one scope (user or system)")
	webFlag := pflag.BoolP("web", "w", false, "Start the read-only web view on localhost")
	portFlag := pflag.Int("port", 0, "Port for --web (default from config, 8080)")
	dryRunFlag := pflag.BoolP("dry-run", "n", false, "Edit a copy of the registry values; saves never reach the registry")
	configFlag := pflag.StringP("config", "c", "", "Path to the config file")
	logLevelFlag := pflag.String("log-level", "", "Log level (debug, info, warn, error)")
	writeConfigFlag := pflag.Bool("write-config", false, "Write the effective settings to the config file and exit")
	versionFlag := pflag.BoolP("version", "V", false, "Print version information")
	updateFlag := pflag.BoolP("update", "u", false, "Check for the latest version")
	helpFlag := pflag.BoolP("help", "h", false, "Show this help message")
	pflag.Parse()

	if *helpFlag {
		pflag.Usage()
		return
	}

	if *versionFlag {
		fmt.Printf("pathedit version %s\n", model.Version)
		return
	}

	if *updateFlag {
		checkUpdate(model.Version)
		return
	}

	cfgPath := *configFlag
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", errors.Message(err))
		os.Exit(1)
	}
	if *logLevelFlag != "" {
		cfg.LogLevel = *logLevelFlag
	}
	if *portFlag != 0 {
		cfg.WebPort = *portFlag
	}
	if *writeConfigFlag {
		if err := config.Save(cfgPath, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", errors.Message(err))
			os.Exit(1)
		}
		fmt.Printf("Config written to %s\n", cfgPath)
		return
	}

	interactive := !*reportFlag && !*jsonFlag && !*webFlag
	logging.Setup(logging.Options{
		Level:   cfg.LogLevel,
		File:    cfg.LogFile,
		Console: !interactive,
	})

	if runtime.GOOS != "windows" {
		fmt.Fprintln(os.Stderr, "pathedit edits the Windows registry and only runs on Windows.")
		os.Exit(1)
	}

	gateway := newGateway(*dryRunFlag)
	var only *model.Scope
	if *scopeFlag != "" {
		scope, err := model.ParseScope(*scopeFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", errors.Message(err))
			os.Exit(2)
		}
		only = &scope
	}

	switch {
	case *webFlag:
		if err := web.NewServer(gateway, nil).ListenAndServe(cfg.WebPort); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case *reportFlag:
		runReportMode(gateway, only, *outputFlag, *verboseFlag)
		if cfg.CheckUpdates {
			checkUpdate(model.Version)
		}
	case *jsonFlag:
		runJsonMode(gateway, only)
	default:
		runTuiMode(gateway, cfg, *dryRunFlag)
	}
}

// newGateway returns the live registry gateway, or an in-memory copy of it
// for dry runs.
func newGateway(dryRun bool) *registry.Gateway {
	live := registry.NewGateway(registry.NewSystemBackend())
	if !dryRun {
		return live
	}
	mem := registry.NewMemory()
	mem.Seed(live)
	return registry.NewGateway(mem)
}

// analyze audits both scopes, or only the one given.
func analyze(gateway *registry.Gateway, only *model.Scope) model.AnalysisResult {
	a := audit.NewAnalyzer(nil)
	if only != nil {
		return a.Analyze(gateway.Snapshot(*only))
	}
	return a.AnalyzeSession(
		gateway.Snapshot(model.ScopeUser),
		gateway.Snapshot(model.ScopeSystem),
	)
}

func runReportMode(gateway *registry.Gateway, only *model.Scope, outputFile string, verbose bool) {
	report := audit.GenerateReport(analyze(gateway, only), verbose)

	if outputFile != "" {
		err := os.WriteFile(outputFile, []byte(report), 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing report to %s: %v\n", outputFile, err)
			os.Exit(1)
		}
		fmt.Printf("Report saved to %s\n", outputFile)
	} else {
		fmt.Println(report)
	}
}

func runJsonMode(gateway *registry.Gateway, only *model.Scope) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(analyze(gateway, only)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTuiMode(gateway *registry.Gateway, cfg config.Config, dryRun bool) {
	sess := session.New(session.Options{
		Gateway:          gateway,
		Elevator:         elevate.NewSystem(),
		Notifier:         broadcast.NewSystem(),
		BroadcastTimeout: cfg.BroadcastTimeout.Duration,
		Args:             os.Args[1:],
	})

	m := tui.InitialModel(sess, cfg, dryRun)
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
	if fm, ok := final.(tui.AppModel); ok && fm.Restart {
		os.Exit(0)
	}
}
