package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"paramguard/archive"
	"paramguard/config"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const usage = `Usage: paramguard <command> [options]

Archive commands:
  store       Archive a config file
  restore     Restore an archived file
  list        List archived files
  search      Search archives by name, path or reason
  info        Show retention info for an archive
  retention   Update an archive's retention period
  delete      Delete an archive (retention permitting)
  cleanup     Remove all expired archives
  stats       Show archive statistics

Config commands:
  config create|add|update|delete|list

Global options (every command):
  --config PATH   YAML settings file
  --db PATH       archive database path (default paramguard.db)
  --debug         enable debug logs
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	if cmd == "config" {
		if err := runConfigCommand(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := runArchiveCommand(cmd, args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// globalFlags registers the options shared by every subcommand.
func globalFlags(fs *pflag.FlagSet) (configPath *string, dbPath *string, debug *bool) {
	configPath = fs.String("config", "", "YAML settings file path.")
	dbPath = fs.String("db", archive.DefaultDBPath, "Archive database path.")
	debug = fs.Bool("debug", false, "Enable debug logs.")
	return
}

// mergedSettings resolves the settings file and explicit flags into final
// values. Flags win only when set on the command line.
func mergedSettings(fs *pflag.FlagSet, configPath, dbPath string, debug bool) (*archive.FileConfig, error) {
	cfg := &archive.FileConfig{DB: archive.DefaultDBPath, RetentionDays: archive.DefaultRetentionDays}
	if configPath != "" {
		fileCfg, err := archive.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		if fileCfg.DB != "" {
			cfg.DB = fileCfg.DB
		}
		if fileCfg.RetentionDays > 0 {
			cfg.RetentionDays = fileCfg.RetentionDays
		}
		cfg.Debug = fileCfg.Debug
	}
	if fs.Changed("db") {
		cfg.DB = dbPath
	}
	if fs.Changed("debug") {
		cfg.Debug = debug
	}
	return cfg, nil
}

func newLogger(debug bool) *zap.Logger {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(os.Stderr), level)
	return zap.New(core)
}

func openService(fs *pflag.FlagSet, configPath, dbPath string, debug bool) (*archive.Service, *archive.FileConfig, error) {
	cfg, err := mergedSettings(fs, configPath, dbPath, debug)
	if err != nil {
		return nil, nil, err
	}
	svc, err := archive.NewService(cfg.DB, newLogger(cfg.Debug))
	if err != nil {
		return nil, nil, err
	}
	return svc, cfg, nil
}

func parseID(fs *pflag.FlagSet, cmd string) (int64, error) {
	if fs.NArg() < 1 {
		return 0, fmt.Errorf("%s requires an archive id", cmd)
	}
	id, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid archive id %q", fs.Arg(0))
	}
	return id, nil
}

func runArchiveCommand(cmd string, args []string) error {
	fs := pflag.NewFlagSet(cmd, pflag.ExitOnError)
	configPath, dbPath, debug := globalFlags(fs)

	switch cmd {
	case "store":
		name := fs.String("name", "", "Display name for the archive (defaults to the file name).")
		path := fs.String("path", "", "Path of the file to archive.")
		retention := fs.Int64("retention", 0, "Retention period in days.")
		reason := fs.String("reason", "", "Reason for archiving.")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *path == "" {
			return errors.New("store requires --path")
		}
		svc, cfg, err := openService(fs, *configPath, *dbPath, *debug)
		if err != nil {
			return err
		}
		defer svc.Close()
		days := *retention
		if !fs.Changed("retention") {
			days = cfg.RetentionDays
		}
		archiveName := *name
		if archiveName == "" {
			archiveName = filepath.Base(*path)
		}
		id, err := svc.Store(archiveName, *path, days, *reason)
		if err != nil {
			return err
		}
		fmt.Printf("Archived '%s' with ID: %d\n", archiveName, id)
		return nil

	case "restore":
		output := fs.String("output", "", "Restore target (directory or file path; default original path).")
		if err := fs.Parse(args); err != nil {
			return err
		}
		id, err := parseID(fs, cmd)
		if err != nil {
			return err
		}
		svc, _, err := openService(fs, *configPath, *dbPath, *debug)
		if err != nil {
			return err
		}
		defer svc.Close()
		restored, err := svc.Restore(id, *output)
		if err != nil {
			return err
		}
		fmt.Printf("Restored archive %d to %s\n", id, restored)
		return nil

	case "list":
		detailed := fs.Bool("detailed", false, "Show full details per archive.")
		if err := fs.Parse(args); err != nil {
			return err
		}
		svc, _, err := openService(fs, *configPath, *dbPath, *debug)
		if err != nil {
			return err
		}
		defer svc.Close()
		recs, err := svc.List()
		if err != nil {
			return err
		}
		printArchives(recs, *detailed)
		return nil

	case "search":
		detailed := fs.Bool("detailed", false, "Show full details per archive.")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if fs.NArg() < 1 {
			return errors.New("search requires a query")
		}
		svc, _, err := openService(fs, *configPath, *dbPath, *debug)
		if err != nil {
			return err
		}
		defer svc.Close()
		recs, err := svc.Search(fs.Arg(0))
		if err != nil {
			return err
		}
		printArchives(recs, *detailed)
		return nil

	case "info":
		if err := fs.Parse(args); err != nil {
			return err
		}
		id, err := parseID(fs, cmd)
		if err != nil {
			return err
		}
		svc, _, err := openService(fs, *configPath, *dbPath, *debug)
		if err != nil {
			return err
		}
		defer svc.Close()
		info, err := svc.RetentionInfo(id)
		if err != nil {
			return err
		}
		printRetentionInfo(id, info)
		return nil

	case "retention":
		if err := fs.Parse(args); err != nil {
			return err
		}
		id, err := parseID(fs, cmd)
		if err != nil {
			return err
		}
		if fs.NArg() < 2 {
			return errors.New("retention requires an archive id and a number of days")
		}
		days, err := strconv.ParseInt(fs.Arg(1), 10, 64)
		if err != nil || days < 0 {
			return fmt.Errorf("invalid retention days %q", fs.Arg(1))
		}
		svc, _, err := openService(fs, *configPath, *dbPath, *debug)
		if err != nil {
			return err
		}
		defer svc.Close()
		if err := svc.UpdateRetention(id, days); err != nil {
			return err
		}
		fmt.Printf("Updated retention period for archive %d to %d days\n", id, days)
		info, err := svc.RetentionInfo(id)
		if err != nil {
			return err
		}
		printRetentionInfo(id, info)
		return nil

	case "delete":
		if err := fs.Parse(args); err != nil {
			return err
		}
		id, err := parseID(fs, cmd)
		if err != nil {
			return err
		}
		svc, _, err := openService(fs, *configPath, *dbPath, *debug)
		if err != nil {
			return err
		}
		defer svc.Close()
		if err := svc.Delete(id); err != nil {
			return err
		}
		fmt.Printf("Deleted archive %d\n", id)
		return nil

	case "cleanup":
		if err := fs.Parse(args); err != nil {
			return err
		}
		svc, _, err := openService(fs, *configPath, *dbPath, *debug)
		if err != nil {
			return err
		}
		defer svc.Close()
		count, err := svc.Cleanup()
		if err != nil {
			return err
		}
		fmt.Printf("Cleaned up %d expired archives\n", count)
		return nil

	case "stats":
		if err := fs.Parse(args); err != nil {
			return err
		}
		svc, _, err := openService(fs, *configPath, *dbPath, *debug)
		if err != nil {
			return err
		}
		defer svc.Close()
		stats, err := svc.Statistics()
		if err != nil {
			return err
		}
		printStatistics(stats)
		return nil

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func runConfigCommand(args []string) error {
	if len(args) < 1 {
		return errors.New("config requires a subcommand: create, add, update, delete, list")
	}
	sub := args[0]
	fs := pflag.NewFlagSet("config "+sub, pflag.ExitOnError)
	mgr := config.NewManager()

	switch sub {
	case "create":
		name := fs.String("name", "", "Name for the new config (defaults to the file name).")
		path := fs.String("path", "", "Path for the new config file.")
		content := fs.String("content", "", "Initial content (default per format).")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *path == "" {
			return errors.New("config create requires --path")
		}
		format, err := config.DetectFormat(*path)
		if err != nil {
			return err
		}
		cfgName := *name
		if cfgName == "" {
			cfgName = filepath.Base(*path)
		}
		if err := mgr.Create(cfgName, *path, format, *content); err != nil {
			return err
		}
		fmt.Printf("Created %s config '%s' at %s\n", format, cfgName, *path)
		return nil

	case "add":
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if fs.NArg() < 1 {
			return errors.New("config add requires a file path")
		}
		if err := mgr.Add(fs.Arg(0)); err != nil {
			return err
		}
		f := mgr.Get(filepath.Base(fs.Arg(0)))
		fmt.Printf("Added %s config '%s'\n", f.Format, f.Name)
		return nil

	case "update":
		content := fs.String("content", "", "New content for the config file.")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if fs.NArg() < 1 {
			return errors.New("config update requires a file path")
		}
		if !fs.Changed("content") {
			return errors.New("config update requires --content")
		}
		if err := mgr.Add(fs.Arg(0)); err != nil {
			return err
		}
		name := filepath.Base(fs.Arg(0))
		if err := mgr.Update(name, *content); err != nil {
			return err
		}
		fmt.Printf("Updated config '%s'\n", name)
		return nil

	case "delete":
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if fs.NArg() < 1 {
			return errors.New("config delete requires a file path")
		}
		if err := mgr.Add(fs.Arg(0)); err != nil {
			return err
		}
		name := filepath.Base(fs.Arg(0))
		if err := mgr.Delete(name); err != nil {
			return err
		}
		fmt.Printf("Deleted config '%s'\n", name)
		return nil

	case "list":
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		for _, p := range fs.Args() {
			if err := mgr.Add(p); err != nil {
				return err
			}
		}
		for _, f := range mgr.List() {
			fmt.Printf("%s (%s): %s\n", f.Name, f.Format, f.Path)
		}
		return nil

	default:
		return fmt.Errorf("unknown config subcommand %q", sub)
	}
}

func printArchives(recs []archive.ArchivedFile, detailed bool) {
	if len(recs) == 0 {
		fmt.Println("No archives found")
		return
	}
	mode := archive.UIModeCLITerse
	if detailed {
		mode = archive.UIModeCLIDetailed
	}
	for i := range recs {
		d := archive.Project(&recs[i], mode)
		fmt.Printf("%d: %s (%s) %s\n", d.ID, d.Name, d.Age, d.Status)
		if !detailed {
			continue
		}
		fmt.Printf("  Path:     %s\n", d.Path)
		fmt.Printf("  Format:   %s\n", d.Format)
		fmt.Printf("  Archived: %s\n", d.Archived)
		fmt.Printf("  Reason:   %s\n", d.Reason)
		if d.Size != "" {
			fmt.Printf("  Size:     %s\n", d.Size)
		}
		if d.Modified != "" {
			fmt.Printf("  Modified: %s\n", d.Modified)
		}
	}
}

func printStatistics(stats *archive.Statistics) {
	fmt.Println("Archive Statistics")
	fmt.Println("==================")
	fmt.Printf("Total archives:   %d\n", stats.TotalArchives)
	fmt.Printf("Active archives:  %d\n", stats.ActiveCount)
	fmt.Printf("Expired archives: %d\n", stats.ExpiredCount)
	fmt.Printf("Total size:       %s\n", archive.FormatSize(stats.TotalSize))
	fmt.Printf("Avg retention:    %.1f days\n", stats.AvgRetentionDays)
}

func printRetentionInfo(id int64, info *archive.RetentionInfo) {
	fmt.Printf("Retention information for archive %d\n", id)
	fmt.Println("====================================")
	fmt.Printf("Archive date:     %s\n", archive.FormatTimestamp(info.ArchiveDate))
	fmt.Printf("Retention period: %d days\n", int64(info.RetentionPeriod.Hours()/24))
	if info.TimeRemaining != nil {
		fmt.Printf("Time remaining:   %.1f days\n", info.TimeRemaining.Hours()/24)
	} else {
		fmt.Println("Status: Expired (can be deleted)")
	}
}
