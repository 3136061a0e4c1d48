// Package cmd provides CLI command implementations for Chassis.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"

	"github.com/Benny93/chassis/internal/config"
	"github.com/Benny93/chassis/internal/frames"
	"github.com/Benny93/chassis/internal/ingestion"
	"github.com/Benny93/chassis/internal/sdf"
	"github.com/Benny93/chassis/internal/spatial"
	"github.com/Benny93/chassis/internal/storage"
	"github.com/Benny93/chassis/mcp"
)

// Version is set at build time via ldflags.
var Version = "dev"

// workspaceDir is the directory Chassis keeps its index in, at the
// workspace root.
const workspaceDir = ".chassis"

// AnalyzeCmd indexes a workspace of SDF documents.
type AnalyzeCmd struct {
	Path string `arg:"" optional:"" default:"." help:"Path to workspace"`
}

// Run executes the analyze command.
func (c *AnalyzeCmd) Run() error {
	ctx := context.Background()
	rootPath, err := filepath.Abs(c.Path)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	info, err := os.Stat(rootPath)
	if err != nil {
		return fmt.Errorf("accessing %s: %w", rootPath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", rootPath)
	}

	cfg, err := config.Load(rootPath)
	if err != nil {
		return err
	}

	color.Green("Indexing %s", rootPath)

	// Create .chassis directory
	chassisDir := filepath.Join(rootPath, workspaceDir)
	if err := os.MkdirAll(chassisDir, 0o755); err != nil {
		return fmt.Errorf("creating %s directory: %w", workspaceDir, err)
	}

	// Initialize BadgerDB storage
	dbPath := filepath.Join(chassisDir, "badger")
	store := storage.NewBadgerBackend()
	if err := store.Initialize(dbPath, false); err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	progress := func(phase string, pct float64) {
		fmt.Printf("\r\033[K%s (%.0f%%)", phase, pct*100)
	}

	_, result, err := ingestion.RunPipeline(ctx, rootPath, store, cfg, progress)
	if err != nil {
		return fmt.Errorf("running pipeline: %w", err)
	}

	fmt.Println() // Newline after progress

	// Write meta.json
	meta := map[string]any{
		"version":    Version,
		"name":       filepath.Base(rootPath),
		"path":       rootPath,
		"stats":      result,
		"indexed_at": time.Now().UTC().Format(time.RFC3339),
	}

	metaJSON, _ := json.MarshalIndent(meta, "", "  ")
	metaPath := filepath.Join(chassisDir, "meta.json")
	if err := os.WriteFile(metaPath, metaJSON, 0o644); err != nil {
		return fmt.Errorf("writing meta.json: %w", err)
	}

	// Register the workspace so `chassis list` can find it
	registerWorkspace(rootPath, metaJSON)

	// Print summary
	color.Green("\n✓ Indexing complete")
	fmt.Printf("  Documents:    %d\n", result.Documents)
	fmt.Printf("  Models:       %d\n", result.Models)
	fmt.Printf("  Frames:       %d\n", result.Frames)
	fmt.Printf("  Resolved:     %d\n", result.Resolved)
	fmt.Printf("  Diagnostics:  %d\n", result.Diagnostics)
	fmt.Printf("  Duration:     %.2fs\n", result.DurationSecs)

	return nil
}

// CheckCmd validates documents and reports frame semantics problems.
type CheckCmd struct {
	Path string `arg:"" optional:"" default:"." help:"Document or directory to check"`
}

// Run executes the check command.
func (c *CheckCmd) Run() error {
	path, err := filepath.Abs(c.Path)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("accessing %s: %w", path, err)
	}

	var reports []ingestion.DocumentReport
	if info.IsDir() {
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		reports, _, err = ingestion.RunPipeline(context.Background(), path, nil, cfg, nil)
		if err != nil {
			return err
		}
	} else {
		report, err := loadDocumentReport(path)
		if err != nil {
			return err
		}
		reports = []ingestion.DocumentReport{*report}
	}

	if len(reports) == 0 {
		fmt.Println("No documents found")
		return nil
	}

	problems := 0
	for _, report := range reports {
		models := len(report.Models)
		frameCount := 0
		for _, m := range report.Models {
			frameCount += len(m.Frames)
		}

		if len(report.Errors) == 0 {
			color.Green("✓ %s (%d model(s), %d frame(s))", report.Entry.RelPath, models, frameCount)
			continue
		}

		problems += len(report.Errors)
		color.Red("✗ %s", report.Entry.RelPath)
		for _, e := range report.Errors {
			fmt.Printf("    [%s] %s\n", e.Code, e.Message)
		}
	}

	if problems > 0 {
		return fmt.Errorf("%d problem(s) found in %d document(s)", problems, len(reports))
	}

	color.Green("\n✓ All documents passed")
	return nil
}

// FramesCmd lists the frames of a document.
type FramesCmd struct {
	Path  string `arg:"" help:"Document to inspect"`
	Model string `short:"m" help:"Only show frames of this model"`
}

// Run executes the frames command.
func (c *FramesCmd) Run() error {
	path, err := filepath.Abs(c.Path)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	report, err := loadDocumentReport(path)
	if err != nil {
		return err
	}

	shown := 0
	for _, m := range report.Models {
		if c.Model != "" && m.Model != c.Model {
			continue
		}
		shown++

		fmt.Printf("Model: %s (%d link(s), %d joint(s))\n", m.Model, m.LinkCount, m.JointCount)
		fmt.Printf("  %-20s %-6s %-16s %-16s %s\n", "NAME", "KIND", "ATTACHED-TO", "RELATIVE-TO", "POSE IN MODEL")
		for _, f := range m.Frames {
			attachedTo := f.AttachedTo
			if attachedTo == "" {
				attachedTo = "-"
			}
			relativeTo := f.RelativeTo
			if relativeTo == "" {
				relativeTo = "-"
			}
			pose := "(unresolved)"
			if f.Resolved {
				pose = f.PoseInModel.String()
			}
			fmt.Printf("  %-20s %-6s %-16s %-16s %s\n", f.Name, f.Kind, attachedTo, relativeTo, pose)
		}
		fmt.Println()
	}

	if c.Model != "" && shown == 0 {
		return fmt.Errorf("model %q not found in %s", c.Model, c.Path)
	}

	if len(report.Errors) > 0 {
		color.Yellow("%d diagnostic(s) while loading. Run `chassis check %s` for details.", len(report.Errors), c.Path)
	}

	return nil
}

// ResolveCmd resolves a frame pose within a model.
type ResolveCmd struct {
	Path       string `arg:"" help:"Document containing the frame"`
	Frame      string `arg:"" help:"Frame name to resolve"`
	RelativeTo string `short:"r" help:"Express the pose relative to this frame"`
	Model      string `short:"m" help:"Model to resolve in (defaults to the first model)"`
}

// Run executes the resolve command.
func (c *ResolveCmd) Run() error {
	path, err := filepath.Abs(c.Path)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	report, err := loadDocumentReport(path)
	if err != nil {
		return err
	}
	if report.Root == nil {
		return fmt.Errorf("%s", report.Errors.Error())
	}

	model := findModel(report.Root, c.Model)
	if model == nil {
		if c.Model == "" {
			return fmt.Errorf("no models found in %s", c.Path)
		}
		return fmt.Errorf("model %q not found in %s", c.Model, c.Path)
	}

	poses, errs := frames.BuildPoseRelativeToGraph(model)
	errs = append(errs, frames.ValidatePoseRelativeToGraph(poses)...)
	if len(errs) > 0 {
		return fmt.Errorf("%s", errs.Error())
	}

	target := c.RelativeTo
	var pose spatial.Pose
	if target == "" {
		pose, errs = frames.ResolvePoseRelativeToRoot(poses, c.Frame)
		target = sdf.ModelFrameName
	} else {
		pose, errs = frames.ResolvePose(poses, c.Frame, target)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", errs.Error())
	}

	fmt.Printf("Pose of [%s] relative to [%s]: %s\n", c.Frame, target, pose.String())

	attachments, errs := frames.BuildFrameAttachedToGraph(model)
	errs = append(errs, frames.ValidateFrameAttachedToGraph(attachments)...)
	if len(errs) == 0 {
		if body, rerrs := frames.ResolveFrameAttachedToBody(attachments, c.Frame); len(rerrs) == 0 {
			fmt.Printf("Attached to: %s\n", body)
		}
	}

	return nil
}

// QueryCmd searches indexed frames.
type QueryCmd struct {
	Query string `arg:"" help:"Search query"`
	Limit int    `short:"n" default:"20" help:"Maximum results"`
}

// Run executes the query command.
func (c *QueryCmd) Run() error {
	ctx := context.Background()
	store, err := loadStorage(true)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	results, err := store.Search(ctx, c.Query, c.Limit)
	if err != nil {
		return fmt.Errorf("searching: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No results found")
		return nil
	}

	for i, r := range results {
		fmt.Printf("\n%d. %s (%s)\n", i+1, r.Name, r.Kind)
		fmt.Printf("   Model: %s\n", r.Model)
		fmt.Printf("   Document: %s\n", r.DocPath)
		fmt.Printf("   Score: %.3f\n", r.Score)
	}

	return nil
}

// WatchCmd enables watch mode with live re-indexing.
type WatchCmd struct{}

// Run executes the watch command.
func (c *WatchCmd) Run() error {
	rootPath, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(rootPath)
	if err != nil {
		return err
	}

	store, err := loadStorage(false)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle Ctrl+C
	go func() {
		<-osSignalChannel()
		fmt.Println("\nStopping watch mode...")
		cancel()
	}()

	err = ingestion.WatchWorkspace(ctx, rootPath, store, cfg)
	if err != nil && err != context.Canceled {
		return fmt.Errorf("watch error: %w", err)
	}

	fmt.Println("Watch mode stopped.")
	return nil
}

// SetupCmd configures MCP for various AI clients.
type SetupCmd struct {
	Qwen     bool   `help:"Configure for Qwen CLI"`
	Claude   bool   `help:"Configure for Claude Code"`
	Cursor   bool   `help:"Configure for Cursor"`
	Local    bool   `help:"Create project-local configuration"`
	Global   bool   `help:"Create global configuration"`
	Format   string `help:"Output format (json|text)" enum:"json,text" default:"json"`
	FilePath string `help:"Custom file path for configuration"`
}

// Run executes the setup command.
func (c *SetupCmd) Run() error {
	if c.Format != "json" && c.Format != "text" {
		return fmt.Errorf("invalid format: %s (must be json or text)", c.Format)
	}

	// If no specific client is specified, output config to stdout
	if !c.Qwen && !c.Claude && !c.Cursor {
		return c.outputDefaultConfig()
	}

	// If neither local nor global is specified, default to local
	if !c.Local && !c.Global {
		c.Local = true
	}

	if c.Qwen {
		if err := c.setupClient("qwen", "mcp.json"); err != nil {
			return err
		}
	}

	if c.Claude {
		if err := c.setupClient("claude", "settings.json"); err != nil {
			return err
		}
	}

	if c.Cursor {
		if err := c.setupClient("cursor", "mcp.json"); err != nil {
			return err
		}
	}

	return nil
}

func (c *SetupCmd) outputDefaultConfig() error {
	mcpConfig := generateChassisConfig()

	if c.Format == "json" {
		jsonBytes, err := json.MarshalIndent(mcpConfig, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(jsonBytes))
	} else {
		fmt.Println("# Add this to your MCP client configuration:")
		fmt.Println()
		for key, value := range mcpConfig {
			fmt.Printf("%s: %s\n", key, toJSON(value))
		}
	}

	return nil
}

func (c *SetupCmd) setupClient(client, localFile string) error {
	mcpConfig := generateChassisConfig()

	if c.Global {
		globalPath := getGlobalConfigPath(client)
		if err := writeClientConfig(globalPath, mcpConfig, c.Format); err != nil {
			return err
		}
		color.Green("✓ Created global %s MCP config at %s", client, globalPath)
	}

	if c.Local {
		var localPath string
		if c.FilePath != "" {
			localPath = filepath.Join(c.FilePath, localFile)
		} else {
			localPath = getLocalConfigPath(".", client)
		}
		if err := writeClientConfig(localPath, mcpConfig, c.Format); err != nil {
			return err
		}
		color.Green("✓ Created local %s MCP config at %s", client, localPath)
	}

	return nil
}

// Configuration generators

func generateChassisConfig() map[string]any {
	return map[string]any{
		"mcpServers": map[string]any{
			"chassis": map[string]any{
				"command": "chassis",
				"args":    []string{"serve", "--watch"},
			},
		},
	}
}

// Path helpers

func getLocalConfigPath(basePath, client string) string {
	configDir := getClientConfigDir(client)
	return filepath.Join(basePath, configDir, "mcp.json")
}

func getGlobalConfigPath(client string) string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv("HOME")
	}

	configDir := getClientConfigDir(client)
	return filepath.Join(homeDir, configDir, "global", "mcp.json")
}

func getClientConfigDir(client string) string {
	switch client {
	case "qwen":
		return ".qwen"
	case "claude":
		return ".claude"
	case "cursor":
		return ".cursor"
	default:
		return ".qwen"
	}
}

// Config writers

func writeClientConfig(configPath string, mcpConfig map[string]any, format string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	var content []byte
	var err error

	if format == "json" {
		content, err = json.MarshalIndent(mcpConfig, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		content = append(content, '\n')
	} else {
		var sb strings.Builder
		sb.WriteString("# MCP Configuration for Chassis\n")
		sb.WriteString("# Generated by chassis setup\n\n")

		for key, value := range mcpConfig {
			sb.WriteString(fmt.Sprintf("%s: %s\n", key, toJSON(value)))
		}
		content = []byte(sb.String())
	}

	if err := os.WriteFile(configPath, content, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// MCPCmd starts the MCP server.
type MCPCmd struct{}

// Run executes the mcp command.
func (c *MCPCmd) Run() error {
	ctx := context.Background()
	store, err := loadStorage(true)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	server := mcp.NewServer(store)

	// Note: No output to stderr - MCP server uses stdio for JSON-RPC only
	return server.Run(ctx, os.Stdin, os.Stdout)
}

// ServeCmd starts the MCP server with optional watch mode.
type ServeCmd struct {
	Watch bool `short:"w" help:"Enable file watching"`
}

// Run executes the serve command.
func (c *ServeCmd) Run() error {
	ctx := context.Background()
	store, err := loadStorage(!c.Watch)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	server := mcp.NewServer(store)

	if c.Watch {
		fmt.Fprintln(os.Stderr, "Starting MCP server with watch mode...")

		rootPath, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}

		cfg, err := config.Load(rootPath)
		if err != nil {
			return err
		}

		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		go func() {
			err := ingestion.WatchWorkspace(watchCtx, rootPath, store, cfg)
			if err != nil && err != context.Canceled {
				fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)
			}
		}()

		fmt.Fprintln(os.Stderr, "File watching enabled")
	} else {
		fmt.Fprintln(os.Stderr, "Starting MCP server...")
	}

	return server.Run(ctx, os.Stdin, os.Stdout)
}

// ListCmd lists all indexed workspaces.
type ListCmd struct{}

// Run executes the list command.
func (c *ListCmd) Run() error {
	registryRoot := filepath.Join(os.Getenv("HOME"), workspaceDir, "workspaces")

	entries, err := os.ReadDir(registryRoot)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("No indexed workspaces found")
			return nil
		}
		return fmt.Errorf("reading registry: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No indexed workspaces found")
		return nil
	}

	fmt.Println("Indexed workspaces:")
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(registryRoot, entry.Name(), "meta.json")
		metaBytes, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta map[string]any
		if err := json.Unmarshal(metaBytes, &meta); err != nil {
			continue
		}

		fmt.Printf("\n  %s\n", entry.Name())
		if path, ok := meta["path"].(string); ok {
			fmt.Printf("    Path: %s\n", path)
		}
		if stats, ok := meta["stats"].(map[string]any); ok {
			if documents, ok := stats["documents"].(float64); ok {
				fmt.Printf("    Documents: %.0f\n", documents)
			}
			if frameCount, ok := stats["frames"].(float64); ok {
				fmt.Printf("    Frames: %.0f\n", frameCount)
			}
		}
		if indexedAt, ok := meta["indexed_at"].(string); ok {
			fmt.Printf("    Indexed: %s\n", indexedAt)
		}
	}

	return nil
}

// StatusCmd shows index status for the current workspace.
type StatusCmd struct{}

// Run executes the status command.
func (c *StatusCmd) Run() error {
	rootPath, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	metaPath := filepath.Join(rootPath, workspaceDir, "meta.json")
	metaBytes, err := os.ReadFile(metaPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("no index found at %s. Run 'chassis analyze' first", rootPath)
		}
		return fmt.Errorf("reading meta.json: %w", err)
	}

	var meta map[string]any
	if err := json.Unmarshal(metaBytes, &meta); err != nil {
		return fmt.Errorf("parsing meta.json: %w", err)
	}

	fmt.Printf("Index status for %s\n", rootPath)
	if version, ok := meta["version"].(string); ok {
		fmt.Printf("  Version:        %s\n", version)
	}
	if indexedAt, ok := meta["indexed_at"].(string); ok {
		fmt.Printf("  Last indexed:   %s\n", indexedAt)
	}
	if stats, ok := meta["stats"].(map[string]any); ok {
		if documents, ok := stats["documents"].(float64); ok {
			fmt.Printf("  Documents:      %.0f\n", documents)
		}
		if models, ok := stats["models"].(float64); ok {
			fmt.Printf("  Models:         %.0f\n", models)
		}
		if frameCount, ok := stats["frames"].(float64); ok {
			fmt.Printf("  Frames:         %.0f\n", frameCount)
		}
		if diagnostics, ok := stats["diagnostics"].(float64); ok {
			fmt.Printf("  Diagnostics:    %.0f\n", diagnostics)
		}
	}

	return nil
}

// CleanCmd deletes the index for the current workspace.
type CleanCmd struct {
	Force bool `short:"f" help:"Skip confirmation"`
}

// Run executes the clean command.
func (c *CleanCmd) Run() error {
	rootPath, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	chassisDir := filepath.Join(rootPath, workspaceDir)
	if _, err := os.Stat(chassisDir); os.IsNotExist(err) {
		return fmt.Errorf("no index found at %s. Nothing to clean", rootPath)
	}

	if !c.Force {
		fmt.Printf("Delete index at %s? [y/N] ", chassisDir)
		var response string
		_, _ = fmt.Scanln(&response)
		if response != "y" && response != "Y" {
			fmt.Println("Aborted")
			return nil
		}
	}

	if err := os.RemoveAll(chassisDir); err != nil {
		return fmt.Errorf("deleting index: %w", err)
	}

	color.Green("Deleted %s", chassisDir)
	return nil
}

// Helper functions

// osSignalChannel returns a channel that receives OS signals for graceful shutdown.
func osSignalChannel() <-chan os.Signal {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	return sigChan
}

func loadStorage(readOnly bool) (*storage.BadgerBackend, error) {
	rootPath, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}

	dbPath := filepath.Join(rootPath, workspaceDir, "badger")
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("no index found at %s. Run 'chassis analyze' first", rootPath)
	}

	store := storage.NewBadgerBackend()
	if err := store.Initialize(dbPath, readOnly); err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}

	return store, nil
}

// loadDocumentReport parses and analyzes a single document from disk.
func loadDocumentReport(path string) (*ingestion.DocumentReport, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	entry := ingestion.FileEntry{
		Path:    path,
		RelPath: filepath.Base(path),
		Content: content,
		Digest:  storage.DigestOf(content),
	}

	reports := ingestion.ParseDocuments([]ingestion.FileEntry{entry})
	if len(reports) == 0 {
		return nil, fmt.Errorf("unrecognized document extension for %s", path)
	}

	ingestion.AnalyzeFrames(reports)
	return &reports[0], nil
}

// findModel locates a model by scoped name. An empty name selects the first
// model in the document.
func findModel(root *sdf.Root, name string) *sdf.Model {
	models := root.AllModels()
	if name == "" {
		if len(models) == 0 {
			return nil
		}
		return models[0]
	}

	var found *sdf.Model
	var walk func(prefix string, model *sdf.Model)
	walk = func(prefix string, model *sdf.Model) {
		scoped := model.Name
		if prefix != "" {
			scoped = prefix + "::" + model.Name
		}
		if scoped == name {
			found = model
			return
		}
		for i := range model.Models {
			walk(scoped, &model.Models[i])
		}
	}

	for _, model := range models {
		walk("", model)
		if found != nil {
			return found
		}
	}
	return nil
}

// registerWorkspace mirrors meta.json into the user-level registry. Failure
// is not fatal; the local index is already written.
func registerWorkspace(rootPath string, metaJSON []byte) {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}

	regDir := filepath.Join(home, workspaceDir, "workspaces", filepath.Base(rootPath))
	if err := os.MkdirAll(regDir, 0o755); err != nil {
		return
	}
	_ = os.WriteFile(filepath.Join(regDir, "meta.json"), metaJSON, 0o644)
}

func toJSON(v any) string {
	bytes, _ := json.Marshal(v)
	return string(bytes)
}

// CLI is the root Kong command structure.
type CLI struct {
	Version kong.VersionFlag `help:"Show version information"`
	Verbose bool             `short:"v" help:"Enable verbose output"`
	Quiet   bool             `short:"q" help:"Suppress non-essential output"`

	// Commands
	Analyze AnalyzeCmd `cmd:"" help:"Index a workspace of SDF documents"`
	Check   CheckCmd   `cmd:"" help:"Validate documents and report frame problems"`
	Frames  FramesCmd  `cmd:"" help:"List the frames of a document"`
	Resolve ResolveCmd `cmd:"" help:"Resolve a frame pose within a model"`
	Query   QueryCmd   `cmd:"" help:"Search indexed frames"`
	Watch   WatchCmd   `cmd:"" help:"Watch mode with live re-indexing"`
	Setup   SetupCmd   `cmd:"" help:"Configure MCP for Claude Code / Cursor"`
	MCP     MCPCmd     `cmd:"" help:"Start MCP server (stdio transport)"`
	Serve   ServeCmd   `cmd:"" help:"Start MCP server with optional watch mode"`
	List    ListCmd    `cmd:"" help:"List all indexed workspaces"`
	Status  StatusCmd  `cmd:"" help:"Show index status for current workspace"`
	Clean   CleanCmd   `cmd:"" help:"Delete index for current workspace"`
}

// NewCLI creates a new CLI instance.
func NewCLI() *CLI {
	return &CLI{}
}

// Execute parses command-line arguments and executes the selected command.
func (c *CLI) Execute(args []string) error {
	kongCtx := kong.Parse(c,
		kong.Name("chassis"),
		kong.Description("Frame semantics engine for SDFormat robot descriptions"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version": Version,
		},
	)

	return kongCtx.Run()
}
