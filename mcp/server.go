// Package mcp provides the MCP (Model Context Protocol) server for Chassis.
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Benny93/chassis/internal/sdf"
	"github.com/Benny93/chassis/internal/spatial"
	"github.com/Benny93/chassis/internal/storage"
)

// Server represents the MCP server.
type Server struct {
	storage StorageBackend
	server  *mcp.Server
}

// StorageBackend defines the interface for storage backends.
type StorageBackend interface {
	Search(ctx context.Context, query string, limit int) ([]storage.SearchResult, error)
	GetDocument(ctx context.Context, path string) (*storage.DocumentRecord, error)
	ListDocuments(ctx context.Context) ([]*storage.DocumentRecord, error)
	GetFrame(ctx context.Context, frameID string) (*storage.FrameRecord, error)
	FramesByDocument(ctx context.Context, path string) ([]*storage.FrameRecord, error)
	DocumentCount() int
	FrameCount() int
	Close() error
}

// Tool represents an MCP tool.
type Tool struct {
	Name        string
	Description string
	InputSchema *jsonschema.Schema
}

// Resource represents an MCP resource.
type Resource struct {
	URI         string
	Name        string
	Description string
	MimeType    string
}

// NewServer creates a new MCP server.
func NewServer(storage StorageBackend) *Server {
	s := &Server{
		storage: storage,
	}

	// Create MCP server
	s.server = mcp.NewServer(&mcp.Implementation{
		Name:    "chassis",
		Version: "0.1.0",
	}, nil)

	// Register tools
	s.registerTools()

	// Register resources
	s.registerResources()

	return s
}

// ListTools returns all registered tools.
func (s *Server) ListTools() []Tool {
	return []Tool{
		{
			Name:        "chassis_search",
			Description: "Search indexed frames by name. Returns ranked frames matching the query.",
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"query": {Type: "string", Description: "Search query text"},
					"limit": {Type: "integer", Description: "Maximum number of results"},
				},
				Required: []string{"query"},
			},
		},
		{
			Name:        "chassis_documents",
			Description: "List all indexed documents with their models and entity counts.",
			InputSchema: &jsonschema.Schema{
				Type:       "object",
				Properties: map[string]*jsonschema.Schema{},
			},
		},
		{
			Name:        "chassis_frames",
			Description: "List every frame of an indexed document: kind, attachment body and pose in the model frame.",
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"document": {Type: "string", Description: "Workspace-relative document path"},
					"model":    {Type: "string", Description: "Restrict output to one model (scoped name)"},
				},
				Required: []string{"document"},
			},
		},
		{
			Name:        "chassis_resolve",
			Description: "Resolve the pose of a frame relative to another frame of the same model, using the stored index.",
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"frame":       {Type: "string", Description: "Name of the frame to resolve"},
					"relative_to": {Type: "string", Description: "Frame to express the pose in (default: the model frame)"},
					"document":    {Type: "string", Description: "Workspace-relative document path (searched when omitted)"},
					"model":       {Type: "string", Description: "Scoped model name, for disambiguation"},
				},
				Required: []string{"frame"},
			},
		},
		{
			Name:        "chassis_attached_to",
			Description: "Report the physical body a frame is ultimately attached to.",
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"frame":    {Type: "string", Description: "Name of the frame to look up"},
					"document": {Type: "string", Description: "Workspace-relative document path (searched when omitted)"},
					"model":    {Type: "string", Description: "Scoped model name, for disambiguation"},
				},
				Required: []string{"frame"},
			},
		},
		{
			Name:        "chassis_errors",
			Description: "List the diagnostics recorded for one document, or for every indexed document.",
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"document": {Type: "string", Description: "Workspace-relative document path (all documents when omitted)"},
				},
			},
		},
	}
}

// ListResources returns all registered resources.
func (s *Server) ListResources() []Resource {
	return []Resource{
		{
			URI:         "chassis://overview",
			Name:        "Index Overview",
			Description: "High-level statistics about the indexed workspace",
			MimeType:    "text/plain",
		},
		{
			URI:         "chassis://semantics",
			Name:        "Frame Semantics Reference",
			Description: "How frames, attachments and pose references resolve",
			MimeType:    "text/plain",
		},
		{
			URI:         "chassis://diagnostics",
			Name:        "Diagnostics Report",
			Description: "Documents whose indexing recorded diagnostics",
			MimeType:    "text/plain",
		},
	}
}

// CallTool executes a tool with the given arguments.
func (s *Server) CallTool(ctx context.Context, name string, args map[string]any) (string, error) {
	switch name {
	case "chassis_search":
		query, _ := args["query"].(string)
		limit, _ := args["limit"].(float64)
		if limit == 0 {
			limit = 20
		}
		return handleSearch(s.storage, query, int(limit))
	case "chassis_documents":
		return handleDocuments(s.storage)
	case "chassis_frames":
		document, _ := args["document"].(string)
		model, _ := args["model"].(string)
		return handleFrames(s.storage, document, model)
	case "chassis_resolve":
		document, _ := args["document"].(string)
		model, _ := args["model"].(string)
		frame, _ := args["frame"].(string)
		relativeTo, _ := args["relative_to"].(string)
		return handleResolve(s.storage, document, model, frame, relativeTo)
	case "chassis_attached_to":
		document, _ := args["document"].(string)
		model, _ := args["model"].(string)
		frame, _ := args["frame"].(string)
		return handleAttachedTo(s.storage, document, model, frame)
	case "chassis_errors":
		document, _ := args["document"].(string)
		return handleErrors(s.storage, document)
	default:
		return "", fmt.Errorf("unknown tool: %s", name)
	}
}

// ReadResource reads a resource by URI.
func (s *Server) ReadResource(ctx context.Context, uri string) (string, error) {
	switch uri {
	case "chassis://overview":
		return getOverview(s.storage), nil
	case "chassis://semantics":
		return getSemantics(), nil
	case "chassis://diagnostics":
		return getDiagnostics(s.storage), nil
	default:
		return "", fmt.Errorf("unknown resource: %s", uri)
	}
}

// Run starts the MCP server with stdio transport.
func (s *Server) Run(ctx context.Context, stdin io.Reader, stdout io.Writer) error {
	if stdin == nil || stdout == nil {
		return fmt.Errorf("stdin and stdout must not be nil")
	}

	reader := bufio.NewReader(stdin)
	encoder := json.NewEncoder(stdout)
	// Note: Do NOT use SetIndent - MCP protocol requires compact JSON (one line per message)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := reader.ReadBytes('\n')
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		// Parse JSON-RPC request
		var req map[string]any
		if err := json.Unmarshal(line, &req); err != nil {
			continue
		}

		// Handle request
		resp := s.handleRequest(ctx, req)
		if err := encoder.Encode(resp); err != nil {
			return err
		}
	}
}

func (s *Server) handleRequest(ctx context.Context, req map[string]any) map[string]any {
	method, _ := req["method"].(string)
	id := req["id"]

	switch method {
	case "initialize":
		return s.handleInitialize(id)
	case "tools/list":
		return s.handleToolsList(id)
	case "tools/call":
		return s.handleToolsCall(ctx, id, req)
	case "resources/list":
		return s.handleResourcesList(id)
	case "resources/read":
		return s.handleResourcesRead(ctx, id, req)
	default:
		return errorResponse(id, -32601, "Method not found: "+method)
	}
}

func (s *Server) handleInitialize(id any) map[string]any {
	return map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"result": map[string]any{
			"protocolVersion": "2024-11-05",
			"serverInfo": map[string]any{
				"name":    "chassis",
				"version": "0.1.0",
			},
			"capabilities": map[string]any{
				"tools": map[string]any{
					"listChanged": false,
				},
				"resources": map[string]any{
					"listChanged": false,
				},
			},
		},
	}
}

func (s *Server) handleToolsList(id any) map[string]any {
	tools := s.ListTools()
	toolList := make([]map[string]any, len(tools))
	for i, tool := range tools {
		schema, _ := json.Marshal(tool.InputSchema)
		var schemaMap map[string]any
		json.Unmarshal(schema, &schemaMap)

		toolList[i] = map[string]any{
			"name":        tool.Name,
			"description": tool.Description,
			"inputSchema": schemaMap,
		}
	}

	return map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"result": map[string]any{
			"tools": toolList,
		},
	}
}

func (s *Server) handleToolsCall(ctx context.Context, id any, req map[string]any) map[string]any {
	params, _ := req["params"].(map[string]any)
	if params == nil {
		return errorResponse(id, -32602, "Invalid params")
	}

	name, _ := params["name"].(string)
	args, _ := params["arguments"].(map[string]any)

	result, err := s.CallTool(ctx, name, args)
	if err != nil {
		return errorResponse(id, -32000, err.Error())
	}

	return map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"result": map[string]any{
			"content": []map[string]any{
				{
					"type": "text",
					"text": result,
				},
			},
		},
	}
}

func (s *Server) handleResourcesList(id any) map[string]any {
	resources := s.ListResources()
	resourceList := make([]map[string]any, len(resources))
	for i, res := range resources {
		resourceList[i] = map[string]any{
			"uri":         res.URI,
			"name":        res.Name,
			"description": res.Description,
			"mimeType":    res.MimeType,
		}
	}

	return map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"result": map[string]any{
			"resources": resourceList,
		},
	}
}

func (s *Server) handleResourcesRead(ctx context.Context, id any, req map[string]any) map[string]any {
	params, _ := req["params"].(map[string]any)
	if params == nil {
		return errorResponse(id, -32602, "Invalid params")
	}

	uri, _ := params["uri"].(string)

	content, err := s.ReadResource(ctx, uri)
	if err != nil {
		return errorResponse(id, -32000, err.Error())
	}

	return map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"result": map[string]any{
			"contents": []map[string]any{
				{
					"uri":      uri,
					"mimeType": "text/plain",
					"text":     content,
				},
			},
		},
	}
}

// Tool Handlers

func handleSearch(store StorageBackend, query string, limit int) (string, error) {
	if query == "" {
		return "No query provided", nil
	}

	ctx := context.Background()

	results, err := store.Search(ctx, query, limit)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "No results found", nil
	}

	return formatSearchResults(results, query), nil
}

// formatSearchResults formats frame search results as markdown.
func formatSearchResults(results []storage.SearchResult, query string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d frames for '%s':\n\n", len(results), query))

	for i, r := range results {
		sb.WriteString(fmt.Sprintf("%d. **%s** (%s)\n", i+1, r.Name, r.Kind))
		sb.WriteString(fmt.Sprintf("   Model: %s\n", r.Model))
		sb.WriteString(fmt.Sprintf("   Document: %s\n", r.DocPath))
		sb.WriteString(fmt.Sprintf("   Score: %.3f\n", r.Score))
		sb.WriteString("\n")
	}

	sb.WriteString("Next: Use `chassis_resolve` on a frame to express its pose in another frame.")

	return sb.String()
}

func handleDocuments(store StorageBackend) (string, error) {
	ctx := context.Background()

	docs, err := store.ListDocuments(ctx)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("## Indexed Documents\n\n")

	if len(docs) == 0 {
		sb.WriteString("No documents indexed yet. Run `chassis analyze` to index a workspace.\n")
		return sb.String(), nil
	}

	for _, doc := range docs {
		sb.WriteString(fmt.Sprintf("### %s\n", doc.Path))
		if doc.Version != "" {
			sb.WriteString(fmt.Sprintf("- Version: %s\n", doc.Version))
		}
		if len(doc.Models) > 0 {
			sb.WriteString(fmt.Sprintf("- Models: %s\n", strings.Join(doc.Models, ", ")))
		}
		sb.WriteString(fmt.Sprintf("- Links: %d, Joints: %d, Frames: %d\n",
			doc.LinkCount, doc.JointCount, doc.FrameCount))
		if len(doc.Errors) > 0 {
			sb.WriteString(fmt.Sprintf("- Diagnostics: %d\n", len(doc.Errors)))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Next: Use `chassis_frames` on a document for its full frame table.")

	return sb.String(), nil
}

func handleFrames(store StorageBackend, document, model string) (string, error) {
	if document == "" {
		return "No document provided", nil
	}

	ctx := context.Background()

	records, err := store.FramesByDocument(ctx, document)
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return fmt.Sprintf("No frames indexed for '%s'. Run `chassis analyze` first.", document), nil
	}

	// Group by model, keeping document order
	byModel := make(map[string][]*storage.FrameRecord)
	var order []string
	for _, rec := range records {
		if model != "" && rec.Model != model {
			continue
		}
		if _, ok := byModel[rec.Model]; !ok {
			order = append(order, rec.Model)
		}
		byModel[rec.Model] = append(byModel[rec.Model], rec)
	}
	if len(order) == 0 {
		return fmt.Sprintf("Model '%s' not found in %s", model, document), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Frames in %s\n\n", document))

	for _, name := range order {
		recs := byModel[name]
		sb.WriteString(fmt.Sprintf("## Model %s (%d frames)\n\n", name, len(recs)))
		sb.WriteString("| Frame | Kind | Attached to | Pose in model |\n")
		sb.WriteString("|-------|------|-------------|---------------|\n")
		for _, rec := range recs {
			attached := rec.AttachedTo
			if attached == "" {
				attached = "(unresolved)"
			}
			pose := "(unresolved)"
			if rec.Resolved {
				pose = rec.PoseInModel
			}
			sb.WriteString(fmt.Sprintf("| `%s` | %s | %s | `%s` |\n", rec.Name, rec.Kind, attached, pose))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Next: Use `chassis_resolve` to express any frame in another frame.")

	return sb.String(), nil
}

// resolveFrameRecord locates a frame record by name, inside the given
// document when one is specified, otherwise through the search index. Name
// matches must be exact; a close match is never silently substituted.
func resolveFrameRecord(store StorageBackend, document, model, frame string) (*storage.FrameRecord, error) {
	ctx := context.Background()

	if document != "" {
		records, err := store.FramesByDocument(ctx, document)
		if err != nil {
			return nil, err
		}

		var matches []*storage.FrameRecord
		for _, rec := range records {
			if rec.Name != frame {
				continue
			}
			if model != "" && rec.Model != model {
				continue
			}
			matches = append(matches, rec)
		}

		switch len(matches) {
		case 0:
			return nil, fmt.Errorf("frame '%s' not found in %s", frame, document)
		case 1:
			return matches[0], nil
		default:
			models := make([]string, len(matches))
			for i, rec := range matches {
				models[i] = rec.Model
			}
			return nil, fmt.Errorf("frame '%s' is ambiguous in %s, specify one of models: %s",
				frame, document, strings.Join(models, ", "))
		}
	}

	results, err := store.Search(ctx, frame, 10)
	if err != nil {
		return nil, err
	}
	for _, result := range results {
		if result.Name != frame {
			continue
		}
		if model != "" && result.Model != model {
			continue
		}
		rec, err := store.GetFrame(ctx, result.FrameID)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			return rec, nil
		}
	}

	return nil, fmt.Errorf("frame '%s' not found", frame)
}

func handleResolve(store StorageBackend, document, model, frame, relativeTo string) (string, error) {
	if frame == "" {
		return "No frame provided", nil
	}

	target, err := resolveFrameRecord(store, document, model, frame)
	if err != nil {
		return fmt.Sprintf("Frame '%s' not found in index", frame), nil
	}
	if !target.Resolved {
		return fmt.Sprintf("Frame '%s' has no resolved pose. Use `chassis_errors` on %s for details.",
			frame, target.DocPath), nil
	}

	framePose, err := spatial.Parse(target.PoseInModel)
	if err != nil {
		return "", fmt.Errorf("stored pose for '%s' is invalid: %w", frame, err)
	}

	pose := framePose
	reference := sdf.ModelFrameName
	if relativeTo != "" && relativeTo != sdf.ModelFrameName {
		ref, err := resolveFrameRecord(store, target.DocPath, target.Model, relativeTo)
		if err != nil {
			return fmt.Sprintf("Frame '%s' not found in model '%s'", relativeTo, target.Model), nil
		}
		if !ref.Resolved {
			return fmt.Sprintf("Frame '%s' has no resolved pose. Use `chassis_errors` on %s for details.",
				relativeTo, ref.DocPath), nil
		}

		refPose, err := spatial.Parse(ref.PoseInModel)
		if err != nil {
			return "", fmt.Errorf("stored pose for '%s' is invalid: %w", relativeTo, err)
		}

		pose = spatial.Compose(spatial.Inverse(refPose), framePose)
		reference = relativeTo
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Pose of **%s** relative to **%s**: `%s`\n\n", frame, reference, pose))
	sb.WriteString(fmt.Sprintf("- Document: %s\n", target.DocPath))
	sb.WriteString(fmt.Sprintf("- Model: %s\n", target.Model))
	if target.AttachedTo != "" {
		sb.WriteString(fmt.Sprintf("- Attached to: %s\n", target.AttachedTo))
	}

	return sb.String(), nil
}

func handleAttachedTo(store StorageBackend, document, model, frame string) (string, error) {
	if frame == "" {
		return "No frame provided", nil
	}

	record, err := resolveFrameRecord(store, document, model, frame)
	if err != nil {
		return fmt.Sprintf("Frame '%s' not found in index", frame), nil
	}
	if record.AttachedTo == "" {
		return fmt.Sprintf("Attachment of frame '%s' could not be resolved. Use `chassis_errors` on %s for details.",
			frame, record.DocPath), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Frame **%s** is attached to body **%s**.\n\n", frame, record.AttachedTo))
	sb.WriteString(fmt.Sprintf("- Document: %s\n", record.DocPath))
	sb.WriteString(fmt.Sprintf("- Model: %s\n", record.Model))
	sb.WriteString(fmt.Sprintf("- Kind: %s\n", record.Kind))
	if record.RelativeTo != "" {
		sb.WriteString(fmt.Sprintf("- Pose relative to: %s\n", record.RelativeTo))
	}

	return sb.String(), nil
}

func handleErrors(store StorageBackend, document string) (string, error) {
	ctx := context.Background()

	var sb strings.Builder
	sb.WriteString("## Diagnostics Report\n\n")

	if document != "" {
		doc, err := store.GetDocument(ctx, document)
		if err != nil {
			return "", err
		}
		if doc == nil {
			return fmt.Sprintf("Document '%s' not found in index", document), nil
		}
		writeDocumentErrors(&sb, doc)
		return sb.String(), nil
	}

	docs, err := store.ListDocuments(ctx)
	if err != nil {
		return "", err
	}

	clean := 0
	for _, doc := range docs {
		if len(doc.Errors) == 0 {
			clean++
			continue
		}
		writeDocumentErrors(&sb, doc)
	}
	if clean == len(docs) {
		sb.WriteString("✅ **No diagnostics recorded.**\n\n")
		sb.WriteString(fmt.Sprintf("All %d document(s) loaded and resolved cleanly.\n", len(docs)))
	}

	return sb.String(), nil
}

func writeDocumentErrors(sb *strings.Builder, doc *storage.DocumentRecord) {
	if len(doc.Errors) == 0 {
		sb.WriteString(fmt.Sprintf("✅ **%s** has no recorded diagnostics.\n", doc.Path))
		return
	}

	sb.WriteString(fmt.Sprintf("⚠️ **%s** (%d diagnostic(s))\n\n", doc.Path, len(doc.Errors)))
	for _, e := range doc.Errors {
		sb.WriteString(fmt.Sprintf("- [%s] %s\n", e.Code, e.Message))
	}
	sb.WriteString("\n")
}

// Resource Handlers

func getOverview(store StorageBackend) string {
	var sb strings.Builder
	sb.WriteString("# Chassis Index Overview\n\n")
	sb.WriteString(fmt.Sprintf("**Documents:** %d\n", store.DocumentCount()))
	sb.WriteString(fmt.Sprintf("**Frames:** %d\n", store.FrameCount()))
	sb.WriteString("\n## Frame Kinds\n\n")
	sb.WriteString("- model: the implicit frame of each model\n")
	sb.WriteString("- link: rigid bodies\n")
	sb.WriteString("- joint: connections between a parent and a child link\n")
	sb.WriteString("- frame: explicitly declared frames\n")
	sb.WriteString("\n## Stored Per Frame\n\n")
	sb.WriteString("- attached_to: the physical body the frame sits on\n")
	sb.WriteString("- relative_to: the frame the raw pose is expressed in\n")
	sb.WriteString("- pose_in_model: the pose resolved into the model frame\n")

	return sb.String()
}

func getSemantics() string {
	var sb strings.Builder
	sb.WriteString("# Frame Semantics Reference\n\n")
	sb.WriteString("## Frame Kinds\n\n")
	sb.WriteString("| Kind | Source | Default attachment |\n")
	sb.WriteString("|------|--------|--------------------|\n")
	sb.WriteString("| `model` | implicit frame of every model | canonical link |\n")
	sb.WriteString("| `link` | link elements | itself |\n")
	sb.WriteString("| `joint` | joint elements | child link |\n")
	sb.WriteString("| `frame` | explicit frame elements | attached_to, or the model frame |\n")
	sb.WriteString("\n## Pose References\n\n")
	sb.WriteString("| Element | Default relative_to |\n")
	sb.WriteString("|---------|---------------------|\n")
	sb.WriteString("| `link` | the model frame |\n")
	sb.WriteString("| `joint` | the child link |\n")
	sb.WriteString("| `frame` | its attached_to frame |\n")
	sb.WriteString("| nested `model` | the parent model frame |\n")
	sb.WriteString("\nAttachment chains terminate at a link or at the model frame, which\n")
	sb.WriteString("stands for its canonical link. Pose references form a tree rooted at\n")
	sb.WriteString("the model frame; a frame's pose in the model is the composition of\n")
	sb.WriteString("raw poses along that tree.\n")

	return sb.String()
}

func getDiagnostics(store StorageBackend) string {
	ctx := context.Background()

	docs, err := store.ListDocuments(ctx)
	if err != nil {
		return "Error reading index: " + err.Error()
	}

	var sb strings.Builder
	sb.WriteString("# Diagnostics Report\n\n")

	flagged := 0
	for _, doc := range docs {
		if len(doc.Errors) == 0 {
			continue
		}
		flagged++
		sb.WriteString(fmt.Sprintf("## %s (%d)\n\n", doc.Path, len(doc.Errors)))
		for _, e := range doc.Errors {
			sb.WriteString(fmt.Sprintf("- [%s] %s\n", e.Code, e.Message))
		}
		sb.WriteString("\n")
	}
	if flagged == 0 {
		sb.WriteString("No diagnostics recorded across the index.\n")
	}

	return sb.String()
}

// Helper functions

func errorResponse(id any, code int, message string) map[string]any {
	return map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"error": map[string]any{
			"code":    code,
			"message": message,
		},
	}
}

// registerTools registers tools with the MCP server.
func (s *Server) registerTools() {
	// Tools are handled via ListTools and CallTool
}

// registerResources registers resources with the MCP server.
func (s *Server) registerResources() {
	// Resources are handled via ListResources and ReadResource
}
