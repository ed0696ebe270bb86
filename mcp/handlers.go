package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/simtree-go/simtree/internal/config"
	"github.com/simtree-go/simtree/internal/detector"
	"github.com/simtree-go/simtree/internal/extract"
	"github.com/simtree-go/simtree/service"
)

// HandleDetectDuplicates runs duplicate detection over a single path and
// returns the resulting groups as JSON.
func HandleDetectDuplicates(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path)), nil
	}

	cfg := config.Default()
	cfg.Input.Paths = []string{path}
	cfg.Input.Recursive = true

	if th, ok := args["threshold"].(float64); ok {
		cfg.Analysis.Threshold = th
	}
	if ml, ok := args["min_lines"].(float64); ok {
		cfg.Analysis.MinLines = int(ml)
	}
	if rec, ok := args["recursive"].(bool); ok {
		cfg.Input.Recursive = rec
	}

	fileReader := service.NewFileReader()
	files, err := fileReader.CollectFiles(cfg.Input.Paths, cfg.Input.Recursive, cfg.Input.Extensions, nil, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to collect files: %v", err)), nil
	}
	if len(files) == 0 {
		return mcp.NewToolResultText(`{"groups":[]}`), nil
	}

	opts, err := cfg.DetectorOptions()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid options: %v", err)), nil
	}

	svc := service.NewDuplicateService(extract.NewPythonExtractor(), false)
	report, err := svc.Run(ctx, files, opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("duplicate detection failed: %v", err)), nil
	}

	payload := duplicateGroupsJSON(report.Groups)
	data, err := json.Marshal(payload)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to serialize result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

type groupJSON struct {
	Representative string  `json:"representative"`
	TotalImpact    float64 `json:"totalImpact"`
	Duplicates     []struct {
		Method     string  `json:"method"`
		Similarity float64 `json:"similarity"`
		CloneType  string  `json:"cloneType"`
	} `json:"duplicates"`
}

func duplicateGroupsJSON(groups []*detector.Group) map[string]interface{} {
	out := make([]groupJSON, 0, len(groups))
	for _, g := range groups {
		gj := groupJSON{Representative: g.Representative.FullName, TotalImpact: g.TotalImpact}
		for _, e := range g.Entries {
			gj.Duplicates = append(gj.Duplicates, struct {
				Method     string  `json:"method"`
				Similarity float64 `json:"similarity"`
				CloneType  string  `json:"cloneType"`
			}{
				Method:     e.Method.FullName,
				Similarity: e.Similarity,
				CloneType:  detector.ClassifyCloneType(e.Similarity).String(),
			})
		}
		out = append(out, gj)
	}
	return map[string]interface{}{"groups": out}
}
