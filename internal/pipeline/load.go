package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/framegraphgo/internal/ctxlog"
	"github.com/vk/framegraphgo/internal/fsutil"
	"github.com/zclconf/go-cty/cty"
)

// Load parses a pipeline description from a single .hcl file or,
// recursively, from every .hcl file under a directory, and merges the
// results into one Model.
func Load(ctx context.Context, path string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("pipeline path: %w", err)
	}

	paths := []string{path}
	if info.IsDir() {
		paths, err = findPipelineFiles(path)
		if err != nil {
			return nil, err
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no .hcl pipeline files found under %q", path)
	}
	logger.Debug("Loading pipeline files.", "files", paths)

	model := &Model{Variables: make(map[string]cty.Value)}
	parser := hclparse.NewParser()
	for _, p := range paths {
		file, diags := parser.ParseHCLFile(p)
		if diags.HasErrors() {
			return nil, fmt.Errorf("parse %s: %w", p, diags)
		}
		if err := mergeFile(ctx, model, file.Body, p); err != nil {
			return nil, err
		}
	}

	logger.Info("Pipeline loaded.",
		"textures", len(model.Textures),
		"buffers", len(model.Buffers),
		"externals", len(model.Externals),
		"passes", len(model.Passes),
		"extracts", len(model.Extracts))
	return model, nil
}

func findPipelineFiles(root string) ([]string, error) {
	return fsutil.FindFilesByExtension(root, ".hcl")
}

// mergeFile decodes one file's blocks into the model. Variables are
// evaluated first (statically) so the remaining attribute expressions can
// reference them as `var.<name>`.
func mergeFile(ctx context.Context, model *Model, body hcl.Body, path string) error {
	logger := ctxlog.FromContext(ctx)

	if err := collectVariables(model, body, path); err != nil {
		return err
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"var": cty.ObjectVal(model.Variables),
		},
	}

	var cfg fileConfig
	if diags := gohcl.DecodeBody(body, evalCtx, &cfg); diags.HasErrors() {
		return fmt.Errorf("decode %s: %w", path, diags)
	}

	for _, t := range cfg.Textures {
		model.Textures = append(model.Textures, &Texture{
			Name: t.Name, Width: t.Width, Height: t.Height, Format: t.Format, Usage: t.Usage,
		})
	}
	for _, b := range cfg.Buffers {
		model.Buffers = append(model.Buffers, &Buffer{
			Name: b.Name, ElementSize: b.ElementSize, ElementCount: b.ElementCount, Usage: b.Usage,
		})
	}
	for _, e := range cfg.Externals {
		model.Externals = append(model.Externals, &External{
			Name: e.Name, Width: e.Width, Height: e.Height, Format: e.Format, Usage: e.Usage,
		})
	}
	for _, p := range cfg.Passes {
		pass := &Pass{
			Name:    p.Name,
			Scope:   p.Scope,
			Compute: p.Compute,
			Runner:  p.Runner,
			Groups:  p.Groups,
		}
		for _, par := range p.Params {
			pass.Params = append(pass.Params, &ParamSpec{
				Resource: par.Resource,
				Access:   par.Access,
				Binding:  par.Binding,
				Slot:     par.Slot,
			})
		}
		model.Passes = append(model.Passes, pass)
	}
	for _, e := range cfg.Extracts {
		transition := true
		if e.TransitionToRead != nil {
			transition = *e.TransitionToRead
		}
		model.Extracts = append(model.Extracts, &Extract{
			Texture:          e.Texture,
			TransitionToRead: transition,
		})
	}

	logger.Debug("Merged pipeline file.", "file", path, "passes", len(cfg.Passes))
	return nil
}

// variablesSchema extracts only the variables block for the static first
// pass.
var variablesSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{{Type: "variables"}},
}

// collectVariables statically evaluates every attribute of the file's
// variables blocks into the model's variable table. Later files may
// override earlier definitions.
func collectVariables(model *Model, body hcl.Body, path string) error {
	content, _, diags := body.PartialContent(variablesSchema)
	if diags.HasErrors() {
		return fmt.Errorf("scan variables in %s: %w", path, diags)
	}
	for _, block := range content.Blocks {
		attrs, diags := block.Body.JustAttributes()
		if diags.HasErrors() {
			return fmt.Errorf("read variables in %s: %w", path, diags)
		}
		for name, attr := range attrs {
			val, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				return fmt.Errorf("evaluate variable %q in %s: %w", name, path, diags)
			}
			model.Variables[name] = val
		}
	}
	return nil
}
