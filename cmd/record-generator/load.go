package main

import (
	"fmt"

	"record-generator/internal/analyze"
	"record-generator/internal/diagnostic"
	"record-generator/internal/resolve"
	"record-generator/internal/schema"
)

// loadSchemas reads every input: positional YAML paths plus, when Go
// patterns are given, record structs extracted from those packages.
func loadSchemas(paths, goPatterns, tags []string) ([]*schema.File, error) {
	var files []*schema.File

	for _, path := range paths {
		f, err := schema.LoadFile(path)
		if err != nil {
			return nil, err
		}

		files = append(files, f)
	}

	if len(goPatterns) > 0 {
		extracted, err := analyze.Load(analyze.Config{Patterns: goPatterns, Tags: tags})
		if err != nil {
			return nil, err
		}

		files = append(files, extracted...)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no schema inputs: pass YAML paths or --go patterns")
	}

	return files, nil
}

// resolveFile resolves every record declared in one schema file.
func resolveFile(f *schema.File) ([]*resolve.Model, *diagnostic.Diagnostics) {
	all := &diagnostic.Diagnostics{}

	var models []*resolve.Model

	for _, rec := range f.Records {
		model, diags := resolve.Resolve(rec)
		all.Merge(*diags)

		if model != nil {
			models = append(models, model)
		}
	}

	return models, all
}
