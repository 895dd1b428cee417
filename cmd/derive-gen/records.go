package main

import (
	"context"

	"derive-generator/internal/analyze"
	"derive-generator/internal/config"
	"derive-generator/internal/logger"
	"derive-generator/internal/schema"
)

// loadRecords loads every pattern once, selecting the config entries that
// name it, and merges records found through several patterns.
func loadRecords(ctx context.Context, an *analyze.Analyzer, cfg *config.File, patterns []string) ([]schema.RecordSchema, error) {
	all := append([]string{}, patterns...)
	all = append(all, cfg.Packages()...)

	if len(all) == 0 {
		all = []string{"."}
	}

	var (
		out   []schema.RecordSchema
		index = make(map[string]int)
		done  = make(map[string]bool)
	)

	for _, pattern := range all {
		if done[pattern] {
			continue
		}

		done[pattern] = true

		var selected []analyze.Selection
		for _, t := range cfg.TypesIn(pattern) {
			selected = append(selected, analyze.Selection{Name: t.Name, Derives: t.Derives()})
		}

		logger.Debug("loading packages", "pattern", pattern, "selected", len(selected))

		records, err := an.LoadPackages(ctx, []string{pattern}, selected...)
		if err != nil {
			return nil, err
		}

		for _, r := range records {
			key := r.SourceFile + "#" + r.TypeName
			if i, ok := index[key]; ok {
				for _, d := range r.Derives {
					if !out[i].Wants(d) {
						out[i].Derives = append(out[i].Derives, d)
					}
				}

				continue
			}

			index[key] = len(out)
			out = append(out, r)
		}
	}

	return out, nil
}
