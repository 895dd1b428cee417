package main

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"derive-generator/internal/analyze"
	"derive-generator/internal/classify"
	"derive-generator/internal/config"
	"derive-generator/internal/diagnostic"
	"derive-generator/internal/schema"
)

// fieldView is the dump form of a classified field.
type fieldView struct {
	Name      string
	Declared  string
	Optional  bool
	InnerType string
}

// recordView is the dump form of a classified record.
type recordView struct {
	TypeName   string
	PkgPath    string
	SourceFile string
	Derives    []schema.Derive
	Fields     []fieldView
}

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func newInspectCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [packages...]",
		Short: "Dump the classified schemas of the selected types",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOptional(root.configPath)
			if err != nil {
				return err
			}

			an := analyze.NewAnalyzer()

			records, err := loadRecords(cmd.Context(), an, cfg, args)
			if err != nil {
				return err
			}

			diags := an.Diagnostics()

			var views []recordView

			for _, r := range records {
				classified, err := classify.ClassifyRecord(r)
				if err != nil {
					diags.AddError(diagnostic.CodeFor(err), err.Error(), r.TypeName, "")
					continue
				}

				views = append(views, viewOf(&classified))
			}

			dumper.Fdump(cmd.OutOrStdout(), views)
			report(&diags)

			return diags.Err()
		},
	}
}

func viewOf(r *schema.RecordSchema) recordView {
	v := recordView{
		TypeName:   r.TypeName,
		PkgPath:    r.PkgPath,
		SourceFile: r.SourceFile,
		Derives:    r.Derives,
	}

	for _, f := range r.Fields {
		v.Fields = append(v.Fields, fieldView{
			Name:      f.Name,
			Declared:  f.DeclaredType.String(),
			Optional:  f.IsOptional,
			InnerType: f.InnerType.String(),
		})
	}

	return v
}
