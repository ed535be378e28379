package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formalist/pkg/element"
	"github.com/goliatone/go-formalist/pkg/form"
	"github.com/goliatone/go-formalist/pkg/loader"
	"github.com/goliatone/go-formalist/pkg/validation"
)

type buildOptions struct {
	dir        string
	formID     string
	inputPath  string
	errorsPath string
	schemaPath string
	depsPath   string
}

func newBuildCmd(root *rootOptions) *cobra.Command {
	opts := &buildOptions{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Print the AST of a declared form as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, root, opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.dir, "dir", ".", "directory containing form documents")
	flags.StringVar(&opts.formID, "form", "", "id of the form to build")
	flags.StringVar(&opts.inputPath, "input", "", "JSON file with the input data")
	flags.StringVar(&opts.errorsPath, "errors", "", "JSON file with the errors map")
	flags.StringVar(&opts.schemaPath, "schema", "", "JSON or YAML schema supplying rules and errors")
	flags.StringVar(&opts.depsPath, "deps", "", "JSON file with dependency values")
	_ = cmd.MarkFlagRequired("form")
	return cmd
}

func runBuild(cmd *cobra.Command, root *rootOptions, opts *buildOptions) error {
	logger := root.logger.With().Str("form", opts.formID).Logger()

	store, err := loader.LoadFS(os.DirFS(opts.dir), nil, form.WithLogger(logger))
	if err != nil {
		return err
	}
	f, ok := store.Form(opts.formID)
	if !ok {
		return fmt.Errorf("formalist: unknown form %q in %s", opts.formID, opts.dir)
	}

	input, err := readJSONMap(opts.inputPath, "input")
	if err != nil {
		return err
	}
	errs, err := readJSONMap(opts.errorsPath, "errors")
	if err != nil {
		return err
	}
	deps, err := readJSONMap(opts.depsPath, "deps")
	if err != nil {
		return err
	}

	instanceOpts := []form.InstanceOption{form.WithDependencies(element.Deps(deps))}
	if opts.schemaPath != "" {
		raw, err := os.ReadFile(opts.schemaPath)
		if err != nil {
			return fmt.Errorf("formalist: read schema: %w", err)
		}
		schema, err := validation.Parse(raw)
		if err != nil {
			return err
		}
		instanceOpts = append(instanceOpts, form.WithRules(schema))
		if opts.errorsPath == "" {
			if errs, err = schema.Validate(input); err != nil {
				return err
			}
			logger.Debug().Int("fields", len(errs)).Msg("input validated")
		}
	}

	res, err := f.New(instanceOpts...).Build(input, errs)
	if err != nil {
		return err
	}

	payload, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("formalist: encode ast: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(payload))
	return err
}

func readJSONMap(path, what string) (map[string]any, error) {
	out := map[string]any{}
	if path == "" {
		return out, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("formalist: read %s: %w", what, err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("formalist: decode %s: %w", what, err)
	}
	return out, nil
}
