package main

import (
	"context"

	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rhfw/rhfw/internal/codegen"
)

// GenerateOptions defines the options of the generate command.
type GenerateOptions struct {
	// Registry is the path to the enum registry yaml.
	Registry string
	// Out is the path of the generated go file.
	Out string
	// Package overrides the package name declared in the registry.
	// +optional
	Package string

	fs vfs.FileSystem
}

func NewGenerateCommand(ctx context.Context) *cobra.Command {
	opts := &GenerateOptions{}
	cmd := &cobra.Command{
		Use:          "generate",
		Short:        "renders the enum registry into go source",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Complete(); err != nil {
				return err
			}
			return opts.Run(ctx)
		},
	}
	opts.AddFlags(cmd.Flags())
	return cmd
}

// AddFlags adds flags for the options to a flagset
func (o *GenerateOptions) AddFlags(fs *pflag.FlagSet) {
	if fs == nil {
		fs = pflag.CommandLine
	}
	fs.StringVar(&o.Registry, "registry", "enums.yaml", "path to the enum registry")
	fs.StringVar(&o.Out, "out", "zz_generated_enums.go", "path of the generated file")
	fs.StringVar(&o.Package, "package", "", "package name of the generated file. Defaults to the registry's package.")
}

func (o *GenerateOptions) Complete() error {
	if o.fs == nil {
		o.fs = osfs.New()
	}
	return o.Validate()
}

func (o *GenerateOptions) Validate() error {
	if len(o.Registry) == 0 {
		return errors.New("--registry has to be defined")
	}
	if len(o.Out) == 0 {
		return errors.New("--out has to be defined")
	}
	return nil
}

func (o *GenerateOptions) Run(ctx context.Context) error {
	reg, err := codegen.Load(o.fs, o.Registry)
	if err != nil {
		return err
	}
	if len(o.Package) != 0 {
		reg.Package = o.Package
	}
	src, err := codegen.Generate(reg)
	if err != nil {
		return err
	}
	if err := vfs.WriteFile(o.fs, o.Out, src, 0o644); err != nil {
		return errors.Wrapf(err, "unable to write %s", o.Out)
	}
	return nil
}
