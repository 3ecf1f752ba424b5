package main

import (
	"fmt"
	"os"

	"github.com/davejbax/linkcore/internal/arch"
	"github.com/davejbax/linkcore/internal/layoutdesc"
	"github.com/davejbax/linkcore/internal/linker"
	"github.com/davejbax/linkcore/internal/object"
	"github.com/davejbax/linkcore/internal/objfile"
	"github.com/spf13/cobra"
)

func newLinkCommand(opts *rootOptions) *cobra.Command {
	var (
		archName    string
		layoutPath  string
		outputPath  string
		partialLink bool
		debug       bool
	)

	cmd := &cobra.Command{
		Use:   "link [objects...]",
		Short: "Merge, lay out, and relocate object files into an image",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			a, err := arch.Lookup(archName)
			if err != nil {
				return err
			}

			layoutFile, err := os.Open(layoutPath)
			if err != nil {
				return fmt.Errorf("failed to open layout description: %w", err)
			}
			defer layoutFile.Close()

			regions, err := layoutdesc.Parse(layoutFile)
			if err != nil {
				return fmt.Errorf("failed to parse layout description: %w", err)
			}

			inputs := make([]*object.Object, len(args))
			for i, path := range args {
				f, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("failed to open input '%s': %w", path, err)
				}

				obj, err := objfile.Read(f)
				f.Close()
				if err != nil {
					return fmt.Errorf("failed to read input '%s': %w", path, err)
				}
				obj.Name = path
				inputs[i] = obj
			}

			reporter := linker.NewSlogReporter(opts.logger)

			result, err := linker.Link(a, inputs, regions, linker.Options{
				PartialLink: partialLink,
				Debug:       debug,
			}, reporter)
			if err != nil {
				return fmt.Errorf("link failed: %w", err)
			}

			out := outputPath
			if out == "" {
				out = opts.config.OutputPath
			}

			outputFile, err := os.OpenFile(out, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
			if err != nil {
				return fmt.Errorf("failed to open output '%s': %w", out, err)
			}
			defer outputFile.Close()

			written, err := objfile.Write(outputFile, result)
			if err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}

			opts.logger.Info("link complete", "output", out, "bytes", written, "state", result.State.String())

			return nil
		},
	}

	cmd.Flags().StringVarP(&archName, "arch", "a", "amd64", "Target architecture")
	cmd.Flags().StringVarP(&layoutPath, "layout", "l", "", "Path to layout description file")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to output object file")
	cmd.Flags().BoolVar(&partialLink, "partial", false, "Leave unresolved relocations for a later link")
	cmd.Flags().BoolVar(&debug, "debug", false, "Carry debug records through the merge")

	cmd.MarkFlagRequired("layout")

	return cmd
}
