package cli

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/shaiso/lccs/internal/render"
	"github.com/shaiso/lccs/pkg/domain"
)

func styleCommands(serviceFn ServiceFunc, outputFn OutputFunc, fs afero.Fs) []*cobra.Command {
	return []*cobra.Command{
		newStyleFormatsCmd(serviceFn, outputFn),
		newStylesCmd(serviceFn, outputFn),
		newStyleFileCmd(serviceFn, outputFn),
		newAddStyleCmd(serviceFn, outputFn, fs),
		newAddStyleFormatCmd(serviceFn, outputFn),
		newDeleteStyleCmd(serviceFn, outputFn),
		newDeleteStyleFormatCmd(serviceFn, outputFn),
	}
}

func newStyleFormatsCmd(serviceFn ServiceFunc, outputFn OutputFunc) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "style-formats",
		Short: "List the style formats available in the service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := serviceFn(cmd.Context())
			if err != nil {
				return err
			}
			out := outputFn()
			out.SetVerbose(verbose)

			out.Begin(svc.URL(), "Retrieving the list of available style formats")
			formats, err := svc.StyleFormats(cmd.Context())
			if err != nil {
				return err
			}
			names := make([]string, 0, len(formats))
			for _, f := range formats {
				names = append(names, f.Name())
			}
			err = out.List(names, func(r *render.Renderer, w io.Writer) error {
				return r.List(w, "Style formats", names)
			})
			if err != nil {
				return err
			}
			out.Finish()
			return nil
		},
	}

	addVerbose(cmd, &verbose)
	return cmd
}

func newStylesCmd(serviceFn ServiceFunc, outputFn OutputFunc) *cobra.Command {
	var system string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "styles",
		Short: "List the style formats a classification system has styles for",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := serviceFn(cmd.Context())
			if err != nil {
				return err
			}
			out := outputFn()
			out.SetVerbose(verbose)

			out.Begin(svc.URL(), "Retrieving the list of styles of the classification system")
			formats, err := svc.Styles(cmd.Context(), system)
			if err != nil {
				return err
			}
			err = out.List(formats, func(r *render.Renderer, w io.Writer) error {
				return r.List(w, "Styles of "+system, formats)
			})
			if err != nil {
				return err
			}
			out.Finish()
			return nil
		},
	}

	cmd.Flags().StringVar(&system, "system_name", "", "The classification system name")
	markRequired(cmd, "system_name")
	addVerbose(cmd, &verbose)
	return cmd
}

func newStyleFileCmd(serviceFn ServiceFunc, outputFn OutputFunc) *cobra.Command {
	var system, format, path string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "style-file",
		Short: "Download the style of a classification system in a style format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := serviceFn(cmd.Context())
			if err != nil {
				return err
			}
			out := outputFn()
			out.SetVerbose(verbose)

			out.Begin(svc.URL(), "Retrieving the style file")
			saved, err := svc.StyleFile(cmd.Context(), system, format, path)
			if err != nil {
				return err
			}
			if err := out.Message(fmt.Sprintf("Style file saved in %s", saved)); err != nil {
				return err
			}
			out.Finish()
			return nil
		},
	}

	cmd.Flags().StringVar(&system, "system_name", "", "The classification system name")
	cmd.Flags().StringVar(&format, "style_format_name", "", "The style format name")
	cmd.Flags().StringVarP(&path, "output-file", "o", "", "File or directory to save the style to")
	markRequired(cmd, "system_name", "style_format_name")
	addVerbose(cmd, &verbose)
	return cmd
}

func newAddStyleCmd(serviceFn ServiceFunc, outputFn OutputFunc, fs afero.Fs) *cobra.Command {
	var req domain.NewStyle
	var verbose bool

	cmd := &cobra.Command{
		Use:   "add-style",
		Short: "Upload a style file for a classification system",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFile(fs, req.Path); err != nil {
				return err
			}
			svc, err := serviceFn(cmd.Context())
			if err != nil {
				return err
			}
			out := outputFn()
			out.SetVerbose(verbose)

			out.Begin(svc.URL(), "Adding new classification system style")
			if _, err := svc.AddStyle(cmd.Context(), req); err != nil {
				return err
			}
			if err := out.Message(fmt.Sprintf("Added style %s for %s", req.Format, req.System)); err != nil {
				return err
			}
			out.Finish()
			return nil
		},
	}

	cmd.Flags().StringVar(&req.System, "system_name", "", "The classification system name")
	cmd.Flags().StringVar(&req.Format, "style_format_name", "", "The style format name")
	cmd.Flags().StringVar(&req.Path, "style_path", "", "The style file path")
	cmd.Flags().StringVar(&req.Extension, "extension", "", "File extension on the server (default: from style_path)")
	markRequired(cmd, "system_name", "style_format_name", "style_path")
	addVerbose(cmd, &verbose)
	return cmd
}

func newAddStyleFormatCmd(serviceFn ServiceFunc, outputFn OutputFunc) *cobra.Command {
	var name string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "add-style-format",
		Short: "Add a style format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := serviceFn(cmd.Context())
			if err != nil {
				return err
			}
			out := outputFn()
			out.SetVerbose(verbose)

			out.Begin(svc.URL(), "Adding new style format")
			f, err := svc.AddStyleFormat(cmd.Context(), name)
			if err != nil {
				return err
			}
			if err := out.Message(fmt.Sprintf("Added style format %s!", f.Name())); err != nil {
				return err
			}
			out.Finish()
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "style_format_name", "", "The style format name")
	markRequired(cmd, "style_format_name")
	addVerbose(cmd, &verbose)
	return cmd
}

func newDeleteStyleCmd(serviceFn ServiceFunc, outputFn OutputFunc) *cobra.Command {
	var system, format string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "delete-style",
		Short: "Delete the style of a classification system",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := serviceFn(cmd.Context())
			if err != nil {
				return err
			}
			out := outputFn()
			out.SetVerbose(verbose)

			out.Begin(svc.URL(), "Deleting the style")
			if err := svc.DeleteStyle(cmd.Context(), system, format); err != nil {
				return err
			}
			if err := out.Message(fmt.Sprintf("Deleted style %s of classification system %s", format, system)); err != nil {
				return err
			}
			out.Finish()
			return nil
		},
	}

	cmd.Flags().StringVar(&system, "system_name", "", "The classification system name")
	cmd.Flags().StringVar(&format, "style_format_name", "", "The style format name")
	markRequired(cmd, "system_name", "style_format_name")
	addVerbose(cmd, &verbose)
	return cmd
}

func newDeleteStyleFormatCmd(serviceFn ServiceFunc, outputFn OutputFunc) *cobra.Command {
	var name string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "delete-style-format",
		Short: "Delete a style format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := serviceFn(cmd.Context())
			if err != nil {
				return err
			}
			out := outputFn()
			out.SetVerbose(verbose)

			out.Begin(svc.URL(), "Deleting the style format")
			if err := svc.DeleteStyleFormat(cmd.Context(), name); err != nil {
				return err
			}
			if err := out.Message(fmt.Sprintf("Deleted style format %s", name)); err != nil {
				return err
			}
			out.Finish()
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "style_format_name", "", "The style format name")
	markRequired(cmd, "style_format_name")
	addVerbose(cmd, &verbose)
	return cmd
}
