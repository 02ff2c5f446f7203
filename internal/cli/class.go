package cli

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/shaiso/lccs/internal/render"
)

func classCommands(serviceFn ServiceFunc, outputFn OutputFunc, fs afero.Fs) []*cobra.Command {
	return []*cobra.Command{
		newClassesCmd(serviceFn, outputFn),
		newClassDescribeCmd(serviceFn, outputFn),
		newAddClassesCmd(serviceFn, outputFn, fs),
		newDeleteClassCmd(serviceFn, outputFn),
	}
}

func newClassesCmd(serviceFn ServiceFunc, outputFn OutputFunc) *cobra.Command {
	var system string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "classes",
		Short: "List the classes of a classification system",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := serviceFn(cmd.Context())
			if err != nil {
				return err
			}
			out := outputFn()
			out.SetVerbose(verbose)

			out.Begin(svc.URL(), "Retrieving the list of classes for a given classification system")
			classes, err := svc.Classes(cmd.Context(), system)
			if err != nil {
				return err
			}
			err = out.List(classes.Names(), func(r *render.Renderer, w io.Writer) error {
				return r.Classes(w, system, classes)
			})
			if err != nil {
				return err
			}
			out.Finish()
			return nil
		},
	}

	cmd.Flags().StringVar(&system, "system", "", "The classification system (name or id)")
	markRequired(cmd, "system")
	addVerbose(cmd, &verbose)
	return cmd
}

func newClassDescribeCmd(serviceFn ServiceFunc, outputFn OutputFunc) *cobra.Command {
	var system, class string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "class-describe",
		Short: "Show the metadata of a class",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := serviceFn(cmd.Context())
			if err != nil {
				return err
			}
			out := outputFn()
			out.SetVerbose(verbose)

			out.Begin(svc.URL(), "Retrieving the class metadata")
			c, err := svc.Class(cmd.Context(), system, class)
			if err != nil {
				return err
			}
			err = out.Entity(c, func(r *render.Renderer, w io.Writer) error {
				return r.Class(w, c)
			})
			if err != nil {
				return err
			}
			out.Finish()
			return nil
		},
	}

	cmd.Flags().StringVar(&system, "system", "", "The classification system (name or id)")
	cmd.Flags().StringVar(&class, "system_class", "", "The class name or id")
	markRequired(cmd, "system", "system_class")
	addVerbose(cmd, &verbose)
	return cmd
}

func newAddClassesCmd(serviceFn ServiceFunc, outputFn OutputFunc, fs afero.Fs) *cobra.Command {
	var system, path string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "add-classes",
		Short: "Add classes to a classification system from a JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFile(fs, path); err != nil {
				return err
			}
			svc, err := serviceFn(cmd.Context())
			if err != nil {
				return err
			}
			out := outputFn()
			out.SetVerbose(verbose)

			out.Begin(svc.URL(), "Adding new classes")
			if _, err := svc.AddClasses(cmd.Context(), system, path); err != nil {
				return err
			}
			if err := out.Message(fmt.Sprintf("Added classes for %s", system)); err != nil {
				return err
			}
			out.Finish()
			return nil
		},
	}

	cmd.Flags().StringVar(&system, "system_name", "", "The classification system name")
	cmd.Flags().StringVar(&path, "classes_path", "", "JSON file with the classes")
	markRequired(cmd, "system_name", "classes_path")
	addVerbose(cmd, &verbose)
	return cmd
}

func newDeleteClassCmd(serviceFn ServiceFunc, outputFn OutputFunc) *cobra.Command {
	var system, class string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "delete-class",
		Short: "Delete a class of a classification system",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := serviceFn(cmd.Context())
			if err != nil {
				return err
			}
			out := outputFn()
			out.SetVerbose(verbose)

			out.Begin(svc.URL(), "Deleting class")
			if err := svc.DeleteClass(cmd.Context(), system, class); err != nil {
				return err
			}
			if err := out.Message(fmt.Sprintf("Deleted class %s of classification system %s", class, system)); err != nil {
				return err
			}
			out.Finish()
			return nil
		},
	}

	cmd.Flags().StringVar(&system, "system_name", "", "The classification system name")
	cmd.Flags().StringVar(&class, "class_name", "", "The class name")
	markRequired(cmd, "system_name", "class_name")
	addVerbose(cmd, &verbose)
	return cmd
}
