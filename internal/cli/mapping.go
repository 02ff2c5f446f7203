package cli

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/shaiso/lccs/internal/render"
)

func mappingCommands(serviceFn ServiceFunc, outputFn OutputFunc, fs afero.Fs) []*cobra.Command {
	return []*cobra.Command{
		newAvailableMappingsCmd(serviceFn, outputFn),
		newMappingsCmd(serviceFn, outputFn),
		newAddMappingCmd(serviceFn, outputFn, fs),
		newDeleteMappingCmd(serviceFn, outputFn),
	}
}

func newAvailableMappingsCmd(serviceFn ServiceFunc, outputFn OutputFunc) *cobra.Command {
	var system string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "available-mappings",
		Short: "List the systems a classification system is mapped to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := serviceFn(cmd.Context())
			if err != nil {
				return err
			}
			out := outputFn()
			out.SetVerbose(verbose)

			out.Begin(svc.URL(), "Retrieving the list of available mappings for a given classification system")
			targets, err := svc.AvailableMappings(cmd.Context(), system)
			if err != nil {
				return err
			}
			err = out.List(targets, func(r *render.Renderer, w io.Writer) error {
				return r.List(w, "Mappings of "+system, targets)
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

func newMappingsCmd(serviceFn ServiceFunc, outputFn OutputFunc) *cobra.Command {
	var source, target string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "mappings",
		Short: "Show the mapping between two classification systems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := serviceFn(cmd.Context())
			if err != nil {
				return err
			}
			out := outputFn()
			out.SetVerbose(verbose)

			out.Begin(svc.URL(), "Retrieving the mapping")
			group, err := svc.Mappings(cmd.Context(), source, target)
			if err != nil {
				return err
			}
			err = out.Entity(group, func(r *render.Renderer, w io.Writer) error {
				return r.MappingGroup(w, group)
			})
			if err != nil {
				return err
			}
			out.Finish()
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "system-source", "", "The source classification system (name or id)")
	cmd.Flags().StringVar(&target, "system-target", "", "The target classification system (name or id)")
	markRequired(cmd, "system-source", "system-target")
	addVerbose(cmd, &verbose)
	return cmd
}

func newAddMappingCmd(serviceFn ServiceFunc, outputFn OutputFunc, fs afero.Fs) *cobra.Command {
	var source, target, path string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "add-mapping",
		Short: "Add a mapping between classification systems from a JSON file",
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

			out.Begin(svc.URL(), "Adding new mapping")
			if _, err := svc.AddMapping(cmd.Context(), source, target, path); err != nil {
				return err
			}
			if err := out.Message(fmt.Sprintf("Added Mapping between %s and %s", source, target)); err != nil {
				return err
			}
			out.Finish()
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "system_name_source", "", "The source classification system name")
	cmd.Flags().StringVar(&target, "system_name_target", "", "The target classification system name")
	cmd.Flags().StringVar(&path, "mappings_path", "", "JSON file with the mapping")
	markRequired(cmd, "system_name_source", "system_name_target", "mappings_path")
	addVerbose(cmd, &verbose)
	return cmd
}

func newDeleteMappingCmd(serviceFn ServiceFunc, outputFn OutputFunc) *cobra.Command {
	var source, target string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "delete-mapping",
		Short: "Delete the mapping between two classification systems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := serviceFn(cmd.Context())
			if err != nil {
				return err
			}
			out := outputFn()
			out.SetVerbose(verbose)

			out.Begin(svc.URL(), "Deleting the mapping")
			if err := svc.DeleteMapping(cmd.Context(), source, target); err != nil {
				return err
			}
			if err := out.Message(fmt.Sprintf("Mapping between %s and %s deleted!", source, target)); err != nil {
				return err
			}
			out.Finish()
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "system_name_source", "", "The source classification system name")
	cmd.Flags().StringVar(&target, "system_name_target", "", "The target classification system name")
	markRequired(cmd, "system_name_source", "system_name_target")
	addVerbose(cmd, &verbose)
	return cmd
}
