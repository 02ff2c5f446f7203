package cli

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/shaiso/lccs/internal/render"
	"github.com/shaiso/lccs/pkg/domain"
)

func systemCommands(serviceFn ServiceFunc, outputFn OutputFunc, fs afero.Fs) []*cobra.Command {
	return []*cobra.Command{
		newClassificationSystemsCmd(serviceFn, outputFn),
		newSystemDescriptionCmd(serviceFn, outputFn),
		newAddSystemCmd(serviceFn, outputFn, fs),
		newDeleteSystemCmd(serviceFn, outputFn),
	}
}

func newClassificationSystemsCmd(serviceFn ServiceFunc, outputFn OutputFunc) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "classification-systems",
		Short: "List the classification systems available in the service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := serviceFn(cmd.Context())
			if err != nil {
				return err
			}
			out := outputFn()
			out.SetVerbose(verbose)

			out.Begin(svc.URL(), "Retrieving the list of available classification systems")
			names, err := svc.ClassificationSystems(cmd.Context())
			if err != nil {
				return err
			}
			err = out.List(names, func(r *render.Renderer, w io.Writer) error {
				return r.Service(w, svc.URL(), names)
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

func newSystemDescriptionCmd(serviceFn ServiceFunc, outputFn OutputFunc) *cobra.Command {
	var system string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "classification-system-description",
		Short: "Show the metadata of a classification system",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := serviceFn(cmd.Context())
			if err != nil {
				return err
			}
			out := outputFn()
			out.SetVerbose(verbose)

			out.Begin(svc.URL(), "Retrieving the classification system metadata")
			cs, err := svc.ClassificationSystem(cmd.Context(), system)
			if err != nil {
				return err
			}
			err = out.Entity(cs, func(r *render.Renderer, w io.Writer) error {
				return r.ClassificationSystem(w, cs)
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

func newAddSystemCmd(serviceFn ServiceFunc, outputFn OutputFunc, fs afero.Fs) *cobra.Command {
	var req domain.NewClassificationSystem
	var verbose bool

	cmd := &cobra.Command{
		Use:   "add-classification-system",
		Short: "Add a new classification system",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.ClassesPath != "" {
				if err := requireFile(fs, req.ClassesPath); err != nil {
					return err
				}
			}
			svc, err := serviceFn(cmd.Context())
			if err != nil {
				return err
			}
			out := outputFn()
			out.SetVerbose(verbose)

			out.Begin(svc.URL(), "Adding new classification system")
			cs, err := svc.AddClassificationSystem(cmd.Context(), req)
			if err != nil {
				return err
			}
			if err := out.Message(fmt.Sprintf("Classification System %s added!", cs.Name())); err != nil {
				return err
			}
			out.Finish()
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "The classification system name")
	cmd.Flags().StringVar(&req.AuthorityName, "authority_name", "", "The classification system authority name")
	cmd.Flags().StringVar(&req.Description, "description", "", "The classification system description")
	cmd.Flags().StringVar(&req.Version, "version", "", "The classification system version")
	cmd.Flags().StringVar(&req.ClassesPath, "classes_path", "", "JSON file with the classes of the system")
	markRequired(cmd, "name", "authority_name", "description", "version")
	addVerbose(cmd, &verbose)
	return cmd
}

func newDeleteSystemCmd(serviceFn ServiceFunc, outputFn OutputFunc) *cobra.Command {
	var system string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "delete-classification-system",
		Short: "Delete a classification system",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := serviceFn(cmd.Context())
			if err != nil {
				return err
			}
			out := outputFn()
			out.SetVerbose(verbose)

			out.Begin(svc.URL(), "Deleting the classification system")
			if err := svc.DeleteClassificationSystem(cmd.Context(), system); err != nil {
				return err
			}
			if err := out.Message(fmt.Sprintf("Deleted classification system: %s", system)); err != nil {
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
