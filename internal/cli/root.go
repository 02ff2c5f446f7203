package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/shaiso/lccs/internal/render"
	"github.com/shaiso/lccs/internal/telemetry"
	"github.com/shaiso/lccs/pkg/lccs"
	"github.com/shaiso/lccs/pkg/schema"
	"github.com/shaiso/lccs/pkg/transport"
)

// Переменные окружения и значения по умолчанию для корневых флагов.
const (
	EnvURL         = "LCCS_URL"
	EnvAccessToken = "LCCS_ACCESS_TOKEN"
	DefaultURL     = "http://127.0.0.1:5000/"
)

// ServiceFunc лениво создаёт Service после парсинга флагов.
type ServiceFunc func(ctx context.Context) (*lccs.Service, error)

// OutputFunc создаёт Output после парсинга флагов.
type OutputFunc func() *Output

// NewRootCmd создаёт корневую команду lccs со всеми подкомандами.
// fs используется для чтения входных файлов и записи стилей.
func NewRootCmd(version string, fs afero.Fs) *cobra.Command {
	var (
		serverURL   string
		accessToken string
		format      = formatFlag(FormatText)
		validate    bool
		dumpMetrics bool

		service  *lccs.Service
		renderer *render.Renderer
	)

	if fs == nil {
		fs = afero.NewOsFs()
	}
	reg := prometheus.NewRegistry()

	root := &cobra.Command{
		Use:           "lccs",
		Short:         "LCCS-WS client on command line",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if format == FormatHTML && renderer == nil {
				r, err := render.New()
				if err != nil {
					return err
				}
				renderer = r
			}

			logger := telemetry.SetupLogger(cmd.ErrOrStderr())
			cmd.SetContext(telemetry.WithLogger(cmd.Context(), logger))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if !dumpMetrics {
				return nil
			}
			return telemetry.WriteMetrics(cmd.ErrOrStderr(), reg, telemetry.ClientMetricsPrefix)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&serverURL, "url", envOr(EnvURL, DefaultURL), "The LCCS server address (an URL)")
	flags.StringVar(&accessToken, "access-token", os.Getenv(EnvAccessToken), "Personal access token sent with every request")
	flags.Var(&format, "output", "Output format: "+strings.Join(Formats, ", "))
	flags.BoolVar(&validate, "validate", false, "Validate server responses against JSON schemas")
	flags.BoolVar(&dumpMetrics, "metrics", false, "Print client metrics to stderr on exit")

	serviceFn := func(ctx context.Context) (*lccs.Service, error) {
		if service != nil {
			return service, nil
		}

		opts := []lccs.Option{
			lccs.WithAccessToken(accessToken),
			lccs.WithFs(fs),
			lccs.WithLogger(telemetry.FromContext(ctx)),
			lccs.WithTransportOptions(
				transport.WithRegisterer(reg),
				transport.WithUserAgent("lccs-cli/"+version),
			),
		}
		if validate {
			v, err := schema.NewValidator()
			if err != nil {
				return nil, err
			}
			opts = append(opts, lccs.WithValidation(v))
		}

		s, err := lccs.New(serverURL, opts...)
		if err != nil {
			return nil, err
		}
		service = s
		return service, nil
	}

	outputFn := func() *Output {
		return NewOutput(string(format), root.OutOrStdout(), root.ErrOrStderr(), renderer)
	}

	root.AddCommand(systemCommands(serviceFn, outputFn, fs)...)
	root.AddCommand(classCommands(serviceFn, outputFn, fs)...)
	root.AddCommand(mappingCommands(serviceFn, outputFn, fs)...)
	root.AddCommand(styleCommands(serviceFn, outputFn, fs)...)

	return root
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// requireFile проверяет, что входной файл существует.
func requireFile(fs afero.Fs, path string) error {
	ok, err := afero.Exists(fs, path)
	if err != nil {
		return fmt.Errorf("check %s: %w", path, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	return nil
}

// addVerbose добавляет -v/--verbose к команде.
func addVerbose(cmd *cobra.Command, verbose *bool) {
	cmd.Flags().BoolVarP(verbose, "verbose", "v", false, "Print server address and progress")
}

// markRequired помечает флаги обязательными.
func markRequired(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		_ = cmd.MarkFlagRequired(name)
	}
}
