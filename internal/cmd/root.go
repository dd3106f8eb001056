package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wudi/colorkit/cmm"
	"github.com/wudi/colorkit/color"
	"github.com/wudi/colorkit/observability"
	"github.com/wudi/colorkit/scripting"
)

// app carries per-invocation state so every root command has its own config.
type app struct {
	v       *viper.Viper
	cfgFile string
	logger  *slog.Logger
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "colorkit",
		Short: "Convert colors between RGB, hex and CMYK",
		Long: `colorkit builds canonical color records that carry RGB, hex and CMYK at once.

RGB is the pivot: hex and CMYK are derived from it. Device CMYK conversion uses
the standard formulas by default, an ICC profile pair, or a JavaScript routine.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./colorkit.yaml)")
	flags.String("converter", "device", "CMYK converter (device, profile, script)")
	flags.String("rgb-profile", "", "RGB ICC profile for the profile converter")
	flags.String("cmyk-profile", "", "CMYK ICC profile for the profile converter")
	flags.String("intent", "perceptual", "Rendering intent (perceptual, relative, saturation, absolute)")
	flags.String("script", "", "JavaScript file defining convertSampleColor for the script converter")
	flags.Bool("upper", false, "Print hex digits in upper case")
	flags.Bool("json", false, "Print JSON instead of text")
	flags.Bool("verbose", false, "Enable debug logging")

	for _, name := range []string{"converter", "rgb-profile", "cmyk-profile", "intent", "script", "upper", "json", "verbose"} {
		if err := a.v.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", name, err))
		}
	}

	root.AddCommand(
		a.newRGBCmd(),
		a.newHexCmd(),
		a.newCMYKCmd(),
		a.newNameCmd(),
		a.newSwatchesCmd(),
	)
	return root
}

func (a *app) initConfig(cmd *cobra.Command) error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.AddConfigPath(".")
		a.v.SetConfigType("yaml")
		a.v.SetConfigName("colorkit")
	}

	a.v.SetEnvPrefix("COLORKIT")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	a.v.AutomaticEnv()

	err := a.v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case err == nil:
	case a.cfgFile == "" && errors.As(err, &notFound):
	default:
		return fmt.Errorf("reading config: %w", err)
	}

	a.initLogging(cmd)
	if used := a.v.ConfigFileUsed(); used != "" && err == nil {
		a.logger.Debug("Using config file", "path", used)
	}
	return nil
}

func (a *app) initLogging(cmd *cobra.Command) {
	level := slog.LevelWarn
	if a.v.GetBool("verbose") {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// converter builds the configured cmm.Converter.
func (a *app) converter(ctx context.Context) (cmm.Converter, error) {
	switch kind := a.v.GetString("converter"); kind {
	case "", "device":
		return cmm.NewDeviceConverter(), nil
	case "profile":
		rgbPath, cmykPath := a.v.GetString("rgb-profile"), a.v.GetString("cmyk-profile")
		if rgbPath == "" || cmykPath == "" {
			return nil, fmt.Errorf("profile converter needs --rgb-profile and --cmyk-profile")
		}
		rgb, err := cmm.LoadProfile(rgbPath)
		if err != nil {
			return nil, err
		}
		cmyk, err := cmm.LoadProfile(cmykPath)
		if err != nil {
			return nil, err
		}
		intent, err := cmm.ParseIntent(a.v.GetString("intent"))
		if err != nil {
			return nil, err
		}
		return cmm.NewProfileConverter(cmm.NewFactory(), rgb, cmyk, intent)
	case "script":
		path := a.v.GetString("script")
		if path == "" {
			return nil, fmt.Errorf("script converter needs --script")
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading script: %w", err)
		}
		return scripting.NewConverter(ctx, string(src),
			scripting.WithLogger(observability.NewSlogLogger(a.logger).With(observability.String(observability.KeyConverter, path))))
	default:
		return nil, fmt.Errorf("unknown converter %q (want device, profile or script)", kind)
	}
}

func (a *app) engine(ctx context.Context) (*color.Engine, error) {
	conv, err := a.converter(ctx)
	if err != nil {
		return nil, err
	}
	opts := []color.Option{
		color.WithConverter(conv),
		color.WithLogger(observability.NewSlogLogger(a.logger)),
	}
	if a.v.GetBool("upper") {
		opts = append(opts, color.WithUpperHex())
	}
	a.logger.Debug("Engine ready", "converter", a.v.GetString("converter"))
	return color.NewEngine(opts...), nil
}
