package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	defaultOrg           = "chimbosonic"
	defaultMaxConcurrent = 5
	maxConcurrentCap     = 10
)

const (
	exitCodePartialFailure = 1
	exitCodeFailure        = 2
)

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	status := StatusSuccess

	rootCmd := &cobra.Command{
		Use:   "orgsync",
		Short: "Clone or fetch every repository of a GitHub organization",
		Long: "Orgsync lists the repositories of a GitHub organization with gh and " +
			"synchronizes local clones under the current directory: missing " +
			"repositories are cloned and existing ones are fetched.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			_, status = runSync(cfg, ghLister{}, gitCLI{}, stdout, stderr)
			return nil
		},
	}

	flags := rootCmd.Flags()
	flags.StringP("github-org", "g", defaultOrg, "GitHub organization")
	flags.BoolP("dry-run", "d", false, "preview actions without making any changes")
	flags.StringSliceP("filters", "f", nil, "comma-separated repo name substrings to exclude")
	flags.IntP("max-concurrent", "m", defaultMaxConcurrent, "max concurrent clone/fetch operations (10 max)")
	flags.Bool("https", false, "clone over https rather than ssh")

	rootCmd.SetArgs(args[1:])
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitCodeFailure
	}

	switch status {
	case StatusPartialFailure:
		return exitCodePartialFailure
	case StatusFailure:
		return exitCodeFailure
	default:
		return 0
	}
}

// resolveConfig merges flags, ORGSYNC_* environment variables and an optional
// config file. Flags win over the environment, which wins over the file.
func resolveConfig(cmd *cobra.Command) (config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "orgsync"))
	}
	v.AddConfigPath(".")
	v.SetEnvPrefix("ORGSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return config{}, err
	}

	// Read config file if it exists (ignore error if not found)
	_ = v.ReadInConfig()

	wd, err := os.Getwd()
	if err != nil {
		return config{}, err
	}

	maxConcurrent := v.GetInt("max-concurrent")
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	if maxConcurrent > maxConcurrentCap {
		maxConcurrent = maxConcurrentCap
	}

	return config{
		Org:           v.GetString("github-org"),
		DryRun:        v.GetBool("dry-run"),
		Filters:       v.GetStringSlice("filters"),
		MaxConcurrent: maxConcurrent,
		HTTPS:         v.GetBool("https"),
		BaseDir:       wd,
	}, nil
}
