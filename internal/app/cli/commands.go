package cli

import (
	"github.com/spf13/cobra"

	"logviewer/internal/config"
)

// CommandType represents the type of CLI command
type CommandType int

// Command type values
const (
	CommandTUI CommandType = iota
	CommandUsers
	CommandLogs
	CommandInit
	CommandConfig
	CommandVersion
	CommandHelp
)

// Options contains the parsed command-line arguments
type Options struct {
	Type       CommandType
	ConfigPath string
	Username   string
	Password   string
	UserID     string
	Full       bool
	HTML       string
	Force      bool
	DryRun     bool
}

// rootFlags holds flag values for the root command
type rootFlags struct {
	version bool
}

// Parse parses command-line args and returns a Options struct
func Parse(args []string) (*Options, error) {
	result := &Options{Type: CommandTUI}

	var flags rootFlags

	root := buildRootCommand(result, &flags)
	root.AddCommand(
		buildUsersCommand(result),
		buildLogsCommand(result),
		buildInitCommand(result),
		buildConfigCommand(result),
		buildVersionCommand(result),
	)

	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		return nil, err
	}

	if flags.version {
		result.Type = CommandVersion
	}

	return result, nil
}

// buildRootCommand creates the root cobra command
func buildRootCommand(result *Options, flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   config.AppName,
		Short: config.AppDescription,
		Long: `logviewer signs in to the developer log API, lets you pick a user
and shows that user's log entries grouped by day.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandTUI
		},
	}

	cmd.PersistentFlags().StringVarP(&result.ConfigPath, "config", "c", "", "Path to logviewer.yaml")
	cmd.Flags().BoolVarP(&flags.version, "version", "v", false, "Show version information")

	cmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		result.Type = CommandHelp
	})

	return cmd
}

// addCredentialFlags registers the credential flags shared by API commands
func addCredentialFlags(cmd *cobra.Command, result *Options) {
	cmd.Flags().StringVarP(&result.Username, "username", "u", "", "Developer username (defaults to auth.username)")
	cmd.Flags().StringVarP(&result.Password, "password", "p", "", "Developer password (defaults to auth.password)")
}

// buildUsersCommand creates the users subcommand
func buildUsersCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"u"},
		Short:   "List the user IDs the credentials may inspect",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandUsers
		},
	}

	addCredentialFlags(cmd, result)

	return cmd
}

// buildLogsCommand creates the logs subcommand
func buildLogsCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "logs USER_ID",
		Aliases: []string{"l"},
		Short:   "Print the log entries of a user grouped by day",
		Args:    cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandLogs
			result.UserID = args[0]
		},
	}

	addCredentialFlags(cmd, result)
	cmd.Flags().BoolVarP(&result.Full, "full", "f", false, "Print whole messages instead of the first line")
	cmd.Flags().StringVar(&result.HTML, "html", "", "Write a standalone HTML page to `FILE` instead of printing")

	return cmd
}

// buildInitCommand creates the init subcommand
func buildInitCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "init",
		Aliases: []string{"i"},
		Short:   "Generate logviewer.yaml template",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandInit
		},
	}

	cmd.Flags().BoolVar(&result.Force, "force", false, "Overwrite an existing logviewer.yaml")
	cmd.Flags().BoolVar(&result.DryRun, "dry-run", false, "Print the template instead of writing it")

	return cmd
}

// buildConfigCommand creates the config subcommand
func buildConfigCommand(result *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandConfig
		},
	}
}

// buildVersionCommand creates the version subcommand
func buildVersionCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandVersion
		},
	}

	return cmd
}
