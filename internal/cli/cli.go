// Package cli provides the command line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/ecotr3/internal/config"
	"github.com/temirov/ecotr3/internal/ignore"
	"github.com/temirov/ecotr3/internal/output"
	"github.com/temirov/ecotr3/internal/services/clipboard"
	"github.com/temirov/ecotr3/internal/tree"
	"github.com/temirov/ecotr3/internal/utils"
)

const (
	statsFlagName        = "stats"
	depthFlagName        = "depth"
	exclusionFlagName    = "e"
	exclusionLongName    = "exclude"
	noDefaultsFlagName   = "no-defaults"
	ignoreFileFlagName   = "ignore-file"
	configFlagName       = "config"
	outputFlagName       = "output"
	verboseFlagName      = "verbose"
	versionFlagName      = "version"
	globalFlagName       = "global"
	forceFlagName        = "force"
	defaultPath          = "."
	versionTemplate      = "ecotr3 version: %s\n"
	rootUse              = utils.ApplicationName
	rootShortDescription = "ecotr3 renders directory trees"
	rootLongDescription  = `ecotr3 renders a directory as an indented text tree.
Entries matching default, .e3ignore and -e patterns are excluded. Use --stats to append
file counts, total size, depth and the most common extensions, and --depth to limit how
deep the listing goes.`

	printUse                   = "print [path]"
	createUse                  = "create [path]"
	copyUse                    = "copy [path]"
	ignoreFileUse              = "ignorefile"
	ignoreFileCreateUse        = "create [path]"
	ignoreFileListUse          = "list [path]"
	initUse                    = "init"
	versionUse                 = "version"
	printShortDescription      = "print the directory tree"
	createShortDescription     = "save the directory tree to a text file"
	copyShortDescription       = "copy the directory tree to the clipboard"
	ignoreFileShortDescription = "manage the .e3ignore pattern file"
	ignoreCreateShortDesc      = "create a .e3ignore template"
	ignoreListShortDesc        = "list the active exclusion patterns"
	initShortDescription       = "write the default configuration file"
	versionShortDescription    = "print the application version"

	// printUsageExample demonstrates print command usage.
	printUsageExample = `  # Print the current directory with statistics
  ecotr3 print --stats

  # Show two levels of ./src and skip build output
  ecotr3 print --depth 2 -e build/ ./src`
	// createUsageExample demonstrates create command usage.
	createUsageExample = `  # Write project_ecotr3_with_stats.txt in the working directory
  ecotr3 create --stats ./project`

	statsFlagDescription      = "append directory statistics"
	depthFlagDescription      = "list entries shallower than this depth (negative for unlimited)"
	exclusionFlagDescription  = "exclude entries matching pattern (repeatable)"
	noDefaultsFlagDescription = "do not apply the built-in default patterns"
	ignoreFileFlagDescription = "pattern file to read (default <path>/.e3ignore)"
	configFlagDescription     = "configuration file to load instead of ./config.yaml"
	outputFlagDescription     = "output file (default <root>_ecotr3[_with_stats].txt)"
	verboseFlagDescription    = "log skipped directories and resolved settings"
	versionFlagDescription    = "display application version"
	globalFlagDescription     = "write the configuration under the home directory"
	forceFlagDescription      = "overwrite an existing configuration file"

	ignoreFileCreatedFormat = "%s created successfully\n"
	ignoreFileExistsFormat  = "%s already exists. Skipping creation.\n"
	patternListHeader       = "Current ignore patterns:"
	patternListItemFormat   = "- %s\n"
	configWrittenFormat     = "Configuration written to %s\n"

	renderingTreeMessage = "rendering tree"
	rootLogField         = "root"
	patternsLogField     = "patterns"
	depthLogField        = "depth"
	statsLogField        = "stats"

	// errorAbsolutePathFormat reports failure to resolve an absolute path.
	errorAbsolutePathFormat = "abs failed for '%s': %w"
	// errorPathMissingFormat reports a missing path.
	errorPathMissingFormat = "path '%s' does not exist"
	// errorPathNotDirectoryFormat reports a root that is not a directory.
	errorPathNotDirectoryFormat = "path '%s' is not a directory"
	// errorStatFormat reports failure to retrieve file statistics.
	errorStatFormat = "stat failed for '%s': %w"
	// errorLoadConfigurationFormat reports an unreadable configuration file.
	errorLoadConfigurationFormat = "load configuration: %w"
	// errorWorkingDirectoryFormat reports an unknown working directory.
	errorWorkingDirectoryFormat = "unable to determine working directory: %w"
	// errorVerboseLoggerFormat reports a failure to build the debug logger.
	errorVerboseLoggerFormat = "enable verbose logging: %w"
)

// application carries the collaborators shared by every command.
type application struct {
	logger           *zap.Logger
	copier           clipboard.Copier
	workingDirectory string
	configPath       string
	verbose          bool
}

// treeFlags stores the flags shared by print, create and copy.
type treeFlags struct {
	stats             bool
	depth             int
	exclusionPatterns []string
	noDefaults        bool
	ignoreFilePath    string
}

// treeRequest is the fully resolved input of one rendering.
type treeRequest struct {
	rootPath string
	patterns ignore.PatternSet
	options  tree.Options
	output   string
}

// Execute runs the ecotr3 application.
func Execute(logger *zap.Logger) error {
	app := &application{logger: logger, copier: clipboard.NewService()}
	rootCommand := createRootCommand(app)
	rootCommand.SetArgs(joinBooleanFlagValues(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand(app *application) *cobra.Command {
	if app.logger == nil {
		app.logger = zap.NewNop()
	}
	var showVersion bool

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if showVersion {
				return printVersion(command.OutOrStdout())
			}
			return command.Help()
		},
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			if !app.verbose {
				return nil
			}
			verboseLogger, loggerError := utils.NewApplicationLogger(true)
			if loggerError != nil {
				return fmt.Errorf(errorVerboseLoggerFormat, loggerError)
			}
			app.logger = verboseLogger
			return nil
		},
	}
	app.verbose = false
	registerBooleanFlag(rootCommand.Flags(), &showVersion, versionFlagName, versionFlagDescription)
	rootCommand.PersistentFlags().StringVar(&app.configPath, configFlagName, "", configFlagDescription)
	registerBooleanFlag(rootCommand.PersistentFlags(), &app.verbose, verboseFlagName, verboseFlagDescription)
	rootCommand.AddCommand(
		createPrintCommand(app),
		createCreateCommand(app),
		createCopyCommand(app),
		createIgnoreFileCommand(app),
		createInitCommand(app),
		createVersionCommand(),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// addTreeFlags registers rendering flags on the command.
func addTreeFlags(command *cobra.Command, flags *treeFlags) {
	flags.depth = tree.UnlimitedDepth
	registerBooleanFlag(command.Flags(), &flags.stats, statsFlagName, statsFlagDescription)
	command.Flags().IntVar(&flags.depth, depthFlagName, tree.UnlimitedDepth, depthFlagDescription)
	command.Flags().StringArrayVarP(&flags.exclusionPatterns, exclusionLongName, exclusionFlagName, nil, exclusionFlagDescription)
	registerBooleanFlag(command.Flags(), &flags.noDefaults, noDefaultsFlagName, noDefaultsFlagDescription)
	command.Flags().StringVar(&flags.ignoreFilePath, ignoreFileFlagName, "", ignoreFileFlagDescription)
}

// createPrintCommand returns the print subcommand.
func createPrintCommand(app *application) *cobra.Command {
	var flags treeFlags
	printCommand := &cobra.Command{
		Use:     printUse,
		Short:   printShortDescription,
		Example: printUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			request, requestError := app.resolveTreeRequest(command, arguments, flags)
			if requestError != nil {
				return requestError
			}
			return app.renderTo(request, output.NewWriterSink(command.OutOrStdout()))
		},
	}
	addTreeFlags(printCommand, &flags)
	return printCommand
}

// createCreateCommand returns the create subcommand.
func createCreateCommand(app *application) *cobra.Command {
	var flags treeFlags
	var outputPath string
	createCommand := &cobra.Command{
		Use:     createUse,
		Short:   createShortDescription,
		Example: createUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			request, requestError := app.resolveTreeRequest(command, arguments, flags)
			if requestError != nil {
				return requestError
			}
			if command.Flags().Changed(outputFlagName) {
				request.output = outputPath
			}
			destination, destinationError := app.outputDestination(request)
			if destinationError != nil {
				return destinationError
			}
			return app.renderTo(request, output.NewFileSink(destination, command.OutOrStdout()))
		},
	}
	addTreeFlags(createCommand, &flags)
	createCommand.Flags().StringVarP(&outputPath, outputFlagName, "o", "", outputFlagDescription)
	return createCommand
}

// createCopyCommand returns the copy subcommand.
func createCopyCommand(app *application) *cobra.Command {
	var flags treeFlags
	copyCommand := &cobra.Command{
		Use:   copyUse,
		Short: copyShortDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			request, requestError := app.resolveTreeRequest(command, arguments, flags)
			if requestError != nil {
				return requestError
			}
			return app.renderTo(request, output.NewClipboardSink(app.copier, command.OutOrStdout()))
		},
	}
	addTreeFlags(copyCommand, &flags)
	return copyCommand
}

// createIgnoreFileCommand returns the ignorefile command group.
func createIgnoreFileCommand(app *application) *cobra.Command {
	ignoreFileCommand := &cobra.Command{
		Use:   ignoreFileUse,
		Short: ignoreFileShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
	}

	createCommand := &cobra.Command{
		Use:   ignoreFileCreateUse,
		Short: ignoreCreateShortDesc,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			directory, directoryError := app.resolveDirectory(arguments)
			if directoryError != nil {
				return directoryError
			}
			ignoreFilePath := filepath.Join(directory, utils.IgnoreFileName)
			created, createError := config.CreateIgnoreFile(ignoreFilePath)
			if createError != nil {
				return createError
			}
			if created {
				fmt.Fprintf(command.OutOrStdout(), ignoreFileCreatedFormat, utils.IgnoreFileName)
			} else {
				fmt.Fprintf(command.OutOrStdout(), ignoreFileExistsFormat, utils.IgnoreFileName)
			}
			return nil
		},
	}

	var flags treeFlags
	listCommand := &cobra.Command{
		Use:   ignoreFileListUse,
		Short: ignoreListShortDesc,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			request, requestError := app.resolveTreeRequest(command, arguments, flags)
			if requestError != nil {
				return requestError
			}
			fmt.Fprintln(command.OutOrStdout(), patternListHeader)
			for _, pattern := range request.patterns.Patterns() {
				fmt.Fprintf(command.OutOrStdout(), patternListItemFormat, pattern)
			}
			return nil
		},
	}
	listCommand.Flags().StringArrayVarP(&flags.exclusionPatterns, exclusionLongName, exclusionFlagName, nil, exclusionFlagDescription)
	registerBooleanFlag(listCommand.Flags(), &flags.noDefaults, noDefaultsFlagName, noDefaultsFlagDescription)
	listCommand.Flags().StringVar(&flags.ignoreFilePath, ignoreFileFlagName, "", ignoreFileFlagDescription)

	ignoreFileCommand.AddCommand(createCommand, listCommand)
	return ignoreFileCommand
}

// createInitCommand returns the init subcommand.
func createInitCommand(app *application) *cobra.Command {
	var global bool
	var force bool
	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if global {
				target = config.InitTargetGlobal
			}
			writtenPath, initError := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            force,
				WorkingDirectory: app.workingDirectory,
			})
			if initError != nil {
				return initError
			}
			fmt.Fprintf(command.OutOrStdout(), configWrittenFormat, writtenPath)
			return nil
		},
	}
	registerBooleanFlag(initCommand.Flags(), &global, globalFlagName, globalFlagDescription)
	registerBooleanFlag(initCommand.Flags(), &force, forceFlagName, forceFlagDescription)
	return initCommand
}

// createVersionCommand returns the version subcommand.
func createVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   versionUse,
		Short: versionShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return printVersion(command.OutOrStdout())
		},
	}
}

func printVersion(writer io.Writer) error {
	_, printError := fmt.Fprintf(writer, versionTemplate, utils.GetApplicationVersion())
	return printError
}

// resolveTreeRequest merges flags over configuration over built-in defaults.
func (app *application) resolveTreeRequest(command *cobra.Command, arguments []string, flags treeFlags) (treeRequest, error) {
	rootPath, rootError := app.resolveDirectory(arguments)
	if rootError != nil {
		return treeRequest{}, rootError
	}
	workingDirectory, workingDirectoryError := utils.WorkingDirectoryOr(app.workingDirectory)
	if workingDirectoryError != nil {
		return treeRequest{}, fmt.Errorf(errorWorkingDirectoryFormat, workingDirectoryError)
	}
	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: app.configPath,
	})
	if configurationError != nil {
		return treeRequest{}, fmt.Errorf(errorLoadConfigurationFormat, configurationError)
	}
	configured := applicationConfiguration.Tree
	changed := command.Flags().Changed

	options := tree.DefaultOptions()
	if configured.Stats != nil {
		options.IncludeStats = *configured.Stats
	}
	if changed(statsFlagName) {
		options.IncludeStats = flags.stats
	}
	if configured.Depth != nil {
		options.MaxDepth = *configured.Depth
	}
	if changed(depthFlagName) {
		options.MaxDepth = flags.depth
	}

	includeDefaults := true
	if configured.UseDefaults != nil {
		includeDefaults = *configured.UseDefaults
	}
	if changed(noDefaultsFlagName) {
		includeDefaults = !flags.noDefaults
	}

	ignoreFilePath := filepath.Join(rootPath, utils.IgnoreFileName)
	if configured.IgnoreFile != "" {
		ignoreFilePath = filepath.Join(rootPath, configured.IgnoreFile)
		if filepath.IsAbs(configured.IgnoreFile) {
			ignoreFilePath = configured.IgnoreFile
		}
	}
	if changed(ignoreFileFlagName) {
		resolvedIgnoreFile, resolveError := utils.ResolvePath(workingDirectory, flags.ignoreFilePath)
		if resolveError != nil {
			return treeRequest{}, resolveError
		}
		ignoreFilePath = resolvedIgnoreFile
	}

	exclusionPatterns := append(append([]string{}, configured.Exclude...), flags.exclusionPatterns...)
	patterns := config.LoadPatternSet(config.PatternSources{
		IgnoreFilePath:    ignoreFilePath,
		ExclusionPatterns: exclusionPatterns,
		IncludeDefaults:   includeDefaults,
	}, app.logger)

	return treeRequest{
		rootPath: rootPath,
		patterns: patterns,
		options:  options,
		output:   configured.Output,
	}, nil
}

// resolveDirectory returns the absolute directory named by the optional path argument.
func (app *application) resolveDirectory(arguments []string) (string, error) {
	input := defaultPath
	if len(arguments) > 0 {
		input = arguments[0]
	}
	workingDirectory, workingDirectoryError := utils.WorkingDirectoryOr(app.workingDirectory)
	if workingDirectoryError != nil {
		return "", fmt.Errorf(errorWorkingDirectoryFormat, workingDirectoryError)
	}
	absolutePath, absoluteError := utils.ResolvePath(workingDirectory, input)
	if absoluteError != nil {
		return "", fmt.Errorf(errorAbsolutePathFormat, input, absoluteError)
	}
	absolutePath = filepath.Clean(absolutePath)
	fileInfo, statError := os.Stat(absolutePath)
	if statError != nil {
		if errors.Is(statError, os.ErrNotExist) {
			return "", fmt.Errorf(errorPathMissingFormat, input)
		}
		return "", fmt.Errorf(errorStatFormat, input, statError)
	}
	if !fileInfo.IsDir() {
		return "", fmt.Errorf(errorPathNotDirectoryFormat, input)
	}
	return absolutePath, nil
}

// outputDestination resolves the create target against the working directory.
func (app *application) outputDestination(request treeRequest) (string, error) {
	workingDirectory, workingDirectoryError := utils.WorkingDirectoryOr(app.workingDirectory)
	if workingDirectoryError != nil {
		return "", fmt.Errorf(errorWorkingDirectoryFormat, workingDirectoryError)
	}
	if request.output == "" {
		return filepath.Join(workingDirectory, output.FileName(request.rootPath, request.options.IncludeStats)), nil
	}
	return utils.ResolvePath(workingDirectory, request.output)
}

// renderTo renders the requested tree and hands it to sink.
func (app *application) renderTo(request treeRequest, sink output.Sink) error {
	app.logger.Debug(renderingTreeMessage,
		zap.String(rootLogField, request.rootPath),
		zap.Strings(patternsLogField, request.patterns.Patterns()),
		zap.Int(depthLogField, request.options.MaxDepth),
		zap.Bool(statsLogField, request.options.IncludeStats),
	)
	matcher := ignore.NewMatcher(request.patterns)
	rendering, renderError := tree.NewRenderer(matcher, request.options, app.logger).Render(request.rootPath)
	if renderError != nil {
		return renderError
	}
	return sink.Deliver(rendering)
}
