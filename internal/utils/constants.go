package utils

const (
	// ApplicationName is the command name and the prefix of generated output files.
	ApplicationName = "ecotr3"
	// IgnoreFileName is the name of the pattern file read from the rendered root.
	IgnoreFileName = ".e3ignore"
	// ConfigFileName is the name of the YAML application configuration file.
	ConfigFileName = "config.yaml"
	// GlobalConfigDirectoryName is the directory under the home directory holding the global configuration.
	GlobalConfigDirectoryName = ".ecotr3"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"

	// LoggerInitializationFailedMessageFormat reports a logger construction failure.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes fatal command errors.
	ApplicationExecutionFailedMessage = "ecotr3 failed"
)
