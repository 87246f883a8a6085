package utils

// EmptyString represents a reusable empty string constant.
const EmptyString = ""

const (
	// ApplicationName is the command name and the base of configuration file names.
	ApplicationName = "projinfo"
	// ConfigFileName is the name of the local configuration file looked up in the working directory.
	ConfigFileName = ".projinfo.yaml"
	// GlobalConfigDirectoryName is the directory under the user's home holding the global configuration.
	GlobalConfigDirectoryName = ".projinfo"
	// GlobalConfigFileName is the name of the global configuration file.
	GlobalConfigFileName = "config.yaml"
	// DefaultReportFileName is the JSON file the report is persisted to.
	DefaultReportFileName = "project_analysis.json"
)

const (
	// LoggerInitializationFailedMessageFormat reports a logger construction failure.
	LoggerInitializationFailedMessageFormat = "initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes fatal command failures.
	ApplicationExecutionFailedMessage = "projinfo failed"
)
