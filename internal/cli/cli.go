// Package cli provides the command line interface.
package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/projinfo/internal/config"
	"github.com/temirov/projinfo/internal/output"
	"github.com/temirov/projinfo/internal/scan"
	"github.com/temirov/projinfo/internal/services/clipboard"
	"github.com/temirov/projinfo/internal/tokenizer"
	"github.com/temirov/projinfo/internal/types"
	"github.com/temirov/projinfo/internal/utils"
)

const (
	defaultPath          = types.RootRelativePath
	rootUse              = utils.ApplicationName + " [path]"
	rootShortDescription = "summarize a project for automated review"
	rootLongDescription  = `projinfo walks a project directory and reports its structure.
It prints the directory tree, the full text of core source files (.rs .py .js .ts .java .cpp .c .h .hpp),
and the content of dependency manifests (Cargo.toml, Cargo.lock), then saves everything as JSON.
Virtual environments, caches, build output, and VCS metadata are skipped.`
	rootUsageExample = `  # Analyze the current directory and write project_analysis.json
  projinfo

  # Analyze another project, honor its .gitignore, and estimate tokens
  projinfo --gitignore --tokens ../service

  # Print only, without writing JSON
  projinfo --no-json .`
	versionTemplate = utils.ApplicationName + " version: {{.Version}}\n"

	outputFlagName        = "output"
	outputFlagShorthand   = "o"
	noJSONFlagName        = "no-json"
	configFlagName        = "config"
	gitignoreFlagName     = "gitignore"
	tokensFlagName        = "tokens"
	modelFlagName         = "model"
	copyFlagName          = "copy"
	verboseFlagName       = "verbose"
	outputFlagDescription = "file the JSON report is written to"
	noJSONFlagDescription = "do not write the JSON report"
	configFlagDescription = "configuration file to use instead of " + utils.ConfigFileName
	gitignoreDescription  = "skip entries matched by the root .gitignore"
	tokensFlagDescription = "estimate the token count of captured content"
	modelFlagDescription  = "tokenizer model used for --tokens"
	copyFlagDescription   = "copy the printed report to the clipboard"
	verboseDescription    = "log traversal decisions to stderr"

	analyzingFormat         = "Analyzing project: %s\n\n"
	invalidRootFormat       = "Error: The specified path does not exist or is not a directory: %s\n"
	tokenEstimateFormat     = "Token Estimate: %d tokens (code: %d, dependencies: %d, model: %s)\n"
	copiedMessage           = "Report copied to clipboard."
	savedFormat             = "All information has been saved to %s file.\n"
	completedMessage        = "Operation completed."
	workingDirectoryFormat  = "unable to determine working directory: %w"
	absolutePathErrorFormat = "abs failed for '%s': %w"
)

// Execute runs the projinfo application.
func Execute() error {
	return createRootCommand(newApplication()).Execute()
}

// application holds the collaborators of a command run.
type application struct {
	stdout     io.Writer
	logger     *zap.Logger
	copier     clipboard.Copier
	newCounter func(model string) (tokenizer.Counter, string, error)
}

func newApplication() *application {
	return &application{
		stdout:     os.Stdout,
		copier:     clipboard.NewService(),
		newCounter: tokenizer.NewCounter,
	}
}

// runOptions is the resolved configuration of one analysis.
type runOptions struct {
	root             string
	jsonFile         string
	saveJSON         bool
	respectGitignore bool
	countTokens      bool
	tokenModel       string
	copyToClipboard  bool
	scanAdditions    scan.Additions
}

// commandFlags stores raw flag values before they are merged with configuration.
type commandFlags struct {
	jsonFile         string
	skipJSON         bool
	configPath       string
	respectGitignore bool
	countTokens      bool
	tokenModel       string
	copyToClipboard  bool
	verbose          bool
}

// createRootCommand builds the root Cobra command.
func createRootCommand(app *application) *cobra.Command {
	var flags commandFlags

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		Version:      utils.GetApplicationVersion(),
		RunE: func(command *cobra.Command, arguments []string) error {
			root := defaultPath
			if len(arguments) > 0 {
				root = arguments[0]
			}
			options, optionsError := resolveRunOptions(command, flags, root)
			if optionsError != nil {
				return optionsError
			}
			logger := app.logger
			if logger == nil {
				createdLogger, loggerError := utils.NewApplicationLogger(flags.verbose)
				if loggerError != nil {
					return fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerError)
				}
				defer func() { _ = createdLogger.Sync() }()
				logger = createdLogger
			}
			return app.run(options, logger)
		},
	}
	rootCommand.SetVersionTemplate(versionTemplate)
	rootCommand.SetOut(app.stdout)

	rootCommand.Flags().StringVarP(&flags.jsonFile, outputFlagName, outputFlagShorthand, utils.DefaultReportFileName, outputFlagDescription)
	rootCommand.Flags().BoolVar(&flags.skipJSON, noJSONFlagName, false, noJSONFlagDescription)
	rootCommand.Flags().StringVar(&flags.configPath, configFlagName, "", configFlagDescription)
	rootCommand.Flags().BoolVar(&flags.respectGitignore, gitignoreFlagName, false, gitignoreDescription)
	rootCommand.Flags().BoolVar(&flags.countTokens, tokensFlagName, false, tokensFlagDescription)
	rootCommand.Flags().StringVar(&flags.tokenModel, modelFlagName, tokenizer.DefaultModel, modelFlagDescription)
	rootCommand.Flags().BoolVar(&flags.copyToClipboard, copyFlagName, false, copyFlagDescription)
	rootCommand.PersistentFlags().BoolVar(&flags.verbose, verboseFlagName, false, verboseDescription)

	rootCommand.AddCommand(createInitCommand(app))
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// resolveRunOptions merges configuration files with flags; explicitly set flags win.
func resolveRunOptions(command *cobra.Command, flags commandFlags, root string) (runOptions, error) {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return runOptions{}, fmt.Errorf(workingDirectoryFormat, workingDirectoryError)
	}
	applicationConfig, configError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: flags.configPath,
	})
	if configError != nil {
		return runOptions{}, configError
	}

	options := runOptions{
		root:             root,
		jsonFile:         utils.DefaultReportFileName,
		saveJSON:         config.BoolValue(applicationConfig.Output.SaveJSON, true),
		respectGitignore: config.BoolValue(applicationConfig.Scan.Gitignore, false),
		countTokens:      config.BoolValue(applicationConfig.Output.Tokens, false),
		tokenModel:       tokenizer.DefaultModel,
		copyToClipboard:  config.BoolValue(applicationConfig.Output.Clipboard, false),
		scanAdditions: scan.Additions{
			IgnoredDirectories:  applicationConfig.Scan.IgnoreDirectories,
			IgnoredExtensions:   applicationConfig.Scan.IgnoreExtensions,
			CodeExtensions:      applicationConfig.Scan.CodeExtensions,
			DependencyFileNames: applicationConfig.Scan.DependencyFiles,
		},
	}
	if applicationConfig.Output.JSONFile != "" {
		options.jsonFile = applicationConfig.Output.JSONFile
	}
	if applicationConfig.Output.Model != "" {
		options.tokenModel = applicationConfig.Output.Model
	}

	changed := command.Flags().Changed
	if changed(outputFlagName) {
		options.jsonFile = flags.jsonFile
	}
	if changed(noJSONFlagName) {
		options.saveJSON = !flags.skipJSON
	}
	if changed(gitignoreFlagName) {
		options.respectGitignore = flags.respectGitignore
	}
	if changed(tokensFlagName) {
		options.countTokens = flags.countTokens
	}
	if changed(modelFlagName) {
		options.tokenModel = flags.tokenModel
	}
	if changed(copyFlagName) {
		options.copyToClipboard = flags.copyToClipboard
	}
	return options, nil
}

// run collects the report, prints it, and applies the optional extras.
func (app *application) run(options runOptions, logger *zap.Logger) error {
	absoluteRoot, absolutePathError := filepath.Abs(options.root)
	if absolutePathError != nil {
		return fmt.Errorf(absolutePathErrorFormat, options.root, absolutePathError)
	}
	fmt.Fprintf(app.stdout, analyzingFormat, absoluteRoot)

	collector := scan.NewCollector(
		scan.WithLogger(logger),
		scan.WithRules(scan.DefaultRules().Extend(options.scanAdditions)),
		scan.WithGitignore(options.respectGitignore),
	)
	report, collectError := collector.Collect(options.root)
	if errors.Is(collectError, scan.ErrInvalidRoot) {
		fmt.Fprintf(app.stdout, invalidRootFormat, options.root)
		return nil
	}
	if collectError != nil {
		return collectError
	}

	var rendered bytes.Buffer
	output.WriteReport(&rendered, reportRootName(absoluteRoot), report)
	if _, err := app.stdout.Write(rendered.Bytes()); err != nil {
		return err
	}

	if options.countTokens {
		if err := app.printTokenEstimate(options.tokenModel, report); err != nil {
			return err
		}
	}

	if options.copyToClipboard {
		if err := app.copier.Copy(rendered.String()); err != nil {
			return err
		}
		fmt.Fprintln(app.stdout, copiedMessage)
	}

	if options.saveJSON {
		if err := output.SaveJSON(options.jsonFile, report); err != nil {
			return err
		}
		fmt.Fprintf(app.stdout, savedFormat, options.jsonFile)
	}
	fmt.Fprintln(app.stdout, completedMessage)
	return nil
}

// reportRootName returns the label printed above the tree; the filesystem root has an empty label.
func reportRootName(absoluteRoot string) string {
	name := filepath.Base(absoluteRoot)
	if name == string(filepath.Separator) || name == filepath.VolumeName(absoluteRoot)+string(filepath.Separator) {
		return ""
	}
	return name
}

func (app *application) printTokenEstimate(model string, report *types.Report) error {
	counter, resolvedModel, counterError := app.newCounter(model)
	if counterError != nil {
		return counterError
	}
	estimate, countError := tokenizer.CountReport(counter, report)
	if countError != nil {
		return countError
	}
	fmt.Fprintf(app.stdout, tokenEstimateFormat, estimate.Total(), estimate.CodeTokens, estimate.DependencyTokens, resolvedModel)
	return nil
}
