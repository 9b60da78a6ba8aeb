package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/josi-bot/josi/internal/chat"
	"github.com/josi-bot/josi/internal/college"
	"github.com/josi-bot/josi/internal/gemini"
	"github.com/josi-bot/josi/internal/logger"
	"github.com/josi-bot/josi/internal/moderation"
	"github.com/josi-bot/josi/internal/placement"
	"github.com/josi-bot/josi/internal/secrets"
	"github.com/josi-bot/josi/internal/ui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start the interactive placement assistant",
	Run: func(cmd *cobra.Command, _ []string) {
		runChat(cmd)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().Bool("no-color", false, "disable ANSI styling in the chat pane")

	viper.BindPFlag("no-color", chatCmd.Flags().Lookup("no-color"))
}

// runChat wires the assistant together and hands control to the terminal loop.
func runChat(_ *cobra.Command) {
	ctx := context.Background()

	baseLogger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		baseLogger.Fatal("getting a config", zap.Error(err))
	}

	baseLogger.Info("starting josi", zap.String("version", version))

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: config.Gemini.APIKey,
		File:  config.Gemini.APIKeyFile,
		Env:   "GEMINI_API_KEY",
	})
	if err != nil {
		baseLogger.Fatal(
			"loading gemini api key",
			zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY or the gemini.api-key / gemini.api-key-file keys in the configuration file"),
		)
	}

	client := gemini.NewClient(apiKey, config.Gemini.Model,
		logger.WithProvider(baseLogger, "gemini", config.Gemini.Model))

	filter := moderation.NewFilter(config.Moderation.ExtraWords)

	knowledge := college.Default()
	session := chat.NewSession(client, filter, knowledge.SystemPrompt(), config.Chat.HistoryWindow, baseLogger)

	validator := placement.NewValidator(client, baseLogger)
	questions := placement.NewQuestionGenerator(client, baseLogger)
	sequencer := placement.NewSequencer(client, validator, questions, baseLogger)

	renderer := ui.NewRenderer(!viper.GetBool("no-color"))
	terminal := ui.NewTerminal(session, sequencer, filter, renderer, baseLogger)

	if err := terminal.Run(ctx); err != nil {
		baseLogger.Fatal("chat loop failed", zap.Error(err))
	}

	baseLogger.Info("goodbye")
}
