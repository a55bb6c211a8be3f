package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"docchat/internal/chat"
	"docchat/internal/history"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Starts a terminal chat session against the knowledge base. The session
supports a few commands:

  /clear    forget the conversation
  /history  show the conversation so far
  /info     show system status
  /quit     exit`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().Bool("show-history", false, "print recent turns from the persisted transcript before starting")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	showHistory, _ := cmd.Flags().GetBool("show-history")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	bot, err := newBot(cfg, true)
	if err != nil {
		return err
	}

	if err := bot.Setup(ctx, false); err != nil {
		return err
	}

	transcript, err := history.Open(cfg.HistoryPath)
	if err != nil {
		log.Printf("chat transcript disabled: %v", err)
		transcript = nil
	} else {
		defer transcript.Close()
	}
	sessionID := uuid.NewString()

	if showHistory && transcript != nil {
		turns, err := transcript.Recent(ctx, 20)
		if err != nil {
			log.Printf("reading transcript: %v", err)
		} else {
			printTranscript(turns)
		}
	}

	fmt.Println("Docchat ready. Ask a question, or /quit to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "/quit", "/exit":
			return nil
		case "/clear":
			bot.ClearMemory()
			fmt.Println("Conversation cleared.")
			continue
		case "/history":
			printHistory(bot.History())
			continue
		case "/info":
			printJSON(bot.SystemInfo())
			continue
		}

		result := bot.Ask(ctx, line)
		printResult(result)

		if transcript != nil {
			if _, err := transcript.Append(ctx, sessionID, line, result.Answer, result.Err); err != nil {
				log.Printf("recording transcript: %v", err)
			}
		}
	}
}

func printResult(result chat.Result) {
	fmt.Println(result.Answer)
	if len(result.Sources) > 0 {
		fmt.Println("\nSources:")
		for _, s := range result.Sources {
			fmt.Printf("  - %s (%s)\n", s.Title, s.Source)
		}
	}
	if result.Err != "" {
		fmt.Printf("\nNote: %s\n", result.Err)
	}
	fmt.Println()
}

func printTranscript(turns []history.Turn) {
	if len(turns) == 0 {
		fmt.Println("No persisted transcript yet.")
		return
	}
	fmt.Printf("Recent transcript (%d turns):\n", len(turns))
	for _, t := range turns {
		fmt.Printf("You: %s\nBot: %s\n\n", t.Question, t.Answer)
	}
}

func printHistory(history []chat.Exchange) {
	if len(history) == 0 {
		fmt.Println("No conversation yet.")
		return
	}
	for _, ex := range history {
		fmt.Printf("You: %s\nBot: %s\n\n", ex.User, ex.Assistant)
	}
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("encoding output: %v\n", err)
		return
	}
	fmt.Println(string(data))
}
