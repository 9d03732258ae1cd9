package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/planora-ai/planora/internal/telemetry"
	"github.com/planora-ai/planora/internal/ui"
	"github.com/planora-ai/planora/llm"
	"github.com/planora-ai/planora/models"
	"github.com/planora-ai/planora/types"
)

// chatCmd starts an interactive consulting conversation. The underlying
// provider session is created lazily and discarded after a failed exchange;
// the transcript is kept client-side so a fresh session resumes with full
// history.
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with an automation consultant",
	Long: `Chat opens an interactive conversation with an AI automation consultant.
Type a message and press Enter; type 'exit' or press Ctrl+D to leave.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		provider, err := GetProvider(ctx)
		if err != nil {
			ui.Errorf("Failed to initialize LLM provider: %v", err)
			os.Exit(1)
		}

		fmt.Println(ui.StyleTitle.Render("Consultor de Automatización"))
		fmt.Println(ui.StyleSubtle.Render("Escribe tu pregunta. 'exit' para salir."))
		fmt.Println()

		var (
			history []models.ChatMessage
			chat    llm.ChatSession
		)

		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print(ui.StylePrompt.Render("tú> "))
			if !scanner.Scan() {
				fmt.Println()
				break
			}
			message := strings.TrimSpace(scanner.Text())
			if message == "" {
				continue
			}
			if message == "exit" || message == "quit" {
				break
			}

			if chat == nil {
				chat, err = provider.NewChat(ctx, history)
				if err != nil {
					ui.Errorf("No se pudo iniciar la conversación: %v", err)
					continue
				}
			}

			sendCtx, cancel := context.WithTimeout(ctx, requestTimeout())
			reply, err := chat.Send(sendCtx, message)
			cancel()
			if err != nil {
				// A broken session is dropped; the kept history seeds the
				// next one.
				chat = nil
				var chatErr *types.ChatError
				if errors.As(err, &chatErr) && !verbose {
					ui.Errorf("Hubo un problema con el consultor. Inténtalo de nuevo.")
				} else {
					ui.Errorf("Chat failed: %v", err)
				}
				continue
			}

			history = append(history,
				models.ChatMessage{Role: "user", Content: message},
				models.ChatMessage{Role: "model", Content: reply},
			)

			fmt.Println(ui.StyleChatReply.Render(reply))
			fmt.Println()
		}

		if len(history) > 0 {
			capture(telemetry.EventChat, map[string]interface{}{"turns": len(history) / 2})
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
