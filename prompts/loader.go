package prompts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PromptKey identifies a specific prompt.
type PromptKey string

const (
	// KeyGeneratePlan is the key for the plan generation prompt.
	KeyGeneratePlan PromptKey = "GeneratePlan"
	// KeyChatSystem is the key for the chat system instruction.
	KeyChatSystem PromptKey = "ChatSystem"
)

type promptConfig struct {
	defaultContent string
	filename       string
}

var promptRegistry = map[PromptKey]promptConfig{
	KeyGeneratePlan: {
		defaultContent: GeneratePlanPrompt,
		filename:       "generate_plan_prompt.txt",
	},
	KeyChatSystem: {
		defaultContent: ChatSystemInstruction,
		filename:       "chat_system_prompt.txt",
	},
}

// GetPrompt returns a user-provided prompt file from the templates directory
// when one exists, otherwise the hardcoded default.
func GetPrompt(key PromptKey, templatesDir string) (string, error) {
	config, ok := promptRegistry[key]
	if !ok {
		return "", fmt.Errorf("unrecognized prompt key: %s", key)
	}

	if strings.TrimSpace(templatesDir) == "" {
		return config.defaultContent, nil
	}

	customPromptPath := filepath.Join(templatesDir, config.filename)

	if _, err := os.Stat(customPromptPath); err == nil {
		content, readErr := os.ReadFile(customPromptPath)
		if readErr != nil {
			return "", fmt.Errorf("failed to read custom prompt file at %s: %w", customPromptPath, readErr)
		}
		return string(content), nil
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("error checking for custom prompt file at %s: %w", customPromptPath, err)
	}

	return config.defaultContent, nil
}
