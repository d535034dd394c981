package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PromptPack holds the five system-instruction bodies, loaded at startup.
// The core's contract is only to fill named placeholders and send the text
// as the system instruction; the prompt content itself is configuration.
//
// Literal braces in prompt bodies must be doubled ({{ and }}) because the
// texts are FString templates.
type PromptPack struct {
	UserInput          string `yaml:"user_input_prompt"`
	EmotionDetection   string `yaml:"emotion_detection_prompt"`
	ContextManagement  string `yaml:"context_management_prompt"`
	ResponseGeneration string `yaml:"response_generation_prompt"`
	FeedbackLoop       string `yaml:"feedback_loop_prompt"`
}

// LoadPrompts reads the prompt pack and verifies all five agents have an
// instruction body.
func LoadPrompts(filepath string) (*PromptPack, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("error reading prompts file: %w", err)
	}

	var pack PromptPack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("error parsing prompts YAML: %w", err)
	}

	missing := ""
	switch {
	case pack.UserInput == "":
		missing = "user_input_prompt"
	case pack.EmotionDetection == "":
		missing = "emotion_detection_prompt"
	case pack.ContextManagement == "":
		missing = "context_management_prompt"
	case pack.ResponseGeneration == "":
		missing = "response_generation_prompt"
	case pack.FeedbackLoop == "":
		missing = "feedback_loop_prompt"
	}
	if missing != "" {
		return nil, fmt.Errorf("prompt pack is missing %s", missing)
	}

	return &pack, nil
}
