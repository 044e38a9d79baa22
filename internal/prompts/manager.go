package prompts

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// embeds all .yaml files in the templates folder into Go program at compile time
//
//go:embed templates/*.yaml
var templateFS embed.FS

// PromptProvider is what consumers of prompt templates depend on.
type PromptProvider interface {
	BuildPrompt(mode string, data map[string]string) (string, error)
	GetTemplates() []string
}

type PromptManager struct {
	prompts map[string]string // mode -> prompt template
}

// loaded prompt template
type PromptTemplate struct {
	Prompt string `yaml:"prompt"`
}

// creates a new prompt manager and loads templates
func NewPromptManager() (*PromptManager, error) {
	pm := &PromptManager{
		prompts: make(map[string]string),
	}

	if err := pm.loadPrompts(); err != nil {
		return nil, fmt.Errorf("failed to load prompt templates: %w", err)
	}

	return pm, nil
}

// builds a prompt for the given mode by substituting template variables
func (pm *PromptManager) BuildPrompt(mode string, data map[string]string) (string, error) {
	promptTemplate, exists := pm.prompts[mode]
	if !exists {
		return "", fmt.Errorf("template not found for mode: %s", mode)
	}

	// Simple string replacement instead of complex template execution
	result := promptTemplate
	for key, value := range data {
		result = strings.ReplaceAll(result, "{{."+key+"}}", value)
	}

	return result, nil
}

// GetTemplates lists the loaded template modes.
func (pm *PromptManager) GetTemplates() []string {
	modes := make([]string, 0, len(pm.prompts))
	for mode := range pm.prompts {
		modes = append(modes, mode)
	}
	return modes
}

// loadPrompts loads all YAML prompt files from the embedded filesystem
func (pm *PromptManager) loadPrompts() error {
	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return fmt.Errorf("failed to read templates directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		data, err := templateFS.ReadFile("templates/" + entry.Name())
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", entry.Name(), err)
		}

		var promptTemplate PromptTemplate
		if err := yaml.Unmarshal(data, &promptTemplate); err != nil {
			return fmt.Errorf("failed to parse template file %s: %w", entry.Name(), err)
		}
		if strings.TrimSpace(promptTemplate.Prompt) == "" {
			return fmt.Errorf("template file %s has an empty prompt", entry.Name())
		}

		name := strings.TrimSuffix(entry.Name(), ".yaml")
		pm.prompts[name] = promptTemplate.Prompt
	}

	return nil
}
