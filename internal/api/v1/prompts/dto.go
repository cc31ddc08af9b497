package prompts

import "github.com/veewoo/veewoo-prompt/internal/services"

// PlaceholderVariableInput is one variable as submitted by the editor; its
// position in the request array is its order.
type PlaceholderVariableInput struct {
	Name    string   `json:"name" binding:"required"`
	Type    string   `json:"type" binding:"required,oneof=text option"`
	Options []string `json:"options"`
}

// SavePromptRequest is the full desired state of a prompt; create and update
// share it.
type SavePromptRequest struct {
	Title                string                     `json:"title" binding:"required"`
	PromptText           string                     `json:"prompt_text" binding:"required"`
	TagNames             []string                   `json:"tag_names"`
	PlaceholderVariables []PlaceholderVariableInput `json:"placeholder_variables" binding:"dive"`
}

// SavePromptResponse pairs the hydrated prompt with the write report so
// callers can see which best-effort sub-steps were skipped.
type SavePromptResponse struct {
	Prompt *services.PromptView  `json:"prompt"`
	Report *services.WriteReport `json:"report"`
}

type RenderRequest struct {
	Values map[string]string `json:"values"`
	Mode   string            `json:"mode" binding:"omitempty,oneof=preview final"`
}

type RenderResponse struct {
	Text string `json:"text"`
}
