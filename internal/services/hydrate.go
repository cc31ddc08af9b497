package services

import (
	"sort"
	"time"

	"github.com/veewoo/veewoo-prompt/internal/models"
	"github.com/veewoo/veewoo-prompt/internal/placeholder"
)

type TagView struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type VariableView struct {
	ID         uint             `json:"id"`
	Name       string           `json:"name"`
	Type       placeholder.Type `json:"type"`
	Options    []string         `json:"options"`
	OrderIndex int              `json:"order_index"`
}

// PromptView is the hydrated shape handed to the API layer: tags flattened,
// variables ordered and typed, options as plain value strings.
type PromptView struct {
	ID                   uint           `json:"id"`
	UserID               uint           `json:"user_id"`
	Title                string         `json:"title"`
	PromptText           string         `json:"prompt_text"`
	Tags                 []TagView      `json:"tags"`
	PlaceholderVariables []VariableView `json:"placeholder_variables"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

// hydratePrompt maps a preloaded row set onto the ordered, typed view model.
// Variables are sorted stably by order index (a missing index reads as 0, and
// ties keep the order the store returned), the stored value_type string is
// mapped to the discriminant, and dangling tag links are dropped rather than
// surfaced as empty tags.
func hydratePrompt(p *models.Prompt) *PromptView {
	view := &PromptView{
		ID:                   p.ID,
		UserID:               p.UserID,
		Title:                p.Title,
		PromptText:           p.PromptText,
		Tags:                 []TagView{},
		PlaceholderVariables: []VariableView{},
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}

	for _, t := range p.Tags {
		if t.ID == 0 {
			continue
		}
		view.Tags = append(view.Tags, TagView{ID: t.ID, Name: t.Name})
	}

	vars := make([]models.PlaceholderVariable, len(p.PlaceholderVariables))
	copy(vars, p.PlaceholderVariables)
	sort.SliceStable(vars, func(i, j int) bool {
		return vars[i].OrderIndex < vars[j].OrderIndex
	})

	for _, v := range vars {
		options := make([]string, 0, len(v.Options))
		for _, o := range v.Options {
			options = append(options, o.OptionValue)
		}
		view.PlaceholderVariables = append(view.PlaceholderVariables, VariableView{
			ID:         v.ID,
			Name:       v.Name,
			Type:       placeholder.TypeFromString(v.ValueType),
			Options:    options,
			OrderIndex: v.OrderIndex,
		})
	}

	return view
}
