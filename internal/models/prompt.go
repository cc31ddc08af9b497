package models

import "time"

// Variable value types stored in placeholder_variables.value_type.
const (
	VariableTypeText   = "text"
	VariableTypeOption = "option"
)

// Prompt is a stored template string containing {{name}} tokens, owned by
// exactly one user. All reads and writes are scoped by UserID at the query
// level, never only in handlers.
type Prompt struct {
	ID                   uint                  `gorm:"primarykey" json:"id"`
	UserID               uint                  `gorm:"index;not null" json:"user_id"`
	Title                string                `gorm:"not null" json:"title"`
	PromptText           string                `gorm:"type:text;not null" json:"prompt_text"`
	Tags                 []Tag                 `gorm:"many2many:prompt_tags;" json:"tags,omitempty"`
	PlaceholderVariables []PlaceholderVariable `gorm:"foreignKey:PromptID" json:"placeholder_variables,omitempty"`
	CreatedAt            time.Time             `json:"created_at"`
	UpdatedAt            time.Time             `json:"updated_at"`
}

// Tag names live in a single namespace shared across all users.
type Tag struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// PromptTag is the prompts<->tags join row. Declared explicitly so link rows
// can be inserted and deleted one step at a time during reconciliation.
type PromptTag struct {
	PromptID uint `gorm:"primaryKey" json:"prompt_id"`
	TagID    uint `gorm:"primaryKey" json:"tag_id"`
}

func (PromptTag) TableName() string {
	return "prompt_tags"
}

// PlaceholderVariable is one named, typed slot of a prompt. OrderIndex is the
// stable sort key for display and substitution order; rows are rewritten
// densely 0..n-1 on every save.
type PlaceholderVariable struct {
	ID         uint                `gorm:"primarykey" json:"id"`
	PromptID   uint                `gorm:"index;not null" json:"prompt_id"`
	Name       string              `gorm:"not null" json:"name"`
	ValueType  string              `gorm:"not null;default:'text'" json:"value_type"`
	OrderIndex int                 `gorm:"not null;default:0" json:"order_index"`
	Options    []PlaceholderOption `gorm:"foreignKey:PlaceholderVariableID" json:"options,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
}

// PlaceholderOption exists only for variables of type option and must be
// deleted before its owning variable.
type PlaceholderOption struct {
	ID                    uint   `gorm:"primarykey" json:"id"`
	PlaceholderVariableID uint   `gorm:"index;not null" json:"placeholder_variable_id"`
	OptionValue           string `gorm:"not null" json:"option_value"`
	OrderIndex            int    `gorm:"not null;default:0" json:"order_index"`
}
