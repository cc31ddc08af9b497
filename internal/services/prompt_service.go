package services

import (
	"errors"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/veewoo/veewoo-prompt/internal/models"
	"github.com/veewoo/veewoo-prompt/internal/placeholder"
)

// PromptInput is the full desired state of one prompt as submitted by the
// editor: template text, tag names, and the ordered variable list. Writes
// make the store match it rather than diffing against what is there.
type PromptInput struct {
	Title     string
	Text      string
	TagNames  []string
	Variables []placeholder.Variable
}

type SkippedItem struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// WriteReport collects the best-effort sub-steps of a create or update that
// were skipped, and whether the final hydrating re-read succeeded. A caller
// seeing Refetched=false holds a bare prompt row and should fetch again to
// observe the true state.
type WriteReport struct {
	SkippedTags      []SkippedItem `json:"skipped_tags,omitempty"`
	SkippedVariables []SkippedItem `json:"skipped_variables,omitempty"`
	Refetched        bool          `json:"refetched"`
}

type PromptService struct {
	db  *gorm.DB
	rdb *redis.Client
	log *zap.Logger
}

func NewPromptService(db *gorm.DB, rdb *redis.Client, log *zap.Logger) *PromptService {
	return &PromptService{db: db, rdb: rdb, log: log}
}

// List returns the caller's prompts, hydrated, newest first.
func (s *PromptService) List(userID uint) ([]*PromptView, error) {
	var prompts []models.Prompt
	err := s.preloaded().
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&prompts).Error
	if err != nil {
		return nil, err
	}

	views := make([]*PromptView, 0, len(prompts))
	for i := range prompts {
		views = append(views, hydratePrompt(&prompts[i]))
	}
	return views, nil
}

// Get returns one hydrated prompt. A prompt that does not exist and a prompt
// owned by someone else are deliberately indistinguishable: both report
// ErrPromptNotFound.
func (s *PromptService) Get(userID, promptID uint) (*PromptView, error) {
	return s.fetchHydrated(userID, promptID)
}

// Create inserts the prompt row, then reconciles tags and variables against
// the desired state. The prompt insert is the only fatal step; each tag and
// each variable is best-effort on its own, recorded in the report when
// skipped. There is no enclosing transaction, so a failure partway leaves
// the completed writes committed.
func (s *PromptService) Create(userID uint, in PromptInput) (*PromptView, *WriteReport, error) {
	prompt := models.Prompt{
		UserID:     userID,
		Title:      in.Title,
		PromptText: in.Text,
	}
	if err := s.db.Create(&prompt).Error; err != nil {
		return nil, nil, &WriteError{Phase: "could not create prompt", Err: err}
	}

	report := &WriteReport{}
	s.applyTags(prompt.ID, in.TagNames, report)
	s.applyVariables(prompt.ID, in.Variables, report)

	return s.rehydrate(userID, &prompt, report)
}

// Update rewrites the prompt row, then destroys and recreates its tag links
// and variable set from the new desired state. The deletions are fatal:
// relinking on top of stale rows would corrupt the replacement.
func (s *PromptService) Update(userID, promptID uint, in PromptInput) (*PromptView, *WriteReport, error) {
	var prompt models.Prompt
	err := s.db.Where("id = ? AND user_id = ?", promptID, userID).First(&prompt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrPromptNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	updates := map[string]interface{}{
		"title":       in.Title,
		"prompt_text": in.Text,
	}
	if err := s.db.Model(&prompt).Updates(updates).Error; err != nil {
		return nil, nil, &WriteError{Phase: "could not update prompt", Err: err}
	}

	if err := s.db.Where("prompt_id = ?", promptID).Delete(&models.PromptTag{}).Error; err != nil {
		return nil, nil, &WriteError{Phase: "could not clear prompt tags", Err: err}
	}

	if err := s.deleteVariables(promptID); err != nil {
		return nil, nil, err
	}

	report := &WriteReport{}
	s.applyTags(promptID, in.TagNames, report)
	s.applyVariables(promptID, in.Variables, report)

	return s.rehydrate(userID, &prompt, report)
}

// Delete removes a prompt and everything hanging off it, child rows first so
// no step ever violates a foreign key: option rows, variable rows, tag link
// rows, then the prompt itself. Tags stay; their namespace is shared.
func (s *PromptService) Delete(userID, promptID uint) error {
	var prompt models.Prompt
	err := s.db.Where("id = ? AND user_id = ?", promptID, userID).First(&prompt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPromptNotFound
	}
	if err != nil {
		return err
	}

	if err := s.deleteVariables(promptID); err != nil {
		return err
	}

	if err := s.db.Where("prompt_id = ?", promptID).Delete(&models.PromptTag{}).Error; err != nil {
		return &WriteError{Phase: "could not delete tag links", Err: err}
	}

	if err := s.db.Where("user_id = ?", userID).Delete(&models.Prompt{}, promptID).Error; err != nil {
		return &WriteError{Phase: "could not delete prompt", Err: err}
	}

	return nil
}

// Render substitutes the supplied values into the stored template, walking
// variables in their persisted order. Variables absent from values render as
// empty per the chosen mode.
func (s *PromptService) Render(userID, promptID uint, values map[string]string, mode placeholder.Mode) (string, error) {
	view, err := s.fetchHydrated(userID, promptID)
	if err != nil {
		return "", err
	}

	ordered := make([]placeholder.Value, 0, len(view.PlaceholderVariables))
	for _, v := range view.PlaceholderVariables {
		ordered = append(ordered, placeholder.Value{Name: v.Name, Value: values[v.Name]})
	}
	return placeholder.Render(view.PromptText, ordered, mode), nil
}

// applyTags links the prompt to each named tag, creating tags that do not
// exist yet. Names are deduplicated by exact match. Each tag's
// find-create-link sequence stands alone: a failure skips that tag, gets
// logged and recorded, and never aborts the operation.
func (s *PromptService) applyTags(promptID uint, names []string, report *WriteReport) {
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		var tag models.Tag
		err := s.db.Where("name = ?", name).First(&tag).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tag = models.Tag{Name: name}
			if err := s.db.Create(&tag).Error; err != nil {
				s.skipTag(report, name, "create failed", err)
				continue
			}
			invalidateTagCache(s.rdb)
		} else if err != nil {
			s.skipTag(report, name, "lookup failed", err)
			continue
		}

		link := models.PromptTag{PromptID: promptID, TagID: tag.ID}
		if err := s.db.Create(&link).Error; err != nil {
			s.skipTag(report, name, "link failed", err)
		}
	}
}

// applyVariables inserts the ordered variable list, stamping each row with
// its position so hydration can restore the order. A failed variable insert
// skips that variable's options and moves on; a failed option batch is
// recorded but the variable row stays.
func (s *PromptService) applyVariables(promptID uint, vars []placeholder.Variable, report *WriteReport) {
	for i, v := range vars {
		row := models.PlaceholderVariable{
			PromptID:   promptID,
			Name:       v.Name,
			ValueType:  string(v.Type),
			OrderIndex: i,
		}
		if err := s.db.Create(&row).Error; err != nil {
			s.skipVariable(report, v.Name, "insert failed", err)
			continue
		}

		// Options staged on a text variable are dropped here, at persistence
		// time; the in-memory model keeps them so type switches are lossless.
		if v.Type != placeholder.TypeOption || len(v.Options) == 0 {
			continue
		}

		options := make([]models.PlaceholderOption, 0, len(v.Options))
		for j, value := range v.Options {
			options = append(options, models.PlaceholderOption{
				PlaceholderVariableID: row.ID,
				OptionValue:           value,
				OrderIndex:            j,
			})
		}
		if err := s.db.Create(&options).Error; err != nil {
			s.skipVariable(report, v.Name, "options insert failed", err)
		}
	}
}

// deleteVariables removes a prompt's option rows and then its variable rows.
// Both deletions are fatal: a partial removal would leave orphans that the
// next reconciliation cannot account for.
func (s *PromptService) deleteVariables(promptID uint) error {
	var ids []uint
	err := s.db.Model(&models.PlaceholderVariable{}).
		Where("prompt_id = ?", promptID).
		Pluck("id", &ids).Error
	if err != nil {
		return &WriteError{Phase: "could not load existing variables", Err: err}
	}
	if len(ids) == 0 {
		return nil
	}

	err = s.db.Where("placeholder_variable_id IN ?", ids).Delete(&models.PlaceholderOption{}).Error
	if err != nil {
		return &WriteError{Phase: "could not delete variable options", Err: err}
	}

	err = s.db.Where("prompt_id = ?", promptID).Delete(&models.PlaceholderVariable{}).Error
	if err != nil {
		return &WriteError{Phase: "could not delete variables", Err: err}
	}

	return nil
}

// rehydrate re-reads the authoritative state after a write. A failed re-read
// does not fail the operation: the caller gets the bare prompt row with
// empty tags and variables and Refetched=false.
func (s *PromptService) rehydrate(userID uint, prompt *models.Prompt, report *WriteReport) (*PromptView, *WriteReport, error) {
	view, err := s.fetchHydrated(userID, prompt.ID)
	if err != nil {
		s.log.Warn("re-read after prompt write failed, returning bare row",
			zap.Uint("prompt_id", prompt.ID),
			zap.Error(err))
		fallback := hydratePrompt(prompt)
		fallback.Tags = []TagView{}
		fallback.PlaceholderVariables = []VariableView{}
		return fallback, report, nil
	}
	report.Refetched = true
	return view, report, nil
}

func (s *PromptService) fetchHydrated(userID, promptID uint) (*PromptView, error) {
	var prompt models.Prompt
	err := s.preloaded().
		Where("id = ? AND user_id = ?", promptID, userID).
		First(&prompt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPromptNotFound
	}
	if err != nil {
		return nil, err
	}
	return hydratePrompt(&prompt), nil
}

func (s *PromptService) preloaded() *gorm.DB {
	return s.db.
		Preload("Tags").
		Preload("PlaceholderVariables.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index asc")
		})
}

func (s *PromptService) skipTag(report *WriteReport, name, reason string, err error) {
	s.log.Warn("skipping tag during prompt write",
		zap.String("tag", name),
		zap.String("reason", reason),
		zap.Error(err))
	report.SkippedTags = append(report.SkippedTags, SkippedItem{Name: name, Reason: reason})
}

func (s *PromptService) skipVariable(report *WriteReport, name, reason string, err error) {
	s.log.Warn("skipping placeholder variable during prompt write",
		zap.String("variable", name),
		zap.String("reason", reason),
		zap.Error(err))
	report.SkippedVariables = append(report.SkippedVariables, SkippedItem{Name: name, Reason: reason})
}
