package formtools

import (
	"context"

	formsapi "google.golang.org/api/forms/v1"

	"github.com/arreyder/forms-mcp/internal/forms"
)

// New items always go to the front of the form.
const insertIndex = 0

type addQuestionResult struct {
	Success       bool     `json:"success"`
	Message       string   `json:"message"`
	QuestionTitle string   `json:"questionTitle"`
	Options       []string `json:"options,omitempty"`
	Required      bool     `json:"required"`
	ItemID        string   `json:"itemId,omitempty"`
	QuestionID    string   `json:"questionId,omitempty"`
}

type addScaleResult struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	QuestionTitle string `json:"questionTitle"`
	Low           int64  `json:"low"`
	High          int64  `json:"high"`
	LowLabel      string `json:"lowLabel"`
	HighLabel     string `json:"highLabel"`
	Required      bool   `json:"required"`
	ItemID        string `json:"itemId,omitempty"`
	QuestionID    string `json:"questionId,omitempty"`
}

type addContentResult struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ItemID      string `json:"itemId,omitempty"`
}

// createItem inserts item at the front of the form in a single batch.
func (h *Handlers) createItem(ctx context.Context, formID string, item *formsapi.Item) (string, string, error) {
	resp, err := h.api.BatchUpdate(ctx, formID, forms.Batch(forms.CreateItem(item, insertIndex)))
	if err != nil {
		return "", "", err
	}
	itemID, questionIDs := forms.CreatedIDs(resp)
	questionID := ""
	if len(questionIDs) > 0 {
		questionID = questionIDs[0]
	}
	return itemID, questionID, nil
}

func (h *Handlers) addTextQuestion(ctx context.Context, raw map[string]any) (any, error) {
	var args questionArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	item := forms.QuestionItem(args.QuestionTitle, args.Required, forms.TextQuestion(args.Paragraph))
	itemID, questionID, err := h.createItem(ctx, args.FormID, item)
	if err != nil {
		return nil, remoteErr(ctx, "add text question", err)
	}
	return addQuestionResult{
		Success:       true,
		Message:       "Text question added successfully",
		QuestionTitle: args.QuestionTitle,
		Required:      args.Required,
		ItemID:        itemID,
		QuestionID:    questionID,
	}, nil
}

func (h *Handlers) addMultipleChoiceQuestion(ctx context.Context, raw map[string]any) (any, error) {
	return h.addChoiceQuestion(ctx, raw, forms.ChoiceRadio, "multiple choice question", "Multiple choice question added successfully")
}

func (h *Handlers) addCheckboxQuestion(ctx context.Context, raw map[string]any) (any, error) {
	return h.addChoiceQuestion(ctx, raw, forms.ChoiceCheckbox, "checkbox question", "Checkbox question added successfully")
}

func (h *Handlers) addDropdownQuestion(ctx context.Context, raw map[string]any) (any, error) {
	return h.addChoiceQuestion(ctx, raw, forms.ChoiceDropDown, "dropdown question", "Dropdown question added successfully")
}

func (h *Handlers) addChoiceQuestion(ctx context.Context, raw map[string]any, kind, noun, message string) (any, error) {
	var args questionArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if len(args.Options) == 0 {
		return nil, &ValidationError{
			Field:    "options",
			Message:  "invalid argument \"options\": at least one option is required",
			Expected: "non-empty array of strings",
			Received: "array(len=0)",
			Hint:     "Provide the choices as an array of strings.",
		}
	}
	item := forms.QuestionItem(args.QuestionTitle, args.Required, forms.ChoiceQuestion(kind, args.Options))
	itemID, questionID, err := h.createItem(ctx, args.FormID, item)
	if err != nil {
		return nil, remoteErr(ctx, "add "+noun, err)
	}
	return addQuestionResult{
		Success:       true,
		Message:       message,
		QuestionTitle: args.QuestionTitle,
		Options:       args.Options,
		Required:      args.Required,
		ItemID:        itemID,
		QuestionID:    questionID,
	}, nil
}

func (h *Handlers) addScaleQuestion(ctx context.Context, raw map[string]any) (any, error) {
	var args scaleArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	scale := forms.ScaleQuestion(args.Low, args.High, args.LowLabel, args.HighLabel)
	item := forms.QuestionItem(args.QuestionTitle, args.Required, scale)
	itemID, questionID, err := h.createItem(ctx, args.FormID, item)
	if err != nil {
		return nil, remoteErr(ctx, "add scale question", err)
	}
	return addScaleResult{
		Success:       true,
		Message:       "Scale question added successfully",
		QuestionTitle: args.QuestionTitle,
		Low:           args.Low,
		High:          args.High,
		LowLabel:      args.LowLabel,
		HighLabel:     args.HighLabel,
		Required:      args.Required,
		ItemID:        itemID,
		QuestionID:    questionID,
	}, nil
}

func (h *Handlers) addTextItem(ctx context.Context, raw map[string]any) (any, error) {
	var args contentItemArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	itemID, _, err := h.createItem(ctx, args.FormID, forms.TextItem(args.Title, args.Description))
	if err != nil {
		return nil, remoteErr(ctx, "add text item", err)
	}
	return addContentResult{
		Success:     true,
		Message:     "Text item added successfully",
		Title:       args.Title,
		Description: args.Description,
		ItemID:      itemID,
	}, nil
}

func (h *Handlers) addSection(ctx context.Context, raw map[string]any) (any, error) {
	var args contentItemArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	itemID, _, err := h.createItem(ctx, args.FormID, forms.PageBreakItem(args.Title, args.Description))
	if err != nil {
		return nil, remoteErr(ctx, "add section", err)
	}
	return addContentResult{
		Success:     true,
		Message:     "Section added successfully",
		Title:       args.Title,
		Description: args.Description,
		ItemID:      itemID,
	}, nil
}
