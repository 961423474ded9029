package formtools

import (
	"context"
	"fmt"

	formsapi "google.golang.org/api/forms/v1"

	"github.com/arreyder/forms-mcp/internal/forms"
)

const unchanged = "(unchanged)"

type updateFormInfoResult struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type deleteResult struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	DeletedIndex int64  `json:"deletedIndex"`
}

type updateQuestionResult struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	Index         int64  `json:"index"`
	QuestionTitle string `json:"questionTitle"`
	Description   string `json:"description"`
	// Required is a bool, or the unchanged marker when not supplied.
	Required any `json:"required"`
}

type moveResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	FromIndex int64  `json:"fromIndex"`
	ToIndex   int64  `json:"toIndex"`
}

func (h *Handlers) updateFormInfo(ctx context.Context, raw map[string]any) (any, error) {
	var args formInfoArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	info := &formsapi.Info{}
	var mask []string
	if args.Title != nil {
		info.Title = *args.Title
		mask = append(mask, forms.MaskTitle)
	}
	if args.Description != nil {
		info.Description = *args.Description
		if *args.Description == "" {
			info.ForceSendFields = append(info.ForceSendFields, "Description")
		}
		mask = append(mask, forms.MaskDescription)
	}
	if _, err := h.api.BatchUpdate(ctx, args.FormID, forms.Batch(forms.UpdateFormInfo(info, mask))); err != nil {
		return nil, remoteErr(ctx, "update form info", err)
	}
	return updateFormInfoResult{
		Success:     true,
		Message:     "Form info updated successfully",
		Title:       valueOr(args.Title, unchanged),
		Description: valueOr(args.Description, unchanged),
	}, nil
}

func (h *Handlers) deleteQuestion(ctx context.Context, raw map[string]any) (any, error) {
	var args indexArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if _, err := h.api.BatchUpdate(ctx, args.FormID, forms.Batch(forms.DeleteItem(args.Index))); err != nil {
		return nil, remoteErr(ctx, "delete question", err)
	}
	return deleteResult{
		Success:      true,
		Message:      "Question deleted successfully",
		DeletedIndex: args.Index,
	}, nil
}

// updateQuestion resolves index to an item with a read, then patches only
// the supplied fields. The item at index may change between the two calls.
func (h *Handlers) updateQuestion(ctx context.Context, raw map[string]any) (any, error) {
	var args updateQuestionArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	form, err := h.api.Get(ctx, args.FormID)
	if err != nil {
		return nil, remoteErr(ctx, "update question", err)
	}
	var items []*formsapi.Item
	if form != nil {
		items = form.Items
	}
	count := int64(len(items))
	if args.Index < 0 || args.Index >= count {
		return nil, &ValidationError{
			Field:    "index",
			Message:  fmt.Sprintf("Invalid index: %d. Form has %d items.", args.Index, count),
			Expected: fmt.Sprintf("0 <= index < %d", count),
			Received: fmt.Sprintf("%d", args.Index),
			Hint:     "Call get_form to see the current item order.",
		}
	}
	existing := items[args.Index]

	item := &formsapi.Item{ItemId: existing.ItemId}
	var mask []string
	if args.QuestionTitle != nil {
		item.Title = *args.QuestionTitle
		if item.Title == "" {
			item.ForceSendFields = append(item.ForceSendFields, "Title")
		}
		mask = append(mask, forms.MaskTitle)
	}
	if args.Description != nil {
		item.Description = *args.Description
		if item.Description == "" {
			item.ForceSendFields = append(item.ForceSendFields, "Description")
		}
		mask = append(mask, forms.MaskDescription)
	}
	if existing.QuestionItem != nil && existing.QuestionItem.Question != nil {
		question := &formsapi.Question{QuestionId: existing.QuestionItem.Question.QuestionId}
		if args.Required != nil {
			question.Required = *args.Required
			question.ForceSendFields = []string{"Required"}
			mask = append(mask, forms.MaskRequired)
		}
		item.QuestionItem = &formsapi.QuestionItem{Question: question}
	} else if args.Required != nil {
		return nil, &ValidationError{
			Field:    "required",
			Message:  fmt.Sprintf("invalid argument \"required\": item at index %d is not a question", args.Index),
			Expected: "question item",
			Received: "non-question item",
			Hint:     "Only questions can be marked required.",
		}
	}

	if _, err := h.api.BatchUpdate(ctx, args.FormID, forms.Batch(forms.UpdateItem(item, args.Index, mask))); err != nil {
		return nil, remoteErr(ctx, "update question", err)
	}

	var required any = unchanged
	if args.Required != nil {
		required = *args.Required
	}
	return updateQuestionResult{
		Success:       true,
		Message:       "Question updated successfully",
		Index:         args.Index,
		QuestionTitle: valueOr(args.QuestionTitle, unchanged),
		Description:   valueOr(args.Description, unchanged),
		Required:      required,
	}, nil
}

func (h *Handlers) moveQuestion(ctx context.Context, raw map[string]any) (any, error) {
	var args moveArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if _, err := h.api.BatchUpdate(ctx, args.FormID, forms.Batch(forms.MoveItem(args.FromIndex, args.ToIndex))); err != nil {
		return nil, remoteErr(ctx, "move question", err)
	}
	return moveResult{
		Success:   true,
		Message:   "Question moved successfully",
		FromIndex: args.FromIndex,
		ToIndex:   args.ToIndex,
	}, nil
}

func valueOr(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}
