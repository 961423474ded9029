package forms

import (
	"fmt"
	"strings"

	formsapi "google.golang.org/api/forms/v1"
)

// Choice question discriminators.
const (
	ChoiceRadio    = "RADIO"
	ChoiceCheckbox = "CHECKBOX"
	ChoiceDropDown = "DROP_DOWN"
)

// Update mask paths.
const (
	MaskTitle       = "title"
	MaskDescription = "description"
	MaskRequired    = "questionItem.question.required"
)

// ResponderURI is the public fill-in URL of a form.
func ResponderURI(formID string) string {
	return fmt.Sprintf("https://docs.google.com/forms/d/%s/viewform", formID)
}

// NewForm builds the create body. documentTitle mirrors the title so the
// Drive file name matches; description is only sent when non-empty.
func NewForm(title, description string) *formsapi.Form {
	info := &formsapi.Info{
		Title:         title,
		DocumentTitle: title,
	}
	if description != "" {
		info.Description = description
	}
	return &formsapi.Form{Info: info}
}

// At addresses a position in the item list. The index is always sent, so
// position 0 (the front) survives omitempty.
func At(index int64) *formsapi.Location {
	return &formsapi.Location{Index: index, ForceSendFields: []string{"Index"}}
}

// Batch wraps a single edit. Edits are never combined into one batch.
func Batch(req *formsapi.Request) *formsapi.BatchUpdateFormRequest {
	return &formsapi.BatchUpdateFormRequest{Requests: []*formsapi.Request{req}}
}

func CreateItem(item *formsapi.Item, index int64) *formsapi.Request {
	return &formsapi.Request{CreateItem: &formsapi.CreateItemRequest{
		Item:     item,
		Location: At(index),
	}}
}

func DeleteItem(index int64) *formsapi.Request {
	return &formsapi.Request{DeleteItem: &formsapi.DeleteItemRequest{Location: At(index)}}
}

func MoveItem(from, to int64) *formsapi.Request {
	return &formsapi.Request{MoveItem: &formsapi.MoveItemRequest{
		OriginalLocation: At(from),
		NewLocation:      At(to),
	}}
}

// UpdateItem patches the item at index. mask must name exactly the fields set on item.
func UpdateItem(item *formsapi.Item, index int64, mask []string) *formsapi.Request {
	return &formsapi.Request{UpdateItem: &formsapi.UpdateItemRequest{
		Item:       item,
		Location:   At(index),
		UpdateMask: strings.Join(mask, ","),
	}}
}

// UpdateFormInfo patches form-level info. mask must name exactly the fields set on info.
func UpdateFormInfo(info *formsapi.Info, mask []string) *formsapi.Request {
	return &formsapi.Request{UpdateFormInfo: &formsapi.UpdateFormInfoRequest{
		Info:       info,
		UpdateMask: strings.Join(mask, ","),
	}}
}

// QuestionItem wraps q in an item. required is always sent.
func QuestionItem(title string, required bool, q *formsapi.Question) *formsapi.Item {
	q.Required = required
	q.ForceSendFields = append(q.ForceSendFields, "Required")
	return &formsapi.Item{
		Title:        title,
		QuestionItem: &formsapi.QuestionItem{Question: q},
	}
}

func TextQuestion(paragraph bool) *formsapi.Question {
	return &formsapi.Question{TextQuestion: &formsapi.TextQuestion{Paragraph: paragraph}}
}

func ChoiceQuestion(kind string, options []string) *formsapi.Question {
	choices := make([]*formsapi.Option, 0, len(options))
	for _, value := range options {
		choices = append(choices, &formsapi.Option{Value: value})
	}
	return &formsapi.Question{ChoiceQuestion: &formsapi.ChoiceQuestion{
		Type:    kind,
		Options: choices,
	}}
}

// ScaleQuestion builds a linear scale. Bounds are always sent (0 is a common
// low end); labels only when non-empty.
func ScaleQuestion(low, high int64, lowLabel, highLabel string) *formsapi.Question {
	scale := &formsapi.ScaleQuestion{
		Low:             low,
		High:            high,
		ForceSendFields: []string{"Low", "High"},
	}
	if lowLabel != "" {
		scale.LowLabel = lowLabel
	}
	if highLabel != "" {
		scale.HighLabel = highLabel
	}
	return &formsapi.Question{ScaleQuestion: scale}
}

// TextItem is a static title/description block.
func TextItem(title, description string) *formsapi.Item {
	return &formsapi.Item{
		Title:       title,
		Description: description,
		TextItem:    &formsapi.TextItem{},
	}
}

// PageBreakItem starts a new section.
func PageBreakItem(title, description string) *formsapi.Item {
	return &formsapi.Item{
		Title:         title,
		Description:   description,
		PageBreakItem: &formsapi.PageBreakItem{},
	}
}

// CreatedIDs pulls the ids the API assigned to a created item out of a batch reply.
func CreatedIDs(resp *formsapi.BatchUpdateFormResponse) (itemID string, questionIDs []string) {
	if resp == nil {
		return "", nil
	}
	for _, reply := range resp.Replies {
		if reply == nil || reply.CreateItem == nil {
			continue
		}
		return reply.CreateItem.ItemId, reply.CreateItem.QuestionId
	}
	return "", nil
}
