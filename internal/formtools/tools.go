package formtools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolHandler runs a tool with already-validated JSON-like arguments and
// returns the payload to render.
type ToolHandler func(context.Context, map[string]any) (any, error)

// ToolDefinition combines a tool's schema with its handler.
type ToolDefinition struct {
	Tool    *mcp.Tool
	Handler ToolHandler
}

const (
	ToolCreateForm          = "create_form"
	ToolAddTextQuestion     = "add_text_question"
	ToolAddMultipleChoice   = "add_multiple_choice_question"
	ToolGetForm             = "get_form"
	ToolGetFormResponses    = "get_form_responses"
	ToolGetFormResponse     = "get_form_response"
	ToolAddCheckboxQuestion = "add_checkbox_question"
	ToolAddDropdownQuestion = "add_dropdown_question"
	ToolAddScaleQuestion    = "add_scale_question"
	ToolAddTextItem         = "add_text_item"
	ToolAddSection          = "add_section"
	ToolUpdateFormInfo      = "update_form_info"
	ToolDeleteQuestion      = "delete_question"
	ToolUpdateQuestion      = "update_question"
	ToolMoveQuestion        = "move_question"
)

const (
	maxResponsesPageSize = 5000
	newItemsAtFrontNote  = " New items are inserted at the top of the form (index 0)."
)

// ToolSchemas returns every tool definition in catalog order. h may be nil
// when only the schemas are needed.
func ToolSchemas(h *Handlers) []ToolDefinition {
	return []ToolDefinition{
		{
			Tool: &mcp.Tool{
				Name:        ToolCreateForm,
				Description: "Create a new Google Form. Returns the form ID and the public responder URL.",
				InputSchema: NewObjectSchema(map[string]any{
					"title":       prop("string", "Form title"),
					"description": prop("string", "Form description (optional)"),
				}, "title"),
			},
			Handler: h.createForm,
		},
		{
			Tool: &mcp.Tool{
				Name:        ToolAddTextQuestion,
				Description: "Add a text question to the form." + newItemsAtFrontNote,
				InputSchema: NewObjectSchema(map[string]any{
					"formId":        formIDProp(),
					"questionTitle": prop("string", "Question title"),
					"required":      requiredFlagProp(),
					"paragraph":     prop("boolean", "Accept multi-line answers (optional, default is false)"),
				}, "formId", "questionTitle"),
			},
			Handler: h.addTextQuestion,
		},
		{
			Tool: &mcp.Tool{
				Name:        ToolAddMultipleChoice,
				Description: "Add a multiple choice (single answer) question to the form." + newItemsAtFrontNote,
				InputSchema: NewObjectSchema(map[string]any{
					"formId":        formIDProp(),
					"questionTitle": prop("string", "Question title"),
					"options":       choiceOptionsProp(),
					"required":      requiredFlagProp(),
				}, "formId", "questionTitle", "options"),
			},
			Handler: h.addMultipleChoiceQuestion,
		},
		{
			Tool: &mcp.Tool{
				Name:        ToolGetForm,
				Description: "Get form details: info, settings and every item with its itemId and questionId, in order.",
				InputSchema: NewObjectSchema(map[string]any{
					"formId": formIDProp(),
				}, "formId"),
			},
			Handler: h.getForm,
		},
		{
			Tool: &mcp.Tool{
				Name:        ToolGetFormResponses,
				Description: "Get form responses. Use pageToken from a previous call to fetch the next page.",
				InputSchema: NewObjectSchema(map[string]any{
					"formId":    formIDProp(),
					"pageSize":  integerProp("Maximum responses to return (optional, server default when omitted)", intPtr(1), intPtr(maxResponsesPageSize)),
					"pageToken": prop("string", "nextPageToken from a previous call (optional)"),
				}, "formId"),
			},
			Handler: h.getFormResponses,
		},
		{
			Tool: &mcp.Tool{
				Name:        ToolGetFormResponse,
				Description: "Get a single form response by its response ID.",
				InputSchema: NewObjectSchema(map[string]any{
					"formId":     formIDProp(),
					"responseId": prop("string", "Response ID"),
				}, "formId", "responseId"),
			},
			Handler: h.getFormResponse,
		},
		{
			Tool: &mcp.Tool{
				Name:        ToolAddCheckboxQuestion,
				Description: "Add a checkbox (multi-select) question to the form." + newItemsAtFrontNote,
				InputSchema: NewObjectSchema(map[string]any{
					"formId":        formIDProp(),
					"questionTitle": prop("string", "Question title"),
					"options":       choiceOptionsProp(),
					"required":      requiredFlagProp(),
				}, "formId", "questionTitle", "options"),
			},
			Handler: h.addCheckboxQuestion,
		},
		{
			Tool: &mcp.Tool{
				Name:        ToolAddDropdownQuestion,
				Description: "Add a dropdown selection question to the form." + newItemsAtFrontNote,
				InputSchema: NewObjectSchema(map[string]any{
					"formId":        formIDProp(),
					"questionTitle": prop("string", "Question title"),
					"options":       choiceOptionsProp(),
					"required":      requiredFlagProp(),
				}, "formId", "questionTitle", "options"),
			},
			Handler: h.addDropdownQuestion,
		},
		{
			Tool: &mcp.Tool{
				Name:        ToolAddScaleQuestion,
				Description: "Add a linear scale question to the form." + newItemsAtFrontNote,
				InputSchema: NewObjectSchema(map[string]any{
					"formId":        formIDProp(),
					"questionTitle": prop("string", "Question title"),
					"low":           integerProp("Lowest value on the scale (typically 0 or 1)", nil, nil),
					"high":          integerProp("Highest value on the scale (typically 5 or 10)", nil, nil),
					"lowLabel":      prop("string", `Label for lowest value (optional, e.g., "Strongly disagree")`),
					"highLabel":     prop("string", `Label for highest value (optional, e.g., "Strongly agree")`),
					"required":      requiredFlagProp(),
				}, "formId", "questionTitle", "low", "high"),
			},
			Handler: h.addScaleQuestion,
		},
		{
			Tool: &mcp.Tool{
				Name:        ToolAddTextItem,
				Description: "Add a text item (static text/description block) to the form." + newItemsAtFrontNote,
				InputSchema: NewObjectSchema(map[string]any{
					"formId":      formIDProp(),
					"title":       prop("string", "Text item title"),
					"description": prop("string", "Text item description (optional)"),
				}, "formId", "title"),
			},
			Handler: h.addTextItem,
		},
		{
			Tool: &mcp.Tool{
				Name:        ToolAddSection,
				Description: "Add a section (page break) to the form for better organization." + newItemsAtFrontNote,
				InputSchema: NewObjectSchema(map[string]any{
					"formId":      formIDProp(),
					"title":       prop("string", "Section title"),
					"description": prop("string", "Section description (optional)"),
				}, "formId", "title"),
			},
			Handler: h.addSection,
		},
		{
			Tool: &mcp.Tool{
				Name:        ToolUpdateFormInfo,
				Description: "Update form title and/or description. At least one must be given; an empty description clears it.",
				InputSchema: NewObjectSchema(map[string]any{
					"formId":      formIDProp(),
					"title":       prop("string", "New form title (optional)"),
					"description": prop("string", "New form description (optional)"),
				}, "formId"),
			},
			Handler: h.updateFormInfo,
		},
		{
			Tool: &mcp.Tool{
				Name:        ToolDeleteQuestion,
				Description: "Delete an item from the form by its index. Indexes shift after every insert, delete or move; call get_form first.",
				InputSchema: NewObjectSchema(map[string]any{
					"formId": formIDProp(),
					"index":  integerProp("Index of the question to delete (0-based)", nil, nil),
				}, "formId", "index"),
			},
			Handler: h.deleteQuestion,
		},
		{
			Tool: &mcp.Tool{
				Name: ToolUpdateQuestion,
				Description: `Update an existing question in the form.

Reads the form to resolve the index to the item, then patches only the fields provided. At least one of questionTitle, description or required must be given.`,
				InputSchema: NewObjectSchema(map[string]any{
					"formId":        formIDProp(),
					"index":         integerProp("Index of the question to update (0-based)", nil, nil),
					"questionTitle": prop("string", "New question title (optional)"),
					"description":   prop("string", "New question description (optional)"),
					"required":      prop("boolean", "Whether required (optional)"),
				}, "formId", "index"),
			},
			Handler: h.updateQuestion,
		},
		{
			Tool: &mcp.Tool{
				Name:        ToolMoveQuestion,
				Description: "Move a question to a new position in the form.",
				InputSchema: NewObjectSchema(map[string]any{
					"formId":    formIDProp(),
					"fromIndex": integerProp("Current index of the question (0-based)", nil, nil),
					"toIndex":   integerProp("Target index for the question (0-based)", nil, nil),
				}, "formId", "fromIndex", "toIndex"),
			},
			Handler: h.moveQuestion,
		},
	}
}
