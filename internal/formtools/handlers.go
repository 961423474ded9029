package formtools

import (
	"context"

	formsapi "google.golang.org/api/forms/v1"

	"github.com/arreyder/forms-mcp/internal/forms"
)

// Handlers implements one operation per tool on top of a Forms API client.
type Handlers struct {
	api forms.API
}

func NewHandlers(api forms.API) *Handlers {
	return &Handlers{api: api}
}

type createFormResult struct {
	FormID       string `json:"formId"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ResponderURI string `json:"responderUri"`
}

func (h *Handlers) createForm(ctx context.Context, raw map[string]any) (any, error) {
	var args createFormArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	created, err := h.api.Create(ctx, forms.NewForm(args.Title, args.Description))
	if err != nil {
		return nil, remoteErr(ctx, "create form", err)
	}
	if created == nil {
		created = &formsapi.Form{}
	}
	return createFormResult{
		FormID:       created.FormId,
		Title:        args.Title,
		Description:  args.Description,
		ResponderURI: forms.ResponderURI(created.FormId),
	}, nil
}

func (h *Handlers) getForm(ctx context.Context, raw map[string]any) (any, error) {
	var args formArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	form, err := h.api.Get(ctx, args.FormID)
	if err != nil {
		return nil, remoteErr(ctx, "get form", err)
	}
	return form, nil
}

func (h *Handlers) getFormResponses(ctx context.Context, raw map[string]any) (any, error) {
	var args responsesArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	list, err := h.api.ListResponses(ctx, args.FormID, forms.PageParams{
		Size:  args.PageSize,
		Token: args.PageToken,
	})
	if err != nil {
		return nil, remoteErr(ctx, "get form responses", err)
	}
	return list, nil
}

func (h *Handlers) getFormResponse(ctx context.Context, raw map[string]any) (any, error) {
	var args responseArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	resp, err := h.api.GetResponse(ctx, args.FormID, args.ResponseID)
	if err != nil {
		return nil, remoteErr(ctx, "get form response", err)
	}
	return resp, nil
}
