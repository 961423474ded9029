package formtools

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	formsapi "google.golang.org/api/forms/v1"

	"github.com/arreyder/forms-mcp/internal/forms"
)

type apiCall struct {
	Method string
	FormID string
	Body   any
	Page   forms.PageParams
	ID     string
}

// fakeAPI records every call and replies with canned values.
type fakeAPI struct {
	mu    sync.Mutex
	calls []apiCall

	form      *formsapi.Form
	created   *formsapi.Form
	batch     *formsapi.BatchUpdateFormResponse
	responses *formsapi.ListFormResponsesResponse
	response  *formsapi.FormResponse

	getErr   error
	writeErr error
	panicMsg string
}

var _ forms.API = (*fakeAPI)(nil)

func (f *fakeAPI) record(call apiCall) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeAPI) Create(_ context.Context, form *formsapi.Form) (*formsapi.Form, error) {
	f.record(apiCall{Method: "create", Body: form})
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	return f.created, nil
}

func (f *fakeAPI) Get(_ context.Context, formID string) (*formsapi.Form, error) {
	f.record(apiCall{Method: "get", FormID: formID})
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.form, nil
}

func (f *fakeAPI) ListResponses(_ context.Context, formID string, page forms.PageParams) (*formsapi.ListFormResponsesResponse, error) {
	f.record(apiCall{Method: "responses.list", FormID: formID, Page: page})
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.responses, nil
}

func (f *fakeAPI) GetResponse(_ context.Context, formID, responseID string) (*formsapi.FormResponse, error) {
	f.record(apiCall{Method: "responses.get", FormID: formID, ID: responseID})
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.response, nil
}

func (f *fakeAPI) BatchUpdate(_ context.Context, formID string, req *formsapi.BatchUpdateFormRequest) (*formsapi.BatchUpdateFormResponse, error) {
	f.record(apiCall{Method: "batchUpdate", FormID: formID, Body: req})
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	if f.batch == nil {
		return &formsapi.BatchUpdateFormResponse{}, nil
	}
	return f.batch, nil
}

func (f *fakeAPI) Calls() []apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]apiCall(nil), f.calls...)
}

// bodyJSON renders the recorded request body as the wire JSON.
func bodyJSON(t *testing.T, call apiCall) string {
	t.Helper()
	data, err := json.Marshal(call.Body)
	require.NoError(t, err)
	return string(data)
}

func newTestDispatcher(t *testing.T, api *fakeAPI) *Dispatcher {
	t.Helper()
	d, err := NewDispatcher(api, nil)
	require.NoError(t, err)
	return d
}
