package forms

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	formsapi "google.golang.org/api/forms/v1"
)

func marshal(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestNewFormOmitsEmptyDescription(t *testing.T) {
	assert.JSONEq(t, `{"info":{"title":"T","documentTitle":"T"}}`, marshal(t, NewForm("T", "")))
	assert.JSONEq(t, `{"info":{"title":"T","documentTitle":"T","description":"D"}}`, marshal(t, NewForm("T", "D")))
}

func TestCreateItemSendsIndexZero(t *testing.T) {
	req := Batch(CreateItem(QuestionItem("Q", false, ChoiceQuestion(ChoiceRadio, []string{"a", "b"})), 0))
	assert.JSONEq(t, `{
		"requests": [{
			"createItem": {
				"item": {
					"title": "Q",
					"questionItem": {"question": {
						"required": false,
						"choiceQuestion": {"type": "RADIO", "options": [{"value": "a"}, {"value": "b"}]}
					}}
				},
				"location": {"index": 0}
			}
		}]
	}`, marshal(t, req))
}

func TestTextQuestionIsEmptyObject(t *testing.T) {
	item := QuestionItem("Name", true, TextQuestion(false))
	assert.JSONEq(t, `{"title":"Name","questionItem":{"question":{"required":true,"textQuestion":{}}}}`, marshal(t, item))
}

func TestScaleQuestionKeepsZeroLow(t *testing.T) {
	q := ScaleQuestion(0, 5, "", "Great")
	assert.JSONEq(t, `{"scaleQuestion":{"low":0,"high":5,"highLabel":"Great"}}`, marshal(t, q))
}

func TestContentItems(t *testing.T) {
	assert.JSONEq(t, `{"title":"Intro","textItem":{}}`, marshal(t, TextItem("Intro", "")))
	assert.JSONEq(t, `{"title":"Part 2","description":"More","pageBreakItem":{}}`, marshal(t, PageBreakItem("Part 2", "More")))
}

func TestMoveAndDelete(t *testing.T) {
	assert.JSONEq(t, `{"moveItem":{"originalLocation":{"index":3},"newLocation":{"index":0}}}`, marshal(t, MoveItem(3, 0)))
	assert.JSONEq(t, `{"deleteItem":{"location":{"index":0}}}`, marshal(t, DeleteItem(0)))
}

func TestUpdateMasksJoin(t *testing.T) {
	info := UpdateFormInfo(&formsapi.Info{Title: "New"}, []string{MaskTitle})
	assert.JSONEq(t, `{"updateFormInfo":{"info":{"title":"New"},"updateMask":"title"}}`, marshal(t, info))

	item := UpdateItem(&formsapi.Item{ItemId: "i1", Title: "T"}, 2, []string{MaskTitle, MaskDescription})
	assert.Equal(t, "title,description", item.UpdateItem.UpdateMask)
	assert.Equal(t, int64(2), item.UpdateItem.Location.Index)
}

func TestResponderURI(t *testing.T) {
	assert.Equal(t, "https://docs.google.com/forms/d/X/viewform", ResponderURI("X"))
}

func TestCreatedIDs(t *testing.T) {
	itemID, questionIDs := CreatedIDs(&formsapi.BatchUpdateFormResponse{
		Replies: []*formsapi.Response{{CreateItem: &formsapi.CreateItemResponse{ItemId: "it", QuestionId: []string{"q1"}}}},
	})
	assert.Equal(t, "it", itemID)
	assert.Equal(t, []string{"q1"}, questionIDs)

	itemID, questionIDs = CreatedIDs(nil)
	assert.Empty(t, itemID)
	assert.Nil(t, questionIDs)
}

func TestCredentialsValidate(t *testing.T) {
	err := Credentials{ClientID: "id"}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client secret")
	assert.Contains(t, err.Error(), "refresh token")
	assert.NotContains(t, err.Error(), "client id")

	assert.NoError(t, Credentials{ClientID: "id", ClientSecret: "s", RefreshToken: "r"}.Validate())
}
