package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/top-internal/topctl/internal/layout"
)

func TestLayoutListCarriesSystemFields(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/layouts/jobs", r.URL.Path)
		w.Write([]byte(`{
			"success": true,
			"data": [
				{"id":"lay_1","name":"Standard Job","isDefault":true,"fields":[
					{"key":"client","label":"Client","type":"client","required":true,"system":true,"order":0},
					{"key":"custom_budget_1700000000000","label":"Budget","type":"number","order":100}
				]}
			],
			"systemFields": [
				{"key":"client","label":"Client","type":"client","required":true,"system":true,"order":0},
				{"key":"tasktype","label":"Task Type","type":"tasktype","system":true,"order":1},
				{"key":"users","label":"Assigned Users","type":"users","system":true,"order":2}
			]
		}`))
	})

	layouts, system, err := c.Layouts(layout.KindJobs).List(context.Background())
	require.NoError(t, err)

	require.Len(t, layouts, 1)
	assert.True(t, layouts[0].IsDefault)
	assert.Len(t, layouts[0].Fields, 2)
	assert.Equal(t, layout.TypeClient, layouts[0].Fields[0].Type)

	require.Len(t, system, 3)
	for _, f := range system {
		assert.True(t, f.System)
	}
}

func TestLayoutCreateRequestShape(t *testing.T) {
	var body map[string]any
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/layouts/tasks", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &body))
		w.Write([]byte(`{"success":true,"data":{"id":"lay_9","name":"QA","isDefault":true,"fields":[]}}`))
	})

	fields := []layout.Field{{
		Key: "custom_severity_1700000000000", Label: "Severity", Type: layout.TypeSelect,
		Options: []string{"Low", "High"}, Order: 100,
	}}
	created, err := c.Layouts(layout.KindTasks).Create(context.Background(), "QA", fields, true)
	require.NoError(t, err)
	assert.Equal(t, "lay_9", created.ID)

	assert.Equal(t, "QA", body["name"])
	assert.Equal(t, true, body["isDefault"])
	custom, ok := body["customFields"].([]any)
	require.True(t, ok)
	require.Len(t, custom, 1)
	first := custom[0].(map[string]any)
	assert.Equal(t, "custom_severity_1700000000000", first["key"])
	// System fields are never part of the payload.
	for _, f := range custom {
		assert.NotEqual(t, true, f.(map[string]any)["system"])
	}
}

func TestLayoutUpdatePatchOmitsUnsetMembers(t *testing.T) {
	var body map[string]json.RawMessage
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/layouts/jobs/lay_1", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &body))
		w.Write([]byte(`{"success":true,"data":{"id":"lay_1","name":"Renamed","fields":[]}}`))
	})

	name := "Renamed"
	_, err := c.Layouts(layout.KindJobs).Update(context.Background(), "lay_1", LayoutPatch{Name: &name})
	require.NoError(t, err)

	assert.Contains(t, body, "name")
	assert.NotContains(t, body, "customFields")
	assert.NotContains(t, body, "isDefault")
}

func TestLayoutUpdateReplacesCustomFieldList(t *testing.T) {
	var body map[string]json.RawMessage
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &body))
		w.Write([]byte(`{"success":true,"data":{"id":"lay_1","name":"X","fields":[]}}`))
	})

	empty := []layout.Field{}
	_, err := c.Layouts(layout.KindJobs).Update(context.Background(), "lay_1", LayoutPatch{CustomFields: &empty})
	require.NoError(t, err)

	// An explicitly empty replacement list is sent, not omitted.
	assert.Equal(t, "[]", string(body["customFields"]))
}

func TestLayoutSetDefault(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/layouts/tasks/lay_2/default", r.URL.Path)
		w.Write([]byte(`{"success":true,"data":[
			{"id":"lay_1","name":"A","isDefault":false,"fields":[]},
			{"id":"lay_2","name":"B","isDefault":true,"fields":[]}
		]}`))
	})

	layouts, err := c.Layouts(layout.KindTasks).SetDefault(context.Background(), "lay_2")
	require.NoError(t, err)

	defaults := 0
	for _, l := range layouts {
		if l.IsDefault {
			defaults++
			assert.Equal(t, "lay_2", l.ID)
		}
	}
	assert.Equal(t, 1, defaults, "exactly one default after setDefault")
}

func TestLayoutDeleteNotFound(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"message":"layout not found"}`))
	})

	err := c.Layouts(layout.KindJobs).Delete(context.Background(), "missing")
	assert.True(t, IsStatus(err, http.StatusNotFound))
}
