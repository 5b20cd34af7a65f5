package tools

import (
	"encoding/json"
	"strings"
	"testing"
)

const globalActivityJSON = `{"id":355,"name":"Code Review","project":null,` +
	`"number":null,"visible":true,"billable":true,"color":null,"comment":""}`

const boundActivityJSON = `{"id":356,"name":"Deployment","project":5,` +
	`"number":null,"visible":true,"billable":false,"color":"#FF5733","comment":"ops only"}`

func TestListActivities_TermQuery(t *testing.T) {
	fake := &fakeClient{raw: json.RawMessage(`[]`)}
	tool := findTool(t, testDeps(fake), "list_activities")

	res := callTool(t, tool, map[string]any{"project": 5, "term": "review"})
	if res.IsError {
		t.Fatalf("unexpected error: %s", resultText(t, res))
	}
	if fake.path != "activities" {
		t.Errorf("path = %q, want activities", fake.path)
	}
	if got := fake.query.Get("term"); got != "review" {
		t.Errorf("term = %q, want review", got)
	}
	if got := fake.query.Get("project"); got != "5" {
		t.Errorf("project = %q, want 5", got)
	}
}

func TestListActivities_RejectsLongTerm(t *testing.T) {
	fake := &fakeClient{}
	tool := findTool(t, testDeps(fake), "list_activities")

	res := callTool(t, tool, map[string]any{"term": strings.Repeat("q", 201)})
	if !res.IsError {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(resultText(t, res), "term") {
		t.Errorf("error should name term: %s", resultText(t, res))
	}
	if fake.calls != 0 {
		t.Error("validation failure still reached upstream")
	}
}

func TestGetActivity_MarkdownGlobalVsBound(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"global", globalActivityJSON, "**Project ID:** Global"},
		{"bound", boundActivityJSON, "**Project ID:** 5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeClient{raw: json.RawMessage(tt.raw)}
			tool := findTool(t, testDeps(fake), "get_activity")

			res := callTool(t, tool, map[string]any{"id": 355, "format": "markdown"})
			if !strings.Contains(resultText(t, res), tt.want) {
				t.Errorf("missing %q:\n%s", tt.want, resultText(t, res))
			}
		})
	}
}

func TestCreateActivity_GlobalOmitsProject(t *testing.T) {
	fake := &fakeClient{raw: json.RawMessage(globalActivityJSON)}
	tool := findTool(t, testDeps(fake), "create_activity")

	res := callTool(t, tool, map[string]any{"name": "Code Review"})
	if res.IsError {
		t.Fatalf("unexpected error: %s", resultText(t, res))
	}
	if fake.method != "POST" || fake.path != "activities" {
		t.Errorf("request = %s %s, want POST activities", fake.method, fake.path)
	}

	body := bodyMap(t, fake)
	if _, ok := body["project"]; ok {
		t.Error("global activity should not send a project field")
	}
	if body["visible"] != true || body["billable"] != true {
		t.Errorf("visible/billable should default to true, body = %v", body)
	}
	if !strings.HasPrefix(resultText(t, res), "✓ Activity created successfully!") {
		t.Errorf("missing confirmation:\n%s", resultText(t, res))
	}
}

func TestCreateActivity_BoundSendsProject(t *testing.T) {
	fake := &fakeClient{raw: json.RawMessage(boundActivityJSON)}
	tool := findTool(t, testDeps(fake), "create_activity")

	callTool(t, tool, map[string]any{"name": "Deployment", "project": 5, "color": "#FF5733"})

	body := bodyMap(t, fake)
	if body["project"] != 5 {
		t.Errorf("project = %v, want 5", body["project"])
	}
	if body["color"] != "#FF5733" {
		t.Errorf("color = %v, want #FF5733", body["color"])
	}
}

func TestUpdateActivity_PartialBody(t *testing.T) {
	fake := &fakeClient{raw: json.RawMessage(boundActivityJSON)}
	tool := findTool(t, testDeps(fake), "update_activity")

	res := callTool(t, tool, map[string]any{"id": 356, "name": "Release", "visible": false})
	if res.IsError {
		t.Fatalf("unexpected error: %s", resultText(t, res))
	}
	if fake.method != "PATCH" || fake.path != "activities/356" {
		t.Errorf("request = %s %s, want PATCH activities/356", fake.method, fake.path)
	}

	body := bodyMap(t, fake)
	if body["name"] != "Release" || body["visible"] != false {
		t.Errorf("body = %v", body)
	}
	for _, absent := range []string{"billable", "color"} {
		if _, ok := body[absent]; ok {
			t.Errorf("untouched field %q should not be sent", absent)
		}
	}
}
