package task

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestMarshalRoundTrip(t *testing.T) {
	data := cascadeFixture()
	data.Tasks[1].DueDate = DatePtr(MustParseDate("2025-02-14"))
	data.Tasks[2].RepeatConfig = &RepeatConfig{Type: RepeatWeekdays}
	data.Tasks[2].Status = StatusDone
	data.Tasks[2].LastCompletedDate = DatePtr(MustParseDate("2025-01-02"))
	data.Projects[1].IsArchived = true
	data.Settings = Settings{Theme: ThemeLight, AccentColor: "#06b6d4"}

	encoded, err := Marshal(data)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	decoded, err := Unmarshal(encoded)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(decoded, data) {
		t.Fatalf("round trip mismatch:\nwant %+v\ngot  %+v", data, decoded)
	}

	reencoded, err := Marshal(decoded)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(encoded, reencoded) {
		t.Fatalf("expected stable encoding:\n%s\n%s", encoded, reencoded)
	}
}

func TestMarshalUsesPersistedFieldNames(t *testing.T) {
	data := cascadeFixture()
	encoded, err := MarshalIndent(data)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	for _, key := range []string{`"projectId"`, `"parentId": null`, `"sortOrder"`, `"isArchived"`, `"repeatConfig": null`, `"lastCompletedDate": null`, `"accentColor": "#2998ff"`, `"createdAt": "2025-01-02T09:30:00Z"`} {
		if !strings.Contains(string(encoded), key) {
			t.Errorf("expected encoded snapshot to contain %s", key)
		}
	}
	if !strings.HasPrefix(string(encoded), "{\n  \"projects\"") {
		t.Errorf("expected two-space indentation starting with projects, got %q", encoded[:20])
	}
}

func TestUnmarshalRequiresCollections(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"projects only", `{"projects": []}`},
		{"null tasks", `{"projects": [], "tasks": null, "tags": []}`},
		{"not an object", `[]`},
		{"not json", `hello`},
		{"wrong field type", `{"projects": {}, "tasks": [], "tags": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Unmarshal([]byte(tt.input)); !errors.Is(err, ErrMalformedSnapshot) {
				t.Fatalf("expected ErrMalformedSnapshot, got %v", err)
			}
		})
	}
}

func TestUnmarshalDefaultsSettingsAndTags(t *testing.T) {
	input := `{"projects": [], "tags": [], "tasks": [{"id": "a", "content": "x", "projectId": "p", "parentId": null, "status": "Todo", "priority": "Low", "dueDate": "2025-03-01", "createdAt": "2025-01-02T09:30:00Z", "sortOrder": 0}]}`

	data, err := Unmarshal([]byte(input))
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if data.Settings != DefaultSettings() {
		t.Fatalf("expected default settings, got %+v", data.Settings)
	}
	if data.Tasks[0].Tags == nil {
		t.Fatal("expected nil tags to become an empty list")
	}
	if data.Tasks[0].DueDate == nil || data.Tasks[0].DueDate.String() != "2025-03-01" {
		t.Fatalf("expected due date 2025-03-01, got %v", data.Tasks[0].DueDate)
	}
}

func TestUnmarshalRejectsBadDate(t *testing.T) {
	input := `{"projects": [], "tags": [], "tasks": [{"id": "a", "dueDate": "03/01/2025"}]}`
	if _, err := Unmarshal([]byte(input)); err == nil {
		t.Fatal("expected error for malformed due date")
	}
}
