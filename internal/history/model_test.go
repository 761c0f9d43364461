package history

import (
	"testing"

	"grievlog/internal/sheet"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		status string
		want   Classification
	}{
		{"", Unseen},
		{"   ", Unseen},
		{"Seen ✅", Seen},
		{"SEEN", Seen},
		{"seen by hr", Seen},
		{"✅", Seen},
		{"pending", Unseen},
		{"escalated", Unseen},
	}
	for _, tt := range tests {
		if got := Classify(tt.status); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.status, got, tt.want)
		}
		// purity: same input, same answer
		if got := Classify(tt.status); got != tt.want {
			t.Errorf("Classify(%q) not stable", tt.status)
		}
	}
}

func TestReplaceIsExactAndOrdered(t *testing.T) {
	rows := []sheet.Record{
		{Timestamp: "2024-03-01T09:00:00", Grievance: "a"},
		{Timestamp: "2024-03-01T10:00:00", Grievance: "b", Status: "Seen ✅"},
		{Timestamp: "2024-03-02T08:00:00", Grievance: "c"},
	}
	var m Model
	m.Replace(rows)
	got := m.Rows()
	if len(got) != len(rows) {
		t.Fatalf("len = %d, want %d", len(got), len(rows))
	}
	for i := range rows {
		if got[i] != rows[i] {
			t.Fatalf("row %d = %+v, want %+v", i, got[i], rows[i])
		}
	}
}

func TestReplaceCopiesInput(t *testing.T) {
	rows := []sheet.Record{{Grievance: "original"}}
	var m Model
	m.Replace(rows)
	rows[0].Grievance = "mutated"
	if m.Rows()[0].Grievance != "original" {
		t.Fatalf("model aliased caller slice")
	}
}

func TestReplaceWithEmptySet(t *testing.T) {
	var m Model
	m.Replace([]sheet.Record{{Grievance: "a"}})
	m.Replace(nil)
	if m.Len() != 0 {
		t.Fatalf("empty replace should clear the view, len = %d", m.Len())
	}
}
