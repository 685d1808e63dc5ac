package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantSame bool
	}{
		{
			name:     "same content produces same ID",
			content:  "test content",
			wantSame: true,
		},
		{
			name:     "empty string",
			content:  "",
			wantSame: true,
		},
		{
			name:     "long content",
			content:  "This is a much longer piece of content that should still hash consistently",
			wantSame: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if tt.wantSame && id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestCollections_Order(t *testing.T) {
	want := []Collection{
		CollectionSyllabus,
		CollectionAdmission,
		CollectionFoodMenu,
		CollectionBusDetails,
	}

	got := Collections()
	if len(got) != len(want) {
		t.Fatalf("Collections() returned %d collections, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Collections()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLeadRecord_IsEmpty(t *testing.T) {
	lead := &LeadRecord{SessionId: "s1"}
	if !lead.IsEmpty() {
		t.Error("lead with only a session id should be empty")
	}

	lead.Email = "someone@example.com"
	if lead.IsEmpty() {
		t.Error("lead with an email should not be empty")
	}
}

func TestLeadRecord_Merge(t *testing.T) {
	tests := []struct {
		name  string
		base  LeadRecord
		other LeadRecord
		want  LeadRecord
	}{
		{
			name:  "fills unset fields",
			base:  LeadRecord{Name: "John"},
			other: LeadRecord{RegistrationNumber: "12345", Phone: "9876543210"},
			want:  LeadRecord{Name: "John", RegistrationNumber: "12345", Phone: "9876543210"},
		},
		{
			name:  "never overwrites set fields",
			base:  LeadRecord{Name: "John", Year: "2"},
			other: LeadRecord{Name: "Jane", Year: "4", Department: "CSE"},
			want:  LeadRecord{Name: "John", Year: "2", Department: "CSE"},
		},
		{
			name:  "merge with nil-equivalent empty record is a no-op",
			base:  LeadRecord{Name: "John"},
			other: LeadRecord{},
			want:  LeadRecord{Name: "John"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.base
			got.Merge(&tt.other)
			if got != tt.want {
				t.Errorf("Merge() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLeadRecord_MergeNil(t *testing.T) {
	lead := LeadRecord{Name: "John"}
	lead.Merge(nil)
	if lead.Name != "John" {
		t.Errorf("Merge(nil) changed the record: %+v", lead)
	}
}
