package model

import "testing"

func TestParseTaskStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    TaskStatus
		wantErr bool
	}{
		{"", TaskStatusAll, false},
		{"all", TaskStatusAll, false},
		{"pending", TaskStatusPending, false},
		{"completed", TaskStatusCompleted, false},
		{"done", "", true},
		{"PENDING", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseTaskStatus(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTaskStatus(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseTaskStatus(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTaskStatus_CompletedFilter(t *testing.T) {
	t.Parallel()

	if TaskStatusAll.CompletedFilter() != nil {
		t.Error("all should not filter")
	}
	if v := TaskStatusPending.CompletedFilter(); v == nil || *v {
		t.Errorf("pending filter = %v, want false", v)
	}
	if v := TaskStatusCompleted.CompletedFilter(); v == nil || !*v {
		t.Errorf("completed filter = %v, want true", v)
	}
}
