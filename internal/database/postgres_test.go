package database

import "testing"

func TestMigrationVersion(t *testing.T) {
	tests := []struct {
		name     string
		expected int
	}{
		{"001_create_assistants.sql", 1},
		{"012_add_index.sql", 12},
		{"notes.sql", 0},
		{"_leading.sql", 0},
		{"abc_def.sql", 0},
		{"0_zero.sql", 0},
	}

	for _, tc := range tests {
		if got := migrationVersion(tc.name); got != tc.expected {
			t.Errorf("migrationVersion(%q): expected %d, got %d", tc.name, tc.expected, got)
		}
	}
}
