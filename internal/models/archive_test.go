package models

import "testing"

func TestArchiveCode(t *testing.T) {
	tests := []struct {
		room, cabinet, shelf, box string
		want                      string
	}{
		{"R02", "C1", "S3", "B12", "R02-C1-S3-B12"},
		{"r02", "c1", "s3", "b12", "R02-C1-S3-B12"},
		{" R02 ", "C1", " S3", "B12 ", "R02-C1-S3-B12"},
	}

	for _, tt := range tests {
		if got := ArchiveCode(tt.room, tt.cabinet, tt.shelf, tt.box); got != tt.want {
			t.Errorf("ArchiveCode(%q, %q, %q, %q) = %q, want %q",
				tt.room, tt.cabinet, tt.shelf, tt.box, got, tt.want)
		}
	}
}
