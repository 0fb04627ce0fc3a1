package models

import (
	"math"
	"testing"
)

func TestNewPageParams(t *testing.T) {
	tests := []struct {
		name        string
		page        int
		perPage     int
		wantPage    int
		wantPerPage int
		wantOffset  int
	}{
		{"defaults", 0, 0, 1, DefaultPerPage, 0},
		{"third page", 3, 5, 3, 5, 10},
		{"negative page", -2, 10, 1, 10, 0},
		{"per page capped", 2, 1000, 2, MaxPerPage, MaxPerPage},
		{"huge page capped", math.MaxInt, MaxPerPage, MaxPage, MaxPerPage, (MaxPage - 1) * MaxPerPage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPageParams(tt.page, tt.perPage)
			if p.Page != tt.wantPage || p.PerPage != tt.wantPerPage {
				t.Fatalf("got page=%d per_page=%d, want %d/%d", p.Page, p.PerPage, tt.wantPage, tt.wantPerPage)
			}
			if p.Offset() != tt.wantOffset {
				t.Errorf("expected offset %d, got %d", tt.wantOffset, p.Offset())
			}
		})
	}
}

func TestNewPageParams_OffsetNeverNegative(t *testing.T) {
	for _, page := range []int{1, 1 << 40, 100000000000000000, math.MaxInt} {
		for _, perPage := range []int{1, DefaultPerPage, MaxPerPage, math.MaxInt} {
			if off := NewPageParams(page, perPage).Offset(); off < 0 {
				t.Errorf("page=%d per_page=%d: negative offset %d", page, perPage, off)
			}
		}
	}
}

func TestNewPage_LastPage(t *testing.T) {
	tests := []struct {
		total int64
		want  int
	}{
		{0, 1},
		{1, 1},
		{5, 1},
		{6, 2},
		{20, 4},
		{21, 5},
	}
	for _, tt := range tests {
		page := NewPage([]int{}, NewPageParams(1, 5), tt.total)
		if page.LastPage != tt.want {
			t.Errorf("total=%d: expected last_page %d, got %d", tt.total, tt.want, page.LastPage)
		}
	}
}

func TestNewPage_NilDataBecomesEmpty(t *testing.T) {
	page := NewPage[Paciente](nil, NewPageParams(1, 5), 0)
	if page.Data == nil {
		t.Fatal("expected non-nil data slice")
	}
	if len(page.Data) != 0 {
		t.Errorf("expected empty data, got %d items", len(page.Data))
	}
}
