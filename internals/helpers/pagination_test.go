package helper

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestResolvePaging(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Paging
	}{
		{"default", "", Paging{Page: 1, PerPage: 20, Offset: 0, Limit: 20}},
		{"halaman kedua", "page=2&per_page=10", Paging{Page: 2, PerPage: 10, Offset: 10, Limit: 10}},
		{"alias limit", "limit=5", Paging{Page: 1, PerPage: 5, Offset: 0, Limit: 5}},
		{"page negatif jadi 1", "page=-3", Paging{Page: 1, PerPage: 20, Offset: 0, Limit: 20}},
		{"per_page nol pakai default", "per_page=0", Paging{Page: 1, PerPage: 20, Offset: 0, Limit: 20}},
		{"per_page dibatasi max", "per_page=500", Paging{Page: 1, PerPage: 100, Offset: 0, Limit: 100}},
		{"bukan angka pakai default", "page=abc&per_page=xyz", Paging{Page: 1, PerPage: 20, Offset: 0, Limit: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			var got Paging
			app.Get("/", func(c *fiber.Ctx) error {
				got = ResolvePaging(c, 20, 100)
				return nil
			})

			req := httptest.NewRequest("GET", "/?"+tt.query, nil)
			if _, err := app.Test(req); err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolvePaging() = %+v, mau %+v", got, tt.want)
			}
		})
	}
}

func TestBuildPaginationFromPage(t *testing.T) {
	tests := []struct {
		name           string
		total          int64
		page, perPage  int
		wantTotalPages int
		wantHasNext    bool
		wantHasPrev    bool
	}{
		{"kosong tetap satu halaman", 0, 1, 20, 1, false, false},
		{"pas satu halaman", 20, 1, 20, 1, false, false},
		{"lebih satu jadi dua halaman", 21, 1, 20, 2, true, false},
		{"halaman tengah", 50, 2, 20, 3, true, true},
		{"halaman terakhir", 50, 3, 20, 3, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := BuildPaginationFromPage(tt.total, tt.page, tt.perPage)
			if p.TotalPages != tt.wantTotalPages {
				t.Errorf("TotalPages = %d, mau %d", p.TotalPages, tt.wantTotalPages)
			}
			if p.HasNext != tt.wantHasNext {
				t.Errorf("HasNext = %t, mau %t", p.HasNext, tt.wantHasNext)
			}
			if p.HasPrev != tt.wantHasPrev {
				t.Errorf("HasPrev = %t, mau %t", p.HasPrev, tt.wantHasPrev)
			}
		})
	}
}
