package query

import "testing"

func TestPageRequestValidate(t *testing.T) {
	cases := []struct {
		name    string
		req     PageRequest
		wantErr bool
	}{
		{"valid", PageRequest{Page: 1, Limit: 100}, false},
		{"max limit", PageRequest{Page: 1, Limit: 1000}, false},
		{"page zero", PageRequest{Page: 0, Limit: 100}, true},
		{"negative page", PageRequest{Page: -3, Limit: 100}, true},
		{"limit zero", PageRequest{Page: 1, Limit: 0}, true},
		{"limit too large", PageRequest{Page: 1, Limit: 1001}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	req := PageRequest{Page: 3, Limit: 100}
	if got := req.Offset(); got != 200 {
		t.Errorf("offset = %d, want 200", got)
	}
	req = PageRequest{Page: 1, Limit: 50}
	if got := req.Offset(); got != 0 {
		t.Errorf("offset = %d, want 0", got)
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 100, 0},
		{1, 100, 1},
		{100, 100, 1},
		{101, 100, 2},
		{250, 100, 3},
		{250, 1000, 1},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.total, tc.limit); got != tc.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tc.total, tc.limit, got, tc.want)
		}
	}
}
