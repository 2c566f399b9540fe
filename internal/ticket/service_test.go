package ticket

import (
	"testing"
)

func TestDeleteActionKeepsTicketsWithSales(t *testing.T) {
	tests := []struct {
		name string
		sold int
		want string
	}{
		{"no sales are removed", 0, "deleted"},
		{"one sale disables", 1, "disabled"},
		{"many sales disable", 250, "disabled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeleteAction(tt.sold); got != tt.want {
				t.Errorf("DeleteAction(%d) = %q, want %q", tt.sold, got, tt.want)
			}
		})
	}
}

func TestValidateTicketInput(t *testing.T) {
	tests := []struct {
		name    string
		req     TicketRequest
		wantErr bool
	}{
		{"free ticket", TicketRequest{Name: "General", Price: 0, Capacity: 100}, false},
		{"unlimited capacity", TicketRequest{Name: "VIP", Price: 499.99, Capacity: 0}, false},
		{"negative price", TicketRequest{Name: "Bad", Price: -1}, true},
		{"negative capacity", TicketRequest{Name: "Bad", Capacity: -5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTicketInput(&tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateTicketInput() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
