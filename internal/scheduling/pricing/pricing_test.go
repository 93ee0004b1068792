package pricing

import (
	"testing"

	"github.com/dabstractor/midnightexpress/pkg/model"
)

func TestQuoteFor(t *testing.T) {
	tests := []struct {
		name        string
		destination string
		passengers  int
		wantAmount  int
		wantKnown   bool
	}{
		{"CLT base fare", "CLT", 2, 85, true},
		{"CLT single rider pays base", "CLT", 1, 85, true},
		{"CLT four riders", "CLT", 4, 105, true},
		{"Concord single rider", "Concord", 1, 65, true},
		{"Concord three riders", "Concord", 3, 75, true},
		{"Concord airport code", "USA", 1, 65, true},
		{"private destination", "Private", 2, 75, true},
		{"case insensitive match", "clt", 2, 85, true},
		{"padded destination", "  CLT ", 2, 85, true},
		{"unknown destination", "Asheville", 2, 0, false},
		{"empty destination", "", 1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QuoteFor(tt.destination, tt.passengers)
			if got.Known != tt.wantKnown {
				t.Errorf("QuoteFor(%q, %d).Known = %v, want %v", tt.destination, tt.passengers, got.Known, tt.wantKnown)
			}
			if got.Amount != tt.wantAmount {
				t.Errorf("QuoteFor(%q, %d).Amount = %d, want %d", tt.destination, tt.passengers, got.Amount, tt.wantAmount)
			}
		})
	}
}

func TestCapacity(t *testing.T) {
	tests := []struct {
		name string
		req  model.SpecialRequirements
		want int
	}{
		{"no requirements", model.SpecialRequirements{}, 6},
		{"wheelchair only", model.SpecialRequirements{Wheelchair: true}, 5},
		{"car seat only", model.SpecialRequirements{CarSeat: true}, 5},
		{"wheelchair and car seat share one seat", model.SpecialRequirements{Wheelchair: true, CarSeat: true}, 5},
		{"checked bags only", model.SpecialRequirements{CheckedBags: true}, 5},
		{"all three requirements", model.SpecialRequirements{Wheelchair: true, CarSeat: true, CheckedBags: true}, 4},
		{"wheelchair and bags", model.SpecialRequirements{Wheelchair: true, CheckedBags: true}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Capacity(tt.req); got != tt.want {
				t.Errorf("Capacity(%+v) = %d, want %d", tt.req, got, tt.want)
			}
		})
	}
}

func TestCapacityNeverBelowFloor(t *testing.T) {
	req := model.SpecialRequirements{Wheelchair: true, CarSeat: true, CheckedBags: true}
	if got := Capacity(req); got < MinCapacity {
		t.Errorf("Capacity = %d, below floor %d", got, MinCapacity)
	}
}

func TestInServiceArea(t *testing.T) {
	tests := []struct {
		name    string
		address string
		want    bool
	}{
		{"charlotte address", "1200 South Blvd, Charlotte, NC 28203", true},
		{"case insensitive", "45 oak st, HARRISBURG nc", true},
		{"two word area", "9 Elm Ave, Mint Hill, NC", true},
		{"outside coverage", "500 Patton Ave, Asheville, NC", false},
		{"empty address", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InServiceArea(tt.address); got != tt.want {
				t.Errorf("InServiceArea(%q) = %v, want %v", tt.address, got, tt.want)
			}
		})
	}
}
