package model

import (
	"yadoya/internal/store/jsonstore"
	"yadoya/shared/locale"
)

const (
	EntityName = "room"
)

// Room status enum as stored in rooms.json.
const (
	StatusAvailable   = "available"
	StatusFullyBooked = "fully_booked"
	StatusPreparing   = "preparing"
)

var Statuses = []string{StatusAvailable, StatusFullyBooked, StatusPreparing}

type Room struct {
	jsonstore.Model
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	Capacity      int     `json:"capacity"`
	Image         string  `json:"image"`
	Status        string  `json:"status"`
	NameJA        string  `json:"name_ja,omitempty"`
	NameEN        string  `json:"name_en,omitempty"`
	NameZH        string  `json:"name_zh,omitempty"`
	DescriptionJA string  `json:"description_ja,omitempty"`
	DescriptionEN string  `json:"description_en,omitempty"`
	DescriptionZH string  `json:"description_zh,omitempty"`
	AirbnbURL     string  `json:"airbnb_url,omitempty"`
	AddressJA     string  `json:"address_ja,omitempty"`
	AddressEN     string  `json:"address_en,omitempty"`
	AddressZH     string  `json:"address_zh,omitempty"`
	PermitNumber  string  `json:"permit_number,omitempty"`
}

func (r *Room) LocalizedName(code string) string {
	return locale.ResolveWithBase(code, r.Name, r.NameJA, r.NameEN, r.NameZH)
}

func (r *Room) LocalizedDescription(code string) string {
	return locale.ResolveWithBase(code, r.Description, r.DescriptionJA, r.DescriptionEN, r.DescriptionZH)
}

func (r *Room) LocalizedAddress(code string) string {
	return locale.Resolve(code, r.AddressJA, r.AddressEN, r.AddressZH)
}
