package dto

import (
	"mime/multipart"

	"yadoya/internal/domains/room/model"
	"yadoya/shared"
	"yadoya/shared/constant"
)

type CreateRoomRequest struct {
	Name          string  `json:"name" validate:"required,max=200"`
	Description   string  `json:"description" validate:"max=5000"`
	Price         float64 `json:"price" validate:"gte=0"`
	Capacity      int     `json:"capacity" validate:"omitempty,gte=1,lte=50"`
	Status        string  `json:"status" validate:"omitempty,oneof=available fully_booked preparing"`
	NameJA        string  `json:"name_ja" validate:"max=200"`
	NameEN        string  `json:"name_en" validate:"max=200"`
	NameZH        string  `json:"name_zh" validate:"max=200"`
	DescriptionJA string  `json:"description_ja" validate:"max=5000"`
	DescriptionEN string  `json:"description_en" validate:"max=5000"`
	DescriptionZH string  `json:"description_zh" validate:"max=5000"`
	AirbnbURL     string  `json:"airbnb_url" validate:"omitempty,url"`
	AddressJA     string  `json:"address_ja" validate:"max=500"`
	AddressEN     string  `json:"address_en" validate:"max=500"`
	AddressZH     string  `json:"address_zh" validate:"max=500"`
	PermitNumber  string  `json:"permit_number" validate:"max=100"`

	Image     *multipart.FileHeader `json:"-" validate:"omitempty,imageext,maxfilesize=10"`
	ImageFile multipart.File        `json:"-"`
}

func (req *CreateRoomRequest) ToModel(imagePath string) *model.Room {
	capacity := req.Capacity
	if capacity == 0 {
		capacity = 1
	}

	status := req.Status
	if status == "" {
		status = model.StatusAvailable
	}

	if imagePath == "" {
		imagePath = constant.DefaultRoomImage
	}

	return &model.Room{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Capacity:      capacity,
		Image:         imagePath,
		Status:        status,
		NameJA:        req.NameJA,
		NameEN:        req.NameEN,
		NameZH:        req.NameZH,
		DescriptionJA: req.DescriptionJA,
		DescriptionEN: req.DescriptionEN,
		DescriptionZH: req.DescriptionZH,
		AirbnbURL:     req.AirbnbURL,
		AddressJA:     req.AddressJA,
		AddressEN:     req.AddressEN,
		AddressZH:     req.AddressZH,
		PermitNumber:  req.PermitNumber,
	}
}

// UpdateRoomRequest carries a typed partial update: nil fields leave
// the stored value untouched.
type UpdateRoomRequest struct {
	Name          *string  `json:"name" validate:"omitempty,max=200"`
	Description   *string  `json:"description" validate:"omitempty,max=5000"`
	Price         *float64 `json:"price" validate:"omitempty,gte=0"`
	Capacity      *int     `json:"capacity" validate:"omitempty,gte=1,lte=50"`
	Status        *string  `json:"status" validate:"omitempty,oneof=available fully_booked preparing"`
	NameJA        *string  `json:"name_ja" validate:"omitempty,max=200"`
	NameEN        *string  `json:"name_en" validate:"omitempty,max=200"`
	NameZH        *string  `json:"name_zh" validate:"omitempty,max=200"`
	DescriptionJA *string  `json:"description_ja" validate:"omitempty,max=5000"`
	DescriptionEN *string  `json:"description_en" validate:"omitempty,max=5000"`
	DescriptionZH *string  `json:"description_zh" validate:"omitempty,max=5000"`
	AirbnbURL     *string  `json:"airbnb_url" validate:"omitempty,url"`
	AddressJA     *string  `json:"address_ja" validate:"omitempty,max=500"`
	AddressEN     *string  `json:"address_en" validate:"omitempty,max=500"`
	AddressZH     *string  `json:"address_zh" validate:"omitempty,max=500"`
	PermitNumber  *string  `json:"permit_number" validate:"omitempty,max=100"`

	Image     *multipart.FileHeader `json:"-" validate:"omitempty,imageext,maxfilesize=10"`
	ImageFile multipart.File        `json:"-"`
}

// ApplyTo merges the set fields into the stored record.
func (req *UpdateRoomRequest) ApplyTo(room *model.Room) {
	if req.Name != nil {
		room.Name = *req.Name
	}
	if req.Description != nil {
		room.Description = *req.Description
	}
	if req.Price != nil {
		room.Price = *req.Price
	}
	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}
	if req.Status != nil {
		room.Status = *req.Status
	}
	if req.NameJA != nil {
		room.NameJA = *req.NameJA
	}
	if req.NameEN != nil {
		room.NameEN = *req.NameEN
	}
	if req.NameZH != nil {
		room.NameZH = *req.NameZH
	}
	if req.DescriptionJA != nil {
		room.DescriptionJA = *req.DescriptionJA
	}
	if req.DescriptionEN != nil {
		room.DescriptionEN = *req.DescriptionEN
	}
	if req.DescriptionZH != nil {
		room.DescriptionZH = *req.DescriptionZH
	}
	if req.AirbnbURL != nil {
		room.AirbnbURL = *req.AirbnbURL
	}
	if req.AddressJA != nil {
		room.AddressJA = *req.AddressJA
	}
	if req.AddressEN != nil {
		room.AddressEN = *req.AddressEN
	}
	if req.AddressZH != nil {
		room.AddressZH = *req.AddressZH
	}
	if req.PermitNumber != nil {
		room.PermitNumber = *req.PermitNumber
	}
}

type RoomResponse struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Address      string  `json:"address"`
	Price        float64 `json:"price"`
	Capacity     int     `json:"capacity"`
	Image        string  `json:"image"`
	Status       string  `json:"status"`
	AirbnbURL    string  `json:"airbnb_url,omitempty"`
	PermitNumber string  `json:"permit_number,omitempty"`
}

func (res *RoomResponse) FromModel(room *model.Room, localeCode string) {
	res.ID = room.ID
	res.Name = room.LocalizedName(localeCode)
	res.Description = room.LocalizedDescription(localeCode)
	res.Address = room.LocalizedAddress(localeCode)
	res.Price = room.Price
	res.Capacity = room.Capacity
	res.Image = room.Image
	res.Status = room.Status
	res.AirbnbURL = room.AirbnbURL
	res.PermitNumber = room.PermitNumber
}

type GetRoomsResponse struct {
	Rooms      []RoomResponse `json:"rooms"`
	Total      int            `json:"total"`
	TotalPages int            `json:"total_pages"`
}

func (res *GetRoomsResponse) FromModels(rooms []*model.Room, localeCode string, total, limit int) {
	res.Rooms = make([]RoomResponse, 0, len(rooms))

	for _, room := range rooms {
		item := RoomResponse{}
		item.FromModel(room, localeCode)
		res.Rooms = append(res.Rooms, item)
	}

	res.Total = total
	res.TotalPages = shared.CalculateTotalPage(total, limit)
}
