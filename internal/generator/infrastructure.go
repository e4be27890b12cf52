package generator

import (
	"fmt"

	"github.com/noah-isme/edu-fixtures/internal/media"
	"github.com/noah-isme/edu-fixtures/internal/models"
)

var roomTypeWeights = []weightedChoice[models.RoomType]{
	{Value: models.RoomTypeClassroom, Weight: 0.30},
	{Value: models.RoomTypeLectureHall, Weight: 0.12},
	{Value: models.RoomTypeComputerLab, Weight: 0.12},
	{Value: models.RoomTypeLaboratory, Weight: 0.08},
	{Value: models.RoomTypeExam, Weight: 0.08},
	{Value: models.RoomTypeMeetingRoom, Weight: 0.06},
	{Value: models.RoomTypeSelfStudyRoom, Weight: 0.06},
	{Value: models.RoomTypeLibraryRoom, Weight: 0.04},
	{Value: models.RoomTypeGymRoom, Weight: 0.03},
	{Value: models.RoomTypeMusicRoom, Weight: 0.03},
	{Value: models.RoomTypeArtRoom, Weight: 0.03},
	{Value: models.RoomTypeDormRoom, Weight: 0.03},
	{Value: models.RoomTypeSwimmingPool, Weight: 0.02},
}

var roomCapacityRanges = map[models.RoomType][2]int{
	models.RoomTypeExam:          {40, 80},
	models.RoomTypeLectureHall:   {80, 200},
	models.RoomTypeClassroom:     {30, 60},
	models.RoomTypeComputerLab:   {25, 45},
	models.RoomTypeLaboratory:    {20, 40},
	models.RoomTypeMeetingRoom:   {10, 30},
	models.RoomTypeGymRoom:       {30, 100},
	models.RoomTypeSwimmingPool:  {20, 50},
	models.RoomTypeMusicRoom:     {15, 30},
	models.RoomTypeArtRoom:       {15, 30},
	models.RoomTypeLibraryRoom:   {40, 120},
	models.RoomTypeSelfStudyRoom: {20, 60},
	models.RoomTypeDormRoom:      {4, 8},
}

// amenityProfiles indexes default equipment per room type.
var amenityProfiles = map[models.RoomType][]string{
	models.RoomTypeExam:          {"Máy chiếu", "Camera giám sát"},
	models.RoomTypeLectureHall:   {"Máy chiếu", "Micro", "Loa"},
	models.RoomTypeClassroom:     {"Máy chiếu", "Bảng trắng"},
	models.RoomTypeComputerLab:   {"Máy tính", "Máy chiếu", "Điều hòa"},
	models.RoomTypeLaboratory:    {"Thiết bị thí nghiệm", "Tủ hóa chất"},
	models.RoomTypeMeetingRoom:   {"Màn hình", "Micro"},
	models.RoomTypeGymRoom:       {"Dụng cụ thể thao"},
	models.RoomTypeSwimmingPool:  {"Phao cứu sinh"},
	models.RoomTypeMusicRoom:     {"Đàn piano", "Cách âm"},
	models.RoomTypeArtRoom:       {"Giá vẽ"},
	models.RoomTypeLibraryRoom:   {"Kệ sách", "Bàn đọc"},
	models.RoomTypeSelfStudyRoom: {"Bàn học", "Điều hòa"},
	models.RoomTypeDormRoom:      {"Giường tầng", "Tủ đồ"},
}

// buildInfrastructure emits buildings, rooms and amenity mappings.
func (g *Generator) buildInfrastructure() error {
	amenityIDs := make(map[string]string)
	amenityID := func(name string) string {
		if id, ok := amenityIDs[name]; ok {
			return id
		}
		id := g.ids.Next()
		amenityIDs[name] = id
		g.world.RoomAmenities = append(g.world.RoomAmenities, models.RoomAmenity{ID: id, Name: name})
		return id
	}

	for _, b := range g.cfg.Buildings {
		building := models.Building{ID: g.ids.Next(), Code: b.Code, Name: b.Name}
		g.world.Buildings = append(g.world.Buildings, building)

		for i := 0; i < b.Rooms; i++ {
			roomType := pickWeighted(g.rng, roomTypeWeights)
			capRange := roomCapacityRanges[roomType]
			room := models.Room{
				ID:         g.ids.Next(),
				BuildingID: building.ID,
				Code:       fmt.Sprintf("%s-%d%02d", b.Code, 1+i/20, 1+i%20),
				Capacity:   capRange[0] + g.rng.Intn(capRange[1]-capRange[0]+1),
				Type:       roomType,
				ImageURL:   g.media.PickURL(media.RoomPics),
			}
			g.world.Rooms = append(g.world.Rooms, room)

			for _, amenity := range amenityProfiles[roomType] {
				g.world.AmenityMappings = append(g.world.AmenityMappings, models.RoomAmenityMapping{
					RoomID:    room.ID,
					AmenityID: amenityID(amenity),
					Quantity:  1 + g.rng.Intn(3),
				})
			}
		}
	}

	buildingRows := make([][]any, 0, len(g.world.Buildings))
	for _, b := range g.world.Buildings {
		buildingRows = append(buildingRows, []any{b.ID, b.Code, b.Name})
	}
	if err := g.sink.Insert("buildings", []string{"id", "code", "name"}, buildingRows); err != nil {
		return err
	}

	roomRows := make([][]any, 0, len(g.world.Rooms))
	for _, r := range g.world.Rooms {
		roomRows = append(roomRows, []any{r.ID, r.BuildingID, r.Code, r.Capacity, string(r.Type), r.ImageURL})
	}
	if err := g.sink.Insert("rooms",
		[]string{"id", "building_id", "code", "capacity", "type", "image_url"}, roomRows); err != nil {
		return err
	}

	amenityRows := make([][]any, 0, len(g.world.RoomAmenities))
	for _, a := range g.world.RoomAmenities {
		amenityRows = append(amenityRows, []any{a.ID, a.Name})
	}
	if err := g.sink.Insert("room_amenities", []string{"id", "name"}, amenityRows); err != nil {
		return err
	}

	mappingRows := make([][]any, 0, len(g.world.AmenityMappings))
	for _, m := range g.world.AmenityMappings {
		mappingRows = append(mappingRows, []any{m.RoomID, m.AmenityID, m.Quantity})
	}
	return g.sink.Insert("room_amenity_mappings", []string{"room_id", "amenity_id", "quantity"}, mappingRows)
}
