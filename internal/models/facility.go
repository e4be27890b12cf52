package models

// RoomType enumerates physical room categories.
type RoomType string

const (
	RoomTypeExam          RoomType = "exam"
	RoomTypeLectureHall   RoomType = "lecture_hall"
	RoomTypeClassroom     RoomType = "classroom"
	RoomTypeComputerLab   RoomType = "computer_lab"
	RoomTypeLaboratory    RoomType = "laboratory"
	RoomTypeMeetingRoom   RoomType = "meeting_room"
	RoomTypeGymRoom       RoomType = "gym_room"
	RoomTypeSwimmingPool  RoomType = "swimming_pool"
	RoomTypeMusicRoom     RoomType = "music_room"
	RoomTypeArtRoom       RoomType = "art_room"
	RoomTypeLibraryRoom   RoomType = "library_room"
	RoomTypeSelfStudyRoom RoomType = "self_study_room"
	RoomTypeDormRoom      RoomType = "dorm_room"
)

// Building hosts rooms.
type Building struct {
	ID   string `db:"id"`
	Code string `db:"code"`
	Name string `db:"name"`
}

// Room is a schedulable physical space.
type Room struct {
	ID         string   `db:"id"`
	BuildingID string   `db:"building_id"`
	Code       string   `db:"code"`
	Capacity   int      `db:"capacity"`
	Type       RoomType `db:"type"`
	ImageURL   string   `db:"image_url"`
}

// RoomAmenity is an equipment item rooms may carry.
type RoomAmenity struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}

// RoomAmenityMapping attaches an amenity to a room.
type RoomAmenityMapping struct {
	RoomID    string `db:"room_id"`
	AmenityID string `db:"amenity_id"`
	Quantity  int    `db:"quantity"`
}
