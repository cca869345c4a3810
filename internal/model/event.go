package model

import "time"

// Enumerations used by venue booking records.  Each has a fixed set of
// accepted values reported by Valid, which the `enum` validation tag calls.
type (
    Venue           string
    EventSetup      string
    MenuRequest     string
    ServiceType     string
    ServingSchedule string
    FoodRestriction string
)

const (
    VenueCeremonialHall Venue = "CEREMONIAL HALL"
    VenueHeroesHall     Venue = "HEROES HALL"
    VenuePresidentsHall Venue = "PRESIDENT'S HALL"
    VenueHoldingRoom    Venue = "HOLDING ROOM"
    VenueOthers         Venue = "OTHERS"

    SetupTheater    EventSetup = "THEATER STYLE"
    SetupConference EventSetup = "CONFERENCE MEETING STYLE"
    SetupClassroom  EventSetup = "CLASSROOM STYLE"
    SetupBanquet    EventSetup = "BANQUET STYLE"
    SetupOthers     EventSetup = "OTHERS"

    MenuInHouse MenuRequest = "IN-HOUSE"
    MenuCatered MenuRequest = "CATERED"

    ServicePacked     ServiceType = "PACKED"
    ServicePlated     ServiceType = "PLATED"
    ServiceBuffet     ServiceType = "BUFFET"
    ServicePassAround ServiceType = "PASS AROUND"

    ServingBreakfast     ServingSchedule = "BREAKFAST"
    ServingAMSnack       ServingSchedule = "AM SNACK"
    ServingLunch         ServingSchedule = "LUNCH"
    ServingPMSnack       ServingSchedule = "PM SNACK"
    ServingDinner        ServingSchedule = "DINNER"
    ServingMidnightSnack ServingSchedule = "MID-NIGHT SNACK"

    FoodRestrictionNo  FoodRestriction = "No"
    FoodRestrictionYes FoodRestriction = "Yes"
)

func (v Venue) Valid() bool {
    switch v {
    case VenueCeremonialHall, VenueHeroesHall, VenuePresidentsHall, VenueHoldingRoom, VenueOthers:
        return true
    }
    return false
}

func (s EventSetup) Valid() bool {
    switch s {
    case SetupTheater, SetupConference, SetupClassroom, SetupBanquet, SetupOthers:
        return true
    }
    return false
}

func (m MenuRequest) Valid() bool { return m == MenuInHouse || m == MenuCatered }

func (s ServiceType) Valid() bool {
    switch s {
    case ServicePacked, ServicePlated, ServiceBuffet, ServicePassAround:
        return true
    }
    return false
}

func (s ServingSchedule) Valid() bool {
    switch s {
    case ServingBreakfast, ServingAMSnack, ServingLunch, ServingPMSnack, ServingDinner, ServingMidnightSnack:
        return true
    }
    return false
}

func (f FoodRestriction) Valid() bool { return f == FoodRestrictionNo || f == FoodRestrictionYes }

// Event represents a venue booking request stored in the `events` table.
// Only the schema lives here; the dashboard exposes no write path for it.
//
// Fields:
//  StartOn       – booking date (YYYY-MM-DD).
//  StartAt       – start time (HH:MM or HH:MM:SS).
//  Pax           – expected head count.
//  HoldingRoom   – optional secondary room.
//  TimeOfServing – when food is served (HH:MM or HH:MM:SS).
//  UserID        – the requesting users.id.
type Event struct {
    ID              string          `json:"id"`
    Name            string          `json:"name" validate:"required"`
    StartOn         string          `json:"start_on" validate:"datetime=2006-01-02"`
    StartAt         string          `json:"start_at" validate:"clock"`
    Pax             int             `json:"pax" validate:"gt=0"`
    Purpose         string          `json:"purpose" validate:"required"`
    Venue           Venue           `json:"venue" validate:"enum"`
    HoldingRoom     string          `json:"holdingroom"`
    EventSetup      EventSetup      `json:"eventsetup" validate:"enum"`
    MenuRequest     MenuRequest     `json:"menurequest" validate:"enum"`
    TypeOfService   ServiceType     `json:"typeofservice" validate:"enum"`
    ServingSchedule ServingSchedule `json:"servingschedule" validate:"enum"`
    TimeOfServing   string          `json:"timeofserving" validate:"clock"`
    FoodRestriction FoodRestriction `json:"foodrestriction" validate:"enum"`
    FoodInstruction string          `json:"foodinstruction"`
    Remarks         string          `json:"remarks"`
    UserID          string          `json:"user_id" validate:"required"`
    CreatedAt       time.Time       `json:"created_at"`
    UpdatedAt       time.Time       `json:"updated_at"`
}
