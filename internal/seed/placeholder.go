package seed

import "github.com/iliyamo/invoice-dashboard/internal/model"

// placeholderUser is seeded with a plain password that is hashed at seed
// time.
type placeholderUser struct {
    model.User
    Password string
}

var users = []placeholderUser{
    {User: model.User{ID: "410544b2-4001-4271-9855-fec4b6a6442a", Name: "User", Email: "user@nextmail.com"}, Password: "123456"},
}

var customers = []model.Customer{
    {ID: "3958dc9e-712f-4377-85e9-fec4b6a6442a", Name: "Delba de Oliveira", Email: "delba@oliveira.com", ImageURL: "/customers/delba-de-oliveira.png"},
    {ID: "3958dc9e-742f-4377-85e9-fec4b6a6442a", Name: "Lee Robinson", Email: "lee@robinson.com", ImageURL: "/customers/lee-robinson.png"},
    {ID: "3958dc9e-737f-4377-85e9-fec4b6a6442a", Name: "Hector Simpson", Email: "hector@simpson.com", ImageURL: "/customers/hector-simpson.png"},
    {ID: "50ca3e18-62cd-11ee-8c99-0242ac120002", Name: "Steven Tey", Email: "steven@tey.com", ImageURL: "/customers/steven-tey.png"},
    {ID: "3958dc9e-787f-4377-85e9-fec4b6a6442a", Name: "Steph Dietz", Email: "steph@dietz.com", ImageURL: "/customers/steph-dietz.png"},
    {ID: "76d65c26-f784-44a2-ac19-586678f7c2f2", Name: "Michael Novotny", Email: "michael@novotny.com", ImageURL: "/customers/michael-novotny.png"},
    {ID: "d6e15727-9fe1-4961-8c5b-ea44a9bd81aa", Name: "Evil Rabbit", Email: "evil@rabbit.com", ImageURL: "/customers/evil-rabbit.png"},
    {ID: "126eed9c-c90c-4ef6-a4a8-fcf7408d3c66", Name: "Emil Kowalski", Email: "emil@kowalski.com", ImageURL: "/customers/emil-kowalski.png"},
    {ID: "CC27C14A-0ACF-4F4A-A6C9-D45682C144B9", Name: "Amy Burns", Email: "amy@burns.com", ImageURL: "/customers/amy-burns.png"},
    {ID: "13D07535-C59E-4157-A011-F8D2EF4E0CBB", Name: "Balazs Orban", Email: "balazs@orban.com", ImageURL: "/customers/balazs-orban.png"},
}

// invoices reference customers by index.
var invoices = []struct {
    customer int
    amount   int64
    status   model.InvoiceStatus
    date     string
}{
    {0, 15795, model.StatusPending, "2022-12-06"},
    {1, 20348, model.StatusPending, "2022-11-14"},
    {4, 3040, model.StatusPaid, "2022-10-29"},
    {3, 44800, model.StatusPaid, "2023-09-10"},
    {5, 34577, model.StatusPending, "2023-08-05"},
    {7, 54246, model.StatusPending, "2023-07-16"},
    {6, 666, model.StatusPending, "2023-06-27"},
    {3, 32545, model.StatusPaid, "2023-06-09"},
    {4, 1250, model.StatusPaid, "2023-06-17"},
    {5, 8546, model.StatusPaid, "2023-06-07"},
    {1, 500, model.StatusPaid, "2023-08-19"},
    {5, 8945, model.StatusPaid, "2023-06-03"},
    {2, 8945, model.StatusPaid, "2023-06-18"},
    {0, 8945, model.StatusPaid, "2023-10-04"},
    {2, 1000, model.StatusPaid, "2022-06-05"},
}

var revenue = []model.Revenue{
    {Month: "Jan", Revenue: 2000},
    {Month: "Feb", Revenue: 1800},
    {Month: "Mar", Revenue: 2200},
    {Month: "Apr", Revenue: 2500},
    {Month: "May", Revenue: 2300},
    {Month: "Jun", Revenue: 3200},
    {Month: "Jul", Revenue: 3500},
    {Month: "Aug", Revenue: 3700},
    {Month: "Sep", Revenue: 2500},
    {Month: "Oct", Revenue: 2800},
    {Month: "Nov", Revenue: 3000},
    {Month: "Dec", Revenue: 4800},
}

var events = []model.Event{
    {
        ID: "9f1e6a52-4b53-4c1e-9d0c-2a3f7f0b7a10", Name: "CABINET MEETING",
        StartOn: "2024-08-30", StartAt: "10:00", Pax: 100, Purpose: "SUMMER VACATION",
        Venue: model.VenuePresidentsHall, EventSetup: model.SetupConference,
        MenuRequest: model.MenuInHouse, TypeOfService: model.ServicePlated,
        ServingSchedule: model.ServingDinner, TimeOfServing: "01:30:07",
        FoodRestriction: model.FoodRestrictionNo, UserID: "410544b2-4001-4271-9855-fec4b6a6442a",
    },
    {
        ID: "0c8d2b7e-31a4-4f5e-8a61-6e2d9c4b5f21", Name: "OATH TAKING CEREMONY",
        StartOn: "2024-04-23", StartAt: "10:00", Pax: 100, Purpose: "PRESIDENTIAL EVENT",
        Venue: model.VenueCeremonialHall, EventSetup: model.SetupTheater,
        MenuRequest: model.MenuInHouse, TypeOfService: model.ServicePlated,
        ServingSchedule: model.ServingPMSnack, TimeOfServing: "01:30:07",
        FoodRestriction: model.FoodRestrictionNo, UserID: "410544b2-4001-4271-9855-fec4b6a6442a",
    },
}
