package validation

import "github.com/iliyamo/invoice-dashboard/internal/model"

var eventMessages = map[string]string{
    "name":            "Please enter an event name.",
    "start_on":        "Please enter a valid date.",
    "start_at":        "Please enter a valid start time.",
    "pax":             "Please enter a number of guests greater than 0.",
    "purpose":         "Please enter the purpose of the event.",
    "venue":           "Please select a venue.",
    "eventsetup":      "Please select an event setup.",
    "menurequest":     "Please select a menu request.",
    "typeofservice":   "Please select a type of service.",
    "servingschedule": "Please select a serving schedule.",
    "timeofserving":   "Please enter a valid time of serving.",
    "foodrestriction": "Please select whether there are food restrictions.",
    "user_id":         "Please select the requesting user.",
}

// Event checks required fields and enumerations of e and returns the
// rejected fields keyed by their column name.
func Event(e model.Event) model.FieldErrors {
    return Fields(std.Struct(e), eventMessages)
}
