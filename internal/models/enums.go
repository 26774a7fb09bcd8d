package models

// Enum values as stored in the corresponding text columns.

const (
	GenderFemale = "female"
	GenderMale   = "male"
)

const (
	ShiftMorning = "morning"
	ShiftEvening = "evening"
)

const (
	OSTypeIOS      = "ios"
	OSTypeAndroid  = "android"
	OSTypeWindows  = "windows"
	OSTypeMacOS    = "macos"
	OSTypeLinux    = "linux"
	OSTypeChromeOS = "chromeos"
)

var OSTypes = []string{
	OSTypeIOS, OSTypeAndroid, OSTypeWindows, OSTypeMacOS, OSTypeLinux, OSTypeChromeOS,
}

// Action degrees. Suspicious and terrible actions trigger parent alerts.
const (
	DegreeNeutral    = "neutral"
	DegreeSuspicious = "suspicious"
	DegreeTerrible   = "terrible"
)

const (
	AppRequestPending  = "pending"
	AppRequestApproved = "approved"
	AppRequestRejected = "rejected"
	AppRequestError    = "error"
)

var Languages = map[string]string{
	"uzb_lat": "O'zbekcha (lotin)",
	"uzb_cyr": "Ўзбекча (кирилл)",
	"russian": "Русский",
	"english": "English",
}

var Themes = map[string]string{
	"dark":    "Dark",
	"light":   "Light",
	"w_dark":  "Warm dark",
	"w_light": "Warm light",
}
