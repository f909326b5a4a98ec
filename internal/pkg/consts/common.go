package consts

const (
	FrequencyDaily    = "daily"
	FrequencyWeekdays = "weekdays"
	FrequencyCustom   = "custom"
)

const (
	MimePrefixImage = "image"
)
