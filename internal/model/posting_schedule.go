package model

// PostingSchedule 发布时段配置
type PostingSchedule struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	Platform  string `gorm:"type:varchar(16);not null" json:"platform"`  // twitter / instagram
	TimeSlot  string `gorm:"type:varchar(5);not null" json:"time_slot"`  // HH:MM
	Frequency string `gorm:"type:varchar(16);not null" json:"frequency"` // daily / weekdays / custom
	Active    bool   `gorm:"type:tinyint(1);not null" json:"active"`
}

func (PostingSchedule) TableName() string {
	return "posting_schedule"
}
