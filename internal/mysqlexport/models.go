package mysqlexport

import "time"

type MedicineInfo struct {
	ID            string `gorm:"primaryKey;size:32"`
	NameKr        string `gorm:"column:name_kr;size:255;index"`
	NameEn        string `gorm:"column:name_en;size:255"`
	Company       string `gorm:"size:255"`
	Type          string `gorm:"size:64"`
	Category      string `gorm:"size:255"`
	InsuranceCode string `gorm:"size:64"`
	Appearance    string `gorm:"type:text"`
	Shape         string `gorm:"size:64"`
	Color         string `gorm:"size:64"`
	Size          string `gorm:"size:255"`
	Identification string `gorm:"size:255"`
	Components    string `gorm:"type:mediumtext"`
	Efficacy      string `gorm:"type:mediumtext"`
	Precautions   string `gorm:"type:mediumtext"`
	Dosage        string `gorm:"type:mediumtext"`
	Storage       string `gorm:"type:text"`
	Expiration    string `gorm:"size:255"`
	ImageUrl      string `gorm:"column:image_url;size:512"`
	SourceUrl     string `gorm:"column:source_url;size:512"`
	ExtractedTime time.Time
	UpdatedTime   time.Time
}

func (MedicineInfo) TableName() string { return "medicine_info" }

type MedicineCategory struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	CategoryCode string `gorm:"size:32;uniqueIndex"`
	CategoryName string `gorm:"size:255"`
}

func (MedicineCategory) TableName() string { return "medicine_categories" }

type MedicineDivision struct {
	ID                  int64  `gorm:"primaryKey;autoIncrement"`
	MedicineID          string `gorm:"column:medicine_id;size:32;index"`
	DivisionDescription string `gorm:"size:255"`
	DivisionType        string `gorm:"size:64"`
}

func (MedicineDivision) TableName() string { return "medicine_division" }

type MedicineImage struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	MedicineID  string `gorm:"column:medicine_id;size:32;index"`
	ImageUrl    string `gorm:"column:image_url;size:512"`
	ImageWidth  string `gorm:"size:16"`
	ImageHeight string `gorm:"size:16"`
	ImageAlt    string `gorm:"size:255"`
}

func (MedicineImage) TableName() string { return "medicine_images" }
