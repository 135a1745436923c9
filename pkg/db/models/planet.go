package models

// Planet is a reference-catalog planet.
type Planet struct {
	ID         uint    `gorm:"column:id;primaryKey"`
	Name       string  `gorm:"column:name;type:varchar(100);not null"`
	Climate    *string `gorm:"column:climate;type:varchar(100)"`
	Terrain    *string `gorm:"column:terrain;type:varchar(100)"`
	Population *int64  `gorm:"column:population"`
}

func (Planet) TableName() string {
	return "planets"
}
