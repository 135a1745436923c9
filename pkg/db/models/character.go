package models

// Character is a reference-catalog character with an optional home planet.
type Character struct {
	ID           uint     `gorm:"column:id;primaryKey"`
	Name         string   `gorm:"column:name;type:varchar(100);not null"`
	Gender       *string  `gorm:"column:gender;type:varchar(20)"`
	BirthYear    *string  `gorm:"column:birth_year;type:varchar(10)"`
	Height       *float64 `gorm:"column:height"`
	Mass         *float64 `gorm:"column:mass"`
	HomePlanetID *uint    `gorm:"column:home_planet_id;index:characters_home_planet_id_idx"`

	// HomePlanet is only populated when the query preloads it.
	HomePlanet *Planet `gorm:"foreignKey:HomePlanetID;constraint:OnDelete:SET NULL"`
}

func (Character) TableName() string {
	return "characters"
}
