package models

// FavoritePlanet records that a user favorited a planet. The same pair may
// appear more than once; callers that care check PlanetFavoriteExists first.
type FavoritePlanet struct {
	ID       uint `gorm:"column:id;primaryKey"`
	UserID   uint `gorm:"column:user_id;not null;index:favorite_planets_user_id_idx"`
	PlanetID uint `gorm:"column:planet_id;not null;index:favorite_planets_planet_id_idx"`

	Planet *Planet `gorm:"foreignKey:PlanetID;constraint:OnDelete:RESTRICT"`
}

func (FavoritePlanet) TableName() string {
	return "favorite_planets"
}
