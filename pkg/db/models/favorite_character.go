package models

// FavoriteCharacter records that a user favorited a character.
type FavoriteCharacter struct {
	ID          uint `gorm:"column:id;primaryKey"`
	UserID      uint `gorm:"column:user_id;not null;index:favorite_characters_user_id_idx"`
	CharacterID uint `gorm:"column:character_id;not null;index:favorite_characters_character_id_idx"`

	Character *Character `gorm:"foreignKey:CharacterID;constraint:OnDelete:RESTRICT"`
}

func (FavoriteCharacter) TableName() string {
	return "favorite_characters"
}
