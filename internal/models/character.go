package models

// Faction values the catalog uses; an empty faction means unknown.
const (
	FactionRebel  = "rebel"
	FactionEmpire = "empire"
)

// Character represents a catalog entry as served by the remote data service.
// List responses carry the same shape as the detail endpoint.
type Character struct {
	ID          int     `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"index;not null"`
	BirthYear   *string `json:"birth_year" gorm:"column:birth_year"`
	Description *string `json:"description"`
	Faction     *string `json:"faction"`
}

// TableName specifies the table name for Character Model
func (Character) TableName() string {
	return "characters"
}

// NeedsHydration reports whether the summary lacks fields only the detail endpoint is trusted to fill.
func (c Character) NeedsHydration() bool {
	return c.Faction == nil || c.Description == nil
}
