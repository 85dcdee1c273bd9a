package domain

type Store struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"type:text;uniqueIndex:ux_stores_name;not null" json:"name"`
	Items []Item `gorm:"foreignKey:StoreID" json:"items"`
}

func (Store) TableName() string { return "stores" }

type Item struct {
	ID      uint    `gorm:"primaryKey" json:"id"`
	Name    string  `gorm:"type:text;uniqueIndex:ux_items_name;not null" json:"name"`
	Price   float64 `gorm:"not null" json:"price"`
	StoreID uint    `gorm:"index;not null" json:"store_id"`
}

func (Item) TableName() string { return "items" }
