package model

type CategoryModel struct {
	ID          uint    `gorm:"column:category_id;primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"column:category_name;size:50;not null;uniqueIndex" json:"name"`
	Color       string  `gorm:"column:category_color;size:20;not null;default:'#6c757d'" json:"color"`
	Description *string `gorm:"column:category_description;type:text" json:"description,omitempty"`
}

func (CategoryModel) TableName() string {
	return "categories"
}
