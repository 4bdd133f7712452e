package entity

type Category struct {
	BaseSimple
	Name          string   `db:"name"`
	Slug          string   `db:"slug"`
	Subcategories []string `db:"subcategories"`
}
