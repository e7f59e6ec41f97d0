package enum

type EntityType string

const (
	AUTHOR EntityType = "AUTHOR"
	BOOK   EntityType = "BOOK"
)

func (entityType EntityType) String() string {
	return string(entityType)
}
