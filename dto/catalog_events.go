package dto

type AuthorAdded struct {
	AuthorId int    `json:"authorId"`
	Name     string `json:"name"`
}

type BookAdded struct {
	BookId   int    `json:"bookId"`
	Name     string `json:"name"`
	AuthorId int    `json:"authorId"`
}
