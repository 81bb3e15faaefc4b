package dto

// FavoriteResponse confirms a stored favorite pair.
type FavoriteResponse struct {
	ID     uint `json:"id" example:"1"`
	UserID uint `json:"user_id" example:"2"`
	BookID uint `json:"book_id" example:"1"`
}

// FavoriteBookResponse is one entry on the user's shelf. IsActive is
// surfaced so clients can gray out books withdrawn from the catalog.
type FavoriteBookResponse struct {
	ID        uint   `json:"id" example:"1"`
	Title     string `json:"title" example:"The Go Programming Language"`
	Author    string `json:"author" example:"Alan A. A. Donovan"`
	IsActive  bool   `json:"is_active" example:"true"`
	CreatedBy uint   `json:"created_by" example:"1"`
}
