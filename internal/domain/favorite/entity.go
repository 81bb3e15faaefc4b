package favorite

// Favorite is a (user, book) pair. The pair is unique: the database enforces
// it with a composite unique index, and the repository maps the resulting
// integrity violation to ErrAlreadyFavorited. The application never
// check-then-inserts, so concurrent duplicate requests cannot both succeed.
type Favorite struct {
	ID     uint
	UserID uint
	BookID uint
}
