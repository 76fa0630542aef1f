package store

// Contact is an address book entry. Name is unique; Address is not, so the
// same account can be saved under several labels.
type Contact struct {
	ID        int64
	Name      string
	Address   string
	Note      string
	CreatedAt int64
}
