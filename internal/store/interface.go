package store

type ContactRepository interface {
	CreateContact(name, address, note string) (int64, error)
	GetContactByName(name string) (*Contact, error)
	GetContactByAddress(address string) (*Contact, error)
	GetAllContacts() ([]*Contact, error)
	UpdateContactNote(name, note string) error
	RenameContact(oldName, newName string) error
	DeleteContact(name string) error
}

type Repository interface {
	ContactRepository

	ExecTx(fn func(Repository) error) error
	Close() error
}
