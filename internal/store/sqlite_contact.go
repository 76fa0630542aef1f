package store

import (
	"database/sql"
	"errors"
	"fmt"

	sqlite "github.com/mattn/go-sqlite3"
)

const contactColumns = "id, name, address, note, created_at"

func (s *Store) CreateContact(name, address, note string) (int64, error) {
	stmt, err := s.db.Prepare(`
        INSERT INTO contacts (name, address, note)
        VALUES (?, ?, ?)
        RETURNING id;
    `)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare SQL : %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	var newID int64
	err = stmt.QueryRow(name, address, note).Scan(&newID)
	if err != nil {
		var sqliteErr sqlite.Error
		if errors.As(err, &sqliteErr) {
			if errors.Is(sqliteErr.ExtendedCode, sqlite.ErrConstraintUnique) {
				return 0, fmt.Errorf("failed to create contact '%s': %w", name, ErrContactExists)
			}
			if errors.Is(sqliteErr.Code, sqlite.ErrConstraint) {
				return 0, fmt.Errorf("failed to create contact '%s': %w", name, ErrConstraintViolation)
			}
		}
		return 0, fmt.Errorf("failed to executing SQL insertion : %w", err)
	}

	return newID, nil
}

func (s *Store) GetContactByName(name string) (*Contact, error) {
	row := s.db.QueryRow("SELECT "+contactColumns+" FROM contacts WHERE name = ?", name)

	c, err := scanContact(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("contact '%s': %w", name, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query contact '%s' : %w", name, err)
	}
	return c, nil
}

// GetContactByAddress returns the oldest contact saved for address.
func (s *Store) GetContactByAddress(address string) (*Contact, error) {
	row := s.db.QueryRow("SELECT "+contactColumns+" FROM contacts WHERE address = ? ORDER BY id LIMIT 1", address)

	c, err := scanContact(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("contact for address '%s': %w", address, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query contact for address '%s' : %w", address, err)
	}
	return c, nil
}

func (s *Store) GetAllContacts() ([]*Contact, error) {
	rows, err := s.db.Query("SELECT " + contactColumns + " FROM contacts ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var contacts []*Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}

	return contacts, rows.Err()
}

func (s *Store) UpdateContactNote(name, note string) error {
	res, err := s.db.Exec("UPDATE contacts SET note = ? WHERE name = ?", note, name)
	if err != nil {
		return fmt.Errorf("failed to update contact '%s': %w", name, err)
	}
	return requireAffected(res, name)
}

func (s *Store) RenameContact(oldName, newName string) error {
	res, err := s.db.Exec("UPDATE contacts SET name = ? WHERE name = ?", newName, oldName)
	if err != nil {
		var sqliteErr sqlite.Error
		if errors.As(err, &sqliteErr) && errors.Is(sqliteErr.ExtendedCode, sqlite.ErrConstraintUnique) {
			return fmt.Errorf("failed to rename contact '%s': %w", oldName, ErrContactExists)
		}
		return fmt.Errorf("failed to rename contact '%s': %w", oldName, err)
	}
	return requireAffected(res, oldName)
}

func (s *Store) DeleteContact(name string) error {
	res, err := s.db.Exec("DELETE FROM contacts WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("failed to delete contact '%s': %w", name, err)
	}
	return requireAffected(res, name)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(row rowScanner) (*Contact, error) {
	c := &Contact{}
	if err := row.Scan(&c.ID, &c.Name, &c.Address, &c.Note, &c.CreatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func requireAffected(res sql.Result, name string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("contact '%s': %w", name, ErrRecordNotFound)
	}
	return nil
}
