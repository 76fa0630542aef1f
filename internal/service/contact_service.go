package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hance08/qwallet/internal/store"
	"github.com/hance08/qwallet/internal/validation"
)

type ContactService struct {
	repo store.Repository
}

func NewContactService(repo store.Repository) *ContactService {
	return &ContactService{repo: repo}
}

func (cs *ContactService) AddContact(name, address, note string) (*store.Contact, error) {
	name = strings.TrimSpace(name)
	address = strings.TrimSpace(address)

	if err := validation.ValidateContactName(name); err != nil {
		return nil, err
	}
	if err := validation.ValidateRecipient(address); err != nil {
		return nil, err
	}

	note = strings.TrimSpace(note)
	id, err := cs.repo.CreateContact(name, address, note)
	if err != nil {
		return nil, err
	}
	return &store.Contact{ID: id, Name: name, Address: address, Note: note}, nil
}

func (cs *ContactService) GetAllContacts() ([]*store.Contact, error) {
	return cs.repo.GetAllContacts()
}

func (cs *ContactService) GetContactByName(name string) (*store.Contact, error) {
	return cs.repo.GetContactByName(strings.TrimSpace(name))
}

func (cs *ContactService) RemoveContact(name string) error {
	return cs.repo.DeleteContact(strings.TrimSpace(name))
}

func (cs *ContactService) UpdateNote(name, note string) error {
	return cs.repo.UpdateContactNote(strings.TrimSpace(name), strings.TrimSpace(note))
}

// RenameContact moves a contact to a new name. Both lookups and the update
// run in one transaction.
func (cs *ContactService) RenameContact(oldName, newName string) (*store.Contact, error) {
	oldName = strings.TrimSpace(oldName)
	newName = strings.TrimSpace(newName)
	if err := validation.ValidateContactName(newName); err != nil {
		return nil, err
	}

	var renamed *store.Contact
	err := cs.repo.ExecTx(func(tx store.Repository) error {
		c, err := tx.GetContactByName(oldName)
		if err != nil {
			return err
		}
		if oldName == newName {
			renamed = c
			return nil
		}

		_, err = tx.GetContactByName(newName)
		switch {
		case err == nil:
			return fmt.Errorf("contact '%s': %w", newName, store.ErrContactExists)
		case !errors.Is(err, store.ErrRecordNotFound):
			return err
		}

		if err := tx.RenameContact(oldName, newName); err != nil {
			return err
		}
		c.Name = newName
		renamed = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return renamed, nil
}

func (cs *ContactService) ContactExists(name string) (bool, error) {
	_, err := cs.repo.GetContactByName(name)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, store.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

// ResolveRecipient maps a saved contact name to its address. Anything else is
// returned unchanged so it can be sent as an address or registered name.
func (cs *ContactService) ResolveRecipient(value string) (string, error) {
	value = strings.TrimSpace(value)
	c, err := cs.repo.GetContactByName(value)
	if err == nil {
		return c.Address, nil
	}
	if errors.Is(err, store.ErrRecordNotFound) {
		return value, nil
	}
	return "", fmt.Errorf("failed to resolve recipient '%s': %w", value, err)
}

// LabelFor returns the contact name saved for address, or "" when there is none.
func (cs *ContactService) LabelFor(address string) string {
	c, err := cs.repo.GetContactByAddress(address)
	if err != nil {
		return ""
	}
	return c.Name
}
