package views

import (
	"time"

	"github.com/hance08/qwallet/internal/constants"
	"github.com/hance08/qwallet/internal/store"
	"github.com/pterm/pterm"
)

type ContactListView struct{}

func NewContactListView() *ContactListView {
	return &ContactListView{}
}

func (v *ContactListView) Render(contacts []*store.Contact) error {
	if len(contacts) == 0 {
		pterm.Warning.Println("Address book is empty")
		return nil
	}

	tableData := pterm.TableData{{"Name", "Address", "Note", "Added"}}
	for _, c := range contacts {
		tableData = append(tableData, []string{
			pterm.Cyan(c.Name),
			c.Address,
			c.Note,
			time.Unix(c.CreatedAt, 0).Format(constants.DateTimeFormat),
		})
	}

	pterm.DefaultSection.Printf("Address Book")
	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}

	pterm.Info.Printf("Total: %d contacts\n", len(contacts))
	return nil
}
