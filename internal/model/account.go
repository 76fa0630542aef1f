package model

// NoRegisteredName is reported for accounts that never registered a name.
const NoRegisteredName = "No Registered Name"

type Account struct {
	Address   string
	PublicKey string
	Name      string
}

// DisplayName returns the registered name, or the address when there is none.
func (a Account) DisplayName() string {
	if a.Name == "" || a.Name == NoRegisteredName {
		return a.Address
	}
	return a.Name
}
