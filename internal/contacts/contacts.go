// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package contacts collects the addresses seen during a conversion run and
// writes them out as a CSV address book.
package contacts

import (
	"encoding/csv"
	"fmt"
	"net/mail"
	"os"
	"sort"
	"strings"

	"github.com/pdiddy/eml-to-pdf/pkg/types"
)

// Contact is one address found in an email header.
type Contact struct {
	Name  string
	Email string
	Type  string // From, To, CC, BCC
}

// Book accumulates contacts across a batch run.
type Book struct {
	contacts []Contact
}

// NewBook returns an empty address book.
func NewBook() *Book {
	return &Book{}
}

// Add collects the contacts from one parsed email.
func (b *Book) Add(email *types.ParsedEmail) {
	b.addHeader(email.Sender, "From")
	b.addHeader(strings.Join(email.Recipients, ", "), "To")
	b.addHeader(strings.Join(email.CC, ", "), "CC")
	b.addHeader(strings.Join(email.BCC, ", "), "BCC")
}

func (b *Book) addHeader(value, contactType string) {
	for _, c := range parseHeader(value) {
		c.Type = contactType
		b.contacts = append(b.contacts, c)
	}
}

// Contacts returns everything collected so far.
func (b *Book) Contacts() []Contact {
	return b.contacts
}

// Len returns the number of collected contacts.
func (b *Book) Len() int {
	return len(b.contacts)
}

// parseHeader extracts (name, email) pairs from an address header value.
// Unparseable headers yield nothing; a missing display name falls back to
// the local part of the address.
func parseHeader(value string) []Contact {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	addrs, err := mail.ParseAddressList(value)
	if err != nil {
		return nil
	}

	out := make([]Contact, 0, len(addrs))
	for _, a := range addrs {
		if a.Address == "" {
			continue
		}
		name := strings.TrimSpace(a.Name)
		if name == "" {
			name = a.Address
			if at := strings.Index(a.Address, "@"); at > 0 {
				name = a.Address[:at]
			}
		}
		out = append(out, Contact{
			Name:  name,
			Email: strings.ToLower(strings.TrimSpace(a.Address)),
		})
	}
	return out
}

// Dedupe removes duplicate contacts by email address, keeping the first
// occurrence of each.
func Dedupe(contacts []Contact) []Contact {
	seen := make(map[string]struct{}, len(contacts))
	out := make([]Contact, 0, len(contacts))
	for _, c := range contacts {
		key := strings.ToLower(c.Email)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}

// WriteCSV deduplicates, sorts by name then email, and writes the address
// book to path. Returns an error when there are no contacts to write.
func WriteCSV(contacts []Contact, path string) error {
	if len(contacts) == 0 {
		return fmt.Errorf("no contacts to export")
	}

	contacts = Dedupe(contacts)
	sort.Slice(contacts, func(i, j int) bool {
		ni, nj := strings.ToLower(contacts[i].Name), strings.ToLower(contacts[j].Name)
		if ni != nj {
			return ni < nj
		}
		return contacts[i].Email < contacts[j].Email
	})

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating address book %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Name", "Email", "Type"}); err != nil {
		return fmt.Errorf("writing address book header: %w", err)
	}
	for _, c := range contacts {
		if err := w.Write([]string{c.Name, c.Email, c.Type}); err != nil {
			return fmt.Errorf("writing contact %s: %w", c.Email, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing address book: %w", err)
	}
	return nil
}
